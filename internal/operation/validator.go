package operation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/byigitt/kaiban/internal/model"
)

const (
	msgRequired    = "is required"
	msgNotString   = "must be a string"
	msgEmpty       = "must not be empty"
	msgNotBool     = "must be a boolean"
	msgNotList     = "must be a list"
	msgNotObject   = "must be an object"
	msgBadPriority = "must be one of low, medium, high"
)

// Validate checks a proposed call against the contract and returns its typed
// arguments. Every violated field is reported, not just the first. Required
// strings are trimmed and must not be empty; unknown keys are ignored.
func Validate(call Call) (Args, error) {
	if !call.Name.Valid() {
		return nil, ContractViolation("unknown operation %q", call.Name)
	}

	var errs []FieldError
	r, ok := newArgReader(call.Args, &errs)
	if !ok {
		return nil, ValidationFailed(call.Name, errs)
	}

	args := decode(call.Name, r)
	if len(errs) > 0 {
		return nil, ValidationFailed(call.Name, errs)
	}
	return args, nil
}

func decode(name Name, r argReader) Args {
	switch name {
	case CreateTasksFromText:
		items, ok := r.objects("tasks", true)
		if ok && len(items) == 0 {
			r.fail("tasks", "must contain at least one task")
		}
		tasks := make([]TaskInput, 0, len(items))
		for _, it := range items {
			tasks = append(tasks, TaskInput{
				CaseNumber:  it.requiredString("caseNumber"),
				Title:       it.requiredString("title"),
				Description: it.requiredString("description"),
				Status:      it.requiredString("status"),
				Priority:    derefPriority(it.priority("priority", true)),
			})
		}
		return CreateTasksArgs{Tasks: tasks}

	case UpdateTaskStatus:
		return UpdateTaskStatusArgs{
			CaseNumber: r.requiredString("caseNumber"),
			NewStatus:  r.requiredString("newStatus"),
		}

	case DeleteTask:
		return DeleteTaskArgs{CaseNumber: r.requiredString("caseNumber")}

	case UpdateTaskProperties:
		args := UpdateTaskPropertiesArgs{
			CaseNumber:     r.requiredString("caseNumber"),
			NewCaseNumber:  r.optionalString("newCaseNumber"),
			NewTitle:       r.optionalString("newTitle"),
			NewDescription: r.optionalString("newDescription"),
			NewPriority:    r.priority("newPriority", false),
		}
		r.requireOneOf("newCaseNumber", "newTitle", "newDescription", "newPriority")
		return args

	case CreateBoard:
		args := CreateBoardArgs{Name: r.requiredString("name")}
		cols, _ := r.objects("columns", false)
		for _, c := range cols {
			args.Columns = append(args.Columns, ColumnInput{
				Title:  c.requiredString("title"),
				Helper: nonEmpty(c.optionalText("helper")),
			})
		}
		return args

	case UpdateBoard:
		return UpdateBoardArgs{Name: r.requiredString("name")}

	case DeleteBoard:
		return DeleteBoardArgs{Confirmed: r.boolean("confirmed")}

	case CreateColumn:
		return CreateColumnArgs{
			Title:  r.requiredString("title"),
			Helper: nonEmpty(r.optionalText("helper")),
		}

	case UpdateColumn:
		args := UpdateColumnArgs{
			Title:     r.requiredString("title"),
			NewTitle:  r.optionalString("newTitle"),
			NewHelper: r.optionalText("newHelper"),
		}
		r.requireOneOf("newTitle", "newHelper")
		return args

	case DeleteColumn:
		return DeleteColumnArgs{Title: r.requiredString("title")}
	}
	return nil
}

// argReader reads typed values out of one JSON object, recording a
// FieldError for every value that does not fit.
type argReader struct {
	path   string
	fields map[string]json.RawMessage
	errs   *[]FieldError
}

func newArgReader(raw json.RawMessage, errs *[]FieldError) (argReader, bool) {
	r := argReader{fields: map[string]json.RawMessage{}, errs: errs}
	if isNull(raw) {
		return r, true
	}
	if err := json.Unmarshal(raw, &r.fields); err != nil || r.fields == nil {
		*errs = append(*errs, FieldError{Field: "args", Message: "must be a JSON object"})
		return r, false
	}
	return r, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (r argReader) field(key string) string {
	if r.path == "" {
		return key
	}
	return r.path + "." + key
}

func (r argReader) fail(key, msg string) {
	*r.errs = append(*r.errs, FieldError{Field: r.field(key), Message: msg})
}

func (r argReader) present(key string) bool {
	v, ok := r.fields[key]
	return ok && !isNull(v)
}

func (r argReader) str(key string, required, allowEmpty bool) *string {
	if !r.present(key) {
		if required {
			r.fail(key, msgRequired)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(r.fields[key], &s); err != nil {
		r.fail(key, msgNotString)
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" && !allowEmpty {
		r.fail(key, msgEmpty)
		return nil
	}
	return &s
}

func (r argReader) requiredString(key string) string {
	if s := r.str(key, true, false); s != nil {
		return *s
	}
	return ""
}

func (r argReader) optionalString(key string) *string {
	return r.str(key, false, false)
}

// optionalText is an optional string that may be empty.
func (r argReader) optionalText(key string) *string {
	return r.str(key, false, true)
}

func (r argReader) priority(key string, required bool) *model.Priority {
	s := r.str(key, required, false)
	if s == nil {
		return nil
	}
	p := model.Priority(*s)
	if !p.Valid() {
		r.fail(key, msgBadPriority)
		return nil
	}
	return &p
}

func (r argReader) boolean(key string) bool {
	if !r.present(key) {
		r.fail(key, msgRequired)
		return false
	}
	var b bool
	if err := json.Unmarshal(r.fields[key], &b); err != nil {
		r.fail(key, msgNotBool)
		return false
	}
	return b
}

func (r argReader) objects(key string, required bool) ([]argReader, bool) {
	if !r.present(key) {
		if required {
			r.fail(key, msgRequired)
		}
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.fields[key], &items); err != nil {
		r.fail(key, msgNotList)
		return nil, false
	}
	readers := make([]argReader, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", key, i)
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			r.fail(path, msgNotObject)
			continue
		}
		readers = append(readers, argReader{path: r.field(path), fields: fields, errs: r.errs})
	}
	return readers, true
}

func (r argReader) requireOneOf(keys ...string) {
	for _, k := range keys {
		if r.present(k) {
			return
		}
	}
	*r.errs = append(*r.errs, FieldError{
		Field:   r.field(keys[0]),
		Message: "at least one of " + strings.Join(keys, ", ") + " is required",
	})
}

func derefPriority(p *model.Priority) model.Priority {
	if p == nil {
		return ""
	}
	return *p
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
