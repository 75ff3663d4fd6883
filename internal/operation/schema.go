package operation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
)

// Definition is a tool declaration for one operation, ready to hand to a
// model provider.
type Definition struct {
	Name        Name
	Description string
	Parameters  map[string]any
}

var descriptions = map[Name]string{
	CreateTasksFromText:  "Parses a block of text into a list of structured tasks for the Kanban board.",
	UpdateTaskStatus:     "Moves a single existing task to another column by changing its status.",
	DeleteTask:           "Deletes a single existing task.",
	UpdateTaskProperties: "Updates the case number, title, description or priority of a single existing task.",
	CreateBoard:          "Creates a new board with the given name and optional columns.",
	UpdateBoard:          "Renames the active board.",
	DeleteBoard:          "Deletes the active board with all its columns and tasks. Requires explicit confirmation.",
	CreateColumn:         "Adds a column to the end of the active board.",
	UpdateColumn:         "Renames a column on the active board or changes its helper text.",
	DeleteColumn:         "Deletes a column from the active board.",
}

func argsPrototype(n Name) any {
	switch n {
	case CreateTasksFromText:
		return &CreateTasksArgs{}
	case UpdateTaskStatus:
		return &UpdateTaskStatusArgs{}
	case DeleteTask:
		return &DeleteTaskArgs{}
	case UpdateTaskProperties:
		return &UpdateTaskPropertiesArgs{}
	case CreateBoard:
		return &CreateBoardArgs{}
	case UpdateBoard:
		return &UpdateBoardArgs{}
	case DeleteBoard:
		return &DeleteBoardArgs{}
	case CreateColumn:
		return &CreateColumnArgs{}
	case UpdateColumn:
		return &UpdateColumnArgs{}
	case DeleteColumn:
		return &DeleteColumnArgs{}
	}
	return nil
}

var definitions = sync.OnceValues(func() ([]Definition, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	defs := make([]Definition, 0, len(names))
	for _, n := range names {
		params, err := schemaMap(reflector.Reflect(argsPrototype(n)))
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", n, err)
		}
		defs = append(defs, Definition{
			Name:        n,
			Description: descriptions[n],
			Parameters:  params,
		})
	}
	return defs, nil
})

// Definitions returns one tool declaration per operation, in contract order.
func Definitions() ([]Definition, error) {
	return definitions()
}

// schemaMap flattens a reflected schema into a plain map and drops the
// top-level keys providers reject in tool parameters.
func schemaMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	delete(out, "$schema")
	delete(out, "$id")
	return out, nil
}
