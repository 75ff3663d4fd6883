package operation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an operation could not be applied.
type ErrorKind string

const (
	KindContractViolation ErrorKind = "contract_violation"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindUnconfirmed       ErrorKind = "unconfirmed"
	KindOracleFailure     ErrorKind = "oracle_failure"
)

// FieldError names one argument that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}

// Error is the only error type operations surface to callers. Storage and
// transport errors are translated into one of the kinds above before they
// leave this layer.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err when it is, or wraps, an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unconfirmed(message string) error {
	return &Error{Kind: KindUnconfirmed, Message: message}
}

func ContractViolation(format string, args ...any) error {
	return &Error{Kind: KindContractViolation, Message: fmt.Sprintf(format, args...)}
}

// OracleFailure wraps a failed model call. The caller may retry.
func OracleFailure(err error) error {
	return &Error{Kind: KindOracleFailure, Message: fmt.Sprintf("model call failed: %v", err), Err: err}
}

// ValidationFailed is a contract violation listing every offending field.
func ValidationFailed(name Name, fields []FieldError) error {
	return &Error{
		Kind:    KindContractViolation,
		Message: fmt.Sprintf("invalid arguments for %s: %s", name, joinFields(fields)),
		Fields:  fields,
	}
}

// InvalidInput reports bad input that did not come from the model, such as
// a malformed REST request body.
func InvalidInput(fields ...FieldError) error {
	return &Error{
		Kind:    KindContractViolation,
		Message: "invalid input: " + joinFields(fields),
		Fields:  fields,
	}
}

func joinFields(fields []FieldError) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}
