package dto

import "github.com/byigitt/kaiban/internal/operation"

type ErrorResponse struct {
	Error  string                 `json:"error"`
	Kind   operation.ErrorKind    `json:"kind,omitempty"`
	Fields []operation.FieldError `json:"fields,omitempty"`
}
