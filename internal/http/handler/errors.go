package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/operation"
)

// StatusFor maps an operation error kind to the HTTP status returned for it.
func StatusFor(kind operation.ErrorKind) int {
	switch kind {
	case operation.KindContractViolation:
		return http.StatusUnprocessableEntity
	case operation.KindNotFound:
		return http.StatusNotFound
	case operation.KindConflict:
		return http.StatusConflict
	case operation.KindUnconfirmed:
		return http.StatusBadRequest
	case operation.KindOracleFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Errors without a kind are internal and
// their details are only logged.
func respondError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()
	_ = c.Error(err)

	kind, ok := operation.KindOf(err)
	if !ok {
		slog.ErrorContext(ctx, fallback, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
		return
	}

	resp := dto.ErrorResponse{Error: err.Error(), Kind: kind}
	var opErr *operation.Error
	if errors.As(err, &opErr) {
		resp.Error = opErr.Message
		resp.Fields = opErr.Fields
	}
	c.JSON(StatusFor(kind), resp)
}

func badRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		badRequest(c, fmt.Errorf("%s: %w", name, err))
		return 0, false
	}
	return v, true
}

// parseOptionalIDQuery reads an optional id from the query string.
func parseOptionalIDQuery(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := id.Parse(raw)
	if err != nil {
		badRequest(c, fmt.Errorf("%s: %w", name, err))
		return nil, false
	}
	return &v, true
}
