package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/http/handler"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/service"
)

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	return resp
}

var _ = Describe("CommandHandler", func() {
	var (
		router *gin.Engine
		svc    *mockCommandService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockCommandService{}
		h := handler.NewCommandHandler(svc)
		router.POST("/commands", h.Process)
		router.GET("/next-case-number", h.NextCaseNumber)
	})

	Describe("Process", func() {
		It("passes the command, ids and idempotency key to the service", func() {
			var got service.CommandRequest
			svc.processFn = func(_ context.Context, req service.CommandRequest) (*operation.Result, error) {
				got = req
				return &operation.Result{Action: operation.ActionUpdateStatus, CaseNumber: "TASK-1", NewStatus: "Done"}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/commands",
				bytes.NewBufferString(`{"command":"move TASK-1 to done","conversationId":"42","boardId":"7"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(handler.IdempotencyKeyHeader, "abc")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.Command).To(Equal("move TASK-1 to done"))
			Expect(got.ConversationID).To(Equal(int64(42)))
			Expect(got.BoardID).NotTo(BeNil())
			Expect(*got.BoardID).To(Equal(int64(7)))
			Expect(got.IdempotencyKey).To(Equal("abc"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["action"]).To(Equal("update_status"))
			Expect(resp["caseNumber"]).To(Equal("TASK-1"))
		})

		It("returns 400 when the conversation id is missing", func() {
			w := postJSON(router, "/commands", `{"command":"hi"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on malformed JSON", func() {
			w := postJSON(router, "/commands", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps error kinds to status codes",
			func(err error, status int, kind operation.ErrorKind) {
				svc.processFn = func(context.Context, service.CommandRequest) (*operation.Result, error) {
					return nil, err
				}

				w := postJSON(router, "/commands", `{"command":"x","conversationId":"1"}`)

				Expect(w.Code).To(Equal(status))
				Expect(decodeError(w).Kind).To(Equal(kind))
			},
			Entry("contract violation", operation.ContractViolation("bad"), http.StatusUnprocessableEntity, operation.KindContractViolation),
			Entry("not found", operation.NotFound("Task %q not found.", "TASK-9"), http.StatusNotFound, operation.KindNotFound),
			Entry("conflict", operation.Conflict("taken"), http.StatusConflict, operation.KindConflict),
			Entry("unconfirmed", operation.Unconfirmed("confirm first"), http.StatusBadRequest, operation.KindUnconfirmed),
			Entry("oracle failure", operation.OracleFailure(errors.New("timeout")), http.StatusBadGateway, operation.KindOracleFailure),
		)

		It("returns validation fields for invalid arguments", func() {
			svc.processFn = func(context.Context, service.CommandRequest) (*operation.Result, error) {
				return nil, operation.ValidationFailed(operation.UpdateTaskStatus, []operation.FieldError{
					{Field: "caseNumber", Message: "is required"},
				})
			}

			w := postJSON(router, "/commands", `{"command":"x","conversationId":"1"}`)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			resp := decodeError(w)
			Expect(resp.Fields).To(ConsistOf(operation.FieldError{Field: "caseNumber", Message: "is required"}))
		})

		It("hides internal errors", func() {
			svc.processFn = func(context.Context, service.CommandRequest) (*operation.Result, error) {
				return nil, errors.New("connection reset")
			}

			w := postJSON(router, "/commands", `{"command":"x","conversationId":"1"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			resp := decodeError(w)
			Expect(resp.Error).To(Equal("failed to process command"))
			Expect(resp.Kind).To(BeEmpty())
		})
	})

	Describe("NextCaseNumber", func() {
		It("returns the number and the formatted case number", func() {
			svc.nextCaseNumberFn = func(context.Context) (int64, error) { return 12, nil }

			req := httptest.NewRequest(http.MethodGet, "/next-case-number", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp dto.NextCaseNumberResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.NextCaseNumber).To(Equal(int64(12)))
			Expect(resp.CaseNumber).To(Equal("TASK-12"))
		})
	})
})
