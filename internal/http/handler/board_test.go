package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/http/handler"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
)

var _ = Describe("BoardHandler", func() {
	var (
		router *gin.Engine
		svc    *mockBoardService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockBoardService{}
		h := handler.NewBoardHandler(svc)
		router.GET("/boards", h.List)
		router.POST("/boards", h.Create)
		router.GET("/boards/:id", h.Get)
		router.PATCH("/boards/:id", h.Rename)
		router.DELETE("/boards/:id", h.Delete)
		router.POST("/boards/:id/clear", h.Clear)
	})

	It("creates a board with the requested columns", func() {
		var gotName string
		var gotColumns []model.ColumnSpec
		svc.createFn = func(_ context.Context, name string, columns []model.ColumnSpec) (*model.Board, error) {
			gotName, gotColumns = name, columns
			return &model.Board{ID: 5, Name: name, Title: name}, nil
		}

		w := postJSON(router, "/boards", `{"name":"Sprint","columns":[{"title":"Todo"},{"title":"Done","helper":"shipped"}]}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(gotName).To(Equal("Sprint"))
		Expect(gotColumns).To(HaveLen(2))
		Expect(gotColumns[0].Title).To(Equal("Todo"))
		Expect(gotColumns[0].Helper).To(BeNil())
		Expect(*gotColumns[1].Helper).To(Equal("shipped"))

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["id"]).To(Equal("5"))
	})

	It("rejects a board without a name", func() {
		w := postJSON(router, "/boards", `{"columns":[]}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 409 when the service reports a conflict", func() {
		svc.createFn = func(context.Context, string, []model.ColumnSpec) (*model.Board, error) {
			return nil, operation.Conflict("Column %q is listed more than once.", "Todo")
		}

		w := postJSON(router, "/boards", `{"name":"Sprint","columns":[{"title":"Todo"},{"title":"Todo"}]}`)

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(decodeError(w).Error).To(Equal(`Column "Todo" is listed more than once.`))
	})

	It("returns 400 for a non-numeric id", func() {
		req := httptest.NewRequest(http.MethodGet, "/boards/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for a missing board", func() {
		svc.getFn = func(context.Context, int64) (*model.Board, error) {
			return nil, operation.NotFound("Board not found.")
		}

		req := httptest.NewRequest(http.MethodGet, "/boards/9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decodeError(w).Kind).To(Equal(operation.KindNotFound))
	})

	It("renames a board", func() {
		var gotID int64
		svc.renameFn = func(_ context.Context, id int64, name string) (*model.Board, error) {
			gotID = id
			return &model.Board{ID: id, Name: name, Title: name}, nil
		}

		req := httptest.NewRequest(http.MethodPatch, "/boards/3", bytes.NewBufferString(`{"name":"Renamed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotID).To(Equal(int64(3)))
	})

	It("deletes a board with no content", func() {
		called := false
		svc.deleteFn = func(context.Context, int64) error {
			called = true
			return nil
		}

		req := httptest.NewRequest(http.MethodDelete, "/boards/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(called).To(BeTrue())
	})

	It("clears a board and reports the count", func() {
		svc.clearFn = func(context.Context, int64) (int64, error) { return 4, nil }

		w := postJSON(router, "/boards/3/clear", ``)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.ClearBoardResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.ClearedCount).To(Equal(int64(4)))
	})

	It("lists boards", func() {
		svc.listFn = func(context.Context) ([]model.BoardSummary, error) {
			return []model.BoardSummary{{Board: model.Board{ID: 1, Name: "A"}, TaskCount: 2}}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/boards", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp []map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveLen(1))
		Expect(resp[0]["taskCount"]).To(BeNumerically("==", 2))
	})
})
