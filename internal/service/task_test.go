package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/service"
	"github.com/byigitt/kaiban/internal/store/memory"
)

var _ = Describe("TaskService", func() {
	var (
		ctx context.Context
		mem *memory.DB
		svc service.TaskService
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = memory.New()
		svc = service.NewTaskService(mem.Stores(), service.NewMemoryTxRunner(mem))

		_, err := mem.Stores().Tasks().CreateMany(ctx, []model.Task{
			{ID: id.New(), CaseNumber: "TASK-1", Title: "a", Description: "a", Status: "Backlog", Priority: model.PriorityLow,
				Metadata: model.TaskMetadata{"createdVia": model.ViaCreateTasks}},
			{ID: id.New(), CaseNumber: "TASK-2", Title: "b", Description: "b", Status: "Backlog", Priority: model.PriorityLow},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("applies a manual edit and marks it in metadata", func() {
		high := model.PriorityHigh
		task, err := svc.Edit(ctx, "TASK-1", service.TaskEdit{Title: strPtr(" New title "), Priority: &high})
		Expect(err).NotTo(HaveOccurred())
		Expect(task.Title).To(Equal("New title"))
		Expect(task.Description).To(Equal("a"))
		Expect(task.Priority).To(Equal(model.PriorityHigh))
		Expect(task.Metadata).To(HaveKeyWithValue("updatedVia", model.ViaManualEdit))
		Expect(task.Metadata).To(HaveKeyWithValue("createdVia", model.ViaCreateTasks))
	})

	It("renames the case number", func() {
		task, err := svc.Edit(ctx, "TASK-1", service.TaskEdit{NewCaseNumber: strPtr("TASK-9")})
		Expect(err).NotTo(HaveOccurred())
		Expect(task.CaseNumber).To(Equal("TASK-9"))
	})

	It("refuses to take an existing case number", func() {
		_, err := svc.Edit(ctx, "TASK-1", service.TaskEdit{NewCaseNumber: strPtr("TASK-2")})
		Expect(operation.IsKind(err, operation.KindConflict)).To(BeTrue())
		Expect(err.Error()).To(Equal("Task TASK-2 already exists."))
	})

	It("reports a missing task", func() {
		_, err := svc.Edit(ctx, "TASK-404", service.TaskEdit{Title: strPtr("x")})
		Expect(operation.IsKind(err, operation.KindNotFound)).To(BeTrue())
	})

	DescribeTable("rejects invalid edits",
		func(edit service.TaskEdit) {
			_, err := svc.Edit(ctx, "TASK-1", edit)
			Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
		},
		Entry("no fields", service.TaskEdit{}),
		Entry("blank title", service.TaskEdit{Title: strPtr("  ")}),
		Entry("unknown priority", service.TaskEdit{Priority: priorityPtr("urgent")}),
	)

	It("lists tasks", func() {
		tasks, err := svc.List(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(2))
	})
})

func strPtr(s string) *string { return &s }

func priorityPtr(p string) *model.Priority {
	v := model.Priority(p)
	return &v
}
