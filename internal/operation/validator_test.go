package operation_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
)

func call(name operation.Name, args string) operation.Call {
	return operation.Call{Name: name, Args: json.RawMessage(args)}
}

func fieldNames(err error) []string {
	var opErr *operation.Error
	Expect(err).To(BeAssignableToTypeOf(opErr))
	opErr = err.(*operation.Error)
	names := make([]string, len(opErr.Fields))
	for i, f := range opErr.Fields {
		names[i] = f.Field
	}
	return names
}

var _ = Describe("Validate", func() {
	It("rejects names outside the contract", func() {
		_, err := operation.Validate(call("archive_task", `{}`))
		Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`"archive_task"`))
	})

	It("rejects arguments that are not an object", func() {
		_, err := operation.Validate(call(operation.DeleteTask, `["TASK-1"]`))
		Expect(fieldNames(err)).To(ConsistOf("args"))
	})

	DescribeTable("accepts well-formed arguments",
		func(name operation.Name, args string, expected operation.Args) {
			got, err := operation.Validate(call(name, args))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(expected))
			Expect(got.Operation()).To(Equal(name))
		},
		Entry("create_tasks_from_text", operation.CreateTasksFromText,
			`{"tasks":[{"caseNumber":"TASK-1","title":"Design login page","description":"Mockups first","status":"Backlog","priority":"high"}]}`,
			operation.CreateTasksArgs{Tasks: []operation.TaskInput{{
				CaseNumber: "TASK-1", Title: "Design login page", Description: "Mockups first",
				Status: "Backlog", Priority: model.PriorityHigh,
			}}}),
		Entry("update_task_status with an arbitrary column", operation.UpdateTaskStatus,
			`{"caseNumber":"TASK-7","newStatus":"Waiting on legal"}`,
			operation.UpdateTaskStatusArgs{CaseNumber: "TASK-7", NewStatus: "Waiting on legal"}),
		Entry("delete_task trims values", operation.DeleteTask,
			`{"caseNumber":"  TASK-7 "}`,
			operation.DeleteTaskArgs{CaseNumber: "TASK-7"}),
		Entry("update_task_properties with one field", operation.UpdateTaskProperties,
			`{"caseNumber":"TASK-3","newPriority":"low"}`,
			operation.UpdateTaskPropertiesArgs{CaseNumber: "TASK-3", NewPriority: ptr(model.PriorityLow)}),
		Entry("create_board without columns", operation.CreateBoard,
			`{"name":"Launch"}`,
			operation.CreateBoardArgs{Name: "Launch"}),
		Entry("create_board with columns", operation.CreateBoard,
			`{"name":"Launch","columns":[{"title":"Todo","helper":"Not started"},{"title":"Done","helper":""}]}`,
			operation.CreateBoardArgs{Name: "Launch", Columns: []operation.ColumnInput{
				{Title: "Todo", Helper: ptr("Not started")},
				{Title: "Done"},
			}}),
		Entry("update_board", operation.UpdateBoard,
			`{"name":"Q3"}`,
			operation.UpdateBoardArgs{Name: "Q3"}),
		Entry("delete_board unconfirmed is still well-formed", operation.DeleteBoard,
			`{"confirmed":false}`,
			operation.DeleteBoardArgs{Confirmed: false}),
		Entry("create_column", operation.CreateColumn,
			`{"title":"Review"}`,
			operation.CreateColumnArgs{Title: "Review"}),
		Entry("update_column clearing the helper", operation.UpdateColumn,
			`{"title":"Review","newHelper":""}`,
			operation.UpdateColumnArgs{Title: "Review", NewHelper: ptr("")}),
		Entry("delete_column ignores unknown keys", operation.DeleteColumn,
			`{"title":"Review","reason":"cleanup"}`,
			operation.DeleteColumnArgs{Title: "Review"}),
	)

	DescribeTable("names every offending field",
		func(name operation.Name, args string, fields ...string) {
			_, err := operation.Validate(call(name, args))
			Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
			Expect(fieldNames(err)).To(ConsistOf(fields))
			for _, f := range fields {
				Expect(err.Error()).To(ContainSubstring(f))
			}
		},
		Entry("missing tasks", operation.CreateTasksFromText, `{}`, "tasks"),
		Entry("empty task list", operation.CreateTasksFromText, `{"tasks":[]}`, "tasks"),
		Entry("bad task entries", operation.CreateTasksFromText,
			`{"tasks":[{"caseNumber":"TASK-1","title":"a","description":"b","status":"","priority":"urgent"},"oops"]}`,
			"tasks[0].status", "tasks[0].priority", "tasks[1]"),
		Entry("missing status", operation.UpdateTaskStatus, `{"caseNumber":"TASK-1"}`, "newStatus"),
		Entry("wrong type", operation.DeleteTask, `{"caseNumber":7}`, "caseNumber"),
		Entry("properties without changes", operation.UpdateTaskProperties,
			`{"caseNumber":"TASK-1"}`, "newCaseNumber"),
		Entry("priority outside the enum", operation.UpdateTaskProperties,
			`{"caseNumber":"TASK-1","newPriority":"HIGH"}`, "newPriority"),
		Entry("column without title", operation.CreateBoard,
			`{"name":"B","columns":[{"helper":"x"}]}`, "columns[0].title"),
		Entry("missing confirmation", operation.DeleteBoard, `{}`, "confirmed"),
		Entry("confirmation as a string", operation.DeleteBoard, `{"confirmed":"yes"}`, "confirmed"),
		Entry("column update without changes", operation.UpdateColumn, `{"title":"Done"}`, "newTitle"),
		Entry("null arguments", operation.DeleteColumn, `null`, "title"),
	)

	It("joins per-field messages into one description", func() {
		_, err := operation.Validate(call(operation.UpdateTaskStatus, `{}`))
		Expect(err.Error()).To(Equal("invalid arguments for update_task_status: caseNumber: is required; newStatus: is required"))
	})
})

func ptr[T any](v T) *T { return &v }
