package dispatch_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
	"github.com/byigitt/kaiban/internal/store/memory"
)

var _ = Describe("Dispatcher", func() {
	var (
		ctx            context.Context
		mem            *memory.DB
		dispatcher     *dispatch.Dispatcher
		conversationID int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = memory.New()
		dispatcher = dispatch.New(dispatch.NewMemoryTxRunner(mem))

		conv := &model.Conversation{ID: id.New()}
		Expect(mem.Stores().Conversations().Create(ctx, conv)).To(Succeed())
		conversationID = conv.ID
	})

	run := func(args operation.Args, boardID *int64) (*operation.Result, error) {
		return dispatcher.Dispatch(ctx, dispatch.Request{
			Args:           args,
			ConversationID: conversationID,
			Command:        "command text",
			BoardID:        boardID,
		})
	}

	messages := func() []model.ConversationMessage {
		msgs, err := mem.Stores().Messages().ListByConversation(ctx, conversationID)
		Expect(err).NotTo(HaveOccurred())
		return msgs
	}

	task := func(caseNumber, status string) operation.TaskInput {
		return operation.TaskInput{
			CaseNumber:  caseNumber,
			Title:       "Title " + caseNumber,
			Description: "Description " + caseNumber,
			Status:      status,
			Priority:    model.PriorityMedium,
		}
	}

	createBoard := func(name string, columns ...string) *model.Board {
		args := operation.CreateBoardArgs{Name: name}
		for _, c := range columns {
			args.Columns = append(args.Columns, operation.ColumnInput{Title: c})
		}
		res, err := run(args, nil)
		Expect(err).NotTo(HaveOccurred())
		return res.Board
	}

	expectKind := func(err error, kind operation.ErrorKind) {
		GinkgoHelper()
		Expect(err).To(HaveOccurred())
		Expect(operation.IsKind(err, kind)).To(BeTrue(), "got %v", err)
	}

	Describe("create_tasks_from_text", func() {
		It("creates every task and records the transcript pair", func() {
			res, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{
				task("TASK-1", "Backlog"),
				task("TASK-2", "Backlog"),
			}}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionCreateTasks))
			Expect(res.Tasks).To(HaveLen(2))
			Expect(res.Tasks[0].Metadata).To(HaveKeyWithValue("createdVia", model.ViaCreateTasks))
			Expect(res.Tasks[0].Metadata).To(HaveKeyWithValue("promptVersion", operation.ContractVersion))
			Expect(*res.Tasks[0].ConversationID).To(Equal(conversationID))

			msgs := messages()
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].Role).To(Equal(model.RoleUser))
			Expect(msgs[0].Content).To(Equal("command text"))
			Expect(msgs[0].Metadata.Type).To(Equal("create-tasks-request"))
			Expect(msgs[1].Role).To(Equal(model.RoleAssistant))
			Expect(msgs[1].Content).To(Equal("Created 2 task(s):\nTASK-1: Description TASK-1\nTASK-2: Description TASK-2"))
			Expect(msgs[1].Metadata.Type).To(Equal("create-tasks-response"))
			Expect(msgs[1].Metadata.PromptVersion).To(Equal(operation.ContractVersion))

			var applied operation.CreateTasksArgs
			Expect(json.Unmarshal(msgs[1].Metadata.Result, &applied)).To(Succeed())
			Expect(applied.Tasks).To(HaveLen(2))
		})

		It("writes nothing when one task in the batch conflicts", func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-2", "Backlog")}}, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{
				task("TASK-1", "Backlog"),
				task("TASK-2", "Backlog"),
			}}, nil)
			expectKind(err, operation.KindConflict)
			Expect(err.Error()).To(Equal("Task TASK-2 already exists."))

			_, err = mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(messages()).To(HaveLen(2))
		})

		It("rejects a batch that repeats a case number", func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{
				task("TASK-1", "Backlog"),
				task("TASK-1", "Backlog"),
			}}, nil)
			expectKind(err, operation.KindConflict)
			Expect(messages()).To(BeEmpty())
		})

		It("requires statuses to name a column when a board is active", func() {
			board := createBoard("Sprint")

			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Nowhere")}}, &board.ID)
			expectKind(err, operation.KindNotFound)

			res, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Testing")}}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*res.Tasks[0].BoardID).To(Equal(board.ID))
		})

		It("fails for an unknown conversation", func() {
			_, err := dispatcher.Dispatch(ctx, dispatch.Request{
				Args:           operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}},
				ConversationID: conversationID + 1,
			})
			expectKind(err, operation.KindNotFound)
			Expect(err.Error()).To(Equal("Conversation not found."))
		})

		It("creates the conversation in the same transaction when asked to", func() {
			conv := &model.Conversation{ID: id.New(), Topic: model.DeriveTopic("first line\nsecond")}
			_, err := dispatcher.Dispatch(ctx, dispatch.Request{
				Args:              operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}},
				ConversationID:    conv.ID,
				Command:           "first line\nsecond",
				StartConversation: conv,
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := mem.Stores().Conversations().GetByID(ctx, conv.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.Topic).To(Equal("first line"))
		})

		It("does not create the conversation when the operation fails", func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}}, nil)
			Expect(err).NotTo(HaveOccurred())

			conv := &model.Conversation{ID: id.New()}
			_, err = dispatcher.Dispatch(ctx, dispatch.Request{
				Args:              operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}},
				ConversationID:    conv.ID,
				StartConversation: conv,
			})
			expectKind(err, operation.KindConflict)

			_, err = mem.Stores().Conversations().GetByID(ctx, conv.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("update_task_status", func() {
		BeforeEach(func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}}, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("moves the task and merges its metadata", func() {
			res, err := run(operation.UpdateTaskStatusArgs{CaseNumber: "TASK-1", NewStatus: "Done"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionUpdateStatus))
			Expect(res.NewStatus).To(Equal("Done"))

			stored, err := mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("Done"))
			Expect(stored.Metadata).To(HaveKeyWithValue("createdVia", model.ViaCreateTasks))
			Expect(stored.Metadata).To(HaveKeyWithValue("updatedVia", model.ViaUpdateTask))
			Expect(stored.Metadata).To(HaveKeyWithValue("lastOperation", "update_task_status"))

			msgs := messages()
			Expect(msgs).To(HaveLen(4))
			Expect(msgs[2].Metadata.Type).To(Equal("update-task-request"))
			Expect(msgs[3].Content).To(Equal("TASK-1 moved to Done."))
		})

		It("reports a missing task", func() {
			_, err := run(operation.UpdateTaskStatusArgs{CaseNumber: "TASK-9", NewStatus: "Done"}, nil)
			expectKind(err, operation.KindNotFound)
			Expect(err.Error()).To(Equal("Task TASK-9 not found in the database."))
			Expect(messages()).To(HaveLen(2))
		})
	})

	Describe("delete_task", func() {
		It("removes the task", func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}}, nil)
			Expect(err).NotTo(HaveOccurred())

			res, err := run(operation.DeleteTaskArgs{CaseNumber: "TASK-1"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionDelete))
			Expect(res.CaseNumber).To(Equal("TASK-1"))

			_, err = mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(messages()[3].Content).To(Equal("TASK-1 has been deleted."))
		})

		It("reports a missing task", func() {
			_, err := run(operation.DeleteTaskArgs{CaseNumber: "TASK-404"}, nil)
			expectKind(err, operation.KindNotFound)
			Expect(messages()).To(BeEmpty())
		})
	})

	Describe("update_task_properties", func() {
		BeforeEach(func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{
				task("TASK-1", "Backlog"),
				task("TASK-2", "Backlog"),
			}}, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies only the supplied fields", func() {
			high := model.PriorityHigh
			res, err := run(operation.UpdateTaskPropertiesArgs{
				CaseNumber:    "TASK-1",
				NewCaseNumber: ptr("TASK-10"),
				NewPriority:   &high,
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionUpdateProperties))
			Expect(*res.NewCaseNumber).To(Equal("TASK-10"))
			Expect(res.NewTitle).To(BeNil())

			stored, err := mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-10")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Title TASK-1"))
			Expect(stored.Priority).To(Equal(model.PriorityHigh))
			Expect(messages()[3].Content).To(Equal("TASK-1 renamed to TASK-10 and priority changed to high."))
		})

		It("refuses to rename onto an existing case number", func() {
			_, err := run(operation.UpdateTaskPropertiesArgs{CaseNumber: "TASK-1", NewCaseNumber: ptr("TASK-2")}, nil)
			expectKind(err, operation.KindConflict)
			Expect(err.Error()).To(Equal("Task TASK-2 already exists."))

			_, err = mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("boards", func() {
		It("creates a board with the default columns", func() {
			res, err := run(operation.CreateBoardArgs{Name: "Roadmap"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionCreateBoard))
			Expect(res.Board.ColumnTitles()).To(Equal([]string{"Backlog", "In Progress", "Testing", "Done"}))
			for i, c := range res.Board.Columns {
				Expect(c.Order).To(Equal(i))
				Expect(c.BoardID).To(Equal(res.Board.ID))
			}
			Expect(messages()[1].Content).To(Equal(`Created board "Roadmap" with 4 column(s).`))
		})

		It("keeps the requested column order", func() {
			board := createBoard("Ops", "Todo", "Doing", "Done")
			Expect(board.ColumnTitles()).To(Equal([]string{"Todo", "Doing", "Done"}))
		})

		It("renames the active board", func() {
			board := createBoard("Old")
			res, err := run(operation.UpdateBoardArgs{Name: "New"}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Board.Name).To(Equal("New"))
			Expect(messages()[3].Content).To(Equal(`Board renamed to "New".`))
		})

		It("requires an active board for board-scoped operations", func() {
			_, err := run(operation.UpdateBoardArgs{Name: "New"}, nil)
			expectKind(err, operation.KindNotFound)
			Expect(err.Error()).To(Equal("No active board to update."))

			_, err = run(operation.CreateColumnArgs{Title: "QA"}, nil)
			Expect(err.Error()).To(Equal("No active board to add column to."))
			Expect(messages()).To(BeEmpty())
		})

		It("reports a board that no longer exists", func() {
			missing := id.New()
			_, err := run(operation.UpdateBoardArgs{Name: "New"}, &missing)
			expectKind(err, operation.KindNotFound)
			Expect(err.Error()).To(Equal("Board not found."))
		})

		It("refuses an unconfirmed delete before checking the board", func() {
			_, err := run(operation.DeleteBoardArgs{Confirmed: false}, nil)
			expectKind(err, operation.KindUnconfirmed)
			Expect(err.Error()).To(Equal("Board deletion not confirmed."))
		})

		It("deletes a board together with its columns and tasks", func() {
			board := createBoard("Doomed")
			other := createBoard("Other")
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-1", "Backlog")}}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{task("TASK-2", "Backlog")}}, &other.ID)
			Expect(err).NotTo(HaveOccurred())

			res, err := run(operation.DeleteBoardArgs{Confirmed: true}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*res.BoardID).To(Equal(board.ID))

			_, err = mem.Stores().Boards().GetByID(ctx, board.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
			_, err = mem.Stores().Columns().GetByBoardAndTitle(ctx, board.ID, "Backlog")
			Expect(err).To(MatchError(store.ErrNotFound))
			_, err = mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).To(MatchError(store.ErrNotFound))
			_, err = mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-2")
			Expect(err).NotTo(HaveOccurred())

			msgs := messages()
			Expect(msgs[len(msgs)-1].Content).To(Equal(`Board "Doomed" has been deleted.`))
		})
	})

	Describe("columns", func() {
		var board *model.Board

		BeforeEach(func() {
			board = createBoard("Sprint")
		})

		It("appends a column after the existing ones", func() {
			res, err := run(operation.CreateColumnArgs{Title: "Blocked", Helper: ptr("Waiting on someone")}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionCreateColumn))
			Expect(res.Column.Order).To(Equal(4))
			Expect(*res.Column.Helper).To(Equal("Waiting on someone"))
			Expect(messages()[3].Content).To(Equal(`Column "Blocked" added to board.`))
		})

		It("rejects a duplicate title", func() {
			_, err := run(operation.CreateColumnArgs{Title: "Done"}, &board.ID)
			expectKind(err, operation.KindConflict)
		})

		It("updates only the helper text", func() {
			res, err := run(operation.UpdateColumnArgs{Title: "Testing", NewHelper: ptr("QA in progress")}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Column.Title).To(Equal("Testing"))
			Expect(*res.Column.Helper).To(Equal("QA in progress"))
			Expect(messages()[3].Content).To(Equal(`Column "Testing" helper text updated.`))
		})

		It("clears the helper text with an empty string", func() {
			res, err := run(operation.UpdateColumnArgs{Title: "Testing", NewHelper: ptr("")}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Column.Helper).To(BeNil())
		})

		It("renames a column", func() {
			res, err := run(operation.UpdateColumnArgs{Title: "Testing", NewTitle: ptr("QA"), NewHelper: ptr("Checks")}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Column.Title).To(Equal("QA"))
			Expect(messages()[3].Content).To(Equal(`Column "Testing" renamed to "QA" and helper text updated.`))
		})

		It("refuses to rename onto an existing title", func() {
			_, err := run(operation.UpdateColumnArgs{Title: "Testing", NewTitle: ptr("Done")}, &board.ID)
			expectKind(err, operation.KindConflict)
		})

		It("reports a missing column", func() {
			_, err := run(operation.DeleteColumnArgs{Title: "Nope"}, &board.ID)
			expectKind(err, operation.KindNotFound)
			Expect(err.Error()).To(Equal(`Column "Nope" not found.`))
		})

		It("deletes a column but leaves its tasks in place", func() {
			_, err := run(operation.CreateTasksArgs{Tasks: []operation.TaskInput{
				task("TASK-1", "Testing"),
				task("TASK-2", "Backlog"),
			}}, &board.ID)
			Expect(err).NotTo(HaveOccurred())

			res, err := run(operation.DeleteColumnArgs{Title: "Testing"}, &board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionDeleteColumn))
			Expect(res.ColumnTitle).To(Equal("Testing"))
			Expect(res.AffectedCaseNumbers).To(Equal([]string{"TASK-1"}))

			orphan, err := mem.Stores().Tasks().GetByCaseNumber(ctx, "TASK-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(orphan.Status).To(Equal("Testing"))

			stored, err := mem.Stores().Boards().GetByID(ctx, board.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.HasColumn("Testing")).To(BeFalse())
		})
	})

	It("rejects a request without an operation", func() {
		_, err := run(nil, nil)
		expectKind(err, operation.KindContractViolation)
	})
})

func ptr[T any](v T) *T { return &v }
