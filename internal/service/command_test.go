package service_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/oracle"
	"github.com/byigitt/kaiban/internal/queue"
	"github.com/byigitt/kaiban/internal/service"
	"github.com/byigitt/kaiban/internal/store/memory"
)

func call(name operation.Name, args string) operation.Call {
	return operation.Call{Name: name, Args: json.RawMessage(args)}
}

var _ = Describe("CommandService", func() {
	var (
		ctx            context.Context
		mem            *memory.DB
		scripted       *oracle.Scripted
		publisher      *mockPublisher
		idem           *mockIdempotencyStore
		svc            service.CommandService
		conversationID int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = memory.New()
		scripted = oracle.NewScripted()
		publisher = &mockPublisher{}
		idem = &mockIdempotencyStore{}
		svc = service.NewCommandService(
			mem.Stores(),
			dispatch.New(dispatch.NewMemoryTxRunner(mem)),
			scripted,
			publisher,
			idem,
		)

		conv := &model.Conversation{ID: id.New()}
		Expect(mem.Stores().Conversations().Create(ctx, conv)).To(Succeed())
		conversationID = conv.ID
	})

	messageCount := func() int {
		msgs, err := mem.Stores().Messages().ListByConversation(ctx, conversationID)
		Expect(err).NotTo(HaveOccurred())
		return len(msgs)
	}

	It("turns a command into a persisted task with a numbering hint", func() {
		scripted.Enqueue(call(operation.CreateTasksFromText,
			`{"tasks":[{"caseNumber":"TASK-1","title":"Fix login bug","description":"Fix login bug","status":"Backlog","priority":"medium"}]}`))

		res, err := svc.Process(ctx, service.CommandRequest{Command: "  Fix login bug ", ConversationID: conversationID})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Action).To(Equal(operation.ActionCreateTasks))
		Expect(res.Tasks).To(HaveLen(1))

		Expect(scripted.Prompts()).To(HaveLen(1))
		Expect(scripted.Prompts()[0].Render()).To(Equal("Fix login bug\n\n[System: Start task numbering from TASK-1]"))

		msgs, err := mem.Stores().Messages().ListByConversation(ctx, conversationID)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0].Content).To(Equal("Fix login bug"))
		Expect(msgs[1].Content).To(Equal("Created 1 task(s):\nTASK-1: Fix login bug"))

		events := publisher.published()
		Expect(events).To(HaveLen(1))
		Expect(events[0].Action).To(Equal("create_tasks"))
		Expect(events[0].ConversationID).To(Equal(conversationID))
	})

	It("hints the number after the highest existing case number", func() {
		for _, cn := range []string{"TASK-3", "TASK-7", "TASK-5"} {
			_, err := mem.Stores().Tasks().CreateMany(ctx, []model.Task{{
				ID: id.New(), CaseNumber: cn, Title: cn, Description: cn, Status: "Backlog", Priority: model.PriorityLow,
			}})
			Expect(err).NotTo(HaveOccurred())
		}

		next, err := svc.NextCaseNumber(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(next).To(Equal(int64(8)))

		scripted.Enqueue(call(operation.DeleteTask, `{"caseNumber":"TASK-3"}`))
		_, err = svc.Process(ctx, service.CommandRequest{Command: "remove TASK-3", ConversationID: conversationID})
		Expect(err).NotTo(HaveOccurred())
		Expect(scripted.Prompts()[0].NextCaseNumber).To(Equal(int64(8)))
	})

	It("passes the active board's columns to the oracle", func() {
		board := &model.Board{ID: id.New(), Name: "B", Title: "B", Columns: []model.Column{
			{ID: id.New(), Title: "Todo"},
			{ID: id.New(), Title: "Done", Order: 1},
		}}
		Expect(mem.Stores().Boards().Create(ctx, board)).To(Succeed())

		scripted.Enqueue(call(operation.UpdateBoard, `{"name":"Renamed"}`))
		res, err := svc.Process(ctx, service.CommandRequest{Command: "rename board", ConversationID: conversationID, BoardID: &board.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Board.Name).To(Equal("Renamed"))
		Expect(scripted.Prompts()[0].BoardColumns).To(Equal([]string{"Todo", "Done"}))
		Expect(*publisher.published()[0].BoardID).To(Equal(board.ID))
	})

	It("rejects invalid arguments without writing anything", func() {
		scripted.Enqueue(call(operation.CreateTasksFromText,
			`{"tasks":[{"caseNumber":"TASK-1","title":"t","description":"d","status":"Backlog","priority":"urgent"}]}`))

		_, err := svc.Process(ctx, service.CommandRequest{Command: "x", ConversationID: conversationID, IdempotencyKey: "k1"})
		Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("tasks[0].priority"))

		tasks, err := mem.Stores().Tasks().List(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(BeEmpty())
		Expect(messageCount()).To(BeZero())
		Expect(idem.releaseCalls).To(Equal(1))
		Expect(publisher.published()).To(BeEmpty())
	})

	It("rejects an empty command before asking the oracle", func() {
		_, err := svc.Process(ctx, service.CommandRequest{Command: "   ", ConversationID: conversationID})
		Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
		Expect(scripted.Prompts()).To(BeEmpty())
	})

	It("surfaces oracle failures", func() {
		_, err := svc.Process(ctx, service.CommandRequest{Command: "anything", ConversationID: conversationID})
		Expect(operation.IsKind(err, operation.KindOracleFailure)).To(BeTrue())
	})

	It("still succeeds when publishing fails", func() {
		publisher.publishFn = func(context.Context, queue.BoardEvent) error { return errors.New("redis down") }
		scripted.Enqueue(call(operation.CreateBoard, `{"name":"Roadmap"}`))

		res, err := svc.Process(ctx, service.CommandRequest{Command: "new board", ConversationID: conversationID})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Board.ColumnTitles()).To(HaveLen(4))
	})

	Context("with an idempotency key", func() {
		It("stores the result of the first request", func() {
			scripted.Enqueue(call(operation.CreateBoard, `{"name":"Roadmap"}`))

			_, err := svc.Process(ctx, service.CommandRequest{Command: "new board", ConversationID: conversationID, IdempotencyKey: "k1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(idem.completed).To(HaveKey("k1"))

			var stored operation.Result
			Expect(json.Unmarshal(idem.completed["k1"], &stored)).To(Succeed())
			Expect(stored.Action).To(Equal(operation.ActionCreateBoard))
		})

		It("replays a completed request without applying it again", func() {
			idem.claimFn = func(context.Context, string) (queue.ClaimState, []byte, error) {
				return queue.Completed, []byte(`{"action":"delete","caseNumber":"TASK-1"}`), nil
			}

			res, err := svc.Process(ctx, service.CommandRequest{Command: "delete TASK-1", ConversationID: conversationID, IdempotencyKey: "k1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Action).To(Equal(operation.ActionDelete))
			Expect(res.CaseNumber).To(Equal("TASK-1"))
			Expect(scripted.Prompts()).To(BeEmpty())
			Expect(messageCount()).To(BeZero())
		})

		It("refuses a request while the first is still running", func() {
			idem.claimFn = func(context.Context, string) (queue.ClaimState, []byte, error) {
				return queue.InFlight, nil, nil
			}

			_, err := svc.Process(ctx, service.CommandRequest{Command: "x", ConversationID: conversationID, IdempotencyKey: "k1"})
			Expect(operation.IsKind(err, operation.KindConflict)).To(BeTrue())
			Expect(idem.releaseCalls).To(BeZero())
		})
	})

	Describe("StartConversation", func() {
		It("imports pasted text as tasks in a new conversation", func() {
			scripted.Enqueue(call(operation.CreateTasksFromText,
				`{"tasks":[
					{"caseNumber":"TASK-1","title":"Login","description":"Fix login","status":"Backlog","priority":"high"},
					{"caseNumber":"TASK-2","title":"Docs","description":"Write docs","status":"Backlog","priority":"low"}
				]}`))

			res, err := svc.StartConversation(ctx, "Sprint 12 import\n- Fix login\n- Write docs", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(*res.Conversation.Topic).To(Equal("Sprint 12 import"))
			Expect(res.Tasks).To(HaveLen(2))
			Expect(*res.Tasks[0].ConversationID).To(Equal(res.Conversation.ID))

			msgs, err := mem.Stores().Messages().ListByConversation(ctx, res.Conversation.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(2))
		})

		It("creates an empty conversation for blank text", func() {
			res, err := svc.StartConversation(ctx, "  ", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Conversation.Topic).To(BeNil())
			Expect(res.Tasks).To(BeEmpty())
			Expect(scripted.Prompts()).To(BeEmpty())

			_, err = mem.Stores().Conversations().GetByID(ctx, res.Conversation.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("refuses any operation other than task creation", func() {
			scripted.Enqueue(call(operation.DeleteTask, `{"caseNumber":"TASK-1"}`))

			_, err := svc.StartConversation(ctx, "delete everything", nil)
			Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())

			convs, err := mem.Stores().Conversations().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(convs).To(HaveLen(1))
		})
	})
})
