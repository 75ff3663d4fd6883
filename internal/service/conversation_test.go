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

var _ = Describe("ConversationService and SnapshotService", func() {
	var (
		ctx  context.Context
		mem  *memory.DB
		conv *model.Conversation
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = memory.New()

		conv = &model.Conversation{ID: id.New(), Topic: model.DeriveTopic("Planning")}
		Expect(mem.Stores().Conversations().Create(ctx, conv)).To(Succeed())
		Expect(mem.Stores().Messages().CreateMany(ctx, []model.ConversationMessage{
			{ID: id.New(), ConversationID: conv.ID, Role: model.RoleUser, Content: "hi"},
			{ID: id.New(), ConversationID: conv.ID, Role: model.RoleAssistant, Content: "hello"},
		})).To(Succeed())
	})

	It("loads a conversation with its transcript", func() {
		svc := service.NewConversationService(mem.Stores())
		got, err := svc.Get(ctx, conv.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Messages).To(HaveLen(2))
		Expect(got.Messages[0].Role).To(Equal(model.RoleUser))
	})

	It("clears messages and keeps the conversation", func() {
		svc := service.NewConversationService(mem.Stores())
		n, err := svc.ClearMessages(ctx, conv.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(2)))

		got, err := svc.Get(ctx, conv.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Messages).To(BeEmpty())
	})

	It("reports a missing conversation", func() {
		_, err := service.NewConversationService(mem.Stores()).ClearMessages(ctx, id.New())
		Expect(operation.IsKind(err, operation.KindNotFound)).To(BeTrue())
		Expect(err.Error()).To(Equal("Conversation not found."))
	})

	It("snapshots conversations, tasks and boards", func() {
		board := &model.Board{ID: id.New(), Name: "B", Title: "B", Columns: []model.Column{{ID: id.New(), Title: "Todo"}}}
		Expect(mem.Stores().Boards().Create(ctx, board)).To(Succeed())
		_, err := mem.Stores().Tasks().CreateMany(ctx, []model.Task{
			{ID: id.New(), CaseNumber: "TASK-1", Title: "a", Description: "a", Status: "Todo", Priority: model.PriorityLow, BoardID: &board.ID},
			{ID: id.New(), CaseNumber: "TASK-2", Title: "b", Description: "b", Status: "Todo", Priority: model.PriorityLow},
		})
		Expect(err).NotTo(HaveOccurred())

		snap, err := service.NewSnapshotService(mem.Stores()).Load(ctx, &board.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Conversations).To(HaveLen(1))
		Expect(snap.Conversations[0].Messages).To(HaveLen(2))
		Expect(snap.Tasks).To(HaveLen(1))
		Expect(snap.Boards).To(HaveLen(1))
		Expect(snap.Boards[0].TaskCount).To(Equal(int64(1)))
	})

	It("returns empty lists rather than nil", func() {
		snap, err := service.NewSnapshotService(memory.New().Stores()).Load(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Conversations).NotTo(BeNil())
		Expect(snap.Tasks).NotTo(BeNil())
		Expect(snap.Boards).NotTo(BeNil())
	})
})
