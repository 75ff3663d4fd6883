package oracle_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/byigitt/kaiban/common/llm"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/oracle"
)

var _ = Describe("Prompt", func() {
	It("appends the numbering hint", func() {
		p := oracle.Prompt{Command: "Fix login bug", NextCaseNumber: 8}
		Expect(p.Render()).To(Equal("Fix login bug\n\n[System: Start task numbering from TASK-8]"))
	})

	It("lists the board columns when known", func() {
		p := oracle.Prompt{Command: "add task", NextCaseNumber: 1, BoardColumns: []string{"Todo", "Done"}}
		Expect(p.Render()).To(HaveSuffix("\n[System: Board columns are \"Todo\", \"Done\". Use one of them as the status.]"))
	})
})

var _ = Describe("LLMOracle", func() {
	var (
		ctx    context.Context
		caller *mockToolCaller
		o      *oracle.LLMOracle
	)

	BeforeEach(func() {
		ctx = context.Background()
		caller = &mockToolCaller{}
		var err error
		o, err = oracle.NewLLMOracle(caller, oracle.LLMOptions{MaxTokens: 512, Temperature: llm.Temp(0)})
		Expect(err).NotTo(HaveOccurred())
	})

	respond := func(resp *llm.ToolResponse) {
		caller.chatFn = func(context.Context, llm.ToolRequest) (*llm.ToolResponse, error) {
			return resp, nil
		}
	}

	It("sends the instruction, the rendered prompt and all ten tools", func() {
		respond(&llm.ToolResponse{ToolCalls: []llm.ToolCall{{Name: "delete_task", Arguments: `{"caseNumber":"TASK-1"}`}}})

		call, err := o.Propose(ctx, oracle.Prompt{Command: "remove TASK-1", NextCaseNumber: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(call.Name).To(Equal(operation.DeleteTask))
		Expect(call.Args).To(MatchJSON(`{"caseNumber":"TASK-1"}`))

		Expect(caller.last.System).To(Equal(operation.SystemInstruction))
		Expect(caller.last.RequireTool).To(BeTrue())
		Expect(caller.last.Tools).To(HaveLen(10))
		Expect(caller.last.MaxTokens).To(Equal(512))
		Expect(caller.last.Messages).To(HaveLen(1))
		Expect(caller.last.Messages[0].Content).To(ContainSubstring("TASK-2"))
	})

	It("treats empty arguments as an empty object", func() {
		respond(&llm.ToolResponse{ToolCalls: []llm.ToolCall{{Name: "delete_board"}}})

		call, err := o.Propose(ctx, oracle.Prompt{Command: "delete board"})
		Expect(err).NotTo(HaveOccurred())
		Expect(call.Args).To(Equal(json.RawMessage("{}")))
	})

	DescribeTable("rejects responses that are not exactly one known call",
		func(resp *llm.ToolResponse, message string) {
			respond(resp)
			_, err := o.Propose(ctx, oracle.Prompt{Command: "x"})
			Expect(operation.IsKind(err, operation.KindContractViolation)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(message))
		},
		Entry("no calls", &llm.ToolResponse{}, "did not propose"),
		Entry("text only", &llm.ToolResponse{Content: "Sure!"}, "text instead of an operation: Sure!"),
		Entry("two calls", &llm.ToolResponse{ToolCalls: []llm.ToolCall{
			{Name: "delete_task", Arguments: `{}`},
			{Name: "delete_task", Arguments: `{}`},
		}}, "proposed 2 operations"),
		Entry("unknown name", &llm.ToolResponse{ToolCalls: []llm.ToolCall{{Name: "archive_task", Arguments: `{}`}}}, `unknown operation "archive_task"`),
	)

	It("reports transport failures as oracle failures", func() {
		caller.chatFn = func(context.Context, llm.ToolRequest) (*llm.ToolResponse, error) {
			return nil, errors.New("connection reset")
		}

		_, err := o.Propose(ctx, oracle.Prompt{Command: "x"})
		Expect(operation.IsKind(err, operation.KindOracleFailure)).To(BeTrue())
		Expect(err.Error()).To(Equal("model call failed: connection reset"))
	})
})

var _ = Describe("Scripted", func() {
	It("returns queued calls in order and records prompts", func() {
		s := oracle.NewScripted(operation.Call{Name: operation.DeleteTask, Args: json.RawMessage(`{"caseNumber":"TASK-1"}`)})
		s.Enqueue(operation.Call{Name: operation.UpdateBoard, Args: json.RawMessage(`{"name":"x"}`)})

		first, err := s.Propose(context.Background(), oracle.Prompt{Command: "one"})
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Name).To(Equal(operation.DeleteTask))

		second, err := s.Propose(context.Background(), oracle.Prompt{Command: "two"})
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Name).To(Equal(operation.UpdateBoard))

		_, err = s.Propose(context.Background(), oracle.Prompt{Command: "three"})
		Expect(operation.IsKind(err, operation.KindOracleFailure)).To(BeTrue())
		Expect(errors.Is(err, oracle.ErrScriptExhausted)).To(BeTrue())

		Expect(s.Prompts()).To(HaveLen(3))
		Expect(s.Prompts()[0].Command).To(Equal("one"))
	})
})
