package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/byigitt/kaiban/common/llm"
	"github.com/byigitt/kaiban/common/logger"
	"github.com/byigitt/kaiban/internal/operation"
)

// LLMOptions tune the model call.
type LLMOptions struct {
	MaxTokens   int
	Temperature *float64
}

// LLMOracle asks a tool-calling model for a single operation call.
type LLMOracle struct {
	caller llm.ToolCaller
	tools  []llm.Tool
	opts   LLMOptions
}

// NewLLMOracle builds the tool declarations once from the operation contract.
func NewLLMOracle(caller llm.ToolCaller, opts LLMOptions) (*LLMOracle, error) {
	defs, err := operation.Definitions()
	if err != nil {
		return nil, fmt.Errorf("building tool definitions: %w", err)
	}

	tools := make([]llm.Tool, len(defs))
	for i, d := range defs {
		tools[i] = llm.Tool{
			Name:        string(d.Name),
			Description: d.Description,
			Parameters:  d.Parameters,
		}
	}

	return &LLMOracle{caller: caller, tools: tools, opts: opts}, nil
}

func (o *LLMOracle) Propose(ctx context.Context, prompt Prompt) (operation.Call, error) {
	sc := logger.StartSpan(ctx, "oracle.propose")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.String("model", o.caller.Model()))

	resp, err := o.caller.ChatWithTools(ctx, llm.ToolRequest{
		System:      operation.SystemInstruction,
		Messages:    []llm.Message{{Role: "user", Content: prompt.Render()}},
		Tools:       o.tools,
		RequireTool: true,
		MaxTokens:   o.opts.MaxTokens,
		Temperature: o.opts.Temperature,
	})
	if err != nil {
		sc.Fail(err)
		slog.ErrorContext(ctx, "model call failed", "error", err, "model", o.caller.Model())
		return operation.Call{}, operation.OracleFailure(err)
	}

	call, err := singleCall(resp)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "model response rejected",
			"error", err,
			"tool_calls", len(resp.ToolCalls),
			"finish_reason", resp.FinishReason)
		return operation.Call{}, err
	}

	sc.SetAttributes(attribute.String("operation", string(call.Name)))
	slog.DebugContext(ctx, "model proposed operation", "operation", call.Name)
	return call, nil
}

func singleCall(resp *llm.ToolResponse) (operation.Call, error) {
	switch len(resp.ToolCalls) {
	case 0:
		if text := strings.TrimSpace(resp.Content); text != "" {
			return operation.Call{}, operation.ContractViolation("model replied with text instead of an operation: %s", text)
		}
		return operation.Call{}, operation.ContractViolation("model did not propose an operation")
	case 1:
	default:
		return operation.Call{}, operation.ContractViolation("model proposed %d operations, expected exactly one", len(resp.ToolCalls))
	}

	tc := resp.ToolCalls[0]
	name := operation.Name(tc.Name)
	if !name.Valid() {
		return operation.Call{}, operation.ContractViolation("model proposed unknown operation %q", tc.Name)
	}

	args := json.RawMessage(tc.Arguments)
	if strings.TrimSpace(tc.Arguments) == "" {
		args = json.RawMessage("{}")
	}
	return operation.Call{Name: name, Args: args}, nil
}
