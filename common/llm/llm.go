package llm

import (
	"context"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds LLM client configuration.
type Config struct {
	Provider string // "openai", "anthropic" or "gemini"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string // Model name (e.g., "gpt-4o-mini", "claude-sonnet-4-5-20250514")
}

// ToolCaller sends one turn with tool declarations and returns the tool
// calls the model made.
type ToolCaller interface {
	ChatWithTools(ctx context.Context, req ToolRequest) (*ToolResponse, error)
	Model() string
}

// ToolRequest is a single turn. When RequireTool is set the provider is told
// that the model must answer with exactly one tool call.
type ToolRequest struct {
	System      string
	Messages    []Message
	Tools       []Tool
	RequireTool bool
	MaxTokens   int
	Temperature *float64
}

// Message is a plain text conversation message.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Tool defines a function the LLM can call.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema object for the arguments
}

// ToolCall represents a tool invocation requested by the LLM.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // JSON-encoded arguments
}

// ToolResponse contains the LLM's response.
type ToolResponse struct {
	Content          string // Text the model produced alongside or instead of calls
	ToolCalls        []ToolCall
	FinishReason     string // "stop", "tool_calls", "length"
	PromptTokens     int
	CompletionTokens int
}

// NewToolCaller selects the provider named by cfg.Provider. Defaults to
// OpenAI if no provider is specified.
func NewToolCaller(ctx context.Context, cfg Config) (ToolCaller, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	case ProviderGemini:
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// Temp returns a pointer for ToolRequest.Temperature.
func Temp(t float64) *float64 {
	return &t
}

func maxTokensOrDefault(n int) int {
	if n == 0 {
		return 1024
	}
	return n
}

// requiredFields reads the "required" list of a JSON schema object.
func requiredFields(schema map[string]any) []string {
	switch v := schema["required"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, f := range v {
			if s, ok := f.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
