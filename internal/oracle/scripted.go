package oracle

import (
	"context"
	"errors"
	"sync"

	"github.com/byigitt/kaiban/internal/operation"
)

// ErrScriptExhausted is returned once every queued call has been proposed.
var ErrScriptExhausted = errors.New("scripted oracle has no more calls")

// Scripted proposes queued calls in order regardless of the prompt. It backs
// local development without a model and the service tests.
type Scripted struct {
	mu      sync.Mutex
	calls   []operation.Call
	prompts []Prompt
}

func NewScripted(calls ...operation.Call) *Scripted {
	return &Scripted{calls: calls}
}

// Enqueue appends calls to the script.
func (s *Scripted) Enqueue(calls ...operation.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, calls...)
}

func (s *Scripted) Propose(ctx context.Context, prompt Prompt) (operation.Call, error) {
	if err := ctx.Err(); err != nil {
		return operation.Call{}, operation.OracleFailure(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if len(s.calls) == 0 {
		return operation.Call{}, operation.OracleFailure(ErrScriptExhausted)
	}
	call := s.calls[0]
	s.calls = s.calls[1:]
	return call, nil
}

// Prompts returns every prompt seen so far.
func (s *Scripted) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}
