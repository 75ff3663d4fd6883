// Package oracle turns a natural-language command into one proposed
// operation call. The oracle never touches storage; what it proposes is
// validated and applied by the caller.
package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/byigitt/kaiban/internal/operation"
)

// Oracle proposes exactly one operation call for a prompt.
type Oracle interface {
	Propose(ctx context.Context, prompt Prompt) (operation.Call, error)
}

// Prompt is the user turn sent to the model.
type Prompt struct {
	Command        string
	NextCaseNumber int64

	// BoardColumns lists the active board's column titles, if any, so the
	// model can pick an existing status.
	BoardColumns []string
}

// Render produces the text sent as the user message.
func (p Prompt) Render() string {
	var b strings.Builder
	b.WriteString(p.Command)
	fmt.Fprintf(&b, "\n\n[System: Start task numbering from TASK-%d]", p.NextCaseNumber)

	if len(p.BoardColumns) > 0 {
		quoted := make([]string, len(p.BoardColumns))
		for i, c := range p.BoardColumns {
			quoted[i] = strconv.Quote(c)
		}
		fmt.Fprintf(&b, "\n[System: Board columns are %s. Use one of them as the status.]", strings.Join(quoted, ", "))
	}
	return b.String()
}
