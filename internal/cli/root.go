// Package cli provides the kaiban command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/byigitt/kaiban/internal/bootstrap"
)

// Loader builds the application graph on first use. Commands that only
// print help never call it.
type Loader func(ctx context.Context) (*bootstrap.App, error)

type env struct {
	load Loader
	app  *bootstrap.App
}

func (e *env) App(ctx context.Context) (*bootstrap.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	app, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	e.app = app
	return app, nil
}

func (e *env) close() {
	if e.app != nil {
		_ = e.app.Close()
	}
}

// Execute runs the command line in args and releases whatever the commands
// opened.
func Execute(ctx context.Context, load Loader, version string, args []string, out io.Writer) error {
	e := &env{load: load}
	defer e.close()

	root := newRootCommand(e, version)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func newRootCommand(e *env, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "kaiban",
		Short: "Drive a kanban board with natural language",
		Long: `kaiban turns chat commands into board operations.

Each command is sent to the configured model, which proposes exactly one
operation. The operation is validated and applied in a single transaction
together with the conversation transcript.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCommand(e),
		newExecCommand(e),
		newNextCaseNumberCommand(e),
		newConversationCommand(e),
		newEventsCommand(e),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDFlag(name, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("--%s: invalid id %q", name, raw)
	}
	return &v, nil
}
