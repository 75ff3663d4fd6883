package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/oracle"
	"github.com/byigitt/kaiban/internal/service"
)

func newExecCommand(e *env) *cobra.Command {
	var (
		conversation   string
		board          string
		idempotencyKey string
		opName         string
		opArgs         string
	)

	cmd := &cobra.Command{
		Use:   "exec <command...>",
		Short: "Run one chat command against a conversation",
		Long: `Exec sends the command to the model and applies the operation it proposes.

With the scripted oracle (ORACLE_PROVIDER=scripted) pass --operation and
--args to choose the operation the "model" proposes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			convID, err := parseIDFlag("conversation", conversation)
			if err != nil {
				return err
			}
			if convID == nil {
				return errors.New("--conversation is required")
			}
			boardID, err := parseIDFlag("board", board)
			if err != nil {
				return err
			}

			app, err := e.App(cmd.Context())
			if err != nil {
				return err
			}

			if opName != "" {
				scripted, ok := app.Oracle.(*oracle.Scripted)
				if !ok {
					return errors.New("--operation needs ORACLE_PROVIDER=scripted")
				}
				if opArgs == "" {
					opArgs = "{}"
				}
				if !json.Valid([]byte(opArgs)) {
					return fmt.Errorf("--args is not valid JSON")
				}
				scripted.Enqueue(operation.Call{Name: operation.Name(opName), Args: json.RawMessage(opArgs)})
			}

			res, err := app.Services.Commands().Process(cmd.Context(), service.CommandRequest{
				Command:        strings.Join(args, " "),
				ConversationID: *convID,
				BoardID:        boardID,
				IdempotencyKey: idempotencyKey,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&conversation, "conversation", "", "Conversation id")
	cmd.Flags().StringVar(&board, "board", "", "Active board id")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Replay-safe key for the command")
	cmd.Flags().StringVar(&opName, "operation", "", "Operation the scripted oracle proposes")
	cmd.Flags().StringVar(&opArgs, "args", "", "JSON arguments for --operation")
	return cmd
}

func newNextCaseNumberCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "next-case-number",
		Short: "Print the next free task case number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := e.App(cmd.Context())
			if err != nil {
				return err
			}
			next, err := app.Services.Commands().NextCaseNumber(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TASK-%d\n", next)
			return nil
		},
	}
}
