package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newConversationCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Manage conversations",
	}
	cmd.AddCommand(newConversationStartCommand(e))
	return cmd
}

func newConversationStartCommand(e *env) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "start [text...]",
		Short: "Start a conversation, importing tasks from the text",
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseIDFlag("board", board)
			if err != nil {
				return err
			}
			app, err := e.App(cmd.Context())
			if err != nil {
				return err
			}

			res, err := app.Services.Commands().StartConversation(cmd.Context(), strings.Join(args, " "), boardID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board the imported tasks belong to")
	return cmd
}
