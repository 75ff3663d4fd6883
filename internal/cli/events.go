package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/byigitt/kaiban/internal/queue"
)

func newEventsCommand(e *env) *cobra.Command {
	var (
		stream string
		from   string
		follow bool
		block  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print board events published after each command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := e.App(cmd.Context())
			if err != nil {
				return err
			}
			if app.Redis == nil {
				return errors.New("events needs REDIS_URL")
			}

			wait := time.Duration(0)
			if follow {
				wait = block
			}
			if stream == "" {
				stream = app.Config.Redis.EventsStream
			}
			reader := queue.NewEventReader(app.Redis, stream, wait)
			out := cmd.OutOrStdout()

			lastID := from
			for {
				events, err := reader.Read(cmd.Context(), lastID)
				if err != nil {
					return err
				}
				for _, ev := range events {
					board := "-"
					if ev.BoardID != nil {
						board = fmt.Sprint(*ev.BoardID)
					}
					fmt.Fprintf(out, "%s\t%s\tconversation=%d\tboard=%s\t%s\n",
						ev.ID, ev.Action, ev.ConversationID, board, ev.Payload)
					lastID = ev.ID
				}
				if !follow {
					return nil
				}
				if err := cmd.Context().Err(); err != nil {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&stream, "stream", "", "Stream to read (default BOARD_EVENTS_STREAM)")
	cmd.Flags().StringVar(&from, "from", "0", `Entry id to start after ("$" for new events only)`)
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep waiting for new events")
	cmd.Flags().DurationVar(&block, "block", 5*time.Second, "How long each read waits when following")
	return cmd
}
