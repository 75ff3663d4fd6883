// Package dispatch applies validated operations to storage. Each dispatch is
// one transaction covering the mutation and the transcript pair that
// describes it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/byigitt/kaiban/common/logger"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

// Request is one validated operation together with where it applies.
type Request struct {
	Args           operation.Args
	ConversationID int64
	Command        string
	BoardID        *int64

	// StartConversation, when set, is created inside the same transaction
	// before the operation is applied. Its ID must equal ConversationID.
	StartConversation *model.Conversation
}

// outcome is what a routine hands back: the result for the caller and the
// assistant message for the transcript.
type outcome struct {
	result  *operation.Result
	summary string
}

var noActiveBoard = map[operation.Name]string{
	operation.UpdateBoard:  "No active board to update.",
	operation.DeleteBoard:  "No active board to delete.",
	operation.CreateColumn: "No active board to add column to.",
	operation.UpdateColumn: "No active board to update column in.",
	operation.DeleteColumn: "No active board to delete column from.",
}

type Dispatcher struct {
	txRunner TxRunner
	now      func() time.Time
}

func New(txRunner TxRunner) *Dispatcher {
	return &Dispatcher{
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch applies req atomically. Either the mutation and both transcript
// messages are committed, or nothing is. Errors are always *operation.Error
// except for unexpected storage failures.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*operation.Result, error) {
	if req.Args == nil {
		return nil, operation.ContractViolation("no operation to apply")
	}
	name := req.Args.Operation()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: &req.ConversationID,
		BoardID:        req.BoardID,
		Operation:      logger.Ptr(string(name)),
		Component:      "kaiban.dispatch",
	})
	sc := logger.StartSpan(ctx, "dispatch."+string(name))
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(
		attribute.String("operation", string(name)),
		attribute.Int64("conversation_id", req.ConversationID),
	)

	if err := precheck(name, req); err != nil {
		slog.InfoContext(ctx, "operation rejected", "error", err)
		return nil, err
	}

	var out outcome
	err := d.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if req.StartConversation != nil {
			if err := stores.Conversations().Create(ctx, req.StartConversation); err != nil {
				return fmt.Errorf("creating conversation: %w", err)
			}
		}

		if _, err := stores.Conversations().GetByID(ctx, req.ConversationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return operation.NotFound("Conversation not found.")
			}
			return fmt.Errorf("loading conversation: %w", err)
		}

		var err error
		out, err = d.apply(ctx, stores, req)
		if err != nil {
			return err
		}

		return d.appendTranscript(ctx, stores, req, out.summary)
	})
	if err != nil {
		err = translate(name, err)
		if _, ok := operation.KindOf(err); ok {
			sc.RecordError(err)
			slog.InfoContext(ctx, "operation rejected", "error", err)
		} else {
			sc.Fail(err)
			slog.ErrorContext(ctx, "operation failed", "error", err)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "operation applied", "action", out.result.Action)
	return out.result, nil
}

// precheck rejects requests that can be refused without touching storage.
func precheck(name operation.Name, req Request) error {
	if args, ok := req.Args.(operation.DeleteBoardArgs); ok && !args.Confirmed {
		return operation.Unconfirmed("Board deletion not confirmed.")
	}
	if name.BoardScoped() && req.BoardID == nil {
		return operation.NotFound("%s", noActiveBoard[name])
	}
	return nil
}

func (d *Dispatcher) apply(ctx context.Context, stores StoreProvider, req Request) (outcome, error) {
	switch args := req.Args.(type) {
	case operation.CreateTasksArgs:
		return d.createTasks(ctx, stores, req, args)
	case operation.UpdateTaskStatusArgs:
		return d.updateTaskStatus(ctx, stores, args)
	case operation.DeleteTaskArgs:
		return d.deleteTask(ctx, stores, args)
	case operation.UpdateTaskPropertiesArgs:
		return d.updateTaskProperties(ctx, stores, args)
	case operation.CreateBoardArgs:
		return d.createBoard(ctx, stores, args)
	case operation.UpdateBoardArgs:
		return d.updateBoard(ctx, stores, *req.BoardID, args)
	case operation.DeleteBoardArgs:
		return d.deleteBoard(ctx, stores, *req.BoardID)
	case operation.CreateColumnArgs:
		return d.createColumn(ctx, stores, *req.BoardID, args)
	case operation.UpdateColumnArgs:
		return d.updateColumn(ctx, stores, *req.BoardID, args)
	case operation.DeleteColumnArgs:
		return d.deleteColumn(ctx, stores, *req.BoardID, args)
	default:
		return outcome{}, operation.ContractViolation("unsupported operation %q", req.Args.Operation())
	}
}

// translate makes sure storage sentinels never reach the caller.
func translate(name operation.Name, err error) error {
	if _, ok := operation.KindOf(err); ok {
		return err
	}
	switch {
	case errors.Is(err, store.ErrConflict):
		return &operation.Error{Kind: operation.KindConflict, Message: "The change conflicts with an existing record.", Err: err}
	case errors.Is(err, store.ErrNotFound):
		return &operation.Error{Kind: operation.KindNotFound, Message: "A referenced record was not found.", Err: err}
	}
	return fmt.Errorf("applying %s: %w", name, err)
}

func (d *Dispatcher) timestamp() string {
	return d.now().Format(time.RFC3339Nano)
}
