package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/common/logger"
	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/oracle"
	"github.com/byigitt/kaiban/internal/queue"
	"github.com/byigitt/kaiban/internal/store"
)

// CommandRequest is one chat command typed by the user.
type CommandRequest struct {
	Command        string
	ConversationID int64
	BoardID        *int64

	// IdempotencyKey, when set, makes a retried request return the first
	// result instead of applying the command again.
	IdempotencyKey string
}

// StartResult is what starting a conversation from pasted text produced.
type StartResult struct {
	Conversation *model.Conversation `json:"conversation"`
	Tasks        []model.Task        `json:"tasks"`
}

type CommandService interface {
	Process(ctx context.Context, req CommandRequest) (*operation.Result, error)
	StartConversation(ctx context.Context, text string, boardID *int64) (*StartResult, error)
	NextCaseNumber(ctx context.Context) (int64, error)
}

type commandService struct {
	stores      StoreProvider
	dispatcher  *dispatch.Dispatcher
	oracle      oracle.Oracle
	publisher   queue.Publisher
	idempotency queue.IdempotencyStore
}

func NewCommandService(
	stores StoreProvider,
	dispatcher *dispatch.Dispatcher,
	o oracle.Oracle,
	publisher queue.Publisher,
	idempotency queue.IdempotencyStore,
) CommandService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &commandService{
		stores:      stores,
		dispatcher:  dispatcher,
		oracle:      o,
		publisher:   publisher,
		idempotency: idempotency,
	}
}

func (s *commandService) Process(ctx context.Context, req CommandRequest) (*operation.Result, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: &req.ConversationID,
		BoardID:        req.BoardID,
		Component:      "kaiban.service.command",
	})

	command := strings.TrimSpace(req.Command)
	if command == "" {
		return nil, operation.InvalidInput(operation.FieldError{Field: "command", Message: "must not be empty"})
	}

	if req.IdempotencyKey != "" && s.idempotency != nil {
		state, stored, err := s.idempotency.Claim(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		switch state {
		case queue.InFlight:
			return nil, operation.Conflict("A request with this idempotency key is still being processed.")
		case queue.Completed:
			var res operation.Result
			if err := json.Unmarshal(stored, &res); err != nil {
				return nil, fmt.Errorf("decoding stored result: %w", err)
			}
			slog.InfoContext(ctx, "replayed idempotent command", "action", res.Action)
			return &res, nil
		}
	}

	res, err := s.process(ctx, command, req)
	if err != nil {
		s.release(ctx, req.IdempotencyKey)
		return nil, err
	}

	s.complete(ctx, req.IdempotencyKey, res)
	s.publish(ctx, req.ConversationID, req.BoardID, res)
	return res, nil
}

func (s *commandService) process(ctx context.Context, command string, req CommandRequest) (*operation.Result, error) {
	slog.DebugContext(ctx, "processing command", "command", logger.Truncate(command, 200))

	prompt, err := s.prompt(ctx, command, req.BoardID)
	if err != nil {
		return nil, err
	}

	call, err := s.oracle.Propose(ctx, prompt)
	if err != nil {
		return nil, err
	}

	args, err := operation.Validate(call)
	if err != nil {
		slog.WarnContext(ctx, "model proposed invalid arguments", "operation", call.Name, "error", err)
		return nil, err
	}

	return s.dispatcher.Dispatch(ctx, dispatch.Request{
		Args:           args,
		ConversationID: req.ConversationID,
		Command:        command,
		BoardID:        req.BoardID,
	})
}

// StartConversation creates a conversation titled after the first line of
// text. When text is not blank it is parsed into tasks, and the conversation,
// the tasks and the transcript pair are committed together.
func (s *commandService) StartConversation(ctx context.Context, text string, boardID *int64) (*StartResult, error) {
	conv := &model.Conversation{
		ID:    id.New(),
		Topic: model.DeriveTopic(text),
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: &conv.ID,
		BoardID:        boardID,
		Component:      "kaiban.service.command",
	})

	text = strings.TrimSpace(text)
	if text == "" {
		if err := s.stores.Conversations().Create(ctx, conv); err != nil {
			return nil, fmt.Errorf("creating conversation: %w", err)
		}
		slog.InfoContext(ctx, "conversation started")
		return &StartResult{Conversation: conv}, nil
	}

	prompt, err := s.prompt(ctx, text, boardID)
	if err != nil {
		return nil, err
	}
	call, err := s.oracle.Propose(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if call.Name != operation.CreateTasksFromText {
		return nil, operation.ContractViolation("expected %s when importing tasks, model proposed %s", operation.CreateTasksFromText, call.Name)
	}
	args, err := operation.Validate(call)
	if err != nil {
		return nil, err
	}

	res, err := s.dispatcher.Dispatch(ctx, dispatch.Request{
		Args:              args,
		ConversationID:    conv.ID,
		Command:           text,
		BoardID:           boardID,
		StartConversation: conv,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, conv.ID, boardID, res)
	slog.InfoContext(ctx, "conversation started from import", "tasks", len(res.Tasks))
	return &StartResult{Conversation: conv, Tasks: res.Tasks}, nil
}

func (s *commandService) NextCaseNumber(ctx context.Context) (int64, error) {
	caseNumbers, err := s.stores.Tasks().ListCaseNumbers(ctx, dispatch.CaseNumberPrefix)
	if err != nil {
		return 0, fmt.Errorf("listing case numbers: %w", err)
	}
	return dispatch.NextCaseNumber(caseNumbers), nil
}

func (s *commandService) prompt(ctx context.Context, command string, boardID *int64) (oracle.Prompt, error) {
	next, err := s.NextCaseNumber(ctx)
	if err != nil {
		return oracle.Prompt{}, err
	}
	prompt := oracle.Prompt{Command: command, NextCaseNumber: next}

	if boardID != nil {
		board, err := s.stores.Boards().GetByID(ctx, *boardID)
		switch {
		case err == nil:
			prompt.BoardColumns = board.ColumnTitles()
		case errors.Is(err, store.ErrNotFound):
			// The dispatcher reports the missing board for operations that need it.
		default:
			return oracle.Prompt{}, fmt.Errorf("loading board: %w", err)
		}
	}
	return prompt, nil
}

func (s *commandService) complete(ctx context.Context, key string, res *operation.Result) {
	if key == "" || s.idempotency == nil {
		return
	}
	data, err := json.Marshal(res)
	if err == nil {
		err = s.idempotency.Complete(ctx, key, data)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to store idempotent result", "error", err)
	}
}

func (s *commandService) release(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key", "error", err)
	}
}

// publish announces a committed result. Failures are logged only; the
// command already succeeded.
func (s *commandService) publish(ctx context.Context, conversationID int64, boardID *int64, res *operation.Result) {
	payload, err := json.Marshal(res)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode board event", "error", err)
		return
	}
	if res.BoardID != nil {
		boardID = res.BoardID
	} else if res.Board != nil {
		boardID = &res.Board.ID
	}

	if err := s.publisher.Publish(ctx, queue.BoardEvent{
		Action:         string(res.Action),
		ConversationID: conversationID,
		BoardID:        boardID,
		Payload:        payload,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish board event", "error", err, "action", res.Action)
	}
}
