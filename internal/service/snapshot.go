package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/byigitt/kaiban/internal/model"
)

// Snapshot is everything the board UI needs on load.
type Snapshot struct {
	Conversations []model.Conversation `json:"conversations"`
	Tasks         []model.Task         `json:"tasks"`
	Boards        []model.BoardSummary `json:"boards"`
}

type SnapshotService interface {
	Load(ctx context.Context, boardID *int64) (*Snapshot, error)
}

type snapshotService struct {
	stores StoreProvider
}

func NewSnapshotService(stores StoreProvider) SnapshotService {
	return &snapshotService{stores: stores}
}

// Load reads conversations with their messages, tasks (optionally limited to
// one board) and boards concurrently. The three reads are not one
// transaction.
func (s *snapshotService) Load(ctx context.Context, boardID *int64) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		convs, err := s.stores.Conversations().List(gctx)
		if err != nil {
			return fmt.Errorf("listing conversations: %w", err)
		}
		for i := range convs {
			msgs, err := s.stores.Messages().ListByConversation(gctx, convs[i].ID)
			if err != nil {
				return fmt.Errorf("listing messages of %d: %w", convs[i].ID, err)
			}
			convs[i].Messages = msgs
		}
		snap.Conversations = convs
		return nil
	})

	g.Go(func() error {
		tasks, err := s.stores.Tasks().List(gctx, boardID)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		snap.Tasks = tasks
		return nil
	})

	g.Go(func() error {
		boards, err := s.stores.Boards().List(gctx)
		if err != nil {
			return fmt.Errorf("listing boards: %w", err)
		}
		snap.Boards = boards
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snap.Conversations == nil {
		snap.Conversations = []model.Conversation{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	if snap.Boards == nil {
		snap.Boards = []model.BoardSummary{}
	}
	return snap, nil
}
