// Package memory is an in-process implementation of the store interfaces.
// Transactions run against a private copy of the state which replaces the
// committed state only when the transaction body succeeds, so a failed
// operation leaves nothing behind.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/store"
)

type state struct {
	conversations map[int64]model.Conversation
	messages      []model.ConversationMessage
	tasks         map[int64]model.Task
	boards        map[int64]model.Board // Columns unset; see columns
	columns       map[int64]model.Column
}

func newState() *state {
	return &state{
		conversations: map[int64]model.Conversation{},
		tasks:         map[int64]model.Task{},
		boards:        map[int64]model.Board{},
		columns:       map[int64]model.Column{},
	}
}

// clone copies the containers. Stored values are never mutated in place, so
// sharing their pointers and metadata maps is safe.
func (s *state) clone() *state {
	return &state{
		conversations: maps.Clone(s.conversations),
		messages:      append([]model.ConversationMessage(nil), s.messages...),
		tasks:         maps.Clone(s.tasks),
		boards:        maps.Clone(s.boards),
		columns:       maps.Clone(s.columns),
	}
}

// DB holds the committed state. Transactions are serialized.
type DB struct {
	mu     sync.Mutex
	state  *state
	nextID int64
	now    func() time.Time
}

func New() *DB {
	return &DB{
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithTx runs fn with stores bound to a private copy of the state and commits
// the copy when fn returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(stores *Stores) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := db.state.clone()
	if err := fn(&Stores{db: db, tx: work}); err != nil {
		return err
	}
	db.state = work
	return nil
}

// Stores returns stores that apply each call as its own transaction.
func (db *DB) Stores() *Stores {
	return &Stores{db: db}
}

// Stores is the memory counterpart of store.Stores.
type Stores struct {
	db *DB
	tx *state
}

func (s *Stores) Conversations() store.ConversationStore { return &conversationStore{s} }
func (s *Stores) Messages() store.MessageStore           { return &messageStore{s} }
func (s *Stores) Tasks() store.TaskStore                 { return &taskStore{s} }
func (s *Stores) Boards() store.BoardStore               { return &boardStore{s} }
func (s *Stores) Columns() store.ColumnStore             { return &columnStore{s} }

// do runs fn against the transaction state, or inside a fresh single-call
// transaction when s is not bound to one.
func (s *Stores) do(ctx context.Context, fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.WithTx(ctx, func(tx *Stores) error {
		return fn(tx.tx)
	})
}

// assignID is only reached when a caller leaves ID unset. Callers hold db.mu.
func (s *Stores) assignID(id int64) int64 {
	if id != 0 {
		return id
	}
	s.db.nextID++
	return s.db.nextID
}

func (s *Stores) now() time.Time {
	return s.db.now()
}
