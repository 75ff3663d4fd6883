package service

import (
	"context"

	"github.com/byigitt/kaiban/core/db"
	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/store"
	"github.com/byigitt/kaiban/internal/store/memory"
)

// StoreProvider exposes the stores services read and write.
type StoreProvider interface {
	Conversations() store.ConversationStore
	Messages() store.MessageStore
	Tasks() store.TaskStore
	Boards() store.BoardStore
	Columns() store.ColumnStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}

type memoryTxRunner struct {
	db *memory.DB
}

// NewMemoryTxRunner builds a TxRunner over the in-process store.
func NewMemoryTxRunner(db *memory.DB) TxRunner {
	return &memoryTxRunner{db: db}
}

func (r *memoryTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(s *memory.Stores) error {
		return fn(s)
	})
}
