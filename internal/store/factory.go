package store

import (
	"github.com/byigitt/kaiban/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Conversations() ConversationStore {
	return newConversationStore(s.queries)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.queries)
}

func (s *Stores) Tasks() TaskStore {
	return newTaskStore(s.queries)
}

func (s *Stores) Boards() BoardStore {
	return newBoardStore(s.queries)
}

func (s *Stores) Columns() ColumnStore {
	return newColumnStore(s.queries)
}
