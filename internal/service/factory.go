package service

import (
	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/oracle"
	"github.com/byigitt/kaiban/internal/queue"
)

// Deps are the collaborators every service is built from. Publisher and
// Idempotency may be nil when Redis is not configured.
type Deps struct {
	Stores      StoreProvider
	TxRunner    TxRunner
	Dispatcher  *dispatch.Dispatcher
	Oracle      oracle.Oracle
	Publisher   queue.Publisher
	Idempotency queue.IdempotencyStore
}

type Services struct {
	deps Deps
}

func NewServices(deps Deps) *Services {
	if deps.Publisher == nil {
		deps.Publisher = queue.NopPublisher{}
	}
	return &Services{deps: deps}
}

func (s *Services) Commands() CommandService {
	return NewCommandService(s.deps.Stores, s.deps.Dispatcher, s.deps.Oracle, s.deps.Publisher, s.deps.Idempotency)
}

func (s *Services) Conversations() ConversationService {
	return NewConversationService(s.deps.Stores)
}

func (s *Services) Boards() BoardService {
	return NewBoardService(s.deps.Stores, s.deps.TxRunner)
}

func (s *Services) Tasks() TaskService {
	return NewTaskService(s.deps.Stores, s.deps.TxRunner)
}

func (s *Services) Snapshot() SnapshotService {
	return NewSnapshotService(s.deps.Stores)
}
