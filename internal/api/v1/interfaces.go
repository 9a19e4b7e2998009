package v1

import (
	"context"

	"github.com/gosuda/kanban/internal/api/ws"
	"github.com/gosuda/kanban/internal/domain"
)

// BoardStore abstracts the board repository for handler testing.
// *store.Store satisfies this interface.
type BoardStore interface {
	List(ctx context.Context) []domain.BoardSummary
	Get(ctx context.Context, id string) (domain.Board, bool)
	Create(ctx context.Context, name string) (domain.Board, bool, error)
	Rename(ctx context.Context, id, name string) (domain.Board, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Apply(ctx context.Context, id string, fn func(domain.Board) (domain.Board, error)) (domain.Board, bool, error)
}

// EventPublisher abstracts live-update fan-out for handler testing.
// *ws.Hub satisfies this interface. A nil EventPublisher disables events.
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, ev ws.BoardEvent) error
}
