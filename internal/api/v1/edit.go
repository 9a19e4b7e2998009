package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"

	"github.com/gosuda/kanban/internal/api/ws"
	"github.com/gosuda/kanban/internal/domain"
)

// BoardOutput is the response for every operation returning a whole board.
type BoardOutput struct {
	Status int
	Body   domain.Board
}

type BoardPathInput struct {
	BoardID string `path:"boardID" doc:"Board ID"`
}

type NameBody struct {
	Name string `json:"name" minLength:"1" doc:"Display name; surrounding whitespace is trimmed"`
}

// publish sends ev when a publisher is configured. Failures are logged
// because the mutation has already been persisted.
func publish(ctx context.Context, events EventPublisher, ev ws.BoardEvent) {
	if events == nil {
		return
	}
	if err := events.PublishBoardEvent(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("type", ev.Type).Str("board_id", ev.BoardID).Msg("publish board event")
	}
}

// edit runs an editor mutation against a stored board and publishes
// board_updated when it changed anything. Unknown boards map to 404, blank
// names to 422 and storage failures to 500. changed reports whether the board
// value differs from what was stored.
func edit(ctx context.Context, store BoardStore, events EventPublisher, boardID string, fn func(domain.Board) (domain.Board, error)) (board domain.Board, changed bool, err error) {
	var before domain.Board
	board, found, err := store.Apply(ctx, boardID, func(b domain.Board) (domain.Board, error) {
		before = b
		return fn(b)
	})
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return domain.Board{}, false, huma.Error422UnprocessableEntity("name must not be blank")
	case err != nil:
		return domain.Board{}, false, huma.Error500InternalServerError("failed to save board", err)
	case !found:
		return domain.Board{}, false, huma.Error404NotFound("board not found")
	}

	if before.Equal(board) {
		return board, false, nil
	}

	publish(ctx, events, ws.BoardEvent{Type: ws.EventBoardUpdated, BoardID: board.ID, Board: &board})
	return board, true, nil
}

// requireName normalizes a request name, rejecting blanks with 422.
func requireName(name string) (string, error) {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return "", huma.Error422UnprocessableEntity("name must not be blank")
	}
	return name, nil
}
