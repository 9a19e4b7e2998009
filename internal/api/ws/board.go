package ws

import (
	"github.com/gosuda/kanban/internal/domain"
)

// Board event types.
const (
	EventBoardCreated = "board_created"
	EventBoardRenamed = "board_renamed"
	EventBoardDeleted = "board_deleted"
	EventBoardUpdated = "board_updated"
)

// BoardsChannel carries collection-level events (create, rename, delete).
const BoardsChannel = "boards"

// BoardEvent represents a real-time board update. Board is omitted for
// deletions.
type BoardEvent struct {
	Type    string        `json:"type"`
	BoardID string        `json:"board_id"`
	Board   *domain.Board `json:"board,omitempty"`
}

// BoardChannel returns the pub/sub channel name for a single board.
func BoardChannel(boardID string) string {
	return "board:" + boardID
}

// channels returns every channel an event is published on.
func (e BoardEvent) channels() []string {
	if e.Type == EventBoardUpdated {
		return []string{BoardChannel(e.BoardID)}
	}
	return []string{BoardsChannel, BoardChannel(e.BoardID)}
}
