package editor

import (
	"fmt"

	"github.com/gosuda/kanban/internal/domain"
)

// Position locates a task inside a board.
type Position struct {
	Column int
	Index  int
}

// Index maps task IDs to their position. It is a snapshot: rebuild it after
// every mutation.
type Index map[string]Position

// NewIndex builds the task index for b. It fails with domain.ErrDuplicateID
// when a task ID appears more than once on the board.
func NewIndex(b domain.Board) (Index, error) {
	ix := make(Index, b.TaskCount())
	for ci := range b.Columns {
		for ti, t := range b.Columns[ci].Tasks {
			if _, dup := ix[t.ID]; dup {
				return nil, fmt.Errorf("editor.NewIndex: task %q: %w", t.ID, domain.ErrDuplicateID)
			}
			ix[t.ID] = Position{Column: ci, Index: ti}
		}
	}
	return ix, nil
}

// Lookup returns the position of taskID.
func (ix Index) Lookup(taskID string) (Position, bool) {
	p, ok := ix[taskID]
	return p, ok
}

// Validate checks the board's ID invariants: column IDs unique within the
// board and task IDs unique across all of its columns.
func Validate(b domain.Board) error {
	seen := make(map[string]struct{}, len(b.Columns))
	for _, c := range b.Columns {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("editor.Validate: board %q column %q: %w", b.ID, c.ID, domain.ErrDuplicateID)
		}
		seen[c.ID] = struct{}{}
	}

	if _, err := NewIndex(b); err != nil {
		return fmt.Errorf("editor.Validate: board %q: %w", b.ID, err)
	}
	return nil
}
