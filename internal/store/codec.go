package store

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/gosuda/kanban/internal/domain"
	"github.com/gosuda/kanban/internal/editor"
)

// ErrMalformedDocument is returned by Decode when the stored bytes are not a
// valid board collection.
var ErrMalformedDocument = errors.New("store: malformed document")

// Encode serializes the board collection in the persisted format. Nil column
// and task slices are written as empty arrays.
func Encode(boards []domain.Board) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(normalize(boards))
	if err != nil {
		return nil, fmt.Errorf("store.Encode: %w", err)
	}
	return data, nil
}

// Decode parses a persisted board collection. The document must match the
// schema and every board must satisfy the ID invariants; anything else
// yields ErrMalformedDocument.
func Decode(data []byte) ([]domain.Board, error) {
	var raw any
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("store.Decode: %w: %w", ErrMalformedDocument, err)
	}
	if err := documentSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("store.Decode: %w: %w", ErrMalformedDocument, err)
	}

	var boards []domain.Board
	if err := sonic.ConfigStd.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("store.Decode: %w: %w", ErrMalformedDocument, err)
	}
	boards = normalize(boards)

	seen := make(map[string]struct{}, len(boards))
	for _, b := range boards {
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("store.Decode: %w: board %q: %w", ErrMalformedDocument, b.ID, domain.ErrDuplicateID)
		}
		seen[b.ID] = struct{}{}

		if err := editor.Validate(b); err != nil {
			return nil, fmt.Errorf("store.Decode: %w: %w", ErrMalformedDocument, err)
		}
	}

	return boards, nil
}

// normalize returns a copy of boards in which every slice is non-nil.
func normalize(boards []domain.Board) []domain.Board {
	out := make([]domain.Board, len(boards))
	for i, b := range boards {
		cols := make([]domain.Column, len(b.Columns))
		for j, c := range b.Columns {
			if c.Tasks == nil {
				c.Tasks = []domain.Task{}
			}
			cols[j] = c
		}
		out[i] = domain.Board{ID: b.ID, Name: b.Name, Columns: cols}
	}
	return out
}
