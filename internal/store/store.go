// Package store holds the board collection and keeps it synchronized with a
// key-value backend. The whole collection lives in one document under one
// key; every mutation rewrites it before returning.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/gosuda/kanban/internal/domain"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "boards"

// Store is the board repository. It is safe for concurrent use; each
// operation holds a lock across its read-modify-write cycle.
type Store struct {
	kv  KV
	key string
	mu  sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key holding the collection.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New returns a Store persisting to kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// List returns summaries of all boards in collection order. Unreadable or
// malformed storage lists as empty.
func (s *Store) List(ctx context.Context) []domain.BoardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := s.loadOrEmpty(ctx)
	out := make([]domain.BoardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, b.Summary())
	}
	return out
}

// Get returns the board with the given ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := s.loadOrEmpty(ctx)
	i := indexOf(boards, id)
	if i < 0 {
		return domain.Board{}, false
	}
	return boards[i], true
}

// Create appends a new board with no columns. It reports false, without
// touching storage, when name is blank.
func (s *Store) Create(ctx context.Context, name string) (domain.Board, bool, error) {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return domain.Board{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.load(ctx)
	if err != nil {
		return domain.Board{}, false, fmt.Errorf("store.Create: %w", err)
	}

	b := domain.NewBoard(name)
	boards = append(boards, b)
	if err := s.save(ctx, boards); err != nil {
		return domain.Board{}, false, fmt.Errorf("store.Create: %w", err)
	}

	log.Debug().Str("board_id", b.ID).Msg("board created")
	return b, true, nil
}

// Rename replaces a board's name. It reports false when the board does not
// exist or name is blank.
func (s *Store) Rename(ctx context.Context, id, name string) (domain.Board, bool, error) {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return domain.Board{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.load(ctx)
	if err != nil {
		return domain.Board{}, false, fmt.Errorf("store.Rename: %w", err)
	}
	i := indexOf(boards, id)
	if i < 0 {
		return domain.Board{}, false, nil
	}

	boards[i].Name = name
	if err := s.save(ctx, boards); err != nil {
		return domain.Board{}, false, fmt.Errorf("store.Rename: %w", err)
	}
	return boards[i], true, nil
}

// Delete removes a board. It reports false when the board does not exist.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("store.Delete: %w", err)
	}
	i := indexOf(boards, id)
	if i < 0 {
		return false, nil
	}

	boards = slices.Delete(boards, i, i+1)
	if err := s.save(ctx, boards); err != nil {
		return false, fmt.Errorf("store.Delete: %w", err)
	}

	log.Debug().Str("board_id", id).Msg("board deleted")
	return true, nil
}

// Update reconciles an edited board into the collection, matching by ID. It
// reports false when no board has that ID. Storage is only written when the
// board actually changed.
func (s *Store) Update(ctx context.Context, b domain.Board) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("store.Update: %w", err)
	}
	i := indexOf(boards, b.ID)
	if i < 0 {
		return false, nil
	}
	if boards[i].Equal(b) {
		return true, nil
	}

	boards[i] = b
	if err := s.save(ctx, boards); err != nil {
		return false, fmt.Errorf("store.Update: %w", err)
	}
	return true, nil
}

// Apply runs fn against the current value of a board and reconciles the
// result, all under the store lock. It reports false when the board does not
// exist. An error from fn is returned as-is and nothing is written.
func (s *Store) Apply(ctx context.Context, id string, fn func(domain.Board) (domain.Board, error)) (domain.Board, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.load(ctx)
	if err != nil {
		return domain.Board{}, false, fmt.Errorf("store.Apply: %w", err)
	}
	i := indexOf(boards, id)
	if i < 0 {
		return domain.Board{}, false, nil
	}

	next, err := fn(boards[i])
	if err != nil {
		return boards[i], true, err
	}
	next.ID = id

	if boards[i].Equal(next) {
		return boards[i], true, nil
	}

	boards[i] = next
	if err := s.save(ctx, boards); err != nil {
		return domain.Board{}, true, fmt.Errorf("store.Apply: %w", err)
	}
	return next, true, nil
}

// load reads the collection. Absent and malformed documents read as an empty
// collection; any other read failure is returned so that no write follows
// it.
func (s *Store) load(ctx context.Context) ([]domain.Board, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []domain.Board{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", s.key, err)
	}

	boards, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("board storage malformed, treating as empty")
		return []domain.Board{}, nil
	}
	return boards, nil
}

// loadOrEmpty is load for read-only callers: unreadable storage reads as an
// empty collection.
func (s *Store) loadOrEmpty(ctx context.Context) []domain.Board {
	boards, err := s.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("board storage unreadable, treating as empty")
		return []domain.Board{}
	}
	return boards
}

func (s *Store) save(ctx context.Context, boards []domain.Board) error {
	data, err := Encode(boards)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	return nil
}

func indexOf(boards []domain.Board, id string) int {
	return slices.IndexFunc(boards, func(b domain.Board) bool { return b.ID == id })
}
