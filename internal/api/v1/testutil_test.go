package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/kanban/internal/api/v1"
	"github.com/gosuda/kanban/internal/api/ws"
	"github.com/gosuda/kanban/internal/domain"
	"github.com/gosuda/kanban/internal/store"
	"github.com/gosuda/kanban/internal/store/memory"
)

var (
	errWrite = errors.New("disk full")
	errRead  = errors.New("i/o timeout")
)

// ---------------------------------------------------------------------------
// API fixture — real store on an in-memory backend
// ---------------------------------------------------------------------------

type fixture struct {
	api    humatest.TestAPI
	store  *store.Store
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	_, api := humatest.New(t)
	f := &fixture{
		api:    api,
		store:  store.New(memory.NewKV()),
		events: &recordingPublisher{},
	}
	registerAll(api, f.store, f.events)
	return f
}

func registerAll(api huma.API, s v1.BoardStore, events v1.EventPublisher) {
	v1.RegisterBoardRoutes(api, s, events)
	v1.RegisterColumnRoutes(api, s, events)
	v1.RegisterTaskRoutes(api, s, events)
	v1.RegisterMoveRoutes(api, s, events)
}

// seed creates a board with columns c1:[t1,t2], c2:[t3] through the store and
// returns it.
func (f *fixture) seed(t *testing.T) domain.Board {
	t.Helper()

	ctx := context.Background()
	b, ok, err := f.store.Create(ctx, "Roadmap")
	require.NoError(t, err)
	require.True(t, ok)

	b.Columns = []domain.Column{
		{ID: "c1", Name: "Todo", Tasks: []domain.Task{{ID: "t1", Name: "one"}, {ID: "t2", Name: "two"}}},
		{ID: "c2", Name: "Done", Tasks: []domain.Task{{ID: "t3", Name: "three", Completed: true}}},
	}
	ok, err = f.store.Update(ctx, b)
	require.NoError(t, err)
	require.True(t, ok)
	return b
}

func decodeBoard(t *testing.T, resp *httptest.ResponseRecorder) domain.Board {
	t.Helper()

	var b domain.Board
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &b))
	return b
}

func taskIDs(b domain.Board, columnID string) []string {
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return nil
	}
	ids := make([]string, 0, len(b.Columns[ci].Tasks))
	for _, task := range b.Columns[ci].Tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

// ---------------------------------------------------------------------------
// Mock BoardStore
// ---------------------------------------------------------------------------

type mockBoardStore struct {
	listFunc   func(ctx context.Context) []domain.BoardSummary
	getFunc    func(ctx context.Context, id string) (domain.Board, bool)
	createFunc func(ctx context.Context, name string) (domain.Board, bool, error)
	renameFunc func(ctx context.Context, id, name string) (domain.Board, bool, error)
	deleteFunc func(ctx context.Context, id string) (bool, error)
	applyFunc  func(ctx context.Context, id string, fn func(domain.Board) (domain.Board, error)) (domain.Board, bool, error)
}

func (m *mockBoardStore) List(ctx context.Context) []domain.BoardSummary {
	return m.listFunc(ctx)
}

func (m *mockBoardStore) Get(ctx context.Context, id string) (domain.Board, bool) {
	return m.getFunc(ctx, id)
}

func (m *mockBoardStore) Create(ctx context.Context, name string) (domain.Board, bool, error) {
	return m.createFunc(ctx, name)
}

func (m *mockBoardStore) Rename(ctx context.Context, id, name string) (domain.Board, bool, error) {
	return m.renameFunc(ctx, id, name)
}

func (m *mockBoardStore) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFunc(ctx, id)
}

func (m *mockBoardStore) Apply(ctx context.Context, id string, fn func(domain.Board) (domain.Board, error)) (domain.Board, bool, error) {
	return m.applyFunc(ctx, id, fn)
}

// ---------------------------------------------------------------------------
// Recording EventPublisher
// ---------------------------------------------------------------------------

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.BoardEvent
	err    error
}

func (r *recordingPublisher) PublishBoardEvent(_ context.Context, ev ws.BoardEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recordingPublisher) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}
