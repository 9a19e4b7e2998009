package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/kanban/internal/api/ws"
	"github.com/gosuda/kanban/internal/domain"
)

type ListBoardsOutput struct {
	Body []domain.BoardSummary
}

type CreateBoardInput struct {
	Body NameBody
}

type RenameBoardInput struct {
	BoardID string `path:"boardID" doc:"Board ID"`
	Body    NameBody
}

func RegisterBoardRoutes(api huma.API, store BoardStore, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List boards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		return &ListBoardsOutput{Body: store.List(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-board",
		Method:        http.MethodPost,
		Path:          "/boards",
		Summary:       "Create a board",
		Tags:          []string{"Boards"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateBoardInput) (*BoardOutput, error) {
		name, err := requireName(input.Body.Name)
		if err != nil {
			return nil, err
		}

		b, ok, err := store.Create(ctx, name)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to create board", err)
		}
		if !ok {
			return nil, huma.Error422UnprocessableEntity("name must not be blank")
		}

		publish(ctx, events, ws.BoardEvent{Type: ws.EventBoardCreated, BoardID: b.ID, Board: &b})
		return &BoardOutput{Status: http.StatusCreated, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{boardID}",
		Summary:     "Get a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *BoardPathInput) (*BoardOutput, error) {
		b, ok := store.Get(ctx, input.BoardID)
		if !ok {
			return nil, huma.Error404NotFound("board not found")
		}
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rename-board",
		Method:      http.MethodPatch,
		Path:        "/boards/{boardID}",
		Summary:     "Rename a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *RenameBoardInput) (*BoardOutput, error) {
		name, err := requireName(input.Body.Name)
		if err != nil {
			return nil, err
		}

		b, ok, err := store.Rename(ctx, input.BoardID, name)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to rename board", err)
		}
		if !ok {
			return nil, huma.Error404NotFound("board not found")
		}

		publish(ctx, events, ws.BoardEvent{Type: ws.EventBoardRenamed, BoardID: b.ID, Board: &b})
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board",
		Method:      http.MethodDelete,
		Path:        "/boards/{boardID}",
		Summary:     "Delete a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *BoardPathInput) (*struct{}, error) {
		ok, err := store.Delete(ctx, input.BoardID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to delete board", err)
		}
		if !ok {
			return nil, huma.Error404NotFound("board not found")
		}

		publish(ctx, events, ws.BoardEvent{Type: ws.EventBoardDeleted, BoardID: input.BoardID})
		return nil, nil
	})
}
