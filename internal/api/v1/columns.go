package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/kanban/internal/domain"
	"github.com/gosuda/kanban/internal/editor"
)

type AddColumnInput struct {
	BoardID string `path:"boardID" doc:"Board ID"`
	Body    NameBody
}

func RegisterColumnRoutes(api huma.API, store BoardStore, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-column",
		Method:        http.MethodPost,
		Path:          "/boards/{boardID}/columns",
		Summary:       "Append a column to a board",
		Tags:          []string{"Columns"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddColumnInput) (*BoardOutput, error) {
		name, err := requireName(input.Body.Name)
		if err != nil {
			return nil, err
		}

		b, _, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			return editor.AddColumn(b, name), nil
		})
		if err != nil {
			return nil, err
		}
		return &BoardOutput{Status: http.StatusCreated, Body: b}, nil
	})
}
