package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/kanban/internal/domain"
	"github.com/gosuda/kanban/internal/editor"
)

type MoveTaskInput struct {
	BoardID string `path:"boardID" doc:"Board ID"`
	Body    struct {
		TaskID   string `json:"task_id" minLength:"1" doc:"Task being moved"`
		OverID   string `json:"over_id,omitempty" doc:"Drop target: a task (take its place) or a column (append to it)"`
		ColumnID string `json:"column_id,omitempty" doc:"Target column when over_id is not given"`
		Index    *int   `json:"index,omitempty" doc:"Target position in column_id; defaults to the end"`
	}
}

func RegisterMoveRoutes(api huma.API, store BoardStore, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/moves",
		Summary:     "Move a task within or across columns",
		Description: "Either over_id (drag-and-drop target) or column_id with an optional index must be given. " +
			"Unknown IDs leave the board unchanged.",
		Tags: []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*BoardOutput, error) {
		body := input.Body
		if body.OverID == "" && body.ColumnID == "" {
			return nil, huma.Error422UnprocessableEntity("over_id or column_id is required")
		}

		b, _, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			if body.OverID != "" {
				return editor.Drop(b, body.TaskID, body.OverID), nil
			}
			return editor.MoveTask(b, body.TaskID, body.ColumnID, targetIndex(b, body.ColumnID, body.Index)), nil
		})
		if err != nil {
			return nil, err
		}
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})
}

// targetIndex resolves an omitted index to the end of the column.
func targetIndex(b domain.Board, columnID string, index *int) int {
	if index != nil {
		return *index
	}
	if ci := b.ColumnIndex(columnID); ci >= 0 {
		return len(b.Columns[ci].Tasks)
	}
	return 0
}
