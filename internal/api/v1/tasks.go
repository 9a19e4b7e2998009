package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/kanban/internal/domain"
	"github.com/gosuda/kanban/internal/editor"
)

type AddTaskInput struct {
	BoardID  string `path:"boardID" doc:"Board ID"`
	ColumnID string `path:"columnID" doc:"Column ID"`
	Body     NameBody
}

type TaskPathInput struct {
	BoardID  string `path:"boardID" doc:"Board ID"`
	ColumnID string `path:"columnID" doc:"Column ID"`
	TaskID   string `path:"taskID" doc:"Task ID"`
}

type RenameTaskInput struct {
	BoardID  string `path:"boardID" doc:"Board ID"`
	ColumnID string `path:"columnID" doc:"Column ID"`
	TaskID   string `path:"taskID" doc:"Task ID"`
	Body     NameBody
}

// Unknown column or task IDs leave the board unchanged and still answer 200
// with the current board.
func RegisterTaskRoutes(api huma.API, store BoardStore, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-task",
		Method:        http.MethodPost,
		Path:          "/boards/{boardID}/columns/{columnID}/tasks",
		Summary:       "Append a task to a column",
		Tags:          []string{"Tasks"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AddTaskInput) (*BoardOutput, error) {
		b, changed, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			next, _, err := editor.AddTask(b, input.ColumnID, input.Body.Name)
			return next, err
		})
		if err != nil {
			return nil, err
		}

		status := http.StatusCreated
		if !changed {
			status = http.StatusOK
		}
		return &BoardOutput{Status: status, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rename-task",
		Method:      http.MethodPatch,
		Path:        "/boards/{boardID}/columns/{columnID}/tasks/{taskID}",
		Summary:     "Rename a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *RenameTaskInput) (*BoardOutput, error) {
		name, err := requireName(input.Body.Name)
		if err != nil {
			return nil, err
		}

		b, _, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			return editor.RenameTask(b, input.ColumnID, input.TaskID, name), nil
		})
		if err != nil {
			return nil, err
		}
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-task",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/columns/{columnID}/tasks/{taskID}/toggle",
		Summary:     "Flip a task's completed flag",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *TaskPathInput) (*BoardOutput, error) {
		b, _, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			return editor.ToggleTask(b, input.ColumnID, input.TaskID), nil
		})
		if err != nil {
			return nil, err
		}
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/boards/{boardID}/columns/{columnID}/tasks/{taskID}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *TaskPathInput) (*BoardOutput, error) {
		b, _, err := edit(ctx, store, events, input.BoardID, func(b domain.Board) (domain.Board, error) {
			return editor.DeleteTask(b, input.ColumnID, input.TaskID), nil
		})
		if err != nil {
			return nil, err
		}
		return &BoardOutput{Status: http.StatusOK, Body: b}, nil
	})
}
