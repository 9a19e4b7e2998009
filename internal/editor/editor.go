// Package editor applies mutations to a single board.
//
// Every function takes the current domain.Board and returns a new one; the
// input is never modified. Columns a mutation does not touch are carried over
// as-is, so their task slices keep sharing storage with the input. Lookup
// failures (unknown column or task IDs) are silent no-ops that return the
// input board.
package editor

import (
	"github.com/gosuda/kanban/internal/domain"
)

// AddColumn appends an empty column. A blank name is a no-op.
func AddColumn(b domain.Board, name string) domain.Board {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return b
	}

	cols := make([]domain.Column, len(b.Columns), len(b.Columns)+1)
	copy(cols, b.Columns)
	cols = append(cols, domain.NewColumn(name))

	return domain.Board{ID: b.ID, Name: b.Name, Columns: cols}
}

// AddTask appends an open task to the column. A blank name returns
// domain.ErrEmptyName; an unknown column returns b unchanged with a zero Task.
func AddTask(b domain.Board, columnID, name string) (domain.Board, domain.Task, error) {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return b, domain.Task{}, domain.ErrEmptyName
	}

	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b, domain.Task{}, nil
	}

	task := domain.NewTask(name)
	return replaceTasks(b, ci, insertAt(b.Columns[ci].Tasks, len(b.Columns[ci].Tasks), task)), task, nil
}

// RenameTask sets a task's name. Blank names and unknown IDs are no-ops.
func RenameTask(b domain.Board, columnID, taskID, name string) domain.Board {
	name, ok := domain.NormalizeName(name)
	if !ok {
		return b
	}

	return updateTask(b, columnID, taskID, func(t domain.Task) domain.Task {
		t.Name = name
		return t
	})
}

// ToggleTask flips a task's completed flag.
func ToggleTask(b domain.Board, columnID, taskID string) domain.Board {
	return updateTask(b, columnID, taskID, func(t domain.Task) domain.Task {
		t.Completed = !t.Completed
		return t
	})
}

// DeleteTask removes a task from its column.
func DeleteTask(b domain.Board, columnID, taskID string) domain.Board {
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b
	}
	ti := b.Columns[ci].TaskIndex(taskID)
	if ti < 0 {
		return b
	}

	return replaceTasks(b, ci, removeAt(b.Columns[ci].Tasks, ti))
}

func updateTask(b domain.Board, columnID, taskID string, fn func(domain.Task) domain.Task) domain.Board {
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b
	}
	ti := b.Columns[ci].TaskIndex(taskID)
	if ti < 0 {
		return b
	}

	tasks := make([]domain.Task, len(b.Columns[ci].Tasks))
	copy(tasks, b.Columns[ci].Tasks)
	tasks[ti] = fn(tasks[ti])

	return replaceTasks(b, ci, tasks)
}

// replaceTasks returns a copy of b whose column ci holds tasks. Other columns
// are copied by value and keep their task storage.
func replaceTasks(b domain.Board, ci int, tasks []domain.Task) domain.Board {
	cols := make([]domain.Column, len(b.Columns))
	copy(cols, b.Columns)
	cols[ci].Tasks = tasks

	return domain.Board{ID: b.ID, Name: b.Name, Columns: cols}
}

func removeAt(tasks []domain.Task, i int) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

func insertAt(tasks []domain.Task, i int, t domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)+1)
	out = append(out, tasks[:i]...)
	out = append(out, t)
	return append(out, tasks[i:]...)
}
