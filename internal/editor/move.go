package editor

import (
	"github.com/gosuda/kanban/internal/domain"
)

// MoveTask moves a task to targetIndex of the target column.
//
// Within one column this is an array move: the task is taken out and
// reinserted so that it ends up at targetIndex, shifting the tasks in between
// by one. Across columns the task is removed from its source column and
// inserted into the target column before the task currently at targetIndex.
// Indexes past the end are clamped. Unknown IDs, a negative index, or a move
// onto the task's own position return b unchanged.
func MoveTask(b domain.Board, taskID, targetColumnID string, targetIndex int) domain.Board {
	src, from, ok := locateTask(b, taskID)
	if !ok {
		return b
	}

	dst := b.ColumnIndex(targetColumnID)
	if dst < 0 || targetIndex < 0 {
		return b
	}

	if src == dst {
		tasks := b.Columns[src].Tasks
		to := min(targetIndex, len(tasks)-1)
		if to == from {
			return b
		}
		return replaceTasks(b, src, arrayMove(tasks, from, to))
	}

	task := b.Columns[src].Tasks[from]
	target := b.Columns[dst].Tasks
	to := min(targetIndex, len(target))

	cols := make([]domain.Column, len(b.Columns))
	copy(cols, b.Columns)
	cols[src].Tasks = removeAt(b.Columns[src].Tasks, from)
	cols[dst].Tasks = insertAt(target, to, task)

	return domain.Board{ID: b.ID, Name: b.Name, Columns: cols}
}

// Drop resolves a drag gesture. overID may name a task, in which case the
// dragged task takes that task's position, or a column, in which case the
// dragged task goes to the end of it. Dropping a task onto itself, or onto
// an ID that matches nothing, returns b unchanged.
func Drop(b domain.Board, activeID, overID string) domain.Board {
	if activeID == "" || overID == "" || activeID == overID {
		return b
	}

	if col, idx, ok := locateTask(b, overID); ok {
		return MoveTask(b, activeID, b.Columns[col].ID, idx)
	}
	if ci := b.ColumnIndex(overID); ci >= 0 {
		return MoveTask(b, activeID, overID, len(b.Columns[ci].Tasks))
	}

	return b
}

// locateTask scans every column for taskID.
func locateTask(b domain.Board, taskID string) (col, idx int, ok bool) {
	for ci := range b.Columns {
		if ti := b.Columns[ci].TaskIndex(taskID); ti >= 0 {
			return ci, ti, true
		}
	}
	return -1, -1, false
}

func arrayMove(tasks []domain.Task, from, to int) []domain.Task {
	moved := tasks[from]
	return insertAt(removeAt(tasks, from), to, moved)
}
