package editor

import (
	"github.com/gosuda/kanban/internal/domain"
)

// DragState is the phase of a drag gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragDropped
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Drag tracks a single drag gesture: idle -> dragging -> dropped -> idle, or
// dragging -> idle on cancel. The zero value is idle.
type Drag struct {
	// Observe, when set, is called on every state change.
	Observe func(from, to DragState)

	state  DragState
	active domain.Task
}

// State returns the current phase.
func (d *Drag) State() DragState {
	return d.state
}

// Start captures taskID as the dragged task. It reports false and leaves the
// gesture idle when the task is not on the board or the board's task IDs are
// not unique.
func (d *Drag) Start(b domain.Board, taskID string) bool {
	ix, err := NewIndex(b)
	if err != nil {
		d.reset()
		return false
	}
	pos, ok := ix.Lookup(taskID)
	if !ok {
		d.reset()
		return false
	}

	d.active = b.Columns[pos.Column].Tasks[pos.Index]
	d.transition(DragDragging)
	return true
}

// Active returns the dragged task while a gesture is in progress, for
// rendering a preview.
func (d *Drag) Active() (domain.Task, bool) {
	if d.state != DragDragging {
		return domain.Task{}, false
	}
	return d.active, true
}

// Drop resolves the gesture against overID (see editor.Drop) and returns to
// idle. The bool is false, and b is returned unchanged, when no gesture was
// in progress or overID names neither a task nor a column on b; the latter
// cancels the gesture.
func (d *Drag) Drop(b domain.Board, overID string) (domain.Board, bool) {
	if d.state != DragDragging {
		return b, false
	}
	if !isDropTarget(b, overID) {
		d.Cancel()
		return b, false
	}

	out := Drop(b, d.active.ID, overID)
	d.transition(DragDropped)
	d.reset()

	return out, true
}

// Cancel abandons the gesture without touching any board.
func (d *Drag) Cancel() {
	d.reset()
}

func isDropTarget(b domain.Board, overID string) bool {
	if overID == "" {
		return false
	}
	if b.ColumnIndex(overID) >= 0 {
		return true
	}
	_, _, ok := locateTask(b, overID)
	return ok
}

func (d *Drag) reset() {
	d.active = domain.Task{}
	d.transition(DragIdle)
}

func (d *Drag) transition(to DragState) {
	from := d.state
	if from == to {
		return
	}
	d.state = to
	if d.Observe != nil {
		d.Observe(from, to)
	}
}
