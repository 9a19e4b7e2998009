package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Board is the top-level named container of columns. Column order is
// insertion order.
type Board struct {
	ID      string   `json:"id" doc:"Board ID"`
	Name    string   `json:"name" doc:"Board name"`
	Columns []Column `json:"columns" doc:"Ordered columns"`
}

// Column is a named, ordered container of tasks within one board.
type Column struct {
	ID    string `json:"id" doc:"Column ID"`
	Name  string `json:"name" doc:"Column name"`
	Tasks []Task `json:"tasks" doc:"Ordered tasks"`
}

// Task is a named unit of work. Task IDs are unique across the whole board
// because tasks move between columns.
type Task struct {
	ID        string `json:"id" doc:"Task ID"`
	Name      string `json:"name" doc:"Task name"`
	Completed bool   `json:"completed" doc:"Completion flag"`
}

// BoardSummary is the list view of a board.
type BoardSummary struct {
	ID   string `json:"id" doc:"Board ID"`
	Name string `json:"name" doc:"Board name"`
}

// NewID returns a fresh version-4 UUID string.
func NewID() string {
	return uuid.NewString()
}

// NormalizeName trims surrounding whitespace and reports whether anything is
// left.
func NormalizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != ""
}

// NewBoard returns an empty board with a fresh ID. The name must already be
// normalized.
func NewBoard(name string) Board {
	return Board{ID: NewID(), Name: name, Columns: []Column{}}
}

// NewColumn returns an empty column with a fresh ID.
func NewColumn(name string) Column {
	return Column{ID: NewID(), Name: name, Tasks: []Task{}}
}

// NewTask returns an open task with a fresh ID.
func NewTask(name string) Task {
	return Task{ID: NewID(), Name: name}
}

// Summary returns the list view of b.
func (b Board) Summary() BoardSummary {
	return BoardSummary{ID: b.ID, Name: b.Name}
}

// ColumnIndex returns the position of the column with the given ID, or -1.
func (b Board) ColumnIndex(columnID string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

// TaskIndex returns the position of the task with the given ID, or -1.
func (c Column) TaskIndex(taskID string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// TaskCount returns the number of tasks across all columns.
func (b Board) TaskCount() int {
	n := 0
	for i := range b.Columns {
		n += len(b.Columns[i].Tasks)
	}
	return n
}

// Equal reports whether two boards hold the same values. Nil and empty
// slices compare equal.
func (b Board) Equal(other Board) bool {
	if b.ID != other.ID || b.Name != other.Name || len(b.Columns) != len(other.Columns) {
		return false
	}
	for i := range b.Columns {
		if !b.Columns[i].Equal(other.Columns[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two columns hold the same values.
func (c Column) Equal(other Column) bool {
	if c.ID != other.ID || c.Name != other.Name || len(c.Tasks) != len(other.Tasks) {
		return false
	}
	for i := range c.Tasks {
		if c.Tasks[i] != other.Tasks[i] {
			return false
		}
	}
	return true
}
