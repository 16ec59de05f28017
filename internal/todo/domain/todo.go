package domain

import "time"

// Priority bounds for a todo.
const (
	MinPriority = 1
	MaxPriority = 5
)

type Todo struct {
	ID          string
	Title       string // unique across all users
	Description string
	Priority    int
	Complete    bool
	OwnerID     string
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID        string
	Name      string // unique
	CreatedAt time.Time
}

// TodoFilter narrows a todo listing. Nil and zero fields do not filter.
type TodoFilter struct {
	OwnerID  string // empty lists every owner
	Complete *bool
	Priority *int
	Search   string
	Limit    int
	Offset   int
}
