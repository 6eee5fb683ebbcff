package domain

import "time"

// Todo is a single task owned by a user. All reads and writes are scoped
// by UserID; a todo is never visible outside its owner.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
