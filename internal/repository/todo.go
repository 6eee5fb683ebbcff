package repository

import (
	"context"

	"todo-api/internal/domain"
)

// TodoRepository defines persistence operations for Todo entities.
// Every read and write is scoped by the owning user id.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, userID, id int64) error
}
