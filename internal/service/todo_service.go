package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// ErrNotFound is returned when a todo does not exist or belongs to
// another user; the two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("not found")

// TodoService provides CRUD over todos scoped by the authenticated user.
type TodoService interface {
	Create(ctx context.Context, userID int64, title, description string) (*domain.Todo, error)
	List(ctx context.Context, userID int64) ([]domain.Todo, error)
	Get(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Update(ctx context.Context, userID, id int64, title, description *string, completed *bool) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) Create(ctx context.Context, userID int64, title, description string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	todo := &domain.Todo{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

func (s *todoService) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, userID, id int64, title, description *string, completed *bool) (*domain.Todo, error) {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		todo.Title = trimmed
	}
	if description != nil {
		todo.Description = strings.TrimSpace(*description)
	}
	if completed != nil {
		todo.Completed = *completed
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.todos.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
