package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

type memTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]*domain.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *memTodoRepo) Init(ctx context.Context) error { return nil }

func (r *memTodoRepo) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	todo.ID = r.nextID
	todo.CreatedAt = time.Now().UTC()
	todo.UpdatedAt = todo.CreatedAt
	cp := *todo
	r.todos[todo.ID] = &cp
	return todo.ID, nil
}

func (r *memTodoRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTodoRepo) Update(ctx context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[todo.ID]
	if !ok || t.UserID != todo.UserID {
		return repository.ErrNotFound
	}
	todo.UpdatedAt = time.Now().UTC()
	cp := *todo
	r.todos[todo.ID] = &cp
	return nil
}

func (r *memTodoRepo) Delete(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func TestTodoService_CreateListGet(t *testing.T) {
	svc := NewTodoService(newMemTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "  buy milk  ", " 2 liters ")
	require.NoError(t, err)
	require.Equal(t, "buy milk", created.Title)
	require.Equal(t, "2 liters", created.Description)
	require.False(t, created.Completed)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	other, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, other)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_Create_BlankTitle(t *testing.T) {
	svc := NewTodoService(newMemTodoRepo())

	// whitespace passes length checks but must still be a validation failure
	_, err := svc.Create(context.Background(), 1, "   ", "desc")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTodoService_Update_BlankTitle(t *testing.T) {
	svc := NewTodoService(newMemTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "draft", "")
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, 1, created.ID, &blank, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, "draft", got.Title, "failed patch must not change the todo")
}

func TestTodoService_Update_PartialPatch(t *testing.T) {
	svc := NewTodoService(newMemTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "draft", "first pass")
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, 1, created.ID, nil, nil, &done)
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "draft", updated.Title, "unset fields stay untouched")

	title := "final"
	updated, err = svc.Update(ctx, 1, created.ID, &title, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "final", updated.Title)
	require.True(t, updated.Completed)

	_, err = svc.Update(ctx, 2, created.ID, &title, nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_Delete(t *testing.T) {
	svc := NewTodoService(newMemTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "temp", "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrNotFound)
}
