package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todo-api/internal/auth"
	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// memUserRepo is an in-memory UserRepository with unique username/email,
// mirroring the constraints the sqlite schema enforces.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	failCreateWithDuplicate bool
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Init(ctx context.Context) error { return nil }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateWithDuplicate {
		return 0, repository.ErrDuplicate
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func newTestAuthService(repo repository.UserRepository) (AuthService, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(repo, tokens), tokens
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash, "returned user must never carry the hash")

	token, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAuthService_Register_BlankInput(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	// whitespace-only fields trim to empty and must fail as invalid input
	_, err := svc.Register(ctx, "   ", "alice@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "alice", "   ", "secret123")
	require.ErrorIs(t, err, ErrInvalidInput)

	require.Equal(t, 0, repo.count(), "no row on invalid input")
}

func TestAuthService_GetByID(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "alice", got.Username)
	require.Empty(t, got.PasswordHash)

	_, err = svc.GetByID(ctx, user.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "someone-else", "alice@example.com", "other-pass")
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 1, repo.count(), "no new row on conflict")
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "other-pass")
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Equal(t, 1, repo.count())
}

func TestAuthService_Register_InsertRace(t *testing.T) {
	repo := newMemUserRepo()
	repo.failCreateWithDuplicate = true
	svc, _ := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret123")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, errWrongPass := svc.Login(ctx, "alice@example.com", "not-the-password")
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "whatever")

	// known email + wrong password must be indistinguishable from unknown email
	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.Equal(t, errWrongPass, errUnknown)
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}
