package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"metizcare/internal/domain"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) bool { return false }

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, nil)

	user, err := svc.Register(ctx, RegisterInput{Name: " Ana ", Email: " Ana@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ana@example.com" || user.Name != "Ana" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("expected hashed password")
	}

	got, err := svc.Authenticate(ctx, "ANA@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected same user, got %+v", got)
	}

	if _, err := svc.Authenticate(ctx, "ana@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, nil)

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "invalid email", input: RegisterInput{Email: "not-an-email", Password: "secret123"}, want: ErrInvalidEmail},
		{name: "empty email", input: RegisterInput{Password: "secret123"}, want: ErrInvalidEmail},
		{name: "short password", input: RegisterInput{Email: "a@b.com", Password: "123"}, want: ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "DUP@example.com", Password: "secret123"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserServiceAuthenticateRateLimited(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), denyLimiter{})
	if _, err := svc.Authenticate(context.Background(), "ana@example.com", "secret123"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestUserServiceGetByID(t *testing.T) {
	repo := newMockUserRepo()
	repo.usersByID["u1"] = domain.User{ID: "u1", Email: "ana@example.com"}
	svc := NewUserService(zap.NewNop(), repo, nil)

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	user, err := svc.GetByID(context.Background(), "u1")
	if err != nil || user.Email != "ana@example.com" {
		t.Fatalf("unexpected result %+v err=%v", user, err)
	}
}
