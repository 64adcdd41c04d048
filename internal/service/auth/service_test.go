package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bharath-kadali/mini-journal/internal/domain"
	"github.com/bharath-kadali/mini-journal/internal/repository"
	"github.com/bharath-kadali/mini-journal/pkg/config"
	"github.com/bharath-kadali/mini-journal/pkg/crypto"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type userRepoMock struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (m userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, user)
}

func (m userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByEmailFunc(ctx, email)
}

func (m userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func testConfig() config.APIConfig {
	return config.APIConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	var stored *domain.User
	repo := userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	user, token, err := svc.Register(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if stored == nil {
		t.Fatalf("expected user to be persisted")
	}
	if stored.ID == "" || stored.ID != user.ID {
		t.Fatalf("expected generated id to round-trip, got %q", stored.ID)
	}
	if string(stored.PasswordHash) == "hunter22" {
		t.Fatalf("password must not be stored in plaintext")
	}
	if err := crypto.ComparePassword(stored.PasswordHash, "hunter22"); err != nil {
		t.Fatalf("stored hash should verify against the password: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		},
		createFunc: func(_ context.Context, _ *domain.User) error {
			t.Fatalf("create must not be called for a duplicate email")
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, _, err := svc.Register(context.Background(), "a@b.com", "hunter22"); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterSurfacesRacingDuplicate(t *testing.T) {
	repo := userRepoMock{
		createFunc: func(_ context.Context, _ *domain.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, _, err := svc.Register(context.Background(), "a@b.com", "hunter22"); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail from the unique index, got %v", err)
	}
}

func TestLoginUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	hash, err := crypto.HashPassword("right-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	known := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email != "known@b.com" {
				return nil, repository.ErrNotFound
			}
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(known, newLogger(), testConfig())

	_, _, unknownErr := svc.Login(context.Background(), "unknown@b.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "known@b.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("both failures must produce the identical error")
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := crypto.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	user, token, err := svc.Login(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := svc.Authorize(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("unexpected user id in claims: %s", claims.UserID)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("unexpected email in claims: %s", claims.Email)
	}
}

func TestAuthorizeRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTL = -time.Minute
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			hash, _ := crypto.HashPassword("hunter22")
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), cfg)

	_, token, err := svc.Login(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if _, err := svc.Authorize(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestAuthorizeRejectsEmptyToken(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())
	if _, err := svc.Authorize("   "); err == nil {
		t.Fatalf("expected empty token to be rejected")
	}
}
