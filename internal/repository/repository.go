package repository

import (
	"context"
	"time"

	"github.com/bharath-kadali/mini-journal/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// EntryRepository persists journal entries. Every lookup that takes a
// userID filters by (entry id AND owner id); a miss on either dimension
// surfaces as ErrNotFound.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *domain.Entry) error
	ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error)
	UpdateEntryContent(ctx context.Context, entryID, userID, content string, updatedAt time.Time) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error
}
