package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bharath-kadali/mini-journal/internal/domain"
	"github.com/bharath-kadali/mini-journal/internal/repository"
)

const uniqueViolationCode = "23505"

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository  = (*Repository)(nil)
	_ repository.EntryRepository = (*Repository)(nil)
)

// CreateUser inserts a user. A duplicate email maps to ErrDuplicateEmail so
// the unique index and the service-layer pre-check agree on the outcome.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateEntry inserts a journal entry.
func (r *Repository) CreateEntry(ctx context.Context, entry *domain.Entry) error {
	const query = `INSERT INTO entries (id, user_id, entry_date, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.UserID, entry.Date, entry.Content, entry.CreatedAt, entry.UpdatedAt)
	return err
}

// ListEntriesByUser returns the user's entries ordered by date descending,
// ties broken by creation time descending.
func (r *Repository) ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	const query = `SELECT id, user_id, entry_date, content, created_at, updated_at
		FROM entries WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateEntryContent mutates an entry's content, scoped to its owner.
// Returns ErrNotFound when no entry with that id belongs to userID.
func (r *Repository) UpdateEntryContent(ctx context.Context, entryID, userID, content string, updatedAt time.Time) (*domain.Entry, error) {
	const query = `UPDATE entries SET content = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, entry_date, content, created_at, updated_at`
	row := r.pool.QueryRow(ctx, query, entryID, userID, content, updatedAt)
	var e domain.Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// DeleteEntry removes an entry scoped to its owner. A second delete of the
// same id reports ErrNotFound.
func (r *Repository) DeleteEntry(ctx context.Context, entryID, userID string) error {
	const query = `DELETE FROM entries WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
