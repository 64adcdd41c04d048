package entry

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/bharath-kadali/mini-journal/internal/domain"
	"github.com/bharath-kadali/mini-journal/internal/repository"
)

const dateLayout = "2006-01-02"

// ErrEmptyContent rejects entries with no text.
var ErrEmptyContent = errors.New("content is required")

// EventSink receives entry change events for the owning user's connected
// sessions.
type EventSink interface {
	Broadcast(userID string, payload []byte)
}

// Projection is the subset of entry fields exposed to clients. Dates are
// rendered as YYYY-MM-DD; owner and timestamps stay internal.
type Projection struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Event describes an entry mutation pushed over the change stream.
type Event struct {
	Action string     `json:"action"`
	Entry  Projection `json:"entry"`
}

// Service performs ownership-scoped CRUD on journal entries. The
// authenticated user id scopes every operation; there is no code path that
// reads or writes an entry without it.
type Service struct {
	entries repository.EntryRepository
	events  EventSink
	logger  *slog.Logger
}

// New constructs a Service.
func New(entries repository.EntryRepository, events EventSink, logger *slog.Logger) Service {
	return Service{entries: entries, events: events, logger: logger}
}

// Create persists a new entry owned by userID. The date keeps day
// precision only; any time-of-day component is dropped.
func (s Service) Create(ctx context.Context, userID string, date time.Time, content string) (Projection, error) {
	if content == "" {
		return Projection{}, ErrEmptyContent
	}
	now := time.Now().UTC()
	e := &domain.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      truncateToDate(date),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entries.CreateEntry(ctx, e); err != nil {
		return Projection{}, err
	}
	s.logger.Info("entry created", "entry_id", e.ID, "user_id", userID)
	s.notify(userID, "created", project(*e))
	return project(*e), nil
}

// List returns the user's entries ordered by date descending, ties broken
// by creation time descending. The store orders its result the same way;
// re-sorting here keeps the contract even if the two ever disagree.
func (s Service) List(ctx context.Context, userID string) ([]Projection, error) {
	entries, err := s.entries.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	out := make([]Projection, 0, len(entries))
	for _, e := range entries {
		out = append(out, project(e))
	}
	return out, nil
}

// Update replaces an entry's content. A miss on either the id or the owner
// surfaces as repository.ErrNotFound.
func (s Service) Update(ctx context.Context, userID, entryID, content string) (Projection, error) {
	if content == "" {
		return Projection{}, ErrEmptyContent
	}
	updated, err := s.entries.UpdateEntryContent(ctx, entryID, userID, content, time.Now().UTC())
	if err != nil {
		return Projection{}, err
	}
	s.logger.Info("entry updated", "entry_id", entryID, "user_id", userID)
	s.notify(userID, "updated", project(*updated))
	return project(*updated), nil
}

// Delete removes an entry. Repeating the call yields repository.ErrNotFound.
func (s Service) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.entries.DeleteEntry(ctx, entryID, userID); err != nil {
		return err
	}
	s.logger.Info("entry deleted", "entry_id", entryID, "user_id", userID)
	s.notify(userID, "deleted", Projection{ID: entryID})
	return nil
}

func (s Service) notify(userID, action string, proj Projection) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(Event{Action: action, Entry: proj})
	if err != nil {
		s.logger.Error("marshal entry event", "error", err)
		return
	}
	s.events.Broadcast(userID, payload)
}

func project(e domain.Entry) Projection {
	return Projection{
		ID:      e.ID,
		Date:    e.Date.Format(dateLayout),
		Content: e.Content,
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
