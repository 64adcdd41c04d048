package domain

import "time"

// Entry is a single dated journal entry. Date carries day precision only;
// the time-of-day component is always midnight UTC. UserID is immutable
// after creation and every read or write is scoped by it.
type Entry struct {
	ID        string
	UserID    string
	Date      time.Time
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
