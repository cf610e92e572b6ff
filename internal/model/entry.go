package model

import (
	"strings"
	"time"
)

const (
	// DefaultTitle is the placeholder title of a fresh draft.
	DefaultTitle = "(Your entry title)"
	// DefaultNotes is the placeholder notes text of a fresh draft.
	DefaultNotes = "(Your notes here)"
)

// User is an employee, identified by its lower-cased username.
type User struct {
	Username  string    `gorm:"primaryKey;size:255" json:"username"`
	CreatedAt time.Time `json:"-"`
	Entries   []Entry   `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// Entry is a single work-log record.
type Entry struct {
	ID       string    `gorm:"primaryKey;type:text" json:"id"`
	Username string    `gorm:"index;size:255;not null" json:"employee"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Date     time.Time `gorm:"index;not null" json:"date"`
	// Duration is the time spent, in minutes.
	Duration  int       `gorm:"not null" json:"duration_minutes"`
	Notes     string    `gorm:"type:text;not null" json:"notes"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewDraft returns an unsaved entry carrying the default field values,
// dated on the given day.
func NewDraft(day time.Time) Entry {
	return Entry{
		Title: DefaultTitle,
		Date:  day,
		Notes: DefaultNotes,
	}
}

// Persisted reports whether the entry has been written to a store.
func (e Entry) Persisted() bool {
	return e.ID != ""
}

// NormalizeUsername lower-cases a name and collapses its whitespace, so
// "  Jane   DOE " and "jane doe" identify the same user.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
