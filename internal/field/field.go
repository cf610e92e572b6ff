// Package field holds the validation rules for the editable fields of an
// entry. Every rule returns the normalised value or a *FormatError.
package field

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("wrong format")

// FormatError reports raw input that a field rule rejected.
type FormatError struct {
	Field  string
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func formatErr(field, input, reason string) error {
	return &FormatError{Field: field, Input: input, Reason: reason}
}

// Field names, in the order the editor walks them.
const (
	Employee = "employee"
	Title    = "title"
	Date     = "date"
	Duration = "duration"
	Notes    = "notes"
)

// ParseDate validates a date typed as dd/mm/yyyy. Empty input and "today"
// (any case) yield today. A '-' anywhere is rejected outright.
func ParseDate(raw string, today time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "today") {
		return timecalc.Day(today), nil
	}
	if strings.Contains(s, "-") {
		return time.Time{}, formatErr(Date, raw, "Your date format must be [dd/mm/yyyy].")
	}
	d, err := timecalc.ParseDate(s)
	if err != nil {
		return time.Time{}, formatErr(Date, raw, fmt.Sprintf("Invalid date: %v.", err))
	}
	return d, nil
}

// ParseDuration validates a whole number of minutes. Empty input is 0.
func ParseDuration(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, formatErr(Duration, raw, fmt.Sprintf("Duration must be a whole number of minutes, got %q.", s))
	}
	if n < 0 {
		return 0, formatErr(Duration, raw, "Duration cannot be negative.")
	}
	return n, nil
}

// ParseText trims free text. It never fails.
func ParseText(raw string) string {
	return strings.TrimSpace(raw)
}

// UserStore resolves employees. Implemented by *storage.Store and *storage.Tx.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, username string) (model.User, bool, error)
}

// ResolveEmployee normalises the name and returns the matching user,
// creating it if it does not exist yet. Store failures are returned as is;
// only an empty name is a FormatError.
func ResolveEmployee(ctx context.Context, users UserStore, raw string) (model.User, error) {
	name := model.NormalizeUsername(raw)
	if name == "" {
		return model.User{}, formatErr(Employee, raw, "Employee name is required.")
	}
	u, _, err := users.GetOrCreateUser(ctx, name)
	return u, err
}
