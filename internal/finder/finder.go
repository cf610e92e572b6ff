// Package finder turns search queries into filtered, date-ordered result sets.
package finder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/worklog/internal/field"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/storage"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var (
	// ErrNotFound reports an employee search or result set with no match.
	ErrNotFound = errors.New("nothing found")
	// ErrSelection reports an invalid pick from a candidate list.
	ErrSelection = errors.New("invalid selection")
	// ErrRange reports a date range whose lower bound is after its upper bound.
	ErrRange = errors.New("start date is after end date")
	// ErrQuery reports a date search with the wrong number of dates.
	ErrQuery = errors.New("you may only search one or two dates")
)

// Kind is the criterion a Query filters on.
type Kind int

const (
	ByDate Kind = iota + 1
	ByEmployee
	ByKeyword
)

func (k Kind) String() string {
	switch k {
	case ByDate:
		return "date"
	case ByEmployee:
		return "employee"
	case ByKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Query is a single search criterion. A nil *Query matches every entry.
type Query struct {
	Kind Kind
	// From and To are the date bounds; equal for a single-date search.
	From, To time.Time
	Username string
	Keyword  string
}

// OnDate matches entries dated exactly on d.
func OnDate(d time.Time) *Query {
	d = timecalc.Day(d)
	return &Query{Kind: ByDate, From: d, To: d}
}

// Between matches entries dated in [from, to]. Bounds are not reordered:
// from after to is rejected with ErrRange.
func Between(from, to time.Time) (*Query, error) {
	from, to = timecalc.Day(from), timecalc.Day(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", ErrRange, timecalc.FormatDate(from), timecalc.FormatDate(to))
	}
	return &Query{Kind: ByDate, From: from, To: to}, nil
}

// ForEmployee matches entries owned by u.
func ForEmployee(u model.User) *Query {
	return &Query{Kind: ByEmployee, Username: u.Username}
}

// WithKeyword matches entries whose notes contain kw.
func WithKeyword(kw string) *Query {
	return &Query{Kind: ByKeyword, Keyword: kw}
}

// ParseDateQuery parses "dd/mm/yyyy" or "dd/mm/yyyy dd/mm/yyyy" as typed at
// the date search prompt.
func ParseDateQuery(input string) (*Query, error) {
	parts := strings.Fields(input)
	if len(parts) < 1 || len(parts) > 2 {
		return nil, ErrQuery
	}
	dates := make([]time.Time, len(parts))
	for i, p := range parts {
		d, err := timecalc.ParseDate(p)
		if err != nil {
			return nil, &field.FormatError{Field: field.Date, Input: p, Reason: fmt.Sprintf("%q does not match format dd/mm/yyyy.", p)}
		}
		dates[i] = d
	}
	if len(dates) == 1 {
		return OnDate(dates[0]), nil
	}
	return Between(dates[0], dates[1])
}

// Finder runs queries against a store.
type Finder struct {
	store *storage.Store
}

// New returns a Finder over store.
func New(store *storage.Store) *Finder {
	return &Finder{store: store}
}

// Find returns the entries matching q, newest first. An empty result is
// not an error at this level.
func (f *Finder) Find(ctx context.Context, q *Query) ([]model.Entry, error) {
	return f.store.FindEntries(ctx, filterFor(q))
}

func filterFor(q *Query) storage.Filter {
	var flt storage.Filter
	if q == nil {
		return flt
	}
	switch q.Kind {
	case ByDate:
		from, to := q.From, q.To
		if from.Equal(to) {
			flt.On = &from
		} else {
			flt.From, flt.To = &from, &to
		}
	case ByEmployee:
		flt.Username = q.Username
	case ByKeyword:
		flt.NotesContain = q.Keyword
	}
	return flt
}

// Dates lists the days that have entries, oldest first.
func (f *Finder) Dates(ctx context.Context) ([]time.Time, error) {
	return f.store.Dates(ctx)
}

// Employees returns the users whose name contains fragment. No match is
// ErrNotFound.
func (f *Finder) Employees(ctx context.Context, fragment string) ([]model.User, error) {
	users, err := f.store.Users(ctx, fragment)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: no employee matches %q", ErrNotFound, strings.TrimSpace(fragment))
	}
	return users, nil
}

// Select picks a candidate by its 1-based position as typed by the user.
func Select(candidates []model.User, input string) (model.User, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %q is not a number", ErrSelection, input)
	}
	if n < 1 || n > len(candidates) {
		return model.User{}, fmt.Errorf("%w: choose a number between 1 and %d", ErrSelection, len(candidates))
	}
	return candidates[n-1], nil
}
