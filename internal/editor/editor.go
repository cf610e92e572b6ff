// Package editor walks the user through creating or updating an entry one
// field at a time. All field writes of one session share a transaction that
// is committed or rolled back at the final save prompt.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tiliavir/worklog/internal/field"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/prompt"
	"github.com/Tiliavir/worklog/internal/storage"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// fieldSpec binds a field name to its prompt, its display getter and the
// validator+setter that applies raw input to a draft.
type fieldSpec struct {
	name      string
	prompt    string
	multiline bool
	current   func(e *model.Entry) string
	apply     func(ctx context.Context, env applyEnv, e *model.Entry, raw string) error
}

type applyEnv struct {
	users field.UserStore
	today time.Time
}

var fields = []fieldSpec{
	{
		name:    field.Employee,
		prompt:  "Enter the employee's full name: ",
		current: func(e *model.Entry) string { return e.Username },
		apply: func(ctx context.Context, env applyEnv, e *model.Entry, raw string) error {
			u, err := field.ResolveEmployee(ctx, env.users, raw)
			if err != nil {
				return err
			}
			e.Username = u.Username
			return nil
		},
	},
	{
		name:    field.Title,
		prompt:  "Enter a title for the entry (empty keeps the current one): ",
		current: func(e *model.Entry) string { return e.Title },
		apply: func(_ context.Context, _ applyEnv, e *model.Entry, raw string) error {
			if s := field.ParseText(raw); s != "" {
				e.Title = s
			}
			return nil
		},
	},
	{
		name:    field.Date,
		prompt:  "Enter a date [dd/mm/yyyy] or leave empty for today: ",
		current: func(e *model.Entry) string { return timecalc.FormatDate(e.Date) },
		apply: func(_ context.Context, env applyEnv, e *model.Entry, raw string) error {
			d, err := field.ParseDate(raw, env.today)
			if err != nil {
				return err
			}
			e.Date = d
			return nil
		},
	},
	{
		name:    field.Duration,
		prompt:  "Enter the time (in minutes): ",
		current: func(e *model.Entry) string { return fmt.Sprint(e.Duration) },
		apply: func(_ context.Context, _ applyEnv, e *model.Entry, raw string) error {
			n, err := field.ParseDuration(raw)
			if err != nil {
				return err
			}
			e.Duration = n
			return nil
		},
	},
	{
		name:      field.Notes,
		prompt:    "Enter any notes for the entry (press ctrl+d or enter a single '.' when done; no text keeps the current notes):",
		multiline: true,
		current:   func(e *model.Entry) string { return e.Notes },
		apply: func(_ context.Context, _ applyEnv, e *model.Entry, raw string) error {
			if s := field.ParseText(raw); s != "" {
				e.Notes = s
			}
			return nil
		},
	},
}

// Editor runs create and update sessions against a store.
type Editor struct {
	store  *storage.Store
	term   *prompt.Terminal
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(ed *Editor) { ed.now = now }
}

// WithLogger sets the logger for save/rollback diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(ed *Editor) { ed.logger = l }
}

// New returns an Editor.
func New(store *storage.Store, term *prompt.Terminal, opts ...Option) *Editor {
	ed := &Editor{
		store:  store,
		term:   term,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ed)
	}
	return ed
}

// Create prompts for every field of a new entry and asks whether to save
// it. Only an explicit "n" discards the entry. It returns the entry and
// whether it was committed.
func (ed *Editor) Create(ctx context.Context) (model.Entry, bool, error) {
	draft := model.NewDraft(timecalc.Day(ed.now()))

	tx, err := ed.store.Begin(ctx)
	if err != nil {
		return draft, false, err
	}
	env := applyEnv{users: tx, today: ed.now()}

	for _, f := range fields {
		if err := ed.editField(ctx, tx, env, &draft, f, false); err != nil {
			_ = tx.Rollback()
			return draft, false, err
		}
	}

	saved, err := ed.finish(tx, draft, "Save entry? [Y/n] ")
	if !saved {
		draft.ID = ""
	}
	return draft, saved, err
}

// Update offers each field of e for editing in turn. On rollback e is
// restored to its state before the session.
func (ed *Editor) Update(ctx context.Context, e *model.Entry) (bool, error) {
	orig := *e

	tx, err := ed.store.Begin(ctx)
	if err != nil {
		return false, err
	}
	env := applyEnv{users: tx, today: ed.now()}

	for _, f := range fields {
		ed.show(*e, nil)
		edit, err := ed.term.Confirm(fmt.Sprintf("UPDATE %s? [y/N] ", strings.ToUpper(f.name)), false)
		if err == nil && edit {
			err = ed.editField(ctx, tx, env, e, f, true)
		}
		if err != nil {
			_ = tx.Rollback()
			*e = orig
			return false, err
		}
	}

	saved, err := ed.finish(tx, *e, "Save updates? [Y/n] ")
	if !saved {
		*e = orig
	}
	return saved, err
}

// editField reads and applies one field until it validates, then writes
// the draft inside tx. Validation failures are shown and the same field is
// asked again; any other error ends the session.
func (ed *Editor) editField(ctx context.Context, tx *storage.Tx, env applyEnv, e *model.Entry, f fieldSpec, showCurrent bool) error {
	var pending error
	for {
		ed.show(*e, pending)
		if showCurrent {
			ed.term.Printf("CURRENT %s:\n%s\n\n", strings.ToUpper(f.name), f.current(e))
		}

		var raw string
		var err error
		if f.multiline {
			raw, err = ed.term.ReadText(f.prompt)
		} else {
			raw, err = ed.term.Ask(f.prompt)
		}
		if err != nil {
			return err
		}

		if err := f.apply(ctx, env, e, raw); err != nil {
			if errors.Is(err, field.ErrFormat) {
				pending = err
				continue
			}
			return err
		}
		return tx.SaveEntry(ctx, e)
	}
}

// finish shows the entry and commits unless the user answers no.
func (ed *Editor) finish(tx *storage.Tx, e model.Entry, question string) (bool, error) {
	ed.show(e, nil)
	save, err := ed.term.Confirm(question, true)
	if err != nil || !save {
		if rbErr := tx.Rollback(); rbErr != nil && err == nil {
			err = rbErr
		}
		ed.logger.Debug("entry discarded", slog.String("id", e.ID))
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	ed.logger.Debug("entry saved", slog.String("id", e.ID), slog.String("employee", e.Username))
	return true, nil
}

func (ed *Editor) show(e model.Entry, err error) {
	ed.term.Clear()
	Render(ed.term.Out(), e)
	ed.term.Error(err)
}
