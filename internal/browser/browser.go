// Package browser pages through a result set one entry at a time.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Tiliavir/worklog/internal/editor"
	"github.com/Tiliavir/worklog/internal/finder"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/prompt"
	"github.com/Tiliavir/worklog/internal/storage"
)

// ErrBoundary reports a move past the first or last entry.
var ErrBoundary = errors.New("you've reached the end of the found entries")

// Cursor is a position in a result set of fixed length.
type Cursor struct {
	idx int
	n   int
}

// NewCursor returns a cursor on the first of n entries. An empty result
// set has no valid position and yields finder.ErrNotFound.
func NewCursor(n int) (*Cursor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: no entries match that criteria", finder.ErrNotFound)
	}
	return &Cursor{n: n}, nil
}

// Index returns the current position, 0-based.
func (c *Cursor) Index() int { return c.idx }

// Len returns the size of the result set.
func (c *Cursor) Len() int { return c.n }

// HasNext reports whether Next would succeed.
func (c *Cursor) HasNext() bool { return c.idx < c.n-1 }

// HasPrevious reports whether Previous would succeed.
func (c *Cursor) HasPrevious() bool { return c.idx > 0 }

// Next advances by one. At the last entry the cursor stays put and
// ErrBoundary is returned.
func (c *Cursor) Next() error {
	if !c.HasNext() {
		return ErrBoundary
	}
	c.idx++
	return nil
}

// Previous steps back by one. At the first entry the cursor stays put and
// ErrBoundary is returned.
func (c *Cursor) Previous() error {
	if !c.HasPrevious() {
		return ErrBoundary
	}
	c.idx--
	return nil
}

// Browser shows entries and hands edits and deletes to the editor and store.
type Browser struct {
	store  *storage.Store
	term   *prompt.Terminal
	editor *editor.Editor
	logger *slog.Logger
}

// New returns a Browser.
func New(store *storage.Store, term *prompt.Terminal, ed *editor.Editor, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{store: store, term: term, editor: ed, logger: logger}
}

// Run pages through entries until the user quits, edits or deletes one.
// An empty result set returns finder.ErrNotFound without prompting.
func (b *Browser) Run(ctx context.Context, entries []model.Entry) error {
	cur, err := NewCursor(len(entries))
	if err != nil {
		return err
	}

	var pending error
	for {
		b.term.Clear()
		editor.Render(b.term.Out(), entries[cur.Index()])
		b.term.Error(pending)
		pending = nil

		b.term.Printf("Entry %d of %d\n", cur.Index()+1, cur.Len())
		if cur.HasNext() {
			b.term.Println("n) next entry")
		}
		if cur.HasPrevious() {
			b.term.Println("p) previous entry")
		}
		b.term.Println("e) edit entry")
		b.term.Println("d) delete entry")
		b.term.Println("q) back to search menu")

		choice, err := b.term.Ask("Action: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "n":
			pending = cur.Next()
		case "p":
			pending = cur.Previous()
		case "e":
			_, err := b.editor.Update(ctx, &entries[cur.Index()])
			return err
		case "d":
			return b.delete(ctx, entries[cur.Index()])
		case "q":
			return nil
		}
	}
}

// delete asks for confirmation and removes the entry.
func (b *Browser) delete(ctx context.Context, e model.Entry) error {
	b.term.Clear()
	editor.Render(b.term.Out(), e)
	ok, err := b.term.Confirm("Delete this entry? [y/N] ", false)
	if err != nil || !ok {
		return err
	}
	if err := b.store.DeleteEntry(ctx, e.ID); err != nil {
		return err
	}
	b.logger.Debug("entry deleted by user", slog.String("id", e.ID))
	return nil
}
