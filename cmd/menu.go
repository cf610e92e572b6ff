package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/browser"
	"github.com/Tiliavir/worklog/internal/editor"
	"github.com/Tiliavir/worklog/internal/field"
	"github.com/Tiliavir/worklog/internal/finder"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

type menuItem struct {
	key   string
	label string
	run   func(ctx context.Context, s *session) error
}

var mainMenu = []menuItem{
	{key: "c", label: "Create a new entry.", run: createEntry},
	{key: "s", label: "Search existing entries.", run: searchMenu},
}

var searchItems = []menuItem{
	{key: "d", label: "Search by date.", run: searchByDate},
	{key: "e", label: "Search by employee.", run: searchByEmployee},
	{key: "k", label: "Search by keyword.", run: searchByKeyword},
}

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.menuLoop(cmd.Context(), mainMenu, "Enter 'q' to quit")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// recoverable reports whether err is shown inline and the prompt repeated,
// as opposed to ending the session.
func recoverable(err error) bool {
	for _, target := range []error{
		field.ErrFormat,
		finder.ErrNotFound,
		finder.ErrSelection,
		finder.ErrRange,
		finder.ErrQuery,
		browser.ErrBoundary,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// menuLoop shows items until the user enters q or x. Recoverable errors from
// an item are displayed above the menu on the next round.
func (s *session) menuLoop(ctx context.Context, items []menuItem, exitHint string) error {
	var pending error
	for {
		s.term.Clear()
		s.term.Error(pending)
		pending = nil

		for _, it := range items {
			s.term.Printf("%s) %s\n", it.key, it.label)
		}
		choice, err := s.term.Ask(fmt.Sprintf("Action (%s): ", exitHint))
		if err != nil {
			return err
		}

		choice = strings.ToLower(choice)
		if choice == "q" || choice == "x" {
			return nil
		}
		for _, it := range items {
			if it.key != choice {
				continue
			}
			if err := it.run(ctx, s); err != nil {
				if !recoverable(err) {
					return err
				}
				pending = err
			}
			break
		}
	}
}

func createEntry(ctx context.Context, s *session) error {
	_, _, err := s.editor.Create(ctx)
	return err
}

func searchMenu(ctx context.Context, s *session) error {
	return s.menuLoop(ctx, searchItems, "Enter 'x' to exit to main menu")
}

func (s *session) browse(ctx context.Context, q *finder.Query) error {
	entries, err := s.finder.Find(ctx, q)
	if err != nil {
		return err
	}
	return s.browser.Run(ctx, entries)
}

func searchByDate(ctx context.Context, s *session) error {
	dates, err := s.finder.Dates(ctx)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return fmt.Errorf("%w: the log has no entries yet", finder.ErrNotFound)
	}

	s.term.Clear()
	for _, d := range dates {
		s.term.Println(timecalc.FormatDate(d))
	}
	s.term.Println()
	s.term.Println("To view entries either:")
	s.term.Println("  1) Enter a date [dd/mm/yyyy] from above or")
	s.term.Println("  2) Enter two dates (separated by space) to view entries within a range")
	input, err := s.term.Ask("> ")
	if err != nil {
		return err
	}

	q, err := finder.ParseDateQuery(input)
	if err != nil {
		return err
	}
	return s.browse(ctx, q)
}

func searchByEmployee(ctx context.Context, s *session) error {
	s.term.Clear()
	name, err := s.term.Ask("Enter an employee name (or part of one): ")
	if err != nil {
		return err
	}
	user, err := s.pickEmployee(ctx, name)
	if err != nil {
		return err
	}
	return s.browse(ctx, finder.ForEmployee(user))
}

// pickEmployee resolves a name fragment to one user, asking the user to
// choose when several match.
func (s *session) pickEmployee(ctx context.Context, fragment string) (model.User, error) {
	users, err := s.finder.Employees(ctx, fragment)
	if err != nil {
		return model.User{}, err
	}
	if len(users) == 1 {
		return users[0], nil
	}

	for i, u := range users {
		s.term.Printf("%d) %s\n", i+1, editor.TitleCase(u.Username))
	}
	choice, err := s.term.Ask("Two or more employees found. Enter a number above to continue: ")
	if err != nil {
		return model.User{}, err
	}
	return finder.Select(users, choice)
}

func searchByKeyword(ctx context.Context, s *session) error {
	s.term.Clear()
	kw, err := s.term.Ask("Enter a keyword to search for in the notes: ")
	if err != nil {
		return err
	}
	return s.browse(ctx, finder.WithKeyword(kw))
}
