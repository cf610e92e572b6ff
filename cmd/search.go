package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/finder"
)

var (
	searchDate     string
	searchEmployee string
	searchKeyword  string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entries and browse the results",
	Long: `Search entries by date, employee or keyword and page through the results.
Without a criterion flag the interactive search menu is shown.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDate, "date", "", `Date "dd/mm/yyyy" or range "dd/mm/yyyy dd/mm/yyyy"`)
	searchCmd.Flags().StringVar(&searchEmployee, "employee", "", "Employee name or part of one")
	searchCmd.Flags().StringVar(&searchKeyword, "keyword", "", "Text contained in the notes")
	searchCmd.MarkFlagsMutuallyExclusive("date", "employee", "keyword")
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	var q *finder.Query
	flags := cmd.Flags()
	switch {
	case flags.Changed("date"):
		q, err = finder.ParseDateQuery(searchDate)
	case flags.Changed("employee"):
		user, perr := s.pickEmployee(ctx, searchEmployee)
		q, err = finder.ForEmployee(user), perr
	case flags.Changed("keyword"):
		q = finder.WithKeyword(searchKeyword)
	default:
		err = searchMenu(ctx, s)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	err = s.browse(ctx, q)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
