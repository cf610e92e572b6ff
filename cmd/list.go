package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var listRange rangeFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries for a period (default: today)",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listRange.register(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	from, to, err := listRange.resolve(time.Now())
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.store.EntriesBetween(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	printList(cmd.OutOrStdout(), entries)
	return nil
}

// printList groups entries by date and prints them.
func printList(w io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		day := timecalc.FormatDate(e.Date)
		if day != currentDay {
			fmt.Fprintln(w, day)
			currentDay = day
		}
		fmt.Fprintf(w, "  %-20s %s (%s)\n", e.Username, e.Title, timecalc.FormatDuration(e.Duration))
	}
}
