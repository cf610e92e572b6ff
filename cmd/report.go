package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var (
	reportRange  = rangeFlags{weekByDefault: true}
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show minutes logged per employee (default: this week)",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportRange.register(reportCmd)
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// employeeTotal is one row of a report.
type employeeTotal struct {
	Employee string `json:"employee"`
	Entries  int    `json:"entries"`
	Minutes  int    `json:"duration_minutes"`
}

// report aggregates entries per employee.
type report struct {
	Week      string          `json:"week,omitempty"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Employees []employeeTotal `json:"employees"`
	Total     int             `json:"total_minutes"`
}

func runReport(cmd *cobra.Command, args []string) error {
	from, to, err := reportRange.resolve(time.Now())
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

	return writeReport(cmd.OutOrStdout(), buildReport(from, to, entries), reportFormat)
}

func buildReport(from, to time.Time, entries []model.Entry) report {
	idx := map[string]int{}
	r := report{From: timecalc.FormatDate(from), To: timecalc.FormatDate(to), Employees: []employeeTotal{}}
	if monday, sunday := timecalc.WeekRange(from); monday.Equal(from) && sunday.Equal(to) {
		r.Week = timecalc.ISOWeekLabel(from)
	}
	for _, e := range entries {
		i, seen := idx[e.Username]
		if !seen {
			i = len(r.Employees)
			idx[e.Username] = i
			r.Employees = append(r.Employees, employeeTotal{Employee: e.Username})
		}
		r.Employees[i].Entries++
		r.Employees[i].Minutes += e.Duration
		r.Total += e.Duration
	}
	sort.Slice(r.Employees, func(a, b int) bool {
		return r.Employees[a].Employee < r.Employees[b].Employee
	})
	return r
}

func writeReport(w io.Writer, r report, format string) error {
	switch format {
	case "csv":
		fmt.Fprintln(w, "employee,entries,duration_minutes")
		for _, row := range r.Employees {
			fmt.Fprintf(w, "%s,%d,%d\n", csvEscape(row.Employee), row.Entries, row.Minutes)
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "md":
		if r.Week != "" {
			fmt.Fprintf(w, "Week %s (%s – %s)\n", r.Week, r.From, r.To)
		} else {
			fmt.Fprintf(w, "%s – %s\n", r.From, r.To)
		}
		fmt.Fprintln(w, "--------------------------------")
		for _, row := range r.Employees {
			fmt.Fprintf(w, "%-20s%s\n", row.Employee, timecalc.FormatDuration(row.Minutes))
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-20s%s\n", "Total", timecalc.FormatDuration(r.Total))
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", format)
	}
	return nil
}
