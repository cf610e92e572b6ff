package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var (
	exportRange  = rangeFlags{weekByDefault: true}
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to stdout (default: this week)",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportRange.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	from, to, err := exportRange.resolve(time.Now())
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

	w := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		if entries == nil {
			entries = []model.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
	case "md":
		printList(w, entries)
	case "csv":
		printCSV(w, entries)
	default:
		return fmt.Errorf("unknown format %q (want csv, json or md)", exportFormat)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.Entry) {
	fmt.Fprintln(w, "date,employee,title,duration_minutes,notes")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%s,%s,%d,%s\n",
			csvEscape(timecalc.FormatDate(e.Date)),
			csvEscape(e.Username),
			csvEscape(e.Title),
			e.Duration,
			csvEscape(e.Notes),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
