package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/finder"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// rangeFlags are the period selectors shared by list, report and export.
type rangeFlags struct {
	from  string
	to    string
	today bool
	week  bool
	// weekByDefault selects the current week when no flag is given,
	// otherwise today.
	weekByDefault bool
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "Start date (dd/mm/yyyy); --to defaults to today")
	cmd.Flags().StringVar(&r.to, "to", "", "End date (dd/mm/yyyy); requires --from")
	cmd.Flags().BoolVar(&r.today, "today", false, "Only today")
	cmd.Flags().BoolVar(&r.week, "week", false, "This week (Monday to Sunday)")
	cmd.MarkFlagsMutuallyExclusive("from", "today", "week")
}

// resolve returns the inclusive day range selected by the flags.
func (r *rangeFlags) resolve(now time.Time) (time.Time, time.Time, error) {
	today := timecalc.Day(now)
	switch {
	case r.from != "" || r.to != "":
		if r.from == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
		}
		from, err := timecalc.ParseDate(r.from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value %q: %w", r.from, err)
		}
		to := today
		if r.to != "" {
			if to, err = timecalc.ParseDate(r.to); err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value %q: %w", r.to, err)
			}
		}
		q, err := finder.Between(from, to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return q.From, q.To, nil
	case r.week:
		from, to := timecalc.WeekRange(now)
		return from, to, nil
	case r.today:
		return today, today, nil
	case r.weekByDefault:
		from, to := timecalc.WeekRange(now)
		return from, to, nil
	default:
		return today, today, nil
	}
}
