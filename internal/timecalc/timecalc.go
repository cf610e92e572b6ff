package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day/month/year display format used throughout the log.
const DateLayout = "02/01/2006"

// Day returns midnight UTC of t's calendar date. Entry dates are always
// stored in this form so equality and range filters compare cleanly.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a day/month/year string. The components are read in
// reverse to build the date, so "1/3/2024" and "01/03/2024" both yield
// 1 March 2024. Dates that do not exist on the calendar are rejected.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%q is not of the form dd/mm/yyyy", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is not a number", p)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year < 1 || year > 9999 {
		return time.Time{}, errors.New("year is out of range")
	}
	if month < 1 || month > 12 {
		return time.Time{}, errors.New("month must be in 1..12")
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, errors.New("day is out of range for month")
	}
	return d, nil
}

// FormatDuration formats minutes as a human-readable string like "1h 40m" or "45m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock formats minutes as H:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t, as Days.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := Day(t.AddDate(0, 0, -(wd - 1)))
	return monday, monday.AddDate(0, 0, 6)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
