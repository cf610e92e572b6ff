package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/worklog/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{100, "1h 40m"},
		{1500, "25h 0m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{45, "0:45"},
		{61, "1:01"},
		{605, "10:05"},
	}
	for _, tt := range tests {
		got := timecalc.FormatClock(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"01/03/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"1/3/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"29/02/2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"31/12/1999", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{" 15/06/2026 ", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseDate(tt.input)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"2024",
		"01/03",
		"01/03/2024/1",
		"aa/03/2024",
		"30/02/2024",
		"29/02/2023",
		"00/01/2024",
		"01/13/2024",
		"01/00/2024",
		"01/01/0",
	} {
		if _, err := timecalc.ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) expected error, got nil", input)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	for _, s := range []string{"01/03/2024", "29/02/2024", "31/12/1999", "10/10/2010"} {
		d, err := timecalc.ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if got := timecalc.FormatDate(d); got != s {
			t.Errorf("FormatDate(ParseDate(%q)) = %q", s, got)
		}
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 2, 27, 23, 30, 0, 0, loc)
	want := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	if got := timecalc.Day(in); !got.Equal(want) {
		t.Errorf("Day = %v, want %v", got, want)
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}
