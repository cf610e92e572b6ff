package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/Tiliavir/worklog/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintCSV(t *testing.T) {
	entries := []model.Entry{
		{Username: "jane doe", Title: "Review, part 1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Duration: 45, Notes: "said \"ok\""},
		{Username: "john smith", Title: "Standup", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Duration: 15},
	}
	var buf bytes.Buffer
	printCSV(&buf, entries)

	want := "date,employee,title,duration_minutes,notes\n" +
		"01/03/2024,jane doe,\"Review, part 1\",45,\"said \"\"ok\"\"\"\n" +
		"02/03/2024,john smith,Standup,15,\n"
	if got := buf.String(); got != want {
		t.Errorf("printCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintList(t *testing.T) {
	entries := []model.Entry{
		{Username: "jane doe", Title: "Review", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Duration: 100},
		{Username: "john smith", Title: "Standup", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Duration: 15},
		{Username: "jane doe", Title: "Deploy", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Duration: 60},
	}
	var buf bytes.Buffer
	printList(&buf, entries)

	want := "01/03/2024\n" +
		"  jane doe             Review (1h 40m)\n" +
		"  john smith           Standup (15m)\n" +
		"04/03/2024\n" +
		"  jane doe             Deploy (1h 0m)\n"
	if got := buf.String(); got != want {
		t.Errorf("printList() =\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	printList(&buf, nil)
	if got := buf.String(); got != "No entries found.\n" {
		t.Errorf("printList(nil) = %q", got)
	}
}
