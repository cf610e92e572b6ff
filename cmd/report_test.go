package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/worklog/internal/finder"
	"github.com/Tiliavir/worklog/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleEntries() []model.Entry {
	return []model.Entry{
		{Username: "john smith", Date: date(2024, 3, 4), Duration: 30},
		{Username: "jane doe", Date: date(2024, 3, 5), Duration: 90},
		{Username: "john smith", Date: date(2024, 3, 6), Duration: 15},
	}
}

func TestBuildReport(t *testing.T) {
	r := buildReport(date(2024, 3, 4), date(2024, 3, 10), sampleEntries())

	assert.Equal(t, "2024-W10", r.Week)
	assert.Equal(t, 135, r.Total)
	assert.Equal(t, []employeeTotal{
		{Employee: "jane doe", Entries: 1, Minutes: 90},
		{Employee: "john smith", Entries: 2, Minutes: 45},
	}, r.Employees)
}

func TestBuildReportPartialWeekHasNoLabel(t *testing.T) {
	r := buildReport(date(2024, 3, 5), date(2024, 3, 6), nil)
	assert.Empty(t, r.Week)
	assert.Empty(t, r.Employees)
	assert.NotNil(t, r.Employees)
}

func TestWriteReportFormats(t *testing.T) {
	r := buildReport(date(2024, 3, 4), date(2024, 3, 10), sampleEntries())

	var md bytes.Buffer
	require.NoError(t, writeReport(&md, r, "md"))
	assert.Equal(t, "Week 2024-W10 (04/03/2024 – 10/03/2024)\n"+
		"--------------------------------\n"+
		"jane doe            1h 30m\n"+
		"john smith          45m\n"+
		"--------------------------------\n"+
		"Total               2h 15m\n", md.String())

	var csv bytes.Buffer
	require.NoError(t, writeReport(&csv, r, "csv"))
	assert.Equal(t, "employee,entries,duration_minutes\njane doe,1,90\njohn smith,2,45\n", csv.String())

	var js bytes.Buffer
	require.NoError(t, writeReport(&js, r, "json"))
	var decoded report
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, r, decoded)

	assert.Error(t, writeReport(&bytes.Buffer{}, r, "xml"))
}

func TestRangeFlagsResolve(t *testing.T) {
	now := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		name     string
		flags    rangeFlags
		from, to time.Time
	}{
		{"default today", rangeFlags{}, date(2024, 3, 6), date(2024, 3, 6)},
		{"default week", rangeFlags{weekByDefault: true}, date(2024, 3, 4), date(2024, 3, 10)},
		{"today overrides week default", rangeFlags{today: true, weekByDefault: true}, date(2024, 3, 6), date(2024, 3, 6)},
		{"week", rangeFlags{week: true}, date(2024, 3, 4), date(2024, 3, 10)},
		{"from only", rangeFlags{from: "01/03/2024"}, date(2024, 3, 1), date(2024, 3, 6)},
		{"from and to", rangeFlags{from: "1/2/2024", to: "29/02/2024"}, date(2024, 2, 1), date(2024, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := tt.flags.resolve(now)
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestRangeFlagsResolveErrors(t *testing.T) {
	now := date(2024, 3, 6)

	_, _, err := (&rangeFlags{to: "01/03/2024"}).resolve(now)
	assert.Error(t, err)

	_, _, err = (&rangeFlags{from: "31/02/2024"}).resolve(now)
	assert.Error(t, err)

	_, _, err = (&rangeFlags{from: "10/03/2024", to: "01/03/2024"}).resolve(now)
	assert.ErrorIs(t, err, finder.ErrRange)
}
