package editor

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var titleCaser = cases.Title(language.Und)

// TitleCase capitalises each word of s for display.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// Render writes the framed card view of an entry.
func Render(w io.Writer, e model.Entry) {
	header := fmt.Sprintf("TITLE: %s     DATE: %s     DURATION: %s",
		TitleCase(e.Title), timecalc.FormatDate(e.Date), timecalc.FormatClock(e.Duration))
	rule := strings.Repeat("=", utf8.RuneCountInString(header))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\tEMPLOYEE: %s\n\n", TitleCase(e.Username))
	fmt.Fprintf(w, "\tNOTES: %s\n\n", e.Notes)
	fmt.Fprintln(w, rule)
}
