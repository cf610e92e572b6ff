// Package prompt is the line-based text surface the interactive commands
// talk through.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EndOfText is the line that ends multi-line input when end-of-input
// (Ctrl+D) is not available.
const EndOfText = "."

const ansiClear = "\033[H\033[2J"

// Terminal reads answers from in and writes prompts to out.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	clear func(io.Writer)
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithoutClear turns Clear into a no-op. Used for scripted sessions.
func WithoutClear() Option {
	return func(t *Terminal) { t.clear = func(io.Writer) {} }
}

// New returns a Terminal over in and out.
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		clear: func(w io.Writer) {
			_, _ = io.WriteString(w, ansiClear)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Out returns the writer prompts go to.
func (t *Terminal) Out() io.Writer {
	return t.out
}

// Clear wipes the screen before a redraw.
func (t *Terminal) Clear() {
	t.clear(t.out)
}

// Printf writes formatted output.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Println writes a line of output.
func (t *Terminal) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// Ask prints the prompt and returns the next line with surrounding
// whitespace removed. io.EOF is returned only when no input is left at all.
func (t *Terminal) Ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadText prints the prompt on its own line and collects lines until
// end-of-input or a line holding only EndOfText. Neither terminator is part
// of the result.
func (t *Terminal) ReadText(prompt string) (string, error) {
	fmt.Fprintln(t.out, prompt)
	var lines []string
	for {
		line, err := t.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) == EndOfText {
			break
		}
		if line != "" {
			lines = append(lines, trimmed)
		}
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Confirm asks a yes/no question. "y"/"yes" and "n"/"no" are recognised in
// any case; anything else, including an empty answer, yields def.
func (t *Terminal) Confirm(prompt string, def bool) (bool, error) {
	answer, err := t.Ask(prompt)
	if err != nil {
		return def, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// Error prints an inline error banner.
func (t *Terminal) Error(err error) {
	if err != nil {
		fmt.Fprintf(t.out, "*** ERROR: %v ***\n", err)
	}
}
