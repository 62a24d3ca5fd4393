// Package printer formats command line output with colors.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"modelkit/internal/diagnostic"
)

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Printer writes messages to an output and an error stream.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New creates a printer. Nil writers default to os.Stdout and os.Stderr.
func New(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}

	if errOut == nil {
		errOut = os.Stderr
	}

	return &Printer{out: out, err: errOut}
}

// Success prints a success message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}

	green.Fprint(p.out, msg)
}

// Info prints an informational message in the default color.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a warning message in yellow with a warning prefix.
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠") {
		msg = "⚠️  " + msg
	}

	yellow.Fprint(p.out, msg)
}

// Step prints a step message with emphasis (used in multi-step operations).
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a formatted error with title, explanation and suggestions to
// the error stream and returns a simple error for Cobra.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	red.Fprintf(p.err, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(p.err, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(p.err, "\n")

		if len(suggestions) == 1 {
			fmt.Fprintf(p.err, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.err, "Either:\n")

			for i, suggestion := range suggestions {
				fmt.Fprintf(p.err, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Cobra does not print it again because of SilenceErrors.
	return fmt.Errorf("%s", title)
}

// Diagnostics prints every diagnostic, errors first, colored by severity.
func (p *Printer) Diagnostics(d *diagnostic.Diagnostics) {
	for _, item := range d.All() {
		switch item.Severity {
		case diagnostic.DiagnosticError:
			red.Fprintf(p.err, "error: ")
			fmt.Fprintf(p.err, "%s\n", item)
		case diagnostic.DiagnosticWarning:
			yellow.Fprintf(p.err, "warning: ")
			fmt.Fprintf(p.err, "%s\n", item)
		default:
			faint.Fprintf(p.err, "info: %s\n", item)
		}
	}
}

// Table prints rows as aligned columns.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	line := func(cells []string, c *color.Color) {
		parts := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}

			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}

		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if c != nil {
			c.Fprintln(p.out, text)
		} else {
			fmt.Fprintln(p.out, text)
		}
	}

	line(header, faint)

	for _, row := range rows {
		line(row, nil)
	}
}
