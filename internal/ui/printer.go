package ui

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Prefix starts every status line.
const Prefix = "harbor-wave"

// Output formats for structured listings.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an output format outside the list above.
var ErrUnknownFormat = errors.New("unknown output format")

// Printer writes status lines to err and results to out. It is safe for
// concurrent use.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	err    io.Writer
	styles Styles
	// Terse switches tables to CSV.
	Terse bool
}

// NewPrinter writes results to out and status to errOut with the given styles.
func NewPrinter(out, errOut io.Writer, styles Styles) *Printer {
	return &Printer{out: out, err: errOut, styles: styles}
}

// NewStdPrinter writes to stdout and stderr, coloured when stdout is a terminal.
func NewStdPrinter() *Printer {
	styles := PlainStyles()
	if IsInteractiveTTY(os.Stdout) {
		styles = ColorStyles()
	}
	return NewPrinter(os.Stdout, os.Stderr, styles)
}

// Out returns the result writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Styles returns the active styles.
func (p *Printer) Styles() Styles {
	return p.styles
}

// Message prints a status line.
func (p *Printer) Message(format string, args ...interface{}) {
	p.line(p.out, Prefix+": "+fmt.Sprintf(format, args...))
}

// Submsg prints an indented detail line.
func (p *Printer) Submsg(format string, args ...interface{}) {
	p.line(p.out, "\t"+fmt.Sprintf(format, args...))
}

// Warn prints a warning to the error stream.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.line(p.err, Prefix+": "+p.styles.Warn.Render("WARN:")+" "+fmt.Sprintf(format, args...))
}

// Error prints an error to the error stream.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, Prefix+" "+p.styles.Error.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) line(w io.Writer, s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(w, s)
}

// Table prints rows under headers, aligned, or as CSV in terse mode.
func (p *Printer) Table(headers []string, rows [][]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Terse {
		return writeCSV(p.out, rows)
	}
	_, err := io.WriteString(p.out, renderTable(p.styles, headers, rows))
	return err
}

// Structured prints v as a table, JSON or YAML. table is called for the
// table format.
func (p *Printer) Structured(format string, v interface{}, table func() error) error {
	switch format {
	case "", FormatTable:
		return table()
	case FormatJSON:
		p.mu.Lock()
		defer p.mu.Unlock()
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		p.mu.Lock()
		defer p.mu.Unlock()
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q, want %s, %s or %s", ErrUnknownFormat, format, FormatTable, FormatJSON, FormatYAML)
	}
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func renderTable(styles Styles, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(pad(headers, widths)))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(pad(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", w-lipgloss.Width(cell))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
