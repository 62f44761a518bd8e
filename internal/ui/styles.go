package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

// Styles groups the styles a Printer uses.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Dim     lipgloss.Style
	OK      lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Section lipgloss.Style
}

// ColorStyles returns the terminal palette.
func ColorStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorWhite),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		Dim:     lipgloss.NewStyle().Foreground(colorDim),
		OK:      lipgloss.NewStyle().Foreground(colorGreen),
		Warn:    lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		Section: lipgloss.NewStyle().Bold(true).Foreground(colorBlue).MarginTop(1),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Header: plain, Dim: plain, OK: plain, Warn: plain, Error: plain, Section: plain}
}

// IsInteractiveTTY reports whether f is a terminal.
func IsInteractiveTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
