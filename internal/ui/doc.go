// Package ui renders harbor-wave output for humans and scripts.
//
// Human output uses lipgloss styles, disabled automatically when stdout is
// not a terminal. Scripted output is CSV (terse mode), JSON or YAML.
package ui
