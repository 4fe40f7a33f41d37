// Package ui holds the terminal styles used by the CLI's plain-text output.
//
// [Palette] is a small stylesheet of [lipgloss.Style] values; [Default] is the one the CLI uses. Styling is dropped
// automatically when output is not a terminal, so piped output stays plain.
package ui
