package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, ID lipgloss.Style

	Selected lipgloss.Style
	Border   lipgloss.Border
	BorderFG lipgloss.Color

	SymItem, SymOK, SymFail string
}

var current = newTheme("classic")

// SetTheme switches the theme used by every renderer. Unknown names fall
// back to classic.
func SetTheme(name string) { current = newTheme(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func newTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			ID:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Border:   lipgloss.RoundedBorder(),
			BorderFG: lipgloss.Color("13"),
			SymItem:  "◻", SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		return Theme{
			Title:    lipgloss.NewStyle(),
			Muted:    lipgloss.NewStyle(),
			Accent:   lipgloss.NewStyle(),
			Success:  lipgloss.NewStyle(),
			Error:    lipgloss.NewStyle(),
			ID:       lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Border:   lipgloss.NormalBorder(),
			BorderFG: lipgloss.Color(""),
			SymItem:  "-", SymOK: "ok", SymFail: "error:",
		}
	default: // classic
		return Theme{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			ID:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:   lipgloss.RoundedBorder(),
			BorderFG: lipgloss.Color("8"),
			SymItem:  "•", SymOK: "✔", SymFail: "✖",
		}
	}
}
