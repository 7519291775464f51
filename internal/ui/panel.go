package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
)

// PanelString frames inner with the current theme's border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderFG).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}

// Header is the title line with the live item count.
func Header(st model.State) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d",
		t.Title.Render("Todos"),
		t.Accent.Render("Total"), st.Len(),
	)
}

// ItemLine renders one item as "• #id text".
func ItemLine(it model.Item) string {
	t := Current()
	return fmt.Sprintf("%s %s %s", t.Muted.Render(t.SymItem), t.ID.Render("#"+string(it.ID)), it.Text)
}

// Lines renders a snapshot for a panel whose content is at most width
// columns wide. Long texts are cut with "...".
func Lines(st model.State, width int) []string {
	t := Current()
	if st.Len() == 0 {
		return []string{t.Muted.Render("no items")}
	}
	if width < 20 {
		width = 20
	}
	out := make([]string, 0, st.Len())
	for _, it := range st.Items {
		// "• #" plus id plus a space
		room := width - 4 - lipgloss.Width(string(it.ID))
		it.Text = truncate(it.Text, room)
		out = append(out, ItemLine(it))
	}
	return out
}

// Snapshot prints the whole list in a panel sized for w.
func Snapshot(w io.Writer, st model.State) {
	lines := []string{Header(st), ""}
	lines = append(lines, Lines(st, Width(w)-4)...)
	lines = append(lines, "", Current().Muted.Render("Tip: add with `todo eval \"add Buy milk\"`"))
	Panel(w, lines)
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
