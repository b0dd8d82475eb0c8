package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// maxTitle is the longest item text shown before truncation.
const maxTitle = 80

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	t := current
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Header is the "Todos ✔ n • n Total n" line.
func Header(l model.List) string {
	t := current
	d, p := l.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(l),
	)
}

// Summary renders the header, a progress bar and the items.
// With group set, pending items are listed before done ones under headings.
func Summary(l model.List, group bool) []string {
	t := current
	d, p := l.Stats()
	lines := []string{
		Header(l),
		t.Muted.Render(ProgressBar(d, d+p, 28)),
		"",
	}
	if group {
		return append(lines, groupLines(l)...)
	}
	return append(lines, ItemLines(l)...)
}

// ItemLines renders one numbered line per item.
func ItemLines(l model.List) []string {
	t := current
	if len(l) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(l))
	for i, it := range l {
		out = append(out, fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), ItemText(it)))
	}
	return out
}

// ItemText renders the checkbox and text of one item.
func ItemText(it model.Item) string {
	t := current
	text := it.Text
	if r := []rune(text); len(r) > maxTitle {
		text = string(r[:maxTitle-3]) + "..."
	}
	if it.Completed {
		return t.Success.Render(t.BoxChecked) + " " + t.Done.Render(text)
	}
	return t.Muted.Render(t.BoxUnchecked) + " " + text
}

func groupLines(l model.List) []string {
	var pend, done model.List
	for _, it := range l {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := current
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, ItemLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, ItemLines(done)...)
	}
	return lines
}
