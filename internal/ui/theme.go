package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Grabbed, Help                 lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

var (
	current = classic()

	// profile in effect before mono forced ASCII; nil while no theme has forced it
	saved *termenv.Profile
)

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Grabbed:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.Grabbed = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	t.BorderColor = lipgloss.Color("13")
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
		Done: plain, Selected: plain.Reverse(true), Grabbed: plain.Bold(true), Help: plain,
		Border:       lipgloss.NormalBorder(),
		BorderColor:  lipgloss.NoColor{},
		BoxUnchecked: "[ ]",
		BoxChecked:   "[x]",
		SymDone:      "x",
		SymPending:   "-",
	}
}

// SetTheme switches the current theme. Unknown names fall back to classic.
// mono also drops the colour profile to plain ASCII; any other theme puts
// back the profile that was active before.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "mono":
		if saved == nil {
			p := lipgloss.ColorProfile()
			saved = &p
		}
		lipgloss.SetColorProfile(termenv.Ascii)
		current = mono()
		return
	case "neon":
		current = neon()
	default:
		current = classic()
	}
	if saved != nil {
		lipgloss.SetColorProfile(*saved)
		saved = nil
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
