// Package tui is the interactive Bubble Tea front end for a store.Store.
//
// The model never edits items itself. Each key that changes the list calls
// the matching store operation and then re-reads the store.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options tune the add box.
type Options struct {
	CharLimit   int
	Placeholder string
	Logger      *log.Logger
}

// Model is the Bubble Tea model.
type Model struct {
	store  *store.Store
	list   list.Model
	keys   keyMap
	drag   *dragSensor
	logger *log.Logger

	// Inline add
	adding bool            // true when inline add is active
	ti     textinput.Model // bound to the store draft
	addErr string          // last add validation error (shown until the next key)

	width, height int
}

// New builds a model over s.
func New(s *store.Store, opt Options) Model {
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	drag := &dragSensor{}
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{drag: drag}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = opt.Placeholder
	ti.CharLimit = opt.CharLimit
	ti.SetValue(s.Draft())

	m := Model{
		store:  s,
		list:   l,
		keys:   keys,
		drag:   drag,
		logger: opt.Logger,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.sync()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *store.Store, opt Options) error {
	_, err := tea.NewProgram(New(s, opt), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	// add mode
	if m.adding {
		return m.updateAdding(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			if m.drag.active() {
				m.drag.cancel()
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.addErr = ""
			m.drag.cancel()
			m.ti.SetValue(m.store.Draft())
			m.ti.CursorEnd()
			m.resize()
			return m, m.ti.Focus()
		case key.Matches(msg, m.keys.Toggle):
			if id, ok := m.selectedID(); ok && m.store.Toggle(id) {
				if it, ok := m.store.Get(id); ok {
					m.logger.Debug("toggled", "id", id, "completed", it.Completed)
				}
				m.sync()
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if id, ok := m.selectedID(); ok {
				if m.drag.holding(id) {
					m.drag.cancel()
				}
				m.store.Delete(id)
				m.sync()
			}
			return m, nil
		case key.Matches(msg, m.keys.MoveUp):
			m.moveBy(-1)
			return m, nil
		case key.Matches(msg, m.keys.MoveDown):
			m.moveBy(1)
			return m, nil
		case key.Matches(msg, m.keys.Grab):
			m.grabOrDrop()
			return m, nil
		case key.Matches(msg, m.keys.Drop) && m.drag.active():
			m.grabOrDrop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			it, added := m.store.SubmitDraft()
			m.ti.SetValue("")
			if !added {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.adding = false
			m.addErr = ""
			m.ti.Blur()
			m.sync()
			m.selectID(it.ID)
			m.resize()
			return m, nil
		case "esc":
			m.adding = false
			m.addErr = ""
			m.ti.SetValue("")
			m.store.SetDraft("")
			m.ti.Blur()
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.store.SetDraft(m.ti.Value())
	return m, cmd
}

// moveBy reorders the selected item onto its neighbour at offset.
func (m *Model) moveBy(offset int) {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	items := m.store.Items()
	j := items.IndexOf(id) + offset
	if j < 0 || j >= len(items) {
		return
	}
	if m.store.Reorder(id, items[j].ID) {
		m.sync()
		m.selectID(id)
	}
}

func (m *Model) grabOrDrop() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	if !m.drag.active() {
		m.drag.grab(id)
		m.logger.Debug("grabbed", "id", id)
		return
	}
	source, _ := m.drag.drop(id)
	if m.store.Reorder(source, id) {
		m.sync()
	}
	m.selectID(source)
}

func (m Model) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.ID, true
}

func (m *Model) selectID(id string) {
	if i := m.store.Items().IndexOf(id); i >= 0 {
		m.list.Select(i)
	}
}

// sync copies the store's items into the list and refreshes the header.
func (m *Model) sync() {
	items := m.store.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{Item: it})
	}
	idx := m.list.Index()
	m.list.SetItems(li)
	if idx >= len(li) {
		idx = len(li) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = ui.Header(items)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h = m.height - 8
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
	m.ti.Width = m.width - 10
}

// shown returns what the list currently shows.
func (m Model) shown() model.List {
	out := make(model.List, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.Item)
		}
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.addErr != "" {
			title += "  " + t.Error.Render(m.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	} else if m.drag.active() {
		content += "\n" + t.Grabbed.Render("moving: pick a spot and press m or enter, esc cancels")
	}
	return ui.Panel([]string{content})
}
