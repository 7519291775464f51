package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

// Store is what the view needs from the state container.
type Store interface {
	State() model.State
	Dispatch(store.Intent)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	deleteBind = key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete"))
)

// Model is the interactive list. It never edits items itself: every change
// is dispatched to the store and the list is rebuilt from the next snapshot.
type Model struct {
	store Store
	list  list.Model

	// Inline add
	adding bool            // true when inline add is active
	ti     textinput.Model // text input for the new item
	addErr string          // last add validation error (shown until the next key)

	width, height int
}

// New builds the view over s and renders its current snapshot.
func New(s Store) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, deleteBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, deleteBind} }

	m := Model{store: s, list: l, width: 80, height: 24}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "New item text..."
	m.ti.CharLimit = 200
	m.sync()
	return m
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(s Store, opts ...tea.ProgramOption) error {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}

// sync rebuilds the list from the store's snapshot.
func (m *Model) sync() {
	st := m.store.State()
	items := make([]list.Item, 0, st.Len())
	for _, it := range st.Items {
		items = append(items, listItem{Item: it})
	}
	m.list.Title = ui.Header(st)
	m.filter(m.list.SetItems(items))
}

// filter runs a pending filter command in place, so the visible rows always
// belong to the current snapshot and a delete acts on the row on screen.
func (m *Model) filter(cmd tea.Cmd) {
	if cmd != nil {
		if msg, ok := cmd().(list.FilterMatchesMsg); ok {
			m.list, _ = m.list.Update(msg)
		}
	}
	if m.list.FilterState() == list.FilterApplied && len(m.list.VisibleItems()) == 0 {
		m.list.ResetFilter()
	}
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	// Filter results are computed in filter; late async ones would be stale.
	if _, ok := msg.(list.FilterMatchesMsg); ok {
		return m, nil
	}

	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			m.addErr = ""
			switch x.String() {
			case "enter":
				text := strings.TrimSpace(m.ti.Value())
				if text == "" {
					m.addErr = "Title cannot be empty"
					return m, nil
				}
				m.store.Dispatch(store.Add{Text: text})
				m.closeInput()
				m.sync()
				if n := len(m.list.VisibleItems()); n > 0 {
					m.list.Select(n - 1)
				}
				return m, nil
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case msg.String() == "q", msg.String() == "esc" && !m.list.IsFiltered():
			return m, tea.Quit
		case key.Matches(msg, addBind):
			m.adding = true
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		case key.Matches(msg, deleteBind):
			if it, ok := m.list.SelectedItem().(listItem); ok {
				m.store.Dispatch(store.Remove{ID: it.ID})
				m.sync()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.list.FilterState() != list.Unfiltered {
		m.filter(m.list.SetItems(m.list.Items()))
	}
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding = false
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 8
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += ": " + ui.Current().Error.Render(m.addErr)
		}
		content += "\n" + ui.PanelString(title+"\n"+m.ti.View())
	}
	return ui.PanelString(content)
}
