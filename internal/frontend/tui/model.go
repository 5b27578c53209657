// Package tui is the terminal dashboard over the admin lead list. It drives
// the same state and services as the web front-end.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// ErrNotAuthenticated is returned by Run when the API no longer accepts the
// stored token.
var ErrNotAuthenticated = errors.New("tui: not authenticated")

// Deps is what the dashboard works on.
type Deps struct {
	// Key identifies the agent for request coalescing, e.g. the session id.
	Key    string
	State  *state.AppState
	Tokens leadsdk.TokenStore
	Leads  *service.LeadsService
}

type refreshedMsg struct {
	res leadsdk.Result[[]leadsdk.Lead]
}

type deletedMsg struct {
	res leadsdk.Result[struct{}]
	ok  bool
}

// viewChangedMsg is sent when a debounced search lands.
type viewChangedMsg struct{}

type Model struct {
	ctx  context.Context
	deps Deps

	search    textinput.Model
	table     table.Model
	rowIDs    []string
	searching bool

	status    string
	statusErr bool
	loading   bool
	loggedOut bool

	width  int
	height int
	styles Styles
}

func New(ctx context.Context, deps Deps) Model {
	search := textinput.New()
	search.Placeholder = "Type to search"
	search.Prompt = "/ "
	search.CharLimit = 120

	t := table.New(
		table.WithColumns(columns(100)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := Model{
		ctx:    ctx,
		deps:   deps,
		search: search,
		table:  t,
		styles: DefaultStyles(),
	}
	m.syncRows()
	return m
}

func columns(width int) []table.Column {
	// checkbox, name, company, notes, date
	rest := max(width-3-14-8, 30)
	return []table.Column{
		{Title: "", Width: 3},
		{Title: "Name", Width: rest * 2 / 5},
		{Title: "Company", Width: rest / 5},
		{Title: "Notes", Width: rest * 2 / 5},
		{Title: "Date", Width: 14},
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	ctx, deps := m.ctx, m.deps
	return func() tea.Msg {
		return refreshedMsg{res: deps.Leads.Refresh(ctx, deps.Key, deps.State, deps.Tokens)}
	}
}

func (m Model) deleteSelected() tea.Cmd {
	ctx, deps := m.ctx, m.deps
	return func() tea.Msg {
		res, ok := deps.Leads.Delete(ctx, deps.State, deps.Tokens)
		return deletedMsg{res: res, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-8, 3))
		m.search.Width = max(msg.Width-10, 10)
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.syncRows()
		switch {
		case msg.res.Outcome == leadsdk.OutcomeNotAuthenticated:
			m.loggedOut = true
			m.setError(msg.res.Message)
			return m, tea.Quit
		case !msg.res.Success:
			m.setError(msg.res.Message)
		default:
			m.setStatus(fmt.Sprintf("Loaded %d leads", len(msg.res.Data)))
		}
		return m, nil

	case deletedMsg:
		m.loading = false
		m.syncRows()
		switch {
		case !msg.ok:
			m.setError("No leads selected")
		case msg.res.Outcome == leadsdk.OutcomeNotAuthenticated:
			m.loggedOut = true
			m.setError(msg.res.Message)
			return m, tea.Quit
		case !msg.res.Success:
			m.setError(msg.res.Message)
		default:
			m.setStatus(msg.res.Message)
		}
		return m, nil

	case viewChangedMsg:
		m.syncRows()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		// Skip the wait when the user explicitly confirms.
		m.deps.State.View.Flush()
		m.searching = false
		m.search.Blur()
		m.syncRows()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.deps.State.View.Type(v)
	}
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.deps.State.View

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case " ", "x":
		if id := m.cursorID(); id != "" {
			view.Toggle(id)
			m.syncRows()
		}
		return m, nil
	case "a":
		view.ToggleAll()
		m.syncRows()
		return m, nil
	case "d":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("Deleting…")
		return m, m.deleteSelected()
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("Refreshing…")
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) cursorID() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rowIDs) {
		return ""
	}
	return m.rowIDs[i]
}

// syncRows copies the view's rows into the table, keeping the cursor in range.
func (m *Model) syncRows() {
	rows := m.deps.State.View.Rows()

	m.rowIDs = make([]string, 0, len(rows))
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		mark := "[ ]"
		if r.Selected {
			mark = "[x]"
		}
		out = append(out, table.Row{
			mark,
			r.Lead.FullName,
			orDash(r.Lead.CompanyName),
			orDash(r.Lead.Notes),
			r.Created,
		})
		m.rowIDs = append(m.rowIDs, r.Lead.ID)
	}

	m.table.SetRows(out)
	// An empty table leaves the cursor at -1; snap it back once rows arrive.
	if c := m.table.Cursor(); c < 0 || c >= len(out) {
		m.table.SetCursor(min(max(c, 0), max(len(out)-1, 0)))
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// LoggedOut reports whether the dashboard quit because the API refused the token.
func (m Model) LoggedOut() bool { return m.loggedOut }

// Status is the message currently on the status line.
func (m Model) Status() string { return m.status }
