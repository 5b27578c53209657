package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/leadtest"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/service"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

type fixture struct {
	api   *leadtest.API
	state *state.AppState
	model Model
}

func newFixture(t *testing.T, loggedIn bool) *fixture {
	t.Helper()
	ctx := context.Background()

	api := leadtest.StartAPI(t, leadtest.Leads()...)
	tokens := leadsdk.NewMemoryTokenStore()
	client := leadsdk.NewClient(api.URL, tokens)
	if loggedIn {
		res := client.Login(ctx, leadtest.AdminEmail, leadtest.AdminPassword)
		require.True(t, res.Success, res.Message)
	}

	st := state.New(time.Hour)
	t.Cleanup(st.Close)
	st.Restore(ctx, tokens)

	m := New(ctx, Deps{
		Key:    "test",
		State:  st,
		Tokens: tokens,
		Leads:  &service.LeadsService{Client: client},
	})
	return &fixture{api: api, state: st, model: m}
}

// send applies msg and returns the command without running it.
func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()

	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

// settle runs cmd and feeds its message back into the model.
func (f *fixture) settle(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	return f.send(t, cmd())
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitLoadsLeads(t *testing.T) {
	f := newFixture(t, true)

	f.settle(t, f.model.Init())
	require.Len(t, f.model.rowIDs, 4)
	require.Equal(t, "Loaded 4 leads", f.model.Status())

	out := f.model.View()
	require.Contains(t, out, "(4)")
	require.Contains(t, out, "Ada Lovelace")
	require.Contains(t, out, "Jan 12, 2023")
}

func TestNotAuthenticatedQuits(t *testing.T) {
	f := newFixture(t, false)

	cmd := f.settle(t, f.model.Init())
	require.True(t, f.model.LoggedOut())
	require.Equal(t, leadsdk.MsgNotAuthenticated, f.model.Status())
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCursorLandsOnFirstRowAfterLoad(t *testing.T) {
	f := newFixture(t, true)
	require.Empty(t, f.model.rowIDs)

	f.settle(t, f.model.Init())
	require.Equal(t, 0, f.model.table.Cursor())
	require.Equal(t, leadtest.IDs(leadtest.Leads())[0], f.model.cursorID())

	// Emptying the table and refilling it must not strand the cursor either.
	f.send(t, key("/"))
	f.send(t, key("zzz"))
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, f.model.rowIDs)

	f.send(t, key("/"))
	f.send(t, tea.KeyMsg{Type: tea.KeyBackspace})
	f.send(t, tea.KeyMsg{Type: tea.KeyBackspace})
	f.send(t, tea.KeyMsg{Type: tea.KeyBackspace})
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, f.model.rowIDs, 4)
	require.Equal(t, 0, f.model.table.Cursor())

	f.send(t, key(" "))
	require.Len(t, f.state.View.Selected(), 1)
}

func TestSelectionKeys(t *testing.T) {
	f := newFixture(t, true)
	f.settle(t, f.model.Init())
	ids := leadtest.IDs(leadtest.Leads())

	f.send(t, key(" "))
	require.Equal(t, []string{ids[0]}, f.state.View.Selected())
	require.Contains(t, f.model.View(), "[x]")
	require.Contains(t, f.model.View(), "1 selected")

	f.send(t, key("a"))
	require.ElementsMatch(t, ids, f.state.View.Selected())
	require.True(t, f.state.View.AllSelected())

	f.send(t, key("a"))
	require.Empty(t, f.state.View.Selected())
	require.NotContains(t, f.model.View(), "[x]")
}

func TestSearchFiltersAfterConfirm(t *testing.T) {
	f := newFixture(t, true)
	f.settle(t, f.model.Init())

	f.send(t, key("/"))
	require.True(t, f.model.searching)

	f.send(t, key("nasa"))
	require.Equal(t, "nasa", f.state.View.Query())
	require.True(t, f.state.View.Pending())
	require.Contains(t, f.model.View(), "searching…")
	require.Len(t, f.model.rowIDs, 4)

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, f.model.searching)
	require.Equal(t, "nasa", f.state.View.DebouncedQuery())
	require.Len(t, f.model.rowIDs, 1)
	require.Contains(t, f.model.View(), "Katherine Johnson")
}

func TestDebouncedSearchRerendersOnViewChange(t *testing.T) {
	f := newFixture(t, true)
	f.settle(t, f.model.Init())

	f.send(t, key("/"))
	f.send(t, key("grace"))
	require.Len(t, f.model.rowIDs, 4)

	// What the timer would do, followed by the message Run forwards.
	require.True(t, f.state.View.Flush())
	f.send(t, viewChangedMsg{})
	require.Len(t, f.model.rowIDs, 1)
}

func TestDeleteSelected(t *testing.T) {
	f := newFixture(t, true)
	f.settle(t, f.model.Init())

	f.send(t, key(" "))
	f.settle(t, f.send(t, key("d")))

	require.Equal(t, "1 lead deleted successfully", f.model.Status())
	require.Len(t, f.model.rowIDs, 3)
	require.Len(t, f.api.Server.Leads(), 3)
	require.Empty(t, f.state.View.Selected())
}

func TestDeleteNothingSelected(t *testing.T) {
	f := newFixture(t, true)
	f.settle(t, f.model.Init())

	f.settle(t, f.send(t, key("d")))
	require.Equal(t, "No leads selected", f.model.Status())
	require.Len(t, f.api.Server.Leads(), 4)
}

func TestQuit(t *testing.T) {
	f := newFixture(t, true)

	cmd := f.send(t, key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQIsTextWhileSearching(t *testing.T) {
	f := newFixture(t, true)

	f.send(t, key("/"))
	f.send(t, key("q"))
	require.True(t, f.model.searching)
	require.Equal(t, "q", f.state.View.Query())

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, f.model.searching)
}
