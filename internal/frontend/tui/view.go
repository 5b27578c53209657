package tui

import (
	"fmt"
	"strings"
)

const helpText = "/ search · space select · a select all · d delete · r refresh · q quit"

func (m Model) View() string {
	var sb strings.Builder
	view := m.deps.State.View

	title := m.styles.Title.Render("Leads") + " " +
		m.styles.Count.Render(fmt.Sprintf("(%d)", m.deps.State.Leads.Len()))
	if n := len(view.Selected()); n > 0 {
		title += "  " + m.styles.Error.Render(fmt.Sprintf("%d selected", n))
	}
	sb.WriteString(title + "\n")

	search := m.search.View()
	if view.Pending() {
		search += "  " + m.styles.Muted.Render("searching…")
	}
	sb.WriteString(m.styles.Search.Render(search) + "\n")

	if len(m.rowIDs) == 0 {
		sb.WriteString(m.styles.Muted.Render("No leads found.") + "\n")
	} else {
		sb.WriteString(m.styles.Content.Render(m.table.View()) + "\n")
	}

	if m.status != "" {
		if m.statusErr {
			sb.WriteString(m.styles.Error.Render(m.status) + "\n")
		} else {
			sb.WriteString(m.styles.Status.Render(m.status) + "\n")
		}
	}
	sb.WriteString(m.styles.Help.Render(helpText))

	return sb.String()
}
