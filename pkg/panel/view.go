package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

// column is a fixed-width table column
type column struct {
	title string
	width int
}

// View renders the current screen
func (m Model) View() string {
	if m.Mode == ModeForm && m.Form != nil {
		return m.renderForm()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.Mode == ModeDetail:
		b.WriteString(panelStyle.Render(titleStyle.Render(m.DetailTitle) + "\n" + m.detail.View()))
	case m.Mode == ModeConfirm && m.Confirm != nil:
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Delete %s?\n\n%s", m.Confirm.Label, subtleStyle.Render("y: delete   n/esc: cancel"))))
	case m.Screen == ScreenDashboard:
		b.WriteString(m.renderDashboard())
	case m.Screen == ScreenUsers:
		b.WriteString(m.renderUsers())
	case m.Screen == ScreenOrders:
		b.WriteString(m.renderOrders())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	var parts []string
	for i, s := range tabs {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.Screen {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.Session != nil {
		bar += "  " + subtleStyle.Render(m.Session.User.Name+" <"+m.Session.User.Email+">")
	}
	if m.Loading {
		bar += " " + m.spinner.View()
	}
	return bar
}

func (m Model) renderForm() string {
	var b strings.Builder
	if m.Form.Kind == FormLogin {
		b.WriteString(titleStyle.Render("Admin Panel"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.Form.Form.View())
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.Err.Error()))
	}
	if m.Form.Kind != FormLogin {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("esc: cancel"))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var b strings.Builder
	switch {
	case m.Err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	case m.Status != "":
		b.WriteString(statusOKStyle.Render(m.Status))
		b.WriteString("\n")
	}
	if m.Mode == ModeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderDashboard() string {
	if m.Stats == nil {
		return subtleStyle.Render("Loading dashboard...")
	}
	st := m.Stats
	card := func(label, value string) string {
		return panelStyle.Width(18).Render(subtleStyle.Render(label) + "\n" + statValueStyle.Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total users", strconv.Itoa(st.TotalUsers)),
		card("Active users", strconv.Itoa(st.ActiveUsers)),
		card("Total orders", strconv.Itoa(st.TotalOrders)),
		card("Revenue", output.FormatAmount(st.Revenue)),
	)

	var byStatus []string
	for _, s := range models.OrderStatuses {
		style := orderStatusStyles[s]
		byStatus = append(byStatus, style.Render(fmt.Sprintf("%s %d", s, st.OrdersByStatus[s])))
	}

	var act strings.Builder
	act.WriteString(headerStyle.Render("Recent activity"))
	act.WriteString("\n")
	if len(st.RecentActivity) == 0 {
		act.WriteString(subtleStyle.Render("No recent activity"))
	}
	now := m.now()
	for _, a := range st.RecentActivity {
		act.WriteString(ansi.Truncate(output.ActivityLine(a, now), max(m.Width-2, 40), "…"))
		act.WriteString("\n")
	}

	return cards + "\n" + strings.Join(byStatus, "   ") + "\n\n" + act.String()
}

func (m Model) renderUsers() string {
	cols := []column{{"ID", 5}, {"Name", 24}, {"Email", 28}, {"Role", 8}, {"Status", 9}, {"Joined", 10}}
	rows := make([][]string, len(m.Users))
	for i, u := range m.Users {
		rows[i] = []string{strconv.Itoa(u.ID), u.Name, u.Email, string(u.Role), string(u.Status), u.JoinDate}
	}
	return m.renderList(ScreenUsers, cols, rows)
}

func (m Model) renderOrders() string {
	cols := []column{{"ID", 5}, {"Order", 10}, {"Customer", 22}, {"Amount", 11}, {"Status", 10}, {"Date", 10}}
	rows := make([][]string, len(m.Orders))
	for i, o := range m.Orders {
		rows[i] = []string{strconv.Itoa(o.ID), o.OrderNumber, o.Customer, output.FormatAmount(o.Amount), string(o.Status), o.OrderDate}
	}
	return m.renderList(ScreenOrders, cols, rows)
}

// renderList draws the filter bar, the rows with the cursor row
// highlighted and the page position
func (m Model) renderList(s Screen, cols []column, rows [][]string) string {
	l := m.Lists[s]
	var b strings.Builder

	var bar []string
	if l.Search != "" {
		bar = append(bar, "search: "+l.Search)
	}
	for i, spec := range l.Filters {
		bar = append(bar, fmt.Sprintf("%s: %s", spec.Field, spec.Values[l.FilterIdx[i]]))
	}
	b.WriteString(subtleStyle.Render(strings.Join(bar, "  ")))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(formatRow(cols, headerCells(cols))))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(subtleStyle.Render("No matching records"))
		b.WriteString("\n")
	}
	for i, r := range rows {
		line := formatRow(cols, r)
		if i == l.Cursor {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if l.Total > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Page %d of %d (%d total)", l.Page, l.TotalPages, l.Total)))
	}
	return b.String()
}

func headerCells(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.title
	}
	return out
}

// formatRow pads or truncates each cell to its column width
func formatRow(cols []column, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = ansi.Truncate(cell, c.width, "…")
		if w := ansi.StringWidth(cell); w < c.width {
			cell += strings.Repeat(" ", c.width-w)
		}
		parts[i] = cell
	}
	return strings.Join(parts, " ")
}
