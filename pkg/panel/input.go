package panel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

// handleKey routes a key press by mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.Mode {
	case ModeForm:
		return m.updateForm(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// updateForm forwards to the huh form and submits it once complete
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.Form.Kind != FormLogin {
		m.Form = nil
		m.Mode = ModeBrowse
		m.Status = "Cancelled"
		return m, nil
	}

	form, cmd := m.Form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form.Form = f
	}

	switch m.Form.Form.State {
	case huh.StateCompleted:
		m.Loading = true
		return m, m.submitForm()
	case huh.StateAborted:
		if m.Form.Kind == FormLogin {
			return m, tea.Quit
		}
		m.Form = nil
		m.Mode = ModeBrowse
		return m, nil
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.Lists[m.Screen]
	switch msg.Type {
	case tea.KeyEnter:
		l.Search = m.search.Value()
		l.Page, l.Cursor = 1, 0
		m.search.Blur()
		m.Mode = ModeBrowse
		cmd := m.reload()
		return m, cmd
	case tea.KeyEsc:
		l.Search = ""
		l.Page, l.Cursor = 1, 0
		m.search.SetValue("")
		m.search.Blur()
		m.Mode = ModeBrowse
		cmd := m.reload()
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.Loading = true
		return m, m.deleteConfirmed()
	case key.Matches(msg, m.keys.Cancel):
		m.Confirm = nil
		m.Mode = ModeBrowse
		m.Status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.Mode = ModeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, k.NextTab):
		return m.switchScreen(m.tabOffset(1))
	case key.Matches(msg, k.PrevTab):
		return m.switchScreen(m.tabOffset(-1))
	case key.Matches(msg, k.Dashboard):
		return m.switchScreen(ScreenDashboard)
	case key.Matches(msg, k.Users):
		return m.switchScreen(ScreenUsers)
	case key.Matches(msg, k.Orders):
		return m.switchScreen(ScreenOrders)
	case key.Matches(msg, k.Refresh):
		cmd := m.reload()
		return m, cmd
	case key.Matches(msg, k.Logout):
		return m, m.logout()
	}

	l, isList := m.Lists[m.Screen]
	if !isList {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.NextPage):
		if l.Page < l.TotalPages {
			l.Page++
			l.Cursor = 0
			cmd := m.reload()
			return m, cmd
		}
	case key.Matches(msg, k.PrevPage):
		if l.Page > 1 {
			l.Page--
			l.Cursor = 0
			cmd := m.reload()
			return m, cmd
		}
	case key.Matches(msg, k.Search):
		m.Mode = ModeSearch
		m.search.SetValue(l.Search)
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, k.Filter):
		if l.cycleFilter(0) {
			cmd := m.reload()
			return m, cmd
		}
	case key.Matches(msg, k.Filter2):
		if l.cycleFilter(1) {
			cmd := m.reload()
			return m, cmd
		}
	case key.Matches(msg, k.New):
		return m.openForm(false)
	case key.Matches(msg, k.Edit):
		if _, ok := m.selectedID(); ok {
			return m.openForm(true)
		}
	case key.Matches(msg, k.Delete):
		if id, ok := m.selectedID(); ok {
			m.Confirm = &confirmState{Kind: m.kind(), ID: id, Label: m.selectedLabel()}
			m.Mode = ModeConfirm
		}
	case key.Matches(msg, k.View):
		if id, ok := m.selectedID(); ok {
			m.Loading = true
			return m, m.loadDetail(m.kind(), id)
		}
	}
	return m, nil
}

// tabOffset returns the screen delta tabs away from the current one
func (m Model) tabOffset(delta int) Screen {
	cur := 0
	for i, s := range tabs {
		if s == m.Screen {
			cur = i
		}
	}
	n := len(tabs)
	return tabs[((cur+delta)%n+n)%n]
}

func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.Screen = s
	m.Err = nil
	cmd := m.reload()
	return m, cmd
}

func (m Model) kind() models.Kind {
	if m.Screen == ScreenOrders {
		return models.KindOrders
	}
	return models.KindUsers
}

func (m Model) rowCount() int {
	switch m.Screen {
	case ScreenUsers:
		return len(m.Users)
	case ScreenOrders:
		return len(m.Orders)
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	l := m.Lists[m.Screen]
	l.Cursor += delta
	if n := m.rowCount(); l.Cursor >= n {
		l.Cursor = n - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// selectedID returns the id under the cursor
func (m Model) selectedID() (int, bool) {
	l := m.Lists[m.Screen]
	if l == nil || l.Cursor >= m.rowCount() {
		return 0, false
	}
	switch m.Screen {
	case ScreenUsers:
		return m.Users[l.Cursor].ID, true
	case ScreenOrders:
		return m.Orders[l.Cursor].ID, true
	}
	return 0, false
}

func (m Model) selectedLabel() string {
	l := m.Lists[m.Screen]
	switch m.Screen {
	case ScreenUsers:
		u := m.Users[l.Cursor]
		return fmt.Sprintf("user #%d %s", u.ID, u.Name)
	case ScreenOrders:
		return fmt.Sprintf("order %s", m.Orders[l.Cursor].OrderNumber)
	}
	return ""
}

// openForm opens a create form, or an edit form for the selected row
func (m Model) openForm(edit bool) (tea.Model, tea.Cmd) {
	l := m.Lists[m.Screen]
	switch m.Screen {
	case ScreenUsers:
		var u *models.User
		if edit {
			u = &m.Users[l.Cursor]
		}
		m.Form = NewUserForm(u, m.today())
	case ScreenOrders:
		var o *models.Order
		if edit {
			o = &m.Orders[l.Cursor]
		}
		m.Form = NewOrderForm(o, m.today())
	default:
		return m, nil
	}
	m.Mode = ModeForm
	return m, m.Form.Form.Init()
}
