package panel

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/overlay"
)

type sessionMsg struct {
	session *models.Session
	err     error
}

type usersMsg struct {
	page models.Page[models.User]
	err  error
}

type ordersMsg struct {
	page models.Page[models.Order]
	err  error
}

type statsMsg struct {
	stats overlay.Stats
	err   error
}

// savedMsg reports a finished mutation
type savedMsg struct {
	status string
	err    error
}

type detailMsg struct {
	title   string
	content string
	err     error
}

// checkSession validates the stored token and loads the session
func (m Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.backend.Auth.Validate(m.ctx)
		if err != nil || !ok {
			return sessionMsg{err: err}
		}
		sess, err := m.backend.Auth.Current(m.ctx)
		return sessionMsg{session: sess, err: err}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := m.backend.Auth.Login(m.ctx, email, password)
		if err != nil {
			return sessionMsg{err: err}
		}
		if err := m.backend.Activity.Record(m.ctx, models.Activity{
			Action: models.ActionLogin,
			Label:  sess.User.Email,
			Actor:  sess.User.Name,
		}); err != nil {
			return sessionMsg{session: sess, err: err}
		}
		return sessionMsg{session: sess}
	}
}

func (m Model) logout() tea.Cmd {
	prev := m.Session
	return func() tea.Msg {
		if err := m.backend.Auth.Logout(m.ctx); err != nil {
			return sessionMsg{session: prev, err: err}
		}
		if prev != nil {
			_ = m.backend.Activity.Record(m.ctx, models.Activity{
				Action: models.ActionLogout,
				Label:  prev.User.Email,
				Actor:  prev.User.Name,
			})
		}
		return sessionMsg{}
	}
}

func (m Model) loadUsers() tea.Cmd {
	f := m.Lists[ScreenUsers].Filter(m.backend.PageSize)
	return func() tea.Msg {
		page, err := m.backend.Users.Query(m.ctx, f)
		return usersMsg{page: page, err: err}
	}
}

func (m Model) loadOrders() tea.Cmd {
	f := m.Lists[ScreenOrders].Filter(m.backend.PageSize)
	return func() tea.Msg {
		page, err := m.backend.Orders.Query(m.ctx, f)
		return ordersMsg{page: page, err: err}
	}
}

func (m Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		st, err := m.backend.Dashboard.Stats(m.ctx)
		return statsMsg{stats: st, err: err}
	}
}

// reload refreshes whatever the current screen shows
func (m *Model) reload() tea.Cmd {
	m.Loading = true
	switch m.Screen {
	case ScreenUsers:
		return m.loadUsers()
	case ScreenOrders:
		return m.loadOrders()
	case ScreenDashboard:
		return m.loadStats()
	}
	m.Loading = false
	return nil
}

// loadDetail fetches one record and renders its markdown card
func (m Model) loadDetail(kind models.Kind, id int) tea.Cmd {
	width := m.detail.Width
	return func() tea.Msg {
		var title, md string
		switch kind {
		case models.KindUsers:
			u, err := m.backend.Users.Get(m.ctx, id)
			if err != nil {
				return detailMsg{err: err}
			}
			title, md = fmt.Sprintf("User #%d", u.ID), output.UserMarkdown(u)
		case models.KindOrders:
			o, err := m.backend.Orders.Get(m.ctx, id)
			if err != nil {
				return detailMsg{err: err}
			}
			title, md = o.OrderNumber, output.OrderMarkdown(o)
		}
		rendered, err := output.RenderMarkdownWithWidth(md, width)
		if err != nil {
			rendered = md
		}
		return detailMsg{title: title, content: rendered}
	}
}

// submitForm validates the form values and saves them
func (m Model) submitForm() tea.Cmd {
	fs := m.Form
	now := m.now()
	switch fs.Kind {
	case FormLogin:
		return m.login(fs.Email, fs.Password)
	case FormUser:
		return func() tea.Msg {
			u, err := fs.ToUser(now)
			if err != nil {
				return savedMsg{err: err}
			}
			if err := m.backend.Validator.User(u); err != nil {
				return savedMsg{err: err}
			}
			if fs.EditID == 0 {
				created, err := m.backend.Users.Create(m.ctx, u)
				if err != nil {
					return savedMsg{err: err}
				}
				return savedMsg{status: fmt.Sprintf("Created user #%d %s", created.ID, created.Name)}
			}
			patch, err := Patch(u)
			if err != nil {
				return savedMsg{err: err}
			}
			if _, err := m.backend.Users.Update(m.ctx, fs.EditID, patch); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: fmt.Sprintf("Updated user #%d", fs.EditID)}
		}
	case FormOrder:
		return func() tea.Msg {
			o, err := fs.ToOrder(now)
			if err != nil {
				return savedMsg{err: err}
			}
			if err := m.backend.Validator.Order(o); err != nil {
				return savedMsg{err: err}
			}
			if fs.EditID == 0 {
				created, err := m.backend.Orders.Create(m.ctx, o)
				if err != nil {
					return savedMsg{err: err}
				}
				return savedMsg{status: fmt.Sprintf("Created order %s", created.OrderNumber)}
			}
			patch, err := Patch(o)
			if err != nil {
				return savedMsg{err: err}
			}
			if _, err := m.backend.Orders.Update(m.ctx, fs.EditID, patch); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: fmt.Sprintf("Updated order #%d", fs.EditID)}
		}
	}
	return nil
}

// deleteConfirmed deletes the record named by the confirmation
func (m Model) deleteConfirmed() tea.Cmd {
	c := m.Confirm
	return func() tea.Msg {
		var err error
		switch c.Kind {
		case models.KindUsers:
			err = m.backend.Users.Delete(m.ctx, c.ID)
		case models.KindOrders:
			err = m.backend.Orders.Delete(m.ctx, c.ID)
		}
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{status: fmt.Sprintf("Deleted %s", c.Label)}
	}
}
