// Package panel is the interactive terminal UI for the admin panel: a login
// form, the dashboard, and browsable users and orders with search, filters,
// paging and huh-driven create and edit forms.
package panel

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/activity"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/auth"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/overlay"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/validate"
)

// Screen is a top-level view
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenUsers
	ScreenOrders
)

// tabs lists the screens reachable with tab, in order
var tabs = []Screen{ScreenDashboard, ScreenUsers, ScreenOrders}

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenDashboard:
		return "Dashboard"
	case ScreenUsers:
		return "Users"
	case ScreenOrders:
		return "Orders"
	}
	return "?"
}

// Mode is what keyboard input currently drives
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeForm
	ModeConfirm
	ModeDetail
)

// Backend is everything the UI reads and writes through
type Backend struct {
	Users     *overlay.Users
	Orders    *overlay.Orders
	Dashboard *overlay.Dashboard
	Auth      *auth.Service
	Activity  *activity.Log
	Validator *validate.Validator
	PageSize  int
}

// filterSpec is one cyclable field filter. Values[0] is always "all".
type filterSpec struct {
	Field  string
	Values []string
}

// ListState is the query and cursor of one list screen
type ListState struct {
	Search     string
	Filters    []filterSpec
	FilterIdx  []int
	Page       int
	TotalPages int
	Total      int
	Cursor     int
}

// Filter returns the overlay query for the list
func (l *ListState) Filter(pageSize int) models.Filter {
	f := models.Filter{Search: l.Search, Page: l.Page, PageSize: pageSize, Fields: map[string]string{}}
	for i, spec := range l.Filters {
		if v := spec.Values[l.FilterIdx[i]]; v != models.FilterAll {
			f.Fields[spec.Field] = v
		}
	}
	return f
}

// cycleFilter advances filter n and resets paging; false if there is no
// such filter
func (l *ListState) cycleFilter(n int) bool {
	if n >= len(l.Filters) {
		return false
	}
	l.FilterIdx[n] = (l.FilterIdx[n] + 1) % len(l.Filters[n].Values)
	l.Page, l.Cursor = 1, 0
	return true
}

func newListState(specs ...filterSpec) *ListState {
	return &ListState{Filters: specs, FilterIdx: make([]int, len(specs)), Page: 1}
}

func allOf[T ~string](values []T) []string {
	out := []string{models.FilterAll}
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// confirmState is a pending delete
type confirmState struct {
	Kind  models.Kind
	ID    int
	Label string
}

// Model is the main Bubble Tea model for the panel TUI
type Model struct {
	ctx     context.Context
	backend Backend
	now     func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model
	detail  viewport.Model

	// Window dimensions
	Width  int
	Height int

	Screen  Screen
	Mode    Mode
	Loading bool
	Err     error
	Status  string
	Session *models.Session

	Users  []models.User
	Orders []models.Order
	Stats  *overlay.Stats
	Lists  map[Screen]*ListState

	Form        *FormState
	Confirm     *confirmState
	DetailTitle string
}

// NewModel returns a model that starts by checking the stored session
func NewModel(ctx context.Context, b Backend) Model {
	if b.PageSize <= 0 {
		b.PageSize = models.DefaultPageSize
	}
	search := textinput.New()
	search.Placeholder = "search..."
	search.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		backend: b,
		now:     time.Now,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		search:  search,
		detail:  viewport.New(80, 20),
		Screen:  ScreenLogin,
		Lists: map[Screen]*ListState{
			ScreenUsers: newListState(
				filterSpec{Field: "role", Values: allOf(models.Roles)},
				filterSpec{Field: "status", Values: allOf(models.UserStatuses)},
			),
			ScreenOrders: newListState(
				filterSpec{Field: "status", Values: allOf(models.OrderStatuses)},
			),
		},
	}
}

// SetClock replaces the time source used for form date defaults
func (m *Model) SetClock(now func() time.Time) { m.now = now }

// Init starts the spinner and the session check
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkSession())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.Width = max(msg.Width-4, 20)
		m.detail.Height = max(msg.Height-6, 5)
		if m.Mode == ModeForm && m.Form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionMsg:
		return m.handleSession(msg)

	case usersMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Users = msg.page.Items
		if m.applyPage(ScreenUsers, msg.page.Page, msg.page.TotalPages, msg.page.Total, len(msg.page.Items)) {
			cmd := m.reload()
			return m, cmd
		}
		return m, nil

	case ordersMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Orders = msg.page.Items
		if m.applyPage(ScreenOrders, msg.page.Page, msg.page.TotalPages, msg.page.Total, len(msg.page.Items)) {
			cmd := m.reload()
			return m, cmd
		}
		return m, nil

	case statsMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		st := msg.stats
		m.Stats = &st
		return m, nil

	case savedMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			if m.Form != nil {
				m.Form.buildForm()
				m.Mode = ModeForm
				return m, m.Form.Form.Init()
			}
			m.Mode = ModeBrowse
			return m, nil
		}
		m.Err = nil
		m.Status = msg.status
		m.Form, m.Confirm = nil, nil
		m.Mode = ModeBrowse
		cmd := m.reload()
		return m, cmd

	case detailMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.DetailTitle = msg.title
		m.detail.SetContent(msg.content)
		m.detail.GotoTop()
		m.Mode = ModeDetail
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.Mode == ModeForm && m.Form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// applyPage stores paging info and clamps the cursor. It reports true when
// the page ran past the end, for example after deleting the last row of the
// last page, and has been moved back to the last page.
func (m *Model) applyPage(s Screen, page, totalPages, total, rows int) bool {
	l := m.Lists[s]
	l.Page, l.TotalPages, l.Total = page, totalPages, total
	if totalPages > 0 && page > totalPages {
		l.Page, l.Cursor = totalPages, 0
		return true
	}
	if l.Cursor >= rows {
		l.Cursor = rows - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	return false
}

func (m Model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	if msg.err != nil {
		m.Err = msg.err
	} else {
		m.Err = nil
	}
	m.Session = msg.session
	if m.Session == nil {
		m.Screen = ScreenLogin
		m.Mode = ModeForm
		if m.Form != nil && m.Form.Kind == FormLogin {
			m.Form.buildForm()
		} else {
			m.Form = NewLoginForm()
		}
		return m, m.Form.Form.Init()
	}
	m.Form = nil
	m.Mode = ModeBrowse
	if m.Screen == ScreenLogin {
		m.Screen = ScreenDashboard
	}
	cmd := m.reload()
	return m, cmd
}

// today is the default date for new records
func (m Model) today() string {
	return m.now().Format(dateparse.Layout)
}
