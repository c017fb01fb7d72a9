package panel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(primaryColor).
			Padding(0, 1)

	titleStyle       = lipgloss.NewStyle().Bold(true)
	subtleStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusOKStyle    = lipgloss.NewStyle().Foreground(successColor)
	errorStyle       = lipgloss.NewStyle().Foreground(errorColor)
	confirmStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(warningColor).Padding(1, 2)
	statValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	orderStatusStyles = map[models.OrderStatus]lipgloss.Style{
		models.OrderPending:    lipgloss.NewStyle().Foreground(warningColor),
		models.OrderProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.OrderCompleted:  lipgloss.NewStyle().Foreground(successColor),
		models.OrderCancelled:  lipgloss.NewStyle().Foreground(errorColor),
	}
)
