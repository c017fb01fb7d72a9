// Package output provides styled terminal output helpers (success, error,
// warning, record tables and detail cards) using lipgloss.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	roleStyles = map[models.Role]lipgloss.Style{
		models.RoleAdmin:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		models.RoleEditor: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.RoleUser:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
	userStatusStyles = map[models.UserStatus]lipgloss.Style{
		models.UserActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.UserInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
	orderStatusStyles = map[models.OrderStatus]lipgloss.Style{
		models.OrderPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.OrderProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.OrderCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.OrderCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	money = message.NewPrinter(language.English)
)

// OutputMode determines output format
type OutputMode int

const (
	ModeTable OutputMode = iota
	ModeJSON
	ModeYAML
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// YAML outputs data as YAML using the same field names as JSON
func YAML(v interface{}) error {
	data, err := MarshalYAML(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// MarshalYAML encodes v as YAML. Values go through their JSON encoding
// first so keys match the json tags.
func MarshalYAML(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeRemoteError   = "remote_error"
	ErrCodeInternal      = "internal_error"
	ErrCodeInjectedError = "injected_failure"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	result := map[string]interface{}{
		"error": errObj,
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// FormatRole formats a role with color
func FormatRole(r models.Role) string {
	style, ok := roleStyles[r]
	if !ok {
		return string(r)
	}
	return style.Render(string(r))
}

// FormatUserStatus formats a user status with color
func FormatUserStatus(s models.UserStatus) string {
	style, ok := userStatusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}

// FormatOrderStatus formats an order status with color
func FormatOrderStatus(s models.OrderStatus) string {
	style, ok := orderStatusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}

// FormatAmount formats a currency amount with thousands separators
func FormatAmount(amount float64) string {
	return money.Sprintf("$%.2f", amount)
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	return FormatTimeAgoAt(t, time.Now())
}

// FormatTimeAgoAt is FormatTimeAgo relative to now
func FormatTimeAgoAt(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("2006-01-02")
	}
}

// Truncate shortens s to max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// UsersTable renders users as a bordered table
func UsersTable(users []models.User) string {
	t := newTable("ID", "Name", "Email", "Role", "Status", "Joined")
	for _, u := range users {
		t.Row(
			strconv.Itoa(u.ID),
			Truncate(u.Name, 28),
			Truncate(u.Email, 32),
			FormatRole(u.Role),
			FormatUserStatus(u.Status),
			u.JoinDate,
		)
	}
	return t.Render()
}

// OrdersTable renders orders as a bordered table
func OrdersTable(orders []models.Order) string {
	t := newTable("ID", "Order", "Customer", "Amount", "Status", "Date")
	for _, o := range orders {
		t.Row(
			strconv.Itoa(o.ID),
			o.OrderNumber,
			Truncate(o.Customer, 28),
			FormatAmount(o.Amount),
			FormatOrderStatus(o.Status),
			o.OrderDate,
		)
	}
	return t.Render()
}

// PageFooter summarizes the page position of a listing
func PageFooter(page, totalPages, total int) string {
	if total == 0 {
		return subtleStyle.Render("No matching records")
	}
	noun := "records"
	if total == 1 {
		noun = "record"
	}
	return subtleStyle.Render(fmt.Sprintf("Page %d of %d (%d %s)", page, totalPages, total, noun))
}

// ActivityLine formats one feed entry relative to now
func ActivityLine(a models.Activity, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(subtleStyle.Render(fmt.Sprintf("%-8s", FormatTimeAgoAt(a.Timestamp, now))))
	sb.WriteString(" ")
	sb.WriteString(titleStyle.Render(activityVerb(a)))
	sb.WriteString(" ")
	sb.WriteString(a.Label)
	if a.Actor != "" {
		sb.WriteString(subtleStyle.Render(" by " + a.Actor))
	}
	return sb.String()
}

func activityVerb(a models.Activity) string {
	noun := strings.TrimSuffix(string(a.Kind), "s")
	switch a.Action {
	case models.ActionCreate:
		return "Created " + noun
	case models.ActionUpdate:
		return "Updated " + noun
	case models.ActionDelete:
		return "Deleted " + noun
	case models.ActionLogin:
		return "Signed in"
	case models.ActionLogout:
		return "Signed out"
	default:
		return string(a.Action)
	}
}

// SectionHeader returns a styled section header
func SectionHeader(title string) string {
	return titleStyle.Render(title)
}
