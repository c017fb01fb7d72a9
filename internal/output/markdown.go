package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/overlay"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// TerminalWidth returns the current terminal width or a fallback when unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultMarkdownWidth
	}

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}

	return fallback
}

// RenderMarkdown renders markdown using Glamour with terminal-aware wrapping.
func RenderMarkdown(text string) (string, error) {
	return RenderMarkdownWithWidth(text, TerminalWidth(defaultMarkdownWidth))
}

// RenderMarkdownWithWidth renders markdown using Glamour with explicit wrapping.
func RenderMarkdownWithWidth(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(rendered, "\n"), nil
}

// UserMarkdown describes a user as a markdown detail card
func UserMarkdown(u models.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## User #%d: %s\n\n", u.ID, u.Name)
	fmt.Fprintf(&sb, "- **Email:** %s\n", u.Email)
	fmt.Fprintf(&sb, "- **Role:** %s\n", u.Role)
	fmt.Fprintf(&sb, "- **Status:** %s\n", u.Status)
	fmt.Fprintf(&sb, "- **Joined:** %s\n", u.JoinDate)
	return sb.String()
}

// OrderMarkdown describes an order as a markdown detail card
func OrderMarkdown(o models.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Order %s\n\n", o.OrderNumber)
	fmt.Fprintf(&sb, "- **ID:** %d\n", o.ID)
	fmt.Fprintf(&sb, "- **Customer:** %s <%s>\n", o.Customer, o.CustomerEmail)
	fmt.Fprintf(&sb, "- **Amount:** %s\n", FormatAmount(o.Amount))
	fmt.Fprintf(&sb, "- **Status:** %s\n", o.Status)
	fmt.Fprintf(&sb, "- **Date:** %s\n", o.OrderDate)
	if o.Items != "" {
		fmt.Fprintf(&sb, "\n### Items\n\n%s\n", o.Items)
	}
	return sb.String()
}

// StatsMarkdown describes the dashboard widgets as markdown
func StatsMarkdown(st overlay.Stats) string {
	var sb strings.Builder
	sb.WriteString("## Dashboard\n\n")
	fmt.Fprintf(&sb, "- **Total users:** %d\n", st.TotalUsers)
	fmt.Fprintf(&sb, "- **Active users:** %d\n", st.ActiveUsers)
	fmt.Fprintf(&sb, "- **Total orders:** %d\n", st.TotalOrders)
	fmt.Fprintf(&sb, "- **Revenue:** %s\n", FormatAmount(st.Revenue))

	sb.WriteString("\n### Orders by status\n\n")
	sb.WriteString("| Status | Count |\n|---|---|\n")
	for _, s := range models.OrderStatuses {
		fmt.Fprintf(&sb, "| %s | %d |\n", s, st.OrdersByStatus[s])
	}

	sb.WriteString("\n### Recent activity\n\n")
	if len(st.RecentActivity) == 0 {
		sb.WriteString("_No recent activity_\n")
		return sb.String()
	}
	for _, a := range st.RecentActivity {
		fmt.Fprintf(&sb, "- %s %s: %s", a.Timestamp.UTC().Format("2006-01-02 15:04"), activityVerb(a), a.Label)
		if a.Actor != "" {
			fmt.Fprintf(&sb, " (%s)", a.Actor)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
