package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
	"github.com/Vijaykumar22032001/Admin-Dashboard/pkg/panel"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Interactive dashboard for browsing and editing users and orders",
	Long: `Launch the interactive admin panel. It opens on a login form unless a
session is already stored, then shows:
- Dashboard: totals, revenue, orders by status and recent activity
- Users: searchable, filterable list with create, edit and delete
- Orders: searchable, filterable list with create, edit and delete

Key bindings:
  Tab/Shift+Tab  Switch screens
  1/2/3          Jump to screen
  ↑/↓ or j/k     Move selection
  ←/→ or h/l     Previous/next page
  /              Search
  f / F          Cycle first/second filter
  Enter          Open record details
  n / e / d      New, edit, delete
  r              Refresh
  L              Log out
  ?              Toggle help
  q              Quit`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			srv := metricsServer(addr, a)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("metrics server", "addr", addr, "err", err)
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		model := panel.NewModel(ctx, panel.Backend{
			Users:     a.users,
			Orders:    a.orders,
			Dashboard: a.dashboard,
			Auth:      a.auth,
			Activity:  a.activity,
			Validator: a.validator,
			PageSize:  a.settings.PageSize,
		})

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running panel: %w", err)
		}
		return nil
	},
}

// metricsServer exposes the app's Prometheus registry and a health check
func metricsServer(addr string, a *app) *http.Server {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	return &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
}

func init() {
	tuiCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while the panel runs (e.g. :9090)")
	rootCmd.AddCommand(tuiCmd)
}
