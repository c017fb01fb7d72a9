package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Show user and order totals, revenue and recent activity",
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		plain, _ := cmd.Flags().GetBool("plain")
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			return runDashboard(cmd.Context(), a, mode, plain)
		}))
	},
}

func runDashboard(ctx context.Context, a *app, mode output.OutputMode, plain bool) error {
	st, err := a.dashboard.Stats(ctx)
	if err != nil {
		return err
	}
	return emit(mode, st, func() {
		md := output.StatsMarkdown(st)
		if !plain {
			if rendered, err := output.RenderMarkdown(md); err == nil {
				md = rendered
			}
		}
		fmt.Println(md)
	})
}

func init() {
	dashboardCmd.Flags().Bool("plain", false, "print markdown without terminal styling")
	addFormatFlags(dashboardCmd)
	rootCmd.AddCommand(dashboardCmd)
}
