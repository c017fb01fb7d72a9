package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var orderView = view[models.Order]{
	table: output.OrdersTable,
	card:  output.OrderMarkdown,
	line: func(o models.Order) string {
		return fmt.Sprintf("order #%d %s (%s, %s)", o.ID, o.OrderNumber, o.Customer, output.FormatAmount(o.Amount))
	},
}

// orderFieldFlags maps update flags to JSON field names
var orderFieldFlags = map[string]string{
	"number":   "orderNumber",
	"customer": "customer",
	"email":    "customerEmail",
	"amount":   "amount",
	"status":   "status",
	"date":     "orderDate",
	"items":    "items",
}

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"order", "o"},
	Short:   "List and edit orders",
	GroupID: "data",
}

var ordersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List orders, newest first",
	Long: `List orders derived from the remote posts merged with local changes,
sorted by id descending. Search matches the order number, customer name and
customer email.

Examples:
  panel orders list --status pending
  panel orders list --customer "Leanne Graham" --from month-start
  panel orders list --search ORD-0004 --yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			f := listFilter(cmd, a.settings.PageSize, map[string]string{"status": "status", "customer": "customer"})
			return runList(cmd.Context(), a.orders, f, mode, orderView)
		}))
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		card, _ := cmd.Flags().GetBool("card")
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			return runShow(cmd.Context(), a.orders, id, card, mode, orderView)
		}))
	},
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an order",
	Long: `Add an order to the local store. The order number defaults to
ORD-<id>, the status to Pending and the date to today.

Example:
  panel orders create --customer "Ada Lovelace" --email ada@example.com \
    --amount 129.99 --items "analytical engine"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			o, err := orderFromFlags(cmd, time.Now())
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), a.orders, o, a.validator.Order, mode, orderView)
		}))
	},
}

var ordersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an order",
	Args:  cobra.ExactArgs(1),
	Long: `Change fields of an order. Only the flags given are changed.

Examples:
  panel orders update 42 --status completed
  panel orders update 101 --amount 99.5 --date today`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			patch, err := patchFromFlags(cmd, orderFieldFlags, time.Now())
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), a.orders, id, patch, a.validator.OrderPatch, mode, orderView)
		}))
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an order",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			return runDelete(cmd.Context(), a.orders, id, mode)
		}))
	},
}

// orderFromFlags builds a new order from create flags, defaulting the
// order date to today
func orderFromFlags(cmd *cobra.Command, now time.Time) (models.Order, error) {
	o := models.Order{}
	o.OrderNumber, _ = cmd.Flags().GetString("number")
	o.Customer, _ = cmd.Flags().GetString("customer")
	o.CustomerEmail, _ = cmd.Flags().GetString("email")
	o.Amount, _ = cmd.Flags().GetFloat64("amount")
	o.Items, _ = cmd.Flags().GetString("items")
	status, _ := cmd.Flags().GetString("status")
	o.Status = models.OrderStatus(status)

	date, err := dateFlag(cmd, "date", now)
	if err != nil {
		return o, err
	}
	if date == "" {
		date = now.Format(dateparse.Layout)
	}
	o.OrderDate = date
	return o, nil
}

func addOrderFieldFlags(cmd *cobra.Command, defStatus string) {
	cmd.Flags().String("number", "", "order number (default ORD-<id>)")
	cmd.Flags().String("customer", "", "customer name")
	cmd.Flags().String("email", "", "customer email")
	cmd.Flags().Float64("amount", 0, "order total")
	cmd.Flags().Var(newEnum(defStatus, orderStatusNames()...), "status", "status: Pending, Processing, Completed, Cancelled")
	cmd.Flags().String("date", "", "order date (YYYY-MM-DD or today, -3d...)")
	cmd.Flags().String("items", "", "item description")
}

func init() {
	addListFlags(ordersListCmd)
	ordersListCmd.Flags().Var(newEnum(models.FilterAll, withAll(orderStatusNames()...)...), "status", "filter by status")
	ordersListCmd.Flags().String("customer", "", "filter by exact customer name")

	ordersShowCmd.Flags().Bool("card", false, "render as a formatted card")
	addFormatFlags(ordersShowCmd)

	addOrderFieldFlags(ordersCreateCmd, string(models.OrderPending))
	addFormatFlags(ordersCreateCmd)

	addOrderFieldFlags(ordersUpdateCmd, "")
	addFormatFlags(ordersUpdateCmd)

	addFormatFlags(ordersDeleteCmd)

	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersCreateCmd, ordersUpdateCmd, ordersDeleteCmd)
	rootCmd.AddCommand(ordersCmd)
}
