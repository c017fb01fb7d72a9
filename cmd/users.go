package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var userView = view[models.User]{
	table: output.UsersTable,
	card:  output.UserMarkdown,
	line: func(u models.User) string {
		return fmt.Sprintf("user #%d %s <%s>", u.ID, u.Name, u.Email)
	},
}

// userFieldFlags maps update flags to JSON field names
var userFieldFlags = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"status":    "status",
	"join-date": "joinDate",
}

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user", "u"},
	Short:   "List and edit users",
	GroupID: "data",
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users, newest first",
	Long: `List users from the remote API merged with local changes, sorted by id
descending. Filters combine with AND.

Examples:
  panel users list --search leanne
  panel users list --role admin --status active --page 2
  panel users list --from 2024-03-01 --to 2024-06-30 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		jsonOut := mode == output.ModeJSON
		return fail(jsonOut, withApp(cmd.Context(), true, func(a *app) error {
			f := listFilter(cmd, a.settings.PageSize, map[string]string{"role": "role", "status": "status"})
			return runList(cmd.Context(), a.users, f, mode, userView)
		}))
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		card, _ := cmd.Flags().GetBool("card")
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			return runShow(cmd.Context(), a.users, id, card, mode, userView)
		}))
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a user",
	Long: `Add a user to the local store. The id is assigned after the highest id
seen so far. Role defaults to User, status to Active and the join date to
today.

Example:
  panel users create --name "Ada Lovelace" --email ada@example.com --role editor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			u, err := userFromFlags(cmd, time.Now())
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), a.users, u, a.validator.User, mode, userView)
		}))
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a user",
	Args:  cobra.ExactArgs(1),
	Long: `Change fields of a user. Only the flags given are changed. Remote users
keep the change as a local override.

Examples:
  panel users update 3 --status inactive
  panel users update 11 --name "Ada King" --join-date yesterday`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			patch, err := patchFromFlags(cmd, userFieldFlags, time.Now())
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), a.users, id, patch, a.validator.UserPatch, mode, userView)
		}))
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := outputMode(cmd)
		id, err := idArg(args)
		if err != nil {
			return fail(mode == output.ModeJSON, err)
		}
		return fail(mode == output.ModeJSON, withApp(cmd.Context(), true, func(a *app) error {
			return runDelete(cmd.Context(), a.users, id, mode)
		}))
	},
}

// userFromFlags builds a new user from create flags, defaulting the join
// date to today
func userFromFlags(cmd *cobra.Command, now time.Time) (models.User, error) {
	u := models.User{}
	u.Name, _ = cmd.Flags().GetString("name")
	u.Email, _ = cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")
	status, _ := cmd.Flags().GetString("status")
	u.Role = models.Role(role)
	u.Status = models.UserStatus(status)

	joined, err := dateFlag(cmd, "join-date", now)
	if err != nil {
		return u, err
	}
	if joined == "" {
		joined = now.Format(dateparse.Layout)
	}
	u.JoinDate = joined
	return u, nil
}

func addUserFieldFlags(cmd *cobra.Command, defRole, defStatus string) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().Var(newEnum(defRole, roleNames()...), "role", "role: Admin, Editor, User")
	cmd.Flags().Var(newEnum(defStatus, userStatusNames()...), "status", "status: Active, Inactive")
	cmd.Flags().String("join-date", "", "join date (YYYY-MM-DD or today, -3d...)")
}

func init() {
	addListFlags(usersListCmd)
	usersListCmd.Flags().Var(newEnum(models.FilterAll, withAll(roleNames()...)...), "role", "filter by role")
	usersListCmd.Flags().Var(newEnum(models.FilterAll, withAll(userStatusNames()...)...), "status", "filter by status")

	usersShowCmd.Flags().Bool("card", false, "render as a formatted card")
	addFormatFlags(usersShowCmd)

	addUserFieldFlags(usersCreateCmd, string(models.RoleUser), string(models.UserActive))
	addFormatFlags(usersCreateCmd)

	addUserFieldFlags(usersUpdateCmd, "", "")
	addFormatFlags(usersUpdateCmd)

	addFormatFlags(usersDeleteCmd)

	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
