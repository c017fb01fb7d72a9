package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as the panel administrator",
	Long: `Sign in and store a session token in the local store. Prompts for any
credential not given as a flag.`,
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			if err := promptCredentials(&email, &password); err != nil {
				return fail(jsonOut, err)
			}
		}

		return fail(jsonOut, withApp(cmd.Context(), false, func(a *app) error {
			sess, err := runLogin(cmd.Context(), a, email, password)
			if err != nil {
				return err
			}
			if jsonOut {
				return output.JSON(sess)
			}
			output.Success("Signed in as %s (%s)", sess.User.Name, sess.User.Email)
			return nil
		}))
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Sign out and clear the stored session",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fail(false, withApp(cmd.Context(), false, func(a *app) error {
			if err := runLogout(cmd.Context(), a); err != nil {
				return err
			}
			output.Success("Signed out")
			return nil
		}))
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		return fail(jsonOut, withApp(cmd.Context(), true, func(a *app) error {
			if jsonOut {
				return output.JSON(a.session.User)
			}
			u := a.session.User
			fmt.Printf("%s <%s> [%s]\n", u.Name, u.Email, output.FormatRole(u.Role))
			return nil
		}))
	},
}

// runLogin signs in and records the login in the activity feed
func runLogin(ctx context.Context, a *app, email, password string) (*models.Session, error) {
	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.session = sess
	if err := a.activity.Record(ctx, models.Activity{
		Action: models.ActionLogin,
		Label:  sess.User.Email,
		Actor:  sess.User.Name,
	}); err != nil {
		return nil, err
	}
	return sess, nil
}

// runLogout clears the session, recording the logout when one existed
func runLogout(ctx context.Context, a *app) error {
	prev := a.session
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	if prev == nil {
		return nil
	}
	return a.activity.Record(ctx, models.Activity{
		Action: models.ActionLogout,
		Label:  prev.User.Email,
		Actor:  prev.User.Name,
	})
}

func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.Flags().Bool("json", false, "output as JSON")
	whoamiCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
