package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/spf13/cobra"
)

var (
	authRole     string
	authEmail    string
	authUserID   string
	authPassword string
	authName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a customer or an admin",
	Long: `Login stores the session so later commands stay signed in.
Customers log in by email, admins by their admin id.

Example:
  canteen login --email asha@campus.edu --password secret
  canteen login --role admin --admin-id counter1 --password secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, identity.ModeLogin)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer or admin account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, identity.ModeSignup)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		current.out.Success("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := current.auth.Session()
		view := struct {
			Authenticated bool   `json:"authenticated" yaml:"authenticated"`
			Role          string `json:"role,omitempty" yaml:"role,omitempty"`
			UserID        string `json:"userId,omitempty" yaml:"user_id,omitempty"`
			ExpiresAt     string `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
		}{Authenticated: sess.IsAuthenticated()}
		if sess.IsAuthenticated() {
			view.Role = string(sess.Role)
			view.UserID = sess.UserID
			if !sess.ExpiresAt.IsZero() {
				view.ExpiresAt = sess.ExpiresAt.Format("2006-01-02 15:04")
			}
		}
		out := current.out
		return out.Render(view, func(tw *tabwriter.Writer) {
			if !view.Authenticated {
				fmt.Fprintln(tw, "Not logged in")
				return
			}
			fmt.Fprintf(tw, "Role\t%s\n", view.Role)
			if view.UserID != "" {
				fmt.Fprintf(tw, "User\t%s\n", view.UserID)
			}
			if view.ExpiresAt != "" {
				fmt.Fprintf(tw, "Expires\t%s\n", out.dim.Sprint(view.ExpiresAt))
			}
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authRole, "role", string(identity.RoleUser), "user or admin")
		c.Flags().StringVar(&authEmail, "email", "", "customer email")
		c.Flags().StringVar(&authUserID, "admin-id", "", "admin id")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password")
	}
	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
}

func authenticate(cmd *cobra.Command, mode identity.Mode) error {
	creds := identity.Credentials{
		Role:     identity.ParseRole(authRole),
		Mode:     mode,
		Name:     authName,
		Email:    authEmail,
		UserID:   authUserID,
		Password: authPassword,
	}
	sess, err := current.auth.Login(cmd.Context(), creds)
	if err != nil {
		return err
	}
	current.out.Success(fmt.Sprintf("Logged in as %s", sess.Role))
	return nil
}
