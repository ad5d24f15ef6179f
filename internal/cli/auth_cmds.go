package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) signupCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Session.IsAuthenticated() {
				fmt.Fprintf(a.Stdout, "Already signed in as %s. Run 'apptrack logout' first.\n", a.userName())
				return nil
			}

			var err error
			if name == "" {
				if name, err = a.readLine("Full name: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = a.readLine("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.readLine("Password: "); err != nil {
					return err
				}
			}

			fmt.Fprintln(a.Stdout, "Creating account...")
			user, err := a.Flow.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Welcome, %s! Run 'apptrack dashboard' to get started.\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")

	return cmd
}

func (a *App) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Session.IsAuthenticated() {
				fmt.Fprintf(a.Stdout, "Already signed in as %s. Run 'apptrack dashboard' to see your applications.\n", a.userName())
				return nil
			}

			var err error
			if email == "" {
				if email, err = a.readLine("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.readLine("Password: "); err != nil {
					return err
				}
			}

			fmt.Fprintln(a.Stdout, "Signing in...")
			user, err := a.Flow.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Welcome back, %s!\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, "Signed out.")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the signed-in account",
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a.Session.User()
			fmt.Fprintf(a.Stdout, "%s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
}
