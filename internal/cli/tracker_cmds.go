package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apptrack.local/internal/domain"
	"apptrack.local/internal/ui"
)

func (a *App) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Show the status summary and full application list",
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.Stdout, "Hi, %s\n\n", a.userName())

			if err := a.Tracker.Refresh(cmd.Context()); err != nil {
				a.Log.Warn().Err(err).Msg("fetch applications")
				fmt.Fprintln(a.Stdout, "Backend unreachable; showing the offline copy.")
				if cerr := a.Tracker.LoadCached(cmd.Context()); cerr != nil {
					return cerr
				}
			}

			counts, total := a.Tracker.Counts()
			ui.Stats(a.Stdout, counts, total)
			fmt.Fprintln(a.Stdout)

			apps := a.Tracker.Applications()
			if len(apps) == 0 {
				ui.Empty(a.Stdout)
				return nil
			}
			ui.Table(a.Stdout, apps)
			return nil
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	var statusFlag, search string
	var cached bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List applications, optionally filtered by status or search text",
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status domain.Status
			if statusFlag != "" {
				parsed, err := domain.ParseStatus(statusFlag)
				if err != nil {
					return err
				}
				status = parsed
			}

			if cached {
				if err := a.Tracker.LoadCached(cmd.Context()); err != nil {
					return err
				}
			} else if err := a.Tracker.Refresh(cmd.Context()); err != nil {
				return err
			}

			apps := a.Tracker.Filter(status, search)
			if len(apps) == 0 {
				if status == "" && search == "" {
					ui.Empty(a.Stdout)
				} else {
					fmt.Fprintln(a.Stdout, "No matching applications.")
				}
				return nil
			}
			ui.Table(a.Stdout, apps)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by exact status (Applied, OA, Interview, Offer, Rejected)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match against company or role")
	cmd.Flags().BoolVar(&cached, "cached", false, "Read the offline copy instead of the backend")

	return cmd
}

func (a *App) addCmd() *cobra.Command {
	var company, role, statusFlag, ctc string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Track a new application",
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if company == "" {
				if company, err = a.readLine("Company name: "); err != nil {
					return err
				}
			}
			if role == "" {
				if role, err = a.readLine("Role: "); err != nil {
					return err
				}
			}

			status := domain.StatusApplied
			if statusFlag != "" {
				if status, err = domain.ParseStatus(statusFlag); err != nil {
					return err
				}
			}

			fmt.Fprintln(a.Stdout, "Saving...")
			err = a.Tracker.Create(cmd.Context(), domain.ApplicationInput{
				CompanyName: company,
				Role:        role,
				Status:      status,
				CTC:         ctc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Added %s — %s.\n", company, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&role, "role", "", "Role applied for")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Initial status (default Applied)")
	cmd.Flags().StringVar(&ctc, "ctc", "", "Offered or expected compensation")

	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var company, role, statusFlag, ctc string

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit an application; only the flags you pass are changed",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ApplicationPatch
			if cmd.Flags().Changed("company") {
				patch.CompanyName = &company
			}
			if cmd.Flags().Changed("role") {
				patch.Role = &role
			}
			if cmd.Flags().Changed("ctc") {
				patch.CTC = &ctc
			}
			if cmd.Flags().Changed("status") {
				status, err := domain.ParseStatus(statusFlag)
				if err != nil {
					return err
				}
				patch.Status = &status
			}
			if patch == (domain.ApplicationPatch{}) {
				return fmt.Errorf("nothing to change; pass at least one of --company, --role, --status, --ctc")
			}

			fmt.Fprintln(a.Stdout, "Saving...")
			if err := a.Tracker.Update(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, "Updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&role, "role", "", "Role applied for")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Status")
	cmd.Flags().StringVar(&ctc, "ctc", "", "Offered or expected compensation")

	return cmd
}

func (a *App) rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete an application",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.confirm("Delete this application?") {
				fmt.Fprintln(a.Stdout, "Cancelled.")
				return nil
			}
			if err := a.Tracker.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, "Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (a *App) setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set-status <id> <status>",
		Short:   "Move an application to a new stage",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.Tracker.SetStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "Moved to %s.\n", ui.Badge(status))
			return nil
		},
	}
}
