package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apptrack.local/internal/notion"
)

func (a *App) exportCmd() *cobra.Command {
	export := &cobra.Command{
		Use:   "export",
		Short: "Export your applications elsewhere",
	}

	export.AddCommand(&cobra.Command{
		Use:     "notion",
		Short:   "Push every application as a row into a Notion database",
		PreRunE: a.requireAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Config.Notion.Token == "" || a.Config.Notion.DatabaseID == "" {
				return fmt.Errorf("set APPTRACK_NOTION_TOKEN and APPTRACK_NOTION_DB_ID to enable the Notion export")
			}

			exp := notion.New(a.Config.Notion.Token, a.Config.Notion.DatabaseID)
			if err := exp.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("notion unreachable: %w", err)
			}

			if err := a.Tracker.Refresh(cmd.Context()); err != nil {
				a.Log.Warn().Err(err).Msg("fetch applications")
				fmt.Fprintln(a.Stdout, "Backend unreachable; exporting the offline copy.")
				if cerr := a.Tracker.LoadCached(cmd.Context()); cerr != nil {
					return cerr
				}
			}

			apps := a.Tracker.Applications()
			if len(apps) == 0 {
				fmt.Fprintln(a.Stdout, "Nothing to export.")
				return nil
			}

			n, err := exp.ExportAll(cmd.Context(), apps)
			if err != nil {
				return fmt.Errorf("exported %d of %d before failing: %w", n, len(apps), err)
			}
			fmt.Fprintf(a.Stdout, "Exported %d applications to Notion.\n", n)
			return nil
		},
	})

	return export
}
