// Package cli wires the command surface. Each web route of the tracker has a
// subcommand counterpart: the landing page is the bare root, login/signup are
// the auth commands, and the dashboard commands are gated behind the session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"apptrack.local/internal/auth"
	"apptrack.local/internal/config"
	"apptrack.local/internal/session"
	"apptrack.local/internal/tracker"
	"apptrack.local/internal/ui"
)

// App bundles the dependencies every command needs.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Session *session.Store
	Flow    *auth.Flow
	Tracker *tracker.Controller

	Stdout io.Writer
	Stdin  io.Reader

	reader *bufio.Reader
}

// stdin shares one buffered reader across prompts so consecutive reads
// don't drop buffered input.
func (a *App) stdin() *bufio.Reader {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.Stdin)
	}
	return a.reader
}

// Root builds the full command tree.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "apptrack",
		Short: "Track your placement applications from the terminal",
		Long: `apptrack keeps a record of every company you've applied to and where
each application stands: Applied, OA, Interview, Offer, or Rejected.

It talks to your PlacementTracker backend and keeps a signed-in session plus
an offline copy of your list in a local state file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Session.IsAuthenticated() {
				fmt.Fprintf(a.Stdout, "Signed in as %s. Run 'apptrack dashboard' to see your applications.\n",
					a.userName())
				return nil
			}
			ui.Landing(a.Stdout)
			return nil
		},
	}

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.listCmd(),
		a.addCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.setStatusCmd(),
		a.exportCmd(),
	)

	return root
}

// requireAuth is the guard in front of every dashboard command. The session
// must be rehydrated (loading resolved) and hold a token.
func (a *App) requireAuth(cmd *cobra.Command, args []string) error {
	if a.Session.Loading() {
		return fmt.Errorf("session not initialized")
	}
	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("you are not signed in; run 'apptrack login' first")
	}
	return nil
}

func (a *App) userName() string {
	if u := a.Session.User(); u != nil {
		return u.Name
	}
	return "unknown"
}

// confirm asks a yes/no question on stdin. Anything but y/yes declines.
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.Stdout, "%s [y/N]: ", prompt)
	line, err := a.stdin().ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// readLine prompts and reads one trimmed line from stdin.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.Stdout, prompt)
	line, err := a.stdin().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
