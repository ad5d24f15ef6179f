// Package ui renders terminal output. Pure formatting, no state and no
// network.
package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"apptrack.local/internal/domain"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBlue    = "\x1b[34m"
	ansiYellow  = "\x1b[33m"
	ansiMagenta = "\x1b[35m"
	ansiGreen   = "\x1b[32m"
	ansiRed     = "\x1b[31m"
	ansiBold    = "\x1b[1m"
	ansiDim     = "\x1b[2m"
)

var statusColors = map[domain.Status]string{
	domain.StatusApplied:   ansiBlue,
	domain.StatusOA:        ansiYellow,
	domain.StatusInterview: ansiMagenta,
	domain.StatusOffer:     ansiGreen,
	domain.StatusRejected:  ansiRed,
}

// Badge renders a colored status label. Unknown statuses get the Applied
// color, matching how the web badge falls back.
func Badge(status domain.Status) string {
	color, ok := statusColors[status]
	if !ok {
		color = statusColors[domain.StatusApplied]
	}
	return color + string(status) + ansiReset
}

// Logo is the product mark.
func Logo() string {
	return ansiBold + "Placement" + ansiBlue + "Tracker" + ansiReset
}

// Landing prints the marketing copy shown to signed-out users.
func Landing(w io.Writer) {
	fmt.Fprintln(w, Logo())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Track every placement application in one place.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  - Track Applications: a clear record of every company you've applied to.")
	fmt.Fprintln(w, "  - Status Updates: move through Applied, OA, Interview, Offer, or Rejected.")
	fmt.Fprintln(w, "  - Private & Secure: your data is yours alone.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'apptrack signup' to create an account, or 'apptrack login' to sign in.")
}

// Table writes the application list as aligned columns. Row order is
// whatever order the caller passes in.
func Table(w io.Writer, apps []domain.Application) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tROLE\tSTATUS\tCTC\tDATE")
	for _, app := range apps {
		date := ""
		if !app.CreatedAt.IsZero() {
			date = app.CreatedAt.Format("Jan 2, 2006")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			app.ID, app.CompanyName, app.Role, Badge(app.Status), app.CTC, date)
	}
	tw.Flush()
}

// Stats writes the per-status summary line computed from the full list.
func Stats(w io.Writer, counts map[domain.Status]int, total int) {
	for _, s := range domain.Statuses {
		fmt.Fprintf(w, "%s %d   ", Badge(s), counts[s])
	}
	fmt.Fprintf(w, "%stotal %d%s\n", ansiDim, total, ansiReset)
}

// Empty is the no-applications placeholder.
func Empty(w io.Writer) {
	fmt.Fprintln(w, "No applications yet.")
	fmt.Fprintln(w, "Start by adding your first company application: apptrack add")
}
