package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apptrack.local/internal/api"
	"apptrack.local/internal/auth"
	"apptrack.local/internal/config"
	"apptrack.local/internal/domain"
	"apptrack.local/internal/session"
	"apptrack.local/internal/store"
	"apptrack.local/internal/tracker"
)

// newTestApp wires an App against a dead backend address, so any command
// that reaches the network fails loudly.
func newTestApp(t *testing.T, authed bool, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(ctx))

	sess := session.New(st)
	require.NoError(t, sess.Initialize(ctx))
	if authed {
		user := domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
		require.NoError(t, sess.Login(ctx, user, "tok"))
	}

	client := api.New("http://127.0.0.1:1", sess.Token)

	out := &bytes.Buffer{}
	app := &App{
		Config:  &config.Config{},
		Log:     zerolog.Nop(),
		Session: sess,
		Flow:    auth.New(client, sess),
		Tracker: tracker.New(client, st, zerolog.Nop()),
		Stdout:  out,
		Stdin:   strings.NewReader(stdin),
	}
	return app, out
}

func run(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := app.Root()
	root.SetArgs(args)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stdout)
	return root.ExecuteContext(context.Background())
}

func TestGuard_UnauthenticatedDashboardIsRefused(t *testing.T) {
	app, _ := newTestApp(t, false, "")

	err := run(t, app, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestGuard_AppliesToEveryProtectedCommand(t *testing.T) {
	for _, args := range [][]string{
		{"list"},
		{"add"},
		{"edit", "x1", "--role", "SWE"},
		{"rm", "x1"},
		{"set-status", "x1", "Offer"},
		{"whoami"},
		{"export", "notion"},
	} {
		app, _ := newTestApp(t, false, "")
		err := run(t, app, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not signed in", args)
	}
}

func TestRoot_LandingWhenSignedOut(t *testing.T) {
	app, out := newTestApp(t, false, "")

	require.NoError(t, run(t, app))
	assert.Contains(t, out.String(), "apptrack signup")
	assert.Contains(t, out.String(), "apptrack login")
}

func TestRoot_PointsAtDashboardWhenSignedIn(t *testing.T) {
	app, out := newTestApp(t, true, "")

	require.NoError(t, run(t, app))
	assert.Contains(t, out.String(), "Signed in as Ada")
	assert.Contains(t, out.String(), "apptrack dashboard")
}

func TestLogin_ShortCircuitsWhenAlreadySignedIn(t *testing.T) {
	// The backend address is dead, so reaching the network would error:
	// success here proves the command returned before any call.
	app, out := newTestApp(t, true, "")

	require.NoError(t, run(t, app, "login", "--email", "x@y.z", "--password", "123456"))
	assert.Contains(t, out.String(), "Already signed in as Ada")
}

func TestSignup_ShortCircuitsWhenAlreadySignedIn(t *testing.T) {
	app, out := newTestApp(t, true, "")

	require.NoError(t, run(t, app, "signup", "--name", "B", "--email", "x@y.z", "--password", "123456"))
	assert.Contains(t, out.String(), "Already signed in")
}

func TestSignup_ShortPasswordFailsLocally(t *testing.T) {
	app, _ := newTestApp(t, false, "")

	err := run(t, app, "signup", "--name", "Ada", "--email", "a@b.c", "--password", "12345")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters.", err.Error())
}

func TestRm_DecliningConfirmationSkipsTheCall(t *testing.T) {
	// Dead backend: if rm went through, it would fail.
	app, out := newTestApp(t, true, "n\n")

	require.NoError(t, run(t, app, "rm", "x1"))
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestRm_YesFlagSkipsPrompt(t *testing.T) {
	app, _ := newTestApp(t, true, "")

	// No stdin available; --yes must not prompt. The dead backend then
	// fails the actual delete, proving the call was attempted.
	err := run(t, app, "rm", "x1", "--yes")
	require.Error(t, err)
}

func TestLogout_ClearsSession(t *testing.T) {
	app, out := newTestApp(t, true, "")

	require.NoError(t, run(t, app, "logout"))
	assert.Contains(t, out.String(), "Signed out.")
	assert.False(t, app.Session.IsAuthenticated())
}

func TestExportNotion_RequiresConfiguration(t *testing.T) {
	app, _ := newTestApp(t, true, "")

	err := run(t, app, "export", "notion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APPTRACK_NOTION_TOKEN")
}
