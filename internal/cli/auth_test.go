package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/finkeeper/internal/auth"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/prefs"
	"github.com/dmitrijs2005/finkeeper/internal/sessionstore"
	"github.com/dmitrijs2005/finkeeper/internal/userstore"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	users := userstore.NewFileRepository(filepath.Join(t.TempDir(), "db.json"))

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE preferences (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	secret := []byte("0123456789abcdef0123456789abcdef")
	sessions := sessionstore.NewSQLiteStore(db, secret)
	log := logging.NewDiscardLogger()

	return &App{
		authService: auth.NewService(users, sessions, secret, time.Hour, log),
		prefsRepo:   prefs.NewSQLiteRepository(db),
		db:          db,
		reader:      bufio.NewReader(strings.NewReader("")),
		log:         log,
	}
}

// stubInput feeds canned answers to the text prompts and a fixed password.
func stubInput(t *testing.T, answers []string, password string) {
	t.Helper()

	origText := getSimpleText
	origPw := getPassword
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPw
	})

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		require.Less(t, i, len(answers), "unexpected prompt: %s", prompt)
		answer := answers[i]
		i++
		return answer, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()

	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	return &lines
}

func TestApp_RegisterThenWhoAmI(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	out := captureOutput(t)

	stubInput(t, []string{"Ana", "ana@example.com", ""}, "longenough1")
	require.NoError(t, app.Register(ctx))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "ana@example.com", app.status())

	require.NoError(t, app.WhoAmI(ctx))
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Welcome, Ana")
	assert.Contains(t, joined, "email: ana@example.com")
}

func TestApp_RegisterFailureShowsReason(t *testing.T) {
	app := newTestApp(t)
	out := captureOutput(t)

	stubInput(t, []string{"Ana", "ana@example.com", ""}, "short")
	require.NoError(t, app.Register(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, strings.Join(*out, "\n"), "Registration failed")
}

func TestApp_LoginLogoutCycle(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	out := captureOutput(t)

	stubInput(t, []string{"Ana", "ana@example.com", ""}, "longenough1")
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "anonymous", app.status())

	stubInput(t, []string{"ana@example.com"}, "longenough1")
	require.NoError(t, app.Login(ctx))
	assert.True(t, app.isLoggedIn())

	assert.Contains(t, strings.Join(*out, "\n"), "Welcome back, Ana")
}

func TestApp_WrongPasswordStaysAnonymous(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	out := captureOutput(t)

	stubInput(t, []string{"Ana", "ana@example.com", ""}, "longenough1")
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Logout(ctx))

	stubInput(t, []string{"ana@example.com"}, "wrongpass")
	require.NoError(t, app.Login(ctx))

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, strings.Join(*out, "\n"), "Login failed")
}

func TestApp_SettingsDefaultsAndUpdates(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	out := captureOutput(t)

	require.NoError(t, app.Settings(ctx))
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "theme: light")
	assert.Contains(t, joined, "currency: USD")

	require.NoError(t, app.SetTheme(ctx, "dark"))
	require.NoError(t, app.SetCurrency(ctx, "EUR"))

	*out = nil
	require.NoError(t, app.Settings(ctx))
	joined = strings.Join(*out, "\n")
	assert.Contains(t, joined, "theme: dark")
	assert.Contains(t, joined, "currency: EUR")
}

func TestApp_SetThemeRejectsUnknownValue(t *testing.T) {
	app := newTestApp(t)
	out := captureOutput(t)

	require.NoError(t, app.SetTheme(context.Background(), "sepia"))
	assert.Contains(t, strings.Join(*out, "\n"), "Usage: theme")
}
