// Package cli implements the interactive terminal front end of finkeeper's
// auth core: a small REPL standing in for the mobile UI layer.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/finkeeper/internal/auth"
	"github.com/dmitrijs2005/finkeeper/internal/config"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/filex"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/prefs"
	"github.com/dmitrijs2005/finkeeper/internal/sessionstore"
	"github.com/dmitrijs2005/finkeeper/internal/userstore"
)

type App struct {
	config      *config.Config
	authService *auth.Service
	prefsRepo   prefs.Repository
	db          *sql.DB
	reader      *bufio.Reader
	log         logging.Logger
}

// NewApp wires the auth core together: data dir, device key, local session
// database, user-store file, and the services on top of them.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "using data directory", "dir", dataDir)

	deviceKey, err := cryptox.LoadOrCreateKeyFile(cfg.DeviceKeyPath())
	if err != nil {
		return nil, err
	}

	db, err := sessionstore.InitDatabase(ctx, cfg.SessionDSN())
	if err != nil {
		return nil, err
	}

	users := userstore.NewFileRepository(cfg.UserStorePath())
	sessions := sessionstore.NewSQLiteStore(db, deviceKey)
	authService := auth.NewService(users, sessions, deviceKey, cfg.TokenValidityDuration, log)

	return &App{
		config:      cfg,
		authService: authService,
		prefsRepo:   prefs.NewSQLiteRepository(db),
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		log:         log,
	}, nil
}

// Run restores any persisted session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if result := a.authService.RestoreSession(ctx); result.Success {
		printlnFn("Welcome back,", result.Session.Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentSession() != nil
}

func (a *App) status() string {
	if s := a.authService.CurrentSession(); s != nil {
		return s.Email
	}
	return "anonymous"
}
