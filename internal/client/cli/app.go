package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/mindmate-client/internal/client/authhttp"
	"github.com/dmitrijs2005/mindmate-client/internal/client/config"
	"github.com/dmitrijs2005/mindmate-client/internal/client/services"
	"github.com/dmitrijs2005/mindmate-client/internal/client/session"
	"github.com/dmitrijs2005/mindmate-client/internal/client/storage"
	"github.com/dmitrijs2005/mindmate-client/internal/logging"
	"github.com/fatih/color"
)

// startPage is where a fresh App is located.
const startPage = "/"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	session     services.SessionStore
	fetcher     services.Fetcher
	authService services.AuthService
	gate        *services.Gate
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	location string

	outMu sync.Mutex
}

// NewApp opens the local storage at c.StoragePath and builds an App talking
// to c.ServerBaseURL through stdin/stdout.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	app, err := newApp(c, logger, db, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		db:       db,
		reader:   bufio.NewReader(in),
		out:      out,
		location: startPage,
	}

	sess := session.New(db, logger)
	fetcher, err := authhttp.NewClient(c.ServerBaseURL, sess, nil, logger)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(fetcher, sess, a, logger)

	a.session = sess
	a.fetcher = fetcher
	a.authService = as
	a.gate = services.NewGate(as, a, logger)
	return a, nil
}

// Location returns the page the user is on.
func (a *App) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// Navigate moves the user to path and runs the page-load gate for it.
func (a *App) Navigate(ctx context.Context, path string) {
	a.mu.Lock()
	a.location = path
	a.mu.Unlock()

	a.say(color.FgCyan, "-> %s", path)

	if a.gate != nil {
		a.gate.OnPageLoad(ctx, path)
	}
}

// Run starts the background gate watcher and the REPL. It returns when the
// user exits or ctx is cancelled, closing the local storage.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	a.say(color.Reset, "Welcome to MindMate CLI (type 'help' for commands)")

	go a.gate.Watch(ctx, a.config.AuthCheckInterval, a.Location)

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
	return nil
}

func (a *App) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing local storage failed", "error", err)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.session.Token(ctx)
	return ok
}

func (a *App) getStatus(ctx context.Context) string {
	s := a.Location()
	if id, err := a.session.Identity(ctx); err == nil && id.Username != "" {
		s = id.Username + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// say prints one colored line to the App's output.
func (a *App) say(attr color.Attribute, format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, _ = color.New(attr).Fprintf(a.out, format+"\n", args...)
}
