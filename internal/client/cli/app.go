package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// defaultWidth is the wrap width used when rendering note bodies.
const defaultWidth = 80

// tokenInspector exposes the decoded claims of the stored token.
type tokenInspector interface {
	TokenInfo() session.TokenInfo
}

type App struct {
	config       *config.Config
	log          logging.Logger
	authService  services.AuthService
	notesService services.NotesService
	tokens       tokenInspector
	db           *sql.DB
	reader       *bufio.Reader
	out          io.Writer

	// identity is nil while signed out.
	identity *models.Identity
	// notes is the last listed page, kept in sync with local edits.
	notes []models.Note
	width int
}

// NewApp opens the session database, restores the saved session into memory
// and wires the HTTP client and services. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NopLogger{}
	}

	if err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	store, err := session.New(ctx, metadata.NewSQLiteRepository(db))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, store, client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:       c,
		log:          log,
		authService:  services.NewAuthService(apiClient, store, log),
		notesService: services.NewNotesService(apiClient),
		tokens:       store,
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		width:        defaultWidth,
	}, nil
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run restores the previous session and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.restoreSession(ctx)
	fmt.Fprintln(a.out, "Welcome to GophNotes CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.identity != nil
}

func (a *App) getStatus() string {
	if a.identity == nil {
		return "(signed out)"
	}
	return fmt.Sprintf("(%s)", a.identity.Email)
}

func (a *App) setIdentity(id *models.Identity) {
	a.identity = id
	a.notes = nil
}
