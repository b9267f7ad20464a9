package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type fakeAuth struct {
	email    string
	password []byte
	identity models.Identity
	err      error

	logoutCalled bool
	logoutErr    error

	restoreID models.Identity
	restoreOK bool

	verifyCalled bool
	verifyID     models.Identity
	verifyOK     bool
	verifyErr    error
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (models.Identity, error) {
	f.email, f.password = email, append([]byte(nil), password...)
	return f.identity, f.err
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte) (models.Identity, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) RestoreSession(context.Context) (models.Identity, bool) {
	return f.restoreID, f.restoreOK
}

func (f *fakeAuth) Me(context.Context) (models.Identity, error) { return f.verifyID, f.verifyErr }

func (f *fakeAuth) VerifySession(context.Context) (models.Identity, bool, error) {
	f.verifyCalled = true
	return f.verifyID, f.verifyOK, f.verifyErr
}

type fakeNotes struct {
	listOut   []models.Note
	listErr   error
	listCalls int

	created   models.Note
	createErr error
	newTitle  string
	newBody   string

	patch     models.NotePatch
	updateErr error
	updateID  string

	removeErr error
	removedID string
}

func (f *fakeNotes) List(context.Context) ([]models.Note, error) {
	f.listCalls++
	return append([]models.Note(nil), f.listOut...), f.listErr
}

func (f *fakeNotes) Create(_ context.Context, title, content string) (models.Note, error) {
	f.newTitle, f.newBody = title, content
	return f.created, f.createErr
}

func (f *fakeNotes) Update(_ context.Context, id, title, content string) (models.NotePatch, error) {
	f.updateID, f.newTitle, f.newBody = id, title, content
	return f.patch, f.updateErr
}

func (f *fakeNotes) Remove(_ context.Context, id string) error {
	f.removedID = id
	return f.removeErr
}

type fakeTokens struct{ info session.TokenInfo }

func (f fakeTokens) TokenInfo() session.TokenInfo { return f.info }

func newTestApp(auth *fakeAuth, notes *fakeNotes, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:       cfg,
		log:          logging.NopLogger{},
		authService:  auth,
		notesService: notes,
		reader:       bufio.NewReader(bytes.NewBufferString(input)),
		out:          &out,
		width:        80,
	}, &out
}

// stubInputs replaces the interactive prompts with canned answers.
func stubInputs(t *testing.T, lines []string, password []byte) {
	t.Helper()
	origST, origGP, origML, origCF := getSimpleText, getPassword, getMultiline, confirm

	next := func() string {
		if len(lines) == 0 {
			return ""
		}
		l := lines[0]
		lines = lines[1:]
		return l
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	confirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return next() == "y", nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, confirm = origST, origGP, origML, origCF
	})
}
