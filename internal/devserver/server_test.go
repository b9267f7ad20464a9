package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/grouping"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memSession is an in-memory session store for end-to-end tests.
type memSession struct{ token, email string }

func (m *memSession) Token() (string, bool) { return m.token, m.token != "" }
func (m *memSession) SetToken(_ context.Context, t string) error {
	m.token = t
	return nil
}
func (m *memSession) ClearToken(context.Context) error { m.token = ""; return nil }
func (m *memSession) IdentityEmail() (string, bool)    { return m.email, m.email != "" }
func (m *memSession) SetIdentityEmail(_ context.Context, e string) error {
	m.email = e
	return nil
}
func (m *memSession) ClearIdentityEmail(context.Context) error { m.email = ""; return nil }

type stack struct {
	auth    services.AuthService
	notes   services.NotesService
	session *memSession
	srv     *httptest.Server
}

func newStack(t *testing.T, srv *httptest.Server) stack {
	t.Helper()
	sess := &memSession{}
	c, err := client.NewHTTPClient(srv.URL+"/", sess)
	require.NoError(t, err)
	return stack{
		auth:    services.NewAuthService(c, sess, nil),
		notes:   services.NewNotesService(c),
		session: sess,
		srv:     srv,
	}
}

func TestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(New(nil, []byte("test-secret")))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	s := newStack(t, srv)

	id, err := s.auth.Register(ctx, "alice@example.org", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", id.Email)
	assert.NotEmpty(t, s.session.token)

	_, err = s.auth.Register(ctx, "ALICE@example.org", []byte("pw"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)

	me, err := s.auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", me.Email)

	notes, err := s.notes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	first, err := s.notes.Create(ctx, "First", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "First", first.Title)

	second, err := s.notes.Create(ctx, "", "")
	require.NoError(t, err)

	patch, err := s.notes.Update(ctx, first.ID, "First!", "hello again")
	require.NoError(t, err)
	merged := first.Merge(patch)
	assert.Equal(t, "First!", merged.Title)
	assert.Equal(t, "hello again", merged.Content)

	notes, err = s.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.ID, notes[0].ID, "most recently updated first")

	groups := grouping.ByDate(notes)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Notes, 2)

	require.NoError(t, s.notes.Remove(ctx, second.ID))
	err = s.notes.Remove(ctx, second.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = s.notes.Update(ctx, "missing", "t", "c")
	assert.ErrorIs(t, err, client.ErrNotFound)

	require.NoError(t, s.auth.Logout(ctx))
	assert.Empty(t, s.session.token)
	assert.Empty(t, s.session.email)

	_, err = s.notes.List(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	id, err = s.auth.Login(ctx, "alice@example.org", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", id.Email)

	notes, err = s.notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "First!", notes[0].Title)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(New(nil, []byte("k")))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	s := newStack(t, srv)
	_, err := s.auth.Register(ctx, "bob@example.org", []byte("right"))
	require.NoError(t, err)

	other := newStack(t, srv)
	_, err = other.auth.Login(ctx, "bob@example.org", []byte("wrong"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, other.session.token)

	_, err = other.auth.Login(ctx, "nobody@example.org", []byte("x"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestNotes_IsolatedPerUser(t *testing.T) {
	srv := httptest.NewServer(New(nil, []byte("k")))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	a := newStack(t, srv)
	_, err := a.auth.Register(ctx, "a@example.org", []byte("pw"))
	require.NoError(t, err)
	n, err := a.notes.Create(ctx, "mine", "")
	require.NoError(t, err)

	b := newStack(t, srv)
	_, err = b.auth.Register(ctx, "b@example.org", []byte("pw"))
	require.NoError(t, err)

	notes, err := b.notes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.ErrorIs(t, b.notes.Remove(ctx, n.ID), client.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	h := New(nil, []byte("secret"))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", "Missing token"},
		{"garbage", "Bearer nope", "Invalid token"},
		{"wrong scheme", "Basic abc", "Missing token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}

	t.Run("token signed with another key", func(t *testing.T) {
		tok, _, err := generateToken("u1", "x@y.z", []byte("other"), time.Now(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cookie accepted", func(t *testing.T) {
		tok, _, err := generateToken("u1", "x@y.z", []byte("secret"), time.Now(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: tok})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"u1","email":"x@y.z"}`, rec.Body.String())
	})
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("secret")
	tok, _, err := generateToken("u1", "x@y.z", secret, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = parseToken(tok, secret)
	require.Error(t, err)
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	New(nil, []byte("k")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestRegister_Validation(t *testing.T) {
	h := New(nil, []byte("k"))

	for _, body := range []string{`{`, `{"email":"","password":"x"}`, `{"email":"a@b.c"}`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := New(zap.New(core), []byte("k"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/notes", fields["path"])
	assert.EqualValues(t, http.StatusUnauthorized, fields["status"])
}
