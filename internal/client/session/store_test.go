package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
)

type fakeRepo struct {
	data   map[string]string
	getErr error
	setErr error
	delErr error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{data: map[string]string{}} }

func (f *fakeRepo) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeRepo) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

func TestNew_LoadsPersistedValues(t *testing.T) {
	repo := newFakeRepo()
	repo.data[TokenKey] = "abc123"
	repo.data[IdentityEmailKey] = "alice@example.org"

	s, err := New(context.Background(), repo)
	require.NoError(t, err)

	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	email, ok := s.IdentityEmail()
	assert.True(t, ok)
	assert.Equal(t, "alice@example.org", email)
}

func TestNew_EmptyRepo(t *testing.T) {
	s, err := New(context.Background(), newFakeRepo())
	require.NoError(t, err)

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.IdentityEmail()
	assert.False(t, ok)
}

func TestNew_RepoError(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("io")

	_, err := New(context.Background(), repo)
	require.ErrorContains(t, err, "load token")
}

func TestSetAndClear_WriteThrough(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s, err := New(ctx, repo)
	require.NoError(t, err)

	require.NoError(t, s.SetToken(ctx, "first"))
	require.NoError(t, s.SetToken(ctx, "second"))
	require.NoError(t, s.SetIdentityEmail(ctx, "bob@example.org"))

	assert.Equal(t, "second", repo.data[TokenKey])
	assert.Equal(t, "bob@example.org", repo.data[IdentityEmailKey])

	require.NoError(t, s.ClearToken(ctx))
	_, ok := s.Token()
	assert.False(t, ok)
	assert.NotContains(t, repo.data, TokenKey)

	// clearing the token leaves the identity alone
	email, ok := s.IdentityEmail()
	assert.True(t, ok)
	assert.Equal(t, "bob@example.org", email)

	require.NoError(t, s.ClearIdentityEmail(ctx))
	assert.Empty(t, repo.data)
}

func TestSet_FailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s, err := New(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "kept"))

	repo.setErr = errors.New("readonly")
	require.Error(t, s.SetToken(ctx, "lost"))

	tok, _ := s.Token()
	assert.Equal(t, "kept", tok)
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := client.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	s, err := New(ctx, metadata.NewSQLiteRepository(db))
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "persisted"))
	require.NoError(t, s.SetIdentityEmail(ctx, "carol@example.org"))
	require.NoError(t, db.Close())

	db, err = client.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	s, err = New(ctx, metadata.NewSQLiteRepository(db))
	require.NoError(t, err)

	tok, _ := s.Token()
	email, _ := s.IdentityEmail()
	assert.Equal(t, "persisted", tok)
	assert.Equal(t, "carol@example.org", email)
}

func TestTokenInfo(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newFakeRepo())
	require.NoError(t, err)

	assert.False(t, s.TokenInfo().Present)

	require.NoError(t, s.SetToken(ctx, "opaque-session-id"))
	info := s.TokenInfo()
	assert.True(t, info.Present)
	assert.True(t, info.Opaque)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.SetToken(ctx, signed))
	info = s.TokenInfo()
	assert.False(t, info.Opaque)
	assert.Equal(t, "user-1", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
}
