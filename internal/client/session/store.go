// Package session keeps the bearer token and the signed-in user's email
// between runs of the client.
//
// Values are read once from the backing repository when the Store is
// created and written through on every change. The store never expires a
// token on its own; the backend decides whether a token is still valid.
package session

import (
	"context"
	"fmt"
	"sync"
)

// Storage keys of the two persisted values. They are independent: a token
// may exist without an email and vice versa.
const (
	TokenKey         = "auth_token"
	IdentityEmailKey = "auth_user_email"
)

// Repository is the persistence the store writes through to.
// metadata.SQLiteRepository satisfies it.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	repo Repository

	mu    sync.RWMutex
	token string
	email string
}

// New creates a Store and loads the persisted token and email from repo.
func New(ctx context.Context, repo Repository) (*Store, error) {
	s := &Store{repo: repo}

	token, _, err := repo.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	email, _, err := repo.Get(ctx, IdentityEmailKey)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	s.token = token
	s.email = email
	return s, nil
}

// Token returns the stored bearer token; ok is false when none is stored.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the stored token. An empty token clears it.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, TokenKey, token, &s.token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.set(ctx, TokenKey, "", &s.token)
}

func (s *Store) IdentityEmail() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.email != ""
}

func (s *Store) SetIdentityEmail(ctx context.Context, email string) error {
	return s.set(ctx, IdentityEmailKey, email, &s.email)
}

func (s *Store) ClearIdentityEmail(ctx context.Context) error {
	return s.set(ctx, IdentityEmailKey, "", &s.email)
}

// set persists value under key and, only once that succeeded, updates the
// in-memory copy.
func (s *Store) set(ctx context.Context, key, value string, field *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if value == "" {
		err = s.repo.Delete(ctx, key)
	} else {
		err = s.repo.Set(ctx, key, value)
	}
	if err != nil {
		return err
	}

	*field = value
	return nil
}
