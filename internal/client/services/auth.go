// Package services contains the application services of the notes client.
// This file defines the authentication service: login, register, logout and
// restoring a session saved by a previous run.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// AuthService defines authentication operations.
//
// Contract:
//   - Login / Register: authenticate (or sign up) and remember the email.
//     A token in the response is stored by the client layer.
//   - Logout: tell the server, then always forget the local session.
//   - RestoreSession: report the saved identity without a network call.
//   - Me: fetch the current user from the server.
//   - VerifySession: RestoreSession confirmed by Me.
//
// Server errors are returned unchanged, except from Logout.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.Identity, error)
	Register(ctx context.Context, email string, password []byte) (models.Identity, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (models.Identity, bool)
	Me(ctx context.Context) (models.Identity, error)
	VerifySession(ctx context.Context) (models.Identity, bool, error)
}

// SessionStore is the local session state the services read and write.
// session.Store satisfies it.
type SessionStore interface {
	Token() (string, bool)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	IdentityEmail() (string, bool)
	SetIdentityEmail(ctx context.Context, email string) error
	ClearIdentityEmail(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionStore
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, session SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &authService{client: c, session: session, log: log.With("component", "auth")}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Identity, error) {
	return a.authenticate(ctx, "/auth/login", email, password)
}

// Register creates an account. Backends that sign the user in right away
// return a token, which the client layer stores like on login.
func (a *authService) Register(ctx context.Context, email string, password []byte) (models.Identity, error) {
	return a.authenticate(ctx, "/auth/register", email, password)
}

func (a *authService) authenticate(ctx context.Context, path, email string, password []byte) (models.Identity, error) {
	data, err := a.client.Request(ctx, path, client.RequestOptions{
		Method:   http.MethodPost,
		Body:     credentials{Email: email, Password: string(password)},
		SkipAuth: true,
	})
	if err != nil {
		return models.Identity{}, err
	}

	var resp struct {
		User json.RawMessage `json:"user"`
	}
	if len(data) > 0 {
		// A body that is not an object simply carries no user.
		_ = json.Unmarshal(data, &resp)
	}

	identity := identityFrom(resp.User, email)
	if err := a.session.SetIdentityEmail(ctx, identity.Email); err != nil {
		return models.Identity{}, err
	}

	a.log.Info(ctx, "signed in", "path", path, "email", identity.Email)
	return identity, nil
}

// Logout never fails because of the server: the remote call is best effort
// and the local token and email are cleared regardless. Only failures to
// clear local state are returned.
func (a *authService) Logout(ctx context.Context) error {
	if _, err := a.client.Request(ctx, "/auth/logout", client.RequestOptions{Method: http.MethodPost}); err != nil {
		a.log.Warn(ctx, "logout request failed, clearing local session anyway", "error", err)
	}

	return errors.Join(
		a.session.ClearToken(ctx),
		a.session.ClearIdentityEmail(ctx),
	)
}

// RestoreSession is optimistic: a stored token and email are taken as a live
// session. A revoked token only shows up on the next request.
func (a *authService) RestoreSession(_ context.Context) (models.Identity, bool) {
	if _, ok := a.session.Token(); !ok {
		return models.Identity{}, false
	}
	email, ok := a.session.IdentityEmail()
	if !ok {
		return models.Identity{}, false
	}
	return models.Identity{Email: email}, true
}

func (a *authService) Me(ctx context.Context) (models.Identity, error) {
	data, err := a.client.Request(ctx, "/auth/me", client.RequestOptions{})
	if err != nil {
		return models.Identity{}, err
	}

	identity := identityFrom(data, "")
	if identity.Email == "" {
		var wrapped struct {
			User json.RawMessage `json:"user"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil {
			identity = identityFrom(wrapped.User, "")
		}
	}
	return identity, nil
}

// VerifySession restores the saved session and confirms it with the server.
// A 401/403 clears the local session and reports ok=false. Other failures
// keep the optimistic identity and return the error.
func (a *authService) VerifySession(ctx context.Context) (models.Identity, bool, error) {
	saved, ok := a.RestoreSession(ctx)
	if !ok {
		return models.Identity{}, false, nil
	}

	me, err := a.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.log.Info(ctx, "saved session rejected by server", "email", saved.Email)
			return models.Identity{}, false, errors.Join(
				a.session.ClearToken(ctx),
				a.session.ClearIdentityEmail(ctx),
			)
		}
		return saved, true, err
	}

	if me.Email == "" {
		me.Email = saved.Email
	}
	if me.Email != saved.Email {
		if err := a.session.SetIdentityEmail(ctx, me.Email); err != nil {
			return me, true, err
		}
	}
	return me, true, nil
}

// identityFrom reads {"email": ...} from raw, using fallback when raw is
// absent, not an object or has no email.
func identityFrom(raw json.RawMessage, fallback string) models.Identity {
	var id models.Identity
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &id)
	}
	if id.Email == "" {
		id.Email = fallback
	}
	return id
}
