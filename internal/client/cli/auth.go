package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

type credentialsFn func(ctx context.Context, email string, password []byte) (models.Identity, error)

// signIn prompts for an email and password and hands them to fn. The
// password is wiped before returning.
func (a *App) signIn(ctx context.Context, action string, fn credentialsFn) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Fprintln(a.out, "Email is required")
		return errors.New("email is required")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := fn(ctx, email, password)
	if err != nil {
		a.reportError(ctx, action, err)
		return err
	}

	a.setIdentity(&id)
	fmt.Fprintf(a.out, "Signed in as %s\n", id.Email)
	return nil
}

// Register prompts for credentials and creates an account.
func (a *App) Register(ctx context.Context) error {
	return a.signIn(ctx, "register", a.authService.Register)
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	return a.signIn(ctx, "login", a.authService.Login)
}

// Logout ends the session. The local session is forgotten even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.setIdentity(nil)
	if err != nil {
		a.log.Error(ctx, "failed to clear local session", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the signed-in email and what the stored token says about
// itself.
func (a *App) WhoAmI(ctx context.Context) error {
	if a.identity == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "Email: %s\n", a.identity.Email)

	if a.tokens == nil {
		return nil
	}
	info := a.tokens.TokenInfo()
	switch {
	case !info.Present:
		fmt.Fprintln(a.out, "Token: none")
	case info.Opaque:
		fmt.Fprintln(a.out, "Token: opaque")
	default:
		if info.Subject != "" {
			fmt.Fprintf(a.out, "Subject: %s\n", info.Subject)
		}
		if !info.IssuedAt.IsZero() {
			fmt.Fprintf(a.out, "Issued: %s\n", info.IssuedAt.Local().Format(time.RFC1123))
		}
		if !info.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "Expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	return nil
}

// restoreSession picks up the session saved by a previous run. With
// VerifySession configured the server is asked to confirm it first.
func (a *App) restoreSession(ctx context.Context) {
	if a.config == nil || !a.config.VerifySession {
		if id, ok := a.authService.RestoreSession(ctx); ok {
			a.setIdentity(&id)
		}
		return
	}

	id, ok, err := a.authService.VerifySession(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not verify saved session", "error", err)
	}
	if ok {
		a.setIdentity(&id)
		return
	}
	a.setIdentity(nil)
}

// reportError logs err and prints a short explanation for the user.
func (a *App) reportError(ctx context.Context, action string, err error) {
	a.log.Error(ctx, action+" failed", "error", err)

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn():
		fmt.Fprintln(a.out, "Session is no longer valid, please login again")
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, apiErr.Message)
	default:
		fmt.Fprintf(a.out, "Failed to %s: %v\n", action, err)
	}
}
