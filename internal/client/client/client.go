package client

import (
	"context"
	"encoding/json"
)

// Client is the transport contract the services depend on.
type Client interface {
	// Request performs one HTTP round trip against path (relative to the
	// base URL) and returns the parsed body, or nil when there was none.
	Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error)

	// Do is Request followed by decoding the body into out. A nil body
	// leaves out untouched; a nil out discards the body.
	Do(ctx context.Context, path string, opts RequestOptions, out any) error
}

// RequestOptions describe a single request. The zero value is an
// authenticated GET without a body.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
	// SkipAuth leaves out the Authorization header even when a token is stored.
	SkipAuth bool
}

// TokenStore is the part of the session the client needs: it reads the
// token before each authenticated request and stores any token a
// successful response carries.
type TokenStore interface {
	Token() (string, bool)
	SetToken(ctx context.Context, token string) error
}
