// Package client contains the transport layer of the notes client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) used by the
//     auth and notes services.
//  2. HTTPClient, the JSON-over-HTTP implementation. It attaches the stored
//     bearer token, keeps cookies between requests, parses JSON and plain
//     text bodies uniformly, turns non-2xx responses into *APIError and
//     stores any "token" a successful response carries.
//  3. Local database bootstrap (InitDatabase, RunMigrations) for the SQLite
//     file that holds the session.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. HTTP failures are *APIError values,
// which also match ErrUnauthorized (401/403) and ErrNotFound (404) through
// errors.Is. Requests are never retried.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Cancellation and deadlines come
// only from the caller's context.
package client
