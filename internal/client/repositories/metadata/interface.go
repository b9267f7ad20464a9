// Package metadata stores small named string values in the local client
// database. The session store keeps the bearer token and the identity email
// here so they survive restarts.
package metadata

import (
	"context"
	"database/sql"
)

// Repository is a string key/value store.
//
// Get reports ok=false when the key is absent. Delete of an absent key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}

// DBTX is the subset of database/sql used by the repository.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
