// Package cli provides the interactive notes command-line client.
//
// It wires configuration, the local session database, the HTTP API client
// and the auth/notes services behind a small REPL. A session saved by a
// previous run is restored at startup, so a signed-in user goes straight to
// their notes.
//
// Key features:
//   - Register / Login / Logout, whoami
//   - List notes grouped by day, show one rendered as Markdown
//   - Create, edit and delete notes
//   - Export to a standalone HTML page or to Markdown files
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
