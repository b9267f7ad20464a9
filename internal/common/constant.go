// Package common contains small helpers and constants shared by the notes
// client packages.
package common

// HTTP header names and values used when talking to the notes backend.
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
	BearerPrefix        = "Bearer "
)
