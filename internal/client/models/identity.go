// Package models defines the records exchanged with the notes backend.
package models

// Identity is the minimal profile of the signed-in user.
type Identity struct {
	Email string `json:"email"`
}
