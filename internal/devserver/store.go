package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errUserExists   = errors.New("user already exists")
	errUserNotFound = errors.New("user not found")
	errNoteNotFound = errors.New("note not found")
)

type user struct {
	ID           string
	Email        string
	PasswordHash []byte
}

type note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// memStore keeps users, notes and revoked token ids in memory.
type memStore struct {
	mu      sync.RWMutex
	users   map[string]*user           // by lower-cased email
	notes   map[string]map[string]note // user id -> note id -> note
	revoked map[string]time.Time       // token id -> expiry
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*user),
		notes:   make(map[string]map[string]note),
		revoked: make(map[string]time.Time),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *memStore) addUser(email string, hash []byte) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(email)
	if _, ok := s.users[key]; ok {
		return user{}, errUserExists
	}
	u := &user{ID: uuid.NewString(), Email: strings.TrimSpace(email), PasswordHash: hash}
	s.users[key] = u
	s.notes[u.ID] = make(map[string]note)
	return *u, nil
}

func (s *memStore) userByEmail(email string) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[emailKey(email)]
	if !ok {
		return user{}, errUserNotFound
	}
	return *u, nil
}

func (s *memStore) revoke(tokenID string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = expires
}

// isRevoked also forgets revocations whose token has expired anyway.
func (s *memStore) isRevoked(tokenID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	_, ok := s.revoked[tokenID]
	return ok
}

// listNotes returns the user's notes, most recently updated first.
func (s *memStore) listNotes(userID string) []note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]note, 0, len(s.notes[userID]))
	for _, n := range s.notes[userID] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (s *memStore) addNote(userID, title, content string, now time.Time) note {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := note{ID: uuid.NewString(), Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	if s.notes[userID] == nil {
		s.notes[userID] = make(map[string]note)
	}
	s.notes[userID][n.ID] = n
	return n
}

func (s *memStore) updateNote(userID, id, title, content string, now time.Time) (note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[userID][id]
	if !ok {
		return note{}, errNoteNotFound
	}
	n.Title, n.Content, n.UpdatedAt = title, content, now
	s.notes[userID][id] = n
	return n, nil
}

func (s *memStore) deleteNote(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[userID][id]; !ok {
		return errNoteNotFound
	}
	delete(s.notes[userID], id)
	return nil
}
