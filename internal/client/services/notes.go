package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// NotesService is CRUD over the backend's /notes resource. Nothing is cached:
// every call is a round trip and the caller merges results into its own list.
type NotesService interface {
	List(ctx context.Context) ([]models.Note, error)
	Create(ctx context.Context, title, content string) (models.Note, error)
	Update(ctx context.Context, id, title, content string) (models.NotePatch, error)
	Remove(ctx context.Context, id string) error
}

type notesService struct {
	client client.Client
	now    func() time.Time
}

func NewNotesService(c client.Client) NotesService {
	return &notesService{client: c, now: time.Now}
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns the notes in backend order.
func (s *notesService) List(ctx context.Context) ([]models.Note, error) {
	data, err := s.client.Request(ctx, "/notes", client.RequestOptions{})
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := decodeJSON(data, &items); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	now := s.now()
	notes := make([]models.Note, 0, len(items))
	for _, item := range items {
		notes = append(notes, normalizeNote(item, now, "", ""))
	}
	return notes, nil
}

func (s *notesService) Create(ctx context.Context, title, content string) (models.Note, error) {
	data, err := s.client.Request(ctx, "/notes", client.RequestOptions{
		Method: http.MethodPost,
		Body:   notePayload{Title: title, Content: content},
	})
	if err != nil {
		return models.Note{}, err
	}

	var item map[string]any
	if err := decodeJSON(data, &item); err != nil {
		return models.Note{}, fmt.Errorf("decode created note: %w", err)
	}
	return normalizeNote(item, s.now(), title, content), nil
}

// Update returns only the fields the backend sent back.
func (s *notesService) Update(ctx context.Context, id, title, content string) (models.NotePatch, error) {
	data, err := s.client.Request(ctx, notePath(id), client.RequestOptions{
		Method: http.MethodPut,
		Body:   notePayload{Title: title, Content: content},
	})
	if err != nil {
		return models.NotePatch{}, err
	}

	var item map[string]any
	if err := decodeJSON(data, &item); err != nil {
		return models.NotePatch{}, fmt.Errorf("decode updated note: %w", err)
	}
	return patchFrom(item), nil
}

func (s *notesService) Remove(ctx context.Context, id string) error {
	_, err := s.client.Request(ctx, notePath(id), client.RequestOptions{Method: http.MethodDelete})
	return err
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// decodeJSON decodes data into out keeping numbers as json.Number. A nil or
// null body leaves out at its zero value.
func decodeJSON(data json.RawMessage, out any) error {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}
