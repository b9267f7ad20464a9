package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/grouping"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/render"
)

var errNoteNotFound = errors.New("note not found")

// List fetches the notes and prints them grouped by day, newest first.
func (a *App) List(ctx context.Context) error {
	notes, err := a.notesService.List(ctx)
	if err != nil {
		a.reportError(ctx, "load notes", err)
		return err
	}
	a.notes = notes
	return render.List(a.out, grouping.ByDate(notes))
}

// Show prints a single note with its body rendered as Markdown.
func (a *App) Show(ctx context.Context, id string) error {
	n, _, err := a.findNote(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, render.Title(n))
	fmt.Fprintf(a.out, "id: %s  created: %s  updated: %s\n\n", n.ID, n.CreatedAt, n.UpdatedAt)
	fmt.Fprintln(a.out, render.Markdown(n.Content, a.width))
	return nil
}

// New prompts for a title and body and creates a note.
func (a *App) New(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}

	n, err := a.notesService.Create(ctx, strings.TrimSpace(title), content)
	if err != nil {
		a.reportError(ctx, "save note", err)
		return err
	}

	a.notes = append([]models.Note{n}, a.notes...)
	fmt.Fprintf(a.out, "Created note %s\n", n.ID)
	return nil
}

// Edit prompts for a new title and body of an existing note. Empty input
// keeps the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	n, i, err := a.findNote(ctx, id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title (empty keeps %q)", n.Title), a.out)
	if err != nil {
		return err
	}
	if title = strings.TrimSpace(title); title == "" {
		title = n.Title
	}

	content, err := getMultiline(a.reader, "Enter note text (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = n.Content
	}

	patch, err := a.notesService.Update(ctx, n.ID, title, content)
	if err != nil {
		a.reportError(ctx, "save note", err)
		return err
	}

	a.notes[i] = n.Merge(patch)
	fmt.Fprintf(a.out, "Saved note %s\n", a.notes[i].ID)
	return nil
}

// Delete removes a note after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	n, _, err := a.findNote(ctx, id)
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %q? This action cannot be undone.", render.Title(n)), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.notesService.Remove(ctx, n.ID); err != nil {
		a.reportError(ctx, "delete note", err)
		return err
	}

	kept := a.notes[:0]
	for _, x := range a.notes {
		if x.ID != n.ID {
			kept = append(kept, x)
		}
	}
	a.notes = kept
	fmt.Fprintf(a.out, "Deleted note %s\n", n.ID)
	return nil
}

// findNote looks id up in the last listed notes, fetching the list first
// when the note is not there.
func (a *App) findNote(ctx context.Context, id string) (models.Note, int, error) {
	if i := indexOf(a.notes, id); i >= 0 {
		return a.notes[i], i, nil
	}

	notes, err := a.notesService.List(ctx)
	if err != nil {
		a.reportError(ctx, "load notes", err)
		return models.Note{}, -1, err
	}
	a.notes = notes

	if i := indexOf(a.notes, id); i >= 0 {
		return a.notes[i], i, nil
	}
	fmt.Fprintf(a.out, "Note %s not found\n", id)
	return models.Note{}, -1, errNoteNotFound
}

func indexOf(notes []models.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
