// Package render turns notes into terminal and HTML output.
package render

import (
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/dates"
)

const (
	previewRunes = 60
	timeLayout   = "3:04 PM"
	untitled     = "Untitled"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// List writes grouped notes as one header per day followed by a line per
// note: time, id, title and the start of the content.
func List(w io.Writer, groups []models.NoteGroup) error {
	return writeList(w, groups, time.Local)
}

func writeList(w io.Writer, groups []models.NoteGroup, loc *time.Location) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No notes yet.")
		return err
	}

	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, headerStyle.Render(g.Label)); err != nil {
			return err
		}
		for _, n := range g.Notes {
			line := fmt.Sprintf("  %s  %s  %s", timeStyle.Render(fmt.Sprintf("%8s", noteTime(n, loc))), Title(n), idStyle.Render("["+n.ID+"]"))
			if p := Preview(n.Content); p != "" {
				line += "  " + p
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Title returns the note's title, or "Untitled".
func Title(n models.Note) string {
	if n.Title == "" {
		return untitled
	}
	return n.Title
}

// Preview returns up to the first 60 runes of content on a single line.
func Preview(content string) string {
	r := []rune(content)
	if len(r) > previewRunes {
		r = r[:previewRunes]
	}
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	return string(r)
}

func noteTime(n models.Note, loc *time.Location) string {
	t, ok := dates.Parse(n.UpdatedAt)
	if !ok {
		t, ok = dates.Parse(n.CreatedAt)
	}
	if !ok {
		return ""
	}
	return t.In(loc).Format(timeLayout)
}
