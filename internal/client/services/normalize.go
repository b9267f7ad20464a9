package services

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/dates"
)

// Field names backends are known to use for a note's identifier, in order
// of preference.
var idFields = []string{"id", "_id", "noteId"}

// normalizeNote maps a backend note object onto models.Note.
//
//   - id: the first of idFields, else the raw createdAt, else now in Unix ms
//   - title/content: as sent, else the given fallbacks
//   - createdAt: createdAt, else updatedAt, else now
//   - updatedAt: updatedAt, else createdAt, else now
func normalizeNote(m map[string]any, now time.Time, title, content string) models.Note {
	n := models.Note{
		Title:   firstText(title, m["title"]),
		Content: firstText(content, m["content"]),
	}

	for _, f := range idFields {
		if v := text(m[f]); v != "" {
			n.ID = v
			break
		}
	}
	if n.ID == "" {
		n.ID = text(m["createdAt"])
	}
	if n.ID == "" {
		n.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}

	created := timestamp(m["createdAt"])
	updated := timestamp(m["updatedAt"])
	nowText := dates.Format(now)

	n.CreatedAt = firstNonEmpty(created, updated, nowText)
	n.UpdatedAt = firstNonEmpty(updated, created, nowText)
	return n
}

// patchFrom collects the note fields present in an update response.
func patchFrom(m map[string]any) models.NotePatch {
	var p models.NotePatch

	for _, f := range idFields {
		if v := text(m[f]); v != "" {
			p.ID = &v
			break
		}
	}
	if v, ok := m["title"].(string); ok {
		p.Title = &v
	}
	if v, ok := m["content"].(string); ok {
		p.Content = &v
	}
	if v := timestamp(m["createdAt"]); v != "" {
		p.CreatedAt = &v
	}
	if v := timestamp(m["updatedAt"]); v != "" {
		p.UpdatedAt = &v
	}
	return p
}

// text renders strings and numbers; anything else, empty strings and zero
// numbers give "".
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return x.String()
	default:
		return ""
	}
}

// timestamp keeps timestamp strings verbatim and converts numeric epochs
// (milliseconds) to RFC 3339.
func timestamp(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		if t, ok := dates.Parse(x); ok {
			return dates.Format(t)
		}
	}
	return ""
}

func firstText(fallback string, v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
