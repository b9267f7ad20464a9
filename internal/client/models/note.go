package models

// Note is a normalized note record.
//
// CreatedAt and UpdatedAt hold the backend's timestamp text (RFC 3339 when
// produced by the client). They are kept as strings so an unparseable value
// reaches the grouping step instead of failing the request.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NotePatch carries the fields an update response actually contained.
type NotePatch struct {
	ID        *string
	Title     *string
	Content   *string
	CreatedAt *string
	UpdatedAt *string
}

// Merge returns n with every field present in p applied.
func (n Note) Merge(p NotePatch) Note {
	if p.ID != nil {
		n.ID = *p.ID
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.CreatedAt != nil {
		n.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		n.UpdatedAt = *p.UpdatedAt
	}
	return n
}

// UnknownDate is the key and label of the group holding notes without a
// usable timestamp.
const UnknownDate = "Unknown Date"

// NoteGroup is a set of notes sharing a calendar day.
type NoteGroup struct {
	// Key is the day as yyyy-MM-dd, or UnknownDate.
	Key   string
	Label string
	Notes []Note
}
