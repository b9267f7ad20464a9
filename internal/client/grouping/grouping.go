// Package grouping buckets notes by calendar day for display.
package grouping

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/dates"
)

const (
	keyLayout   = "2006-01-02"
	labelLayout = "Mon, Jan 2, 2006"
)

// ByDate groups notes by the local day they were last updated, falling back
// to the creation day. Groups are ordered newest first; notes keep their
// input order inside a group. Notes with no usable timestamp end up in the
// models.UnknownDate group, which sorts ahead of every dated group.
func ByDate(notes []models.Note) []models.NoteGroup {
	return byDateIn(notes, time.Local)
}

func byDateIn(notes []models.Note, loc *time.Location) []models.NoteGroup {
	index := make(map[string]int)
	groups := make([]models.NoteGroup, 0)

	for _, n := range notes {
		key, label := dayOf(n, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.NoteGroup{Key: key, Label: label})
		}
		groups[i].Notes = append(groups[i].Notes, n)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})
	return groups
}

func dayOf(n models.Note, loc *time.Location) (key, label string) {
	t, ok := dates.Parse(n.UpdatedAt)
	if !ok {
		t, ok = dates.Parse(n.CreatedAt)
	}
	if !ok {
		return models.UnknownDate, models.UnknownDate
	}
	t = t.In(loc)
	return t.Format(keyLayout), t.Format(labelLayout)
}
