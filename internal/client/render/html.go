package render

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdConverter = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

var page = template.Must(template.New("notes").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; color: #222; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .25rem; }
article { margin: 1rem 0 2rem; }
.meta { color: #888; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Groups}}
<section>
<h2>{{.Label}}</h2>
{{- range .Notes}}
<article id="note-{{.ID}}">
<h3>{{.Title}}</h3>
<div class="meta">{{.Time}}</div>
{{.Body}}
</article>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

type htmlPage struct {
	Title  string
	Groups []htmlGroup
}

type htmlGroup struct {
	Label string
	Notes []htmlNote
}

type htmlNote struct {
	ID    string
	Title string
	Time  string
	Body  template.HTML
}

// HTML writes a standalone page with every note, markdown rendered and
// sanitized.
func HTML(w io.Writer, groups []models.NoteGroup) error {
	return writeHTML(w, groups, time.Local)
}

func writeHTML(w io.Writer, groups []models.NoteGroup, loc *time.Location) error {
	p := htmlPage{Title: "Notes", Groups: make([]htmlGroup, 0, len(groups))}
	for _, g := range groups {
		hg := htmlGroup{Label: g.Label, Notes: make([]htmlNote, 0, len(g.Notes))}
		for _, n := range g.Notes {
			hg.Notes = append(hg.Notes, htmlNote{
				ID:    n.ID,
				Title: Title(n),
				Time:  noteTime(n, loc),
				Body:  MarkdownHTML(n.Content),
			})
		}
		p.Groups = append(p.Groups, hg)
	}
	return page.Execute(w, p)
}

// MarkdownHTML converts markdown to sanitized HTML.
func MarkdownHTML(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdConverter.Convert([]byte(src), &buf); err != nil {
		return template.HTML(sanitizer.Sanitize(template.HTMLEscapeString(src)))
	}
	return template.HTML(sanitizer.Sanitize(buf.String()))
}
