package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/client/grouping"
	"github.com/dmitrijs2005/gophnotes/internal/client/render"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
)

const (
	defaultExportFile = "notes.html"
	defaultExportDir  = "notes-export"
)

// Export writes every note to a single HTML page at path.
func (a *App) Export(ctx context.Context, path string) error {
	if path == "" {
		path = defaultExportFile
	}

	notes, err := a.notesService.List(ctx)
	if err != nil {
		a.reportError(ctx, "load notes", err)
		return err
	}
	a.notes = notes

	if err := filex.EnsureParentDir(path); err != nil {
		a.reportError(ctx, "export", err)
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		a.reportError(ctx, "export", err)
		return err
	}

	if err := render.HTML(f, grouping.ByDate(notes)); err != nil {
		_ = f.Close()
		a.reportError(ctx, "export", err)
		return err
	}
	if err := f.Close(); err != nil {
		a.reportError(ctx, "export", err)
		return err
	}

	fmt.Fprintf(a.out, "Exported %d notes to %s\n", len(notes), path)
	return nil
}

// ExportMarkdown writes each note as a Markdown file with YAML front matter
// into dir.
func (a *App) ExportMarkdown(ctx context.Context, dir string) error {
	if dir == "" {
		dir = defaultExportDir
	}

	notes, err := a.notesService.List(ctx)
	if err != nil {
		a.reportError(ctx, "load notes", err)
		return err
	}
	a.notes = notes

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		a.reportError(ctx, "export", err)
		return err
	}

	for _, n := range notes {
		data, err := render.MarkdownFile(n)
		if err != nil {
			a.reportError(ctx, "export", err)
			return err
		}
		if err := os.WriteFile(filepath.Join(abs, render.FileName(n)), data, 0o600); err != nil {
			a.reportError(ctx, "export", err)
			return err
		}
	}

	fmt.Fprintf(a.out, "Exported %d notes to %s\n", len(notes), abs)
	return nil
}
