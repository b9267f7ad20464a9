package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func markdownStyle() ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case !isTerminal():
		style = styles.NoTTYStyleConfig
	case termenv.HasDarkBackground():
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	margin := uint(0)
	style.Document.Margin = &margin
	return style
}

// Markdown renders content for the terminal wrapped at width.
// The raw content is returned when width is not positive or rendering fails.
func Markdown(content string, width int) string {
	if width <= 0 || strings.TrimSpace(content) == "" {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
