package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"ponymatrix/internal/prompt"
)

// NewMarkdownRenderer returns a glamour renderer matching the theme.
func NewMarkdownRenderer(theme Theme, width int) (*glamour.TermRenderer, error) {
	style := glamour.WithStylePath("light")
	if theme.IsDark {
		style = glamour.WithStylePath("dark")
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
}

// HistoryMarkdown formats saved prompts as a markdown document. first is
// the 1-based number of recs[0] within the whole file.
func HistoryMarkdown(recs []prompt.Record, first int) string {
	var b strings.Builder
	for i, rec := range recs {
		fmt.Fprintf(&b, "## %d. %s\n\n", first+i, rec.Metadata)
		b.WriteString("**Positive Prompt**\n\n```\n" + rec.Positive + "\n```\n\n")
		b.WriteString("**Negative Prompt**\n\n```\n" + rec.Negative + "\n```\n\n")
	}
	return b.String()
}

// RenderHistory renders saved prompts through r.
func RenderHistory(r *glamour.TermRenderer, recs []prompt.Record, first int) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}
	out, err := r.Render(HistoryMarkdown(recs, first))
	if err != nil {
		return "", fmt.Errorf("failed to render history: %w", err)
	}
	return out, nil
}
