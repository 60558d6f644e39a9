package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// GenerateMarkdown renders the result as a markdown document with a summary
// and a standings table.
func GenerateMarkdown(r Result, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString("| Metric | Count |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| **Ballots** | %d |\n", r.Cast))
	sb.WriteString(fmt.Sprintf("| Invalid | %d |\n", r.Invalid))
	sb.WriteString(fmt.Sprintf("| Ranks | %d |\n\n", r.Ranks))

	sb.WriteString("## Standings\n\n")
	sb.WriteString("| # | Candidate | Score | First rank |\n|---|-----------|-------|------------|\n")
	for i, s := range r.Standings {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %d |\n", i+1, escapeCell(s.Name), s.Score, s.FirstRankVotes))
	}
	return sb.String()
}

// RenderMarkdown styles md for the terminal, wrapping at width columns.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// escapeCell keeps a name on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "|", "\\|")
}
