// Package export renders the standings of a voting session: the plain result
// view, a markdown table for the terminal and SVG or PNG bar charts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// Result is the tally printed by `rv result`.
type Result struct {
	Standings []voting.Standing
	Invalid   int // invalid papers still counted
	Cast      int // papers not undone, invalid ones included
	Ranks     int
}

// NewResult collects the standings of v.
func NewResult(v *voting.Voting) Result {
	cast := 0
	for _, p := range v.Papers() {
		if p.Active() {
			cast++
		}
	}
	return Result{
		Standings: v.Results(),
		Invalid:   v.InvalidCount(),
		Cast:      cast,
		Ranks:     v.Ranks(),
	}
}

// MaxScore returns the highest score, or 0 for an empty roster.
func (r Result) MaxScore() int {
	best := 0
	for _, s := range r.Standings {
		if s.Score > best {
			best = s.Score
		}
	}
	return best
}

// Text renders one `<score> | <first> - <name>` line per candidate, a blank
// line and the invalid tally.
func (r Result) Text() string {
	var sb strings.Builder
	for _, s := range r.Standings {
		fmt.Fprintf(&sb, "%d | %d - %s\n", s.Score, s.FirstRankVotes, s.Name)
	}
	fmt.Fprintf(&sb, "\n%d     - invalid\n", r.Invalid)
	return sb.String()
}

// WriteText writes the plain result view to w.
func WriteText(w io.Writer, r Result) error {
	_, err := io.WriteString(w, r.Text())
	return err
}

// Format selects how `rv result` prints the standings.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "text", "markdown" and the short form "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text or markdown)", s)
	}
}
