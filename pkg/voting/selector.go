package voting

import (
	"strings"
	"unicode/utf8"
)

// MaxRanks is the number of rank headers available.
const MaxRanks = 4

// MinRanks is the smallest supported ballot size.
const MinRanks = 2

var rankHeaders = [MaxRanks]string{"First", "Second", "Third", "Fourth"}

// RankHeader returns the ordinal label for a zero-based rank.
func RankHeader(rank int) string {
	if rank < 0 || rank >= MaxRanks {
		return ""
	}
	return rankHeaders[rank]
}

// FilterNames returns the names starting with search, compared
// case-insensitively, in roster order. An empty search matches nothing.
func FilterNames(names []string, search string) []string {
	if search == "" {
		return nil
	}
	prefix := strings.ToLower(search)
	var matches []string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// RankSelector is the search box for one rank on the ballot being filled in.
type RankSelector struct {
	Header       string
	SearchText   string
	PreviewIndex int
}

// NewRankSelector returns an empty selector for the given zero-based rank.
func NewRankSelector(rank int) RankSelector {
	return RankSelector{Header: RankHeader(rank)}
}

// Matches returns the candidates the current search text would complete to.
func (s RankSelector) Matches(names []string) []string {
	return FilterNames(names, s.SearchText)
}

// Selected resolves the selector to a candidate name. It reports false when
// nothing is typed or when the typed text has no match at the preview index.
func (s RankSelector) Selected(names []string) (string, bool) {
	if s.SearchText == "" {
		return "", false
	}
	matches := s.Matches(names)
	if s.PreviewIndex < 0 || s.PreviewIndex >= len(matches) {
		return "", false
	}
	return matches[s.PreviewIndex], true
}

// HasMatch reports whether the search text is empty or completes to at least
// one candidate.
func (s RankSelector) HasMatch(names []string) bool {
	return s.SearchText == "" || len(s.Matches(names)) > 0
}

// Clear resets the search text and preview index.
func (s *RankSelector) Clear() {
	s.SearchText = ""
	s.PreviewIndex = 0
}

// Type appends text to the search and keeps the preview index in range.
func (s *RankSelector) Type(text string, names []string) {
	s.SearchText += text
	s.clamp(names)
}

// Backspace removes the last rune of the search text.
func (s *RankSelector) Backspace(names []string) {
	if s.SearchText == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.SearchText)
	s.SearchText = s.SearchText[:len(s.SearchText)-size]
	s.clamp(names)
}

// Cycle advances the preview to the next match, wrapping around. It does
// nothing when there are no matches.
func (s *RankSelector) Cycle(names []string) {
	matches := s.Matches(names)
	if len(matches) == 0 {
		return
	}
	s.PreviewIndex = (s.PreviewIndex + 1) % len(matches)
}

func (s *RankSelector) clamp(names []string) {
	matches := s.Matches(names)
	if len(matches) == 0 || s.PreviewIndex < 0 {
		s.PreviewIndex = 0
		return
	}
	s.PreviewIndex %= len(matches)
}
