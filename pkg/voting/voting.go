// Package voting implements the ranked-ballot engine: the candidate roster,
// the per-rank search selectors, cast and undo of ballot papers, and
// Borda-style scoring.
//
// A Voting value is not safe for concurrent use; the interactive controller
// owns it on a single goroutine.
package voting

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrTooManyRanks       = fmt.Errorf("allowed rank count exceeds %d", MaxRanks)
	ErrTooFewRanks        = fmt.Errorf("allowed rank count must be at least %d", MinRanks)
	ErrDuplicateCandidate = errors.New("duplicate candidate name")
	ErrEmptyRoster        = errors.New("candidate roster is empty")
	ErrPaperIndex         = errors.New("ballot paper index out of range")
	ErrRankIndex          = errors.New("rank index out of range")
)

// ValidateRanks checks that n is a supported ballot size.
func ValidateRanks(n int) error {
	switch {
	case n > MaxRanks:
		return fmt.Errorf("%w: got %d", ErrTooManyRanks, n)
	case n < MinRanks:
		return fmt.Errorf("%w: got %d", ErrTooFewRanks, n)
	}
	return nil
}

// Voting is the complete session state: roster, the ballot being filled in,
// every paper cast so far and the invalid tally.
type Voting struct {
	candidates   []Candidate
	selectors    []RankSelector
	papers       []BallotPaper
	invalidCount int
	ranks        int
	path         string
}

// New creates a fresh session for the given candidate names.
func New(names []string, ranks int, path string) (*Voting, error) {
	roster, err := NewRoster(names, ranks)
	if err != nil {
		return nil, err
	}
	v := &Voting{
		candidates: roster,
		selectors:  make([]RankSelector, ranks),
		ranks:      ranks,
		path:       path,
	}
	for i := range v.selectors {
		v.selectors[i] = NewRankSelector(i)
	}
	return v, nil
}

// Ranks returns the number of ranks on each ballot.
func (v *Voting) Ranks() int { return v.ranks }

// Path returns the snapshot path this session persists to.
func (v *Voting) Path() string { return v.path }

// SetPath changes the snapshot path.
func (v *Voting) SetPath(path string) { v.path = path }

// InvalidCount returns the number of active invalid papers.
func (v *Voting) InvalidCount() int { return v.invalidCount }

// Candidates returns a copy of the roster in load order.
func (v *Voting) Candidates() []Candidate {
	out := make([]Candidate, len(v.candidates))
	for i, c := range v.candidates {
		c.Votes = append([]int(nil), c.Votes...)
		out[i] = c
	}
	return out
}

// CandidateNames returns the roster names in load order.
func (v *Voting) CandidateNames() []string {
	names := make([]string, len(v.candidates))
	for i, c := range v.candidates {
		names[i] = c.Name
	}
	return names
}

// CandidateByName looks a candidate up by exact name.
func (v *Voting) CandidateByName(name string) (Candidate, bool) {
	for _, c := range v.candidates {
		if c.Name == name {
			c.Votes = append([]int(nil), c.Votes...)
			return c, true
		}
	}
	return Candidate{}, false
}

func (v *Voting) candidateByID(id int) *Candidate {
	for i := range v.candidates {
		if v.candidates[i].ID == id {
			return &v.candidates[i]
		}
	}
	return nil
}

func (v *Voting) idByName(name string) int {
	for _, c := range v.candidates {
		if c.Name == name {
			return c.ID
		}
	}
	return NoCandidate
}

// TotalScore sums Score over the whole roster.
func (v *Voting) TotalScore() int {
	total := 0
	for _, c := range v.candidates {
		total += c.Score()
	}
	return total
}

// Selectors returns a copy of the rank selectors.
func (v *Voting) Selectors() []RankSelector {
	return append([]RankSelector(nil), v.selectors...)
}

// Selector returns the selector for a rank.
func (v *Voting) Selector(rank int) RankSelector {
	if rank < 0 || rank >= len(v.selectors) {
		return RankSelector{}
	}
	return v.selectors[rank]
}

func (v *Voting) selector(rank int) (*RankSelector, error) {
	if rank < 0 || rank >= len(v.selectors) {
		return nil, fmt.Errorf("%w: %d", ErrRankIndex, rank)
	}
	return &v.selectors[rank], nil
}

// Type appends text to the search of the given rank.
func (v *Voting) Type(rank int, text string) error {
	s, err := v.selector(rank)
	if err != nil {
		return err
	}
	s.Type(text, v.CandidateNames())
	return nil
}

// Backspace deletes the last rune of the search of the given rank.
func (v *Voting) Backspace(rank int) error {
	s, err := v.selector(rank)
	if err != nil {
		return err
	}
	s.Backspace(v.CandidateNames())
	return nil
}

// Cycle moves the preview of the given rank to its next match.
func (v *Voting) Cycle(rank int) error {
	s, err := v.selector(rank)
	if err != nil {
		return err
	}
	s.Cycle(v.CandidateNames())
	return nil
}

// SelectedAt resolves the selector of a rank to a candidate name.
func (v *Voting) SelectedAt(rank int) (string, bool) {
	if rank < 0 || rank >= len(v.selectors) {
		return "", false
	}
	return v.selectors[rank].Selected(v.CandidateNames())
}

// SelectorValid reports whether the selector at rank may be cast: its search
// text is empty or has matches, and no other rank resolves to the same
// candidate.
func (v *Voting) SelectorValid(rank int) bool {
	if rank < 0 || rank >= len(v.selectors) {
		return false
	}
	names := v.CandidateNames()
	own := v.selectors[rank]
	if !own.HasMatch(names) {
		return false
	}
	name, ok := own.Selected(names)
	if !ok {
		return true
	}
	for i, other := range v.selectors {
		if i == rank {
			continue
		}
		if otherName, ok := other.Selected(names); ok && otherName == name {
			return false
		}
	}
	return true
}

// Valid reports whether the ballot currently being filled in would count.
func (v *Voting) Valid() bool {
	for i := range v.selectors {
		if !v.SelectorValid(i) {
			return false
		}
	}
	return true
}

// Cast records the ballot currently being filled in and clears the selectors.
// A ballot that fails validation is still recorded, as an invalid paper.
func (v *Voting) Cast() BallotPaper {
	defer v.clearSelectors()

	if !v.Valid() {
		paper := newInvalidPaper(v.ranks)
		v.papers = append(v.papers, paper)
		v.invalidCount++
		return paper.clone()
	}

	paper := BallotPaper{
		Choices:      make([]string, v.ranks),
		CandidateIDs: make([]int, v.ranks),
	}
	for rank := range v.selectors {
		paper.CandidateIDs[rank] = NoCandidate
		name, ok := v.SelectedAt(rank)
		if !ok {
			continue
		}
		id := v.idByName(name)
		if c := v.candidateByID(id); c != nil {
			c.vote(rank)
			paper.Choices[rank] = name
			paper.CandidateIDs[rank] = id
		}
	}
	v.papers = append(v.papers, paper)
	return paper.clone()
}

func (v *Voting) clearSelectors() {
	for i := range v.selectors {
		v.selectors[i].Clear()
	}
}

// Undo disables the paper at index and removes its contribution from the
// tally. It returns false without changing anything if the paper was already
// disabled.
func (v *Voting) Undo(index int) (bool, error) {
	if index < 0 || index >= len(v.papers) {
		return false, fmt.Errorf("%w: %d of %d", ErrPaperIndex, index, len(v.papers))
	}
	paper := &v.papers[index]
	if paper.Disabled {
		return false, nil
	}
	paper.Disabled = true

	if paper.Invalid {
		v.invalidCount--
		return true, nil
	}
	for rank, id := range paper.CandidateIDs {
		if id == NoCandidate {
			continue
		}
		if c := v.candidateByID(id); c != nil {
			c.unvote(rank)
		}
	}
	return true, nil
}

// PaperCount returns the number of papers cast, including disabled ones.
func (v *Voting) PaperCount() int { return len(v.papers) }

// Paper returns a copy of the paper at index.
func (v *Voting) Paper(index int) (BallotPaper, bool) {
	if index < 0 || index >= len(v.papers) {
		return BallotPaper{}, false
	}
	return v.papers[index].clone(), true
}

// Papers returns a copy of every paper in cast order.
func (v *Voting) Papers() []BallotPaper {
	out := make([]BallotPaper, len(v.papers))
	for i, p := range v.papers {
		out[i] = p.clone()
	}
	return out
}
