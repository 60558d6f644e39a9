package voting

import (
	"errors"
	"fmt"
)

// ErrInconsistentState is returned by FromState when the data breaks one of
// the session invariants.
var ErrInconsistentState = errors.New("inconsistent voting state")

// State is the plain-data form of a Voting session, used for snapshots.
type State struct {
	Path         string           `json:"path"`
	Ranks        int              `json:"allowed_ranks"`
	Selectors    []SelectorState  `json:"selectors"`
	Candidates   []CandidateState `json:"candidates"`
	Papers       []PaperState     `json:"papers"`
	InvalidCount int              `json:"invalid_count"`
}

// SelectorState mirrors RankSelector.
type SelectorState struct {
	Header       string `json:"header"`
	SearchText   string `json:"search_text"`
	PreviewIndex int    `json:"selected_preview"`
}

// CandidateState mirrors Candidate.
type CandidateState struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Votes []int  `json:"votes"`
}

// PaperState mirrors BallotPaper.
type PaperState struct {
	Choices      []string `json:"choices"`
	CandidateIDs []int    `json:"candidate_ids"`
	Invalid      bool     `json:"invalid"`
	Disabled     bool     `json:"disabled"`
}

// State returns a deep copy of the session.
func (v *Voting) State() State {
	st := State{
		Path:         v.path,
		Ranks:        v.ranks,
		Selectors:    make([]SelectorState, len(v.selectors)),
		Candidates:   make([]CandidateState, len(v.candidates)),
		Papers:       make([]PaperState, len(v.papers)),
		InvalidCount: v.invalidCount,
	}
	for i, s := range v.selectors {
		st.Selectors[i] = SelectorState{Header: s.Header, SearchText: s.SearchText, PreviewIndex: s.PreviewIndex}
	}
	for i, c := range v.candidates {
		st.Candidates[i] = CandidateState{ID: c.ID, Name: c.Name, Votes: append([]int(nil), c.Votes...)}
	}
	for i, p := range v.papers {
		st.Papers[i] = PaperState{
			Choices:      append([]string(nil), p.Choices...),
			CandidateIDs: append([]int(nil), p.CandidateIDs...),
			Invalid:      p.Invalid,
			Disabled:     p.Disabled,
		}
	}
	return st
}

// FromState rebuilds a session, checking every invariant a snapshot must
// satisfy: rank count, counter lengths, unique names and IDs, paper shapes
// and the invalid tally.
func FromState(st State) (*Voting, error) {
	if err := ValidateRanks(st.Ranks); err != nil {
		return nil, err
	}
	if len(st.Selectors) != st.Ranks {
		return nil, fmt.Errorf("%w: %d selectors for %d ranks", ErrInconsistentState, len(st.Selectors), st.Ranks)
	}
	if len(st.Candidates) == 0 {
		return nil, ErrEmptyRoster
	}

	v := &Voting{
		ranks:      st.Ranks,
		path:       st.Path,
		selectors:  make([]RankSelector, st.Ranks),
		candidates: make([]Candidate, len(st.Candidates)),
		papers:     make([]BallotPaper, len(st.Papers)),
	}

	names := make(map[string]bool, len(st.Candidates))
	ids := make(map[int]bool, len(st.Candidates))
	for i, c := range st.Candidates {
		if len(c.Votes) != st.Ranks {
			return nil, fmt.Errorf("%w: candidate %q has %d counters for %d ranks", ErrInconsistentState, c.Name, len(c.Votes), st.Ranks)
		}
		if names[c.Name] || ids[c.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCandidate, c.Name)
		}
		for _, n := range c.Votes {
			if n < 0 {
				return nil, fmt.Errorf("%w: candidate %q has a negative counter", ErrInconsistentState, c.Name)
			}
		}
		names[c.Name] = true
		ids[c.ID] = true
		v.candidates[i] = Candidate{ID: c.ID, Name: c.Name, Votes: append([]int(nil), c.Votes...)}
	}

	for i, s := range st.Selectors {
		header := s.Header
		if header == "" {
			header = RankHeader(i)
		}
		v.selectors[i] = RankSelector{Header: header, SearchText: s.SearchText, PreviewIndex: s.PreviewIndex}
		v.selectors[i].clamp(v.CandidateNames())
	}

	invalid := 0
	for i, p := range st.Papers {
		if len(p.Choices) != st.Ranks {
			return nil, fmt.Errorf("%w: paper %d has %d choices for %d ranks", ErrInconsistentState, i, len(p.Choices), st.Ranks)
		}
		paper := BallotPaper{
			Choices:  append([]string(nil), p.Choices...),
			Invalid:  p.Invalid,
			Disabled: p.Disabled,
		}
		switch {
		case len(p.CandidateIDs) == st.Ranks:
			paper.CandidateIDs = append([]int(nil), p.CandidateIDs...)
		case len(p.CandidateIDs) == 0:
			// Papers written without IDs are matched by name once here.
			paper.CandidateIDs = make([]int, st.Ranks)
			for rank, name := range p.Choices {
				paper.CandidateIDs[rank] = NoCandidate
				if !p.Invalid && name != "" {
					paper.CandidateIDs[rank] = v.idByName(name)
				}
			}
		default:
			return nil, fmt.Errorf("%w: paper %d has %d candidate ids for %d ranks", ErrInconsistentState, i, len(p.CandidateIDs), st.Ranks)
		}
		if p.Invalid && !p.Disabled {
			invalid++
		}
		v.papers[i] = paper
	}
	if invalid != st.InvalidCount {
		return nil, fmt.Errorf("%w: invalid count %d but %d active invalid papers", ErrInconsistentState, st.InvalidCount, invalid)
	}
	v.invalidCount = invalid
	return v, nil
}
