package voting

import (
	"fmt"
	"strings"
)

// Candidate is one entry of the roster together with its per-rank counters.
// Votes[i] counts how many valid ballots placed the candidate at rank i.
type Candidate struct {
	ID    int
	Name  string
	Votes []int
}

func newCandidate(id int, name string, ranks int) Candidate {
	return Candidate{
		ID:    id,
		Name:  name,
		Votes: make([]int, ranks),
	}
}

// Score returns the Borda-style weighted total: the first rank is worth
// len(Votes) points, the last rank 1 point.
func (c Candidate) Score() int {
	size := len(c.Votes)
	total := 0
	for i, count := range c.Votes {
		total += (size - i) * count
	}
	return total
}

// FirstRankVotes returns the number of first-choice votes, used as tie-breaker.
func (c Candidate) FirstRankVotes() int {
	if len(c.Votes) == 0 {
		return 0
	}
	return c.Votes[0]
}

func (c *Candidate) vote(rank int) {
	c.Votes[rank]++
}

func (c *Candidate) unvote(rank int) {
	if c.Votes[rank] > 0 {
		c.Votes[rank]--
	}
}

// NewRoster builds candidates from names, assigning stable IDs in order.
// Blank names are skipped; duplicate names are rejected since ballots are
// displayed by name.
func NewRoster(names []string, ranks int) ([]Candidate, error) {
	if err := ValidateRanks(ranks); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	roster := make([]Candidate, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCandidate, name)
		}
		seen[name] = true
		roster = append(roster, newCandidate(len(roster), name, ranks))
	}
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	return roster, nil
}
