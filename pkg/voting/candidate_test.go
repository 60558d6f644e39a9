package voting

import (
	"errors"
	"testing"
)

func TestCandidateScore(t *testing.T) {
	c := newCandidate(0, "test", 4)

	c.vote(1)
	c.vote(3)
	c.vote(3)
	c.vote(0)

	if got := c.FirstRankVotes(); got != 1 {
		t.Errorf("FirstRankVotes = %d, want 1", got)
	}
	if got, want := c.Score(), 1+1+3+4; got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}
}

func TestCandidateUnvote(t *testing.T) {
	c := newCandidate(0, "test", 4)

	c.vote(1)
	c.vote(0)
	c.unvote(0)
	c.vote(3)

	if got := c.FirstRankVotes(); got != 0 {
		t.Errorf("FirstRankVotes = %d, want 0", got)
	}
	if got, want := c.Score(), 3+1; got != want {
		t.Errorf("Score = %d, want %d", got, want)
	}
}

func TestCandidateUnvoteNeverNegative(t *testing.T) {
	c := newCandidate(0, "test", 2)
	c.unvote(1)
	if c.Votes[1] != 0 {
		t.Fatalf("counter went negative: %v", c.Votes)
	}
}

func TestNewRoster(t *testing.T) {
	roster, err := NewRoster([]string{"Ann", "", "  ", "Bo"}, 3)
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(roster))
	}
	for i, c := range roster {
		if c.ID != i {
			t.Errorf("candidate %q has ID %d, want %d", c.Name, c.ID, i)
		}
		if len(c.Votes) != 3 {
			t.Errorf("candidate %q has %d counters, want 3", c.Name, len(c.Votes))
		}
	}
}

func TestNewRosterErrors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		ranks int
		want  error
	}{
		{"duplicate", []string{"Ann", "Bo", "Ann"}, 2, ErrDuplicateCandidate},
		{"empty", []string{"", " "}, 2, ErrEmptyRoster},
		{"too many ranks", []string{"Ann"}, 5, ErrTooManyRanks},
		{"too few ranks", []string{"Ann"}, 1, ErrTooFewRanks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.names, tt.ranks)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewRosterCaseSensitiveNames(t *testing.T) {
	if _, err := NewRoster([]string{"ann", "Ann"}, 2); err != nil {
		t.Fatalf("names differing only in case should be distinct: %v", err)
	}
}
