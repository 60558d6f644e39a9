package testutil

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// AssertConsistent runs every tally check against v.
func AssertConsistent(t testing.TB, v *voting.Voting) {
	t.Helper()
	AssertInvalidCount(t, v)
	AssertVotesMatchPapers(t, v)
	AssertStandingsOrdered(t, v.Results())
}

// AssertInvalidCount verifies the invalid tally equals the number of active
// invalid papers.
func AssertInvalidCount(t testing.TB, v *voting.Voting) {
	t.Helper()
	want := 0
	for _, p := range v.Papers() {
		if p.Active() && p.Invalid {
			want++
		}
	}
	if got := v.InvalidCount(); got != want {
		t.Errorf("invalid count %d, active invalid papers %d", got, want)
	}
}

// AssertVotesMatchPapers recounts every candidate's per-rank votes from the
// active valid papers and compares them with the stored counters.
func AssertVotesMatchPapers(t testing.TB, v *voting.Voting) {
	t.Helper()
	want := make(map[int][]int)
	for _, c := range v.Candidates() {
		want[c.ID] = make([]int, v.Ranks())
	}
	for i, p := range v.Papers() {
		if !p.Active() || p.Invalid {
			continue
		}
		for rank, id := range p.CandidateIDs {
			if id == voting.NoCandidate {
				continue
			}
			if _, ok := want[id]; !ok {
				t.Errorf("paper %d rank %d names unknown candidate %d", i, rank, id)
				continue
			}
			want[id][rank]++
		}
	}
	for _, c := range v.Candidates() {
		for _, n := range c.Votes {
			if n < 0 {
				t.Errorf("%s has a negative counter: %v", c.Name, c.Votes)
			}
		}
		if !reflect.DeepEqual(c.Votes, want[c.ID]) {
			t.Errorf("%s votes %v, recounted %v", c.Name, c.Votes, want[c.ID])
		}
	}
}

// AssertStandingsOrdered verifies descending score, then descending
// first-rank votes.
func AssertStandingsOrdered(t testing.TB, standings []voting.Standing) {
	t.Helper()
	for i := 1; i < len(standings); i++ {
		prev, cur := standings[i-1], standings[i]
		if cur.Score > prev.Score ||
			(cur.Score == prev.Score && cur.FirstRankVotes > prev.FirstRankVotes) {
			t.Errorf("standing %d (%+v) ranks above %d (%+v)", i, cur, i-1, prev)
		}
	}
}
