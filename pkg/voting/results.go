package voting

import "sort"

// Standing is one line of the result view.
type Standing struct {
	Name           string
	Score          int
	FirstRankVotes int
}

// Results ranks the roster by descending score, then by descending first-rank
// votes. Candidates still tied keep their roster order.
func (v *Voting) Results() []Standing {
	out := make([]Standing, len(v.candidates))
	for i, c := range v.candidates {
		out[i] = Standing{
			Name:           c.Name,
			Score:          c.Score(),
			FirstRankVotes: c.FirstRankVotes(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FirstRankVotes > out[j].FirstRankVotes
	})
	return out
}
