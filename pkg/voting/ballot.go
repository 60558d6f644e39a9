package voting

// InvalidChoice is the text recorded at every rank of an invalid ballot.
const InvalidChoice = "invalid"

// NoCandidate marks an empty rank in BallotPaper.CandidateIDs.
const NoCandidate = -1

// BallotPaper is the record of one cast vote. Choices holds the display name
// per rank ("" for an empty rank); CandidateIDs holds the matching stable IDs
// and is what Undo uses to find the counters again.
type BallotPaper struct {
	Choices      []string
	CandidateIDs []int
	Invalid      bool
	Disabled     bool
}

func newInvalidPaper(ranks int) BallotPaper {
	p := BallotPaper{
		Choices:      make([]string, ranks),
		CandidateIDs: make([]int, ranks),
		Invalid:      true,
	}
	for i := range p.Choices {
		p.Choices[i] = InvalidChoice
		p.CandidateIDs[i] = NoCandidate
	}
	return p
}

// Active reports whether the paper still counts toward the tally.
func (p BallotPaper) Active() bool {
	return !p.Disabled
}

func (p BallotPaper) clone() BallotPaper {
	p.Choices = append([]string(nil), p.Choices...)
	p.CandidateIDs = append([]int(nil), p.CandidateIDs...)
	return p
}
