package voting

import (
	"errors"
	"reflect"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	v := newTestVoting(t, 3, "Ann", "Andy", "Bo")
	fill(t, v, "Ann", "Bo", "")
	v.Cast()
	fill(t, v, "Bo", "Bo", "")
	v.Cast()
	fill(t, v, "an", "", "b")
	v.Cast()
	if _, err := v.Undo(0); err != nil {
		t.Fatal(err)
	}
	fill(t, v, "an")
	_ = v.Cycle(0)

	restored, err := FromState(v.State())
	if err != nil {
		t.Fatalf("FromState: %v", err)
	}
	if !reflect.DeepEqual(restored.State(), v.State()) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", restored.State(), v.State())
	}
	if got, ok := restored.SelectedAt(0); !ok || got != "Andy" {
		t.Fatalf("restored selector resolves to %q, %v", got, ok)
	}
}

func TestStateIsDeepCopy(t *testing.T) {
	v := newTestVoting(t, 2, "Ann", "Bo")
	fill(t, v, "Ann", "Bo")
	v.Cast()

	st := v.State()
	st.Candidates[0].Votes[0] = 42
	st.Papers[0].Choices[0] = "Bo"
	if scoreOf(t, v, "Ann") != 2 {
		t.Fatal("State shares counters with the session")
	}
	if p, _ := v.Paper(0); p.Choices[0] != "Ann" {
		t.Fatal("State shares paper choices with the session")
	}
}

func TestFromStateRejectsInconsistentData(t *testing.T) {
	base := func() State {
		v, _ := New([]string{"Ann", "Bo"}, 2, "save.json")
		_ = v.Type(0, "Ann")
		_ = v.Type(1, "Ann")
		v.Cast()
		return v.State()
	}

	tests := []struct {
		name   string
		mutate func(*State)
		want   error
	}{
		{"rank count", func(s *State) { s.Ranks = 5 }, ErrTooManyRanks},
		{"selector count", func(s *State) { s.Selectors = s.Selectors[:1] }, ErrInconsistentState},
		{"counter length", func(s *State) { s.Candidates[1].Votes = []int{0} }, ErrInconsistentState},
		{"negative counter", func(s *State) { s.Candidates[0].Votes[1] = -1 }, ErrInconsistentState},
		{"duplicate name", func(s *State) { s.Candidates[1].Name = "Ann" }, ErrDuplicateCandidate},
		{"invalid tally", func(s *State) { s.InvalidCount = 0 }, ErrInconsistentState},
		{"paper shape", func(s *State) { s.Papers[0].Choices = []string{"invalid"} }, ErrInconsistentState},
		{"empty roster", func(s *State) { s.Candidates = nil }, ErrEmptyRoster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := base()
			tt.mutate(&st)
			if _, err := FromState(st); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFromStateResolvesLegacyPapersByName(t *testing.T) {
	st := State{
		Ranks: 2,
		Selectors: []SelectorState{
			{Header: "First"}, {Header: "Second"},
		},
		Candidates: []CandidateState{
			{ID: 0, Name: "Ann", Votes: []int{1, 0}},
			{ID: 1, Name: "Bo", Votes: []int{0, 1}},
		},
		Papers: []PaperState{
			{Choices: []string{"Ann", "Bo"}},
		},
	}
	v, err := FromState(st)
	if err != nil {
		t.Fatalf("FromState: %v", err)
	}
	if _, err := v.Undo(0); err != nil {
		t.Fatal(err)
	}
	if v.TotalScore() != 0 {
		t.Fatalf("undo of a legacy paper left score %d", v.TotalScore())
	}
}
