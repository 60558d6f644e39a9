package testutil

import (
	"os"
	"reflect"
	"testing"

	"github.com/vanderheijden86/rankvote/pkg/voting"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := MustSession(t, DefaultConfig())
	b := MustSession(t, DefaultConfig())
	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Fatal("same seed produced different sessions")
	}
}

func TestGeneratorRosterDistinct(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Candidates = 40
	names := New(cfg).Roster()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
}

func TestGeneratedSessionsAreConsistent(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		cfg.Ranks = int(seed%3) + voting.MinRanks
		cfg.InvalidRate = 0.3
		cfg.UndoRate = 0.3
		v := MustSession(t, cfg)

		if v.PaperCount() != cfg.Ballots {
			t.Fatalf("seed %d: %d papers, want %d", seed, v.PaperCount(), cfg.Ballots)
		}
		AssertConsistent(t, v)
	}
}

func TestGeneratorProducesInvalidBallots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InvalidRate = 1
	cfg.UndoRate = 0
	v := MustSession(t, cfg)
	if v.InvalidCount() != cfg.Ballots {
		t.Fatalf("invalid count %d, want %d", v.InvalidCount(), cfg.Ballots)
	}
}

func TestCastAndWriteCandidateFile(t *testing.T) {
	v, err := voting.New([]string{"Ann", "Bo"}, 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := Cast(v, "ann", "bo"); err != nil {
		t.Fatal(err)
	}
	if c, _ := v.CandidateByName("Ann"); c.Score() != 2 {
		t.Fatalf("Ann score %d, want 2", c.Score())
	}
	if err := Cast(v, "a", "b", "c"); err == nil {
		t.Fatal("expected error for a rank beyond the ballot")
	}

	path := WriteCandidateFile(t, t.TempDir(), "Ann", "Bo")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Ann\nBo" {
		t.Fatalf("candidate file %q", data)
	}
}
