// Package testutil builds deterministic voting sessions and checks the tally
// invariants shared by the packages that mutate or persist a session.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// GeneratorConfig controls session generation.
type GeneratorConfig struct {
	Seed        int64   // Random seed for determinism
	Candidates  int     // Roster size
	Ranks       int     // Ranks per ballot
	Ballots     int     // Ballots to cast
	InvalidRate float64 // Share of ballots with a duplicate or unknown name
	PartialRate float64 // Share of ballots leaving the last rank blank
	UndoRate    float64 // Share of cast ballots undone afterwards
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		Candidates:  5,
		Ranks:       3,
		Ballots:     40,
		InvalidRate: 0.1,
		PartialRate: 0.2,
		UndoRate:    0.1,
	}
}

var firstNames = []string{
	"Ann", "Andy", "Bo", "Cy", "Dana", "Eli", "Fay", "Gus", "Hana", "Ivo",
	"Jo", "Kai", "Lea", "Mo", "Nia", "Otto",
}

// Generator creates voting sessions from a seeded source.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a generator.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Ranks == 0 {
		cfg.Ranks = voting.MinRanks
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Roster returns cfg.Candidates distinct names.
func (g *Generator) Roster() []string {
	names := make([]string, g.cfg.Candidates)
	for i := range names {
		names[i] = firstNames[i%len(firstNames)]
		if round := i / len(firstNames); round > 0 {
			names[i] = fmt.Sprintf("%s %d", names[i], round+1)
		}
	}
	return names
}

// Ballot returns one search string per rank. Valid ballots spell out
// distinct names, sometimes as a lower-case prefix.
func (g *Generator) Ballot(names []string) []string {
	ranks := g.cfg.Ranks
	searches := make([]string, ranks)
	for i, idx := range g.rng.Perm(len(names)) {
		if i == ranks {
			break
		}
		searches[i] = g.abbreviate(names[idx])
	}

	roll := g.rng.Float64()
	switch {
	case roll < g.cfg.InvalidRate/2 && ranks > 1:
		searches[1] = searches[0]
	case roll < g.cfg.InvalidRate:
		searches[0] = "zzz-nobody"
	case roll < g.cfg.InvalidRate+g.cfg.PartialRate:
		searches[ranks-1] = ""
	}
	return searches
}

// abbreviate returns the full name or a lower-case prefix that still
// resolves to it first.
func (g *Generator) abbreviate(name string) string {
	if g.rng.Intn(2) == 0 {
		return name
	}
	return strings.ToLower(name)
}

// Session builds a voting session and casts cfg.Ballots ballots into it.
func (g *Generator) Session() (*voting.Voting, error) {
	names := g.Roster()
	v, err := voting.New(names, g.cfg.Ranks, "")
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.cfg.Ballots; i++ {
		if err := Cast(v, g.Ballot(names)...); err != nil {
			return nil, err
		}
	}
	for i := 0; i < v.PaperCount(); i++ {
		if g.rng.Float64() < g.cfg.UndoRate {
			if _, err := v.Undo(i); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// Cast types one search per rank and casts the ballot.
func Cast(v *voting.Voting, searches ...string) error {
	for rank, s := range searches {
		if err := v.Type(rank, s); err != nil {
			return fmt.Errorf("rank %d: %w", rank, err)
		}
	}
	v.Cast()
	return nil
}

// MustSession generates a session or fails the test.
func MustSession(t testing.TB, cfg GeneratorConfig) *voting.Voting {
	t.Helper()
	v, err := New(cfg).Session()
	if err != nil {
		t.Fatalf("generate session: %v", err)
	}
	return v
}

// WriteCandidateFile writes names one per line into dir and returns the path.
func WriteCandidateFile(t testing.TB, dir string, names ...string) string {
	t.Helper()
	path := filepath.Join(dir, "candidates.txt")
	if err := os.WriteFile(path, []byte(strings.Join(names, "\n")), 0o644); err != nil {
		t.Fatalf("write candidate file: %v", err)
	}
	return path
}
