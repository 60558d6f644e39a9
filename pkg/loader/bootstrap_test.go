package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/rankvote/pkg/voting"
)

func TestLoadVotingFromCandidates(t *testing.T) {
	dir := t.TempDir()
	cands := filepath.Join(dir, "candidates.txt")
	if err := os.WriteFile(cands, []byte("Ann\nBo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap := filepath.Join(dir, "save.json")

	v, src, err := LoadVoting(Options{SnapshotPath: snap, CandidatePath: cands, Ranks: 3, RanksExplicit: true})
	if err != nil {
		t.Fatalf("LoadVoting: %v", err)
	}
	if src != SourceCandidates {
		t.Fatalf("expected candidate source, got %v", src)
	}
	if v.Ranks() != 3 || v.Path() != snap || len(v.Candidates()) != 2 {
		t.Fatalf("unexpected session: ranks=%d path=%s candidates=%d", v.Ranks(), v.Path(), len(v.Candidates()))
	}
}

func TestLoadVotingPrefersSnapshot(t *testing.T) {
	dir := t.TempDir()
	cands := filepath.Join(dir, "candidates.txt")
	if err := os.WriteFile(cands, []byte("Zed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap := filepath.Join(dir, "save.json")
	if err := SaveSnapshot(sampleVoting(t, snap)); err != nil {
		t.Fatal(err)
	}

	v, src, err := LoadVoting(Options{SnapshotPath: snap, CandidatePath: cands})
	if err != nil {
		t.Fatalf("LoadVoting: %v", err)
	}
	if src != SourceSnapshot {
		t.Fatalf("expected snapshot source, got %v", src)
	}
	if _, ok := v.CandidateByName("Zed"); ok {
		t.Fatal("candidate list should be ignored when a snapshot exists")
	}
	if v.Ranks() != 3 {
		t.Fatalf("expected snapshot rank count 3 to win over the default, got %d", v.Ranks())
	}
}

func TestLoadVotingRankMismatch(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "save.json")
	if err := SaveSnapshot(sampleVoting(t, snap)); err != nil {
		t.Fatal(err)
	}
	_, _, err := LoadVoting(Options{SnapshotPath: snap, Ranks: 2, RanksExplicit: true})
	if !errors.Is(err, ErrRankMismatch) {
		t.Fatalf("expected ErrRankMismatch, got %v", err)
	}
}

func TestLoadVotingErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadVoting(Options{
		SnapshotPath:  filepath.Join(dir, "missing.json"),
		CandidatePath: filepath.Join(dir, "missing.txt"),
	})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}

	_, _, err = LoadVoting(Options{SnapshotPath: filepath.Join(dir, "x.json"), Ranks: 5})
	if !errors.Is(err, voting.ErrTooManyRanks) {
		t.Fatalf("expected ErrTooManyRanks, got %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	cands := filepath.Join(dir, "candidates.txt")
	_ = os.WriteFile(corrupt, []byte("not json"), 0o644)
	_ = os.WriteFile(cands, []byte("Ann\n"), 0o644)
	_, _, err = LoadVoting(Options{SnapshotPath: corrupt, CandidatePath: cands})
	if !errors.Is(err, ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot without fallback, got %v", err)
	}
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	_ = os.WriteFile(a, nil, 0o644)

	removed, err := RemoveFiles(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != a {
		t.Fatalf("unexpected removed list %v", removed)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Fatal("file a still exists")
	}
}
