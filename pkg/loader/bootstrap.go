// Package loader reads and writes the files a voting session lives in: the
// plain-text candidate list consumed on a first run and the JSON snapshot
// that holds the whole session afterwards.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/vanderheijden86/rankvote/pkg/debug"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// Startup errors.
var (
	ErrNoInput      = errors.New("no snapshot or candidate list found")
	ErrRankMismatch = errors.New("rank count does not match snapshot")
)

// Source says where a session was loaded from.
type Source int

const (
	SourceSnapshot Source = iota
	SourceCandidates
)

func (s Source) String() string {
	if s == SourceSnapshot {
		return "snapshot"
	}
	return "candidate list"
}

// Options locates the session files.
type Options struct {
	SnapshotPath  string
	CandidatePath string
	Ranks         int
	// RanksExplicit is set when Ranks came from a flag, env var or config
	// file rather than the built-in default. Only then is a snapshot with a
	// different rank count an error; otherwise the snapshot's count wins.
	RanksExplicit bool
}

func (o Options) withDefaults() Options {
	if o.SnapshotPath == "" {
		o.SnapshotPath = DefaultSnapshotFile
	}
	if o.CandidatePath == "" {
		o.CandidatePath = DefaultCandidateFile
	}
	if o.Ranks == 0 {
		o.Ranks = voting.MinRanks
	}
	return o
}

// LoadVoting restores the session from the snapshot if one exists, and
// otherwise builds a fresh one from the candidate list. A snapshot that fails
// to parse is an error; the candidate list is never used as a fallback.
func LoadVoting(opts Options) (*voting.Voting, Source, error) {
	opts = opts.withDefaults()
	if err := voting.ValidateRanks(opts.Ranks); err != nil {
		return nil, 0, err
	}

	v, err := LoadSnapshot(opts.SnapshotPath)
	switch {
	case err == nil:
		if opts.RanksExplicit && v.Ranks() != opts.Ranks {
			return nil, 0, fmt.Errorf("%w: configured %d, %s has %d",
				ErrRankMismatch, opts.Ranks, opts.SnapshotPath, v.Ranks())
		}
		debug.Log("loaded snapshot %s (%d papers)", opts.SnapshotPath, v.PaperCount())
		return v, SourceSnapshot, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, 0, err
	}

	names, err := LoadCandidateNames(opts.CandidatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: neither %s nor %s exists (run 'rv candidates' first)",
				ErrNoInput, opts.SnapshotPath, opts.CandidatePath)
		}
		return nil, 0, fmt.Errorf("reading candidate list: %w", err)
	}
	v, err = voting.New(names, opts.Ranks, opts.SnapshotPath)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opts.CandidatePath, err)
	}
	debug.Log("built session from %s (%d candidates, %d ranks)", opts.CandidatePath, len(names), opts.Ranks)
	return v, SourceCandidates, nil
}

// RemoveFiles deletes the given files and returns the ones that existed.
func RemoveFiles(paths ...string) ([]string, error) {
	var removed []string
	for _, p := range paths {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case errors.Is(err, os.ErrNotExist):
		default:
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return removed, nil
}
