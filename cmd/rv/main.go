// rv collects ranked ballots in the terminal and tallies them with Borda
// weights. The whole session lives in one JSON snapshot that is rewritten
// after every change, so quitting at any point loses nothing.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/vanderheijden86/rankvote/pkg/config"
	"github.com/vanderheijden86/rankvote/pkg/debug"
	"github.com/vanderheijden86/rankvote/pkg/metrics"
	"github.com/vanderheijden86/rankvote/pkg/version"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	debug.Close()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		os.Exit(coder.ExitCode())
	}
	os.Exit(1)
}

// usageError marks bad invocations; they exit with status 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// options holds the parsed command line.
type options struct {
	saveFile      string
	candidateFile string
	ranks         int

	format string
	chart  string
	copy   bool
	watch  bool

	showVersion bool
	help        bool
}

// resultOnlyFlags are rejected by every command except result.
var resultOnlyFlags = []string{"format", "chart", "copy", "watch"}

func newFlagSet(o *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("rv", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVarP(&o.saveFile, "save-file", "s", "", "snapshot file (default \"save.json\")")
	fs.StringVarP(&o.candidateFile, "candidate-file", "c", "", "candidate list, one name per line (default \"candidates.txt\")")
	fs.IntVarP(&o.ranks, "ranks", "n", 0, "ranks per ballot, 2-4 (default 2)")
	fs.StringVar(&o.format, "format", "text", "result: output format, text or markdown")
	fs.StringVar(&o.chart, "chart", "", "result: also write a bar chart to this .svg or .png file")
	fs.BoolVar(&o.copy, "copy", false, "result: copy the plain result to the clipboard")
	fs.BoolVar(&o.watch, "watch", false, "result: print again whenever the snapshot changes")
	fs.BoolVar(&o.showVersion, "version", false, "show version")
	fs.BoolVarP(&o.help, "help", "h", false, "show help")
	return fs
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `Usage: rv [command] [flags]

Collect ranked ballots in the terminal and tally them.

Commands:
  vote         open the voting screen (default)
  candidates   enter the candidate list
  result       print the standings
  clear        delete the candidate list and the snapshot

Flags:
%s
Configuration is read from %s.
Environment: %s, %s, %s, RV_DEBUG, RV_DEBUG_LOG.
`, fs.FlagUsages(), config.ConfigPath(), config.EnvRanks, config.EnvSaveFile, config.EnvCandidateFile)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet(&o, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, fs)
			return nil
		}
		return &usageError{err: err}
	}
	if o.help {
		printHelp(stdout, fs)
		return nil
	}
	if o.showVersion {
		fmt.Fprintf(stdout, "rv %s\n", version.Version)
		return nil
	}

	command := "vote"
	rest := fs.Args()
	if len(rest) > 0 {
		command = rest[0]
	}
	if len(rest) > 1 {
		return usageErrorf("unexpected argument %q", rest[1])
	}
	if command != "result" {
		for _, name := range resultOnlyFlags {
			if fs.Changed(name) {
				return usageErrorf("--%s is only valid with 'rv result'", name)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	resolved, err := cfg.Resolve(config.Overrides{
		Ranks:         o.ranks,
		SaveFile:      o.saveFile,
		CandidateFile: o.candidateFile,
	})
	if err != nil {
		return err
	}
	if err := voting.ValidateRanks(resolved.Ranks); err != nil {
		return err
	}
	debug.Log("command=%s ranks=%d (explicit=%v) save=%s candidates=%s",
		command, resolved.Ranks, resolved.RanksExplicit, resolved.SaveFile, resolved.CandidateFile)
	defer dumpMetrics()

	switch command {
	case "vote":
		return runVote(resolved)
	case "candidates":
		return runCandidates(stdout, stderr, resolved)
	case "result":
		return runResult(ctx, stdout, stderr, resolved, o)
	case "clear":
		return runClear(stdout, resolved)
	default:
		return usageErrorf("unknown command %q (see 'rv --help')", command)
	}
}

func dumpMetrics() {
	for _, s := range metrics.AllStats() {
		debug.Log("metric %s: count=%d avg=%v max=%v", s.Name, s.Count, s.Avg, s.Max)
	}
}
