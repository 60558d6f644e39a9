package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/rankvote/pkg/config"
	"github.com/vanderheijden86/rankvote/pkg/debug"
	"github.com/vanderheijden86/rankvote/pkg/export"
	"github.com/vanderheijden86/rankvote/pkg/loader"
	"github.com/vanderheijden86/rankvote/pkg/ui"
	"github.com/vanderheijden86/rankvote/pkg/watcher"
)

func loaderOptions(r config.Resolved) loader.Options {
	return loader.Options{
		SnapshotPath:  r.SaveFile,
		CandidatePath: r.CandidateFile,
		Ranks:         r.Ranks,
		RanksExplicit: r.RanksExplicit,
	}
}

// runVote opens the voting screen. A session built from the candidate list
// is saved before the first key so the snapshot exists from the start.
func runVote(r config.Resolved) error {
	v, src, err := loader.LoadVoting(loaderOptions(r))
	if err != nil {
		return err
	}
	if src == loader.SourceCandidates {
		if err := loader.SaveSnapshot(v); err != nil {
			return err
		}
	}

	m := ui.NewModel(v, loader.FileStore{}).WithShowHelp(r.ShowHelp)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running voting screen: %w", err)
	}
	if fm, ok := final.(ui.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runCandidates(stdout, stderr io.Writer, r config.Resolved) error {
	existing, err := loader.LoadCandidateNames(r.CandidateFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading candidate list: %w", err)
	}

	names, err := ui.RunCandidateEntry(existing)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(stderr, "aborted, candidate list unchanged")
		return nil
	}
	if err != nil {
		return err
	}

	if err := loader.SaveCandidateNames(r.CandidateFile, names); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved %d candidates to %s\n", len(names), r.CandidateFile)
	if _, err := os.Stat(r.SaveFile); err == nil {
		fmt.Fprintf(stderr, "note: %s exists and is used instead of the list; run 'rv clear' to start over\n", r.SaveFile)
	}
	return nil
}

func runResult(ctx context.Context, stdout, stderr io.Writer, r config.Resolved, o options) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return &usageError{err: err}
	}

	show := func() error {
		v, _, err := loader.LoadVoting(loaderOptions(r))
		if err != nil {
			return err
		}
		res := export.NewResult(v)
		if err := writeResult(stdout, res, format); err != nil {
			return err
		}
		if o.chart != "" {
			if err := export.SaveChart(res, export.ChartOptions{Path: o.chart}); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Fprintf(stderr, "wrote chart to %s\n", o.chart)
		}
		if o.copy {
			if err := export.CopyText(res.Text()); err != nil {
				return err
			}
			fmt.Fprintln(stderr, "copied result to clipboard")
		}
		return nil
	}

	if err := show(); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	return watchResult(ctx, stdout, stderr, r.SaveFile, show)
}

func writeResult(w io.Writer, res export.Result, format export.Format) error {
	if format != export.FormatMarkdown {
		return export.WriteText(w, res)
	}
	out, err := export.RenderMarkdown(export.GenerateMarkdown(res, "Results"), 80)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// watchResult calls show after every change to the snapshot until ctx is
// done or the process is interrupted.
func watchResult(ctx context.Context, stdout, stderr io.Writer, path string, show func() error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	w, err := watcher.New(path, watcher.WithOnError(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Stop()
	fmt.Fprintf(stderr, "watching %s, ctrl+c to stop\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			fmt.Fprintf(stdout, "\n-- updated %s --\n", time.Now().Format("15:04:05"))
			if err := show(); err != nil {
				if errors.Is(err, loader.ErrCorruptSnapshot) {
					fmt.Fprintf(stderr, "skipping unreadable snapshot: %v\n", err)
					continue
				}
				return err
			}
		case err := <-errCh:
			if errors.Is(err, watcher.ErrFileRemoved) {
				return fmt.Errorf("%s: %w", path, err)
			}
			debug.Log("watch %s: %v", path, err)
		}
	}
}

func runClear(stdout io.Writer, r config.Resolved) error {
	removed, err := loader.RemoveFiles(r.CandidateFile, r.SaveFile)
	for _, p := range removed {
		fmt.Fprintf(stdout, "removed %s\n", p)
	}
	return err
}
