package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// finishWord ends candidate entry, as does an empty name.
const finishWord = "quit"

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// candidateNameValidator rejects names already on the roster. Blank input
// and the finish word pass, since they end the entry loop.
func candidateNameValidator(existing []string) func(string) error {
	return func(s string) error {
		name := strings.TrimSpace(s)
		if name == "" || name == finishWord {
			return nil
		}
		for _, e := range existing {
			if e == name {
				return fmt.Errorf("%q is already on the list", name)
			}
		}
		return nil
	}
}

// isFinish reports whether input ends the entry loop.
func isFinish(input string) bool {
	name := strings.TrimSpace(input)
	return name == "" || name == finishWord
}

// RunCandidateEntry prompts for candidate names one at a time, starting from
// existing, until an empty name or "quit" is entered. It returns the full
// list. If the user aborts with ctrl+c the names entered so far are returned
// together with huh.ErrUserAborted.
func RunCandidateEntry(existing []string) ([]string, error) {
	names := append([]string(nil), existing...)
	if len(names) > 0 {
		fmt.Printf("%d candidates on the list: %s\n\n", len(names), strings.Join(names, ", "))
	}

	for {
		var input string
		form := newForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Candidate %d", len(names)+1)).
					Description("Leave empty or type quit to finish").
					Value(&input).
					Validate(candidateNameValidator(names)),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return names, err
			}
			return names, fmt.Errorf("candidate entry: %w", err)
		}
		if isFinish(input) {
			return names, nil
		}
		names = append(names, strings.TrimSpace(input))
	}
}
