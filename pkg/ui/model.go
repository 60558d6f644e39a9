// Package ui implements the interactive voting screen: a bubbletea model that
// routes keys to the rank selectors or to the ballot list, persists the
// session after every change and renders roster, ballot form and papers side
// by side.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/rankvote/pkg/debug"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// Default dimensions used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 40
)

// Mode is the screen the keys currently act on.
type Mode int

const (
	// ModeSelecting edits the rank selectors of the next ballot.
	ModeSelecting Mode = iota
	// ModeReviewing browses cast papers for undo.
	ModeReviewing
)

// String returns a human-readable label for the mode
func (m Mode) String() string {
	if m == ModeReviewing {
		return "REVIEW"
	}
	return "VOTE"
}

func (m Mode) toggle() Mode {
	if m == ModeSelecting {
		return ModeReviewing
	}
	return ModeSelecting
}

// SnapshotStore persists the complete session.
type SnapshotStore interface {
	Save(v *voting.Voting) error
}

// Model is the bubbletea model of the voting screen.
type Model struct {
	voting *voting.Voting
	store  SnapshotStore
	theme  Theme
	keys   keyMap
	help   help.Model

	mode   Mode
	focus  int // 0..ranks-1 are selectors, ranks is the Done button
	cursor int // paper under the review cursor

	width    int
	height   int
	showHelp bool

	statusMsg     string
	statusIsError bool
	err           error
}

// NewModel creates the voting screen for a loaded session.
func NewModel(v *voting.Voting, store SnapshotStore) Model {
	return Model{
		voting:   v,
		store:    store,
		theme:    DefaultTheme(lipgloss.DefaultRenderer()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
		showHelp: true,
	}
}

// WithShowHelp toggles the key help footer.
func (m Model) WithShowHelp(show bool) Model {
	m.showHelp = show
	return m
}

// WithTheme replaces the theme.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Mode returns the active mode.
func (m Model) Mode() Mode { return m.mode }

// Focus returns the focused slot; Ranks() means the Done button.
func (m Model) Focus() int { return m.focus }

// Cursor returns the review cursor.
func (m Model) Cursor() int { return m.cursor }

// Voting returns the session the model edits.
func (m Model) Voting() *voting.Voting { return m.voting }

func (m Model) onConfirm() bool {
	return m.focus == m.voting.Ranks()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.SwitchMode) {
			m.mode = m.mode.toggle()
			m.clampCursor()
			m.statusMsg = ""
			return m, nil
		}

		var changed bool
		switch m.mode {
		case ModeSelecting:
			m, changed = m.handleSelectingKeys(msg)
		case ModeReviewing:
			m, changed = m.handleReviewingKeys(msg)
		}

		if changed {
			if err := m.store.Save(m.voting); err != nil {
				m.err = fmt.Errorf("saving snapshot: %w", err)
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) handleSelectingKeys(msg tea.KeyMsg) (Model, bool) {
	if key.Matches(msg, m.keys.Next) {
		m.focus = (m.focus + 1) % (m.voting.Ranks() + 1)
		return m, false
	}

	if m.onConfirm() {
		if !key.Matches(msg, m.keys.Confirm) {
			return m, false
		}
		paper := m.voting.Cast()
		n := m.voting.PaperCount()
		if paper.Invalid {
			m.statusMsg = fmt.Sprintf("Paper %d recorded as invalid", n)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Paper %d cast", n)
			m.statusIsError = false
		}
		debug.Log("cast paper %d invalid=%v choices=%q", n, paper.Invalid, paper.Choices)
		return m, true
	}

	var err error
	switch {
	case key.Matches(msg, m.keys.Cycle):
		err = m.voting.Cycle(m.focus)
	case key.Matches(msg, m.keys.Backspace):
		err = m.voting.Backspace(m.focus)
	case msg.Type == tea.KeySpace:
		err = m.voting.Type(m.focus, " ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		err = m.voting.Type(m.focus, string(msg.Runes))
	default:
		return m, false
	}
	debug.AssertNoError(err, "selector key")
	if err != nil {
		return m, false
	}
	m.statusMsg = ""
	return m, true
}

func (m Model) handleReviewingKeys(msg tea.KeyMsg) (Model, bool) {
	n := m.voting.PaperCount()
	if n == 0 {
		return m, false
	}
	m.clampCursor()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + n) % n
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, m.keys.Undo):
		changed, err := m.voting.Undo(m.cursor)
		debug.AssertNoError(err, "undo")
		if err != nil {
			m.statusMsg = err.Error()
			m.statusIsError = true
			return m, false
		}
		if !changed {
			m.statusMsg = fmt.Sprintf("Paper %d was already undone", m.cursor+1)
			m.statusIsError = false
			return m, false
		}
		m.statusMsg = fmt.Sprintf("Paper %d undone", m.cursor+1)
		m.statusIsError = false
		debug.Log("undo paper %d", m.cursor+1)
		return m, true
	}
	return m, false
}

func (m *Model) clampCursor() {
	n := m.voting.PaperCount()
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}
