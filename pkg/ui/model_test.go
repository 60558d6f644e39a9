package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/rankvote/pkg/testutil"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// recordingStore counts saves and keeps the last persisted state.
type recordingStore struct {
	saves int
	last  voting.State
	err   error
}

func (s *recordingStore) Save(v *voting.Voting) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.last = v.State()
	return nil
}

func newTestModel(t *testing.T, ranks int, names ...string) (Model, *recordingStore) {
	t.Helper()
	v, err := voting.New(names, ranks, "save.json")
	if err != nil {
		t.Fatalf("voting.New: %v", err)
	}
	store := &recordingStore{}
	return NewModel(v, store).WithTheme(TestTheme()), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyLeft      = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight     = tea.KeyMsg{Type: tea.KeyRight}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyDelete    = tea.KeyMsg{Type: tea.KeyDelete}
)

// castBallot types one search per rank and confirms on the Done button.
func castBallot(t *testing.T, m Model, searches ...string) Model {
	t.Helper()
	for _, s := range searches {
		if s != "" {
			m = press(t, m, runes(s))
		}
		m = press(t, m, keyEnter)
	}
	for i := len(searches); i < m.voting.Ranks(); i++ {
		m = press(t, m, keyEnter)
	}
	if !m.onConfirm() {
		t.Fatalf("expected focus on Done, got %d", m.focus)
	}
	m = press(t, m, keySpace)
	return press(t, m, keyEnter) // wrap focus back to the first rank
}

func TestModeToggle(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	if m.Mode() != ModeSelecting {
		t.Fatalf("expected initial mode Selecting, got %v", m.Mode())
	}
	m = press(t, m, keyRight)
	if m.Mode() != ModeReviewing {
		t.Fatalf("expected Reviewing after right, got %v", m.Mode())
	}
	m = press(t, m, keyRight)
	if m.Mode() != ModeSelecting {
		t.Fatalf("expected Selecting after second right, got %v", m.Mode())
	}
	m = press(t, m, keyLeft)
	if m.Mode() != ModeReviewing {
		t.Fatalf("expected left to toggle too, got %v", m.Mode())
	}
	if store.saves != 0 {
		t.Fatalf("mode switches should not persist, got %d saves", store.saves)
	}
}

func TestEnterWrapsFocusThroughDone(t *testing.T) {
	m, _ := newTestModel(t, 3, "Ann", "Bo")
	want := []int{1, 2, 3, 0, 1}
	for i, w := range want {
		m = press(t, m, keyEnter)
		if m.Focus() != w {
			t.Fatalf("step %d: focus = %d, want %d", i, m.Focus(), w)
		}
	}
}

func TestTypingPersistsAndResolves(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Andy", "Bo")
	m = press(t, m, runes("a"), runes("n"))
	if store.saves != 2 {
		t.Fatalf("expected a save per keystroke, got %d", store.saves)
	}
	if got := store.last.Selectors[0].SearchText; got != "an" {
		t.Fatalf("persisted search text %q", got)
	}

	m = press(t, m, keyTab)
	if name, _ := m.Voting().SelectedAt(0); name != "Andy" {
		t.Fatalf("tab should cycle to Andy, got %q", name)
	}
	m = press(t, m, keyTab)
	if name, _ := m.Voting().SelectedAt(0); name != "Ann" {
		t.Fatalf("tab should wrap to Ann, got %q", name)
	}

	m = press(t, m, keyBackspace)
	if got := m.Voting().Selector(0).SearchText; got != "a" {
		t.Fatalf("backspace left %q", got)
	}
}

func TestSpaceTypesIntoSelector(t *testing.T) {
	m, _ := newTestModel(t, 2, "Ann Lee", "Bo")
	m = press(t, m, runes("ann"), keySpace, runes("l"))
	if name, ok := m.Voting().SelectedAt(0); !ok || name != "Ann Lee" {
		t.Fatalf("expected Ann Lee, got %q, %v", name, ok)
	}
	if m.Voting().PaperCount() != 0 {
		t.Fatal("space on a selector must not cast")
	}
}

func TestOtherKeysIgnoredOnDone(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	m = press(t, m, keyEnter, keyEnter)
	m = press(t, m, runes("x"), keyTab, keyBackspace)
	if store.saves != 0 || m.Voting().PaperCount() != 0 {
		t.Fatalf("keys on Done should be ignored, saves=%d papers=%d", store.saves, m.Voting().PaperCount())
	}
}

func TestCastFromController(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	m = castBallot(t, m, "Ann", "Bo")
	m = castBallot(t, m, "Bo", "Ann")

	v := m.Voting()
	if v.PaperCount() != 2 {
		t.Fatalf("expected 2 papers, got %d", v.PaperCount())
	}
	for _, name := range []string{"Ann", "Bo"} {
		c, _ := v.CandidateByName(name)
		if c.Score() != 3 || c.FirstRankVotes() != 1 {
			t.Fatalf("%s: score=%d first=%d", name, c.Score(), c.FirstRankVotes())
		}
	}
	if len(store.last.Papers) != 2 {
		t.Fatalf("persisted %d papers", len(store.last.Papers))
	}
	if store.last.Selectors[0].SearchText != "" {
		t.Fatal("selectors should be cleared after cast")
	}
}

func TestCastDuplicateShowsInvalidStatus(t *testing.T) {
	m, _ := newTestModel(t, 2, "Ann", "Bo")
	m = castBallot(t, m, "Ann", "Ann")
	if m.Voting().InvalidCount() != 1 {
		t.Fatalf("expected one invalid ballot")
	}
	if !m.statusIsError || !strings.Contains(m.statusMsg, "invalid") {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
}

func TestReviewingWithoutPapersIsNoop(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	m = press(t, m, keyRight, keyUp, keyDown, keyDelete, runes("d"))
	if m.Cursor() != 0 || store.saves != 0 {
		t.Fatalf("expected no-op, cursor=%d saves=%d", m.Cursor(), store.saves)
	}
}

func TestReviewCursorWrapsAndUndo(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	m = castBallot(t, m, "Ann", "Bo")
	m = castBallot(t, m, "Bo")
	m = castBallot(t, m, "Ann", "Ann")
	savesBefore := store.saves

	m = press(t, m, keyRight)
	m = press(t, m, keyUp)
	if m.Cursor() != 2 {
		t.Fatalf("up from 0 should wrap to 2, got %d", m.Cursor())
	}
	m = press(t, m, keyDown)
	if m.Cursor() != 0 {
		t.Fatalf("down from 2 should wrap to 0, got %d", m.Cursor())
	}

	m = press(t, m, keyDelete)
	if c, _ := m.Voting().CandidateByName("Ann"); c.Score() != 0 {
		t.Fatalf("undo did not remove Ann's points: %d", c.Score())
	}
	if store.saves != savesBefore+1 {
		t.Fatalf("undo should persist once, saves %d -> %d", savesBefore, store.saves)
	}
	if !store.last.Papers[0].Disabled {
		t.Fatal("persisted paper not disabled")
	}

	m = press(t, m, runes("d"))
	if store.saves != savesBefore+1 {
		t.Fatal("second undo of the same paper should not persist")
	}
	if c, _ := m.Voting().CandidateByName("Bo"); c.Score() != 2 {
		t.Fatalf("double undo changed Bo's score to %d", c.Score())
	}

	m = press(t, m, keyUp, keyBackspace)
	if m.Voting().InvalidCount() != 0 {
		t.Fatalf("undo of invalid paper left count %d", m.Voting().InvalidCount())
	}
	testutil.AssertConsistent(t, m.Voting())
}

func TestSaveErrorEndsSession(t *testing.T) {
	m, store := newTestModel(t, 2, "Ann", "Bo")
	store.err = errors.New("disk full")

	updated, cmd := m.Update(runes("a"))
	m = updated.(Model)
	if m.Err() == nil || !strings.Contains(m.Err().Error(), "disk full") {
		t.Fatalf("expected save error, got %v", m.Err())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, 2, "Ann", "Bo")
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Fatalf("expected quit command for %s", msg)
		}
	}
	if _, cmd := m.Update(runes("q")); cmd != nil {
		t.Fatal("q must be typed into the selector, not quit")
	}
}

func TestWindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t, 2, "Ann", "Bo")
	m = press(t, m, tea.WindowSizeMsg{Width: 90, Height: 20})
	if m.width != 90 || m.height != 20 {
		t.Fatalf("size not applied: %dx%d", m.width, m.height)
	}
}
