package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/rankvote/pkg/metrics"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

const footerHeight = 2

// ballotWindow returns the half-open range of papers that fit in height
// lines when each paper takes ranks+2 lines (header, choices, spacer). The
// window starts half a screen above the cursor.
func ballotWindow(cursor, count, ranks, height int) (start, end int) {
	if count <= 0 {
		return 0, 0
	}
	visible := height / (ranks + 2)
	if visible < 1 {
		visible = 1
	}
	start = cursor - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > count {
		end = count
	}
	return start, end
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	colWidth := m.width / 3
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	inner := colWidth - 2 // border
	if inner < 10 {
		inner = 10
	}
	content := inner - 2 // padding

	panel := func(content string, focused bool) string {
		style := PanelStyle
		if focused {
			style = FocusedPanelStyle
		}
		return style.Padding(0, 1).Width(inner).Height(bodyHeight - 2).Render(content)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(m.renderRoster(content), false),
		panel(m.renderSelectors(content), m.mode == ModeSelecting),
		panel(m.renderPapers(content, bodyHeight-3), m.mode == ModeReviewing),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) renderRoster(width int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("Candidates"))
	b.WriteString("\n")
	b.WriteString(t.MutedText.Render(fmt.Sprintf("%d invalid", m.voting.InvalidCount())))
	b.WriteString("\n")

	for _, c := range m.voting.Candidates() {
		prefix := fmt.Sprintf("%d|%d ", c.Score(), c.FirstRankVotes())
		name := truncate(c.Name, width-len(prefix))
		b.WriteString(t.Score.Render(fmt.Sprintf("%d", c.Score())))
		b.WriteString(t.MutedText.Render(fmt.Sprintf("|%d ", c.FirstRankVotes())))
		b.WriteString(name)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSelectors(width int) string {
	t := m.theme
	names := m.voting.CandidateNames()
	var b strings.Builder

	for rank, s := range m.voting.Selectors() {
		header := t.Title.Render(s.Header)
		if !m.voting.SelectorValid(rank) {
			header += " " + t.InvalidMark.Render("✗")
		}
		if matches := s.Matches(names); len(matches) > 1 {
			header += " " + t.MutedText.Render(fmt.Sprintf("(%d/%d)", s.PreviewIndex+1, len(matches)))
		}
		b.WriteString(header)
		b.WriteString("\n")

		line := s.SearchText
		if name, ok := s.Selected(names); ok {
			line += t.Preview.Render(completionSuffix(name, s.SearchText))
		}
		focused := m.mode == ModeSelecting && m.focus == rank
		if focused {
			line = t.Selected.Render(padRight(line+"▏", width-2))
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	button := t.Button.Render("Done")
	if m.mode == ModeSelecting && m.onConfirm() {
		button = t.ButtonFocus.Render("Done")
	}
	b.WriteString(button)
	if !m.voting.Valid() {
		b.WriteString(" " + t.MutedText.Render("(will be recorded as invalid)"))
	}
	return b.String()
}

func (m Model) renderPapers(width, height int) string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("Papers"))
	b.WriteString(t.MutedText.Render(fmt.Sprintf(" %d", m.voting.PaperCount())))
	b.WriteString("\n")

	count := m.voting.PaperCount()
	if count == 0 {
		b.WriteString(t.MutedText.Render("No ballots cast yet"))
		return b.String()
	}

	start, end := ballotWindow(m.cursor, count, m.voting.Ranks(), height)
	for i := start; i < end; i++ {
		paper, _ := m.voting.Paper(i)
		b.WriteString(m.renderPaper(i, paper, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPaper(index int, paper voting.BallotPaper, width int) string {
	t := m.theme
	header := fmt.Sprintf("Paper %d", index+1)
	switch {
	case paper.Disabled:
		header += " (undone)"
	case paper.Invalid:
		header += " (invalid)"
	}
	if m.mode == ModeReviewing && index == m.cursor {
		header = t.Selected.Render(padRight(header, width-2))
	} else {
		header = t.Base.Render(header)
	}

	lines := []string{header}
	for rank, choice := range paper.Choices {
		text := fmt.Sprintf("%d. %s", rank+1, choice)
		if choice == "" {
			text = fmt.Sprintf("%d. —", rank+1)
		}
		text = truncate(text, width)
		switch {
		case paper.Disabled:
			text = t.Disabled.Render(text)
		case paper.Invalid:
			text = t.Invalid.Render(text)
		case choice == "":
			text = t.MutedText.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderFooter() string {
	t := m.theme
	line := t.ModeBadge.Render(m.mode.String())
	if m.statusMsg != "" {
		style := t.StatusText
		if m.statusIsError {
			style = t.ErrorText
		}
		line += " " + style.Render(m.statusMsg)
	}
	if !m.showHelp {
		return line
	}
	return line + "\n" + m.help.View(modeHelp{keys: m.keys, mode: m.mode})
}
