// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pdiddy/papershelf/internal/present"
	"github.com/pdiddy/papershelf/internal/search"
)

const (
	// headerLines covers the form, the preset row, and the status line.
	headerLines = 5
	minPaneW    = 30
)

func (m *Model) paneWidths() (int, int) {
	w := max(m.width-4, 2*minPaneW)
	left := w * 3 / 5
	return left, w - left
}

func (m *Model) resize() {
	left, right := m.paneWidths()
	h := max(m.height-headerLines-lipgloss.Height(m.help.View(m.keys))-2, 3)
	m.results.vp.Width, m.results.vp.Height = left-4, h
	m.saved.vp.Width, m.saved.vp.Height = right-4, h
	m.query.Width = max(m.width-40, 10)
	m.help.Width = m.width
	m.syncPanes()
}

// syncPanes re-renders both panes and scrolls the cursor into view.
func (m *Model) syncPanes() {
	syncPane(&m.results, m.focus == focusResults)
	syncPane(&m.saved, m.focus == focusSaved)
}

func syncPane(p *pane, active bool) {
	width := max(p.vp.Width, 10)
	var b strings.Builder
	start, end := 0, 0
	for i, c := range p.cards {
		if i == p.cursor {
			start = strings.Count(b.String(), "\n")
		}
		b.WriteString(renderCard(c, width, active && i == p.cursor))
		b.WriteString("\n")
		if i == p.cursor {
			end = strings.Count(b.String(), "\n")
		}
	}
	p.vp.SetContent(b.String())
	switch {
	case start < p.vp.YOffset:
		p.vp.SetYOffset(start)
	case end > p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(end - p.vp.Height)
	}
}

func renderCard(c present.Card, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("▸ ")
	}
	inner := width - 2

	lines := []string{
		titleStyle.Render(wordwrap.String(c.Title, inner)),
		mutedStyle.Render(wordwrap.String(c.AuthorLine, inner)),
		mutedStyle.Render(c.VenueLine),
		linkStyle.Render(c.LinkLabel) + " " + mutedStyle.Render(c.Link),
		renderButtons(c),
	}
	if c.AbstractOpen {
		lines = append(lines, wordwrap.String(c.Abstract, inner))
	}

	body := strings.Join(lines, "\n")
	indent := strings.Repeat(" ", lipgloss.Width(marker))
	rows := strings.Split(body, "\n")
	for i := range rows {
		if i == 0 {
			rows[i] = marker + rows[i]
		} else {
			rows[i] = indent + rows[i]
		}
	}
	return strings.Join(rows, "\n")
}

func renderButtons(c present.Card) string {
	toggle := buttonStyle.Render(c.ToggleLabel)
	var action string
	switch {
	case c.Action.Disabled:
		action = disabledStyle.Render(c.Action.Label)
	case c.Action.Kind == present.ActionRemove:
		action = buttonStyle.Foreground(colorRed).Render(c.Action.Label)
	default:
		action = buttonStyle.Foreground(colorGreen).Render(c.Action.Label)
	}
	return toggle + " " + action
}

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.formView())
	b.WriteString("\n")
	b.WriteString(m.presetView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")

	left, right := m.paneWidths()
	results := m.paneBox(m.focus == focusResults, left).Render(m.results.vp.View())
	saved := m.paneBox(m.focus == focusSaved, right).Render(
		savedStyle.Render(m.savedMsg) + "\n" + m.saved.vp.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, results, saved))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) paneBox(active bool, width int) lipgloss.Style {
	if active {
		return paneActiveStyle.Width(width - 2)
	}
	return paneStyle.Width(width - 2)
}

func (m Model) formView() string {
	field := func(label string, f focus, v string) string {
		l := labelStyle.Render(label)
		if m.focus == f {
			l = cursorStyle.Width(7).Render(label)
		}
		return l + v
	}
	sorts := make([]string, len(search.Sorts))
	for i, s := range search.Sorts {
		if i == m.sortIdx {
			sorts[i] = hotStyle.Render(string(s))
		} else {
			sorts[i] = mutedStyle.Render(string(s))
		}
	}
	return field("query", focusQuery, m.query.View()) + "\n" +
		field("days", focusDays, m.days.View()) + "   " +
		labelStyle.Render("sort") + strings.Join(sorts, mutedStyle.Render(" | "))
}

func (m Model) presetView() string {
	if len(m.presets) == 0 {
		return ""
	}
	items := make([]string, 0, len(m.presets))
	for i, p := range m.presets {
		if i >= 9 {
			break
		}
		items = append(items, fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("alt+%d", i+1)), buttonStyle.Render(p)))
	}
	return strings.Join(items, "  ")
}

func (m Model) statusView() string {
	status := m.status
	if m.loading {
		status = m.spinner.View() + " " + status
	}
	if m.errText != "" {
		status += "  " + errorStyle.Render(m.errText)
	}
	return status
}
