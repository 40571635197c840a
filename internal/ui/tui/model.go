// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the bubbletea front end: a search form, a preset row,
// the results pane, and the saved-papers pane.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/papershelf/internal/controller"
	"github.com/pdiddy/papershelf/internal/present"
	"github.com/pdiddy/papershelf/internal/search"
)

// Port is the part of the controller the UI drives.
type Port interface {
	Search(ctx context.Context, in controller.SearchInput) controller.Outcome
	Preset(ctx context.Context, i int, in controller.SearchInput) (controller.Outcome, error)
	Presets() []string
	Results() []present.Card
	Save(id string) (present.SavedView, error)
	Remove(id string) (present.SavedView, error)
	SavedList() present.SavedView
	Catalog() present.Catalog
}

type focus int

const (
	focusQuery focus = iota
	focusDays
	focusResults
	focusSaved
	focusCount
)

// searchDoneMsg carries a finished search back into Update.
type searchDoneMsg struct {
	out controller.Outcome
}

// pane is a scrollable list of cards with a cursor.
type pane struct {
	cards  []present.Card
	cursor int
	vp     viewport.Model
}

func (p *pane) selected() (present.Card, bool) {
	if p.cursor < 0 || p.cursor >= len(p.cards) {
		return present.Card{}, false
	}
	return p.cards[p.cursor], true
}

func (p *pane) move(delta int) {
	if len(p.cards) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.cards)-1)
}

// replace swaps in cards, keeping abstracts open by id and clamping the cursor.
func (p *pane) replace(cards []present.Card, r *present.Renderer) {
	open := make(map[string]bool, len(p.cards))
	for _, c := range p.cards {
		if c.AbstractOpen {
			open[c.ID] = true
		}
	}
	for i, c := range cards {
		if open[c.ID] && !c.AbstractOpen {
			cards[i] = r.ToggleAbstract(c)
		}
	}
	p.cards = cards
	p.move(0)
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	port     Port
	renderer *present.Renderer
	cat      present.Catalog
	keys     keyMap
	help     help.Model
	spinner  spinner.Model

	query   textinput.Model
	days    textinput.Model
	sortIdx int
	presets []string
	focus   focus

	status   string
	errText  string
	loading  bool
	results  pane
	saved    pane
	savedMsg string

	width  int
	height int
}

// Options configures New.
type Options struct {
	// DefaultDays seeds the days field.
	DefaultDays int

	// DefaultSort seeds the sort selector.
	DefaultSort search.Sort
}

// New returns the root model bound to port. ctx scopes every upstream call.
func New(ctx context.Context, port Port, opts Options) Model {
	cat := port.Catalog()

	q := textinput.New()
	q.Prompt = ""
	q.Placeholder = "pubmed query"
	q.CharLimit = 256
	q.Focus()

	d := textinput.New()
	d.Prompt = ""
	d.CharLimit = 6
	d.Width = 6
	if opts.DefaultDays > 0 {
		d.SetValue(strconv.Itoa(opts.DefaultDays))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	sortIdx := 0
	for i, s := range search.Sorts {
		if s == opts.DefaultSort {
			sortIdx = i
		}
	}

	view := port.SavedList()

	m := Model{
		ctx:      ctx,
		port:     port,
		renderer: present.NewRenderer(cat),
		cat:      cat,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		query:    q,
		days:     d,
		sortIdx:  sortIdx,
		presets:  port.Presets(),
		saved:    pane{cards: view.Cards, vp: viewport.New(0, 0)},
		savedMsg: view.Status,
		results:  pane{vp: viewport.New(0, 0)},
		width:    100,
		height:   30,
	}
	m.resize()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) input() controller.SearchInput {
	return controller.SearchInput{
		Term:     m.query.Value(),
		DaysBack: m.days.Value(),
		Sort:     string(search.Sorts[m.sortIdx]),
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case searchDoneMsg:
		return m.applyOutcome(msg.out), nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount), nil
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(search.Sorts)
		return m, nil
	case key.Matches(msg, m.keys.Preset):
		i := int(msg.Runes[len(msg.Runes)-1] - '1')
		return m.runPreset(i)
	}

	if m.focus == focusQuery || m.focus == focusDays {
		if key.Matches(msg, m.keys.Submit) {
			return m.submit(m.input())
		}
		return m.updateFocused(msg)
	}

	p := m.activePane()
	switch {
	case key.Matches(msg, m.keys.PaneQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		p.move(-1)
	case key.Matches(msg, m.keys.Down):
		p.move(1)
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Submit):
		if c, ok := p.selected(); ok {
			p.cards[p.cursor] = m.renderer.ToggleAbstract(c)
		}
	case key.Matches(msg, m.keys.Save) && m.focus == focusResults:
		m = m.saveSelected()
	case key.Matches(msg, m.keys.Remove) && m.focus == focusSaved:
		m = m.removeSelected()
	}
	m.syncPanes()
	return m, nil
}

func (m Model) setFocus(f focus) Model {
	m.focus = f
	m.query.Blur()
	m.days.Blur()
	switch f {
	case focusQuery:
		m.query.Focus()
	case focusDays:
		m.days.Focus()
	}
	return m
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	case focusDays:
		m.days, cmd = m.days.Update(msg)
	}
	return m, cmd
}

func (m *Model) activePane() *pane {
	if m.focus == focusSaved {
		return &m.saved
	}
	return &m.results
}

// submit starts a search. An empty term is answered at once without
// clearing the current results.
func (m Model) submit(in controller.SearchInput) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(in.Term) == "" {
		return m.applyOutcome(m.port.Search(m.ctx, in)), nil
	}
	m.loading = true
	m.status = m.cat.Searching
	m.errText = ""
	m.results.cards = nil
	m.results.cursor = 0
	m.syncPanes()

	ctx, port := m.ctx, m.port
	run := func() tea.Msg {
		return searchDoneMsg{out: port.Search(ctx, in)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) runPreset(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.presets) {
		return m, nil
	}
	m.query.SetValue(m.presets[i])
	m.query.CursorEnd()
	return m.submit(m.input())
}

// applyOutcome installs a search outcome. Stale outcomes are dropped.
func (m Model) applyOutcome(out controller.Outcome) Model {
	if out.Stale {
		return m
	}
	m.status = out.Message
	if out.Status == controller.StatusEmptyQuery {
		return m
	}
	m.loading = false
	m.results.cards = nil
	m.results.replace(out.Cards, m.renderer)
	m.results.cursor = 0
	m.syncPanes()
	return m
}

func (m Model) saveSelected() Model {
	c, ok := m.results.selected()
	if !ok || c.Action.Disabled {
		return m
	}
	view, err := m.port.Save(c.ID)
	m = m.applySaved(view, err)
	m.results.replace(m.port.Results(), m.renderer)
	return m
}

func (m Model) removeSelected() Model {
	c, ok := m.saved.selected()
	if !ok {
		return m
	}
	view, err := m.port.Remove(c.ID)
	m = m.applySaved(view, err)
	m.results.replace(m.port.Results(), m.renderer)
	return m
}

func (m Model) applySaved(view present.SavedView, err error) Model {
	if err != nil {
		m.errText = err.Error()
	} else {
		m.errText = ""
	}
	m.saved.replace(view.Cards, m.renderer)
	m.savedMsg = view.Status
	return m
}
