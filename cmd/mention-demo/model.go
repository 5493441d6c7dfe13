package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/iw2rmb/atmention/editor"
)

const footerHeight = 2

type eventState struct {
	count int
	last  editor.ChangeEvent
}

func (s *eventState) handleChange(ev editor.ChangeEvent) {
	s.count++
	s.last = ev
}

type model struct {
	editor editor.Model
	events *eventState
	zones  *zone.Manager
}

func newModel(cfg editor.Config) (model, error) {
	state := &eventState{}
	cfg.OnChange = state.handleChange
	ed, err := editor.New(cfg)
	if err != nil {
		return model{}, err
	}
	state.last.Text = ed.Text()
	state.last.Version = ed.Version()
	return model{editor: ed, events: state, zones: cfg.Zones}, nil
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, editorHeight(msg.Height))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	where := "document"
	if m.events.last.InMention {
		where = "mention"
	}
	footer := strings.Join([]string{
		"",
		fmt.Sprintf("events: %d  version: %d  in: %s  offset: %d  ·  ctrl+q quits",
			m.events.count, m.events.last.Version, where, m.events.last.Selection.Offset),
	}, "\n")

	view := m.editor.View() + footer
	if m.zones != nil {
		view = m.zones.Scan(view)
	}
	return view
}

func editorHeight(total int) int {
	h := total - footerHeight
	if h < 0 {
		return 0
	}
	return h
}
