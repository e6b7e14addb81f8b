// Package selector lets the learner pick a subject and a difficulty.
package selector

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

type pane int

const (
	paneSubject pane = iota
	paneDifficulty
)

// SelectorScreen shows the subject and difficulty menus side by side.
type SelectorScreen struct {
	selection    *state.Selection
	subjects     []catalog.Subject
	difficulties []catalog.Difficulty
	subjectMenu  components.Menu
	levelMenu    components.Menu
	focus        pane
}

var _ screen.Screen = (*SelectorScreen)(nil)
var _ screen.KeyHintProvider = (*SelectorScreen)(nil)

// New creates the selector with the menus positioned on the current
// selection.
func New(selection *state.Selection) *SelectorScreen {
	s := &SelectorScreen{
		selection:    selection,
		subjects:     catalog.Subjects(),
		difficulties: catalog.Difficulties(),
	}

	subjectItems := make([]components.MenuItem, len(s.subjects))
	for i, sub := range s.subjects {
		subjectItems[i] = components.MenuItem{
			Label: sub.Icon + " " + sub.Name,
			Action: func() tea.Cmd {
				s.selection.SetSubject(sub)
				return nil
			},
		}
	}
	s.subjectMenu = components.NewMenu(subjectItems)

	levelItems := make([]components.MenuItem, len(s.difficulties))
	for i, d := range s.difficulties {
		levelItems[i] = components.MenuItem{
			Label: d.Name,
			Action: func() tea.Cmd {
				s.selection.SetDifficulty(d)
				return nil
			},
		}
	}
	s.levelMenu = components.NewMenu(levelItems)
	s.levelMenu.Focused = false

	if cur, ok := selection.Subject(); ok {
		for i, sub := range s.subjects {
			if sub.ID == cur.ID {
				s.subjectMenu.Selected, s.subjectMenu.Checked = i, i
			}
		}
	}
	if cur, ok := selection.Difficulty(); ok {
		for i, d := range s.difficulties {
			if d.ID == cur.ID {
				s.levelMenu.Selected, s.levelMenu.Checked = i, i
			}
		}
	}
	return s
}

// afterChoice moves focus to the pane still missing a value, or closes the
// screen once both are set.
func (s *SelectorScreen) afterChoice() tea.Cmd {
	if s.selection.Ready() {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if _, ok := s.selection.Difficulty(); !ok {
		s.setFocus(paneDifficulty)
	} else {
		s.setFocus(paneSubject)
	}
	return nil
}

func (s *SelectorScreen) setFocus(p pane) {
	s.focus = p
	s.subjectMenu.Focused = p == paneSubject
	s.levelMenu.Focused = p == paneDifficulty
}

func (s *SelectorScreen) Init() tea.Cmd {
	return nil
}

func (s *SelectorScreen) Title() string {
	return "Choose Subject"
}

func (s *SelectorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Switch list"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SelectorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if s.focus == paneSubject {
			s.setFocus(paneDifficulty)
		} else {
			s.setFocus(paneSubject)
		}
		return s, nil
	}

	var cmd tea.Cmd
	if s.focus == paneSubject {
		s.subjectMenu, cmd = s.subjectMenu.Update(msg)
	} else {
		s.levelMenu, cmd = s.levelMenu.Update(msg)
	}
	if kmsg.String() == "enter" {
		return s, tea.Batch(cmd, s.afterChoice())
	}
	return s, cmd
}

func (s *SelectorScreen) View(width, height int) string {
	colWidth := 30
	if width < 2*colWidth+4 {
		colWidth = (width - 4) / 2
	}

	subjects := column("Subject", s.subjectMenu, s.focus == paneSubject, colWidth)
	levels := column("Difficulty", s.levelMenu, s.focus == paneDifficulty, colWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, subjects, "    ", levels)

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("What would you like to study?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func column(title string, m components.Menu, focused bool, width int) string {
	heading := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		heading = heading.Foreground(theme.Secondary).Bold(true)
	}
	return lipgloss.NewStyle().Width(width).Render(
		heading.Render(title) + "\n\n" + m.View())
}
