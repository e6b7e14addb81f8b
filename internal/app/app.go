// Package app hosts the Bubble Tea program: the screen router framed by
// the header and footer, plus the global key bindings.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/screens/chat"
	"github.com/abhisek/tutor/internal/screens/progress"
	"github.com/abhisek/tutor/internal/screens/selector"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/ui/layout"
)

// Options are the shared objects the TUI operates on.
type Options struct {
	Controller *conversation.Controller
	Selection  *state.Selection
	Progress   *state.ProgressStore
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		opts:   opts,
		router: router.New(chat.New(opts.Controller, opts.Selection)),
	}
}

// Init focuses the chat and opens the selector when nothing is selected
// yet.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Root().Init()}
	if !m.opts.Selection.Ready() {
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: selector.New(m.opts.Selection)}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "ctrl+s":
			return m, m.open(selector.New(m.opts.Selection))
		case "ctrl+p":
			return m, m.open(progress.New(m.opts.Selection, m.opts.Progress))
		case "ctrl+n":
			m.opts.Controller.Reset()
			return m, nil
		}
		return m, m.router.Update(msg)

	case tea.PasteMsg, router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		return m, m.router.Update(msg)
	}

	// Async results may belong to a screen that is covered.
	return m, m.router.Broadcast(msg)
}

// open shows s unless a screen with the same title is already on top.
func (m AppModel) open(s screen.Screen) tea.Cmd {
	if active := m.router.Active(); active != nil && active.Title() == s.Title() {
		return nil
	}
	return m.router.Open(s)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) headerStatus() string {
	var subject, difficulty string
	if s, ok := m.opts.Selection.Subject(); ok {
		subject = s.Name
	}
	if d, ok := m.opts.Selection.Difficulty(); ok {
		difficulty = d.Name
	}
	return layout.HeaderStatus(subject, difficulty, m.opts.Progress.Snapshot().QuestionsAnswered)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
