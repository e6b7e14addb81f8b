// Package chat is the root TUI screen: the conversation transcript with
// the prompt line beneath it.
package chat

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
)

const (
	placeholderNoSelection = "Please select a subject and difficulty level first"
	placeholderReady       = "Ask a question or type your answer..."

	inputCharLimit = 2000
	spinnerPeriod  = 120 * time.Millisecond
)

// turnDoneMsg carries the reply of a turn started from this screen.
type turnDoneMsg struct {
	Reply conversation.Message
}

// spinnerTickMsg advances the loading indicator.
type spinnerTickMsg time.Time

// ChatScreen implements screen.Screen for the conversation.
type ChatScreen struct {
	ctrl      *conversation.Controller
	selection *state.Selection
	input     components.TextInput
	frame     int
	spinning  bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the chat screen.
func New(ctrl *conversation.Controller, selection *state.Selection) *ChatScreen {
	s := &ChatScreen{
		ctrl:      ctrl,
		selection: selection,
		input:     components.NewTextInput(placeholderNoSelection, inputCharLimit),
	}
	s.syncPlaceholder()
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+S", Description: "Subject"},
		{Key: "Ctrl+P", Description: "Progress"},
		{Key: "Ctrl+N", Description: "New chat"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.syncPlaceholder()

	switch msg := msg.(type) {
	case turnDoneMsg:
		return s, nil

	case spinnerTickMsg:
		if !s.ctrl.Loading() {
			s.spinning = false
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit starts a turn with the current input. Rejected input is left in
// place so the learner can fix it.
func (s *ChatScreen) submit() (screen.Screen, tea.Cmd) {
	turn, ok := s.ctrl.Begin(s.input.Value())
	if !ok {
		return s, nil
	}
	s.input.Reset()

	cmds := []tea.Cmd{resolveCmd(turn)}
	if !s.spinning {
		s.spinning = true
		cmds = append(cmds, spinnerTick())
	}
	return s, tea.Batch(cmds...)
}

func (s *ChatScreen) syncPlaceholder() {
	if s.selection.Ready() {
		s.input.SetPlaceholder(placeholderReady)
	} else {
		s.input.SetPlaceholder(placeholderNoSelection)
	}
}

func resolveCmd(turn *conversation.Turn) tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{Reply: turn.Resolve(context.Background())}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerPeriod, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
