package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/tutor"
)

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testOptions(ready bool, responses ...llm.MockResponse) Options {
	sel := state.NewSelection(nil)
	if ready {
		subject, _ := catalog.SubjectByID("language")
		difficulty, _ := catalog.DifficultyByID(catalog.Beginner)
		sel.SetSubject(subject)
		sel.SetDifficulty(difficulty)
	}
	prog := state.NewProgressStore(nil)
	mock := llm.NewMockProvider(responses...)
	return Options{
		Controller: conversation.New(tutor.NewClient(mock, tutor.DefaultConfig()), sel, prog, nil),
		Selection:  sel,
		Progress:   prog,
	}
}

// send delivers msg and feeds any navigation message the command produces
// back into the model.
func send(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch nav := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(nav)
		m = next.(AppModel)
	}
	return m
}

func TestInit_OpensSelectorWithoutSelection(t *testing.T) {
	m := newAppModel(testOptions(false))
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected an init command")
	}

	cmds := []tea.Cmd{cmd}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		cmds = batch
	}
	pushed := false
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if msg, ok := c().(router.PushScreenMsg); ok {
			m = send(m, msg)
			pushed = true
		}
	}
	if !pushed {
		t.Fatal("expected the selector to be pushed")
	}
	if m.router.Active().Title() != "Choose Subject" {
		t.Errorf("active = %q", m.router.Active().Title())
	}
}

func TestGlobalKeys_OpenOverlays(t *testing.T) {
	m := newAppModel(testOptions(true))

	m = send(m, ctrlKey('p'))
	if m.router.Active().Title() != "Progress" {
		t.Fatalf("active = %q, want Progress", m.router.Active().Title())
	}

	m = send(m, ctrlKey('p'))
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, reopening should not stack", m.router.Depth())
	}

	m = send(m, ctrlKey('s'))
	if m.router.Active().Title() != "Choose Subject" || m.router.Depth() != 2 {
		t.Errorf("active = %q depth = %d", m.router.Active().Title(), m.router.Depth())
	}

	m = send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 || m.router.Active().Title() != "Chat" {
		t.Errorf("esc should return to chat, active = %q", m.router.Active().Title())
	}
}

func TestGlobalKeys_NewConversation(t *testing.T) {
	opts := testOptions(true, llm.MockResponse{Text: "Nouns name things."})
	if _, ok := opts.Controller.Submit(context.Background(), "what is a noun"); !ok {
		t.Fatal("submit rejected")
	}

	m := newAppModel(opts)
	m = send(m, ctrlKey('n'))

	if n := len(opts.Controller.Messages()); n != 0 {
		t.Errorf("messages = %d after ctrl+n, want 0", n)
	}
}

func TestGlobalKeys_Quit(t *testing.T) {
	m := newAppModel(testOptions(true))
	_, cmd := m.Update(ctrlKey('c'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestView_HeaderShowsSelection(t *testing.T) {
	opts := testOptions(true)
	opts.Progress.Update(state.ProgressUpdate{QuestionsAnswered: state.Int(7)})

	m := newAppModel(opts)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	content := fmt.Sprint(m.View().Content)
	for _, want := range []string{"Language Arts", "Beginner", "✓ 7", "Chat"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newAppModel(testOptions(true))
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})

	if !strings.Contains(fmt.Sprint(m.View().Content), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}
