package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterChecksAndRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{
		{Label: "one"},
		{Label: "two", Action: func() tea.Cmd {
			ran = true
			return nil
		}},
	})
	if m.Checked != -1 {
		t.Fatalf("Checked = %d, want -1", m.Checked)
	}

	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyEnter))

	if !ran {
		t.Error("expected action to run")
	}
	if m.Checked != 1 {
		t.Errorf("Checked = %d, want 1", m.Checked)
	}
	if !strings.Contains(m.View(), "✓ two") {
		t.Errorf("view should mark the checked item:\n%s", m.View())
	}
}

func TestMenu_UnfocusedIgnoresKeys(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "one"}, {Label: "two"}})
	m.Focused = false

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	if strings.Contains(m.View(), "▸") {
		t.Error("unfocused menu should not draw a cursor")
	}
}

func TestProgressBar_Percent(t *testing.T) {
	out := NewProgressBar("Week 1", 0.65, true, 40).View()
	if !strings.Contains(out, "65%") {
		t.Errorf("expected 65%% in %q", out)
	}
	if !strings.Contains(out, "Week 1") {
		t.Errorf("expected label in %q", out)
	}
}

func TestTextInput_BlankAndReset(t *testing.T) {
	in := NewTextInput("Ask a question", 0)
	if !in.Blank() {
		t.Error("new input should be blank")
	}

	in.Model.SetValue("  what is a noun  ")
	if in.Blank() {
		t.Error("input with text should not be blank")
	}

	in.Reset()
	if in.Value() != "" {
		t.Errorf("Value after Reset = %q", in.Value())
	}
}
