package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

// MenuItem represents a single item in a menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu with a cursor and an optional checked item.
type Menu struct {
	Items    []MenuItem
	Selected int
	// Checked marks the item currently in effect, or -1 for none.
	Checked int
	// Focused menus draw the cursor; unfocused menus only show Checked.
	Focused bool
}

// NewMenu creates a focused menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
		Checked:  -1,
		Focused:  true,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Unfocused menus ignore keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if !item.Disabled {
				m.Checked = m.Selected
				if item.Action != nil {
					return m, item.Action()
				}
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		mark := "  "
		if i == m.Checked {
			mark = "✓ "
		}

		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Border).
				Render("    " + mark + item.Label))
		case i == m.Selected && m.Focused:
			b.WriteString(theme.Selected.Render("  ▸ " + mark + item.Label))
		case i == m.Checked:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Render("    " + mark + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + mark + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
