// Package progress renders the learner's progress dashboard.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

const (
	noSubjectText     = "Select a subject to view your progress"
	noAchievementText = "No achievements yet. Keep practicing!"
	topAchievements   = 3
)

// ProgressScreen shows stats, the weekly chart and recent achievements.
type ProgressScreen struct {
	selection *state.Selection
	progress  *state.ProgressStore
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the progress screen. It reads the stores on every render.
func New(selection *state.Selection, progress *state.ProgressStore) *ProgressScreen {
	return &ProgressScreen{selection: selection, progress: progress}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+S", Description: "Subject"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	subject, ok := s.selection.Subject()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render(noSubjectText))
	}

	p := s.progress.Snapshot()
	contentWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(theme.Title.Width(contentWidth).Render(
		fmt.Sprintf("%s %s Progress", subject.Icon, subject.Name)))
	b.WriteString("\n\n")

	b.WriteString(renderStats(p, contentWidth))
	b.WriteString("\n\n")

	if !layout.IsCompactHeight(height) {
		b.WriteString(section("Weekly Progress", contentWidth))
		b.WriteString(renderChart(state.ChartData(p), contentWidth))
		b.WriteString("\n\n")
	}

	b.WriteString(section("Recent Achievements", contentWidth))
	b.WriteString(renderAchievements(state.TopAchievements(p, topAchievements)))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderStats(p state.Progress, width int) string {
	stat := func(label, value string) string {
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value) +
			"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	}
	cells := []string{
		stat("Questions Answered", fmt.Sprintf("%d", p.QuestionsAnswered)),
		stat("Success Rate", fmt.Sprintf("%.0f%%", p.SuccessRate*100)),
		stat("Study Streak", fmt.Sprintf("%d days", p.StudyStreak)),
	}
	cellWidth := width / len(cells)
	for i, c := range cells {
		cells[i] = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderChart draws one bar per week. Values are percentages.
func renderChart(c state.Chart, width int) string {
	labelWidth := 0
	for _, l := range c.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	lines := make([]string, len(c.Values))
	for i, v := range c.Values {
		bar := components.NewProgressBar(c.Labels[i], v/100, true, width)
		bar.LabelWidth = labelWidth
		lines[i] = bar.View()
	}
	return strings.Join(lines, "\n")
}

func renderAchievements(list []state.Achievement) string {
	if len(list) == 0 {
		return theme.Hint.Render(noAchievementText)
	}
	lines := make([]string, len(list))
	for i, a := range list {
		line := fmt.Sprintf("%s %s", a.Icon, theme.Body.Bold(true).Render(a.Title))
		if !a.Date.IsZero() {
			line += "  " + theme.Timestamp.Render(a.Date.Format("Jan 2, 2006"))
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func section(title string, width int) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width)) + "\n"
}
