package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

const (
	welcomeTitle = "Welcome to your AI Tutor!"
	welcomeBody  = "Select a subject and difficulty level to get started. Ask any question or request a practice problem."
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *ChatScreen) View(width, height int) string {
	input := s.input.View(width - 4)
	inputHeight := lipgloss.Height(input)

	transcriptHeight := height - inputHeight - 1
	if transcriptHeight < 0 {
		transcriptHeight = 0
	}

	var body string
	msgs := s.ctrl.Messages()
	if len(msgs) == 0 && !s.ctrl.Loading() {
		body = renderWelcome(width, transcriptHeight)
	} else {
		body = s.renderTranscript(msgs, width, transcriptHeight)
	}

	return body + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, input)
}

func renderWelcome(width, height int) string {
	text := theme.Title.Width(width).Render(welcomeTitle) + "\n\n" +
		theme.Subtitle.Width(width).Render(welcomeBody)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// renderTranscript renders the messages and keeps only the lines that fit,
// so the newest message is always visible.
func (s *ChatScreen) renderTranscript(msgs []conversation.Message, width, height int) string {
	bubbleWidth := width * 3 / 4
	if layout.IsCompactWidth(width) {
		bubbleWidth = width - 6
	}

	blocks := make([]string, 0, len(msgs)+1)
	for _, m := range msgs {
		blocks = append(blocks, renderMessage(m, width, bubbleWidth))
	}
	if s.ctrl.Loading() {
		frame := spinnerFrames[s.frame%len(spinnerFrames)]
		blocks = append(blocks, "  "+theme.Hint.Render(frame+" Thinking..."))
	}

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append([]string{""}, lines...)
	}
	return strings.Join(lines, "\n")
}

func renderMessage(m conversation.Message, width, bubbleWidth int) string {
	stamp := theme.Timestamp.Render(m.CreatedAt.Format("15:04"))

	if m.Role == conversation.RoleUser {
		bubble := theme.UserMessage.MaxWidth(bubbleWidth).Render(wrap(m.Content, bubbleWidth-2))
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, block)
	}

	if m.Kind == conversation.KindError {
		box := theme.ErrorMessage.Render(wrap(m.Content, bubbleWidth-4))
		return indent(lipgloss.JoinVertical(lipgloss.Left, box, stamp))
	}

	var b strings.Builder
	if verdict := renderVerdict(m); verdict != "" {
		b.WriteString(verdict)
		b.WriteString("\n")
	}
	b.WriteString(wrap(m.Content, bubbleWidth-2))
	if m.Metadata != nil && len(m.Metadata.Hints) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderHints(m.Metadata.Hints, bubbleWidth-2))
	}

	bubble := theme.AssistantMessage.MaxWidth(bubbleWidth).Render(b.String())
	return indent(lipgloss.JoinVertical(lipgloss.Left, bubble, stamp))
}

func renderVerdict(m conversation.Message) string {
	if m.Metadata == nil || m.Metadata.IsCorrect == nil {
		return ""
	}
	if *m.Metadata.IsCorrect {
		return theme.Correct.Render("✓ Correct")
	}
	return theme.Incorrect.Render("✗ Not quite")
}

func renderHints(hints []string, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Hints:"))
	for _, h := range hints {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(wrap("• "+h, width)))
	}
	return b.String()
}

func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func indent(s string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(s)
}
