package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/tutor"
)

func testRuntime(ready bool, responses ...llm.MockResponse) *runtime {
	notifier := state.NewNotifier()
	rt := &runtime{
		notifier:  notifier,
		selection: state.NewSelection(notifier),
		progress:  state.NewProgressStore(notifier),
	}
	if ready {
		s, _ := catalog.SubjectByID("math")
		d, _ := catalog.DifficultyByID(catalog.Beginner)
		rt.selection.SetSubject(s)
		rt.selection.SetDifficulty(d)
	}
	client := tutor.NewClient(llm.NewMockProvider(responses...), tutor.DefaultConfig())
	rt.controller = conversation.New(client, rt.selection, rt.progress, notifier)
	return rt
}

func TestRunLines_QuestionThenAnswer(t *testing.T) {
	rt := testRuntime(true,
		llm.MockResponse{Text: "What is 2 + 2?"},
		llm.MockResponse{Text: "Correct! Well done.\nHint: count on your fingers"},
	)
	in := strings.NewReader("give me a problem\n\n4\n")
	var out bytes.Buffer

	require.NoError(t, runLines(context.Background(), rt, in, &out))

	got := out.String()
	assert.Contains(t, got, "tutor> What is 2 + 2?")
	assert.Contains(t, got, "✓ Correct")
	assert.Contains(t, got, "• count on your fingers")
	assert.Len(t, rt.controller.Messages(), 4, "blank lines are skipped")
	assert.Equal(t, 1, rt.progress.Snapshot().QuestionsAnswered)
}

func TestRunLines_ErrorReply(t *testing.T) {
	rt := testRuntime(true, llm.MockResponse{Err: &llm.ErrRateLimit{}})
	var out bytes.Buffer

	require.NoError(t, runLines(context.Background(), rt, strings.NewReader("hi\n"), &out))
	assert.Contains(t, out.String(), "error> ")
}

func TestRunLines_RequiresSelection(t *testing.T) {
	rt := testRuntime(false)
	err := runLines(context.Background(), rt, strings.NewReader("hi\n"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestApplyPreselection(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		level   string
		wantErr bool
		ready   bool
	}{
		{name: "both", subject: "science", level: "advanced", ready: true},
		{name: "subject only", subject: "history"},
		{name: "none"},
		{name: "unknown subject", subject: "alchemy", wantErr: true},
		{name: "unknown difficulty", level: "expert", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "tutor"}
			cmd.Flags().String("subject", "", "")
			cmd.Flags().String("difficulty", "", "")
			require.NoError(t, cmd.Flags().Set("subject", tt.subject))
			require.NoError(t, cmd.Flags().Set("difficulty", tt.level))

			sel := state.NewSelection(nil)
			err := applyPreselection(cmd, sel)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ready, sel.Ready())
		})
	}
}

func TestSubjectsCommand(t *testing.T) {
	var out bytes.Buffer
	subjectsCmd.SetOut(&out)
	subjectsCmd.Run(subjectsCmd, nil)

	got := out.String()
	for _, s := range catalog.Subjects() {
		assert.Contains(t, got, s.Name)
	}
	assert.Contains(t, got, "intermediate")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
