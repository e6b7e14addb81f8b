package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tutor/internal/llm"
)

func TestGenerate_BuildsPromptAndClassifies(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "What is the derivative of x squared?"})
	c := NewClient(mock, DefaultConfig())

	reply, err := c.Generate(context.Background(), "Teach me derivatives", "Mathematics", "Intermediate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, _ := mock.LastCall()
	want := "You are an expert tutor in Mathematics at the Intermediate level. " +
		"Provide clear, engaging explanations and ask thought-provoking questions. " +
		"Include examples and break down complex concepts into manageable parts." +
		"\n\nUser: Teach me derivatives\nAssistant:"
	if req.Prompt != want {
		t.Errorf("prompt =\n%q\nwant\n%q", req.Prompt, want)
	}

	if reply.Kind != KindQuestion {
		t.Errorf("kind = %q, want question", reply.Kind)
	}
	if reply.Content != "What is the derivative of x squared?" {
		t.Errorf("content = %q", reply.Content)
	}
	if reply.Metadata.DifficultyScore != 2 || reply.Metadata.Topic != "Mathematics" {
		t.Errorf("metadata = %+v", reply.Metadata)
	}
}

func TestGenerate_SendsSamplingConfig(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	c := NewClient(mock, Config{MaxTokens: 200, Temperature: 0.7, TopP: 0.9})

	if _, err := c.Generate(context.Background(), "hi", "Science", "Beginner"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req, _ := mock.LastCall()
	if req.MaxTokens != 200 || req.Temperature != 0.7 || req.TopP != 0.9 {
		t.Errorf("request = %+v", req)
	}
}

func TestEvaluate_BuildsPromptAndParses(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "Correct, 1789 is right.\nHint: remember the storming of the Bastille",
	})
	c := NewClient(mock, DefaultConfig())

	ev, err := c.Evaluate(context.Background(), "When did the French Revolution begin?", "1789", "History")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, _ := mock.LastCall()
	want := "You are an expert evaluator in History. " +
		"Analyze the student's answer and provide detailed feedback." +
		"\n\nQuestion: When did the French Revolution begin?\nStudent's Answer: 1789\nEvaluation:"
	if req.Prompt != want {
		t.Errorf("prompt =\n%q\nwant\n%q", req.Prompt, want)
	}

	if !ev.IsCorrect {
		t.Error("expected IsCorrect")
	}
	if len(ev.Hints) != 1 || ev.Hints[0] != "remember the storming of the Bastille" {
		t.Errorf("hints = %q", ev.Hints)
	}
	if !strings.HasPrefix(ev.Explanation, "Correct, 1789") {
		t.Errorf("explanation = %q", ev.Explanation)
	}
}

func TestEvaluate_NoHintsIsEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Not quite, it was 1789."})
	c := NewClient(mock, DefaultConfig())

	ev, err := c.Evaluate(context.Background(), "q", "1790", "History")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.IsCorrect {
		t.Error("expected not correct")
	}
	if ev.Hints == nil || len(ev.Hints) != 0 {
		t.Errorf("hints = %#v, want empty slice", ev.Hints)
	}
}

func TestClient_ErrorsPassThroughOrWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"configuration", &llm.ErrConfiguration{Msg: "Hugging Face API token is not set. Please check your environment variables."}, "Hugging Face API token is not set. Please check your environment variables."},
		{"auth", &llm.ErrAuth{Credential: "Hugging Face API token"}, "Authentication failed. Please check your Hugging Face API token."},
		{"rate limit", &llm.ErrRateLimit{}, "Rate limit exceeded. Please try again later."},
		{"bad request", &llm.ErrBadRequest{Message: "input too long"}, "Model error: input too long"},
		{"empty", &llm.ErrEmptyResponse{}, "No response received from the model"},
		{"transport", &llm.ErrProviderUnavailable{Err: errors.New("HTTP 503: Model is loading")}, "failed to generate response: LLM provider unavailable: HTTP 503: Model is loading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: tt.err})
			c := NewClient(mock, DefaultConfig())

			_, err := c.Generate(context.Background(), "hi", "Science", "Beginner")
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("expected the provider error to stay in the chain")
			}
		})
	}
}

func TestEvaluate_WrapsTransportErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("connection reset")})
	c := NewClient(mock, DefaultConfig())

	_, err := c.Evaluate(context.Background(), "q", "a", "Science")
	if err == nil || err.Error() != "failed to evaluate answer: connection reset" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_UnconfiguredMakesNoRequest(t *testing.T) {
	c := NewClient(llm.Unconfigured(nil), DefaultConfig())

	_, err := c.Generate(context.Background(), "hi", "Science", "Beginner")
	var cfgErr *llm.ErrConfiguration
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ErrConfiguration, got %T (%v)", err, err)
	}
}

func TestClient_PurposeLabels(t *testing.T) {
	var purposes []string
	p := purposeRecorder{record: func(ctx context.Context) {
		purposes = append(purposes, llm.PurposeFrom(ctx))
	}}
	c := NewClient(p, DefaultConfig())

	c.Generate(context.Background(), "hi", "Science", "Beginner")
	c.Evaluate(context.Background(), "q", "a", "Science")

	if len(purposes) != 2 || purposes[0] != llm.PurposeGenerate || purposes[1] != llm.PurposeEvaluate {
		t.Fatalf("purposes = %v", purposes)
	}
}

type purposeRecorder struct {
	record func(context.Context)
}

func (p purposeRecorder) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.record(ctx)
	return &llm.Response{Text: "ok"}, nil
}

func (p purposeRecorder) ModelID() string { return "recorder" }
