package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/llm"
)

// Client generates tutoring replies and evaluates answers through a
// Provider. It keeps no state between calls.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// NewClient creates a tutor client.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

// Generate asks the model to respond to prompt as a tutor for the given
// subject and difficulty display names.
func (c *Client) Generate(ctx context.Context, prompt, subject, difficulty string) (*Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGenerate)

	text, err := c.complete(ctx, buildGeneratePrompt(prompt, subject, difficulty))
	if err != nil {
		return nil, describe(err, "failed to generate response")
	}

	return &Reply{
		Content: text,
		Kind:    ClassifyReply(text),
		Metadata: Metadata{
			DifficultyScore: catalog.DifficultyScore(difficulty),
			Topic:           subject,
		},
	}, nil
}

// Evaluate asks the model to judge answer as a response to question.
func (c *Client) Evaluate(ctx context.Context, question, answer, subject string) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluate)

	text, err := c.complete(ctx, buildEvaluatePrompt(question, answer, subject))
	if err != nil {
		return nil, describe(err, "failed to evaluate answer")
	}

	return &Evaluation{
		IsCorrect:   IsCorrect(text),
		Explanation: text,
		Hints:       ExtractHints(text),
	}, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.provider.Generate(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	})
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", &llm.ErrEmptyResponse{}
	}
	return resp.Text, nil
}

// describe passes classified failures through unchanged so their message
// reaches the learner verbatim, and prefixes anything else with op.
func describe(err error, op string) error {
	var (
		cfgErr *llm.ErrConfiguration
		auth   *llm.ErrAuth
		rl     *llm.ErrRateLimit
		badReq *llm.ErrBadRequest
		empty  *llm.ErrEmptyResponse
	)
	if errors.As(err, &cfgErr) || errors.As(err, &auth) || errors.As(err, &rl) ||
		errors.As(err, &badReq) || errors.As(err, &empty) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
