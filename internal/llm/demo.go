package llm

import (
	"context"
	"sync"
)

const demoModel = "demo"

var demoQuestions = []string{
	"What is 7 x 8?",
	"Which planet is closest to the Sun?",
	"What is the past tense of \"run\"?",
}

const demoEvaluation = "Correct! Nicely reasoned.\nHint: explain your steps out loud to check them."

const demoExplanation = "Here is a short explanation to get you started. Ask me for a practice question when you are ready."

// DemoProvider answers offline. Generate requests get a practice question
// (rotating through a fixed list) and evaluations are always judged
// correct with one hint.
type DemoProvider struct {
	mu   sync.Mutex
	next int
}

// NewDemoProvider creates a DemoProvider.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (d *DemoProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	text := demoExplanation
	switch PurposeFrom(ctx) {
	case PurposeEvaluate:
		text = demoEvaluation
	case PurposeGenerate:
		d.mu.Lock()
		text = demoQuestions[d.next%len(demoQuestions)]
		d.next++
		d.mu.Unlock()
	}
	return &Response{
		Text:       text,
		Model:      demoModel,
		StopReason: "end",
	}, nil
}

func (d *DemoProvider) ModelID() string {
	return demoModel
}
