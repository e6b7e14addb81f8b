// Package conversation runs the tutoring chat: it decides whether learner
// input is a new prompt or an answer to the last question, calls the tutor,
// and keeps the ordered message list.
package conversation

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind labels an assistant message.
type Kind string

const (
	KindText        Kind = "text"
	KindQuestion    Kind = "question"
	KindExplanation Kind = "explanation"
	KindError       Kind = "error"
)

// Metadata carries optional details attached to an assistant message.
type Metadata struct {
	IsCorrect       *bool    `json:"isCorrect,omitempty"`
	Hints           []string `json:"hints,omitempty"`
	DifficultyScore int      `json:"difficulty,omitempty"`
	Topic           string   `json:"topic,omitempty"`
}

// Message is one entry in the conversation. Messages are never modified
// after they are appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
	Kind      Kind      `json:"type,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// clone returns a copy of m that shares no memory with it.
func (m Message) clone() Message {
	if m.Metadata == nil {
		return m
	}
	md := *m.Metadata
	if md.IsCorrect != nil {
		v := *md.IsCorrect
		md.IsCorrect = &v
	}
	if md.Hints != nil {
		md.Hints = append([]string{}, md.Hints...)
	}
	m.Metadata = &md
	return m
}

// Phase is what the controller expects the next learner input to be.
type Phase int

const (
	// PhaseAwaitingPrompt treats input as a new prompt for the tutor.
	PhaseAwaitingPrompt Phase = iota
	// PhaseAwaitingAnswer treats input as an answer to the last question.
	PhaseAwaitingAnswer
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	default:
		return "awaiting_prompt"
	}
}
