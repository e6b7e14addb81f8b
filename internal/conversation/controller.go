package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/tutor"
	"github.com/google/uuid"
)

// fallbackErrorText is shown when a failure carries no message of its own.
const fallbackErrorText = "An unexpected error occurred. Please try again."

// Tutor is the remote side of a turn.
type Tutor interface {
	Generate(ctx context.Context, prompt, subject, difficulty string) (*tutor.Reply, error)
	Evaluate(ctx context.Context, question, answer, subject string) (*tutor.Evaluation, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns one conversation. At most one turn is in flight at a
// time; input submitted while a turn is outstanding is ignored.
type Controller struct {
	tutor     Tutor
	selection *state.Selection
	progress  *state.ProgressStore
	notifier  *state.Notifier
	now       func() time.Time

	mu       sync.Mutex
	messages []Message
	phase    Phase
	question string
	loading  bool
	epoch    int
}

// New creates a controller. notifier may be nil.
func New(t Tutor, selection *state.Selection, progress *state.ProgressStore, notifier *state.Notifier, opts ...Option) *Controller {
	c := &Controller{
		tutor:     t,
		selection: selection,
		progress:  progress,
		notifier:  notifier,
		now:       time.Now,
		messages:  make([]Message, 0, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Turn is a submitted input whose remote call has not run yet.
type Turn struct {
	c          *Controller
	input      string
	subject    catalog.Subject
	difficulty catalog.Difficulty
	question   string
	evaluate   bool
	epoch      int
	user       Message
}

// UserMessage returns the message appended when the turn began.
func (t *Turn) UserMessage() Message { return t.user }

// Evaluating reports whether the turn will evaluate an answer rather than
// generate a reply.
func (t *Turn) Evaluating() bool { return t.evaluate }

// Begin validates input and, if accepted, appends the user message and
// marks the controller as loading. It returns false without side effects
// when the input is blank, the selection is incomplete, or a turn is
// already in flight.
func (c *Controller) Begin(input string) (*Turn, bool) {
	if strings.TrimSpace(input) == "" {
		return nil, false
	}
	subject, ok := c.selection.Subject()
	if !ok {
		return nil, false
	}
	difficulty, ok := c.selection.Difficulty()
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, false
	}

	user := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   input,
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, user)
	c.loading = true

	turn := &Turn{
		c:          c,
		input:      input,
		subject:    subject,
		difficulty: difficulty,
		question:   c.question,
		evaluate:   c.phase == PhaseAwaitingAnswer,
		epoch:      c.epoch,
		user:       user,
	}
	c.mu.Unlock()

	c.notifier.Notify()
	return turn, true
}

// Resolve performs the remote call and appends the assistant reply, or an
// error message if the call failed. It must be called exactly once.
func (t *Turn) Resolve(ctx context.Context) Message {
	var reply Message
	if t.evaluate {
		reply = t.evaluateAnswer(ctx)
	} else {
		reply = t.generate(ctx)
	}
	reply.ID = uuid.NewString()
	reply.Role = RoleAssistant
	reply.CreatedAt = t.c.now()

	t.c.finish(t.epoch, reply)
	return reply.clone()
}

func (t *Turn) generate(ctx context.Context) Message {
	r, err := t.c.tutor.Generate(ctx, t.input, t.subject.Name, t.difficulty.Name)
	if err != nil {
		return errorMessage(err)
	}
	return Message{
		Content: r.Content,
		Kind:    Kind(r.Kind),
		Metadata: &Metadata{
			DifficultyScore: r.Metadata.DifficultyScore,
			Topic:           r.Metadata.Topic,
		},
	}
}

func (t *Turn) evaluateAnswer(ctx context.Context) Message {
	ev, err := t.c.tutor.Evaluate(ctx, t.question, t.input, t.subject.Name)
	if err != nil {
		return errorMessage(err)
	}

	if ev.IsCorrect {
		t.c.progress.RecordCorrectAnswer()
	}

	correct := ev.IsCorrect
	return Message{
		Content: ev.Explanation,
		Kind:    KindExplanation,
		Metadata: &Metadata{
			IsCorrect: &correct,
			Hints:     ev.Hints,
		},
	}
}

func errorMessage(err error) Message {
	text := err.Error()
	if strings.TrimSpace(text) == "" {
		text = fallbackErrorText
	}
	return Message{Content: text, Kind: KindError}
}

// finish appends reply and clears the loading flag. A reply for a
// conversation that was reset meanwhile is dropped.
func (c *Controller) finish(epoch int, reply Message) {
	c.mu.Lock()
	c.loading = false
	if epoch == c.epoch {
		c.messages = append(c.messages, reply)
		if reply.Kind == KindQuestion {
			c.phase = PhaseAwaitingAnswer
			c.question = reply.Content
		} else {
			c.phase = PhaseAwaitingPrompt
			c.question = ""
		}
	}
	c.mu.Unlock()
	c.notifier.Notify()
}

// Submit runs a full turn synchronously. The bool is false when the input
// was rejected, in which case nothing was appended.
func (c *Controller) Submit(ctx context.Context, input string) (Message, bool) {
	turn, ok := c.Begin(input)
	if !ok {
		return Message{}, false
	}
	return turn.Resolve(ctx), true
}

// Messages returns a copy of the conversation in order.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.clone()
	}
	return out
}

// Loading reports whether a turn is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Phase reports how the next input will be treated.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Reset starts a new conversation. A turn still in flight keeps the
// controller busy until it resolves, but its reply is discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.messages = make([]Message, 0, 16)
	c.phase = PhaseAwaitingPrompt
	c.question = ""
	c.epoch++
	c.mu.Unlock()
	c.notifier.Notify()
}
