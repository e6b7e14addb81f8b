// Package tutor turns learner prompts and answers into inference requests
// and classifies the generated text.
package tutor

// Kind labels what a generated reply is.
type Kind string

const (
	KindQuestion    Kind = "question"
	KindExplanation Kind = "explanation"
)

// Metadata describes the context a reply was generated for.
type Metadata struct {
	DifficultyScore int
	Topic           string
}

// Reply is the result of Generate.
type Reply struct {
	Content  string
	Kind     Kind
	Metadata Metadata
}

// Evaluation is the result of Evaluate.
type Evaluation struct {
	IsCorrect   bool
	Explanation string
	Hints       []string
}

// Config holds sampling settings sent with every request. Zero values are
// omitted so the provider's defaults apply.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
}

// DefaultConfig sends no sampling parameters.
func DefaultConfig() Config {
	return Config{}
}
