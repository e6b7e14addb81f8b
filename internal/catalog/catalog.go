// Package catalog holds the fixed subject and difficulty enumerations
// offered by the tutor.
package catalog

import "strings"

// Subject is a topic area the learner can study.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Difficulty is a learner level used to tune explanations.
type Difficulty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Difficulty identifiers.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

var subjects = []Subject{
	{ID: "math", Name: "Mathematics", Icon: "📐"},
	{ID: "science", Name: "Science", Icon: "🔬"},
	{ID: "history", Name: "History", Icon: "📚"},
	{ID: "language", Name: "Language Arts", Icon: "✍️"},
	{ID: "programming", Name: "Programming", Icon: "💻"},
}

var difficulties = []Difficulty{
	{ID: Beginner, Name: "Beginner"},
	{ID: Intermediate, Name: "Intermediate"},
	{ID: Advanced, Name: "Advanced"},
}

// Subjects returns all subjects in display order.
func Subjects() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Difficulties returns all difficulty levels from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficulties))
	copy(out, difficulties)
	return out
}

// SubjectByID looks up a subject by its identifier.
func SubjectByID(id string) (Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// DifficultyByID looks up a difficulty by its identifier.
func DifficultyByID(id string) (Difficulty, bool) {
	for _, d := range difficulties {
		if d.ID == id {
			return d, true
		}
	}
	return Difficulty{}, false
}

// DifficultyScore maps a difficulty identifier or display name to a
// numeric score. Unknown values score as beginner.
func DifficultyScore(id string) int {
	switch strings.ToLower(id) {
	case Intermediate:
		return 2
	case Advanced:
		return 3
	default:
		return 1
	}
}
