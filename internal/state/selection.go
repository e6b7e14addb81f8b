// Package state holds the learner's subject/difficulty selection and
// progress statistics for the life of the process.
package state

import (
	"sync"

	"github.com/abhisek/tutor/internal/catalog"
)

// Selection holds at most one Subject and one Difficulty. Each slot is
// replaced wholesale and changes independently of the other.
type Selection struct {
	mu         sync.RWMutex
	subject    *catalog.Subject
	difficulty *catalog.Difficulty
	notifier   *Notifier
}

// NewSelection creates an empty selection. n may be nil.
func NewSelection(n *Notifier) *Selection {
	return &Selection{notifier: n}
}

// SetSubject replaces the selected subject.
func (s *Selection) SetSubject(subject catalog.Subject) {
	s.mu.Lock()
	s.subject = &subject
	s.mu.Unlock()
	s.notifier.Notify()
}

// SetDifficulty replaces the selected difficulty.
func (s *Selection) SetDifficulty(difficulty catalog.Difficulty) {
	s.mu.Lock()
	s.difficulty = &difficulty
	s.mu.Unlock()
	s.notifier.Notify()
}

// Subject returns the selected subject, if any.
func (s *Selection) Subject() (catalog.Subject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.subject == nil {
		return catalog.Subject{}, false
	}
	return *s.subject, true
}

// Difficulty returns the selected difficulty, if any.
func (s *Selection) Difficulty() (catalog.Difficulty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.difficulty == nil {
		return catalog.Difficulty{}, false
	}
	return *s.difficulty, true
}

// Ready reports whether both a subject and a difficulty are selected.
func (s *Selection) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject != nil && s.difficulty != nil
}
