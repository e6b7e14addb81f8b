package state

import (
	"sync"
	"time"
)

// Achievement is a milestone shown on the progress screen.
type Achievement struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Icon  string    `json:"icon"`
	Date  time.Time `json:"date"`
}

// Progress is the learner's running statistics.
type Progress struct {
	QuestionsAnswered int           `json:"questionsAnswered"`
	SuccessRate       float64       `json:"successRate"`
	StudyStreak       int           `json:"studyStreak"`
	WeeklyProgress    []float64     `json:"weeklyProgress"`
	Achievements      []Achievement `json:"achievements"`
}

// ProgressUpdate is a partial Progress. Nil fields are left untouched.
type ProgressUpdate struct {
	QuestionsAnswered *int          `json:"questionsAnswered,omitempty"`
	SuccessRate       *float64      `json:"successRate,omitempty"`
	StudyStreak       *int          `json:"studyStreak,omitempty"`
	WeeklyProgress    []float64     `json:"weeklyProgress,omitempty"`
	Achievements      []Achievement `json:"achievements,omitempty"`
}

// ProgressStore owns the Progress value. Nothing is derived: each field
// holds whatever the last caller wrote.
type ProgressStore struct {
	mu       sync.RWMutex
	progress Progress
	notifier *Notifier
}

// NewProgressStore creates a store with zeroed progress. n may be nil.
func NewProgressStore(n *Notifier) *ProgressStore {
	return &ProgressStore{
		progress: Progress{
			WeeklyProgress: []float64{},
			Achievements:   []Achievement{},
		},
		notifier: n,
	}
}

// Update merges u into the current progress. Scalars and WeeklyProgress
// overwrite; Achievements are appended.
func (s *ProgressStore) Update(u ProgressUpdate) {
	s.mu.Lock()
	s.merge(u)
	s.mu.Unlock()
	s.notifier.Notify()
}

// RecordCorrectAnswer counts one more answered question and sets the
// success rate to 1. The read and the write happen under one lock so a
// concurrent Update cannot be lost between them.
func (s *ProgressStore) RecordCorrectAnswer() {
	s.mu.Lock()
	s.merge(ProgressUpdate{
		QuestionsAnswered: Int(s.progress.QuestionsAnswered + 1),
		SuccessRate:       Float(1),
	})
	s.mu.Unlock()
	s.notifier.Notify()
}

// merge applies u. The caller holds s.mu.
func (s *ProgressStore) merge(u ProgressUpdate) {
	if u.QuestionsAnswered != nil {
		s.progress.QuestionsAnswered = *u.QuestionsAnswered
	}
	if u.SuccessRate != nil {
		s.progress.SuccessRate = *u.SuccessRate
	}
	if u.StudyStreak != nil {
		s.progress.StudyStreak = *u.StudyStreak
	}
	if u.WeeklyProgress != nil {
		s.progress.WeeklyProgress = append([]float64{}, u.WeeklyProgress...)
	}
	if len(u.Achievements) > 0 {
		s.progress.Achievements = append(s.progress.Achievements, u.Achievements...)
	}
}

// AddAchievement appends a single achievement.
func (s *ProgressStore) AddAchievement(a Achievement) {
	s.Update(ProgressUpdate{Achievements: []Achievement{a}})
}

// Snapshot returns a copy of the current progress.
func (s *ProgressStore) Snapshot() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.progress
	p.WeeklyProgress = append([]float64{}, s.progress.WeeklyProgress...)
	p.Achievements = append([]Achievement{}, s.progress.Achievements...)
	return p
}

// Int returns a pointer to v, for building a ProgressUpdate.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for building a ProgressUpdate.
func Float(v float64) *float64 { return &v }
