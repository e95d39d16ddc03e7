// Package session keeps the transient per-user working state: course
// editing sessions (a working copy of one course tree) and learner
// course sessions (position and quiz attempt). Nothing here touches
// the database; sessions are discarded on restart and swept when
// stale.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"lms/coursetree"
	"lms/progress"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrSaveInFlight = errors.New("a save is already in progress for this session")
)

// EditSession is the in-memory working copy of a course being edited.
// It is only ever persisted as a whole, by an explicit save; every
// operation before that is a pure tree transition.
type EditSession struct {
	ID       string
	CourseID uint
	AdminID  uint

	Title       string
	Description string
	Content     string
	VideoURL    string
	Modules     []coursetree.Module

	saving  bool
	touched time.Time
	mu      sync.Mutex
}

// Apply runs one editing operation against the working copy.
func (s *EditSession) Apply(op coursetree.Op) ([]coursetree.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mods, err := coursetree.Apply(s.Modules, op)
	if err != nil {
		return nil, err
	}
	s.Modules = mods
	s.touched = time.Now()
	return mods, nil
}

// SetField updates one of the course's top-level fields in the
// working copy.
func (s *EditSession) SetField(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case "title":
		s.Title = value
	case "description":
		s.Description = value
	case "content":
		s.Content = value
	case "videoUrl":
		s.VideoURL = value
	}
	s.touched = time.Now()
}

// Snapshot returns the current working copy for saving or display.
func (s *EditSession) Snapshot() ([]coursetree.Module, string, string, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Modules, s.Title, s.Description, s.Content, s.VideoURL
}

// BeginSave marks a save as in flight. A second save on the same
// session while one is outstanding is refused: two overlapping writes
// would race and the later one would silently win.
func (s *EditSession) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	s.saving = true
	return nil
}

// EndSave clears the in-flight marker. Called whether or not the
// write succeeded; on failure the working copy stays intact so the
// editor can retry.
func (s *EditSession) EndSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	s.touched = time.Now()
}

// LearnerSession tracks one learner working through one course.
type LearnerSession struct {
	ID       string
	UserID   uint
	CourseID uint

	Pos  progress.Position
	Quiz *progress.QuizState

	touched time.Time
	mu      sync.Mutex
}

// Navigate applies a position transition under the session lock.
func (s *LearnerSession) Navigate(fn func(progress.Position) progress.Position) progress.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pos = fn(s.Pos)
	s.touched = time.Now()
	return s.Pos
}

// Position returns the current position.
func (s *LearnerSession) Position() progress.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pos
}

// QuizAnswer records an answer, creating the quiz attempt on first
// use. Re-selecting a question overwrites the earlier choice.
func (s *LearnerSession) QuizAnswer(questionIndex, optionIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Quiz == nil {
		s.Quiz = progress.NewQuizState()
	}
	s.Quiz.Answer(questionIndex, optionIndex)
	if questionIndex >= s.Quiz.Current {
		s.Quiz.Current = questionIndex + 1
	}
	s.touched = time.Now()
}

// QuizAnswers returns a copy of the recorded answers.
func (s *LearnerSession) QuizAnswers() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers := map[int]int{}
	if s.Quiz != nil {
		for k, v := range s.Quiz.Answers {
			answers[k] = v
		}
	}
	return answers
}

// ResetQuiz clears the current attempt so the learner can retake the
// quiz for review.
func (s *LearnerSession) ResetQuiz() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Quiz = nil
	s.touched = time.Now()
}

// Store is an in-memory session registry keyed by uuid.
type Store struct {
	mu       sync.RWMutex
	edits    map[string]*EditSession
	learners map[string]*LearnerSession
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{
		edits:    map[string]*EditSession{},
		learners: map[string]*LearnerSession{},
	}
}

// Sessions is the process-wide registry.
var Sessions = NewStore()

// OpenEdit registers a new editing session seeded with a course
// snapshot.
func (st *Store) OpenEdit(courseID, adminID uint, title, description, content, videoURL string, mods []coursetree.Module) *EditSession {
	s := &EditSession{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		AdminID:     adminID,
		Title:       title,
		Description: description,
		Content:     content,
		VideoURL:    videoURL,
		Modules:     mods,
		touched:     time.Now(),
	}
	st.mu.Lock()
	st.edits[s.ID] = s
	st.mu.Unlock()
	return s
}

// Edit looks up an editing session.
func (st *Store) Edit(id string) (*EditSession, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.edits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// CloseEdit discards an editing session without persisting anything.
func (st *Store) CloseEdit(id string) {
	st.mu.Lock()
	delete(st.edits, id)
	st.mu.Unlock()
}

// OpenLearner registers a new learner session at the starting
// position for the given tree.
func (st *Store) OpenLearner(userID, courseID uint, mods []coursetree.Module) *LearnerSession {
	s := &LearnerSession{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
		Pos:      progress.Start(mods),
		touched:  time.Now(),
	}
	st.mu.Lock()
	st.learners[s.ID] = s
	st.mu.Unlock()
	return s
}

// Learner looks up a learner session.
func (st *Store) Learner(id string) (*LearnerSession, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.learners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// CloseLearner drops a learner session.
func (st *Store) CloseLearner(id string) {
	st.mu.Lock()
	delete(st.learners, id)
	st.mu.Unlock()
}

// SweepExpired drops sessions untouched for longer than maxAge and
// returns how many were removed.
func (st *Store) SweepExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.edits {
		s.mu.Lock()
		stale := s.touched.Before(cutoff) && !s.saving
		s.mu.Unlock()
		if stale {
			delete(st.edits, id)
			removed++
		}
	}
	for id, s := range st.learners {
		s.mu.Lock()
		stale := s.touched.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.learners, id)
			removed++
		}
	}
	return removed
}
