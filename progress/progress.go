// Package progress drives a learner through a course's modules and
// lessons in order and grades quiz submissions. All state transitions
// are pure; persistence happens only at the completion boundary, in
// the handlers.
package progress

import "lms/coursetree"

// NoLesson is the LessonIndex sentinel for "no lesson selected", used
// when the current module has no lessons.
const NoLesson = -1

// Position is the learner's current place in a course.
type Position struct {
	ModuleIndex int `json:"module_index"`
	LessonIndex int `json:"lesson_index"`
}

// Start returns the initial position: the first module, at its first
// lesson when it has one.
func Start(mods []coursetree.Module) Position {
	if len(mods) == 0 {
		return Position{ModuleIndex: 0, LessonIndex: NoLesson}
	}
	return Position{ModuleIndex: 0, LessonIndex: firstLesson(mods[0])}
}

// SelectModule jumps to module i, resetting the lesson cursor to its
// first lesson (or the sentinel when it has none). Out-of-range i
// leaves the position unchanged.
func SelectModule(mods []coursetree.Module, pos Position, i int) Position {
	if i < 0 || i >= len(mods) {
		return pos
	}
	return Position{ModuleIndex: i, LessonIndex: firstLesson(mods[i])}
}

// Next advances to the next lesson in the current module, then to the
// next module's first lesson, and is a no-op at the end of the course.
func Next(mods []coursetree.Module, pos Position) Position {
	if pos.ModuleIndex < 0 || pos.ModuleIndex >= len(mods) {
		return pos
	}
	if pos.LessonIndex+1 < len(mods[pos.ModuleIndex].Lessons) {
		return Position{ModuleIndex: pos.ModuleIndex, LessonIndex: pos.LessonIndex + 1}
	}
	if pos.ModuleIndex+1 < len(mods) {
		return SelectModule(mods, pos, pos.ModuleIndex+1)
	}
	return pos
}

// Prev steps back to the previous lesson, jumping to the previous
// module's LAST lesson at a module boundary. A no-op at the start of
// the course.
func Prev(mods []coursetree.Module, pos Position) Position {
	if pos.ModuleIndex < 0 || pos.ModuleIndex >= len(mods) {
		return pos
	}
	if pos.LessonIndex > 0 {
		return Position{ModuleIndex: pos.ModuleIndex, LessonIndex: pos.LessonIndex - 1}
	}
	if pos.ModuleIndex > 0 {
		prev := mods[pos.ModuleIndex-1]
		last := len(prev.Lessons) - 1
		if last < 0 {
			last = NoLesson
		}
		return Position{ModuleIndex: pos.ModuleIndex - 1, LessonIndex: last}
	}
	return pos
}

// QuizState is a learner's in-flight quiz attempt. Answers maps
// question index to the selected option index; re-selecting overwrites
// (last write wins, no undo history).
type QuizState struct {
	Answers map[int]int `json:"answers"`
	Current int         `json:"current"`
}

// NewQuizState returns an empty attempt positioned at the first
// question.
func NewQuizState() *QuizState {
	return &QuizState{Answers: map[int]int{}}
}

// Answer records the selected option for a question, overwriting any
// earlier selection.
func (s *QuizState) Answer(questionIndex, optionIndex int) {
	s.Answers[questionIndex] = optionIndex
}

// Answered reports how many questions have a recorded selection.
func (s *QuizState) Answered() int {
	return len(s.Answers)
}

// Grade counts questions whose selected option index equals the
// question's correct index. Comparison is by index identity, not
// option text. An unanswered question never matches, and neither does
// a question with no correct option set.
func Grade(questions []coursetree.Question, answers map[int]int) int {
	score := 0
	for i, q := range questions {
		if q.CorrectAnswer == nil {
			continue
		}
		selected, ok := answers[i]
		if ok && selected == *q.CorrectAnswer {
			score++
		}
	}
	return score
}

// FindQuiz returns the first module's test that actually has
// questions, which is the quiz the course presents, along with the
// module index. Returns (nil, -1) when no module carries one.
func FindQuiz(mods []coursetree.Module) (*coursetree.Quiz, int) {
	for i, m := range mods {
		if m.Test != nil && len(m.Test.Questions) > 0 {
			return m.Test, i
		}
	}
	return nil, -1
}

func firstLesson(m coursetree.Module) int {
	if len(m.Lessons) == 0 {
		return NoLesson
	}
	return 0
}
