package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/coursetree"
)

func intPtr(i int) *int { return &i }

func lesson(title string) coursetree.Lesson {
	return coursetree.Lesson{LessonID: coursetree.NewLessonID(), Title: title}
}

// threeModules builds a course shaped like the navigation cases below:
// module 0 has two lessons, module 1 has three, module 2 has one.
func threeModules() []coursetree.Module {
	return []coursetree.Module{
		{ModuleID: coursetree.NewModuleID(), Title: "Basics", Lessons: []coursetree.Lesson{lesson("a"), lesson("b")}},
		{ModuleID: coursetree.NewModuleID(), Title: "Junctions", Lessons: []coursetree.Lesson{lesson("c"), lesson("d"), lesson("e")}},
		{ModuleID: coursetree.NewModuleID(), Title: "Motorways", Lessons: []coursetree.Lesson{lesson("f")}},
	}
}

func TestStart(t *testing.T) {
	assert.Equal(t, Position{ModuleIndex: 0, LessonIndex: 0}, Start(threeModules()))
	assert.Equal(t, Position{ModuleIndex: 0, LessonIndex: NoLesson}, Start(nil))

	empty := []coursetree.Module{{ModuleID: "mod-x", Lessons: []coursetree.Lesson{}}}
	assert.Equal(t, Position{ModuleIndex: 0, LessonIndex: NoLesson}, Start(empty))
}

func TestSelectModule(t *testing.T) {
	mods := threeModules()
	pos := Start(mods)

	pos = SelectModule(mods, pos, 2)
	assert.Equal(t, Position{ModuleIndex: 2, LessonIndex: 0}, pos)

	// Out of range selections leave the position where it was.
	assert.Equal(t, pos, SelectModule(mods, pos, 3))
	assert.Equal(t, pos, SelectModule(mods, pos, -1))
}

func TestNextWalksAcrossModules(t *testing.T) {
	mods := threeModules()
	pos := Start(mods)

	expected := []Position{
		{0, 1},
		{1, 0},
		{1, 1},
		{1, 2},
		{2, 0},
		{2, 0}, // end of course, Next is a no-op
	}
	for _, want := range expected {
		pos = Next(mods, pos)
		assert.Equal(t, want, pos)
	}
}

func TestPrevJumpsToLastLessonOfPreviousModule(t *testing.T) {
	mods := threeModules()

	pos := Prev(mods, Position{ModuleIndex: 2, LessonIndex: 0})
	assert.Equal(t, Position{ModuleIndex: 1, LessonIndex: 2}, pos)

	pos = Prev(mods, pos)
	assert.Equal(t, Position{ModuleIndex: 1, LessonIndex: 1}, pos)

	// A no-op at the very start.
	start := Position{ModuleIndex: 0, LessonIndex: 0}
	assert.Equal(t, start, Prev(mods, start))
}

func TestPrevIntoLessonlessModule(t *testing.T) {
	mods := []coursetree.Module{
		{ModuleID: "mod-a", Lessons: []coursetree.Lesson{}},
		{ModuleID: "mod-b", Lessons: []coursetree.Lesson{lesson("x")}},
	}

	pos := Prev(mods, Position{ModuleIndex: 1, LessonIndex: 0})
	assert.Equal(t, Position{ModuleIndex: 0, LessonIndex: NoLesson}, pos)
}

func TestGrade(t *testing.T) {
	questions := []coursetree.Question{
		{Question: "q0", Options: []string{"a", "b"}, CorrectAnswer: intPtr(1)},
		{Question: "q1", Options: []string{"a", "b", "c"}, CorrectAnswer: intPtr(0)},
	}

	assert.Equal(t, 2, Grade(questions, map[int]int{0: 1, 1: 0}))
	assert.Equal(t, 1, Grade(questions, map[int]int{0: 1, 1: 2}))
	assert.Equal(t, 0, Grade(questions, nil), "unanswered questions score zero")
}

func TestGradeSkipsQuestionsWithoutCorrectAnswer(t *testing.T) {
	questions := []coursetree.Question{
		{Question: "q0", Options: []string{"a", "b"}, CorrectAnswer: nil},
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: intPtr(0)},
	}

	// Whatever the learner picked for q0 cannot count.
	assert.Equal(t, 1, Grade(questions, map[int]int{0: 0, 1: 0}))
}

func TestQuizStateOverwritesAnswer(t *testing.T) {
	s := NewQuizState()
	s.Answer(0, 2)
	s.Answer(0, 1)

	assert.Equal(t, 1, s.Answers[0])
	assert.Equal(t, 1, s.Answered())
}

func TestFindQuiz(t *testing.T) {
	mods := threeModules()
	quiz, idx := FindQuiz(mods)
	assert.Nil(t, quiz)
	assert.Equal(t, -1, idx)

	// An empty test does not count as a quiz.
	mods[0].Test = &coursetree.Quiz{Questions: []coursetree.Question{}}
	quiz, idx = FindQuiz(mods)
	assert.Nil(t, quiz)
	assert.Equal(t, -1, idx)

	mods[1].Test = &coursetree.Quiz{Questions: []coursetree.Question{{Question: "q"}}}
	quiz, idx = FindQuiz(mods)
	require.NotNil(t, quiz)
	assert.Equal(t, 1, idx)
}
