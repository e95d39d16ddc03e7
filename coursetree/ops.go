package coursetree

import "errors"

// OpType identifies one editing operation on a course tree.
type OpType string

const (
	OpAddModule       OpType = "add_module"
	OpDeleteModule    OpType = "delete_module"
	OpEditModuleTitle OpType = "edit_module_title"

	OpAddLesson       OpType = "add_lesson"
	OpDeleteLesson    OpType = "delete_lesson"
	OpEditLessonField OpType = "edit_lesson_field"

	OpAddTest    OpType = "add_test"
	OpDeleteTest OpType = "delete_test"

	OpAddQuestion      OpType = "add_question"
	OpDeleteQuestion   OpType = "delete_question"
	OpEditQuestionText OpType = "edit_question_text"

	OpAddOption           OpType = "add_option"
	OpDeleteOption        OpType = "delete_option"
	OpEditOption          OpType = "edit_option"
	OpSelectCorrectAnswer OpType = "select_correct_answer"
)

// Op is a single command applied to a working copy. Destructive
// operations carry Confirm=true; the editor UI asks the user before
// sending them and the engine refuses them without it.
type Op struct {
	Type          OpType `json:"type"`
	ModuleIndex   int    `json:"module_index"`
	LessonIndex   int    `json:"lesson_index"`
	QuestionIndex int    `json:"question_index"`
	OptionIndex   int    `json:"option_index"`
	Field         string `json:"field,omitempty"`
	Value         string `json:"value,omitempty"`
	Confirm       bool   `json:"confirm,omitempty"`
}

var (
	ErrUnknownOp       = errors.New("unknown operation type")
	ErrConfirmRequired = errors.New("destructive operation requires confirmation")
)

// Destructive reports whether an operation discards content and
// therefore requires confirmation.
func (t OpType) Destructive() bool {
	switch t {
	case OpDeleteModule, OpDeleteLesson, OpDeleteTest, OpDeleteQuestion, OpDeleteOption:
		return true
	}
	return false
}

// Apply dispatches op to the matching transformation and returns the
// new tree. The input tree is left untouched, also on error.
func Apply(mods []Module, op Op) ([]Module, error) {
	if op.Type.Destructive() && !op.Confirm {
		return nil, ErrConfirmRequired
	}

	switch op.Type {
	case OpAddModule:
		return AddModule(mods), nil
	case OpDeleteModule:
		return DeleteModule(mods, op.ModuleIndex)
	case OpEditModuleTitle:
		return EditModuleTitle(mods, op.ModuleIndex, op.Value)
	case OpAddLesson:
		return AddLesson(mods, op.ModuleIndex)
	case OpDeleteLesson:
		return DeleteLesson(mods, op.ModuleIndex, op.LessonIndex)
	case OpEditLessonField:
		return EditLessonField(mods, op.ModuleIndex, op.LessonIndex, op.Field, op.Value)
	case OpAddTest:
		return AddTest(mods, op.ModuleIndex)
	case OpDeleteTest:
		return DeleteTest(mods, op.ModuleIndex)
	case OpAddQuestion:
		return AddQuestion(mods, op.ModuleIndex)
	case OpDeleteQuestion:
		return DeleteQuestion(mods, op.ModuleIndex, op.QuestionIndex)
	case OpEditQuestionText:
		return EditQuestionText(mods, op.ModuleIndex, op.QuestionIndex, op.Value)
	case OpAddOption:
		return AddOption(mods, op.ModuleIndex, op.QuestionIndex)
	case OpDeleteOption:
		return DeleteOption(mods, op.ModuleIndex, op.QuestionIndex, op.OptionIndex)
	case OpEditOption:
		return EditOption(mods, op.ModuleIndex, op.QuestionIndex, op.OptionIndex, op.Value)
	case OpSelectCorrectAnswer:
		return SelectCorrectAnswer(mods, op.ModuleIndex, op.QuestionIndex, op.OptionIndex)
	}
	return nil, ErrUnknownOp
}
