package coursetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDispatch(t *testing.T) {
	mods, err := Apply(nil, Op{Type: OpAddModule})
	require.NoError(t, err)
	require.Len(t, mods, 1)

	mods, err = Apply(mods, Op{Type: OpEditModuleTitle, Value: "Signs and signals"})
	require.NoError(t, err)
	assert.Equal(t, "Signs and signals", mods[0].Title)

	mods, err = Apply(mods, Op{Type: OpAddLesson})
	require.NoError(t, err)
	require.Len(t, mods[0].Lessons, 1)

	mods, err = Apply(mods, Op{Type: OpEditLessonField, Field: "title", Value: "Warning signs"})
	require.NoError(t, err)
	assert.Equal(t, "Warning signs", mods[0].Lessons[0].Title)

	mods, err = Apply(mods, Op{Type: OpAddQuestion})
	require.NoError(t, err)
	require.NotNil(t, mods[0].Test)

	mods, err = Apply(mods, Op{Type: OpAddOption})
	require.NoError(t, err)
	mods, err = Apply(mods, Op{Type: OpEditOption, Value: "Stop"})
	require.NoError(t, err)
	mods, err = Apply(mods, Op{Type: OpSelectCorrectAnswer})
	require.NoError(t, err)
	require.NotNil(t, mods[0].Test.Questions[0].CorrectAnswer)
	assert.Equal(t, 0, *mods[0].Test.Questions[0].CorrectAnswer)
}

func TestApplyUnknownOp(t *testing.T) {
	_, err := Apply(nil, Op{Type: "rename_course"})
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestDestructiveOpsRequireConfirmation(t *testing.T) {
	mods, err := Apply(nil, Op{Type: OpAddModule})
	require.NoError(t, err)

	_, err = Apply(mods, Op{Type: OpDeleteModule})
	assert.ErrorIs(t, err, ErrConfirmRequired)

	confirmed, err := Apply(mods, Op{Type: OpDeleteModule, Confirm: true})
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}

func TestDestructiveClassification(t *testing.T) {
	destructive := []OpType{OpDeleteModule, OpDeleteLesson, OpDeleteTest, OpDeleteQuestion, OpDeleteOption}
	for _, op := range destructive {
		assert.True(t, op.Destructive(), string(op))
	}

	safe := []OpType{OpAddModule, OpEditModuleTitle, OpAddLesson, OpEditLessonField,
		OpAddTest, OpAddQuestion, OpEditQuestionText, OpAddOption, OpEditOption, OpSelectCorrectAnswer}
	for _, op := range safe {
		assert.False(t, op.Destructive(), string(op))
	}
}
