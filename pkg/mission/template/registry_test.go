package template

import (
	"testing"

	"academic-workflow-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExamPrep(t *testing.T) {
	r := NewRegistry()

	tpl, err := r.Get("exam_prep")
	require.NoError(t, err)
	assert.Equal(t, constant.MissionTypeExamPrep, tpl.MissionType)

	wantOrder := []constant.BoxType{
		constant.BoxTypeInbox,
		constant.BoxTypeExtract,
		constant.BoxTypeAsk,
		constant.BoxTypePractice,
		constant.BoxTypeChecker,
		constant.BoxTypeCitations,
	}
	require.Len(t, tpl.Stages, len(wantOrder))
	for i, stage := range tpl.Stages {
		assert.Equal(t, wantOrder[i], stage.BoxType)
		assert.NotNil(t, stage.Config)
	}
	assert.Equal(t, 20, tpl.Stages[0].Config["max_artifacts"])
	assert.Equal(t, 10, tpl.Stages[3].Config["question_count"])
}

func TestRegistryPlaceholderTemplates(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"code_review", "research"} {
		tpl, err := r.Get(name)
		require.NoError(t, err)
		assert.Empty(t, tpl.Stages)
	}
}

func TestRegistryUnknownTemplate(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
