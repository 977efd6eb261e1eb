package template

import (
	"errors"

	"academic-workflow-be/internal/constant"
)

var ErrUnknownTemplate = errors.New("unknown mission template")

// StageDef is one pipeline stage: its box type and the default config the
// box is created with.
type StageDef struct {
	BoxType constant.BoxType
	Config  map[string]interface{}
}

// Template maps a mission type to its ordered stages. Stage position in
// the slice becomes the box order_index at instantiation.
type Template struct {
	Name        string
	MissionType string
	Metadata    map[string]interface{}
	Stages      []StageDef
}

// Registry holds the static template table. Adding a template is a
// registry edit; the runner never branches on template names.
type Registry struct {
	templates map[string]Template
}

func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}

	r.register(Template{
		Name:        "exam_prep",
		MissionType: constant.MissionTypeExamPrep,
		Metadata:    map[string]interface{}{"template_version": "1.0"},
		Stages: []StageDef{
			{BoxType: constant.BoxTypeInbox, Config: map[string]interface{}{"max_artifacts": 20}},
			{BoxType: constant.BoxTypeExtract, Config: map[string]interface{}{"chunk_strategy": "semantic"}},
			{BoxType: constant.BoxTypeAsk, Config: map[string]interface{}{"enable_search": true}},
			{BoxType: constant.BoxTypePractice, Config: map[string]interface{}{"question_count": 10}},
			{BoxType: constant.BoxTypeChecker, Config: map[string]interface{}{"auto_verify": false}},
			{BoxType: constant.BoxTypeCitations, Config: map[string]interface{}{"show_confidence": true}},
		},
	})

	// box-less placeholders, kept so mission creation works for every type
	r.register(Template{
		Name:        "code_review",
		MissionType: constant.MissionTypeCodeReview,
		Metadata:    map[string]interface{}{"template_version": "1.0"},
	})
	r.register(Template{
		Name:        "research",
		MissionType: constant.MissionTypeResearch,
		Metadata:    map[string]interface{}{"template_version": "1.0"},
	})

	return r
}

func (r *Registry) register(t Template) {
	r.templates[t.Name] = t
}

func (r *Registry) Get(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, ErrUnknownTemplate
	}
	return t, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	return names
}
