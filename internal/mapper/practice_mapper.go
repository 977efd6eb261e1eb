package mapper

import (
	"encoding/json"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/model"

	"gorm.io/datatypes"
)

type PracticeMapper struct{}

func NewPracticeMapper() *PracticeMapper {
	return &PracticeMapper{}
}

func (m *PracticeMapper) SessionToEntity(s *model.PracticeSession) *entity.PracticeSession {
	if s == nil {
		return nil
	}

	var score entity.PracticeScore
	if len(s.Score) > 0 {
		_ = json.Unmarshal(s.Score, &score)
	}

	return &entity.PracticeSession{
		Id:        s.Id,
		MissionId: s.MissionId,
		State:     s.State,
		Score:     score,
		CreatedAt: s.CreatedAt,
	}
}

func (m *PracticeMapper) SessionToModel(e *entity.PracticeSession) *model.PracticeSession {
	if e == nil {
		return nil
	}

	score, _ := json.Marshal(e.Score)

	return &model.PracticeSession{
		Id:        e.Id,
		MissionId: e.MissionId,
		State:     e.State,
		Score:     datatypes.JSON(score),
		CreatedAt: e.CreatedAt,
	}
}

func (m *PracticeMapper) ItemToEntity(i *model.PracticeItem) *entity.PracticeItem {
	if i == nil {
		return nil
	}

	var citations []entity.ChunkCitation
	if len(i.Citations) > 0 {
		_ = json.Unmarshal(i.Citations, &citations)
	}

	return &entity.PracticeItem{
		Id:             i.Id,
		SessionId:      i.SessionId,
		Prompt:         i.Prompt,
		ExpectedAnswer: i.ExpectedAnswer,
		UserAnswer:     i.UserAnswer,
		State:          i.State,
		Citations:      citations,
		Checks:         json.RawMessage(i.Checks),
		AnsweredAt:     i.AnsweredAt,
		CreatedAt:      i.CreatedAt,
	}
}

func (m *PracticeMapper) ItemToModel(e *entity.PracticeItem) *model.PracticeItem {
	if e == nil {
		return nil
	}

	var citations datatypes.JSON
	if e.Citations != nil {
		citations, _ = json.Marshal(e.Citations)
	}

	return &model.PracticeItem{
		Id:             e.Id,
		SessionId:      e.SessionId,
		Prompt:         e.Prompt,
		ExpectedAnswer: e.ExpectedAnswer,
		UserAnswer:     e.UserAnswer,
		State:          e.State,
		Citations:      citations,
		Checks:         datatypes.JSON(e.Checks),
		AnsweredAt:     e.AnsweredAt,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *PracticeMapper) ItemsToEntities(models []*model.PracticeItem) []*entity.PracticeItem {
	entities := make([]*entity.PracticeItem, len(models))
	for i, it := range models {
		entities[i] = m.ItemToEntity(it)
	}
	return entities
}
