package mapper

import (
	"encoding/json"
	"time"

	"academic-workflow-be/internal/constant"
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/model"

	"gorm.io/datatypes"
)

type MissionMapper struct{}

func NewMissionMapper() *MissionMapper {
	return &MissionMapper{}
}

func (m *MissionMapper) ToEntity(mi *model.Mission) *entity.Mission {
	if mi == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(mi.Metadata) > 0 {
		_ = json.Unmarshal(mi.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !mi.UpdatedAt.IsZero() {
		t := mi.UpdatedAt
		updatedAt = &t
	}

	return &entity.Mission{
		Id:           mi.Id,
		Name:         mi.Name,
		MissionType:  mi.MissionType,
		State:        mi.State,
		ClassId:      mi.ClassId,
		AssignmentId: mi.AssignmentId,
		Metadata:     metadata,
		CreatedAt:    mi.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *MissionMapper) ToModel(e *entity.Mission) *model.Mission {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		metadata, _ = json.Marshal(e.Metadata)
	}

	mi := &model.Mission{
		Id:           e.Id,
		Name:         e.Name,
		MissionType:  e.MissionType,
		State:        e.State,
		ClassId:      e.ClassId,
		AssignmentId: e.AssignmentId,
		Metadata:     metadata,
		CreatedAt:    e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		mi.UpdatedAt = *e.UpdatedAt
	}
	return mi
}

func (m *MissionMapper) ToEntities(models []*model.Mission) []*entity.Mission {
	entities := make([]*entity.Mission, len(models))
	for i, mi := range models {
		entities[i] = m.ToEntity(mi)
	}
	return entities
}

type MissionBoxMapper struct{}

func NewMissionBoxMapper() *MissionBoxMapper {
	return &MissionBoxMapper{}
}

func (m *MissionBoxMapper) ToEntity(b *model.MissionBox) *entity.MissionBox {
	if b == nil {
		return nil
	}

	var config map[string]interface{}
	if len(b.Config) > 0 {
		_ = json.Unmarshal(b.Config, &config)
	}

	return &entity.MissionBox{
		Id:         b.Id,
		MissionId:  b.MissionId,
		BoxType:    constant.BoxType(b.BoxType),
		OrderIndex: b.OrderIndex,
		State:      b.State,
		LastRunAt:  b.LastRunAt,
		LastError:  b.LastError,
		Config:     config,
		CreatedAt:  b.CreatedAt,
	}
}

func (m *MissionBoxMapper) ToModel(e *entity.MissionBox) *model.MissionBox {
	if e == nil {
		return nil
	}

	var config datatypes.JSON
	if e.Config != nil {
		config, _ = json.Marshal(e.Config)
	}

	return &model.MissionBox{
		Id:         e.Id,
		MissionId:  e.MissionId,
		BoxType:    string(e.BoxType),
		OrderIndex: e.OrderIndex,
		State:      e.State,
		LastRunAt:  e.LastRunAt,
		LastError:  e.LastError,
		Config:     config,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *MissionBoxMapper) ToEntities(models []*model.MissionBox) []*entity.MissionBox {
	entities := make([]*entity.MissionBox, len(models))
	for i, b := range models {
		entities[i] = m.ToEntity(b)
	}
	return entities
}

type MissionArtifactMapper struct{}

func NewMissionArtifactMapper() *MissionArtifactMapper {
	return &MissionArtifactMapper{}
}

func (m *MissionArtifactMapper) ToEntity(a *model.MissionArtifact) *entity.MissionArtifact {
	if a == nil {
		return nil
	}
	return &entity.MissionArtifact{
		Id:           a.Id,
		MissionId:    a.MissionId,
		BoxId:        a.BoxId,
		ArtifactType: a.ArtifactType,
		Title:        a.Title,
		Content:      json.RawMessage(a.Content),
		SourceRefs:   json.RawMessage(a.SourceRefs),
		CreatedAt:    a.CreatedAt,
	}
}

func (m *MissionArtifactMapper) ToModel(e *entity.MissionArtifact) *model.MissionArtifact {
	if e == nil {
		return nil
	}
	return &model.MissionArtifact{
		Id:           e.Id,
		MissionId:    e.MissionId,
		BoxId:        e.BoxId,
		ArtifactType: e.ArtifactType,
		Title:        e.Title,
		Content:      datatypes.JSON(e.Content),
		SourceRefs:   datatypes.JSON(e.SourceRefs),
		CreatedAt:    e.CreatedAt,
	}
}

func (m *MissionArtifactMapper) ToEntities(models []*model.MissionArtifact) []*entity.MissionArtifact {
	entities := make([]*entity.MissionArtifact, len(models))
	for i, a := range models {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
