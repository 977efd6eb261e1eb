package memory

import (
	"context"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/contract"

	"github.com/google/uuid"
)

type missionRepo struct {
	s *Store
}

func (r *missionRepo) Create(ctx context.Context, mission *entity.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mission.Id = ensureId(mission.Id)
	mission.CreatedAt = ensureTime(mission.CreatedAt)
	stored := *mission
	r.s.missions = append(r.s.missions, &stored)
	return nil
}

func (r *missionRepo) Update(ctx context.Context, mission *entity.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.missions {
		if m.Id == mission.Id {
			stored := *mission
			r.s.missions[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *missionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.missions[:0]
	for _, m := range r.s.missions {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	r.s.missions = kept
	return nil
}

func (r *missionRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.missions {
		if m.Id == id {
			found := *m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *missionRepo) List(ctx context.Context, filter contract.MissionFilter) ([]*entity.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Mission
	// newest first
	for i := len(r.s.missions) - 1; i >= 0; i-- {
		m := r.s.missions[i]
		if filter.ClassId != nil && (m.ClassId == nil || *m.ClassId != *filter.ClassId) {
			continue
		}
		if filter.MissionType != "" && m.MissionType != filter.MissionType {
			continue
		}
		if filter.State != "" && m.State != filter.State {
			continue
		}
		found := *m
		out = append(out, &found)
	}
	return out, nil
}

type missionBoxRepo struct {
	s *Store
}

func (r *missionBoxRepo) CreateBulk(ctx context.Context, boxes []*entity.MissionBox) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range boxes {
		b.Id = ensureId(b.Id)
		b.CreatedAt = ensureTime(b.CreatedAt)
		stored := *b
		r.s.boxes = append(r.s.boxes, &stored)
	}
	return nil
}

func (r *missionBoxRepo) Update(ctx context.Context, box *entity.MissionBox) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.boxes {
		if b.Id == box.Id {
			stored := *box
			r.s.boxes[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *missionBoxRepo) FindByIdInMission(ctx context.Context, boxId, missionId uuid.UUID) (*entity.MissionBox, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.boxes {
		if b.Id == boxId && b.MissionId == missionId {
			found := *b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *missionBoxRepo) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionBox, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MissionBox
	for _, b := range r.s.boxes {
		if b.MissionId == missionId {
			found := *b
			out = append(out, &found)
		}
	}
	// insertion preserves order_index for template-created rows; sort anyway
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].OrderIndex > out[j].OrderIndex; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (r *missionBoxRepo) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.boxes[:0]
	for _, b := range r.s.boxes {
		if b.MissionId != missionId {
			kept = append(kept, b)
		}
	}
	r.s.boxes = kept
	return nil
}

type missionArtifactRepo struct {
	s *Store
}

func (r *missionArtifactRepo) Create(ctx context.Context, artifact *entity.MissionArtifact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	artifact.Id = ensureId(artifact.Id)
	artifact.CreatedAt = ensureTime(artifact.CreatedAt)
	stored := *artifact
	r.s.artifacts = append(r.s.artifacts, &stored)
	return nil
}

func (r *missionArtifactRepo) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.MissionArtifact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MissionArtifact
	for _, a := range r.s.artifacts {
		if a.MissionId == missionId {
			found := *a
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *missionArtifactRepo) ListByMissionAndType(ctx context.Context, missionId uuid.UUID, artifactType string) ([]*entity.MissionArtifact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MissionArtifact
	for _, a := range r.s.artifacts {
		if a.MissionId == missionId && a.ArtifactType == artifactType {
			found := *a
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *missionArtifactRepo) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.artifacts[:0]
	for _, a := range r.s.artifacts {
		if a.MissionId != missionId {
			kept = append(kept, a)
		}
	}
	r.s.artifacts = kept
	return nil
}
