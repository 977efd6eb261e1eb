package memory

import (
	"context"
	"strings"

	"academic-workflow-be/internal/entity"

	"github.com/google/uuid"
)

type practiceSessionRepo struct {
	s *Store
}

func (r *practiceSessionRepo) Create(ctx context.Context, session *entity.PracticeSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session.Id = ensureId(session.Id)
	session.CreatedAt = ensureTime(session.CreatedAt)
	stored := *session
	r.s.sessions = append(r.s.sessions, &stored)
	return nil
}

func (r *practiceSessionRepo) Update(ctx context.Context, session *entity.PracticeSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, s := range r.s.sessions {
		if s.Id == session.Id {
			stored := *session
			r.s.sessions[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *practiceSessionRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.sessions {
		if s.Id == id {
			found := *s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *practiceSessionRepo) ListByMission(ctx context.Context, missionId uuid.UUID) ([]*entity.PracticeSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PracticeSession
	for i := len(r.s.sessions) - 1; i >= 0; i-- {
		if r.s.sessions[i].MissionId == missionId {
			found := *r.s.sessions[i]
			out = append(out, &found)
		}
	}
	return out, nil
}

// DeleteByMission removes the mission's sessions and their items; items
// never outlive their session.
func (r *practiceSessionRepo) DeleteByMission(ctx context.Context, missionId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	removed := make(map[uuid.UUID]bool)
	kept := r.s.sessions[:0]
	for _, s := range r.s.sessions {
		if s.MissionId != missionId {
			kept = append(kept, s)
		} else {
			removed[s.Id] = true
		}
	}
	r.s.sessions = kept

	keptItems := r.s.items[:0]
	for _, it := range r.s.items {
		if !removed[it.SessionId] {
			keptItems = append(keptItems, it)
		}
	}
	r.s.items = keptItems
	return nil
}

type practiceItemRepo struct {
	s *Store
}

func (r *practiceItemRepo) CreateBulk(ctx context.Context, items []*entity.PracticeItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		it.Id = ensureId(it.Id)
		it.CreatedAt = ensureTime(it.CreatedAt)
		stored := *it
		r.s.items = append(r.s.items, &stored)
	}
	return nil
}

func (r *practiceItemRepo) Update(ctx context.Context, item *entity.PracticeItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, it := range r.s.items {
		if it.Id == item.Id {
			stored := *item
			r.s.items[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *practiceItemRepo) FindByIdInSession(ctx context.Context, itemId, sessionId uuid.UUID) (*entity.PracticeItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.Id == itemId && it.SessionId == sessionId {
			found := *it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *practiceItemRepo) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.PracticeItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PracticeItem
	for _, it := range r.s.items {
		if it.SessionId == sessionId {
			found := *it
			out = append(out, &found)
		}
	}
	return out, nil
}

type searchAliasRepo struct {
	s *Store
}

func (r *searchAliasRepo) Create(ctx context.Context, alias *entity.SearchAlias) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	alias.Id = ensureId(alias.Id)
	stored := *alias
	r.s.aliases = append(r.s.aliases, &stored)
	return nil
}

func (r *searchAliasRepo) FindCanonicalTerms(ctx context.Context, term string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []string
	for _, a := range r.s.aliases {
		if strings.EqualFold(a.Term, term) {
			out = append(out, a.CanonicalTerm)
		}
	}
	return out, nil
}

func (r *searchAliasRepo) FindAliasTerms(ctx context.Context, canonical string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []string
	for _, a := range r.s.aliases {
		if strings.EqualFold(a.CanonicalTerm, canonical) {
			out = append(out, a.Term)
		}
	}
	return out, nil
}
