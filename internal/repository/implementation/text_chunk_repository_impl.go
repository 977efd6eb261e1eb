package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/mapper"
	"academic-workflow-be/internal/model"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type TextChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TextChunkMapper
}

func NewTextChunkRepository(db *gorm.DB) contract.TextChunkRepository {
	return &TextChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewTextChunkMapper(),
	}
}

func (r *TextChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TextChunkRepositoryImpl) applyScope(db *gorm.DB, scope contract.SearchScope) *gorm.DB {
	if scope.ClassId != nil {
		db = db.Where("class_id = ?", *scope.ClassId)
	}
	if scope.AssignmentId != nil {
		db = db.Where("assignment_id = ?", *scope.AssignmentId)
	}
	if len(scope.DocumentIds) > 0 {
		db = db.Where("document_id IN ?", scope.DocumentIds)
	}
	return db
}

func (r *TextChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.TextChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.TextChunk, 0, len(chunks))
	for _, c := range chunks {
		models = append(models, r.mapper.ToModel(c))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *TextChunkRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.TextChunk, error) {
	var m model.TextChunk
	query := specification.ByID{ID: id}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TextChunkRepositoryImpl) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	var count int64
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(
		r.db.WithContext(ctx).Model(&model.TextChunk{}))
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TextChunkRepositoryImpl) ListByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.TextChunk, error) {
	var models []*model.TextChunk
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TextChunkRepositoryImpl) ListByDocumentIds(ctx context.Context, documentIds []uuid.UUID, keyword string, limit int) ([]*entity.TextChunk, error) {
	if len(documentIds) == 0 {
		return nil, nil
	}
	specs := []specification.Specification{
		specification.ByDocumentIDs{DocumentIDs: documentIds},
		specification.OrderBy{Field: "chunk_index"},
	}
	if keyword != "" {
		specs = append(specs, specification.ContentLike{Pattern: keyword})
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}
	var models []*model.TextChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// RankedSearch OR-combines one tsquery per variant so an exact phrase and
// its term conjunction compete in the same ranked pass.
func (r *TextChunkRepositoryImpl) RankedSearch(ctx context.Context, variants []string, scope contract.SearchScope, limit int) ([]*contract.RankedChunk, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	parts := make([]string, 0, len(variants))
	args := make([]interface{}, 0, len(variants))
	for _, v := range variants {
		parts = append(parts, "plainto_tsquery('english', ?)")
		args = append(args, v)
	}
	tsExpr := strings.Join(parts, " || ")

	selectArgs := append([]interface{}{}, args...)
	query := r.db.WithContext(ctx).Model(&model.TextChunk{}).
		Select(fmt.Sprintf("*, ts_rank(to_tsvector('english', content), %s) AS rank_score", tsExpr), selectArgs...).
		Where(fmt.Sprintf("to_tsvector('english', content) @@ (%s)", tsExpr), args...)
	query = r.applyScope(query, scope).
		Order("rank_score DESC").
		Limit(limit)

	var models []*model.TextChunk
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrRankedSearchUnavailable, err)
	}

	ranked := make([]*contract.RankedChunk, 0, len(models))
	for i, m := range models {
		ranked = append(ranked, &contract.RankedChunk{
			Chunk: r.mapper.ToEntity(m),
			Rank:  i,
		})
	}
	return ranked, nil
}

func (r *TextChunkRepositoryImpl) LikeSearch(ctx context.Context, variants []string, scope contract.SearchScope, limit int) ([]*entity.TextChunk, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(variants))
	args := make([]interface{}, 0, len(variants))
	for _, v := range variants {
		conditions = append(conditions, "content ILIKE ?")
		args = append(args, "%"+v+"%")
	}

	query := r.db.WithContext(ctx).
		Where(strings.Join(conditions, " OR "), args...)
	query = r.applyScope(query, scope).
		Order("word_count DESC").
		Limit(limit)

	var models []*model.TextChunk
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TextChunkRepositoryImpl) ListEmbedded(ctx context.Context, scope contract.SearchScope) ([]*entity.TextChunk, error) {
	query := r.db.WithContext(ctx).Where("embedding IS NOT NULL")
	query = r.applyScope(query, scope)

	var models []*model.TextChunk
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TextChunkRepositoryImpl) UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).
		Model(&model.TextChunk{}).
		Where("id = ?", chunkId).
		Update("embedding", vec).Error
}
