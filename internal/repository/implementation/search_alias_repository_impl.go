package implementation

import (
	"context"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/mapper"
	"academic-workflow-be/internal/model"
	"academic-workflow-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SearchAliasRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchAliasMapper
}

func NewSearchAliasRepository(db *gorm.DB) contract.SearchAliasRepository {
	return &SearchAliasRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchAliasMapper(),
	}
}

func (r *SearchAliasRepositoryImpl) Create(ctx context.Context, alias *entity.SearchAlias) error {
	m := r.mapper.ToModel(alias)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*alias = *r.mapper.ToEntity(m)
	return nil
}

func (r *SearchAliasRepositoryImpl) FindCanonicalTerms(ctx context.Context, term string) ([]string, error) {
	var terms []string
	err := r.db.WithContext(ctx).
		Model(&model.SearchAlias{}).
		Where("LOWER(term) = LOWER(?)", term).
		Pluck("canonical_term", &terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *SearchAliasRepositoryImpl) FindAliasTerms(ctx context.Context, canonical string) ([]string, error) {
	var terms []string
	err := r.db.WithContext(ctx).
		Model(&model.SearchAlias{}).
		Where("LOWER(canonical_term) = LOWER(?)", canonical).
		Pluck("term", &terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}
