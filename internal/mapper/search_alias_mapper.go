package mapper

import (
	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/model"
)

type SearchAliasMapper struct{}

func NewSearchAliasMapper() *SearchAliasMapper {
	return &SearchAliasMapper{}
}

func (m *SearchAliasMapper) ToEntity(a *model.SearchAlias) *entity.SearchAlias {
	if a == nil {
		return nil
	}
	return &entity.SearchAlias{
		Id:            a.Id,
		Term:          a.Term,
		CanonicalTerm: a.CanonicalTerm,
	}
}

func (m *SearchAliasMapper) ToModel(e *entity.SearchAlias) *model.SearchAlias {
	if e == nil {
		return nil
	}
	return &model.SearchAlias{
		Id:            e.Id,
		Term:          e.Term,
		CanonicalTerm: e.CanonicalTerm,
	}
}
