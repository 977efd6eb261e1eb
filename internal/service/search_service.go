package service

import (
	"context"

	"academic-workflow-be/internal/dto"
	"academic-workflow-be/internal/repository/contract"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/search"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	searcher   *search.Searcher
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, searcher *search.Searcher) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		searcher:   searcher,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scope := contract.SearchScope{
		ClassId:      req.ClassId,
		AssignmentId: req.AssignmentId,
	}
	results, err := s.searcher.Search(ctx, uow, req.Query, scope, req.Limit)
	if err != nil {
		return nil, err
	}

	return &dto.SearchResponse{
		Query:   req.Query,
		Results: results,
		Total:   len(results),
	}, nil
}
