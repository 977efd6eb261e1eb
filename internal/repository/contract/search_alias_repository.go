package contract

import (
	"context"

	"academic-workflow-be/internal/entity"
)

// SearchAliasRepository is the bidirectional alias lookup. Absence of the
// table (or any lookup failure) must degrade to no expansion, never error
// the search path.
type SearchAliasRepository interface {
	Create(ctx context.Context, alias *entity.SearchAlias) error
	// FindCanonicalTerms resolves term -> canonical forms.
	FindCanonicalTerms(ctx context.Context, term string) ([]string, error)
	// FindAliasTerms resolves canonical -> alias terms.
	FindAliasTerms(ctx context.Context, canonical string) ([]string, error)
}
