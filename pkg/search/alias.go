package search

import (
	"context"
	"strings"
	"time"

	"academic-workflow-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

// AliasExpander builds the list of query variants: the normalized query
// plus every alias and canonical form found for the whole query and for
// each of its terms. Lookup failures (missing table, connection trouble)
// degrade to the original query only.
type AliasExpander struct {
	cache *gocache.Cache
}

func NewAliasExpander() *AliasExpander {
	return &AliasExpander{
		cache: gocache.New(1*time.Hour, 2*time.Hour),
	}
}

// Expand returns distinct variants, normalized query first.
func (e *AliasExpander) Expand(ctx context.Context, repo contract.SearchAliasRepository, query string) []string {
	normalized := Normalize(query)
	if normalized == "" {
		return nil
	}

	if cached, found := e.cache.Get(normalized); found {
		return cached.([]string)
	}

	variants := []string{normalized}
	seen := map[string]bool{normalized: true}

	add := func(terms []string, err error) {
		if err != nil {
			return
		}
		for _, t := range terms {
			lowered := strings.ToLower(t)
			if !seen[lowered] {
				seen[lowered] = true
				variants = append(variants, lowered)
			}
		}
	}

	lookup := func(term string) {
		canonical, err := repo.FindCanonicalTerms(ctx, term)
		add(canonical, err)
		aliases, err := repo.FindAliasTerms(ctx, term)
		add(aliases, err)
	}

	lookup(normalized)
	for _, term := range strings.Fields(normalized) {
		lookup(term)
	}

	e.cache.Set(normalized, variants, gocache.DefaultExpiration)
	return variants
}
