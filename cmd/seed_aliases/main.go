package main

import (
	"context"
	"log"
	"os"

	"academic-workflow-be/internal/entity"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Common academic abbreviations. Term -> canonical; the retriever expands
// both directions, so one row covers both lookups.
var aliases = map[string]string{
	"fsm":   "finite state machine",
	"dfa":   "deterministic finite automaton",
	"nfa":   "nondeterministic finite automaton",
	"bfs":   "breadth first search",
	"dfs":   "depth first search",
	"oop":   "object oriented programming",
	"os":    "operating system",
	"db":    "database",
	"ml":    "machine learning",
	"nlp":   "natural language processing",
	"pde":   "partial differential equation",
	"ode":   "ordinary differential equation",
	"lhs":   "left hand side",
	"rhs":   "right hand side",
	"wrt":   "with respect to",
	"thm":   "theorem",
	"defn":  "definition",
	"coeff": "coefficient",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	repo := uow.SearchAliasRepository()

	seeded := 0
	for term, canonical := range aliases {
		existing, err := repo.FindCanonicalTerms(ctx, term)
		if err != nil {
			log.Fatalf("Error: alias lookup failed for %q: %v", term, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := repo.Create(ctx, &entity.SearchAlias{
			Id:            uuid.New(),
			Term:          term,
			CanonicalTerm: canonical,
		}); err != nil {
			log.Fatalf("Error: failed to seed alias %q: %v", term, err)
		}
		seeded++
	}

	log.Printf("Seeded %d aliases (%d already present)", seeded, len(aliases)-seeded)
}
