package bootstrap

import (
	"log"

	"academic-workflow-be/internal/config"
	"academic-workflow-be/internal/controller"
	"academic-workflow-be/internal/pkg/logger"
	"academic-workflow-be/internal/repository/memory"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/internal/service"
	"academic-workflow-be/pkg/embedding"
	"academic-workflow-be/pkg/extraction"
	"academic-workflow-be/pkg/mission/runner"
	"academic-workflow-be/pkg/mission/template"
	"academic-workflow-be/pkg/search"

	pktNats "academic-workflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MissionController controller.IMissionController
	SearchController  controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles main.go may need to close.
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

// NewContainer wires the object graph. db may be nil: the mission engine
// then runs on the in-memory store, which is enough for local development
// without Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Println("[WARN] No database configured, using in-memory store")
		uowFactory = memory.NewStore()
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider is optional; retrieval works fully without it.
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		log.Printf("[INFO] No embedding provider configured, semantic augmentation disabled")
	}

	// NATS is optional too; lifecycle events are best-effort.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedChunksTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedChunksTopic,
		uowFactory,
		embeddingProvider,
	)

	extractor := extraction.NewPlainTextService(cfg.App.UploadDir)
	searcher := search.NewSearcher(embeddingProvider, sysLogger)
	registry := template.NewRegistry()
	boxRunner := runner.NewRunner(extractor, searcher, publisherService, sysLogger)

	missionService := service.NewMissionService(uowFactory, registry, boxRunner, natsPub, sysLogger)
	searchService := service.NewSearchService(uowFactory, searcher)

	// 4. Controllers
	missionController := controller.NewMissionController(missionService)
	searchController := controller.NewSearchController(searchService)

	return &Container{
		MissionController: missionController,
		SearchController:  searchController,
		ConsumerService:   consumerService,
		NatsPublisher:     natsPub,
		Logger:            sysLogger,
	}
}
