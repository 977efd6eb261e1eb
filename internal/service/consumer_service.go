package service

import (
	"context"
	"encoding/json"
	"log"

	"academic-workflow-be/internal/dto"
	"academic-workflow-be/internal/repository/unitofwork"
	"academic-workflow-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService backfills the embedding column for a document's chunks.
// Runs are triggered by the extract stage via the embed topic; the search
// path never waits on this.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunksMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.embeddingProvider == nil || !cs.embeddingProvider.Available() {
		log.Printf("[INFO] No embedding provider available, skipping document %s", payload.DocumentId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing chunk embeddings for document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindById(ctx, payload.DocumentId)
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		log.Printf("[WARN] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	chunks, err := uow.TextChunkRepository().ListByDocumentId(ctx, payload.DocumentId)
	if err != nil {
		log.Printf("[ERROR] Failed to list chunks for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	type chunkVector struct {
		chunkId uuid.UUID
		values  []float32
	}
	var vectors []chunkVector

	for _, chunk := range chunks {
		if len(chunk.Embedding) > 0 {
			continue // already embedded, backfill only fills gaps
		}
		res, err := cs.embeddingProvider.Generate(chunk.Content, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of document %s: %v", chunk.ChunkIndex, payload.DocumentId, err)
			msg.Nack()
			return
		}
		vectors = append(vectors, chunkVector{chunkId: chunk.Id, values: res.Embedding.Values})
	}

	if len(vectors) == 0 {
		log.Printf("[INFO] Document %s has no chunks needing embeddings", payload.DocumentId)
		msg.Ack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for _, v := range vectors {
		if err := uow.TextChunkRepository().UpdateEmbedding(ctx, v.chunkId, v.values); err != nil {
			log.Printf("[ERROR] Failed to store embedding for chunk %s: %v", v.chunkId, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Embedded %d chunks for document %s", len(vectors), payload.DocumentId)
	msg.Ack()
}
