package service

import (
	"context"
	"encoding/json"
	"log"

	"academic-workflow-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IPublisherService pushes work onto the in-process embedding topic. It
// also satisfies runner.ChunkIndexNotifier so freshly chunked documents
// get queued for backfill without the runner knowing about messaging.
type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	NotifyChunksCreated(documentId uuid.UUID)
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}

// NotifyChunksCreated enqueues an embed request for the document. Backfill
// is best-effort; a publish failure is logged, never surfaced to the run.
func (s *publisherService) NotifyChunksCreated(documentId uuid.UUID) {
	msgPayload := dto.PublishEmbedChunksMessage{
		DocumentId: documentId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal embed message for document %s: %v", documentId, err)
		return
	}
	if err := s.Publish(context.Background(), msgJson); err != nil {
		log.Printf("[ERROR] Failed to publish embed message for document %s: %v", documentId, err)
	}
}
