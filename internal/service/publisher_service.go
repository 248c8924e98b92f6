package service

import (
	"context"
	"encoding/json"

	"line-rag-assistant/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IPublisherService hands inbound webhook events to the chat topic so the
// HTTP handler can acknowledge the webhook immediately.
type IPublisherService interface {
	PublishInboundEvent(ctx context.Context, event *dto.InboundChatMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishInboundEvent(ctx context.Context, event *dto.InboundChatMessage) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)

	return ps.publisher.Publish(ps.topicName, msg)
}
