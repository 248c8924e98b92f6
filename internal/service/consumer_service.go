package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/dto"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/pkg/line"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
)

// ILineMessenger is the outbound side of the chat platform.
type ILineMessenger interface {
	ReplyText(ctx context.Context, replyToken string, text string) error
	GetGroupMemberProfile(ctx context.Context, groupId string, userId string) (*line.MemberProfile, error)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	chatService IChatService
	messenger   ILineMessenger
	seenEvents  *cache.Cache
	logger      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	chatService IChatService,
	messenger ILineMessenger,
	log logger.ILogger,
) IConsumerService {
	// LINE redelivers webhooks on slow acknowledgement; remember handled
	// message ids long enough to cover the redelivery window.
	seen := cache.New(15*time.Minute, 5*time.Minute)

	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		chatService: chatService,
		messenger:   messenger,
		seenEvents:  seen,
		logger:      log,
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
	var event dto.InboundChatMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal inbound event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads must not loop forever
		return
	}

	if event.MessageId != "" {
		if _, dup := cs.seenEvents.Get(event.MessageId); dup {
			cs.logger.Debug("consumer", "duplicate event skipped", map[string]interface{}{
				"message_id": event.MessageId,
			})
			msg.Ack()
			return
		}
		cs.seenEvents.Set(event.MessageId, struct{}{}, cache.DefaultExpiration)
	}

	switch event.Kind {
	case dto.InboundKindText:
		cs.handleText(ctx, &event)
	case dto.InboundKindMemberJoined:
		cs.handleMemberJoined(ctx, &event)
	default:
		cs.logger.Debug("consumer", "ignoring event kind", map[string]interface{}{
			"kind": event.Kind,
		})
	}

	// Reply tokens are single-use, so a failed reply is not retriable
	// either way: always ack.
	msg.Ack()
}

func (cs *consumerService) handleText(ctx context.Context, event *dto.InboundChatMessage) {
	reply := cs.chatService.HandleText(ctx, event.Text)

	if err := cs.messenger.ReplyText(ctx, event.ReplyToken, reply); err != nil {
		cs.logger.Error("consumer", "failed to send reply", map[string]interface{}{
			"message_id": event.MessageId,
			"error":      err.Error(),
		})
	}
}

func (cs *consumerService) handleMemberJoined(ctx context.Context, event *dto.InboundChatMessage) {
	welcome := constant.ReplyWelcomeFallback
	if len(event.JoinedUserIds) > 0 && event.GroupId != "" {
		profile, err := cs.messenger.GetGroupMemberProfile(ctx, event.GroupId, event.JoinedUserIds[0])
		if err != nil {
			cs.logger.Warn("consumer", "failed to fetch member profile", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			welcome = fmt.Sprintf(constant.ReplyWelcomeFormat, profile.DisplayName)
		}
	}

	if err := cs.messenger.ReplyText(ctx, event.ReplyToken, welcome); err != nil {
		cs.logger.Error("consumer", "failed to send welcome", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
