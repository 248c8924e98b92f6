package controller

import (
	"encoding/json"

	"line-rag-assistant/internal/dto"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/service"
	"line-rag-assistant/pkg/line"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Callback(ctx *fiber.Ctx) error
}

type webhookController struct {
	channelSecret string
	publisher     service.IPublisherService
	logger        logger.ILogger
}

func NewWebhookController(
	channelSecret string,
	publisher service.IPublisherService,
	log logger.ILogger,
) IWebhookController {
	return &webhookController{
		channelSecret: channelSecret,
		publisher:     publisher,
		logger:        log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post("/callback", c.Callback)
}

// Callback verifies the webhook signature, queues the events this bot reacts
// to, and acknowledges immediately. Processing and the outbound reply happen
// on the consumer side.
func (c *webhookController) Callback(ctx *fiber.Ctx) error {
	body := ctx.Body()

	signature := ctx.Get("X-Line-Signature")
	if !line.ValidateSignature(c.channelSecret, signature, body) {
		c.logger.Warn("webhook", "invalid webhook signature", nil)
		return ctx.Status(fiber.StatusBadRequest).SendString("invalid signature")
	}

	var req dto.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.logger.Warn("webhook", "malformed webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusBadRequest).SendString("malformed body")
	}

	for _, event := range req.Events {
		inbound := c.toInboundEvent(event)
		if inbound == nil {
			continue
		}
		if err := c.publisher.PublishInboundEvent(ctx.Context(), inbound); err != nil {
			c.logger.Error("webhook", "failed to queue inbound event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return ctx.SendString("OK")
}

func (c *webhookController) toInboundEvent(event *dto.WebhookEvent) *dto.InboundChatMessage {
	switch event.Type {
	case "message":
		if event.Message == nil || event.Message.Type != "text" {
			return nil
		}
		inbound := &dto.InboundChatMessage{
			Kind:       dto.InboundKindText,
			MessageId:  event.Message.Id,
			ReplyToken: event.ReplyToken,
			Text:       event.Message.Text,
		}
		if event.Source != nil {
			inbound.UserId = event.Source.UserId
			inbound.GroupId = event.Source.GroupId
		}
		return inbound

	case "memberJoined":
		inbound := &dto.InboundChatMessage{
			Kind:       dto.InboundKindMemberJoined,
			ReplyToken: event.ReplyToken,
		}
		if event.Source != nil {
			inbound.GroupId = event.Source.GroupId
		}
		if event.Joined != nil {
			for _, member := range event.Joined.Members {
				inbound.JoinedUserIds = append(inbound.JoinedUserIds, member.UserId)
			}
		}
		return inbound

	case "postback":
		// Logged for visibility, no reply.
		if event.Postback != nil {
			c.logger.Info("webhook", "postback received", map[string]interface{}{
				"data": event.Postback.Data,
			})
		}
		return nil

	default:
		return nil
	}
}
