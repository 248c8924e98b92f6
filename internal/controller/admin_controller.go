package controller

import (
	"errors"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/dto"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/pkg/serverutils"
	"line-rag-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, adminAuth fiber.Handler)
	ListKnowledge(ctx *fiber.Ctx) error
	IngestKnowledge(ctx *fiber.Ctx) error
	RebuildKnowledge(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type adminController struct {
	knowledgeService service.IKnowledgeService
	logger           logger.ILogger
}

func NewAdminController(knowledgeService service.IKnowledgeService, log logger.ILogger) IAdminController {
	return &adminController{
		knowledgeService: knowledgeService,
		logger:           log,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, adminAuth fiber.Handler) {
	h := r.Group("/admin/v1")
	h.Use(adminAuth)
	h.Get("knowledge", c.ListKnowledge)
	h.Post("knowledge", c.IngestKnowledge)
	h.Get("knowledge/rebuild", c.RebuildKnowledge)
	h.Get("logs", c.Logs)
}

func (c *adminController) ListKnowledge(ctx *fiber.Ctx) error {
	items, err := c.knowledgeService.List(ctx.Context())
	if err != nil {
		return err
	}

	res := &dto.KnowledgeListResponse{
		Count: int64(len(items)),
		Items: make([]*dto.KnowledgeItemResponse, len(items)),
	}
	for i, item := range items {
		res.Items[i] = &dto.KnowledgeItemResponse{
			Id:           item.Id,
			Content:      item.Content,
			HasEmbedding: item.HasEmbedding(),
			CreatedAt:    item.CreatedAt,
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list knowledge", res))
}

func (c *adminController) IngestKnowledge(ctx *fiber.Ctx) error {
	var req dto.IngestKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	item, err := c.knowledgeService.Add(ctx.Context(), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity, "Content must not be empty"))
		case errors.Is(err, service.ErrEmbedderUnavailable), errors.Is(err, service.ErrEmbeddingFailed):
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(serverutils.ErrorResponse(fiber.StatusServiceUnavailable, "Embedding service unavailable"))
		default:
			return err
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest knowledge", &dto.KnowledgeItemResponse{
		Id:           item.Id,
		Content:      item.Content,
		HasEmbedding: item.HasEmbedding(),
		CreatedAt:    item.CreatedAt,
	}))
}

// RebuildKnowledge deletes and reseeds the whole knowledge base. Destructive
// and idempotent; gated behind the config toggle.
func (c *adminController) RebuildKnowledge(ctx *fiber.Ctx) error {
	seeded, err := c.knowledgeService.Reset(ctx.Context())
	if err != nil {
		if errors.Is(err, service.ErrResetDisabled) {
			return ctx.Status(fiber.StatusForbidden).
				JSON(serverutils.ErrorResponse(fiber.StatusForbidden, constant.RebuildDisabledMessage))
		}
		c.logger.Error("admin", "knowledge rebuild failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "Rebuild failed"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebuild knowledge", &dto.RebuildKnowledgeResponse{
		Status: "rebuilt",
		Seeded: seeded,
	}))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch logs", entries))
}
