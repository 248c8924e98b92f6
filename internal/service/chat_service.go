package service

import (
	"context"
	"errors"
	"strings"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/pkg/rag"
	"line-rag-assistant/pkg/rag/response"
)

// IChatService is the message dispatcher: one reserved command prefix routes
// to knowledge ingestion, everything else goes through the response policy.
type IChatService interface {
	HandleText(ctx context.Context, text string) string
}

type chatService struct {
	knowledge IKnowledgeService
	policy    *rag.Policy
	generator *response.Generator
	prefix    string
	logger    logger.ILogger
}

func NewChatService(
	knowledge IKnowledgeService,
	policy *rag.Policy,
	generator *response.Generator,
	ingestCommandPrefix string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		knowledge: knowledge,
		policy:    policy,
		generator: generator,
		prefix:    ingestCommandPrefix,
		logger:    log,
	}
}

// HandleText returns the reply for one inbound text message. It never
// errors: every failure maps to a short user-facing string.
func (cs *chatService) HandleText(ctx context.Context, text string) string {
	// Case-sensitive prefix match; the remainder is the ingestion payload.
	if cs.prefix != "" && strings.HasPrefix(text, cs.prefix) {
		return cs.handleIngest(ctx, strings.TrimSpace(text[len(cs.prefix):]))
	}

	decision := cs.policy.Build(ctx, text)
	return cs.generator.Answer(ctx, decision)
}

func (cs *chatService) handleIngest(ctx context.Context, content string) string {
	if content == "" {
		// Usage error: no remote call, no store mutation.
		return constant.ReplyIngestUsage
	}

	item, err := cs.knowledge.Add(ctx, content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			return constant.ReplyIngestUsage
		case errors.Is(err, ErrEmbedderUnavailable):
			return constant.ReplyEmbedderDown
		case errors.Is(err, ErrEmbeddingFailed):
			return constant.ReplyEmbeddingFailed
		default:
			return constant.ReplyStorageFailed
		}
	}

	return constant.ReplyIngestOKPrefix + item.Content
}
