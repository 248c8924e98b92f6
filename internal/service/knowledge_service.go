package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/repository/contract"
	"line-rag-assistant/internal/repository/guard"
	"line-rag-assistant/pkg/embedding"
)

// Ingestion failure taxonomy. ErrEmbedderUnavailable vs ErrEmbeddingFailed
// matters to the end user: one means "try again later", the other means the
// service rejected this particular text.
var (
	ErrEmptyContent        = errors.New("knowledge content is empty")
	ErrEmbedderUnavailable = errors.New("embedder unavailable")
	ErrEmbeddingFailed     = errors.New("embedding generation failed")
	ErrStorageWrite        = errors.New("knowledge storage write failed")
	ErrResetDisabled       = errors.New("destructive reset is disabled")
)

type IKnowledgeService interface {
	// Setup ensures the schema exists. Idempotent, cheap once created.
	Setup(ctx context.Context) error

	// SeedIfEmpty populates the store with the configured seed set when it
	// holds zero items. Returns the number of items inserted.
	SeedIfEmpty(ctx context.Context) (int, error)

	// Add embeds content and appends one item. The only externally
	// triggered mutation.
	Add(ctx context.Context, content string) (*entity.KnowledgeItem, error)

	// Reset wipes and reseeds the store under an exclusive lock. Returns
	// the number of reseeded items.
	Reset(ctx context.Context) (int, error)

	List(ctx context.Context) ([]*entity.KnowledgeItem, error)
}

type knowledgeService struct {
	repo       *guard.KnowledgeGuard
	provider   embedding.EmbeddingProvider
	seeds      []string
	allowReset bool
	logger     logger.ILogger
}

func NewKnowledgeService(
	repo *guard.KnowledgeGuard,
	provider embedding.EmbeddingProvider,
	seeds []string,
	allowReset bool,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		repo:       repo,
		provider:   provider,
		seeds:      seeds,
		allowReset: allowReset,
		logger:     log,
	}
}

func (s *knowledgeService) Setup(ctx context.Context) error {
	return s.repo.Migrate(ctx)
}

func (s *knowledgeService) SeedIfEmpty(ctx context.Context) (int, error) {
	return s.seedIfEmpty(ctx, s.repo)
}

func (s *knowledgeService) seedIfEmpty(ctx context.Context, repo contract.KnowledgeRepository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, seed := range s.seeds {
		item := &entity.KnowledgeItem{
			Content:   seed,
			CreatedAt: time.Now(),
		}

		// Partial seeding is acceptable: a seed whose embedding fails is
		// skipped, not fatal.
		res, err := s.provider.Generate(seed, embedding.TaskRetrievalDocument)
		if err != nil {
			s.logger.Warn("knowledge", "seed embedding failed, skipping item", map[string]interface{}{
				"content": seed,
				"error":   err.Error(),
			})
			continue
		}
		item.Embedding = res.Embedding.Values

		if err := repo.Create(ctx, item); err != nil {
			s.logger.Error("knowledge", "seed insert failed, skipping item", map[string]interface{}{
				"content": seed,
				"error":   err.Error(),
			})
			continue
		}
		inserted++
	}

	s.logger.Info("knowledge", "seeded knowledge base", map[string]interface{}{
		"requested": len(s.seeds),
		"inserted":  inserted,
	})
	return inserted, nil
}

func (s *knowledgeService) Add(ctx context.Context, content string) (*entity.KnowledgeItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	res, err := s.provider.Generate(content, embedding.TaskRetrievalDocument)
	if err != nil {
		s.logger.Warn("knowledge", "ingestion embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, embedding.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrEmbedderUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	item := &entity.KnowledgeItem{
		Content:   content,
		Embedding: res.Embedding.Values,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("knowledge", "ingestion insert failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.logger.Info("knowledge", "knowledge item added", map[string]interface{}{
		"id": item.Id,
	})
	return item, nil
}

func (s *knowledgeService) Reset(ctx context.Context) (int, error) {
	if !s.allowReset {
		return 0, ErrResetDisabled
	}

	seeded := 0
	err := s.repo.Rebuild(ctx, func(repo contract.KnowledgeRepository) error {
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		n, err := s.seedIfEmpty(ctx, repo)
		seeded = n
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("knowledge", "knowledge base rebuilt", map[string]interface{}{
		"seeded": seeded,
	})
	return seeded, nil
}

func (s *knowledgeService) List(ctx context.Context) ([]*entity.KnowledgeItem, error) {
	return s.repo.FindAll(ctx)
}
