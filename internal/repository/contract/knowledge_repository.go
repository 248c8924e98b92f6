package contract

import (
	"context"

	"line-rag-assistant/internal/entity"
)

// KnowledgeRepository is the durable store behind the RAG core. The table is
// append-only under normal operation; DeleteAll exists solely for the
// operator-triggered rebuild.
type KnowledgeRepository interface {
	// Migrate ensures the schema exists. Idempotent.
	Migrate(ctx context.Context) error

	Create(ctx context.Context, item *entity.KnowledgeItem) error
	FindAll(ctx context.Context) ([]*entity.KnowledgeItem, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
