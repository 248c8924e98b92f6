package memory

import (
	"context"
	"sync"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/repository/contract"
)

// KnowledgeRepository is an in-memory contract.KnowledgeRepository used by
// unit tests and the simulation tooling. It mirrors the append-only,
// monotonically-assigned-id semantics of the gorm implementation.
type KnowledgeRepository struct {
	mu     sync.RWMutex
	items  []*entity.KnowledgeItem
	nextId int64
}

func NewKnowledgeRepository() *KnowledgeRepository {
	return &KnowledgeRepository{nextId: 1}
}

func (r *KnowledgeRepository) Migrate(ctx context.Context) error {
	return nil
}

func (r *KnowledgeRepository) Create(ctx context.Context, item *entity.KnowledgeItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.Id = r.nextId
	r.nextId++

	stored := *item
	r.items = append(r.items, &stored)
	return nil
}

func (r *KnowledgeRepository) FindAll(ctx context.Context) ([]*entity.KnowledgeItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.KnowledgeItem, len(r.items))
	for i, item := range r.items {
		copied := *item
		out[i] = &copied
	}
	return out, nil
}

func (r *KnowledgeRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *KnowledgeRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Ids are never reused, even across a rebuild.
	r.items = nil
	return nil
}

var _ contract.KnowledgeRepository = (*KnowledgeRepository)(nil)
