package guard

import (
	"context"
	"sync"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/repository/contract"
)

// KnowledgeGuard excludes the destructive rebuild from in-flight reads and
// appends. Normal operations share a read lock — the backing store already
// gives append-only inserts transactional safety — while Rebuild takes the
// write lock for its whole delete-migrate-reseed sequence, so a concurrent
// scan never iterates rows that are being deleted underneath it.
type KnowledgeGuard struct {
	mu    sync.RWMutex
	inner contract.KnowledgeRepository
}

func NewKnowledgeGuard(inner contract.KnowledgeRepository) *KnowledgeGuard {
	return &KnowledgeGuard{inner: inner}
}

func (g *KnowledgeGuard) Migrate(ctx context.Context) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.Migrate(ctx)
}

func (g *KnowledgeGuard) Create(ctx context.Context, item *entity.KnowledgeItem) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.Create(ctx, item)
}

func (g *KnowledgeGuard) FindAll(ctx context.Context) ([]*entity.KnowledgeItem, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.FindAll(ctx)
}

func (g *KnowledgeGuard) Count(ctx context.Context) (int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.Count(ctx)
}

func (g *KnowledgeGuard) DeleteAll(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.DeleteAll(ctx)
}

// Rebuild runs fn against the unguarded repository under the exclusive lock.
func (g *KnowledgeGuard) Rebuild(ctx context.Context, fn func(repo contract.KnowledgeRepository) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.inner)
}

var _ contract.KnowledgeRepository = (*KnowledgeGuard)(nil)
