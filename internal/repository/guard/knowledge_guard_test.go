package guard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/repository/contract"
	"line-rag-assistant/internal/repository/memory"
)

func TestGuardDelegates(t *testing.T) {
	g := NewKnowledgeGuard(memory.NewKnowledgeRepository())
	ctx := context.Background()

	require.NoError(t, g.Migrate(ctx))
	require.NoError(t, g.Create(ctx, &entity.KnowledgeItem{Content: "內容"}))

	count, err := g.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	items, err := g.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "內容", items[0].Content)

	require.NoError(t, g.DeleteAll(ctx))
	count, err = g.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGuardRebuildSeesConsistentStore(t *testing.T) {
	g := NewKnowledgeGuard(memory.NewKnowledgeRepository())
	ctx := context.Background()

	require.NoError(t, g.Create(ctx, &entity.KnowledgeItem{Content: "舊知識"}))

	err := g.Rebuild(ctx, func(repo contract.KnowledgeRepository) error {
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return repo.Create(ctx, &entity.KnowledgeItem{Content: "新知識"})
	})
	require.NoError(t, err)

	items, err := g.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "新知識", items[0].Content)
}

func TestGuardConcurrentReadsAndRebuilds(t *testing.T) {
	g := NewKnowledgeGuard(memory.NewKnowledgeRepository())
	ctx := context.Background()

	require.NoError(t, g.Create(ctx, &entity.KnowledgeItem{Content: "初始"}))

	// Readers never observe the mid-rebuild window: the store they see is
	// either the pre-rebuild one or a fully reseeded one, never empty.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				items, err := g.FindAll(ctx)
				assert.NoError(t, err)
				assert.NotEmpty(t, items)
			}
		}()
	}

	for i := 0; i < 5; i++ {
		err := g.Rebuild(ctx, func(repo contract.KnowledgeRepository) error {
			if err := repo.DeleteAll(ctx); err != nil {
				return err
			}
			return repo.Create(ctx, &entity.KnowledgeItem{Content: "重建"})
		})
		require.NoError(t, err)
	}

	wg.Wait()
}
