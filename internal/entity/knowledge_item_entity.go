package entity

import (
	"time"
)

// KnowledgeItem is the unit of retrieval. Embedding is nil when embedding
// generation failed for a seeded row; such rows are stored but never match.
type KnowledgeItem struct {
	Id        int64
	Content   string
	Embedding []float32
	CreatedAt time.Time
}

// HasEmbedding reports whether the item can participate in scoring.
func (k *KnowledgeItem) HasEmbedding() bool {
	return len(k.Embedding) > 0
}
