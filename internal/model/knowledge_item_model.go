package model

import (
	"time"

	"gorm.io/datatypes"
)

// KnowledgeItem persists one knowledge-base row. The embedding is stored as
// a JSON array of floats for portability; rows whose embedding generation
// failed carry a NULL column.
type KnowledgeItem struct {
	Id        int64          `gorm:"primaryKey;autoIncrement"`
	Content   string         `gorm:"type:text;not null"`
	Embedding datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (KnowledgeItem) TableName() string {
	return "knowledge_items"
}
