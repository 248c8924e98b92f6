package mapper

import (
	"encoding/json"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/model"

	"gorm.io/datatypes"
)

type KnowledgeItemMapper struct{}

func NewKnowledgeItemMapper() *KnowledgeItemMapper {
	return &KnowledgeItemMapper{}
}

func (m *KnowledgeItemMapper) ToEntity(e *model.KnowledgeItem) *entity.KnowledgeItem {
	if e == nil {
		return nil
	}

	// A row with an unparseable or NULL embedding is still returned; the
	// retriever treats it as never matching rather than dropping the row.
	var embedding []float32
	if len(e.Embedding) > 0 {
		if err := json.Unmarshal(e.Embedding, &embedding); err != nil {
			embedding = nil
		}
	}

	return &entity.KnowledgeItem{
		Id:        e.Id,
		Content:   e.Content,
		Embedding: embedding,
		CreatedAt: e.CreatedAt,
	}
}

func (m *KnowledgeItemMapper) ToModel(e *entity.KnowledgeItem) *model.KnowledgeItem {
	if e == nil {
		return nil
	}

	var embedding datatypes.JSON
	if len(e.Embedding) > 0 {
		raw, err := json.Marshal(e.Embedding)
		if err == nil {
			embedding = datatypes.JSON(raw)
		}
	}

	return &model.KnowledgeItem{
		Id:        e.Id,
		Content:   e.Content,
		Embedding: embedding,
		CreatedAt: e.CreatedAt,
	}
}

func (m *KnowledgeItemMapper) ToEntities(items []*model.KnowledgeItem) []*entity.KnowledgeItem {
	entities := make([]*entity.KnowledgeItem, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
