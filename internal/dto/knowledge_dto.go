package dto

import "time"

type IngestKnowledgeRequest struct {
	Content string `json:"content" validate:"required"`
}

type KnowledgeItemResponse struct {
	Id           int64     `json:"id"`
	Content      string    `json:"content"`
	HasEmbedding bool      `json:"has_embedding"`
	CreatedAt    time.Time `json:"created_at"`
}

type KnowledgeListResponse struct {
	Count int64                    `json:"count"`
	Items []*KnowledgeItemResponse `json:"items"`
}

type RebuildKnowledgeResponse struct {
	Status string `json:"status"`
	Seeded int    `json:"seeded"`
}
