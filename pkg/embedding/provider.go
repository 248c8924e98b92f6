package embedding

import "errors"

// ErrUnavailable wraps transport-level failures: the embedding service could
// not be reached at all. Callers use errors.Is to distinguish this from a
// reachable service rejecting the call.
var ErrUnavailable = errors.New("embedding service unreachable")

// Task types understood by the Gemini embedding API. Ollama ignores them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations perform exactly one remote call per Generate: no retry,
// no caching.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
