package rag

import (
	"context"
	"sort"
	"strings"

	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/repository/contract"
	"line-rag-assistant/pkg/embedding"
)

// Match is one scored knowledge item.
type Match struct {
	Distance float64
	Content  string
}

// Result is a ranked retrieval outcome. Matches are sorted by non-decreasing
// distance and already cut to top-K; Context is their newline-joined text.
// HighConfidence is true iff the best distance is strictly below the
// configured threshold.
type Result struct {
	Matches        []Match
	Context        string
	HighConfidence bool
}

// Config encapsulates retrieval parameters. Threshold semantics are strict:
// a match at exactly the threshold is still low confidence.
type Config struct {
	Metric    Metric
	Threshold float64
	TopK      int
}

// DefaultConfig returns the recommended cosine setup. The threshold is a
// tunable, not a derived constant; override it through
// RETRIEVAL_DISTANCE_THRESHOLD.
func DefaultConfig() Config {
	return Config{
		Metric:    MetricCosine,
		Threshold: 0.5,
		TopK:      3,
	}
}

// Retriever scores the whole knowledge store against a query vector. The
// corpus is small by construction, so a linear scan is deliberate: no index,
// no ANN.
type Retriever struct {
	repo     contract.KnowledgeRepository
	provider embedding.EmbeddingProvider
	distance DistanceFunc
	config   Config
	logger   logger.ILogger
}

func NewRetriever(
	repo contract.KnowledgeRepository,
	provider embedding.EmbeddingProvider,
	config Config,
	log logger.ILogger,
) (*Retriever, error) {
	distance, err := FuncForMetric(config.Metric)
	if err != nil {
		return nil, err
	}
	if config.TopK <= 0 {
		config.TopK = DefaultConfig().TopK
	}
	return &Retriever{
		repo:     repo,
		provider: provider,
		distance: distance,
		config:   config,
		logger:   log,
	}, nil
}

// Query embeds text and ranks every stored item against it. Degrades to an
// empty low-confidence result on embedding or storage failure; it never
// returns an error for those, because the caller can always answer without
// context.
func (r *Retriever) Query(ctx context.Context, text string) Result {
	embedded, err := r.provider.Generate(text, embedding.TaskRetrievalQuery)
	if err != nil {
		r.logger.Warn("retriever", "query embedding failed, answering without context", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{}
	}
	queryVec := embedded.Embedding.Values

	items, err := r.repo.FindAll(ctx)
	if err != nil {
		r.logger.Error("retriever", "knowledge scan failed, answering without context", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{}
	}
	if len(items) == 0 {
		return Result{}
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		// Rows without a vector, or with a vector of the wrong
		// dimensionality, are infinitely distant: they stay in the store
		// but can never match.
		if !item.HasEmbedding() || len(item.Embedding) != len(queryVec) {
			continue
		}
		matches = append(matches, Match{
			Distance: r.distance(queryVec, item.Embedding),
			Content:  item.Content,
		})
	}
	if len(matches) == 0 {
		return Result{}
	}

	// Stable: equal distances keep scan (insertion) order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	high := matches[0].Distance < r.config.Threshold

	if len(matches) > r.config.TopK {
		matches = matches[:r.config.TopK]
	}

	contents := make([]string, len(matches))
	for i, m := range matches {
		contents[i] = m.Content
	}

	r.logger.Debug("retriever", "query scored", map[string]interface{}{
		"candidates":      len(items),
		"matches":         len(matches),
		"best_distance":   matches[0].Distance,
		"high_confidence": high,
	})

	return Result{
		Matches:        matches,
		Context:        strings.Join(contents, "\n"),
		HighConfidence: high,
	}
}
