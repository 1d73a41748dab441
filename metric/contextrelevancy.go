package metric

import (
	"context"
	"fmt"
	"math"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

// ContextRelevancyOptions configures the ContextRelevancy metric
type ContextRelevancyOptions struct {
	// Name overrides the metric name; defaults to "ContextRelevancy"
	Name string
}

// ContextRelevancy returns a metric that measures how relevant the retrieved
// context is to the question using embedding similarity. Each context chunk
// is embedded and compared to the question embedding by cosine similarity;
// the score is the mean over chunks, normalized to [0,1].
func ContextRelevancy(embedder api.Embedder, opts ContextRelevancyOptions) api.Metric {
	name := opts.Name
	if name == "" {
		name = "ContextRelevancy"
	}
	return &contextRelevancyMetric{name: name, embedder: embedder}
}

type contextRelevancyMetric struct {
	name     string
	embedder api.Embedder
}

func (m *contextRelevancyMetric) Name() string {
	return m.name
}

func (m *contextRelevancyMetric) Score(ctx context.Context, rec dataset.Record) (api.MetricResult, error) {
	result := api.MetricResult{Metadata: make(map[string]any)}

	if m.embedder == nil {
		return result, ErrNoEmbedder
	}

	if len(rec.Context) == 0 {
		result.Score = 0
		result.Metadata["chunks"] = 0
		return result, nil
	}

	questionEmbed, err := m.embedder.Embed(ctx, rec.Question)
	if err != nil {
		return result, fmt.Errorf("failed to embed question: %w", err)
	}

	similarities := make([]float64, len(rec.Context))
	sum := 0.0
	for i, chunk := range rec.Context {
		chunkEmbed, err := m.embedder.Embed(ctx, chunk)
		if err != nil {
			return result, fmt.Errorf("failed to embed context chunk %d: %w", i, err)
		}
		similarities[i] = cosineSimilarity(questionEmbed, chunkEmbed)
		sum += similarities[i]
	}
	mean := sum / float64(len(rec.Context))

	// Normalize from [-1, 1] to [0, 1]
	// In practice, embeddings are usually positive, so similarity is typically in [0, 1]
	// But we handle the full range for robustness
	normalizedScore := (mean + 1.0) / 2.0
	if normalizedScore < 0 {
		normalizedScore = 0
	}
	if normalizedScore > 1 {
		normalizedScore = 1
	}

	result.Score = normalizedScore
	result.Metadata["cosine_similarities"] = similarities
	result.Metadata["chunks"] = len(rec.Context)
	result.Metadata["embedding_dim"] = len(questionEmbed)
	return result, nil
}

// cosineSimilarity computes the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}
