// Package metric provides the built-in metrics: LLM-judge metrics for
// response quality, an embedding metric for context relevancy and a
// moderation-backed safety metric. Custom metrics implement api.Metric,
// or wrap a plain function with Func.
package metric

import (
	"context"
	"errors"
	"fmt"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

var (
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
	// ErrNoLLM is returned when a judge metric is constructed without an LLM
	ErrNoLLM = errors.New("LLM generator is required")
	// ErrNoEmbedder is returned when an embedding metric has no embedder
	ErrNoEmbedder = errors.New("embedder is required")
	// ErrNoModerationProvider is returned when a safety metric has no provider
	ErrNoModerationProvider = errors.New("moderation provider is required")
)

// Func adapts a plain scoring function into an api.Metric.
func Func(name string, score func(ctx context.Context, rec dataset.Record) (api.MetricResult, error)) api.Metric {
	return &funcMetric{name: name, score: score}
}

type funcMetric struct {
	name  string
	score func(ctx context.Context, rec dataset.Record) (api.MetricResult, error)
}

func (m *funcMetric) Name() string {
	return m.name
}

func (m *funcMetric) Score(ctx context.Context, rec dataset.Record) (api.MetricResult, error) {
	return m.score(ctx, rec)
}

// judgeScale is the 0-10 integer rating scale shared by the LLM judge
// metrics, normalized to [0,1] in their results.
var judgeScale = map[string]interface{}{
	"type":        "integer",
	"minimum":     0,
	"maximum":     10,
	"description": "Rating from 0 (worst) to 10 (best)",
}

// judgeSchema builds the structured-response schema for a single-rating
// judge metric.
func judgeSchema(ratingKey string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			ratingKey: judgeScale,
			"reasoning": map[string]interface{}{
				"type":        "string",
				"description": "Step by step reasoning behind the rating",
			},
		},
		"required": []string{ratingKey, "reasoning"},
	}
}

// extractRating pulls the 0-10 rating and reasoning out of a structured
// judge response and normalizes the rating to [0,1].
func extractRating(response map[string]interface{}, ratingKey string) (float64, string, error) {
	raw, ok := response[ratingKey]
	if !ok {
		return 0, "", fmt.Errorf("missing %q in structured response", ratingKey)
	}

	var rating float64
	switch v := raw.(type) {
	case float64:
		rating = v
	case int:
		rating = float64(v)
	default:
		return 0, "", fmt.Errorf("invalid %q value of type %T in structured response", ratingKey, raw)
	}

	if rating < 0 || rating > 10 {
		return 0, "", fmt.Errorf("rating out of range: %v", rating)
	}

	reasoning, _ := response["reasoning"].(string)
	return rating / 10.0, reasoning, nil
}
