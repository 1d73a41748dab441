package rageval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
	"github.com/datar-psa/rageval/metric"
)

// EvaluateOptions configures an Evaluate call
type EvaluateOptions struct {
	llm      api.LLMGenerator
	metrics  []api.Metric
	progress dataset.ProgressFunc
	logger   *slog.Logger
}

// WithLLM sets the language model client used for the evaluation.
// When absent, a process-wide default client is constructed lazily.
func WithLLM(llm api.LLMGenerator) func(*EvaluateOptions) {
	return func(opts *EvaluateOptions) {
		opts.llm = llm
	}
}

// WithMetrics sets the metrics to evaluate, in order.
// When absent, response relevancy is used as the single default metric.
func WithMetrics(metrics ...api.Metric) func(*EvaluateOptions) {
	return func(opts *EvaluateOptions) {
		opts.metrics = append(opts.metrics, metrics...)
	}
}

// WithProgress sets a progress callback invoked as each record is scored.
// Progress reporting is observability only and has no effect on results.
func WithProgress(progress dataset.ProgressFunc) func(*EvaluateOptions) {
	return func(opts *EvaluateOptions) {
		opts.progress = progress
	}
}

// WithLogger sets the logger for evaluation trace events.
// When absent, log output is discarded.
func WithLogger(logger *slog.Logger) func(*EvaluateOptions) {
	return func(opts *EvaluateOptions) {
		opts.logger = logger
	}
}

// Evaluate scores every record of data with each configured metric and
// returns the validated result.
//
// data may be a *dataset.Dataset, a single dataset.Record, or a raw
// map[string]any with "question", "context" and "response" keys; the latter
// two are wrapped into a one-record dataset.
//
// For each metric in order, every record is scored in dataset order, so
// result.Scores()[i][j] is the score of metric i on record j. Any error
// from dataset conversion, default client construction or a metric's
// scoring call aborts the evaluation; no partial result is returned.
func Evaluate(ctx context.Context, data any, opts ...func(*EvaluateOptions)) (*EvalResult, error) {
	options := &EvaluateOptions{}
	for _, opt := range opts {
		opt(options)
	}

	ds, err := normalizeData(data)
	if err != nil {
		return nil, err
	}

	llm := options.llm
	if llm == nil {
		llm, err = DefaultLLM()
		if err != nil {
			return nil, err
		}
	}

	metrics := options.metrics
	if len(metrics) == 0 {
		metrics = []api.Metric{metric.ResponseRelevancy(llm, metric.ResponseRelevancyOptions{})}
	}

	logger := options.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := time.Now()
	scores := make([][]float64, 0, len(metrics))
	for _, m := range metrics {
		metricScores := make([]float64, 0, ds.Len())
		for j, rec := range ds.All("Evaluating", options.progress) {
			res, err := m.Score(ctx, rec)
			if err != nil {
				return nil, fmt.Errorf("metric %q failed on record %d: %w", m.Name(), j, err)
			}
			metricScores = append(metricScores, res.Score)
		}
		scores = append(scores, metricScores)
	}
	elapsed := time.Since(start)

	logger.InfoContext(ctx, "evaluation completed",
		"metrics", len(metrics),
		"records", ds.Len(),
		"elapsed", elapsed,
	)

	return NewEvalResult(llm, metrics, ds, elapsed, scores)
}

// normalizeData resolves the polymorphic data argument to a dataset.
func normalizeData(data any) (*dataset.Dataset, error) {
	switch v := data.(type) {
	case *dataset.Dataset:
		if v == nil {
			return nil, NewEvaluationError("dataset must not be nil")
		}
		return v, nil
	case dataset.Record:
		return v.Dataset(), nil
	case map[string]any:
		return dataset.FromMap(v)
	default:
		return nil, NewEvaluationError(fmt.Sprintf("unsupported data type %T: want *dataset.Dataset, dataset.Record or map[string]any", data))
	}
}
