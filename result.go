package rageval

import (
	"fmt"
	"time"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

// EvalResult is the validated outcome of one evaluation run.
// It is immutable after construction and consumed through read-only
// accessors.
type EvalResult struct {
	llm          api.LLMGenerator
	metrics      []api.Metric
	dataset      *dataset.Dataset
	scores       [][]float64
	responseTime time.Duration
}

// NewEvalResult constructs an EvalResult and eagerly validates its
// consistency:
//   - len(metrics) == len(scores)
//   - len(scores[i]) == ds.Len() for every i
//   - responseTime > 0
//
// A violation returns a *ValidationError naming the offending counts; no
// truncation or padding is ever applied.
func NewEvalResult(llm api.LLMGenerator, metrics []api.Metric, ds *dataset.Dataset, responseTime time.Duration, scores [][]float64) (*EvalResult, error) {
	if len(metrics) != len(scores) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"the number of metrics (%d) and number of score lists (%d) is not equal; ensure that each metric has a corresponding score list",
			len(metrics), len(scores),
		)}
	}

	size := ds.Len()
	for i, metricScores := range scores {
		if len(metricScores) != size {
			return nil, &ValidationError{Message: fmt.Sprintf(
				"the number of datapoints (%d) and scores (%d) for metric %q are not balanced; ensure that each score list has the same length as the dataset",
				size, len(metricScores), metrics[i].Name(),
			)}
		}
	}

	if responseTime <= 0 {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"response time must be greater than zero, got %v", responseTime,
		)}
	}

	return &EvalResult{
		llm:          llm,
		metrics:      metrics,
		dataset:      ds,
		scores:       scores,
		responseTime: responseTime,
	}, nil
}

// LLM returns the language model client used for the evaluation.
// It is retained for provenance only.
func (r *EvalResult) LLM() api.LLMGenerator {
	return r.llm
}

// Metrics returns the evaluated metrics in evaluation order.
func (r *EvalResult) Metrics() []api.Metric {
	out := make([]api.Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Dataset returns the evaluated dataset.
func (r *EvalResult) Dataset() *dataset.Dataset {
	return r.dataset
}

// Scores returns the score grid: Scores()[i][j] is the score metric i gave
// record j. The returned slices are copies.
func (r *EvalResult) Scores() [][]float64 {
	out := make([][]float64, len(r.scores))
	for i, metricScores := range r.scores {
		out[i] = make([]float64, len(metricScores))
		copy(out[i], metricScores)
	}
	return out
}

// ResponseTime returns the wall-clock duration of the scoring loop.
func (r *EvalResult) ResponseTime() time.Duration {
	return r.responseTime
}

// Means returns the mean score per metric, in metric order.
func (r *EvalResult) Means() []float64 {
	out := make([]float64, len(r.scores))
	for i, metricScores := range r.scores {
		sum := 0.0
		for _, s := range metricScores {
			sum += s
		}
		out[i] = sum / float64(len(metricScores))
	}
	return out
}

// ToTable returns the dataset's tabular form with one extra column per
// metric, named after the metric and populated from its scores.
// If two metrics share a name the later metric's column overwrites the
// earlier one (last write wins).
func (r *EvalResult) ToTable() *dataset.Table {
	t := r.dataset.ToTable()
	for i, m := range r.metrics {
		values := make([]any, len(r.scores[i]))
		for j, s := range r.scores[i] {
			values[j] = s
		}
		t.SetColumn(m.Name(), values)
	}
	return t
}

// String renders the result as an ordered sequence of per-record mappings
// from metric name to score.
func (r *EvalResult) String() string {
	data := make([]map[string]float64, r.dataset.Len())
	for j := range data {
		row := make(map[string]float64, len(r.metrics))
		for i, m := range r.metrics {
			row[m.Name()] = r.scores[i][j]
		}
		data[j] = row
	}
	return fmt.Sprintf("%v", data)
}
