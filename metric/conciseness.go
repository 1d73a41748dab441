package metric

import (
	"context"
	"fmt"
	"strings"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

// ResponseConcisenessOptions configures the ResponseConciseness metric
type ResponseConcisenessOptions struct {
	// Name overrides the metric name; defaults to "ResponseConciseness"
	Name string
}

// ResponseConciseness returns a metric that uses an LLM judge to rate how
// concise the response is: whether it answers the question without
// unnecessary repetition or filler.
func ResponseConciseness(llm api.LLMGenerator, opts ResponseConcisenessOptions) api.Metric {
	name := opts.Name
	if name == "" {
		name = "ResponseConciseness"
	}
	return &responseConcisenessMetric{name: name, llm: llm}
}

type responseConcisenessMetric struct {
	name string
	llm  api.LLMGenerator
}

const responseConcisenessPromptTemplate = `You are evaluating how concise an AI assistant's response is.

[BEGIN DATA]
[Question]: %s
[Context]: %s
[Response]: %s
[END DATA]

A concise response answers the question completely using as few words as the
answer allows. Penalize repetition, filler phrases and unrequested detail.
Do not penalize brevity as long as the question is fully answered.

Think step by step, then rate the conciseness from 0 to 10, where:
- 0 = extremely verbose or padded
- 5 = answers the question with noticeable excess
- 10 = complete answer with no excess`

func (m *responseConcisenessMetric) Name() string {
	return m.name
}

func (m *responseConcisenessMetric) Score(ctx context.Context, rec dataset.Record) (api.MetricResult, error) {
	result := api.MetricResult{Metadata: make(map[string]any)}

	if m.llm == nil {
		return result, ErrNoLLM
	}

	prompt := fmt.Sprintf(responseConcisenessPromptTemplate,
		rec.Question, strings.Join(rec.Context, "\n"), rec.Response)

	response, err := m.llm.StructuredGenerate(ctx, prompt, judgeSchema("conciseness"))
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrLLMGenerationFailed, err)
	}

	score, reasoning, err := extractRating(response, "conciseness")
	if err != nil {
		return result, err
	}

	result.Score = score
	result.Metadata["reasoning"] = reasoning
	result.Metadata["raw_response"] = response
	return result, nil
}
