package metric

import (
	"context"
	"fmt"
	"strings"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

// ResponseRelevancyOptions configures the ResponseRelevancy metric
type ResponseRelevancyOptions struct {
	// Name overrides the metric name; defaults to "ResponseRelevancy"
	Name string
}

// ResponseRelevancy returns a metric that uses an LLM judge to rate how
// relevant the response is to the question, given the retrieved context.
// This is the default metric used by Evaluate.
func ResponseRelevancy(llm api.LLMGenerator, opts ResponseRelevancyOptions) api.Metric {
	name := opts.Name
	if name == "" {
		name = "ResponseRelevancy"
	}
	return &responseRelevancyMetric{name: name, llm: llm}
}

type responseRelevancyMetric struct {
	name string
	llm  api.LLMGenerator
}

const responseRelevancyPromptTemplate = `You are evaluating how relevant an AI assistant's response is to the question asked.

[BEGIN DATA]
[Question]: %s
[Context]: %s
[Response]: %s
[END DATA]

A relevant response directly addresses the question. Penalize responses that
are off-topic, answer a different question, or pad the answer with unrelated
information. Do not judge factual correctness, only relevance.

Think step by step, then rate the relevance from 0 to 10, where:
- 0 = completely irrelevant to the question
- 5 = partially addresses the question
- 10 = fully and directly addresses the question`

func (m *responseRelevancyMetric) Name() string {
	return m.name
}

func (m *responseRelevancyMetric) Score(ctx context.Context, rec dataset.Record) (api.MetricResult, error) {
	result := api.MetricResult{Metadata: make(map[string]any)}

	if m.llm == nil {
		return result, ErrNoLLM
	}

	prompt := fmt.Sprintf(responseRelevancyPromptTemplate,
		rec.Question, strings.Join(rec.Context, "\n"), rec.Response)

	response, err := m.llm.StructuredGenerate(ctx, prompt, judgeSchema("relevancy"))
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrLLMGenerationFailed, err)
	}

	score, reasoning, err := extractRating(response, "relevancy")
	if err != nil {
		return result, err
	}

	result.Score = score
	result.Metadata["reasoning"] = reasoning
	result.Metadata["raw_response"] = response
	return result, nil
}
