package rageval

import (
	"context"
	"fmt"
	"os"
	"sync"

	"google.golang.org/genai"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/gemini"
)

// DefaultModel is the model used by the default LLM client when
// RAGEVAL_MODEL is not set.
const DefaultModel = "gemini-2.5-flash"

// defaultLLM lazily constructs the process-wide default client exactly once.
// A construction failure is cached too, so repeated calls never leak
// partially constructed clients.
var defaultLLM = sync.OnceValues(func() (api.LLMGenerator, error) {
	project := os.Getenv("GOOGLE_PROJECT_ID")
	location := os.Getenv("GOOGLE_REGION")
	if project == "" || location == "" {
		return nil, NewEvaluationError("default LLM requires GOOGLE_PROJECT_ID and GOOGLE_REGION to be set")
	}

	model := os.Getenv("RAGEVAL_MODEL")
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default genai client: %w", err)
	}

	return gemini.NewGenerator(client, model), nil
})

// DefaultLLM returns the process-wide default language model client,
// a Gemini generator configured from the GOOGLE_PROJECT_ID, GOOGLE_REGION
// and RAGEVAL_MODEL environment variables. The client is constructed on
// first use and cached; repeated calls return the same instance.
func DefaultLLM() (api.LLMGenerator, error) {
	return defaultLLM()
}
