package rageval

import (
	"github.com/datar-psa/rageval/api"
)

type LLMGenerator = api.LLMGenerator
type Embedder = api.Embedder
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult
type Metric = api.Metric
type MetricResult = api.MetricResult

var ModerationCategories = api.ModerationCategories
