package metric

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/datar-psa/rageval/dataset"
)

// mockEmbedder returns canned vectors keyed by input text
type mockEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors[text], nil
}

func TestContextRelevancy_Unit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		vectors   map[string][]float64
		rec       dataset.Record
		wantScore float64
	}{
		{
			name: "identical direction",
			vectors: map[string][]float64{
				"q": {1, 0},
				"c": {2, 0},
			},
			rec:       dataset.Record{Question: "q", Context: []string{"c"}},
			wantScore: 1.0, // cosine 1 -> (1+1)/2
		},
		{
			name: "orthogonal",
			vectors: map[string][]float64{
				"q": {1, 0},
				"c": {0, 1},
			},
			rec:       dataset.Record{Question: "q", Context: []string{"c"}},
			wantScore: 0.5, // cosine 0 -> (0+1)/2
		},
		{
			name: "opposite direction",
			vectors: map[string][]float64{
				"q": {1, 0},
				"c": {-1, 0},
			},
			rec:       dataset.Record{Question: "q", Context: []string{"c"}},
			wantScore: 0.0, // cosine -1 -> (-1+1)/2
		},
		{
			name: "mean over chunks",
			vectors: map[string][]float64{
				"q":  {1, 0},
				"c1": {1, 0},
				"c2": {0, 1},
			},
			rec:       dataset.Record{Question: "q", Context: []string{"c1", "c2"}},
			wantScore: 0.75, // mean(1, 0) = 0.5 -> (0.5+1)/2
		},
		{
			name:      "empty context",
			vectors:   map[string][]float64{"q": {1, 0}},
			rec:       dataset.Record{Question: "q"},
			wantScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ContextRelevancy(&mockEmbedder{vectors: tt.vectors}, ContextRelevancyOptions{})

			result, err := m.Score(ctx, tt.rec)
			if err != nil {
				t.Fatalf("Score() unexpected error = %v", err)
			}
			if math.Abs(result.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score() = %v, want %v", result.Score, tt.wantScore)
			}
		})
	}
}

func TestContextRelevancyEmbedError(t *testing.T) {
	ctx := context.Background()

	embedErr := errors.New("embed failed")
	m := ContextRelevancy(&mockEmbedder{err: embedErr}, ContextRelevancyOptions{})

	_, err := m.Score(ctx, dataset.Record{Question: "q", Context: []string{"c"}})
	if !errors.Is(err, embedErr) {
		t.Errorf("Score() error = %v, want it to wrap the embedder error", err)
	}
}

func TestContextRelevancyNoEmbedder(t *testing.T) {
	m := ContextRelevancy(nil, ContextRelevancyOptions{})
	if _, err := m.Score(context.Background(), dataset.Record{}); !errors.Is(err, ErrNoEmbedder) {
		t.Errorf("Score() error = %v, want ErrNoEmbedder", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2}, b: []float64{1, 2}, want: 1.0},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0.0},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, want: -1.0},
		{name: "length mismatch", a: []float64{1, 0}, b: []float64{1}, want: 0.0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 0}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
