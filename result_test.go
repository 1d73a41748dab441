package rageval

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/datar-psa/rageval/api"
	"github.com/datar-psa/rageval/dataset"
)

// namedMetric is a no-op metric carrying only a name, for result tests.
type namedMetric struct {
	name string
}

func (m *namedMetric) Name() string {
	return m.name
}

func (m *namedMetric) Score(ctx context.Context, rec dataset.Record) (api.MetricResult, error) {
	return api.MetricResult{}, nil
}

func twoRecordDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.Record{Question: "q0", Context: []string{"c0"}, Response: "r0"},
		dataset.Record{Question: "q1", Context: []string{"c1"}, Response: "r1"},
	)
	if err != nil {
		t.Fatalf("dataset.New() unexpected error = %v", err)
	}
	return ds
}

func TestNewEvalResultValidation(t *testing.T) {
	ds := twoRecordDataset(t)

	tests := []struct {
		name         string
		metrics      []api.Metric
		scores       [][]float64
		responseTime time.Duration
		wantErr      bool
		wantMsgPart  string
	}{
		{
			name:         "consistent result",
			metrics:      []api.Metric{&namedMetric{name: "m1"}},
			scores:       [][]float64{{0.1, 0.2}},
			responseTime: time.Millisecond,
		},
		{
			name:         "two metrics one score list",
			metrics:      []api.Metric{&namedMetric{name: "m1"}, &namedMetric{name: "m2"}},
			scores:       [][]float64{{0.1, 0.2}},
			responseTime: time.Millisecond,
			wantErr:      true,
			wantMsgPart:  "metrics (2)",
		},
		{
			name:         "score list shorter than dataset",
			metrics:      []api.Metric{&namedMetric{name: "m1"}},
			scores:       [][]float64{{0.1}},
			responseTime: time.Millisecond,
			wantErr:      true,
			wantMsgPart:  `metric "m1"`,
		},
		{
			name:         "score list longer than dataset",
			metrics:      []api.Metric{&namedMetric{name: "m1"}},
			scores:       [][]float64{{0.1, 0.2, 0.3}},
			responseTime: time.Millisecond,
			wantErr:      true,
			wantMsgPart:  "not balanced",
		},
		{
			name:         "zero response time",
			metrics:      []api.Metric{&namedMetric{name: "m1"}},
			scores:       [][]float64{{0.1, 0.2}},
			responseTime: 0,
			wantErr:      true,
			wantMsgPart:  "response time",
		},
		{
			name:         "negative response time",
			metrics:      []api.Metric{&namedMetric{name: "m1"}},
			scores:       [][]float64{{0.1, 0.2}},
			responseTime: -time.Second,
			wantErr:      true,
			wantMsgPart:  "response time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEvalResult(nil, tt.metrics, ds, tt.responseTime, tt.scores)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("NewEvalResult() unexpected error = %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("NewEvalResult() expected error, got nil")
			}
			if result != nil {
				t.Error("NewEvalResult() returned a partial result alongside an error")
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("NewEvalResult() error type = %T, want *ValidationError", err)
			}
			if !errors.Is(err, ErrRagEval) {
				t.Error("NewEvalResult() error does not wrap ErrRagEval")
			}
			if !strings.Contains(err.Error(), tt.wantMsgPart) {
				t.Errorf("NewEvalResult() error = %q, want it to contain %q", err.Error(), tt.wantMsgPart)
			}
		})
	}
}

func TestEvalResultAccessors(t *testing.T) {
	ds := twoRecordDataset(t)
	metrics := []api.Metric{&namedMetric{name: "m1"}}
	scores := [][]float64{{0.1, 0.2}}

	result, err := NewEvalResult(nil, metrics, ds, 5*time.Millisecond, scores)
	if err != nil {
		t.Fatalf("NewEvalResult() unexpected error = %v", err)
	}

	if result.ResponseTime() != 5*time.Millisecond {
		t.Errorf("ResponseTime() = %v, want 5ms", result.ResponseTime())
	}
	if result.Dataset() != ds {
		t.Error("Dataset() did not return the evaluated dataset")
	}
	if !reflect.DeepEqual(result.Scores(), scores) {
		t.Errorf("Scores() = %v, want %v", result.Scores(), scores)
	}

	// Mutating the returned grid must not affect the result
	got := result.Scores()
	got[0][0] = 99
	if result.Scores()[0][0] != 0.1 {
		t.Error("Scores() returned a slice aliasing internal state")
	}
}

func TestEvalResultMeans(t *testing.T) {
	ds := twoRecordDataset(t)
	metrics := []api.Metric{&namedMetric{name: "m1"}, &namedMetric{name: "m2"}}
	scores := [][]float64{{0.2, 0.4}, {1.0, 0.0}}

	result, err := NewEvalResult(nil, metrics, ds, time.Millisecond, scores)
	if err != nil {
		t.Fatalf("NewEvalResult() unexpected error = %v", err)
	}

	want := []float64{0.3, 0.5}
	got := result.Means()
	if len(got) != len(want) {
		t.Fatalf("Means() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Means()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEvalResultToTable(t *testing.T) {
	ds := twoRecordDataset(t)
	metrics := []api.Metric{&namedMetric{name: "m1"}, &namedMetric{name: "m2"}}
	scores := [][]float64{{0.1, 0.2}, {0.3, 0.4}}

	result, err := NewEvalResult(nil, metrics, ds, time.Millisecond, scores)
	if err != nil {
		t.Fatalf("NewEvalResult() unexpected error = %v", err)
	}

	table := result.ToTable()

	wantColumns := []string{"question", "context", "response", "m1", "m2"}
	if !reflect.DeepEqual(table.Columns(), wantColumns) {
		t.Errorf("ToTable() columns = %v, want %v", table.Columns(), wantColumns)
	}
	if table.NumRows() != ds.Len() {
		t.Errorf("ToTable() rows = %d, want %d", table.NumRows(), ds.Len())
	}
	if got := table.Column("m2"); !reflect.DeepEqual(got, []any{0.3, 0.4}) {
		t.Errorf("ToTable() m2 column = %v, want [0.3 0.4]", got)
	}
}

func TestEvalResultToTableDuplicateNames(t *testing.T) {
	ds := twoRecordDataset(t)
	metrics := []api.Metric{&namedMetric{name: "dup"}, &namedMetric{name: "dup"}}
	scores := [][]float64{{0.1, 0.2}, {0.9, 0.8}}

	result, err := NewEvalResult(nil, metrics, ds, time.Millisecond, scores)
	if err != nil {
		t.Fatalf("NewEvalResult() unexpected error = %v", err)
	}

	table := result.ToTable()

	// Last metric wins; column count reflects distinct names only
	wantColumns := []string{"question", "context", "response", "dup"}
	if !reflect.DeepEqual(table.Columns(), wantColumns) {
		t.Errorf("ToTable() columns = %v, want %v", table.Columns(), wantColumns)
	}
	if got := table.Column("dup"); !reflect.DeepEqual(got, []any{0.9, 0.8}) {
		t.Errorf("ToTable() dup column = %v, want last metric's scores [0.9 0.8]", got)
	}
}

func TestEvalResultString(t *testing.T) {
	ds := twoRecordDataset(t)
	metrics := []api.Metric{&namedMetric{name: "m1"}, &namedMetric{name: "m2"}}
	scores := [][]float64{{0.1, 0.2}, {0.3, 0.4}}

	result, err := NewEvalResult(nil, metrics, ds, time.Millisecond, scores)
	if err != nil {
		t.Fatalf("NewEvalResult() unexpected error = %v", err)
	}

	got := result.String()
	want := "[map[m1:0.1 m2:0.3] map[m1:0.2 m2:0.4]]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
