// Package dataset holds the evaluation data model: records of
// question/context/response triples and ordered collections of them.
package dataset

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrMissingField is returned when a raw mapping lacks a required record field
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when a raw mapping field has the wrong type
	ErrInvalidField = errors.New("invalid field type")
	// ErrEmptyDataset is returned when a dataset is constructed without records
	ErrEmptyDataset = errors.New("dataset must contain at least one record")
)

// Record is a single evaluation unit: the question asked, the retrieved
// context chunks, and the model response under evaluation.
type Record struct {
	Question string
	Context  []string
	Response string
}

// Dataset wraps the record in a one-record dataset.
func (r Record) Dataset() *Dataset {
	return &Dataset{records: []Record{r}}
}

// Dataset is an ordered collection of records.
// Iteration order is construction order and is never changed by any
// operation on the dataset.
type Dataset struct {
	records []Record
}

// New creates a dataset from the given records, preserving order.
func New(records ...Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	out := make([]Record, len(records))
	copy(out, records)
	return &Dataset{records: out}, nil
}

// FromMap converts a raw mapping with keys "question" (string),
// "context" ([]string or string) and "response" (string) into a
// one-record dataset.
func FromMap(m map[string]any) (*Dataset, error) {
	rec, err := recordFromMap(m)
	if err != nil {
		return nil, err
	}
	return rec.Dataset(), nil
}

func recordFromMap(m map[string]any) (Record, error) {
	var rec Record

	question, ok := m["question"]
	if !ok {
		return rec, fmt.Errorf("%w: question", ErrMissingField)
	}
	rec.Question, ok = question.(string)
	if !ok {
		return rec, fmt.Errorf("%w: question must be a string, got %T", ErrInvalidField, question)
	}

	context, ok := m["context"]
	if !ok {
		return rec, fmt.Errorf("%w: context", ErrMissingField)
	}
	switch v := context.(type) {
	case []string:
		rec.Context = v
	case string:
		rec.Context = []string{v}
	case []any:
		chunks := make([]string, len(v))
		for i, c := range v {
			s, ok := c.(string)
			if !ok {
				return rec, fmt.Errorf("%w: context[%d] must be a string, got %T", ErrInvalidField, i, c)
			}
			chunks[i] = s
		}
		rec.Context = chunks
	default:
		return rec, fmt.Errorf("%w: context must be a string list, got %T", ErrInvalidField, context)
	}

	response, ok := m["response"]
	if !ok {
		return rec, fmt.Errorf("%w: response", ErrMissingField)
	}
	rec.Response, ok = response.(string)
	if !ok {
		return rec, fmt.Errorf("%w: response must be a string, got %T", ErrInvalidField, response)
	}

	return rec, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in iteration order.
// The returned slice is a copy; mutating it does not affect the dataset.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Record returns the record at index i.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Append returns a new dataset with the given records added at the end.
// The receiver is not modified.
func (d *Dataset) Append(records ...Record) *Dataset {
	out := make([]Record, 0, len(d.records)+len(records))
	out = append(out, d.records...)
	out = append(out, records...)
	return &Dataset{records: out}
}

// ProgressFunc reports iteration progress: done records out of total,
// under a human-readable label. It is observability only and must not
// influence what is iterated.
type ProgressFunc func(label string, done, total int)

// All iterates the records in order, reporting progress after each record.
// label names the pass for progress reporting; progress may be nil.
// The sequence is finite and restartable.
func (d *Dataset) All(label string, progress ProgressFunc) iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		total := len(d.records)
		for i, rec := range d.records {
			if !yield(i, rec) {
				return
			}
			if progress != nil {
				progress(label, i+1, total)
			}
		}
	}
}

// ToTable converts the dataset to tabular form with one row per record
// and the columns "question", "context" and "response".
func (d *Dataset) ToTable() *Table {
	questions := make([]any, len(d.records))
	contexts := make([]any, len(d.records))
	responses := make([]any, len(d.records))
	for i, rec := range d.records {
		questions[i] = rec.Question
		contexts[i] = rec.Context
		responses[i] = rec.Response
	}

	t := NewTable()
	t.SetColumn("question", questions)
	t.SetColumn("context", contexts)
	t.SetColumn("response", responses)
	return t
}
