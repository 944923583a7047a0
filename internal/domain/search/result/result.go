package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// ScoreField is the reserved key under which the score is emitted.
// Column names starting with "_" are rejected at load time, so it never collides.
const ScoreField = "_score"

// Result is a single ranked row projected onto a domain's output columns.
type Result struct {
	index  int
	score  float64
	fields row.Row
}

// New creates a search result. The score is rounded to 4 decimal digits.
func New(index int, score float64, fields row.Row) Result {
	return Result{index: index, score: Round(score), fields: fields}
}

// Index returns the original position of the row in its data source.
func (r *Result) Index() int { return r.index }

// Score returns the rounded relevance score.
func (r *Result) Score() float64 { return r.score }

// Fields returns the projected row.
func (r *Result) Fields() row.Row { return r.fields }

// Get returns a projected column value ("" when absent).
func (r *Result) Get(column string) string { return r.fields.Get(column) }

// MarshalJSON emits the projected columns in order followed by ScoreField.
func (r Result) MarshalJSON() ([]byte, error) {
	fields, err := r.fields.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	score, err := json.Marshal(r.score)
	if err != nil {
		return nil, fmt.Errorf("marshal score: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(fields[:len(fields)-1])
	if r.fields.Len() > 0 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"` + ScoreField + `":`)
	buf.Write(score)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Round rounds a score to 4 decimal digits.
func Round(score float64) float64 {
	return math.Round(score*1e4) / 1e4
}
