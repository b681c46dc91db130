// Package output renders sheet listings and streamed records for display.
package output

import (
	"encoding/json"
	"io"

	"github.com/ukaji3/xlgrid/pkg/xlgrid/record"
)

// ToJSON serializes v to JSON.
// If pretty is true, the output is indented.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// JSONLines writes one JSON object per record.
type JSONLines struct {
	enc *json.Encoder
	n   int
}

// NewJSONLines returns a writer emitting newline-delimited JSON to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

// Write encodes rec on its own line.
func (j *JSONLines) Write(rec *record.Row) error {
	if err := j.enc.Encode(rec); err != nil {
		return err
	}
	j.n++
	return nil
}

// Count returns the number of records written.
func (j *JSONLines) Count() int { return j.n }
