package render

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONFormatter writes a record as one JSON object.
type JSONFormatter struct{}

func (JSONFormatter) Format(r Record, withLabel bool) (string, error) {
	if !withLabel {
		r.Label = ""
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var _ Formatter = JSONFormatter{}

// JSONRenderer writes values as indented JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes v, used for statistics and evaluation reports.
func (r *JSONRenderer) Render(v any) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", strings.Repeat(" ", 2))
	return enc.Encode(v)
}
