package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/pairfeat/stat"
)

func TestJSONFormatterStripsLabel(t *testing.T) {
	r := Record{Doc: "nyt1", Line: 3, Label: "yes", Features: []string{"same_sentence=True"}}

	line, err := JSONFormatter{}.Format(r, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Record
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got.Label != "" {
		t.Errorf("expected no label, got %q", got.Label)
	}
	if got.Doc != "nyt1" || got.Line != 3 || len(got.Features) != 1 {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestJSONRendererRenderStats(t *testing.T) {
	h := stat.NewHandler()
	h.Aggregate([]string{"yes", "head_match=True"})

	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Render(h.Get()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stats stat.Stats
	if err := json.Unmarshal(buf.Bytes(), &stats); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if stats.NumRecords != 1 || stats.Labels["yes"] != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
