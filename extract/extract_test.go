package extract

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/mention"
	"github.com/revelaction/pairfeat/render"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/storage"
	"github.com/revelaction/pairfeat/tree"
)

type docs map[string]sent.Doc

func (d docs) Read(id string) (sent.Doc, error) {
	doc, ok := d[id]
	if !ok {
		return sent.Doc{}, storage.ErrNotFound
	}
	return doc, nil
}

type collector []render.Record

func (c *collector) Write(r render.Record) error {
	*c = append(*c, r)
	return nil
}

func parisDocs() docs {
	return docs{"paris": {
		Id: "paris",
		Sentences: []sent.Sentence{{
			{Text: "Paris", Pos: "NNP", EntityType: "GPE"},
			{Text: "is", Pos: "VBZ"},
			{Text: "the", Pos: "DT"},
			{Text: "capital", Pos: "NN", EntityType: "GPE"},
		}},
		Trees: []*tree.Tree{tree.MustParse("(ROOT (S (NP (NNP Paris)) (VP (VBZ is) (NP (DT the) (NN capital)))))")},
	}}
}

func TestRun(t *testing.T) {
	in := "paris 0 0 1 GPE Paris 0 2 4 GPE the_capital yes\n\nparis 0 0 1 GPE Paris 0 3 4 PER capital no\n"
	lines, err := ReadLines(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[1].Num != 3 {
		t.Fatalf("unexpected lines %+v", lines)
	}

	set, err := feature.Coref.Set("types_match", "same_sentence", "distance")
	if err != nil {
		t.Fatal(err)
	}

	e := New(mention.Coref, parisDocs(), set)
	ticks := 0
	e.Progress = func() { ticks++ }

	var out collector
	if err := e.Run(lines, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticks != 2 {
		t.Errorf("expected 2 progress ticks, got %d", ticks)
	}

	expected := []render.Record{
		{Doc: "paris", Line: 1, Label: "yes", Features: []string{"types_match=True", "same_sentence=True", "distance=0"}},
		{Doc: "paris", Line: 3, Label: "no", Features: []string{"same_sentence=True", "distance=0"}},
	}
	if !reflect.DeepEqual([]render.Record(out), expected) {
		t.Errorf("expected %+v, got %+v", expected, out)
	}
}

func TestRunKernel(t *testing.T) {
	set, _ := feature.Relation.Set("token_distance")
	k, err := feature.NewKernel(feature.PathEnclosed, feature.AttrNone)
	if err != nil {
		t.Fatal(err)
	}

	e := New(mention.Relation, parisDocs(), set)
	e.Kernel = k

	r, err := e.Record(Line{Num: 1, Text: "PART-WHOLE paris 0 0 1 GPE NAM Paris 0 3 4 GPE NOM capital"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(r.Tree, "(S ") || strings.Contains(r.Tree, ") (") {
		t.Errorf("unexpected kernel tree %q", r.Tree)
	}
	if r.Label != "PART-WHOLE" {
		t.Errorf("unexpected label %q", r.Label)
	}
}

func TestRunErrorsCarryLine(t *testing.T) {
	set, _ := feature.Coref.Set("types_match")
	e := New(mention.Coref, parisDocs(), set)

	lines := []Line{
		{Num: 1, Text: "paris 0 0 1 GPE Paris 0 2 4 GPE the_capital yes"},
		{Num: 7, Text: "london 0 0 1 GPE London 0 2 4 GPE the_city yes"},
	}
	var out collector
	err := e.Run(lines, &out)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 7: ") {
		t.Errorf("expected line number in %q", err)
	}
	if len(out) != 1 {
		t.Errorf("expected records before the error to be written, got %d", len(out))
	}

	_, err = e.Record(Line{Num: 2, Text: "paris 0 0"})
	if !errors.Is(err, mention.ErrMalformedRecord) {
		t.Errorf("expected malformed record, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	in := "1\tParis\tNNP\tB-GPE\n\n2\tis\tVBZ\tO\n"
	var out bytes.Buffer
	if err := Tokens(strings.NewReader(in), &out, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 3 lines and a trailing newline, got %q", out.String())
	}
	if lines[1] != "" {
		t.Errorf("expected the blank separator kept, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "1\tParis\tNNP\t1\t") || !strings.HasSuffix(lines[0], "\tB-GPE") {
		t.Errorf("unexpected token line %q", lines[0])
	}

	err := Tokens(strings.NewReader("1 Paris\n"), &out, nil, nil)
	if err == nil || !strings.HasPrefix(err.Error(), "line 1: ") {
		t.Errorf("expected line error, got %v", err)
	}
}
