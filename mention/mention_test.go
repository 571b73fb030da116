package mention

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCoref(t *testing.T) {
	p, err := Coref.ParseLine("APW20001001 0 0 1 GPE Paris 0 2 4 GPE capital yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Doc != "APW20001001" || p.Label != "yes" {
		t.Errorf("unexpected pair %+v", p)
	}

	expected := Mention{Sentence: 0, Start: 2, End: 4, Type: "GPE", Text: "capital"}
	if p.M2 != expected {
		t.Errorf("expected %+v, got %+v", expected, p.M2)
	}
	if !p.SameSentence() {
		t.Errorf("expected same sentence")
	}
}

func TestParseRelation(t *testing.T) {
	p, err := Relation.ParseLine("PHYS.Located NYT01 3 0 2 PER NAM John_Smith 3 5 6 GPE NAM Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Label != "PHYS.Located" || p.Doc != "NYT01" {
		t.Errorf("unexpected pair %+v", p)
	}
	if p.M1.Subtype != "NAM" || p.M1.Text != "John_Smith" {
		t.Errorf("unexpected mention %+v", p.M1)
	}
	if !reflect.DeepEqual(p.M1.Words(), []string{"John", "Smith"}) {
		t.Errorf("unexpected words %v", p.M1.Words())
	}
	if p.M2.Len() != 1 {
		t.Errorf("expected one token, got %d", p.M2.Len())
	}
}

func TestParseMalformed(t *testing.T) {
	lines := []string{
		"APW 0 0 1 GPE Paris",
		"APW 0 x 1 GPE Paris 0 2 4 GPE capital yes",
		"APW 0 3 1 GPE Paris 0 2 4 GPE capital yes",
	}
	for _, l := range lines {
		if _, err := Coref.ParseLine(l); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%q: expected ErrMalformedRecord, got %v", l, err)
		}
	}
}
