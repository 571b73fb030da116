package tree

import (
	"reflect"
	"strings"
	"testing"
)

func TestPathEnclosed(t *testing.T) {
	tr := MustParse(sawTree)

	pet, err := PathEnclosed(tr, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "(S (NP (NN man)) (VP (VBD saw) (NP (DT a) (NN dog))))"
	if pet.String() != expected {
		t.Errorf("expected %s, got %s", expected, pet)
	}

	if tr.String() != sawTree {
		t.Errorf("input tree modified: %s", tr)
	}
}

func TestPathEnclosedLeavesAreSlice(t *testing.T) {
	tr := MustParse(sawTree)
	leaves := tr.Leaves()

	for first := 0; first < len(leaves); first++ {
		for last := first; last < len(leaves); last++ {
			pet, err := PathEnclosed(tr, first, last)
			if err != nil {
				t.Fatalf("%d..%d: unexpected error: %v", first, last, err)
			}
			if !reflect.DeepEqual(pet.Leaves(), leaves[first:last+1]) {
				t.Errorf("%d..%d: expected leaves %v, got %v", first, last, leaves[first:last+1], pet.Leaves())
			}
		}
	}
}

func TestMinimumComplete(t *testing.T) {
	tr := MustParse(sawTree)

	mct, err := MinimumComplete(tr, 3, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mct.Label != "VP" {
		t.Errorf("expected VP, got %s", mct)
	}
	if got := strings.Join(mct.Leaves(), " "); got != "saw a dog in Paris" {
		t.Errorf("unexpected leaves %q", got)
	}
}

func TestOverlay(t *testing.T) {
	tr := MustParse(sawTree)
	attrs := map[int]string{1: "PER"}

	o := Overlay(tr, []Span{{Start: 0, End: 2}, {Start: 6, End: 7}}, func(i int) string {
		return attrs[i]
	})

	expected := []string{Missing, "PER", "saw", "a", "dog", "in", Missing}
	if !reflect.DeepEqual(o.Leaves(), expected) {
		t.Errorf("expected %v, got %v", expected, o.Leaves())
	}

	if tr.Leaves()[1] != "man" {
		t.Errorf("input tree modified")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	if p.String() != "()" {
		t.Errorf("expected (), got %q", p.String())
	}
	if !p.IsPlaceholder() {
		t.Errorf("expected placeholder")
	}
}
