package tree

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sawTree = "(ROOT (S (NP (DT The) (NN man)) (VP (VBD saw) (NP (DT a) (NN dog)) (PP (IN in) (NP (NNP Paris))))))"

func TestParseRoundTrip(t *testing.T) {
	tr, err := Parse(sawTree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.String() != sawTree {
		t.Errorf("expected %q, got %q", sawTree, tr.String())
	}

	expected := []string{"The", "man", "saw", "a", "dog", "in", "Paris"}
	if !reflect.DeepEqual(tr.Leaves(), expected) {
		t.Errorf("expected leaves %v, got %v", expected, tr.Leaves())
	}
}

func TestParseUnlabeledWrapper(t *testing.T) {
	tr, err := Parse("( (S (NP (PRP He)) (VP (VBD left))))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Label != "S" {
		t.Errorf("expected root S, got %q", tr.Label)
	}
}

func TestParseMultiline(t *testing.T) {
	tr, err := Parse("(S1 (S (NP (PRP He))\n   (VP (VBD left))\n   (. .)))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(tr.Leaves(), " "); got != "He left ." {
		t.Errorf("expected leaves 'He left .', got %q", got)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "(S (NP x)", "(S x))", "S x"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("input %q: expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestSVMString(t *testing.T) {
	tr := MustParse("(NP (DT a) (NN dog))")
	if got := tr.SVMString(); got != "(NP (DT a)(NN dog))" {
		t.Errorf("unexpected svm string %q", got)
	}
}

func TestLeafPosition(t *testing.T) {
	tr := MustParse(sawTree)

	pos, err := tr.LeafPosition(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(pos, Position{0, 1, 1, 1, 0}) {
		t.Errorf("unexpected position %v", pos)
	}

	if _, err := tr.LeafPosition(7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSpanningPosition(t *testing.T) {
	tr := MustParse(sawTree)

	pos, err := tr.SpanningPosition(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := tr.At(pos)
	if n.String() != "(NP (DT a) (NN dog))" {
		t.Errorf("unexpected spanning subtree %s", n)
	}

	// One leaf spans itself
	pos, _ = tr.SpanningPosition(6, 7)
	n, _ = tr.At(pos)
	if !n.Leaf || n.Label != "Paris" {
		t.Errorf("expected leaf Paris, got %s", n)
	}
}

func TestPathsParis(t *testing.T) {
	tr := MustParse("(ROOT (S (NP (NNP Paris)) (VP (VBZ is) (NP (DT the) (NN capital)))))")

	p, err := Paths(tr, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(p.Up, []string{"NNP", "NP"}) {
		t.Errorf("unexpected up path %v", p.Up)
	}
	if !reflect.DeepEqual(p.Down, []string{"S", "VP", "NP", "NN"}) {
		t.Errorf("unexpected down path %v", p.Down)
	}
	if p.Edges != 7 {
		t.Errorf("expected 7 edges, got %d", p.Edges)
	}
}

func TestPathsRoundTrip(t *testing.T) {
	tr := MustParse(sawTree)
	n := tr.NumLeaves()

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			p, err := Paths(tr, i, j)
			if err != nil {
				t.Fatalf("%d-%d: unexpected error: %v", i, j, err)
			}

			if i == j {
				if len(p.Up) != 0 || len(p.Down) != 0 || p.Edges != 0 {
					t.Errorf("%d-%d: expected empty path, got %+v", i, j, p)
				}
				continue
			}

			ip, _ := tr.LeafPosition(i)
			jp, _ := tr.LeafPosition(j)
			lca := commonPrefix(ip, jp)
			edges := len(ip) + len(jp) - 2*len(lca)

			if len(p.Up)+len(p.Down)+1 != edges {
				t.Errorf("%d-%d: up %v down %v do not add up to %d edges", i, j, p.Up, p.Down, edges)
			}
			if p.Edges != edges {
				t.Errorf("%d-%d: expected %d edges, got %d", i, j, edges, p.Edges)
			}
		}
	}
}

func TestPathsOutOfRange(t *testing.T) {
	tr := MustParse(sawTree)
	if _, err := Paths(tr, 2, 9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := Paths(tr, 3, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestIsAppositive(t *testing.T) {
	four := MustParse("(NP (NP (DT the) (NN dog)) (, ,) (NP (DT a) (NN pet)) (, ,))")
	if !IsAppositive(four) {
		t.Errorf("expected appositive for %s", four)
	}

	three := MustParse("(NP (NP (DT the) (NN dog)) (, ,) (NP (DT a) (NN pet)))")
	if IsAppositive(three) {
		t.Errorf("expected no appositive for %s", three)
	}

	if IsAppositive(NewLeaf("dog")) {
		t.Errorf("expected no appositive for a leaf")
	}
}

func TestCopyIsDeep(t *testing.T) {
	tr := MustParse(sawTree)
	c := tr.Copy()
	c.Children[0].Children[0].Label = "X"

	if tr.String() != sawTree {
		t.Errorf("original modified: %s", tr)
	}
}
