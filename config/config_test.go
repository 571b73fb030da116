package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/tree"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairfeat.yaml")
	content := "coref: [exact_match, head_match]\nhead:\n  rule4: [\"$\", ADJP, PRN]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := c.CorefSet()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Names(); !reflect.DeepEqual(got, []string{"exact_match", "head_match"}) {
		t.Errorf("unexpected coref names %v", got)
	}

	h := c.HeadFinder()
	if !reflect.DeepEqual(h.Rule4, []string{"$", "ADJP", "PRN"}) {
		t.Errorf("unexpected rule4 %v", h.Rule4)
	}
}

func TestPackageExample(t *testing.T) {
	example := "coref: [exact_match, head_match]\nrelation: [entity_type_pair, tree_distance]\nhead:\n  rule4: [\"$\", ADJP, PRN]\n"
	c, err := Parse([]byte(example))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.CorefSet(); err != nil {
		t.Errorf("coref: %v", err)
	}
	set, err := c.RelationSet()
	if err != nil {
		t.Fatalf("relation: %v", err)
	}
	if got := set.Names(); !reflect.DeepEqual(got, []string{"entity_type_pair", "tree_distance"}) {
		t.Errorf("unexpected relation names %v", got)
	}
}

func TestDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := c.RelationSet()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Names(); !reflect.DeepEqual(got, feature.RelationDefaults) {
		t.Errorf("expected defaults, got %v", got)
	}
	if !reflect.DeepEqual(c.HeadFinder(), tree.DefaultHeadFinder) {
		t.Errorf("expected default head finder")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("corefs: [a]\n")); err == nil {
		t.Errorf("expected error for unknown key")
	}

	c, err := Parse([]byte("relation: [no_such_feature]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.RelationSet(); err == nil {
		t.Errorf("expected error for unknown feature")
	}
}
