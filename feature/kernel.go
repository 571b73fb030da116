package feature

import (
	"fmt"

	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

// Tree kernel structures.
const (
	PathEnclosed    = "path-enclosed"
	MinimumComplete = "minimum-complete"
)

// Leaf attributes that may replace the mention words.
const (
	AttrNone       = ""
	AttrEntityType = "entity_type"
	AttrHypernym   = "hypernym"
	AttrPos        = "pos"
)

// Kernel builds the tree of a pair for SVM-light-TK.
type Kernel struct {
	Mode      string
	Attribute string
}

func NewKernel(mode, attribute string) (*Kernel, error) {
	switch mode {
	case PathEnclosed, MinimumComplete:
	default:
		return nil, fmt.Errorf("unknown tree mode %q", mode)
	}
	if attr(attribute) == nil && attribute != AttrNone {
		return nil, fmt.Errorf("unknown tree attribute %q", attribute)
	}
	return &Kernel{Mode: mode, Attribute: attribute}, nil
}

func attr(name string) func(sent.Token) string {
	switch name {
	case AttrEntityType:
		return func(t sent.Token) string { return t.EntityType }
	case AttrHypernym:
		return func(t sent.Token) string { return t.Hypernym }
	case AttrPos:
		return func(t sent.Token) string { return t.Pos }
	}
	return nil
}

// Build returns the structure between the two mentions. Pairs across
// sentences get the placeholder tree.
func (k *Kernel) Build(p mention.Pair, c *Context) (*tree.Tree, error) {
	if !p.SameSentence() {
		return tree.Placeholder(), nil
	}

	t, err := c.Doc.Tree(p.M1.Sentence)
	if err != nil {
		return nil, err
	}

	if get := attr(k.Attribute); get != nil {
		s, err := c.Doc.Sentence(p.M1.Sentence)
		if err != nil {
			return nil, err
		}
		spans := []tree.Span{{Start: p.M1.Start, End: p.M1.End}, {Start: p.M2.Start, End: p.M2.End}}
		t = tree.Overlay(t, spans, func(i int) string {
			if i >= len(s) {
				return ""
			}
			return get(s[i])
		})
	}

	first := min(p.M1.Start, p.M2.Start)
	last := min(max(p.M1.End, p.M2.End), t.NumLeaves()) - 1
	if last < first {
		last = first
	}

	if k.Mode == MinimumComplete {
		return tree.MinimumComplete(t, first, last)
	}
	return tree.PathEnclosed(t, first, last)
}
