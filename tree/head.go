package tree

import "strings"

// HeadFinder finds the lexical head of a noun phrase with Collins' rule
// cascade. Rule4 holds the labels of the fourth rule, which differs between
// head tables ({$, ADJP, PRP} or {$, ADJP, PRN}).
type HeadFinder struct {
	Rule4 []string
}

var DefaultHeadFinder = HeadFinder{Rule4: []string{"$", "ADJP", "PRP"}}

var (
	nominalLabels  = []string{"NN", "NNP", "NNPS", "NX", "POS", "JJR"}
	modifierLabels = []string{"JJ", "JJS", "RB", "QP"}
)

// Head returns the head of t as the space joined leaves of the chosen
// child. The cascade always ends at the last child.
func (h HeadFinder) Head(t *Tree) string {
	if t.Leaf {
		return t.Label
	}
	n := len(t.Children)
	if n == 0 {
		return ""
	}

	if n >= 2 && !t.Children[n-1].Leaf && t.Children[n-1].Label == "POS" {
		return leafString(t.Children[n-2])
	}

	if c := lastWith(t, nominalLabels); c != nil {
		return leafString(c)
	}

	for _, c := range t.Children {
		if !c.Leaf && c.Label == "NP" {
			return leafString(c)
		}
	}

	if c := lastWith(t, h.Rule4); c != nil {
		return leafString(c)
	}

	if c := lastWith(t, []string{"CD"}); c != nil {
		return leafString(c)
	}

	if c := lastWith(t, modifierLabels); c != nil {
		return leafString(c)
	}

	return leafString(t.Children[n-1])
}

// Head uses DefaultHeadFinder.
func Head(t *Tree) string {
	return DefaultHeadFinder.Head(t)
}

// lastWith scans children right to left for the first label in labels.
func lastWith(t *Tree, labels []string) *Tree {
	for i := len(t.Children) - 1; i >= 0; i-- {
		c := t.Children[i]
		if c.Leaf {
			continue
		}
		for _, l := range labels {
			if c.Label == l {
				return c
			}
		}
	}
	return nil
}

func leafString(t *Tree) string {
	return strings.Join(t.Leaves(), " ")
}
