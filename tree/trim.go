package tree

import "fmt"

// Missing is written in place of a leaf attribute that is not known.
const Missing = "*"

// Span is a half open range of leaf indices.
type Span struct {
	Start int
	End   int
}

func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Overlay returns a copy of t where every leaf inside one of spans is
// replaced by attr(i), i being the leaf index.
func Overlay(t *Tree, spans []Span, attr func(i int) string) *Tree {
	c := t.Copy()
	i := 0
	c.walkLeaves(func(l *Tree) {
		for _, s := range spans {
			if s.Contains(i) {
				v := attr(i)
				if v == "" {
					v = Missing
				}
				l.Label = v
				break
			}
		}
		i++
	})
	return c
}

// MinimumComplete returns a copy of the lowest subtree dominating leaves
// first through last.
func MinimumComplete(t *Tree, first, last int) (*Tree, error) {
	pos, err := t.SpanningPosition(first, last+1)
	if err != nil {
		return nil, err
	}
	n, err := t.At(pos)
	if err != nil {
		return nil, err
	}
	return n.Copy(), nil
}

// PathEnclosed builds the path enclosed tree of leaves first through last:
// the subtree under their lowest common ancestor reduced to the nodes that
// dominate at least one leaf in [first, last]. t is left untouched.
func PathEnclosed(t *Tree, first, last int) (*Tree, error) {
	if first > last {
		return nil, fmt.Errorf("path enclosed tree of leaves %d..%d: %w", first, last, ErrOutOfRange)
	}

	lca, err := LCA(t, first, last)
	if err != nil {
		return nil, err
	}
	node, err := t.At(lca)
	if err != nil {
		return nil, err
	}

	offset := leafOffset(t, lca)
	pet, _ := enclose(node, offset, first, last)
	if pet == nil {
		return nil, fmt.Errorf("no leaves in %d..%d: %w", first, last, ErrOutOfRange)
	}
	return pet, nil
}

// enclose copies node keeping only children with leaves in [first, last].
// offset is the index of the first leaf under node. It returns the copy and
// the number of leaves under the original node.
func enclose(node *Tree, offset, first, last int) (*Tree, int) {
	if node.Leaf {
		if offset >= first && offset <= last {
			return NewLeaf(node.Label), 1
		}
		return nil, 1
	}

	c := &Tree{Label: node.Label}
	n := 0
	for _, child := range node.Children {
		kept, size := enclose(child, offset+n, first, last)
		if kept != nil {
			c.Children = append(c.Children, kept)
		}
		n += size
	}

	if len(c.Children) == 0 {
		return nil, n
	}
	return c, n
}

// leafOffset counts the leaves left of the node at pos.
func leafOffset(t *Tree, pos Position) int {
	offset := 0
	node := t
	for _, idx := range pos {
		for _, sib := range node.Children[:idx] {
			offset += sib.NumLeaves()
		}
		node = node.Children[idx]
	}
	return offset
}
