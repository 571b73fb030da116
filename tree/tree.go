package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed  = errors.New("malformed tree")
	ErrOutOfRange = errors.New("index out of range")
)

// Position is the path of child indices from the root to a node.
type Position []int

// Tree is an ordered labeled constituency tree. Leaves carry the token text
// in Label and have no children.
type Tree struct {
	Label    string
	Leaf     bool
	Children []*Tree
}

func NewLeaf(text string) *Tree {
	return &Tree{Label: text, Leaf: true}
}

func New(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// Placeholder is the tree emitted when no real tree can be built.
func Placeholder() *Tree {
	return &Tree{}
}

func (t *Tree) IsPlaceholder() bool {
	return !t.Leaf && t.Label == "" && len(t.Children) == 0
}

// Leaves returns the leaf texts in order.
func (t *Tree) Leaves() []string {
	var leaves []string
	t.walkLeaves(func(l *Tree) {
		leaves = append(leaves, l.Label)
	})
	return leaves
}

func (t *Tree) walkLeaves(fn func(*Tree)) {
	if t.Leaf {
		fn(t)
		return
	}
	for _, c := range t.Children {
		c.walkLeaves(fn)
	}
}

// NumLeaves counts the leaves under t.
func (t *Tree) NumLeaves() int {
	if t.Leaf {
		return 1
	}
	n := 0
	for _, c := range t.Children {
		n += c.NumLeaves()
	}
	return n
}

// At returns the node at pos.
func (t *Tree) At(pos Position) (*Tree, error) {
	node := t
	for depth, idx := range pos {
		if idx < 0 || idx >= len(node.Children) {
			return nil, fmt.Errorf("position %v at depth %d: %w", pos, depth, ErrOutOfRange)
		}
		node = node.Children[idx]
	}
	return node, nil
}

// LeafPosition returns the position of the i-th leaf.
func (t *Tree) LeafPosition(i int) (Position, error) {
	if i < 0 {
		return nil, fmt.Errorf("leaf %d: %w", i, ErrOutOfRange)
	}

	orig := i
	pos := Position{}
	node := t
	for !node.Leaf {
		found := false
		for ci, c := range node.Children {
			n := c.NumLeaves()
			if i < n {
				pos = append(pos, ci)
				node = c
				found = true
				break
			}
			i -= n
		}
		if !found {
			return nil, fmt.Errorf("leaf %d: %w", orig, ErrOutOfRange)
		}
	}
	return pos, nil
}

// SpanningPosition returns the position of the lowest node dominating the
// leaves in [start, end). A span of a single leaf returns the leaf itself.
func (t *Tree) SpanningPosition(start, end int) (Position, error) {
	if end <= start {
		return nil, fmt.Errorf("empty span [%d, %d): %w", start, end, ErrOutOfRange)
	}
	sp, err := t.LeafPosition(start)
	if err != nil {
		return nil, err
	}
	ep, err := t.LeafPosition(end - 1)
	if err != nil {
		return nil, err
	}
	return commonPrefix(sp, ep), nil
}

func commonPrefix(a, b Position) Position {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return append(Position{}, a[:n]...)
}

// Copy returns a deep copy of t.
func (t *Tree) Copy() *Tree {
	c := &Tree{Label: t.Label, Leaf: t.Leaf}
	if len(t.Children) > 0 {
		c.Children = make([]*Tree, len(t.Children))
		for i, ch := range t.Children {
			c.Children[i] = ch.Copy()
		}
	}
	return c
}

// ChildLabels returns the labels of the direct children.
func (t *Tree) ChildLabels() []string {
	labels := make([]string, len(t.Children))
	for i, c := range t.Children {
		labels[i] = c.Label
	}
	return labels
}

// String formats t in single line bracket notation.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

// SVMString formats t for SVM-light-TK, which allows no space between
// adjacent brackets.
func (t *Tree) SVMString() string {
	return strings.ReplaceAll(t.String(), ") (", ")(")
}

func (t *Tree) write(b *strings.Builder) {
	if t.Leaf {
		b.WriteString(t.Label)
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, c := range t.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// IsAppositive reports whether t looks like "NP , NP ," which is the
// classic appositive construction.
func IsAppositive(t *Tree) bool {
	if t == nil || t.Leaf || len(t.Children) < 4 {
		return false
	}
	labels := t.ChildLabels()
	return labels[0] == "NP" && labels[1] == "," && labels[2] == "NP" && labels[3] == ","
}
