package tree

import "fmt"

// Path is the label route between two leaves through their lowest common
// ancestor.
type Path struct {
	// Up holds the ancestors strictly between the start leaf and the LCA,
	// nearest to the leaf first.
	Up []string

	// Down holds the LCA and its descendants down to the parent of the end
	// leaf.
	Down []string

	// Edges is the number of edges between the two leaves.
	Edges int
}

// LCA returns the position of the lowest common ancestor of leaves i and j.
func LCA(t *Tree, i, j int) (Position, error) {
	ip, err := t.LeafPosition(i)
	if err != nil {
		return nil, err
	}
	jp, err := t.LeafPosition(j)
	if err != nil {
		return nil, err
	}
	return commonPrefix(ip, jp), nil
}

// Paths computes the tree path between leaves start and end, both
// inclusive. Indices are not clamped.
func Paths(t *Tree, start, end int) (Path, error) {
	if start > end {
		return Path{}, fmt.Errorf("path from leaf %d to leaf %d: %w", start, end, ErrOutOfRange)
	}

	sp, err := t.LeafPosition(start)
	if err != nil {
		return Path{}, err
	}
	ep, err := t.LeafPosition(end)
	if err != nil {
		return Path{}, err
	}

	lca := commonPrefix(sp, ep)
	revStart := sp[len(lca):]
	revEnd := ep[len(lca):]

	var p Path
	p.Edges = len(revStart) + len(revEnd)

	for i := len(revStart) - 1; i >= 1; i-- {
		n, err := t.At(join(lca, revStart[:i]))
		if err != nil {
			return Path{}, err
		}
		p.Up = append(p.Up, n.Label)
	}

	for i := 0; i < len(revEnd); i++ {
		n, err := t.At(join(lca, revEnd[:i]))
		if err != nil {
			return Path{}, err
		}
		p.Down = append(p.Down, n.Label)
	}

	return p, nil
}

func join(a, b Position) Position {
	pos := make(Position, 0, len(a)+len(b))
	pos = append(pos, a...)
	return append(pos, b...)
}
