package tree

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a tree in Penn bracket notation. An outer unlabeled bracket
// wrapping a single tree, as printed by some parsers, is dropped.
func Parse(s string) (*Tree, error) {
	p := &parser{tokens: tokenize(s)}
	if len(p.tokens) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrMalformed)
	}

	t, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("trailing input after tree %q: %w", p.tokens[p.pos], ErrMalformed)
	}

	if t.Label == "" && len(t.Children) == 1 && !t.Children[0].Leaf {
		t = t.Children[0]
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Used for literals.
func MustParse(s string) *Tree {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) node() (*Tree, error) {
	if p.pos >= len(p.tokens) || p.tokens[p.pos] != "(" {
		return nil, fmt.Errorf("expected ( at token %d: %w", p.pos, ErrMalformed)
	}
	p.pos++

	t := &Tree{}
	if p.pos < len(p.tokens) && !isBracket(p.tokens[p.pos]) {
		t.Label = p.tokens[p.pos]
		p.pos++
	}

	for {
		if p.pos >= len(p.tokens) {
			return nil, fmt.Errorf("unbalanced brackets in %q: %w", t.Label, ErrMalformed)
		}

		switch tok := p.tokens[p.pos]; tok {
		case ")":
			p.pos++
			return t, nil
		case "(":
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			t.Children = append(t.Children, child)
		default:
			t.Children = append(t.Children, NewLeaf(tok))
			p.pos++
		}
	}
}

func isBracket(s string) bool {
	return s == "(" || s == ")"
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
