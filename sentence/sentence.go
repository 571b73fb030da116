package sentence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/revelaction/pairfeat/dependency"
	"github.com/revelaction/pairfeat/tree"
)

// ErrOutOfRange is shared with the tree package so callers can test a
// single sentinel.
var ErrOutOfRange = tree.ErrOutOfRange

// Doc bundles the resources of one document: the tagged sentences and, for
// each sentence, its constituency tree and dependency relations.
type Doc struct {
	Id string

	Sentences    []Sentence              `json:"sentences"`
	Trees        []*tree.Tree            `json:"-"`
	Dependencies [][]dependency.Relation `json:"-"`
}

// Sentence is a sequence of tokens indexed by position.
type Sentence []Token

// Token represents a word of the sentence, with POS and the attributes
// overlaid by earlier preprocessing.
type Token struct {
	Text string `json:"token"`
	Pos  string `json:"pos"`

	// First WordNet hypernym of the word, "*" if none
	Hypernym string `json:"hypernym,omitempty"`

	// Entity type of the mention covering the word, "*" if none
	EntityType string `json:"entity_type,omitempty"`
}

// UnmarshalJSON accepts both the plain [token, pos] pair and the attribute
// record form.
func (t *Token) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) < 1 {
			return fmt.Errorf("empty token pair")
		}
		t.Text = pair[0]
		if len(pair) > 1 {
			t.Pos = pair[1]
		}
		return nil
	}

	type record Token
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = Token(r)
	return nil
}

// Texts returns the surface forms of s.
func (s Sentence) Texts() []string {
	texts := make([]string, len(s))
	for i, tok := range s {
		texts[i] = tok.Text
	}
	return texts
}

// Span returns the tokens in [start, end).
func (s Sentence) Span(start, end int) (Sentence, error) {
	if start < 0 || end > len(s) || start > end {
		return nil, fmt.Errorf("span [%d, %d) in sentence of %d tokens: %w", start, end, len(s), ErrOutOfRange)
	}
	return s[start:end], nil
}

// Sentence returns the sentence at index i.
func (d *Doc) Sentence(i int) (Sentence, error) {
	if i < 0 || i >= len(d.Sentences) {
		return nil, fmt.Errorf("doc %s: sentence %d of %d: %w", d.Id, i, len(d.Sentences), ErrOutOfRange)
	}
	return d.Sentences[i], nil
}

// Tree returns the constituency tree of sentence i.
func (d *Doc) Tree(i int) (*tree.Tree, error) {
	if i < 0 || i >= len(d.Trees) {
		return nil, fmt.Errorf("doc %s: tree %d of %d: %w", d.Id, i, len(d.Trees), ErrOutOfRange)
	}
	return d.Trees[i], nil
}

// Relations returns the dependency relations of sentence i.
func (d *Doc) Relations(i int) ([]dependency.Relation, error) {
	if i < 0 || i >= len(d.Dependencies) {
		return nil, fmt.Errorf("doc %s: dependencies %d of %d: %w", d.Id, i, len(d.Dependencies), ErrOutOfRange)
	}
	return d.Dependencies[i], nil
}
