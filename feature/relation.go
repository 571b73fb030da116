package feature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

// Relation holds every relation feature.
var Relation = NewRegistry(
	New("entity_type_pair", func(p mention.Pair, _ *Context) (string, error) {
		return "entity_type_pair=" + p.M1.Type + "-" + p.M2.Type, nil
	}),
	Flag("interceding_in", intercedingIn),
	New("wm1", func(p mention.Pair, _ *Context) (string, error) {
		return mentionWords("wm1", p.M1), nil
	}),
	New("wm2", func(p mention.Pair, _ *Context) (string, error) {
		return mentionWords("wm2", p.M2), nil
	}),
	Flag("wb_null", func(p mention.Pair, _ *Context) (bool, error) {
		return p.SameSentence() && p.M1.End == p.M2.Start, nil
	}),
	New("word_between", func(p mention.Pair, c *Context) (string, error) {
		if !p.SameSentence() || p.M2.Start-p.M1.End != 1 {
			return "", nil
		}
		return wordAt("word_between", p.M1.Sentence, p.M1.End, c)
	}),
	New("first_word_between", func(p mention.Pair, c *Context) (string, error) {
		if !p.SameSentence() || p.M2.Start-p.M1.End < 2 {
			return "", nil
		}
		return wordAt("first_word_between", p.M1.Sentence, p.M1.End, c)
	}),
	New("last_word_between", func(p mention.Pair, c *Context) (string, error) {
		if !p.SameSentence() || p.M2.Start-p.M1.End < 2 {
			return "", nil
		}
		return wordAt("last_word_between", p.M1.Sentence, p.M2.Start-1, c)
	}),
	New("first_word_before_m1", func(p mention.Pair, c *Context) (string, error) {
		if p.M1.Start < 1 {
			return "", nil
		}
		return wordAt("first_word_before_m1", p.M1.Sentence, p.M1.Start-1, c)
	}),
	New("second_word_before_m1", func(p mention.Pair, c *Context) (string, error) {
		if p.M1.Start < 2 {
			return "", nil
		}
		return wordAt("second_word_before_m1", p.M1.Sentence, p.M1.Start-2, c)
	}),
	New("first_word_after_m2", func(p mention.Pair, c *Context) (string, error) {
		v, _ := wordAt("first_word_after_m2", p.M2.Sentence, p.M2.End, c)
		return v, nil
	}),
	New("second_word_after_m2", func(p mention.Pair, c *Context) (string, error) {
		v, _ := wordAt("second_word_after_m2", p.M2.Sentence, p.M2.End+1, c)
		return v, nil
	}),
	New("token_distance", func(p mention.Pair, _ *Context) (string, error) {
		return "token_distance=" + strconv.Itoa(p.M2.Start-p.M1.End), nil
	}),
	New("governing_constituents", governingConstituents),
	New("tree_distance", relationTreeDistance),
	Flag("geo_identity", func(p mention.Pair, c *Context) (bool, error) {
		return geoIdentity(p.M1, p.M2, c), nil
	}),
	New("hypernym_m1", func(p mention.Pair, c *Context) (string, error) {
		return hypernym("hypernym_m1", p.M1, c)
	}),
	New("hypernym_m2", func(p mention.Pair, c *Context) (string, error) {
		return hypernym("hypernym_m2", p.M2, c)
	}),
)

// RelationDefaults is the selection used when no configuration is given.
var RelationDefaults = []string{
	"entity_type_pair",
	"interceding_in",
	"wm1",
	"wm2",
	"wb_null",
	"word_between",
	"first_word_before_m1",
	"first_word_after_m2",
	"token_distance",
	"governing_constituents",
	"tree_distance",
}

// intercedingIn holds when "in" separates a mention from a following
// location in the same sentence.
func intercedingIn(p mention.Pair, c *Context) (bool, error) {
	if !p.SameSentence() || (p.M2.Type != "GPE" && p.M2.Type != "FAC") {
		return false, nil
	}
	s, err := c.Doc.Sentence(p.M1.Sentence)
	if err != nil {
		return false, err
	}
	for _, t := range slice(s, p.M1.End, p.M2.Start) {
		if lexicon.Clean(t.Text) == "in" {
			return true, nil
		}
	}
	return false, nil
}

// slice is s[from:to] with both bounds clamped, empty when from >= to.
func slice(s sent.Sentence, from, to int) sent.Sentence {
	from = max(0, min(from, len(s)))
	to = max(from, min(to, len(s)))
	return s[from:to]
}

func mentionWords(prefix string, m mention.Mention) string {
	words := m.Words()
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = prefix + "_" + lexicon.Clean(w) + "=True"
	}
	return strings.Join(out, " ")
}

func wordAt(name string, sentence, i int, c *Context) (string, error) {
	s, err := c.Doc.Sentence(sentence)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(s) {
		return "", fmt.Errorf("token %d of sentence %d: %w", i, sentence, sent.ErrOutOfRange)
	}
	return name + "=" + s[i].Text, nil
}

// governingLabel is the label of the constituent above m: the grandparent
// of the POS node for single tokens, the parent of the spanning node
// otherwise. Positions above the root resolve to the root.
func governingLabel(m mention.Mention, c *Context) (string, error) {
	t, err := c.Doc.Tree(m.Sentence)
	if err != nil {
		return "", err
	}

	var pos tree.Position
	if m.Len() == 1 {
		leaf, err := t.LeafPosition(m.Start)
		if err != nil {
			return "", err
		}
		pos = leaf[:max(0, len(leaf)-3)]
	} else {
		span, err := t.SpanningPosition(m.Start, m.End)
		if err != nil {
			return "", err
		}
		pos = span[:max(0, len(span)-1)]
	}

	n, err := t.At(pos)
	if err != nil {
		return "", err
	}
	return n.Label, nil
}

func governingConstituents(p mention.Pair, c *Context) (string, error) {
	l1, err := governingLabel(p.M1, c)
	if err != nil {
		return "", err
	}
	l2, err := governingLabel(p.M2, c)
	if err != nil {
		return "", err
	}
	return "governing_constituents=" + l1 + "-" + l2, nil
}

// relationTreeDistance is the number of edges between the first leaf of
// the first mention and the last leaf of the second one.
func relationTreeDistance(p mention.Pair, c *Context) (string, error) {
	if !p.SameSentence() {
		return "", nil
	}
	t, err := c.Doc.Tree(p.M1.Sentence)
	if err != nil {
		return "", err
	}

	start, end := p.M1.Start, min(p.M2.End, t.NumLeaves())-1
	if end < start {
		start, end = end, start
	}
	path, err := tree.Paths(t, start, end)
	if err != nil {
		return "", err
	}
	return "tree_distance=" + strconv.Itoa(path.Edges), nil
}

// hypernym emits the hypernym of the last word of m when one is known.
func hypernym(name string, m mention.Mention, c *Context) (string, error) {
	span, err := c.span(m)
	if err != nil {
		return "", err
	}
	if len(span) == 0 {
		return "", nil
	}
	h := span[len(span)-1].Hypernym
	if h == "" || h == tree.Missing {
		return "", nil
	}
	return name + "=" + h, nil
}
