package feature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/pairfeat/dependency"
	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

var (
	singularPronouns = []string{"it", "its", "he", "his", "him", "her", "hers", "i", "my", "mine", "me"}
	pluralPronouns   = []string{"they", "theirs", "their", "them", "we", "our", "ours", "us"}

	malePronouns   = []string{"he", "him", "his", "himself"}
	femalePronouns = []string{"she", "her", "hers", "herself"}

	// personal pronouns of the antecedent and anaphor features
	personPronouns = []string{"himself", "herself", "he", "him", "you", "hers", "her"}

	whPronouns    = []string{"who", "which", "whose", "that", "where", "what"}
	demonstrative = []string{"this", "that", "these", "those"}
)

// maxDistance caps the sentence distance feature.
const maxDistance = 4

// jaccardThreshold is the lowest coefficient printed as a value.
const jaccardThreshold = 0.25

// Coref holds every coreference feature.
var Coref = NewRegistry(
	Flag("exact_match", exactMatch),
	Flag("types_match", func(p mention.Pair, _ *Context) (bool, error) {
		return p.M1.Type == p.M2.Type, nil
	}),
	Flag("same_sentence", func(p mention.Pair, _ *Context) (bool, error) {
		return p.SameSentence(), nil
	}),
	Flag("agreement", agreement),
	Flag("adjacent_subjects", adjacentSubjects),
	Flag("head_match", headMatch),
	Flag("wh_clause", whClause),
	Flag("is_copula", isCopula),
	Flag("is_demonym", isDemonym),
	Flag("geo_identity", func(p mention.Pair, c *Context) (bool, error) {
		return geoIdentity(p.M1, p.M2, c), nil
	}),
	Flag("nearest_pronoun", nearestPronoun),
	Flag("is_appositive", isAppositive),
	Flag("is_contained", func(p mention.Pair, _ *Context) (bool, error) {
		return isContained(p), nil
	}),
	New("jaccard_coefficient", jaccard),
	Flag("antecedent_is_pronoun", func(p mention.Pair, _ *Context) (bool, error) {
		return contains(personPronouns, p.M1.Text), nil
	}),
	Flag("anaphor_is_pronoun", func(p mention.Pair, _ *Context) (bool, error) {
		return contains(personPronouns, p.M2.Text), nil
	}),
	New("distance", func(p mention.Pair, _ *Context) (string, error) {
		d := p.M1.Sentence - p.M2.Sentence
		if d < 0 {
			d = -d
		}
		return "distance=" + strconv.Itoa(min(d, maxDistance)), nil
	}),
	Flag("pos_match", posMatch),
	Flag("both_proper_names", bothProperNames),
	Flag("anaphor_definite", func(p mention.Pair, c *Context) (bool, error) {
		return anaphorStartsWith(p, c, []string{"the"}), nil
	}),
	Flag("anaphor_demonstrative", func(p mention.Pair, c *Context) (bool, error) {
		return anaphorStartsWith(p, c, demonstrative), nil
	}),
	New("tree_distance", corefTreeDistance),
	Flag("appositive_tree", appositiveTree),
)

// CorefDefaults is the selection used when no configuration is given.
var CorefDefaults = []string{
	"types_match",
	"same_sentence",
	"agreement",
	"adjacent_subjects",
	"head_match",
	"wh_clause",
	"is_copula",
	"is_demonym",
	"geo_identity",
	"nearest_pronoun",
	"is_appositive",
	"is_contained",
}

func exactMatch(p mention.Pair, c *Context) (bool, error) {
	if lexicon.Clean(p.M1.Text) != lexicon.Clean(p.M2.Text) {
		return false, nil
	}
	return posMatch(p, c)
}

func posMatch(p mention.Pair, c *Context) (bool, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return false, err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return false, err
	}

	tags := map[string]struct{}{}
	for _, t := range s1 {
		tags[t.Pos] = struct{}{}
	}
	for _, t := range s2 {
		if _, ok := tags[t.Pos]; ok {
			return true, nil
		}
	}
	return false, nil
}

func isContained(p mention.Pair) bool {
	t1, t2 := lexicon.Clean(p.M1.Text), lexicon.Clean(p.M2.Text)
	return strings.Contains(t1, t2) || strings.Contains(t2, t1)
}

func errEmpty(p mention.Pair) error {
	return fmt.Errorf("empty mention in pair [%d, %d) [%d, %d): %w", p.M1.Start, p.M1.End, p.M2.Start, p.M2.End, sent.ErrOutOfRange)
}

func isPronoun(tag string) bool {
	return tag == "PRP" || tag == "PRP$"
}

// number classifies a mention span as "sg", "pl" or "" by its last tag.
// Pronouns are judged by their first word.
func number(span sent.Sentence) string {
	tag := span[len(span)-1].Pos
	word := strings.ToLower(span[0].Text)

	switch {
	case tag == "NN" || tag == "NNP":
		return "sg"
	case isPronoun(tag) && contains(singularPronouns, word):
		return "sg"
	case tag == "NNS" || tag == "NNPS":
		return "pl"
	case isPronoun(tag) && contains(pluralPronouns, word):
		return "pl"
	}
	return ""
}

func numberMatch(p mention.Pair, c *Context) (bool, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return false, err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return false, err
	}
	if len(s1) == 0 || len(s2) == 0 {
		return false, errEmpty(p)
	}
	return number(s1) == number(s2), nil
}

// gender returns "M", "F" or "N". Only persons get a gender, from the first
// word of the mention.
func gender(m mention.Mention, first string, lex *lexicon.Lexicon) string {
	if m.Type != "PER" {
		return "N"
	}
	name := lexicon.Clean(first)
	switch {
	case contains(malePronouns, name):
		return "M"
	case contains(femalePronouns, name):
		return "F"
	}
	switch lex.Gender[name] {
	case "male":
		return "M"
	case "female":
		return "F"
	}
	return "N"
}

func genderMatch(p mention.Pair, c *Context) (bool, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return false, err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return false, err
	}
	if len(s1) == 0 || len(s2) == 0 {
		return false, errEmpty(p)
	}
	return gender(p.M1, s1[0].Text, c.Lex) == gender(p.M2, s2[0].Text, c.Lex), nil
}

func agreement(p mention.Pair, c *Context) (bool, error) {
	ok, err := genderMatch(p, c)
	if err != nil || !ok {
		return false, err
	}
	return numberMatch(p, c)
}

func hasProperNoun(span sent.Sentence) bool {
	for _, t := range span {
		if strings.HasPrefix(t.Pos, "NNP") {
			return true
		}
	}
	return false
}

// bothProperNames holds when both mentions contain a proper noun and one
// text contains the other.
func bothProperNames(p mention.Pair, c *Context) (bool, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return false, err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return false, err
	}
	return hasProperNoun(s1) && hasProperNoun(s2) && isContained(p), nil
}

// adjacentSubjects holds when the mentions are in adjacent sentences and
// each one takes part in the first dependency of its sentence.
func adjacentSubjects(p mention.Pair, c *Context) (bool, error) {
	d := p.M1.Sentence - p.M2.Sentence
	if d != 1 && d != -1 {
		return false, nil
	}

	proper, err := bothProperNames(p, c)
	if err != nil || proper {
		return false, err
	}

	r1, err := c.Doc.Relations(p.M1.Sentence)
	if err != nil {
		return false, err
	}
	r2, err := c.Doc.Relations(p.M2.Sentence)
	if err != nil {
		return false, err
	}
	if len(r1) == 0 || len(r2) == 0 || !r1[0].Valid() || !r2[0].Valid() {
		return false, nil
	}

	in := func(r dependency.Relation, m mention.Mention) bool {
		return indexRange(m, r.Head) || indexRange(m, r.Dep)
	}
	return in(r1[0], p.M1) && in(r2[0], p.M2), nil
}

// subtreeOf returns the lowest node spanning m in its sentence tree.
func subtreeOf(m mention.Mention, c *Context) (*tree.Tree, error) {
	t, err := c.Doc.Tree(m.Sentence)
	if err != nil {
		return nil, err
	}
	pos, err := t.SpanningPosition(m.Start, m.End)
	if err != nil {
		return nil, err
	}
	return t.At(pos)
}

func headMatch(p mention.Pair, c *Context) (bool, error) {
	n1, err := subtreeOf(p.M1, c)
	if err != nil {
		return false, err
	}
	n2, err := subtreeOf(p.M2, c)
	if err != nil {
		return false, err
	}
	return c.Heads.Head(n1) == c.Heads.Head(n2), nil
}

// whClause holds for same type mentions at most 4 tokens apart in one
// sentence when one of them is a wh pronoun.
func whClause(p mention.Pair, _ *Context) (bool, error) {
	if !p.SameSentence() || p.M1.Type != p.M2.Type {
		return false, nil
	}

	lo := min(p.M1.Start, p.M1.End, p.M2.Start, p.M2.End)
	hi := max(p.M1.Start, p.M1.End, p.M2.Start, p.M2.End)
	if hi-lo > 4 {
		return false, nil
	}
	return contains(whPronouns, lexicon.Clean(p.M1.Text)) || contains(whPronouns, lexicon.Clean(p.M2.Text)), nil
}

func isAppositive(p mention.Pair, c *Context) (bool, error) {
	if !p.SameSentence() {
		return false, nil
	}
	rels, err := c.Doc.Relations(p.M1.Sentence)
	if err != nil {
		return false, err
	}

	in := func(i int) bool { return indexRange(p.M1, i) || indexRange(p.M2, i) }
	for _, r := range rels {
		if r.Is("appos", false) && r.Valid() && in(r.Head) && in(r.Dep) {
			return true, nil
		}
	}
	return false, nil
}

// isCopula holds when both mentions are linked by a subject relation and
// one of them is the head or dependent of a copula relation listed before
// the next subject relation.
func isCopula(p mention.Pair, c *Context) (bool, error) {
	if !p.SameSentence() {
		return false, nil
	}
	rels, err := c.Doc.Relations(p.M1.Sentence)
	if err != nil {
		return false, err
	}

	in := func(i int) bool { return indexRange(p.M1, i) || indexRange(p.M2, i) }
	for i, r := range rels {
		if !r.Is("nsubj", true) || !r.Valid() {
			continue
		}
		if !in(r.Head) || !in(r.Dep) {
			continue
		}
		for _, next := range rels[i+1:] {
			if next.Is("nsubj", false) {
				break
			}
			if next.Is("cop", false) && next.Valid() && (in(next.Head) || in(next.Dep)) {
				return true, nil
			}
		}
	}
	return false, nil
}

func isDemonym(p mention.Pair, c *Context) (bool, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return false, err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return false, err
	}

	t1 := strings.Join(s1.Texts(), " ")
	t2 := strings.Join(s2.Texts(), " ")
	if d, ok := c.Lex.Demonym[t1]; ok && d == t2 {
		return true, nil
	}
	if d, ok := c.Lex.Demonym[t2]; ok && d == t1 {
		return true, nil
	}
	return false, nil
}

// geoIdentity holds for two GPE mentions when the geographic dictionary
// relates one to the other.
func geoIdentity(m1, m2 mention.Mention, c *Context) bool {
	if m1.Type != "GPE" || m2.Type != "GPE" {
		return false
	}
	t1 := lexicon.Clean(strings.Join(m1.Words(), " "))
	t2 := lexicon.Clean(strings.Join(m2.Words(), " "))
	return c.Lex.Geo.Has(t1, t2) || c.Lex.Geo.Has(t2, t1)
}

// nearestPronoun holds when the second mention is the first personal
// pronoun after the end of the first mention.
func nearestPronoun(p mention.Pair, c *Context) (bool, error) {
	var idx int
	switch p.M2.Sentence {
	case p.M1.Sentence, p.M1.Sentence + 1:
		idx = p.M2.Sentence
	default:
		return false, nil
	}

	s, err := c.Doc.Sentence(idx)
	if err != nil {
		return false, err
	}
	for i := p.M1.End; i < len(s); i++ {
		if strings.HasPrefix(s[i].Pos, "PRP") {
			return i == p.M2.Start, nil
		}
	}
	return false, nil
}

func jaccard(p mention.Pair, c *Context) (string, error) {
	s1, err := c.span(p.M1)
	if err != nil {
		return "", err
	}
	s2, err := c.span(p.M2)
	if err != nil {
		return "", err
	}

	set1 := tokenSet(s1)
	set2 := tokenSet(s2)
	inter := 0
	for k := range set1 {
		if _, ok := set2[k]; ok {
			inter++
		}
	}
	size := len(set1) + len(set2) - inter
	if size == 0 {
		return "", nil
	}

	jc := float64(inter) / float64(size)
	if jc > jaccardThreshold {
		return "jaccard_coefficient=" + formatFloat(jc), nil
	}
	return "jaccard_coefficient=<0.25", nil
}

func tokenSet(s sent.Sentence) map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, t := range s {
		set[t.Text] = struct{}{}
	}
	return set
}

// formatFloat prints f with 12 significant digits, keeping a decimal
// point on integral values ("1.0").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// laterMention returns the mention that comes last in the document.
func laterMention(p mention.Pair) mention.Mention {
	if p.M1.Sentence > p.M2.Sentence || (p.M1.Sentence == p.M2.Sentence && p.M1.Start > p.M2.Start) {
		return p.M1
	}
	return p.M2
}

// anaphorStartsWith holds when the first word of the constituent spanning
// the anaphor is in words. Lookup failures do not fire.
func anaphorStartsWith(p mention.Pair, c *Context, words []string) bool {
	m := laterMention(p)
	t, err := c.Doc.Tree(m.Sentence)
	if err != nil {
		return false
	}
	end := min(m.End, t.NumLeaves())
	pos, err := t.SpanningPosition(m.Start, end)
	if err != nil {
		return false
	}
	n, err := t.At(pos)
	if err != nil {
		return false
	}

	first := n
	if !n.Leaf {
		first = n.Children[0]
	}
	leaves := first.Leaves()
	if len(leaves) == 0 {
		return false
	}
	return contains(words, strings.ToLower(leaves[0]))
}

// corefTreeDistance is the number of inner nodes on the path between the
// leftmost and rightmost mention boundaries.
func corefTreeDistance(p mention.Pair, c *Context) (string, error) {
	if !p.SameSentence() {
		return "", nil
	}
	t, err := c.Doc.Tree(p.M1.Sentence)
	if err != nil {
		return "", err
	}

	start := min(p.M1.Start, p.M1.End, p.M2.Start, p.M2.End)
	end := min(max(p.M1.Start, p.M1.End, p.M2.Start, p.M2.End), t.NumLeaves()) - 1
	if end < start {
		end = start
	}

	path, err := tree.Paths(t, start, end)
	if err != nil {
		return "", err
	}
	return "tree_distance=" + strconv.Itoa(len(path.Up)+len(path.Down)), nil
}

// appositiveTree holds when the constituent dominating both mentions has
// the "NP , NP ," shape.
func appositiveTree(p mention.Pair, c *Context) (bool, error) {
	if !p.SameSentence() {
		return false, nil
	}
	t, err := c.Doc.Tree(p.M1.Sentence)
	if err != nil {
		return false, nil
	}

	start := min(p.M1.Start, p.M2.Start)
	end := min(max(p.M1.End, p.M2.End), t.NumLeaves())
	pos, err := t.SpanningPosition(start, end)
	if err != nil {
		return false, nil
	}
	n, err := t.At(pos)
	if err != nil {
		return false, nil
	}
	return tree.IsAppositive(n), nil
}
