package feature

import (
	"errors"
	"strings"
	"testing"

	"github.com/revelaction/pairfeat/dependency"
	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

func tokens(tagged string) sent.Sentence {
	var s sent.Sentence
	for _, wt := range strings.Fields(tagged) {
		i := strings.LastIndex(wt, "/")
		s = append(s, sent.Token{Text: wt[:i], Pos: wt[i+1:]})
	}
	return s
}

// parisDoc is "Paris is the capital" with a copula analysis.
func parisDoc() *sent.Doc {
	s := tokens("Paris/NNP is/VBZ the/DT capital/NN")
	s[0].EntityType = "GPE"
	s[3].EntityType = "GPE"
	s[3].Hypernym = "center"

	return &sent.Doc{
		Id:        "paris",
		Sentences: []sent.Sentence{s},
		Trees:     []*tree.Tree{tree.MustParse("(ROOT (S (NP (NNP Paris)) (VP (VBZ is) (NP (DT the) (NN capital)))))")},
		Dependencies: [][]dependency.Relation{
			dependency.ParseBlock("nsubj(capital-4, Paris-1)\ncop(capital-4, is-2)\ndet(capital-4, the-3)"),
		},
	}
}

// smithDoc is "John Smith , the president , said he left ."
func smithDoc() *sent.Doc {
	return &sent.Doc{
		Id:        "smith",
		Sentences: []sent.Sentence{tokens("John/NNP Smith/NNP ,/, the/DT president/NN ,/, said/VBD he/PRP left/VBD ./.")},
		Trees: []*tree.Tree{tree.MustParse(
			"(ROOT (S (NP (NP (NNP John) (NNP Smith)) (, ,) (NP (DT the) (NN president)) (, ,)) (VP (VBD said) (SBAR (S (NP (PRP he)) (VP (VBD left))))) (. .)))")},
		Dependencies: [][]dependency.Relation{
			dependency.ParseBlock("nn(Smith-2, John-1)\nnsubj(said-7, Smith-2)\ndet(president-5, the-4)\nappos(Smith-2, president-5)\nroot(ROOT-0, said-7)\nnsubj(left-9, he-8)\nccomp(said-7, left-9)"),
		},
	}
}

// marysDoc is "Mary slept ." followed by "She snored ."
func marysDoc() *sent.Doc {
	return &sent.Doc{
		Id: "mary",
		Sentences: []sent.Sentence{
			tokens("Mary/NNP slept/VBD ./."),
			tokens("She/PRP snored/VBD ./."),
		},
		Trees: []*tree.Tree{
			tree.MustParse("(ROOT (S (NP (NNP Mary)) (VP (VBD slept)) (. .)))"),
			tree.MustParse("(ROOT (S (NP (PRP She)) (VP (VBD snored)) (. .)))"),
		},
		Dependencies: [][]dependency.Relation{
			dependency.ParseBlock("nsubj(slept-2, Mary-1)\nroot(ROOT-0, slept-2)"),
			dependency.ParseBlock("nsubj(snored-2, She-1)\nroot(ROOT-0, snored-2)"),
		},
	}
}

func corefPair(t *testing.T, line string) mention.Pair {
	t.Helper()
	p, err := mention.Coref.ParseLine(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func extract(t *testing.T, r *Registry, name string, p mention.Pair, c *Context) string {
	t.Helper()
	f, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("feature %s not registered", name)
	}
	v, err := f.Extract(p, c)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestDefaultSetsResolve(t *testing.T) {
	if _, err := Coref.Set(CorefDefaults...); err != nil {
		t.Errorf("coref defaults: %v", err)
	}
	if _, err := Relation.Set(RelationDefaults...); err != nil {
		t.Errorf("relation defaults: %v", err)
	}
}

func TestSetUnknown(t *testing.T) {
	_, err := Coref.Set("types_match", "nope", "also_nope")
	if err == nil || !strings.Contains(err.Error(), "also_nope, nope") {
		t.Errorf("expected unknown features error, got %v", err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry(New("a", nil), New("b", nil))
	r.Register(Flag("a", func(mention.Pair, *Context) (bool, error) { return true, nil }))

	if names := r.Names(); len(names) != 2 || names[0] != "a" {
		t.Errorf("unexpected names %v", names)
	}
	s, err := r.Set("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Extract(mention.Pair{}, NewContext(&sent.Doc{}, nil))
	if err != nil || len(got) != 1 || got[0] != "a=True" {
		t.Errorf("unexpected extraction %v, %v", got, err)
	}
}

func TestSetExtractError(t *testing.T) {
	s, err := Coref.Set("types_match", "head_match")
	if err != nil {
		t.Fatal(err)
	}
	p := corefPair(t, "paris 5 0 1 GPE Paris 5 2 4 GPE capital yes")

	_, err = s.Extract(p, NewContext(parisDoc(), nil))
	if !errors.Is(err, sent.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "head_match: ") {
		t.Errorf("expected feature name in error, got %v", err)
	}
}

func TestCorefCopula(t *testing.T) {
	c := NewContext(parisDoc(), nil)
	p := corefPair(t, "paris 0 0 1 GPE Paris 0 2 4 GPE capital yes")

	cases := map[string]string{
		"is_copula":        "is_copula=True",
		"same_sentence":    "same_sentence=True",
		"types_match":      "types_match=True",
		"head_match":       "",
		"is_contained":     "",
		"wh_clause":        "",
		"is_appositive":    "",
		"appositive_tree":  "",
		"anaphor_definite": "anaphor_definite=True",
		"tree_distance":    "tree_distance=6",
		"distance":         "distance=0",
	}
	for name, expected := range cases {
		if got := extract(t, Coref, name, p, c); got != expected {
			t.Errorf("%s: expected %q, got %q", name, expected, got)
		}
	}
}

func TestCorefAppositive(t *testing.T) {
	lex := &lexicon.Lexicon{Gender: map[string]string{"john": "male"}}
	c := NewContext(smithDoc(), lex)

	appos := corefPair(t, "smith 0 0 2 PER Smith 0 3 5 PER president yes")
	if got := extract(t, Coref, "is_appositive", appos, c); got != "is_appositive=True" {
		t.Errorf("expected is_appositive, got %q", got)
	}
	if got := extract(t, Coref, "appositive_tree", appos, c); got != "appositive_tree=True" {
		t.Errorf("expected appositive_tree, got %q", got)
	}
	if got := extract(t, Coref, "head_match", appos, c); got != "" {
		t.Errorf("expected no head match, got %q", got)
	}

	pron := corefPair(t, "smith 0 0 2 PER Smith 0 7 8 PER he yes")
	cases := map[string]string{
		"nearest_pronoun":    "nearest_pronoun=True",
		"agreement":          "agreement=True",
		"anaphor_is_pronoun": "anaphor_is_pronoun=True",
		"is_appositive":      "",
		"pos_match":          "",
	}
	for name, expected := range cases {
		if got := extract(t, Coref, name, pron, c); got != expected {
			t.Errorf("%s: expected %q, got %q", name, expected, got)
		}
	}
}

func TestCorefGenderDisagreement(t *testing.T) {
	doc := smithDoc()
	doc.Sentences[0][0].Text = "Mary"
	lex := &lexicon.Lexicon{Gender: map[string]string{"mary": "female"}}

	p := corefPair(t, "smith 0 0 2 PER Smith 0 7 8 PER he yes")
	if got := extract(t, Coref, "agreement", p, NewContext(doc, lex)); got != "" {
		t.Errorf("expected no agreement, got %q", got)
	}
}

func TestCorefNumber(t *testing.T) {
	cases := []struct {
		tagged   string
		expected string
	}{
		{"dogs/NNS", "pl"},
		{"United/NNP States/NNPS", "pl"},
		{"its/PRP$", "sg"},
		{"their/PRP$", "pl"},
		{"they/PRP", "pl"},
		{"quickly/RB", ""},
	}
	for _, tc := range cases {
		if got := number(tokens(tc.tagged)); got != tc.expected {
			t.Errorf("number(%s): expected %q, got %q", tc.tagged, tc.expected, got)
		}
	}
}

func TestCorefAdjacentSubjects(t *testing.T) {
	c := NewContext(marysDoc(), nil)
	p := corefPair(t, "mary 0 0 1 PER Mary 1 0 1 PER She yes")

	if got := extract(t, Coref, "adjacent_subjects", p, c); got != "adjacent_subjects=True" {
		t.Errorf("expected adjacent_subjects, got %q", got)
	}
	if got := extract(t, Coref, "same_sentence", p, c); got != "" {
		t.Errorf("expected different sentences, got %q", got)
	}
	// scanning resumes in the next sentence at the end index of the first
	if got := extract(t, Coref, "nearest_pronoun", p, c); got != "" {
		t.Errorf("expected no nearest pronoun, got %q", got)
	}
	if got := extract(t, Coref, "tree_distance", p, c); got != "" {
		t.Errorf("expected no tree distance across sentences, got %q", got)
	}
}

func TestCorefJaccard(t *testing.T) {
	doc := &sent.Doc{Sentences: []sent.Sentence{tokens("the/DT big/JJ dog/NN saw/VBD the/DT dog/NN a/DT b/NN")}}
	c := NewContext(doc, nil)

	cases := map[string]string{
		"x 0 0 3 X a 0 4 6 X b no": "jaccard_coefficient=0.666666666667",
		"x 0 4 6 X a 0 4 6 X b no": "jaccard_coefficient=1.0",
		"x 0 6 7 X a 0 7 8 X b no": "jaccard_coefficient=<0.25",
	}
	for line, expected := range cases {
		if got := extract(t, Coref, "jaccard_coefficient", corefPair(t, line), c); got != expected {
			t.Errorf("%s: expected %q, got %q", line, expected, got)
		}
	}
}

func TestCorefLexicon(t *testing.T) {
	doc := &sent.Doc{Sentences: []sent.Sentence{tokens("Denmark/NNP Danish/JJ Warsaw/NNP Poland/NNP")}}
	lex := &lexicon.Lexicon{
		Demonym: map[string]string{"Denmark": "Danish"},
		Geo:     lexicon.Geo{"poland": {"country", "warsaw"}},
	}
	c := NewContext(doc, lex)

	demonym := corefPair(t, "x 0 1 2 NORP Danish 0 0 1 GPE Denmark no")
	if got := extract(t, Coref, "is_demonym", demonym, c); got != "is_demonym=True" {
		t.Errorf("expected is_demonym, got %q", got)
	}

	geo := corefPair(t, "x 0 2 3 GPE Warsaw 0 3 4 GPE Poland no")
	if got := extract(t, Coref, "geo_identity", geo, c); got != "geo_identity=True" {
		t.Errorf("expected geo_identity, got %q", got)
	}
}

func TestCorefWhClause(t *testing.T) {
	doc := &sent.Doc{Sentences: []sent.Sentence{tokens("the/DT man/NN who/WP came/VBD")}}
	p := corefPair(t, "x 0 0 2 PER man 0 2 3 PER who yes")
	if got := extract(t, Coref, "wh_clause", p, NewContext(doc, nil)); got != "wh_clause=True" {
		t.Errorf("expected wh_clause, got %q", got)
	}
}

func TestCorefDemonstrative(t *testing.T) {
	doc := &sent.Doc{
		Sentences: []sent.Sentence{tokens("that/DT man/NN")},
		Trees:     []*tree.Tree{tree.MustParse("(ROOT (NP (DT that) (NN man)))")},
	}
	c := NewContext(doc, nil)
	p := corefPair(t, "x 0 0 0 PER x 0 0 2 PER man yes")

	if got := extract(t, Coref, "anaphor_demonstrative", p, c); got != "anaphor_demonstrative=True" {
		t.Errorf("expected anaphor_demonstrative, got %q", got)
	}
	if got := extract(t, Coref, "anaphor_definite", p, c); got != "" {
		t.Errorf("expected no anaphor_definite, got %q", got)
	}
}

func TestCorefSurfaceFlags(t *testing.T) {
	doc := &sent.Doc{Sentences: []sent.Sentence{
		tokens("Paris/NNP loves/VBZ paris/NNP him/PRP Him/PRP Paris/NN John/NNP Smith/NNP Smith/NNP"),
	}}
	c := NewContext(doc, nil)

	cases := []struct {
		feature  string
		line     string
		expected string
	}{
		{"exact_match", "x 0 0 1 GPE Paris 0 2 3 GPE paris yes", "exact_match=True"},
		{"exact_match", "x 0 0 1 GPE Paris 0 5 6 GPE Paris no", ""},
		// pronoun lists match the raw text
		{"antecedent_is_pronoun", "x 0 3 4 PER him 0 6 8 PER John_Smith yes", "antecedent_is_pronoun=True"},
		{"antecedent_is_pronoun", "x 0 4 5 PER Him 0 6 8 PER John_Smith yes", ""},
		{"both_proper_names", "x 0 6 8 PER John_Smith 0 8 9 PER Smith yes", "both_proper_names=True"},
		{"both_proper_names", "x 0 0 1 GPE Paris 0 5 6 GPE Paris no", ""},
	}
	for _, tc := range cases {
		if got := extract(t, Coref, tc.feature, corefPair(t, tc.line), c); got != tc.expected {
			t.Errorf("%s %s: expected %q, got %q", tc.feature, tc.line, tc.expected, got)
		}
	}
}
