package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Yellow    = "\033[0;33m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

// Renderer prints sentences, trees and pairs on a terminal.
type Renderer struct {
	HasColor bool

	// Attribute selects what is printed next to each word: "", "pos",
	// "entity_type" or "hypernym"
	Attribute string

	W io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// SupportedAttributes lists the values of Renderer.Attribute, in toggle
// order.
func SupportedAttributes() []string {
	return []string{"", "pos", "entity_type", "hypernym"}
}

// NextAttribute switches to the next attribute in SupportedAttributes.
func (r *Renderer) NextAttribute() {
	supported := SupportedAttributes()
	for i, a := range supported {
		if a == r.Attribute {
			r.Attribute = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Attribute = supported[0]
}

// Sentence prints s with a numeric prefix. Tokens inside spans are
// highlighted, the first span green and the second yellow.
func (r *Renderer) Sentence(idx int, s sent.Sentence, spans ...tree.Span) {
	fmt.Fprintf(r.W, "%3d ✍  %s\n", idx, r.SentenceString(s, spans...))
}

func (r *Renderer) SentenceString(s sent.Sentence, spans ...tree.Span) string {
	words := make([]string, len(s))
	for i, tok := range s {
		words[i] = r.colorToken(i, r.word(tok), spans)
	}
	return strings.Join(words, " ")
}

func (r *Renderer) word(tok sent.Token) string {
	var a string
	switch r.Attribute {
	case "pos":
		a = tok.Pos
	case "entity_type":
		a = tok.EntityType
	case "hypernym":
		a = tok.Hypernym
	}
	if a == "" {
		return tok.Text
	}
	return tok.Text + "/" + a
}

func (r *Renderer) colorToken(i int, text string, spans []tree.Span) string {
	if !r.HasColor {
		return text
	}
	colors := []string{Green256, Yellow256}
	for si, sp := range spans {
		if sp.Contains(i) {
			return colors[si%len(colors)] + text + Off
		}
	}
	return text
}

// Pair prints the mentions of p over their sentences.
func (r *Renderer) Pair(p mention.Pair, doc *sent.Doc) error {
	m1 := tree.Span{Start: p.M1.Start, End: p.M1.End}
	m2 := tree.Span{Start: p.M2.Start, End: p.M2.End}

	fmt.Fprintf(r.W, "%s[%s line %d] %s%s\n", r.grey(), p.Doc, p.Line, p.Label, r.off())

	s1, err := doc.Sentence(p.M1.Sentence)
	if err != nil {
		return err
	}
	if p.SameSentence() {
		r.Sentence(p.M1.Sentence, s1, m1, m2)
		return nil
	}

	s2, err := doc.Sentence(p.M2.Sentence)
	if err != nil {
		return err
	}
	r.Sentence(p.M1.Sentence, s1, m1)
	r.Sentence(p.M2.Sentence, s2, tree.Span{}, m2)
	return nil
}

// Tree prints t indented, one constituent per line. Preterminals stay on
// the line of their word.
func (r *Renderer) Tree(t *tree.Tree) {
	r.tree(t, 0)
}

func (r *Renderer) tree(t *tree.Tree, depth int) {
	indent := strings.Repeat("  ", depth)
	if t.Leaf {
		fmt.Fprintf(r.W, "%s%s\n", indent, t.Label)
		return
	}
	if len(t.Children) == 1 && t.Children[0].Leaf {
		fmt.Fprintf(r.W, "%s(%s%s%s %s)\n", indent, r.label(), t.Label, r.off(), t.Children[0].Label)
		return
	}
	fmt.Fprintf(r.W, "%s(%s%s%s\n", indent, r.label(), t.Label, r.off())
	for _, c := range t.Children {
		r.tree(c, depth+1)
	}
	fmt.Fprintf(r.W, "%s)\n", indent)
}

// Path prints the route between two leaves.
func (r *Renderer) Path(p tree.Path) {
	fmt.Fprintf(r.W, "up:    %s\n", strings.Join(p.Up, " "))
	fmt.Fprintf(r.W, "down:  %s\n", strings.Join(p.Down, " "))
	fmt.Fprintf(r.W, "edges: %d\n", p.Edges)
}

func (r *Renderer) label() string {
	if !r.HasColor {
		return ""
	}
	return Green
}

func (r *Renderer) grey() string {
	if !r.HasColor {
		return ""
	}
	return Grey256
}

func (r *Renderer) off() string {
	if !r.HasColor {
		return ""
	}
	return Off
}
