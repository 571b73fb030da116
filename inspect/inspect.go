// Package inspect is an interactive prompt over one document bundle: its
// sentences, trees, tree paths, heads, and the features of a pair record.
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	"github.com/revelaction/pairfeat/render"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"

	prompt "github.com/c-bata/go-prompt"
)

var errQuit = errors.New("quit")

type command struct {
	name  string
	usage string
	run   func(h *Handler, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"sentence", "sentence N", (*Handler).sentence},
		{"tree", "tree N", (*Handler).tree},
		{"path", "path N i j", (*Handler).path},
		{"head", "head N i j", (*Handler).head},
		{"coref", "coref <coref record>", (*Handler).coref},
		{"relation", "relation <relation record>", (*Handler).relation},
		{"help", "help", (*Handler).help},
		{"quit", "quit", func(*Handler, []string) error { return errQuit }},
	}
}

type Handler struct {
	Doc      *sent.Doc
	Lex      *lexicon.Lexicon
	Heads    tree.HeadFinder
	Renderer *render.Renderer

	Coref    feature.Set
	Relation feature.Set
}

func NewHandler(doc *sent.Doc, lex *lexicon.Lexicon, r *render.Renderer) *Handler {
	return &Handler{
		Doc:      doc,
		Lex:      lex,
		Heads:    tree.DefaultHeadFinder,
		Renderer: r,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+F: next attribute, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      📖 ", h.completer(),
			prompt.OptionTitle("pairfeat inspect "+h.Doc.Id),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextAttribute()
					fmt.Fprintf(h.Renderer.W, "Attribute set to: %q\n", h.Renderer.Attribute)
				}}),
		)

		history = append(history, in)

		err := h.Exec(in)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "❌ %s\n", err)
		}
	}
}

// Exec runs one prompt line.
func (h *Handler) Exec(in string) error {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return nil
	}

	for _, c := range commands {
		if c.name == tokens[0] {
			return c.run(h, tokens[1:])
		}
	}
	return fmt.Errorf("unknown command %q, try help", tokens[0])
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if befCursor == "" || strings.Contains(befCursor, " ") {
			return s
		}

		for _, c := range commands {
			if strings.HasPrefix(c.name, befCursor) {
				s = append(s, prompt.Suggest{Text: c.name, Description: c.usage})
			}
		}
		return s
	}
}

func (h *Handler) help(_ []string) error {
	for _, c := range commands {
		fmt.Fprintf(h.Renderer.W, "  %s\n", c.usage)
	}
	return nil
}

func (h *Handler) sentence(args []string) error {
	n, err := ints(args, 1)
	if err != nil {
		return err
	}
	s, err := h.Doc.Sentence(n[0])
	if err != nil {
		return err
	}
	h.Renderer.Sentence(n[0], s)
	return nil
}

func (h *Handler) tree(args []string) error {
	n, err := ints(args, 1)
	if err != nil {
		return err
	}
	t, err := h.Doc.Tree(n[0])
	if err != nil {
		return err
	}
	h.Renderer.Tree(t)
	return nil
}

func (h *Handler) path(args []string) error {
	n, err := ints(args, 3)
	if err != nil {
		return err
	}
	t, err := h.Doc.Tree(n[0])
	if err != nil {
		return err
	}
	p, err := tree.Paths(t, n[1], n[2])
	if err != nil {
		return err
	}
	h.Renderer.Path(p)
	return nil
}

// head prints the lowest constituent covering leaves i through j and its
// head.
func (h *Handler) head(args []string) error {
	n, err := ints(args, 3)
	if err != nil {
		return err
	}
	t, err := h.Doc.Tree(n[0])
	if err != nil {
		return err
	}
	sub, err := tree.MinimumComplete(t, n[1], n[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(h.Renderer.W, "%s: %s\n", sub.Label, h.Heads.Head(sub))
	return nil
}

func (h *Handler) coref(args []string) error {
	return h.pair(mention.Coref, h.Coref, args)
}

func (h *Handler) relation(args []string) error {
	return h.pair(mention.Relation, h.Relation, args)
}

// pair prints the mentions of a record and the features it fires. The
// doc column of the record is ignored.
func (h *Handler) pair(l mention.Layout, set feature.Set, args []string) error {
	p, err := l.Parse(args)
	if err != nil {
		return err
	}
	p.Doc = h.Doc.Id

	if err := h.Renderer.Pair(p, h.Doc); err != nil {
		return err
	}

	c := feature.NewContext(h.Doc, h.Lex)
	c.Heads = h.Heads
	features, err := set.Extract(p, c)
	if err != nil {
		return err
	}
	for _, f := range features {
		fmt.Fprintf(h.Renderer.W, "  %s\n", f)
	}
	return nil
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numeric arguments, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not a number", a)
		}
		out[i] = v
	}
	return out, nil
}
