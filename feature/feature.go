// Package feature extracts string valued features from mention pairs.
//
// A feature is a pure function of the pair and the document bundle. It
// returns the empty string when it does not fire.
package feature

import (
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/tree"
)

type Func interface {
	Name() string
	Extract(p mention.Pair, c *Context) (string, error)
}

// Context holds what the features of a pair may look at.
type Context struct {
	Doc   *sent.Doc
	Lex   *lexicon.Lexicon
	Heads tree.HeadFinder
}

// NewContext returns a Context with the default head finder and empty
// dictionaries.
func NewContext(doc *sent.Doc, lex *lexicon.Lexicon) *Context {
	if lex == nil {
		lex = &lexicon.Lexicon{}
	}
	return &Context{Doc: doc, Lex: lex, Heads: tree.DefaultHeadFinder}
}

// span returns the tokens of m.
func (c *Context) span(m mention.Mention) (sent.Sentence, error) {
	s, err := c.Doc.Sentence(m.Sentence)
	if err != nil {
		return nil, err
	}
	return s.Span(m.Start, m.End)
}

type fn struct {
	name    string
	extract func(p mention.Pair, c *Context) (string, error)
}

func (f fn) Name() string { return f.name }

func (f fn) Extract(p mention.Pair, c *Context) (string, error) {
	return f.extract(p, c)
}

// New wraps a function as a Func.
func New(name string, extract func(p mention.Pair, c *Context) (string, error)) Func {
	return fn{name: name, extract: extract}
}

// Flag wraps a predicate as a Func emitting "name=True" when it holds.
func Flag(name string, pred func(p mention.Pair, c *Context) (bool, error)) Func {
	return fn{name: name, extract: func(p mention.Pair, c *Context) (string, error) {
		ok, err := pred(p, c)
		if err != nil || !ok {
			return "", err
		}
		return name + "=True", nil
	}}
}

// Registry maps feature names to Funcs, keeping registration order.
type Registry struct {
	funcs map[string]Func
	names []string
}

func NewRegistry(funcs ...Func) *Registry {
	r := &Registry{funcs: map[string]Func{}}
	for _, f := range funcs {
		r.Register(f)
	}
	return r
}

// Register adds f, replacing any Func with the same name.
func (r *Registry) Register(f Func) {
	if _, ok := r.funcs[f.Name()]; !ok {
		r.names = append(r.names, f.Name())
	}
	r.funcs[f.Name()] = f
}

func (r *Registry) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string{}, r.names...)
}

// Set returns the Set of the named features, in the given order.
func (r *Registry) Set(names ...string) (Set, error) {
	set := make(Set, 0, len(names))
	var unknown []string
	for _, n := range names {
		f, ok := r.funcs[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		set = append(set, f)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown features: %s", strings.Join(unknown, ", "))
	}
	return set, nil
}

// Set is an ordered selection of features.
type Set []Func

// Extract runs every feature of s on p and returns the ones that fired.
func (s Set) Extract(p mention.Pair, c *Context) ([]string, error) {
	var out []string
	for _, f := range s {
		v, err := f.Extract(p, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name()
	}
	return names
}

// indexRange reports whether i falls in the 1-based dependency index range
// of m.
func indexRange(m mention.Mention, i int) bool {
	return i >= m.Start+1 && i < m.End+1
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
