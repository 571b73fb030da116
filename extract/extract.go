// Package extract runs feature sets over a file of mention pair records.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
	"github.com/revelaction/pairfeat/render"
	"github.com/revelaction/pairfeat/storage"
	"github.com/revelaction/pairfeat/tree"
)

// RecordWriter receives the extracted records in input order.
type RecordWriter interface {
	Write(r render.Record) error
}

var _ RecordWriter = (*render.Writer)(nil)

// Line is one input line with its 1-based number.
type Line struct {
	Num  int
	Text string
}

// ReadLines reads all lines of r, skipping blank ones.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, Line{Num: n, Text: sc.Text()})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	return lines, nil
}

type Extractor struct {
	Layout   mention.Layout
	Docs     storage.DocReader
	Features feature.Set
	Lex      *lexicon.Lexicon
	Heads    tree.HeadFinder

	// Kernel, when set, adds the pair tree to every record
	Kernel *feature.Kernel

	// Progress is called after each record
	Progress func()
}

func New(l mention.Layout, docs storage.DocReader, features feature.Set) *Extractor {
	return &Extractor{
		Layout:   l,
		Docs:     docs,
		Features: features,
		Heads:    tree.DefaultHeadFinder,
	}
}

// Run extracts every line and writes its record. It stops at the first
// error, reported with the line number.
func (e *Extractor) Run(lines []Line, w RecordWriter) error {
	for _, l := range lines {
		r, err := e.Record(l)
		if err != nil {
			return fmt.Errorf("line %d: %w", l.Num, err)
		}
		if err := w.Write(r); err != nil {
			return fmt.Errorf("line %d: %w", l.Num, err)
		}
		if e.Progress != nil {
			e.Progress()
		}
	}
	return nil
}

// Record extracts the features of one line.
func (e *Extractor) Record(l Line) (render.Record, error) {
	p, err := e.Layout.ParseLine(l.Text)
	if err != nil {
		return render.Record{}, err
	}
	p.Line = l.Num

	doc, err := e.Docs.Read(p.Doc)
	if err != nil {
		return render.Record{}, err
	}

	c := feature.NewContext(&doc, e.Lex)
	c.Heads = e.Heads

	features, err := e.Features.Extract(p, c)
	if err != nil {
		return render.Record{}, err
	}

	r := render.Record{
		Doc:      p.Doc,
		Line:     p.Line,
		Label:    p.Label,
		Features: features,
	}

	if e.Kernel != nil {
		t, err := e.Kernel.Build(p, c)
		if err != nil {
			return render.Record{}, fmt.Errorf("kernel tree: %w", err)
		}
		r.Tree = t.SVMString()
	}
	return r, nil
}

// Tokens writes the NER token columns of every line of r to w. Blank
// lines, sentence separators, are written as blank lines.
func Tokens(r io.Reader, w io.Writer, lex *lexicon.Lexicon, progress func()) error {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		out, err := feature.TokenLine(sc.Text(), lex)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if _, err := fmt.Fprintln(bw, out); err != nil {
			return fmt.Errorf("IO error: %w", err)
		}
		if progress != nil {
			progress()
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return bw.Flush()
}
