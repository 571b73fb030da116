package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output formats
const (
	FormatFeatures = "features"
	FormatTree     = "tree"
	FormatJSON     = "json"
)

// Record is one classification instance ready to be written.
type Record struct {
	Doc      string   `json:"doc"`
	Line     int      `json:"line"`
	Label    string   `json:"label,omitempty"`
	Features []string `json:"features,omitempty"`
	Tree     string   `json:"tree,omitempty"`
}

// Relabel rewrites the label of r for a one-vs-rest task on label: "1"
// when it matches, "-1" otherwise. An empty label keeps the original.
func Relabel(r Record, label string) Record {
	if label == "" {
		return r
	}
	if r.Label == label {
		r.Label = "1"
	} else {
		r.Label = "-1"
	}
	return r
}

// Formatter turns a record into one output line, without newline.
type Formatter interface {
	Format(r Record, withLabel bool) (string, error)
}

// FeatureFormatter writes "label f1 f2 ...".
type FeatureFormatter struct{}

func (FeatureFormatter) Format(r Record, withLabel bool) (string, error) {
	fields := r.Features
	if withLabel {
		fields = append([]string{r.Label}, fields...)
	}
	return strings.Join(fields, " "), nil
}

// TreeFormatter writes the SVM-light-TK line "label\t|BT| tree |ET|",
// optionally followed by the flat features as a sparse vector.
type TreeFormatter struct {
	Alphabet *Alphabet
}

func (f TreeFormatter) Format(r Record, withLabel bool) (string, error) {
	var b strings.Builder
	if withLabel {
		b.WriteString(r.Label)
	}
	b.WriteString("\t|BT| ")
	b.WriteString(r.Tree)
	b.WriteString(" |ET|")
	if f.Alphabet != nil {
		if v := f.Alphabet.Vector(r.Features); v != "" {
			b.WriteByte(' ')
			b.WriteString(v)
		}
	}
	return b.String(), nil
}

// NewFormatter returns the formatter of the named format.
func NewFormatter(format string, alphabet *Alphabet) (Formatter, error) {
	switch format {
	case FormatFeatures, "":
		return FeatureFormatter{}, nil
	case FormatTree:
		return TreeFormatter{Alphabet: alphabet}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Writer writes records to <base>.labeled and, unless train is set, to
// <base>.nolabel.
type Writer struct {
	f Formatter

	labeled *bufio.Writer
	nolabel *bufio.Writer
	closers []io.Closer

	// Label, when set, turns the task into one-vs-rest on it
	Label string
}

// Create opens the output files of base.
func Create(base string, f Formatter, train bool) (*Writer, error) {
	w := &Writer{f: f}

	lf, err := os.Create(base + ".labeled")
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	w.labeled = bufio.NewWriter(lf)
	w.closers = append(w.closers, lf)

	if !train {
		nf, err := os.Create(base + ".nolabel")
		if err != nil {
			lf.Close()
			return nil, fmt.Errorf("IO error: %w", err)
		}
		w.nolabel = bufio.NewWriter(nf)
		w.closers = append(w.closers, nf)
	}
	return w, nil
}

// NewWriter writes to the given writers. nolabel may be nil.
func NewWriter(f Formatter, labeled, nolabel io.Writer) *Writer {
	w := &Writer{f: f, labeled: bufio.NewWriter(labeled)}
	if nolabel != nil {
		w.nolabel = bufio.NewWriter(nolabel)
	}
	return w
}

func (w *Writer) Write(r Record) error {
	r = Relabel(r, w.Label)

	line, err := w.f.Format(r, true)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.labeled, line); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	if w.nolabel == nil {
		return nil
	}
	line, err = w.f.Format(r, false)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.nolabel, line); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (w *Writer) Close() error {
	var errs []error
	if err := w.labeled.Flush(); err != nil {
		errs = append(errs, err)
	}
	if w.nolabel != nil {
		if err := w.nolabel.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
