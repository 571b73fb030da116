package render

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Alphabet numbers feature strings for the SVM-light vector part of a tree
// kernel line. Indices start at 1.
type Alphabet struct {
	index map[string]int
	names []string

	// Frozen alphabets do not grow; unknown features are dropped.
	Frozen bool
}

func NewAlphabet() *Alphabet {
	return &Alphabet{index: map[string]int{}}
}

// Lookup returns the index of f, adding it when the alphabet is not
// frozen.
func (a *Alphabet) Lookup(f string) (int, bool) {
	if i, ok := a.index[f]; ok {
		return i, true
	}
	if a.Frozen {
		return 0, false
	}
	a.names = append(a.names, f)
	a.index[f] = len(a.names)
	return len(a.names), true
}

func (a *Alphabet) Len() int {
	return len(a.names)
}

// Vector formats features as increasing "idx:1" pairs.
func (a *Alphabet) Vector(features []string) string {
	var idx []int
	seen := map[int]struct{}{}
	for _, f := range features {
		for _, tok := range strings.Fields(f) {
			i, ok := a.Lookup(tok)
			if !ok {
				continue
			}
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	pairs := make([]string, len(idx))
	for n, i := range idx {
		pairs[n] = strconv.Itoa(i) + ":1"
	}
	return strings.Join(pairs, " ")
}

// Save writes one feature per line, in index order.
func (a *Alphabet) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, n := range a.names {
		if _, err := fmt.Fprintln(bw, n); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadAlphabet reads an alphabet written by Save. Features are numbered in
// reading order, blank lines are skipped.
func LoadAlphabet(r io.Reader) (*Alphabet, error) {
	a := NewAlphabet()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		f := strings.TrimSpace(sc.Text())
		if f == "" {
			continue
		}
		if _, ok := a.index[f]; ok {
			return nil, fmt.Errorf("duplicate feature %q in alphabet", f)
		}
		a.Lookup(f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	return a, nil
}
