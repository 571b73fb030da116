package dependency

import (
	"regexp"
	"strconv"
	"strings"
)

// indexPattern extracts the trailing token indices of a Stanford style
// relation such as "nsubj(capital-4, Paris-1)". A prime may follow the
// index for copied nodes ("dog-3'").
var indexPattern = regexp.MustCompile(`-(\d+)'?[,)]`)

// Relation is one dependency line. Head and Dep are 1-based token indices,
// 0 for the artificial root.
type Relation struct {
	Name string
	Head int
	Dep  int

	// Raw keeps the line as read.
	Raw string
}

// Valid reports whether both indices were found in the line.
func (r Relation) Valid() bool {
	return r.Head >= 0 && r.Dep >= 0
}

// Indices returns all indices found in the line, following the same
// grammar used to build Head and Dep.
func Indices(line string) []int {
	var idx []int
	for _, m := range indexPattern.FindAllStringSubmatch(line, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		idx = append(idx, n)
	}
	return idx
}

// ParseRelation parses a relation line. Lines whose indices cannot be
// extracted keep Head or Dep at -1.
func ParseRelation(line string) Relation {
	line = strings.TrimSpace(line)
	r := Relation{Raw: line, Head: -1, Dep: -1}

	if i := strings.IndexByte(line, '('); i > 0 {
		r.Name = line[:i]
	}

	idx := Indices(line)
	if len(idx) > 0 {
		r.Head = idx[0]
	}
	if len(idx) > 1 {
		r.Dep = idx[1]
	}
	return r
}

// ParseBlock parses a block of relation lines, one per line. Empty lines
// are skipped.
func ParseBlock(block string) []Relation {
	var rels []Relation
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rels = append(rels, ParseRelation(line))
	}
	return rels
}

// Is reports whether r is of the named relation. "nsubj" also matches
// subtypes like "nsubjpass" when prefix is true.
func (r Relation) Is(name string, prefix bool) bool {
	if prefix {
		return strings.HasPrefix(r.Name, name)
	}
	return r.Name == name
}
