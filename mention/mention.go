package mention

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedRecord = errors.New("malformed record")

// Mention is a contiguous token span [Start, End) of one sentence.
type Mention struct {
	Sentence int
	Start    int
	End      int
	Type     string

	// Subtype is the extra column of relation records (mention level,
	// e.g. NAM or NOM). Empty for coreference records.
	Subtype string

	// Text is the surface text as given in the record. Relation records
	// join words with underscores.
	Text string
}

// Len returns the number of tokens of the mention.
func (m Mention) Len() int {
	return m.End - m.Start
}

// Pair is the unit of classification.
type Pair struct {
	Doc   string
	Label string
	M1    Mention
	M2    Mention

	// Line is the 1-based line number in the input file
	Line int

	// Fields keeps the raw record columns
	Fields []string
}

// SameSentence reports whether both mentions are in the same sentence.
func (p Pair) SameSentence() bool {
	return p.M1.Sentence == p.M2.Sentence
}

// Layout describes where the columns of a record are.
type Layout struct {
	Name string

	// Label column, -1 for the last column
	Label int
	Doc   int

	// First column of each mention block
	M1 int
	M2 int

	// Whether mention blocks carry a subtype column before the text
	HasSubtype bool

	// Minimum number of columns of a valid record
	NumFields int
}

// Coref records: doc s1 st1 en1 type1 text1 s2 st2 en2 type2 text2 label
var Coref = Layout{
	Name:      "coref",
	Label:     -1,
	Doc:       0,
	M1:        1,
	M2:        6,
	NumFields: 12,
}

// Relation records: label doc s1 st1 en1 type1 sub1 text1 s2 st2 en2 type2 sub2 text2
var Relation = Layout{
	Name:       "relation",
	Label:      0,
	Doc:        1,
	M1:         2,
	M2:         8,
	HasSubtype: true,
	NumFields:  14,
}

// Parse builds a Pair from the whitespace separated fields of a record.
func (l Layout) Parse(fields []string) (Pair, error) {
	if len(fields) < l.NumFields {
		return Pair{}, fmt.Errorf("%s record has %d fields, want %d: %w", l.Name, len(fields), l.NumFields, ErrMalformedRecord)
	}

	m1, err := l.mention(fields, l.M1)
	if err != nil {
		return Pair{}, err
	}
	m2, err := l.mention(fields, l.M2)
	if err != nil {
		return Pair{}, err
	}

	label := ""
	if l.Label < 0 {
		label = fields[len(fields)-1]
	} else {
		label = fields[l.Label]
	}

	return Pair{
		Doc:    fields[l.Doc],
		Label:  label,
		M1:     m1,
		M2:     m2,
		Fields: fields,
	}, nil
}

// ParseLine splits line on whitespace and parses it.
func (l Layout) ParseLine(line string) (Pair, error) {
	return l.Parse(strings.Fields(line))
}

func (l Layout) mention(fields []string, at int) (Mention, error) {
	var m Mention
	nums := make([]int, 3)
	for i := range nums {
		n, err := strconv.Atoi(fields[at+i])
		if err != nil {
			return Mention{}, fmt.Errorf("column %d %q: %w", at+i, fields[at+i], ErrMalformedRecord)
		}
		nums[i] = n
	}
	m.Sentence, m.Start, m.End = nums[0], nums[1], nums[2]
	m.Type = fields[at+3]

	text := at + 4
	if l.HasSubtype {
		m.Subtype = fields[at+4]
		text++
	}
	m.Text = fields[text]

	if m.End < m.Start || m.Start < 0 {
		return Mention{}, fmt.Errorf("span [%d, %d): %w", m.Start, m.End, ErrMalformedRecord)
	}
	return m, nil
}

// Words splits the mention text on underscores.
func (m Mention) Words() []string {
	return strings.Split(m.Text, "_")
}
