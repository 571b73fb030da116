package feature

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/mention"
)

// brownPrefix is the number of cluster path bits kept.
const brownPrefix = 8

// TokenFunc computes one column for a token.
type TokenFunc struct {
	Name    string
	Extract func(token string, lex *lexicon.Lexicon) string
}

// NER holds the token columns, in output order.
var NER = []TokenFunc{
	{"is_capitalized", func(tok string, _ *lexicon.Lexicon) string {
		r, _ := utf8.DecodeRuneInString(tok)
		return bit(unicode.IsUpper(r))
	}},
	{"contains_digits", func(tok string, _ *lexicon.Lexicon) string {
		return bit(strings.IndexFunc(tok, unicode.IsDigit) >= 0)
	}},
	{"contains_dollar_sign", func(tok string, _ *lexicon.Lexicon) string {
		return bit(strings.Contains(tok, "$"))
	}},
	{"length", func(tok string, _ *lexicon.Lexicon) string {
		return strconv.Itoa(utf8.RuneCountInString(tok))
	}},
	{"word_shape", func(tok string, _ *lexicon.Lexicon) string {
		return WordShape(tok)
	}},
	{"brown_cluster", func(tok string, lex *lexicon.Lexicon) string {
		return BrownCluster(tok, lex.Brown)
	}},
	{"in_loc_gazetteer", func(tok string, lex *lexicon.Lexicon) string {
		_, ok := lex.Gazetteer[strings.ToLower(tok)]
		return bit(ok)
	}},
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// WordShape maps digits to '#', upper case to 'A', lower case to 'a' and
// anything else to '.'.
func WordShape(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			b.WriteByte('#')
		case unicode.IsUpper(r):
			b.WriteByte('A')
		case unicode.IsLower(r):
			b.WriteByte('a')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// BrownCluster returns the first 8 bits of the cluster path of tok, or
// "00000000" if tok has no cluster.
func BrownCluster(tok string, clusters map[string]string) string {
	path, ok := clusters[strings.ToLower(tok)]
	if !ok {
		return strings.Repeat("0", brownPrefix)
	}
	if len(path) > brownPrefix {
		return path[:brownPrefix]
	}
	return path
}

// TokenLine inserts the token columns before the trailing BIO tag of a
// tagged line "idx token pos ... tag". Blank lines are returned as is.
func TokenLine(line string, lex *lexicon.Lexicon) (string, error) {
	if lex == nil {
		lex = &lexicon.Lexicon{}
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	if len(fields) < 3 {
		return "", fmt.Errorf("token line has %d fields, want at least 3: %w", len(fields), mention.ErrMalformedRecord)
	}

	tok := fields[1]
	tag := fields[len(fields)-1]

	out := make([]string, 0, len(fields)+len(NER))
	out = append(out, fields[:len(fields)-1]...)
	for _, f := range NER {
		out = append(out, f.Extract(tok, lex))
	}
	out = append(out, tag)
	return strings.Join(out, "\t"), nil
}
