package sentence

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedToken = errors.New("malformed tagged token")

// ParseTagged reads one line of word_TAG tokens. The tag follows the last
// underscore, so words may contain underscores themselves.
func ParseTagged(line string) (Sentence, error) {
	fields := strings.Fields(line)
	s := make(Sentence, len(fields))
	for i, f := range fields {
		at := strings.LastIndex(f, "_")
		if at < 0 {
			return nil, fmt.Errorf("token %d %q: %w", i, f, ErrMalformedToken)
		}
		s[i] = Token{Text: f[:at], Pos: f[at+1:]}
	}
	return s, nil
}

// Pairs returns the [token, pos] form of s.
func (s Sentence) Pairs() [][2]string {
	pairs := make([][2]string, len(s))
	for i, tok := range s {
		pairs[i] = [2]string{tok.Text, tok.Pos}
	}
	return pairs
}
