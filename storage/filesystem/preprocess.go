package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	sent "github.com/revelaction/pairfeat/sentence"
)

// Missing marks an attribute with no value in attribute files.
const Missing = "*"

// ListSuffix returns the names in dir ending in suffix, without it, sorted.
func ListSuffix(dir, suffix string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, notFound(err)
	}

	var names []string
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, suffix))
	}
	sort.Strings(names)
	return names, nil
}

// ReadTagged reads a POS tagged file, one sentence of word_TAG tokens per
// line. Blank lines are skipped.
func ReadTagged(path string) ([]sent.Sentence, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, notFound(err)
	}

	var sentences []sent.Sentence
	for n, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := sent.ParseTagged(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n+1, err)
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}

// WritePairs writes sentences as a JSON array of [token, pos] pairs, the
// sentence file of the coref layout.
func WritePairs(path string, sentences []sent.Sentence) error {
	pairs := make([][][2]string, len(sentences))
	for i, s := range sentences {
		pairs[i] = s.Pairs()
	}
	return writeJSON(path, pairs)
}

// WriteAttributes writes sentences as JSON token records, the sentence
// file of the relation layout.
func WriteAttributes(path string, sentences []sent.Sentence) error {
	return writeJSON(path, sentences)
}

func writeJSON(path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	return nil
}

// Entities maps doc id, sentence index and token index to the entity type
// of the mention covering the token.
type Entities map[string]map[string]map[string]string

// ReadEntities merges the entity maps of paths. A doc found in an earlier
// file keeps that file's map.
func ReadEntities(paths ...string) (Entities, error) {
	all := Entities{}
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, notFound(err)
		}
		var e Entities
		if err := json.Unmarshal(content, &e); err != nil {
			return nil, fmt.Errorf("%s: JSON decoding error: %w", p, err)
		}
		for doc, m := range e {
			if _, ok := all[doc]; !ok {
				all[doc] = m
			}
		}
	}
	return all, nil
}

// Annotate returns a copy of the sentences of doc with the entity types
// filled in. Tokens without an entity, and without a hypernym, get Missing.
func (e Entities) Annotate(doc string, sentences []sent.Sentence) []sent.Sentence {
	types := e[doc]
	out := make([]sent.Sentence, len(sentences))
	for i, s := range sentences {
		byToken := types[strconv.Itoa(i)]
		ns := make(sent.Sentence, len(s))
		for j, tok := range s {
			tok.EntityType = Missing
			if t, ok := byToken[strconv.Itoa(j)]; ok {
				tok.EntityType = t
			}
			if tok.Hypernym == "" {
				tok.Hypernym = Missing
			}
			ns[j] = tok
		}
		out[i] = ns
	}
	return out
}
