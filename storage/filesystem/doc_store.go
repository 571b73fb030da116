package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/pairfeat/dependency"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/storage"
	"github.com/revelaction/pairfeat/tree"
)

// Layout tells where the resources of a document live. The parsed file is
// a sequence of blank line separated blocks; in every group of Stride
// blocks, one is a constituency tree and one a dependency list.
type Layout struct {
	JSONDir    string
	JSONSuffix string

	ParsedDir    string
	ParsedSuffix string

	Stride             int
	ConstituencyOffset int
	DependencyOffset   int
}

// CorefLayout matches the coreference corpus: tagged sentence, tree and
// dependencies for every sentence.
func CorefLayout(jsonDir, parsedDir string) Layout {
	return Layout{
		JSONDir:            jsonDir,
		JSONSuffix:         ".raw.json",
		ParsedDir:          parsedDir,
		ParsedSuffix:       ".raw.pos.parsed",
		Stride:             3,
		ConstituencyOffset: 1,
		DependencyOffset:   2,
	}
}

// RelationLayout matches the relation corpus: tree and dependencies for
// every sentence. jsonDir holds the attribute files.
func RelationLayout(jsonDir, parsedDir string) Layout {
	return Layout{
		JSONDir:            jsonDir,
		JSONSuffix:         ".json",
		ParsedDir:          parsedDir,
		ParsedSuffix:       ".parsed",
		Stride:             2,
		ConstituencyOffset: 0,
		DependencyOffset:   1,
	}
}

type DocStore struct {
	layout Layout
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store.
func NewDocStore(l Layout) (*DocStore, error) {
	if l.Stride < 1 || l.ConstituencyOffset >= l.Stride || l.DependencyOffset >= l.Stride {
		return nil, fmt.Errorf("invalid parsed file layout: stride %d, offsets %d and %d", l.Stride, l.ConstituencyOffset, l.DependencyOffset)
	}
	return &DocStore{layout: l}, nil
}

// List returns the ids of the documents with a sentence file, sorted.
func (h *DocStore) List() ([]string, error) {
	files, err := os.ReadDir(h.layout.JSONDir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, h.layout.JSONSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, h.layout.JSONSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}

func (h *DocStore) Read(id string) (sent.Doc, error) {
	sentences, err := ReadSentences(filepath.Join(h.layout.JSONDir, id+h.layout.JSONSuffix))
	if err != nil {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", id, err)
	}

	content, err := os.ReadFile(filepath.Join(h.layout.ParsedDir, id+h.layout.ParsedSuffix))
	if err != nil {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", id, notFound(err))
	}

	trees, deps, err := h.layout.SplitParsed(string(content))
	if err != nil {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", id, err)
	}

	return sent.Doc{
		Id:           id,
		Sentences:    sentences,
		Trees:        trees,
		Dependencies: deps,
	}, nil
}

// SplitParsed separates the blocks of a parsed file into trees and
// dependency lists.
func (l Layout) SplitParsed(content string) ([]*tree.Tree, [][]dependency.Relation, error) {
	var blocks []string
	for _, b := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(b) != "" {
			blocks = append(blocks, b)
		}
	}

	var trees []*tree.Tree
	var deps [][]dependency.Relation
	for i, b := range blocks {
		switch i % l.Stride {
		case l.ConstituencyOffset:
			t, err := tree.Parse(b)
			if err != nil {
				return nil, nil, fmt.Errorf("block %d: %w", i, err)
			}
			trees = append(trees, t)
		case l.DependencyOffset:
			deps = append(deps, dependency.ParseBlock(b))
		}
	}
	return trees, deps, nil
}

// ReadSentences reads a JSON array of sentences from path.
func ReadSentences(path string) ([]sent.Sentence, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, notFound(err)
	}

	var sentences []sent.Sentence
	if err := json.Unmarshal(f, &sentences); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}
	return sentences, nil
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", storage.ErrNotFound, err)
	}
	return fmt.Errorf("IO error: %w", err)
}
