package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/revelaction/pairfeat/dependency"
	sent "github.com/revelaction/pairfeat/sentence"
	"github.com/revelaction/pairfeat/storage"
	"github.com/revelaction/pairfeat/tree"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore keeps document bundles in SQLite. Each sentence row holds the
// tokens as JSON, the bracketed tree and the raw dependency lines.
type DocStore struct {
	pool *sqlitex.Pool
}

var (
	_ storage.DocRepository = (*DocStore)(nil)
	_ storage.DocWriter     = (*DocStore)(nil)
)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var ids []string
	err = sqlitex.Execute(conn, "SELECT id FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (h *DocStore) Read(id string) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT id FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT idx, tokens, tree, deps FROM sentences WHERE doc_id = ? ORDER BY idx", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			idx := stmt.ColumnInt(0)

			if stmt.ColumnType(1) != sqlite.TypeNull {
				var s sent.Sentence
				if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s); err != nil {
					return fmt.Errorf("sentence %d: JSON decoding error: %w", idx, err)
				}
				doc.Sentences = append(doc.Sentences, s)
			}

			if stmt.ColumnType(2) != sqlite.TypeNull {
				t, err := tree.Parse(stmt.ColumnText(2))
				if err != nil {
					return fmt.Errorf("sentence %d: %w", idx, err)
				}
				doc.Trees = append(doc.Trees, t)
			}

			if stmt.ColumnType(3) != sqlite.TypeNull {
				doc.Dependencies = append(doc.Dependencies, dependency.ParseBlock(stmt.ColumnText(3)))
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", id, err)
	}

	return doc, nil
}

// Write stores doc, replacing any previous version with the same id.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Id},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sentences: %w", err)
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO docs (id) VALUES (?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Id},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}

	n := max(len(doc.Sentences), len(doc.Trees), len(doc.Dependencies))
	for i := 0; i < n; i++ {
		var tokens, tr, deps interface{}

		if i < len(doc.Sentences) {
			data, marshalErr := json.Marshal(doc.Sentences[i])
			if marshalErr != nil {
				return marshalErr
			}
			tokens = string(data)
		}
		if i < len(doc.Trees) {
			tr = doc.Trees[i].String()
		}
		if i < len(doc.Dependencies) {
			deps = rawLines(doc.Dependencies[i])
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, idx, tokens, tree, deps) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{doc.Id, i, tokens, tr, deps},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence %d: %w", i, err)
		}
	}

	return nil
}

func rawLines(rels []dependency.Relation) string {
	lines := make([]string, len(rels))
	for i, r := range rels {
		lines[i] = r.Raw
	}
	return strings.Join(lines, "\n")
}
