package zombiezen

import (
	"fmt"
	"runtime"
	"strings"

	"zombiezen.com/go/sqlite/sqlitex"
)

// IsDB reports whether path names a SQLite resource file rather than a
// directory layout.
func IsDB(path string) bool {
	return strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite")
}

// NewPool creates a connection pool for the database at dbPath. The
// default pool flags open the file read-write, create it if needed and
// enable WAL.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	initString := fmt.Sprintf("file:%s", dbPath)

	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}
