package archive

import (
	"fmt"
	"time"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

// Run is one archived validation run: the rendered report plus enough
// metadata to list runs without loading bodies.
type Run struct {
	ID        string `db:"run_id"`
	CreatedAt string `db:"created_at"` // RFC3339, stored as text for driver portability
	Title     string `db:"title"`
	Format    string `db:"format"`
	Sections  int    `db:"sections"`
	Body      string `db:"body"`
}

// Store is an open report archive. Migrations are applied on open so a
// fresh archive file is usable immediately.
type Store struct {
	q *queries
}

// Open connects to the archive database, applies pending migrations, and
// loads the named queries.
func Open(dbURL string) (*Store, error) {
	db, err := openDB(dbURL)
	if err != nil {
		return nil, err
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	q, err := loadQueries(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{q: q}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.q.db.Close()
}

// SaveRun archives one rendered report.
func (s *Store) SaveRun(id types.RunID, title, format, body string, sections int) error {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.q.Exec("insert-run", string(id), createdAt, title, format, sections, body); err != nil {
		return fmt.Errorf("failed to archive run %s: %w", id, err)
	}
	return nil
}

// RecentRuns lists the most recent archived runs, newest first. Bodies
// are not loaded.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := s.q.Select("list-runs", &runs, limit); err != nil {
		return nil, fmt.Errorf("failed to list archived runs: %w", err)
	}
	return runs, nil
}
