package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// Store archives fetched datasets in SQLite.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	s := &Store{writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro&_pragma=foreign_keys(1)")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	s.readDB = readDB
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			id         TEXT PRIMARY KEY,
			fetched_at DATETIME NOT NULL,
			count      INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at DESC);

		CREATE TABLE IF NOT EXISTS records (
			snapshot_id   TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			rank          INTEGER NOT NULL,
			title         TEXT NOT NULL,
			display_score TEXT NOT NULL,
			numeric_score INTEGER NOT NULL,
			link          TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, rank)
		);
		CREATE INDEX IF NOT EXISTS idx_records_title ON records(title);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Save archives ds as a new snapshot and returns its id.
func (s *Store) Save(fetchedAt time.Time, ds trend.Dataset) (string, error) {
	id := uuid.NewString()

	tx, err := s.writeDB.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO snapshots (id, fetched_at, count) VALUES (?, ?, ?)`,
		id, fetchedAt.UTC(), ds.Len(),
	); err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (snapshot_id, rank, title, display_score, numeric_score, link)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range ds.Records {
		if _, err := stmt.Exec(id, r.Rank, r.Title, r.DisplayScore, r.NumericScore, r.Link); err != nil {
			return "", fmt.Errorf("inserting record %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Snapshots lists archived snapshots, newest first.
func (s *Store) Snapshots(opts QueryOpts) ([]Snapshot, error) {
	query := "SELECT id, fetched_at, count FROM snapshots"
	var args []interface{}
	if !opts.Since.IsZero() {
		query += " WHERE fetched_at >= ?"
		args = append(args, opts.Since.UTC())
	}
	query += " ORDER BY fetched_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.FetchedAt, &sn.Count); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Trajectory returns every archived position of title, oldest first.
func (s *Store) Trajectory(title string, opts QueryOpts) ([]Point, error) {
	query := `
		SELECT s.id, s.fetched_at, r.rank, r.display_score, r.numeric_score
		FROM records r JOIN snapshots s ON s.id = r.snapshot_id
		WHERE r.title = ?`
	args := []interface{}{title}
	if !opts.Since.IsZero() {
		query += " AND s.fetched_at >= ?"
		args = append(args, opts.Since.UTC())
	}
	query += " ORDER BY s.fetched_at ASC, r.rank ASC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying trajectory: %w", err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.SnapshotID, &p.FetchedAt, &p.Rank, &p.DisplayScore, &p.NumericScore); err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Prune deletes snapshots older than retention and returns how many were removed.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC()
	res, err := s.writeDB.Exec("DELETE FROM snapshots WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := s.writeDB.Exec("VACUUM"); err != nil {
			return n, fmt.Errorf("vacuuming: %w", err)
		}
	}
	return n, nil
}

// Stats returns the snapshot count, record count and database file size.
func (s *Store) Stats(dbPath string) (snapshots, records int, size int64, err error) {
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&snapshots); err != nil {
		return 0, 0, 0, fmt.Errorf("counting snapshots: %w", err)
	}
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM records").Scan(&records); err != nil {
		return 0, 0, 0, fmt.Errorf("counting records: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stat db: %w", err)
	}
	return snapshots, records, info.Size(), nil
}
