package fingerprint

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	// Must run before any database/sql connection against sqlite3 opens.
	vec.Auto()
}

// Store is a local, file-backed vector index of fingerprinted findings.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a fingerprint store at path. An empty path opens
// an in-memory database, useful for tests and one-shot CLI invocations
// that don't need a cross-run history.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("fingerprint.Open: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("fingerprint.Open: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS findings (
			rowid      INTEGER PRIMARY KEY AUTOINCREMENT,
			rule_name  TEXT NOT NULL,
			sample     TEXT NOT NULL,
			first_seen TEXT NOT NULL
		)`,
		fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS findings_vec USING vec0(
			rowid INTEGER PRIMARY KEY,
			embedding float[%d]
		)`, Dimensions),
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("createSchema: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// Record stores a fingerprinted finding and returns its rowid.
func (s *Store) Record(ruleName, sample string, seenAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO findings (rule_name, sample, first_seen) VALUES (?, ?, ?)`,
		ruleName, sample, seenAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("Record: %w", err)
	}
	rowid, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	embedding := float32sToBytes(FeatureHash(sample))
	if _, err := s.db.Exec(
		`INSERT OR REPLACE INTO findings_vec (rowid, embedding) VALUES (?, ?)`,
		rowid, embedding,
	); err != nil {
		return rowid, fmt.Errorf("Record: vec insert: %w", err)
	}
	return rowid, nil
}

// Match is a nearest-neighbor search result.
type Match struct {
	RuleName  string
	Sample    string
	FirstSeen time.Time
	Distance  float64
}

// Search returns the k nearest previously recorded findings to sample,
// ordered by ascending distance.
func (s *Store) Search(sample string, k int) ([]Match, error) {
	embedding := float32sToBytes(FeatureHash(sample))

	rows, err := s.db.Query(`
		SELECT f.rule_name, f.sample, f.first_seen, v.distance
		FROM findings_vec v
		JOIN findings f ON f.rowid = v.rowid
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance`,
		embedding, k,
	)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var firstSeen string
		if err := rows.Scan(&m.RuleName, &m.Sample, &firstSeen, &m.Distance); err != nil {
			return nil, fmt.Errorf("Search: scan: %w", err)
		}
		m.FirstSeen, err = time.Parse(time.RFC3339, firstSeen)
		if err != nil {
			return nil, fmt.Errorf("Search: parse timestamp: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ErrNotFound is returned when no record matches an exact lookup.
var ErrNotFound = errors.New("fingerprint: not found")

func float32sToBytes(floats []float32) []byte {
	b := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}
