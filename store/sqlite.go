// ABOUTME: SQLite-backed store for completed guesses so readers can compare against everyone else.
// ABOUTME: Provides record, list, count and per-year average queries keyed by dataset.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// ErrEmptyGuess is returned when a guess carries no points.
var ErrEmptyGuess = errors.New("guess has no points")

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// GuessPoint is one year of a stored guess.
type GuessPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Guess is a completed drawing for one dataset.
type Guess struct {
	ID         ulid.ULID    `json:"id"`
	DatasetKey string       `json:"dataset"`
	PageID     string       `json:"page_id,omitempty"`
	Points     []GuessPoint `json:"points"`
	CreatedAt  time.Time    `json:"created_at"`
}

// YearAverage is the mean guessed value for one year.
type YearAverage struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// SqliteStore persists guesses in a SQLite database.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates a guess database at the given path.
// Runs migrations to ensure the schema is up to date.
func OpenSqlite(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS guesses (
			guess_id TEXT PRIMARY KEY,
			dataset_key TEXT NOT NULL,
			page_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS guesses_by_dataset ON guesses(dataset_key);

		CREATE TABLE IF NOT EXISTS guess_points (
			guess_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (guess_id, year),
			FOREIGN KEY (guess_id) REFERENCES guesses(guess_id) ON DELETE CASCADE
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// Close closes the SQLite database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// RecordGuess stores g, assigning an ID and timestamp when they are unset.
// Recording the same ID twice replaces the earlier points.
func (s *SqliteStore) RecordGuess(g *Guess) error {
	if len(g.Points) == 0 {
		return ErrEmptyGuess
	}
	if g.ID == (ulid.ULID{}) {
		g.ID = NewULID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO guesses (guess_id, dataset_key, page_id, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(guess_id) DO UPDATE SET
			dataset_key = excluded.dataset_key,
			page_id = excluded.page_id,
			created_at = excluded.created_at`,
		g.ID.String(),
		g.DatasetKey,
		g.PageID,
		g.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert guess: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM guess_points WHERE guess_id = ?", g.ID.String()); err != nil {
		return fmt.Errorf("clear guess points: %w", err)
	}
	for _, p := range g.Points {
		if _, err := tx.Exec(
			"INSERT INTO guess_points (guess_id, year, value) VALUES (?, ?, ?)",
			g.ID.String(), p.Year, p.Value,
		); err != nil {
			return fmt.Errorf("insert guess point %d: %w", p.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit guess: %w", err)
	}
	return nil
}

// ListGuesses returns every guess for a dataset, oldest first.
func (s *SqliteStore) ListGuesses(datasetKey string) ([]Guess, error) {
	rows, err := s.db.Query(
		`SELECT g.guess_id, g.page_id, g.created_at, p.year, p.value
		 FROM guesses g JOIN guess_points p ON p.guess_id = g.guess_id
		 WHERE g.dataset_key = ?
		 ORDER BY g.created_at, g.guess_id, p.year`,
		datasetKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list guesses: %w", err)
	}
	defer rows.Close()

	var out []Guess
	for rows.Next() {
		var (
			id, pageID, created string
			p                   GuessPoint
		)
		if err := rows.Scan(&id, &pageID, &created, &p.Year, &p.Value); err != nil {
			return nil, fmt.Errorf("scan guess: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID.String() != id {
			parsedID, err := ulid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("parse guess id %q: %w", id, err)
			}
			createdAt, err := time.Parse(timeLayout, created)
			if err != nil {
				return nil, fmt.Errorf("parse created_at %q: %w", created, err)
			}
			out = append(out, Guess{ID: parsedID, DatasetKey: datasetKey, PageID: pageID, CreatedAt: createdAt})
		}
		last := &out[len(out)-1]
		last.Points = append(last.Points, p)
	}
	return out, rows.Err()
}

// CountGuesses returns how many guesses exist for a dataset.
func (s *SqliteStore) CountGuesses(datasetKey string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM guesses WHERE dataset_key = ?", datasetKey).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count guesses: %w", err)
	}
	return n, nil
}

// AverageGuess returns the mean guessed value per year for a dataset.
func (s *SqliteStore) AverageGuess(datasetKey string) ([]YearAverage, error) {
	rows, err := s.db.Query(
		`SELECT p.year, AVG(p.value), COUNT(*)
		 FROM guesses g JOIN guess_points p ON p.guess_id = g.guess_id
		 WHERE g.dataset_key = ?
		 GROUP BY p.year
		 ORDER BY p.year`,
		datasetKey,
	)
	if err != nil {
		return nil, fmt.Errorf("average guesses: %w", err)
	}
	defer rows.Close()

	var out []YearAverage
	for rows.Next() {
		var a YearAverage
		if err := rows.Scan(&a.Year, &a.Mean, &a.Count); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
