// Package duck persists question sets in a DuckDB database, one row per set
// with the set serialized as a JSON document. It implements the same port
// contract as the JSON blob store.
package duck

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	_ "github.com/duckdb/duckdb-go/v2"

	"examprep/internal/quiz"
)

//go:embed schema.sql
var schemaDDL string

// Store keeps the collection in a DuckDB table ordered by insertion position.
type Store struct {
	db   *sql.DB
	warn io.Writer
}

// Open connects to the database at path, applies the schema, and returns a
// ready store. Warnings about unreadable rows are written to warn.
func Open(path string, warn io.Writer) (*Store, error) {
	if path == "" {
		return nil, errors.New("duck: database path is required")
	}
	if warn == nil {
		warn = io.Discard
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, warn: warn}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListSets returns all stored sets ordered by insertion position. Rows that
// cannot be decoded are reported and skipped, never surfaced as failures.
func (s *Store) ListSets() []quiz.QuestionSet {
	rows, err := s.db.Query(`SELECT doc FROM question_sets ORDER BY position`)
	if err != nil {
		fmt.Fprintf(s.warn, "Warning: cannot read question sets: %v\n", err)
		return []quiz.QuestionSet{}
	}
	defer rows.Close()

	sets := []quiz.QuestionSet{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			fmt.Fprintf(s.warn, "Warning: cannot scan question set row: %v\n", err)
			continue
		}
		var set quiz.QuestionSet
		if err := json.Unmarshal([]byte(doc), &set); err != nil {
			fmt.Fprintf(s.warn, "Warning: corrupt question set row, skipping: %v\n", err)
			continue
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(s.warn, "Warning: reading question sets: %v\n", err)
	}
	return sets
}

// SaveSet inserts a new set at the end of the collection or replaces the
// document of an existing one, keeping its position.
func (s *Store) SaveSet(set quiz.QuestionSet) error {
	doc, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode set: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO question_sets (set_id, position, doc)
		 SELECT ?, COALESCE(MAX(position), 0) + 1, ? FROM question_sets
		 ON CONFLICT (set_id) DO UPDATE SET doc = excluded.doc`,
		set.ID,
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("save set: %w", err)
	}
	return nil
}

// DeleteSet removes the set with the given identifier if present.
func (s *Store) DeleteSet(id string) error {
	if _, err := s.db.Exec(`DELETE FROM question_sets WHERE set_id = ?`, id); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}
