// Package jsonfile persists the question set collection as a single JSON
// document, the file-backed analogue of the original single storage key.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"examprep/internal/quiz"
)

// FileName is the well-known blob name inside the data directory.
const FileName = "sets.json"

// Store reads and writes the whole collection synchronously on every call.
type Store struct {
	path string
	warn io.Writer
}

// New builds a store over the blob at path. Warnings about unreadable or
// corrupt data are written to warn.
func New(path string, warn io.Writer) *Store {
	if warn == nil {
		warn = io.Discard
	}
	return &Store{path: path, warn: warn}
}

// ListSets returns all stored sets in storage order. A missing file is an
// empty collection; a corrupt one is reported once and treated the same.
func (s *Store) ListSets() []quiz.QuestionSet {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(s.warn, "Warning: cannot read %s: %v\n", s.path, err)
		}
		return []quiz.QuestionSet{}
	}
	var sets []quiz.QuestionSet
	if err := json.Unmarshal(data, &sets); err != nil {
		fmt.Fprintf(s.warn, "Warning: corrupt data in %s, starting empty: %v\n", s.path, err)
		return []quiz.QuestionSet{}
	}
	if sets == nil {
		sets = []quiz.QuestionSet{}
	}
	return sets
}

// SaveSet inserts or replaces a set by identifier and persists the collection.
func (s *Store) SaveSet(set quiz.QuestionSet) error {
	sets := s.ListSets()
	replaced := false
	for i := range sets {
		if sets[i].ID == set.ID {
			sets[i] = set
			replaced = true
			break
		}
	}
	if !replaced {
		sets = append(sets, set)
	}
	return s.write(sets)
}

// DeleteSet removes the set with the given identifier if present.
func (s *Store) DeleteSet(id string) error {
	sets := s.ListSets()
	filtered := sets[:0]
	for _, set := range sets {
		if set.ID != id {
			filtered = append(filtered, set)
		}
	}
	return s.write(filtered)
}

// write replaces the blob atomically via a temp file and rename.
func (s *Store) write(sets []quiz.QuestionSet) error {
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sets: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write sets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
