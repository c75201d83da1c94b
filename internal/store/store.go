// Package store defines the persistence port for question set collections.
//
// The application depends on this interface rather than a concrete storage
// medium, so the backing store can be swapped (JSON blob file, DuckDB)
// without touching the set manager or the practice engine.
package store

import "examprep/internal/quiz"

// Store persists the full question set collection.
//
// ListSets never fails the caller: an absent, corrupted, or unparsable
// backing store yields an empty slice and a logged warning. SaveSet inserts
// when the identifier is unknown and otherwise replaces the existing entry
// in place, preserving its position. DeleteSet is a no-op for unknown
// identifiers.
type Store interface {
	ListSets() []quiz.QuestionSet
	SaveSet(set quiz.QuestionSet) error
	DeleteSet(id string) error
}
