// Package sets orchestrates question set mutations: manual entry, deletion,
// and AI bulk generation. Every mutation persists the full updated set and
// hands it back so the caller's view stays consistent without a reload.
package sets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"examprep/internal/genai"
	"examprep/internal/quiz"
	"examprep/internal/store"
)

// Manager mutates question sets through the persistence port and the
// generation gateway.
type Manager struct {
	store   store.Store
	gateway genai.Gateway
	now     func() time.Time
}

// NewManager wires a manager to its collaborators.
func NewManager(st store.Store, gateway genai.Gateway) *Manager {
	return &Manager{store: st, gateway: gateway, now: time.Now}
}

// ListSets returns the stored collection in storage order.
func (m *Manager) ListSets() []quiz.QuestionSet {
	return m.store.ListSets()
}

// CreateSet makes and persists an empty set. The title is required.
func (m *Manager) CreateSet(title, description string) (quiz.QuestionSet, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return quiz.QuestionSet{}, fmt.Errorf("title is required")
	}
	set := quiz.QuestionSet{
		ID:          quiz.NewID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   m.now().UnixMilli(),
		Questions:   []quiz.Question{},
	}
	if err := m.store.SaveSet(set); err != nil {
		return quiz.QuestionSet{}, err
	}
	return set, nil
}

// DeleteSet destroys a set and, with it, every question it owns.
func (m *Manager) DeleteSet(id string) error {
	return m.store.DeleteSet(id)
}

// AddQuestion validates a manual entry, appends it, and persists the set.
func (m *Manager) AddQuestion(set quiz.QuestionSet, input quiz.QuestionInput) (quiz.QuestionSet, error) {
	question, err := quiz.NewQuestion(input)
	if err != nil {
		return set, err
	}
	set.Questions = append(set.Questions, question)
	if err := m.store.SaveSet(set); err != nil {
		return set, err
	}
	return set, nil
}

// DeleteQuestion removes a question by identifier and persists the set.
// Unknown identifiers leave the set unchanged.
func (m *Manager) DeleteQuestion(set quiz.QuestionSet, questionID string) (quiz.QuestionSet, error) {
	filtered := make([]quiz.Question, 0, len(set.Questions))
	for _, question := range set.Questions {
		if question.ID != questionID {
			filtered = append(filtered, question)
		}
	}
	set.Questions = filtered
	if err := m.store.SaveSet(set); err != nil {
		return set, err
	}
	return set, nil
}

// AppendGenerated bulk-appends AI-generated questions from source text. On
// a generation failure nothing is appended and the set stays untouched.
func (m *Manager) AppendGenerated(ctx context.Context, set quiz.QuestionSet, sourceText string, count int, kind quiz.Kind) (quiz.QuestionSet, error) {
	questions, err := m.gateway.GenerateQuestions(ctx, sourceText, count, kind)
	if err != nil {
		return set, err
	}
	return m.appendQuestions(set, questions)
}

// AppendGeneratedFromImage bulk-appends questions generated from an image.
func (m *Manager) AppendGeneratedFromImage(ctx context.Context, set quiz.QuestionSet, image []byte, mimeType string, count int, kind quiz.Kind) (quiz.QuestionSet, error) {
	questions, err := m.gateway.GenerateQuestionsFromImage(ctx, image, mimeType, count, kind)
	if err != nil {
		return set, err
	}
	return m.appendQuestions(set, questions)
}

func (m *Manager) appendQuestions(set quiz.QuestionSet, questions []quiz.Question) (quiz.QuestionSet, error) {
	if len(questions) == 0 {
		return set, nil
	}
	set.Questions = append(set.Questions, questions...)
	if err := m.store.SaveSet(set); err != nil {
		return set, err
	}
	return set, nil
}
