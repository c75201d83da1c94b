package genai

import (
	"context"

	"examprep/internal/quiz"
)

// Gateway is the boundary the rest of the application depends on. The
// practice engine and the set manager never talk to the API directly, which
// keeps them testable with scripted fakes.
type Gateway interface {
	GenerateQuestions(ctx context.Context, sourceText string, count int, kind quiz.Kind) ([]quiz.Question, error)
	GenerateQuestionsFromImage(ctx context.Context, image []byte, mimeType string, count int, kind quiz.Kind) ([]quiz.Question, error)
	ExplainAnswer(ctx context.Context, question quiz.Question, userAnswer string) string
	GradeSubjectiveAnswer(ctx context.Context, question quiz.Question, userAnswer string) quiz.Grade
}

var _ Gateway = (*Provider)(nil)
