package genai

import (
	"context"
	"fmt"

	"examprep/internal/quiz"
)

// Disabled is the gateway used when no API key is configured. The
// application stays fully usable for manual entry and practice; only the
// AI-backed features degrade to their fallbacks.
type Disabled struct{}

func (Disabled) GenerateQuestions(context.Context, string, int, quiz.Kind) ([]quiz.Question, error) {
	return nil, fmt.Errorf("%w: %s is not set", ErrGeneration, APIKeyEnv)
}

func (Disabled) GenerateQuestionsFromImage(context.Context, []byte, string, int, quiz.Kind) ([]quiz.Question, error) {
	return nil, fmt.Errorf("%w: %s is not set", ErrGeneration, APIKeyEnv)
}

func (Disabled) ExplainAnswer(context.Context, quiz.Question, string) string {
	return ExplanationFallback
}

func (Disabled) GradeSubjectiveAnswer(context.Context, quiz.Question, string) quiz.Grade {
	return quiz.Grade{IsCorrect: false, Feedback: GradingFallback}
}

var _ Gateway = Disabled{}
