package genai

import (
	"context"
	"errors"
	"testing"

	"examprep/internal/quiz"
)

// TestDisabledGateway verifies the keyless gateway fails generation and
// serves fallbacks for feedback.
func TestDisabledGateway(t *testing.T) {
	gateway := Disabled{}

	if _, err := gateway.GenerateQuestions(context.Background(), "text", 3, quiz.KindChoice); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if _, err := gateway.GenerateQuestionsFromImage(context.Background(), []byte{1}, "image/png", 3, quiz.KindChoice); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if got := gateway.ExplainAnswer(context.Background(), quiz.Question{}, "a"); got != ExplanationFallback {
		t.Fatalf("expected explanation fallback, got %q", got)
	}
	grade := gateway.GradeSubjectiveAnswer(context.Background(), quiz.Question{}, "a")
	if grade.IsCorrect || grade.Feedback != GradingFallback {
		t.Fatalf("expected failure grade, got %+v", grade)
	}
}
