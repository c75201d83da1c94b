package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"examprep/internal/quiz"
)

// ExplanationFallback is shown when the explanation call fails.
const ExplanationFallback = "Could not retrieve explanation at this time."

// GradingFallback is shown when the grading call fails. The forced
// incorrect verdict is the conservative default: a failure never silently
// claims success.
const GradingFallback = "AI grading failed."

// ExplainAnswer asks the model why the correct answer is right, mentioning
// the user's answer when it was wrong. Best effort: failures return the
// fixed fallback string instead of an error.
func (p *Provider) ExplainAnswer(ctx context.Context, question quiz.Question, userAnswer string) string {
	prompt := fmt.Sprintf(
		"The user is practicing exam questions.\n\nQuestion: %q\nCorrect Answer: %q\nUser's Answer: %q\n\n"+
			"Please explain why the correct answer is right. If the user's answer was wrong, briefly explain why their answer is incorrect. Keep it concise (under 100 words).",
		question.Prompt, question.CorrectAnswer, userAnswer,
	)
	text, err := p.generate(ctx, textRequest(prompt))
	if err != nil {
		return ExplanationFallback
	}
	return text
}

// GradeSubjectiveAnswer grades a free-text answer against the model answer.
// Failures yield {IsCorrect: false, Feedback: GradingFallback}.
func (p *Provider) GradeSubjectiveAnswer(ctx context.Context, question quiz.Question, userAnswer string) quiz.Grade {
	prompt := fmt.Sprintf(
		"You are grading a short answer exam question.\n\nQuestion: %q\nModel Answer: %q\nStudent Answer: %q\n\n"+
			"1. Determine if the student's answer is essentially correct based on the model answer.\n2. Provide brief feedback.\n\nOutput JSON.",
		question.Prompt, question.CorrectAnswer, userAnswer,
	)
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"isCorrect": {Type: "BOOLEAN"},
					"feedback":  {Type: "STRING"},
				},
				Required: []string{"isCorrect", "feedback"},
			},
		},
	}
	text, err := p.generate(ctx, request)
	if err != nil {
		return quiz.Grade{IsCorrect: false, Feedback: GradingFallback}
	}
	var grade quiz.Grade
	if err := json.Unmarshal([]byte(text), &grade); err != nil {
		return quiz.Grade{IsCorrect: false, Feedback: GradingFallback}
	}
	return grade
}
