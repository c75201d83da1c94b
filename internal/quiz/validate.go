package quiz

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question input.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// QuestionInput holds the raw fields of a manually entered question.
type QuestionInput struct {
	Kind          Kind
	Prompt        string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// NewQuestion validates and normalizes an input, returning a question with a
// fresh identifier. Blank option strings are filtered before storing.
func NewQuestion(input QuestionInput) (Question, error) {
	collector := &issueCollector{}

	kind := input.Kind
	switch kind {
	case KindChoice, KindText:
	case "":
		collector.add("kind", "is required")
	default:
		collector.add("kind", fmt.Sprintf("unsupported kind %q", kind))
	}

	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		collector.add("prompt", "is required")
	}

	correct := strings.TrimSpace(input.CorrectAnswer)
	if correct == "" {
		collector.add("correct_answer", "is required")
	}

	var options []string
	if kind == KindChoice {
		options = filterBlank(input.Options)
	}

	if err := collector.result(); err != nil {
		return Question{}, err
	}
	return Question{
		ID:            NewID(),
		Kind:          kind,
		Prompt:        prompt,
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   strings.TrimSpace(input.Explanation),
	}, nil
}

// CheckChoice reports integrity issues on a choice question whose correct
// answer is absent from its options. The condition is flagged, never
// auto-corrected: manual entry and AI output can both produce it and the
// right fix is the user's call.
func CheckChoice(q Question) []Issue {
	if q.Kind != KindChoice {
		return nil
	}
	for _, option := range q.Options {
		if option == q.CorrectAnswer {
			return nil
		}
	}
	return []Issue{{
		Field:   "correct_answer",
		Message: fmt.Sprintf("answer %q is not among the options", q.CorrectAnswer),
	}}
}

func filterBlank(values []string) []string {
	filtered := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		filtered = append(filtered, trimmed)
	}
	return filtered
}
