package session

import (
	"strings"

	"examprep/internal/quiz"
)

// FeedbackKind identifies the async work a submission requires.
type FeedbackKind int

const (
	// FeedbackExplanation asks the gateway to explain the correct answer.
	FeedbackExplanation FeedbackKind = iota
	// FeedbackGrading asks the gateway for a verdict and feedback.
	FeedbackGrading
)

// Tag identifies the attempt pass and question a feedback request belongs
// to. Resolutions carrying a stale tag are dropped, which is how results of
// abandoned requests are kept from touching a session that moved on.
type Tag struct {
	Epoch int
	Index int
}

// FeedbackRequest describes the asynchronous gateway call the caller must
// issue after a submission. The engine itself never blocks.
type FeedbackRequest struct {
	Kind       FeedbackKind
	Tag        Tag
	Question   quiz.Question
	UserAnswer string
}

// Select records the chosen option for the active choice question. Inert
// after submission.
func (a *Attempt) Select(option string) {
	question, ok := a.Current()
	if !ok || question.Kind != quiz.KindChoice || a.current.submitted {
		return
	}
	a.current.selected = option
}

// Type records the free-text answer for the active question. Inert after
// submission.
func (a *Attempt) Type(text string) {
	question, ok := a.Current()
	if !ok || question.Kind != quiz.KindText || a.current.submitted {
		return
	}
	a.current.typed = text
}

// CanSubmit reports whether the active question has a non-empty answer and
// has not been submitted yet.
func (a *Attempt) CanSubmit() bool {
	question, ok := a.Current()
	if !ok || a.current.submitted {
		return false
	}
	if question.Kind == quiz.KindChoice {
		return a.current.selected != ""
	}
	return strings.TrimSpace(a.current.typed) != ""
}

// Submit locks in the answer for the active question.
//
// Choice questions are scored immediately by exact string equality with the
// correct answer. When the answer is correct and the question carries a
// pre-authored explanation, feedback resolves synchronously and no request
// is returned. Otherwise the returned request describes the explanation or
// grading call to run; until its resolution arrives the feedback is pending.
//
// A second Submit on the same question returns ok=false and changes nothing.
func (a *Attempt) Submit() (request FeedbackRequest, ok bool) {
	question, current := a.Current()
	if !current || !a.CanSubmit() {
		return FeedbackRequest{}, false
	}
	a.current.submitted = true
	tag := Tag{Epoch: a.epoch, Index: a.index}

	if question.Kind == quiz.KindChoice {
		correct := a.current.selected == question.CorrectAnswer
		a.current.correct = correct
		if correct {
			a.score++
		}
		if correct && question.Explanation != "" {
			a.current.feedback = question.Explanation
			return FeedbackRequest{}, false
		}
		a.current.pending = true
		return FeedbackRequest{
			Kind:       FeedbackExplanation,
			Tag:        tag,
			Question:   question,
			UserAnswer: a.current.selected,
		}, true
	}

	a.current.pending = true
	return FeedbackRequest{
		Kind:       FeedbackGrading,
		Tag:        tag,
		Question:   question,
		UserAnswer: a.current.typed,
	}, true
}

// ResolveExplanation delivers the result of an explanation request. Stale
// tags are dropped.
func (a *Attempt) ResolveExplanation(tag Tag, text string) {
	if !a.acceptsResolution(tag) {
		return
	}
	a.current.feedback = text
	a.current.pending = false
}

// ResolveGrade delivers the result of a grading request, fixing the verdict
// and scoring the question. Stale tags are dropped.
func (a *Attempt) ResolveGrade(tag Tag, grade quiz.Grade) {
	if !a.acceptsResolution(tag) {
		return
	}
	question, ok := a.Current()
	if !ok || question.Kind != quiz.KindText {
		return
	}
	a.current.correct = grade.IsCorrect
	if grade.IsCorrect {
		a.score++
	}
	a.current.feedback = grade.Feedback
	a.current.pending = false
}

func (a *Attempt) acceptsResolution(tag Tag) bool {
	return a.phase == PhaseActive &&
		tag.Epoch == a.epoch &&
		tag.Index == a.index &&
		a.current.submitted &&
		a.current.pending
}

// Advance clears the per-question transient state and moves to the next
// question, or to PhaseFinished after the last one. It has no effect before
// submission.
func (a *Attempt) Advance() {
	if a.phase != PhaseActive || !a.current.submitted {
		return
	}
	a.current = submission{}
	a.index++
	if a.index >= len(a.order) {
		a.phase = PhaseFinished
	}
}
