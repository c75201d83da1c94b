package ui

import (
	"examprep/internal/quiz"
	"examprep/internal/session"
)

// openSetMsg switches to the detail view for a set.
type openSetMsg struct {
	set quiz.QuestionSet
}

// backMsg returns to the dashboard.
type backMsg struct{}

// setUpdatedMsg reports a persisted mutation of the active set so the shell
// can refresh its list without a full reload.
type setUpdatedMsg struct {
	set quiz.QuestionSet
}

// setsChangedMsg tells the shell to re-fetch the set list from the store.
type setsChangedMsg struct{}

// startPracticeMsg begins a practice attempt over the active set.
type startPracticeMsg struct{}

// exitPracticeMsg discards the attempt and returns to the detail view.
type exitPracticeMsg struct{}

// generationDoneMsg carries the outcome of a bulk generation call.
type generationDoneMsg struct {
	set quiz.QuestionSet
	err error
}

// explanationResolvedMsg delivers an async explanation result.
type explanationResolvedMsg struct {
	tag  session.Tag
	text string
}

// gradeResolvedMsg delivers an async grading result.
type gradeResolvedMsg struct {
	tag   session.Tag
	grade quiz.Grade
}
