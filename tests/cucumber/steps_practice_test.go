package cucumber

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"examprep/internal/quiz"
	"examprep/internal/session"
)

func (s *featureState) aSetWithChoiceQuestions(title string, table *godog.Table) error {
	set, err := s.manager.CreateSet(title, "")
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected prompt|options|answer, got %d cells", len(row.Cells))
		}
		set, err = s.manager.AddQuestion(set, quiz.QuestionInput{
			Kind:          quiz.KindChoice,
			Prompt:        row.Cells[0].Value,
			Options:       splitOptions(row.Cells[1].Value),
			CorrectAnswer: row.Cells[2].Value,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *featureState) aSetWithATextQuestion(title, prompt, answer string) error {
	if err := s.aSetTitled(title); err != nil {
		return err
	}
	return s.theSetHasATextQuestion(title, prompt, answer)
}

func (s *featureState) theGradingServiceAccepts(feedback string) error {
	s.gateway.grade = quiz.Grade{IsCorrect: true, Feedback: feedback}
	return nil
}

func (s *featureState) theGradingServiceIsFailing() error {
	s.gateway.failing = true
	return nil
}

func (s *featureState) iPracticeTheSet(title string) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	s.attempt = session.New(set.Questions, practiceRand())
	s.attempt.Start()
	return nil
}

// answerChoice submits the current choice question and resolves any feedback
// request through the scripted gateway, the way the UI loop would.
func (s *featureState) answerChoice(correctly bool) error {
	if s.attempt == nil {
		return fmt.Errorf("no running attempt")
	}
	question, ok := s.attempt.Current()
	if !ok {
		return fmt.Errorf("no current question")
	}
	if question.Kind != quiz.KindChoice {
		return fmt.Errorf("current question is not a choice question")
	}
	answer := question.CorrectAnswer
	if !correctly {
		answer = ""
		for _, option := range question.Options {
			if option != question.CorrectAnswer {
				answer = option
				break
			}
		}
		if answer == "" {
			return fmt.Errorf("question %q has no wrong option", question.Prompt)
		}
	}
	s.attempt.Select(answer)
	if request, issued := s.attempt.Submit(); issued {
		text := s.gateway.ExplainAnswer(context.Background(), request.Question, request.UserAnswer)
		s.attempt.ResolveExplanation(request.Tag, text)
	}
	return nil
}

func (s *featureState) iAnswerCorrectly(count int) error {
	for i := 0; i < count; i++ {
		if err := s.answerChoice(true); err != nil {
			return err
		}
		s.attempt.Advance()
	}
	return nil
}

func (s *featureState) iAnswerIncorrectly(count int) error {
	for i := 0; i < count; i++ {
		if err := s.answerChoice(false); err != nil {
			return err
		}
		s.attempt.Advance()
	}
	return nil
}

func (s *featureState) iSubmitFreeTextAnswer(answer string) error {
	if s.attempt == nil {
		return fmt.Errorf("no running attempt")
	}
	s.attempt.Type(answer)
	request, issued := s.attempt.Submit()
	if !issued {
		return fmt.Errorf("expected a grading request")
	}
	grade := s.gateway.GradeSubjectiveAnswer(context.Background(), request.Question, request.UserAnswer)
	s.attempt.ResolveGrade(request.Tag, grade)
	return nil
}

func (s *featureState) iRestartTheAttempt() error {
	if s.attempt == nil {
		return fmt.Errorf("no running attempt")
	}
	s.attempt.Restart()
	return nil
}

func (s *featureState) theAttemptIsFinished() error {
	if s.attempt.Phase() != session.PhaseFinished {
		return fmt.Errorf("expected a finished attempt, phase %d", s.attempt.Phase())
	}
	return nil
}

func (s *featureState) theAttemptIsActive() error {
	if s.attempt.Phase() != session.PhaseActive {
		return fmt.Errorf("expected an active attempt, phase %d", s.attempt.Phase())
	}
	return nil
}

func (s *featureState) theAttemptReportsNoQuestions() error {
	if s.attempt.Phase() != session.PhaseEmpty {
		return fmt.Errorf("expected the empty phase, got %d", s.attempt.Phase())
	}
	return nil
}

func (s *featureState) theFinalScoreIs(score, total int) error {
	if s.attempt.Score() != score || s.attempt.Total() != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, s.attempt.Score(), s.attempt.Total())
	}
	return nil
}

func (s *featureState) theFinalPercentageIs(percentage int) error {
	if got := s.attempt.Percentage(); got != percentage {
		return fmt.Errorf("expected %d%%, got %d%%", percentage, got)
	}
	return nil
}

func (s *featureState) theRunningScoreIs(score int) error {
	if got := s.attempt.Score(); got != score {
		return fmt.Errorf("expected score %d, got %d", score, got)
	}
	return nil
}

func (s *featureState) theCurrentQuestionIsCorrect() error {
	if !s.attempt.Correct() {
		return fmt.Errorf("expected a correct verdict")
	}
	return nil
}

func (s *featureState) theCurrentQuestionIsIncorrect() error {
	if s.attempt.Correct() {
		return fmt.Errorf("expected an incorrect verdict")
	}
	return nil
}

func (s *featureState) theFeedbackReads(expected string) error {
	feedback, pending := s.attempt.Feedback()
	if pending {
		return fmt.Errorf("feedback still pending")
	}
	if feedback != expected {
		return fmt.Errorf("expected feedback %q, got %q", expected, feedback)
	}
	return nil
}
