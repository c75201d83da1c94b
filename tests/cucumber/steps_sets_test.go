package cucumber

import (
	"context"
	"fmt"
	"os"
	"strings"

	"examprep/internal/quiz"
)

func (s *featureState) anEmptyDataFile() error {
	return nil
}

func (s *featureState) aCorruptDataFile() error {
	return os.WriteFile(s.dataPath, []byte("{definitely not json"), 0o644)
}

func (s *featureState) aSetTitled(title string) error {
	_, err := s.manager.CreateSet(title, "")
	return err
}

func (s *featureState) iCreateASetTitled(title string) error {
	_, s.lastErr = s.manager.CreateSet(title, "")
	return nil
}

func (s *featureState) iCreateASetWithBlankTitle() error {
	_, s.lastErr = s.manager.CreateSet("   ", "")
	return nil
}

func (s *featureState) theLastActionFailed() error {
	if s.lastErr == nil {
		return fmt.Errorf("expected the last action to fail")
	}
	return nil
}

func (s *featureState) iAddAChoiceQuestion(prompt, options, answer string) error {
	set, err := s.findSet("Biology")
	if err != nil {
		return err
	}
	_, err = s.manager.AddQuestion(set, quiz.QuestionInput{
		Kind:          quiz.KindChoice,
		Prompt:        prompt,
		Options:       splitOptions(options),
		CorrectAnswer: answer,
	})
	return err
}

func (s *featureState) theSetHasATextQuestion(title, prompt, answer string) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	_, err = s.manager.AddQuestion(set, quiz.QuestionInput{
		Kind:          quiz.KindText,
		Prompt:        prompt,
		CorrectAnswer: answer,
	})
	return err
}

func (s *featureState) iDeleteTheFirstQuestion(title string) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	if len(set.Questions) == 0 {
		return fmt.Errorf("set %q has no questions to delete", title)
	}
	_, err = s.manager.DeleteQuestion(set, set.Questions[0].ID)
	return err
}

func (s *featureState) iDeleteTheSet(title string) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	return s.manager.DeleteSet(set.ID)
}

func (s *featureState) iRenameTheSet(title, newTitle string) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	set.Title = newTitle
	return s.store.SaveSet(set)
}

func (s *featureState) iListTheStoredCollection() error {
	s.store.ListSets()
	return nil
}

func (s *featureState) theStoredCollectionHasSets(count int) error {
	if got := len(s.store.ListSets()); got != count {
		return fmt.Errorf("expected %d sets, got %d", count, got)
	}
	return nil
}

func (s *featureState) theCollectionContainsTitle(title string) error {
	_, err := s.findSet(title)
	return err
}

func (s *featureState) theSetHasQuestions(title string, count int) error {
	set, err := s.findSet(title)
	if err != nil {
		return err
	}
	if len(set.Questions) != count {
		return fmt.Errorf("expected %d questions in %q, got %d", count, title, len(set.Questions))
	}
	return nil
}

func (s *featureState) aCorruptionWarningWasReported() error {
	if !strings.Contains(s.warn.String(), "corrupt") {
		return fmt.Errorf("no corruption warning in %q", s.warn.String())
	}
	return nil
}

func (s *featureState) theGenerationServiceReturns(count int) error {
	s.gateway.questions = count
	return nil
}

func (s *featureState) theGenerationServiceIsFailing() error {
	s.gateway.failing = true
	return nil
}

func (s *featureState) theGenerationServiceWasNeverCalled() error {
	if s.gateway.genCalls != 0 {
		return fmt.Errorf("expected no generation calls, got %d", s.gateway.genCalls)
	}
	return nil
}

func (s *featureState) iGenerateFromSourceText(source string) error {
	set, err := s.findSet("Biology")
	if err != nil {
		return err
	}
	_, s.lastErr = s.manager.AppendGenerated(context.Background(), set, source, s.gateway.questions, quiz.KindChoice)
	return nil
}

func (s *featureState) iGenerateFromBlankSource() error {
	return s.iGenerateFromSourceText("   ")
}

func splitOptions(value string) []string {
	parts := strings.Split(value, ",")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		options = append(options, strings.TrimSpace(part))
	}
	return options
}
