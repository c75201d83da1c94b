package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"examprep/internal/genai"
	"examprep/internal/quiz"
	"examprep/internal/session"
	"examprep/internal/sets"
	"examprep/internal/store/jsonfile"
)

// featureState holds scenario state: a temporary data file, the wired
// manager, and the outcome of the last action.
type featureState struct {
	dir        string
	dataPath   string
	configPath string
	warn       bytes.Buffer
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
	store      *jsonfile.Store
	gateway    *scriptedGateway
	manager    *sets.Manager
	attempt    *session.Attempt
	lastErr    error
}

// scriptedGateway serves canned generation and grading results and counts
// generation calls.
type scriptedGateway struct {
	questions int
	failing   bool
	grade     quiz.Grade
	genCalls  int
}

func (g *scriptedGateway) GenerateQuestions(_ context.Context, source string, count int, kind quiz.Kind) ([]quiz.Question, error) {
	if strings.TrimSpace(source) == "" {
		return []quiz.Question{}, nil
	}
	g.genCalls++
	if g.failing {
		return nil, fmt.Errorf("%w: scripted outage", genai.ErrGeneration)
	}
	questions := make([]quiz.Question, 0, g.questions)
	for i := 0; i < g.questions; i++ {
		questions = append(questions, quiz.Question{
			ID:            quiz.NewID(),
			Kind:          kind,
			Prompt:        fmt.Sprintf("generated question %d", i+1),
			Options:       []string{"a", "b"},
			CorrectAnswer: "a",
		})
	}
	return questions, nil
}

func (g *scriptedGateway) GenerateQuestionsFromImage(ctx context.Context, _ []byte, _ string, count int, kind quiz.Kind) ([]quiz.Question, error) {
	return g.GenerateQuestions(ctx, "image", count, kind)
}

func (g *scriptedGateway) ExplainAnswer(context.Context, quiz.Question, string) string {
	return "scripted explanation"
}

func (g *scriptedGateway) GradeSubjectiveAnswer(context.Context, quiz.Question, string) quiz.Grade {
	if g.failing {
		return quiz.Grade{IsCorrect: false, Feedback: genai.GradingFallback}
	}
	return g.grade
}

var _ genai.Gateway = (*scriptedGateway)(nil)

// InitializeScenario wires the steps to a fresh feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^I run init with a temporary config path$`, state.iRunInitWithTempConfig)
	ctx.Step(`^I run init with the same config path$`, state.iRunInitAgain)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists the "([^"]+)" command$`, state.theOutputListsCommand)
	ctx.Step(`^the error output mentions "([^"]+)"$`, state.theErrorOutputMentions)
	ctx.Step(`^the config file exists$`, state.theConfigFileExists)

	ctx.Step(`^an empty data file$`, state.anEmptyDataFile)
	ctx.Step(`^a corrupt data file$`, state.aCorruptDataFile)
	ctx.Step(`^a set titled "([^"]+)"$`, state.aSetTitled)
	ctx.Step(`^I create a set titled "([^"]+)"$`, state.iCreateASetTitled)
	ctx.Step(`^I create a set with a blank title$`, state.iCreateASetWithBlankTitle)
	ctx.Step(`^the creation fails$`, state.theLastActionFailed)
	ctx.Step(`^I add a choice question "([^"]+)" with options "([^"]+)" and answer "([^"]+)"$`, state.iAddAChoiceQuestion)
	ctx.Step(`^the set "([^"]+)" has a text question "([^"]+)" answered by "([^"]+)"$`, state.theSetHasATextQuestion)
	ctx.Step(`^I delete the first question of "([^"]+)"$`, state.iDeleteTheFirstQuestion)
	ctx.Step(`^I delete the set "([^"]+)"$`, state.iDeleteTheSet)
	ctx.Step(`^I rename the set "([^"]+)" to "([^"]+)"$`, state.iRenameTheSet)
	ctx.Step(`^I list the stored collection$`, state.iListTheStoredCollection)
	ctx.Step(`^the stored collection has (\d+) sets?$`, state.theStoredCollectionHasSets)
	ctx.Step(`^the stored collection contains a set titled "([^"]+)"$`, state.theCollectionContainsTitle)
	ctx.Step(`^the set "([^"]+)" has (\d+) questions?$`, state.theSetHasQuestions)
	ctx.Step(`^a corruption warning was reported$`, state.aCorruptionWarningWasReported)

	ctx.Step(`^the generation service returns (\d+) questions$`, state.theGenerationServiceReturns)
	ctx.Step(`^the generation service is failing$`, state.theGenerationServiceIsFailing)
	ctx.Step(`^the generation service was never called$`, state.theGenerationServiceWasNeverCalled)
	ctx.Step(`^I generate questions from source text "([^"]+)"$`, state.iGenerateFromSourceText)
	ctx.Step(`^I generate questions from blank source text$`, state.iGenerateFromBlankSource)
	ctx.Step(`^the generation fails$`, state.theLastActionFailed)

	ctx.Step(`^a set titled "([^"]+)" with these choice questions:$`, state.aSetWithChoiceQuestions)
	ctx.Step(`^a set titled "([^"]+)" with a text question "([^"]+)" answered by "([^"]+)"$`, state.aSetWithATextQuestion)
	ctx.Step(`^the grading service accepts every answer with feedback "([^"]+)"$`, state.theGradingServiceAccepts)
	ctx.Step(`^the grading service is failing$`, state.theGradingServiceIsFailing)
	ctx.Step(`^I practice the set "([^"]+)"$`, state.iPracticeTheSet)
	ctx.Step(`^I answer (\d+) questions? correctly$`, state.iAnswerCorrectly)
	ctx.Step(`^I answer (\d+) questions? incorrectly$`, state.iAnswerIncorrectly)
	ctx.Step(`^I submit the free-text answer "([^"]+)"$`, state.iSubmitFreeTextAnswer)
	ctx.Step(`^I restart the attempt$`, state.iRestartTheAttempt)
	ctx.Step(`^the attempt is finished$`, state.theAttemptIsFinished)
	ctx.Step(`^the attempt is active$`, state.theAttemptIsActive)
	ctx.Step(`^the attempt reports no questions$`, state.theAttemptReportsNoQuestions)
	ctx.Step(`^the final score is (\d+) out of (\d+)$`, state.theFinalScoreIs)
	ctx.Step(`^the final percentage is (\d+)$`, state.theFinalPercentageIs)
	ctx.Step(`^the running score is (\d+)$`, state.theRunningScoreIs)
	ctx.Step(`^the current question is marked correct$`, state.theCurrentQuestionIsCorrect)
	ctx.Step(`^the current question is marked incorrect$`, state.theCurrentQuestionIsIncorrect)
	ctx.Step(`^the feedback reads "([^"]+)"$`, state.theFeedbackReads)
}

// reset builds a fresh data directory and wiring before each scenario.
func (s *featureState) reset() error {
	dir, err := os.MkdirTemp("", "examprep-cucumber-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.dir = dir
	s.dataPath = filepath.Join(dir, jsonfile.FileName)
	s.configPath = ""
	s.warn.Reset()
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.store = jsonfile.New(s.dataPath, &s.warn)
	s.gateway = &scriptedGateway{}
	s.manager = sets.NewManager(s.store, s.gateway)
	s.attempt = nil
	s.lastErr = nil
	return nil
}

// cleanup removes the scenario's temporary files.
func (s *featureState) cleanup() {
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
		s.dir = ""
	}
}

// findSet looks a set up by title in the stored collection.
func (s *featureState) findSet(title string) (quiz.QuestionSet, error) {
	for _, set := range s.store.ListSets() {
		if set.Title == title {
			return set, nil
		}
	}
	return quiz.QuestionSet{}, fmt.Errorf("no set titled %q in the store", title)
}

// practiceRand returns the deterministic shuffle source for practice
// scenarios.
func practiceRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
