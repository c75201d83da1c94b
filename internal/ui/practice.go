package ui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/genai"
	"examprep/internal/quiz"
	"examprep/internal/session"
)

// practiceModel drives one practice attempt. All quiz logic lives in the
// session engine; this model translates key presses into engine transitions
// and async feedback requests into Bubble Tea commands.
type practiceModel struct {
	attempt     *session.Attempt
	gateway     genai.Gateway
	title       string
	answerInput textarea.Model
	spin        spinner.Model
	cursor      int
	noColor     bool
}

func newPracticeModel(set quiz.QuestionSet, gateway genai.Gateway, rng *rand.Rand, noColor bool) (practiceModel, tea.Cmd) {
	attempt := session.New(set.Questions, rng)
	attempt.Start()

	answer := textarea.New()
	answer.Placeholder = "Type your answer here..."
	answer.SetHeight(4)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	model := practiceModel{
		attempt:     attempt,
		gateway:     gateway,
		title:       set.Title,
		answerInput: answer,
		spin:        spin,
		noColor:     noColor,
	}
	model.prepareQuestion()
	return model, spin.Tick
}

// prepareQuestion resets per-question input state after Start, Restart, or
// Advance.
func (p *practiceModel) prepareQuestion() {
	p.cursor = 0
	p.answerInput.SetValue("")
	if question, ok := p.attempt.Current(); ok && question.Kind == quiz.KindText {
		p.answerInput.Focus()
	} else {
		p.answerInput.Blur()
	}
}

// feedbackCmd runs the gateway call described by a feedback request off the
// UI loop. The tagged result message is dropped by the engine if the
// attempt has moved on by the time it arrives.
func feedbackCmd(gateway genai.Gateway, request session.FeedbackRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if request.Kind == session.FeedbackGrading {
			grade := gateway.GradeSubjectiveAnswer(ctx, request.Question, request.UserAnswer)
			return gradeResolvedMsg{tag: request.Tag, grade: grade}
		}
		text := gateway.ExplainAnswer(ctx, request.Question, request.UserAnswer)
		return explanationResolvedMsg{tag: request.Tag, text: text}
	}
}

func (p practiceModel) update(msg tea.Msg) (practiceModel, tea.Cmd) {
	if p.attempt == nil {
		return p, nil
	}

	switch typed := msg.(type) {
	case spinner.TickMsg:
		if _, pending := p.attempt.Feedback(); pending {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(typed)
			return p, cmd
		}
		return p, nil

	case explanationResolvedMsg:
		p.attempt.ResolveExplanation(typed.tag, typed.text)
		return p, nil

	case gradeResolvedMsg:
		p.attempt.ResolveGrade(typed.tag, typed.grade)
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(typed)
	}

	return p, nil
}

func (p practiceModel) handleKey(key tea.KeyMsg) (practiceModel, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return p, tea.Quit
	}
	if key.String() == "esc" {
		return p, func() tea.Msg { return exitPracticeMsg{} }
	}

	switch p.attempt.Phase() {
	case session.PhaseEmpty:
		if key.String() == "enter" || key.String() == "q" {
			return p, func() tea.Msg { return exitPracticeMsg{} }
		}
		return p, nil

	case session.PhaseFinished:
		switch key.String() {
		case "r":
			p.attempt.Restart()
			p.prepareQuestion()
			return p, p.spin.Tick
		case "q", "enter":
			return p, func() tea.Msg { return exitPracticeMsg{} }
		}
		return p, nil

	case session.PhaseActive:
		return p.handleActiveKey(key)
	}
	return p, nil
}

func (p practiceModel) handleActiveKey(key tea.KeyMsg) (practiceModel, tea.Cmd) {
	question, ok := p.attempt.Current()
	if !ok {
		return p, nil
	}

	if p.attempt.Submitted() {
		if key.String() == "enter" || key.String() == "n" {
			p.attempt.Advance()
			p.prepareQuestion()
		}
		return p, nil
	}

	if question.Kind == quiz.KindChoice {
		// A malformed question can carry no options; render it inert
		// rather than index into an empty slice.
		if len(question.Options) == 0 {
			return p, nil
		}
		switch key.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
			p.attempt.Select(question.Options[p.cursor])
		case "down", "j":
			if p.cursor < len(question.Options)-1 {
				p.cursor++
			}
			p.attempt.Select(question.Options[p.cursor])
		case "enter":
			if request, issued := p.attempt.Submit(); issued {
				return p, tea.Batch(feedbackCmd(p.gateway, request), p.spin.Tick)
			}
		}
		return p, nil
	}

	if key.String() == "ctrl+s" {
		p.attempt.Type(p.answerInput.Value())
		if request, issued := p.attempt.Submit(); issued {
			return p, tea.Batch(feedbackCmd(p.gateway, request), p.spin.Tick)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.answerInput, cmd = p.answerInput.Update(key)
	p.attempt.Type(p.answerInput.Value())
	return p, cmd
}

func (p practiceModel) view() string {
	if p.attempt == nil {
		return ""
	}
	switch p.attempt.Phase() {
	case session.PhaseEmpty:
		return p.viewEmpty()
	case session.PhaseFinished:
		return p.viewFinished()
	case session.PhaseActive:
		return p.viewActive()
	}
	return ""
}

func (p practiceModel) viewEmpty() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		"No Questions Available",
		"",
		"This set has no questions to practice.",
		"Add some questions or generate them with AI first.",
		"",
		stylize("esc go back", p.noColor, subtleStyle),
	)
	return boxStyle.Render(body)
}

func (p practiceModel) viewFinished() string {
	percentage := stylize(fmt.Sprintf("%d%%", p.attempt.Percentage()), p.noColor, titleStyle)
	body := lipgloss.JoinVertical(lipgloss.Left,
		"Practice Complete!  "+percentage,
		"",
		fmt.Sprintf("You answered %d out of %d questions correctly.", p.attempt.Score(), p.attempt.Total()),
		"",
		stylize("r practice again · esc back to set", p.noColor, subtleStyle),
	)
	return boxStyle.Render(body)
}

func (p practiceModel) viewActive() string {
	question, ok := p.attempt.Current()
	if !ok {
		// Unreachable with a frozen snapshot; render nothing rather than fail.
		return ""
	}

	header := stylize(p.title, p.noColor, titleStyle) +
		"  " + stylize(fmt.Sprintf("%d / %d", p.attempt.Index()+1, p.attempt.Total()), p.noColor, subtleStyle)
	progress := progressBar(p.attempt.Index(), p.attempt.Total(), 40)

	var answerArea string
	if question.Kind == quiz.KindChoice {
		answerArea = p.viewOptions(question)
	} else {
		answerArea = p.answerInput.View()
		if p.attempt.Submitted() && !p.attempt.Correct() {
			answerArea = lipgloss.JoinVertical(lipgloss.Left,
				answerArea,
				"",
				stylize("Model Answer: "+question.CorrectAnswer, p.noColor, correctStyle),
			)
		}
	}

	sections := []string{header, progress, "", question.Prompt, "", answerArea}
	if p.attempt.Submitted() {
		sections = append(sections, "", p.viewFeedback(), "", stylize("enter next question", p.noColor, subtleStyle))
	} else if question.Kind == quiz.KindChoice {
		sections = append(sections, "", stylize("up/down choose · enter check answer · esc exit", p.noColor, subtleStyle))
	} else {
		sections = append(sections, "", stylize("ctrl+s check answer · esc exit", p.noColor, subtleStyle))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p practiceModel) viewOptions(question quiz.Question) string {
	lines := make([]string, 0, len(question.Options))
	for i, option := range question.Options {
		marker := "( )"
		if option == p.attempt.Selected() {
			marker = "(o)"
		}
		line := fmt.Sprintf("%s %c. %s", marker, 'A'+i, option)
		if p.attempt.Submitted() {
			switch {
			case option == question.CorrectAnswer:
				line = stylize(line+"  ✓", p.noColor, correctStyle)
			case option == p.attempt.Selected():
				line = stylize(line+"  ✗", p.noColor, wrongStyle)
			default:
				line = stylize(line, p.noColor, subtleStyle)
			}
		} else if i == p.cursor {
			line = stylize(line, p.noColor, selectedStyle)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p practiceModel) viewFeedback() string {
	verdict := stylize("Incorrect", p.noColor, wrongStyle)
	if p.attempt.Correct() {
		verdict = stylize("Correct!", p.noColor, correctStyle)
	}

	feedback, pending := p.attempt.Feedback()
	if pending {
		return boxStyle.Render(p.spin.View() + " AI is analyzing... generating personalized feedback.")
	}
	body := verdict
	if feedback != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, verdict, "", feedback)
	}
	return boxStyle.Render(body)
}

// progressBar renders completed progress over the frozen question total.
func progressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := done * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
