package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/quiz"
	"examprep/internal/sets"
)

// detailTab selects the active pane of the set detail view.
type detailTab int

const (
	tabList detailTab = iota
	tabAdd
	tabGenerate
)

const generationFailedMessage = "Failed to generate questions. Please try again later."

// detailModel shows one set's questions and hosts the manual-add and
// AI-generate forms.
type detailModel struct {
	set        quiz.QuestionSet
	noColor    bool
	tab        detailTab
	cursor     int
	confirming bool
	status     string

	addKind      quiz.Kind
	promptInput  textarea.Model
	optionInputs []textinput.Model
	correctInput textinput.Model
	explInput    textinput.Model
	addFocus     int
	addErr       string

	genKind     quiz.Kind
	sourceInput textarea.Model
	countInput  textinput.Model
	imageInput  textinput.Model
	genFocus    int
	generating  bool
	genErr      string
}

func newDetailModel(set quiz.QuestionSet, noColor bool) detailModel {
	prompt := textarea.New()
	prompt.Placeholder = "Question text"
	prompt.SetHeight(3)

	options := make([]textinput.Model, 4)
	for i := range options {
		options[i] = textinput.New()
		options[i].Placeholder = fmt.Sprintf("Option %c", 'A'+i)
	}

	correct := textinput.New()
	correct.Placeholder = "Correct answer text"

	explanation := textinput.New()
	explanation.Placeholder = "Optional explanation"

	source := textarea.New()
	source.Placeholder = "Paste source text to generate questions from..."
	source.SetHeight(6)

	count := textinput.New()
	count.Placeholder = "5"
	count.CharLimit = 3

	image := textinput.New()
	image.Placeholder = "Optional image file (png/jpeg) instead of text"

	return detailModel{
		set:          set,
		noColor:      noColor,
		addKind:      quiz.KindChoice,
		genKind:      quiz.KindChoice,
		promptInput:  prompt,
		optionInputs: options,
		correctInput: correct,
		explInput:    explanation,
		sourceInput:  source,
		countInput:   count,
		imageInput:   image,
	}
}

func (d detailModel) update(msg tea.Msg, manager *sets.Manager) (detailModel, tea.Cmd) {
	if done, ok := msg.(generationDoneMsg); ok {
		d.generating = false
		if done.err != nil {
			d.genErr = generationFailedMessage
			return d, nil
		}
		d.set = done.set
		d.tab = tabList
		d.genErr = ""
		d.sourceInput.SetValue("")
		d.imageInput.SetValue("")
		d.status = "Questions added."
		return d, func() tea.Msg { return setUpdatedMsg{set: done.set} }
	}

	switch d.tab {
	case tabAdd:
		return d.updateAdd(msg, manager)
	case tabGenerate:
		return d.updateGenerate(msg, manager)
	}
	return d.updateList(msg, manager)
}

func (d detailModel) updateList(msg tea.Msg, manager *sets.Manager) (detailModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	if d.confirming {
		if key.String() == "y" {
			d.confirming = false
			if d.cursor >= 0 && d.cursor < len(d.set.Questions) {
				updated, err := manager.DeleteQuestion(d.set, d.set.Questions[d.cursor].ID)
				if err != nil {
					d.status = err.Error()
					return d, nil
				}
				d.set = updated
				if d.cursor >= len(d.set.Questions) && d.cursor > 0 {
					d.cursor--
				}
				return d, func() tea.Msg { return setUpdatedMsg{set: updated} }
			}
			return d, nil
		}
		d.confirming = false
		return d, nil
	}

	switch key.String() {
	case "esc", "b":
		return d, func() tea.Msg { return backMsg{} }
	case "ctrl+c":
		return d, tea.Quit
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.set.Questions)-1 {
			d.cursor++
		}
	case "d":
		if len(d.set.Questions) > 0 {
			d.confirming = true
		}
	case "a":
		d.tab = tabAdd
		d.addErr = ""
		d.addFocus = 0
		d.focusAddField()
	case "g":
		d.tab = tabGenerate
		d.genErr = ""
		d.genFocus = 0
		d.focusGenField()
	case "p":
		if len(d.set.Questions) > 0 {
			return d, func() tea.Msg { return startPracticeMsg{} }
		}
		d.status = "This set has no questions to practice."
	}
	return d, nil
}

func (d detailModel) view() string {
	created := time.UnixMilli(d.set.CreatedAt).Format("2006-01-02")
	header := lipgloss.JoinVertical(lipgloss.Left,
		stylize(d.set.Title, d.noColor, titleStyle),
		stylize(d.set.Description, d.noColor, subtleStyle),
		stylize(fmt.Sprintf("%d questions · created %s", len(d.set.Questions), created), d.noColor, subtleStyle),
	)

	var body string
	switch d.tab {
	case tabAdd:
		body = d.viewAdd()
	case tabGenerate:
		body = d.viewGenerate()
	default:
		body = d.viewList()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, statusLine(d.status, d.noColor))
}

func (d detailModel) viewList() string {
	if len(d.set.Questions) == 0 {
		empty := stylize("No questions yet. Add some manually or use AI generation.", d.noColor, subtleStyle)
		footer := stylize("a add · g generate · esc back", d.noColor, subtleStyle)
		return lipgloss.JoinVertical(lipgloss.Left, empty, "", footer)
	}

	lines := make([]string, 0, len(d.set.Questions)+2)
	for i, question := range d.set.Questions {
		marker := "  "
		if i == d.cursor {
			marker = stylize("> ", d.noColor, selectedStyle)
		}
		label := fmt.Sprintf("%s%2d. [%s] %s", marker, i+1, question.Kind, truncate(question.Prompt, 70))
		if issues := quiz.CheckChoice(question); len(issues) > 0 {
			label += " " + stylize("(answer not among options)", d.noColor, wrongStyle)
		}
		lines = append(lines, label)
	}
	footer := stylize("p practice · a add · g generate · d delete question · esc back", d.noColor, subtleStyle)
	if d.confirming {
		footer = stylize("Delete this question? y confirm · any other key cancels", d.noColor, wrongStyle)
	}
	lines = append(lines, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// runGeneration builds the async command for a bulk generation call. The
// call runs off the UI loop; its result comes back as a generationDoneMsg.
func runGeneration(manager *sets.Manager, set quiz.QuestionSet, sourceText, imagePath string, count int, kind quiz.Kind) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return generationDoneMsg{set: set, err: err}
			}
			updated, err := manager.AppendGeneratedFromImage(ctx, set, data, imageMIME(imagePath), count, kind)
			return generationDoneMsg{set: updated, err: err}
		}
		updated, err := manager.AppendGenerated(ctx, set, sourceText, count, kind)
		return generationDoneMsg{set: updated, err: err}
	}
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

func parseCount(value string) int {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || count <= 0 {
		return 5
	}
	return count
}
