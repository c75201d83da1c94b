package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/quiz"
	"examprep/internal/sets"
)

// Add-form focus order: prompt, four options, correct answer, explanation.
const (
	addFieldPrompt = iota
	addFieldOption0
	addFieldOption3 = addFieldOption0 + 3
	addFieldCorrect = addFieldOption3 + 1
	addFieldExplain = addFieldCorrect + 1
	addFieldCount   = addFieldExplain + 1
)

func (d *detailModel) focusAddField() {
	d.promptInput.Blur()
	for i := range d.optionInputs {
		d.optionInputs[i].Blur()
	}
	d.correctInput.Blur()
	d.explInput.Blur()

	switch {
	case d.addFocus == addFieldPrompt:
		d.promptInput.Focus()
	case d.addFocus >= addFieldOption0 && d.addFocus <= addFieldOption3:
		d.optionInputs[d.addFocus-addFieldOption0].Focus()
	case d.addFocus == addFieldCorrect:
		d.correctInput.Focus()
	case d.addFocus == addFieldExplain:
		d.explInput.Focus()
	}
}

func (d detailModel) updateAdd(msg tea.Msg, manager *sets.Manager) (detailModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			d.tab = tabList
			return d, nil
		case "ctrl+c":
			return d, tea.Quit
		case "ctrl+t":
			if d.addKind == quiz.KindChoice {
				d.addKind = quiz.KindText
			} else {
				d.addKind = quiz.KindChoice
			}
			if d.addKind == quiz.KindText && d.addFocus >= addFieldOption0 && d.addFocus <= addFieldOption3 {
				d.addFocus = addFieldCorrect
			}
			d.focusAddField()
			return d, nil
		case "tab":
			d.addFocus = d.nextAddField(d.addFocus, 1)
			d.focusAddField()
			return d, nil
		case "shift+tab":
			d.addFocus = d.nextAddField(d.addFocus, -1)
			d.focusAddField()
			return d, nil
		case "ctrl+s":
			options := make([]string, len(d.optionInputs))
			for i, input := range d.optionInputs {
				options[i] = input.Value()
			}
			updated, err := manager.AddQuestion(d.set, quiz.QuestionInput{
				Kind:          d.addKind,
				Prompt:        d.promptInput.Value(),
				Options:       options,
				CorrectAnswer: d.correctInput.Value(),
				Explanation:   d.explInput.Value(),
			})
			if err != nil {
				d.addErr = err.Error()
				return d, nil
			}
			d.set = updated
			d.resetAddForm()
			d.tab = tabList
			d.status = "Question added."
			return d, func() tea.Msg { return setUpdatedMsg{set: updated} }
		}
	}
	return d.updateAddInputs(msg)
}

// nextAddField steps the focus, skipping option fields for text questions.
func (d detailModel) nextAddField(current, direction int) int {
	next := current
	for {
		next = (next + direction + addFieldCount) % addFieldCount
		if d.addKind == quiz.KindText && next >= addFieldOption0 && next <= addFieldOption3 {
			continue
		}
		return next
	}
}

func (d *detailModel) resetAddForm() {
	d.promptInput.SetValue("")
	for i := range d.optionInputs {
		d.optionInputs[i].SetValue("")
	}
	d.correctInput.SetValue("")
	d.explInput.SetValue("")
	d.addErr = ""
	d.addFocus = addFieldPrompt
}

func (d detailModel) updateAddInputs(msg tea.Msg) (detailModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.promptInput, cmd = d.promptInput.Update(msg)
	cmds = append(cmds, cmd)
	for i := range d.optionInputs {
		d.optionInputs[i], cmd = d.optionInputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	d.correctInput, cmd = d.correctInput.Update(msg)
	cmds = append(cmds, cmd)
	d.explInput, cmd = d.explInput.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

func (d detailModel) viewAdd() string {
	lines := []string{
		"Add Question  " + stylize("kind: "+string(d.addKind)+" (ctrl+t toggles)", d.noColor, subtleStyle),
		"",
		"Prompt:",
		d.promptInput.View(),
	}
	if d.addKind == quiz.KindChoice {
		for i := range d.optionInputs {
			lines = append(lines, d.optionInputs[i].View())
		}
	}
	lines = append(lines,
		"Correct:     "+d.correctInput.View(),
		"Explanation: "+d.explInput.View(),
		"",
		stylize("ctrl+s save · tab next field · esc cancel", d.noColor, subtleStyle),
	)
	if d.addErr != "" {
		lines = append(lines, stylize(d.addErr, d.noColor, errorStyle))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (d *detailModel) focusGenField() {
	d.sourceInput.Blur()
	d.countInput.Blur()
	d.imageInput.Blur()
	switch d.genFocus {
	case 0:
		d.sourceInput.Focus()
	case 1:
		d.countInput.Focus()
	case 2:
		d.imageInput.Focus()
	}
}

func (d detailModel) updateGenerate(msg tea.Msg, manager *sets.Manager) (detailModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if !d.generating {
				d.tab = tabList
			}
			return d, nil
		case "ctrl+c":
			return d, tea.Quit
		case "ctrl+t":
			if d.genKind == quiz.KindChoice {
				d.genKind = quiz.KindText
			} else {
				d.genKind = quiz.KindChoice
			}
			return d, nil
		case "tab":
			d.genFocus = (d.genFocus + 1) % 3
			d.focusGenField()
			return d, nil
		case "shift+tab":
			d.genFocus = (d.genFocus + 2) % 3
			d.focusGenField()
			return d, nil
		case "ctrl+s":
			if d.generating {
				return d, nil
			}
			source := d.sourceInput.Value()
			imagePath := strings.TrimSpace(d.imageInput.Value())
			if strings.TrimSpace(source) == "" && imagePath == "" {
				d.genErr = "Source text or an image file is required."
				return d, nil
			}
			d.generating = true
			d.genErr = ""
			return d, runGeneration(manager, d.set, source, imagePath, parseCount(d.countInput.Value()), d.genKind)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.sourceInput, cmd = d.sourceInput.Update(msg)
	cmds = append(cmds, cmd)
	d.countInput, cmd = d.countInput.Update(msg)
	cmds = append(cmds, cmd)
	d.imageInput, cmd = d.imageInput.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

func (d detailModel) viewGenerate() string {
	lines := []string{
		"Generate Questions with AI  " + stylize("kind: "+string(d.genKind)+" (ctrl+t toggles)", d.noColor, subtleStyle),
		"",
		"Source text:",
		d.sourceInput.View(),
		"Count: " + d.countInput.View(),
		"Image: " + d.imageInput.View(),
		"",
	}
	if d.generating {
		lines = append(lines, stylize("Generating questions...", d.noColor, subtleStyle))
	} else {
		lines = append(lines, stylize("ctrl+s generate · tab next field · esc cancel", d.noColor, subtleStyle))
	}
	if d.genErr != "" {
		lines = append(lines, stylize(d.genErr, d.noColor, errorStyle))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
