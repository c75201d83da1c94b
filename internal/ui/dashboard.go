package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/quiz"
	"examprep/internal/sets"
)

// dashboardModel lists the stored question sets and hosts the creation form.
type dashboardModel struct {
	table      table.Model
	sets       []quiz.QuestionSet
	noColor    bool
	creating   bool
	titleInput textinput.Model
	descInput  textinput.Model
	focusDesc  bool
	confirming bool
	status     string
}

func newDashboardModel(questionSets []quiz.QuestionSet, noColor bool) dashboardModel {
	t := table.New(
		table.WithColumns(dashboardColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
	)

	title := textinput.New()
	title.Placeholder = "e.g., History Final Exam"
	title.CharLimit = 120

	desc := textinput.New()
	desc.Placeholder = "Optional description"
	desc.CharLimit = 240

	model := dashboardModel{
		table:      t,
		noColor:    noColor,
		titleInput: title,
		descInput:  desc,
	}
	model.setRows(questionSets)
	return model
}

func dashboardColumns() []table.Column {
	return []table.Column{
		{Title: "Title", Width: 36},
		{Title: "Questions", Width: 10},
		{Title: "Created", Width: 12},
	}
}

func (d *dashboardModel) setSize(width, height int) {
	d.table.SetWidth(width)
	d.table.SetHeight(max(height-8, 3))
}

func (d *dashboardModel) setRows(questionSets []quiz.QuestionSet) {
	d.sets = questionSets
	rows := make([]table.Row, 0, len(questionSets))
	for _, set := range questionSets {
		created := time.UnixMilli(set.CreatedAt).Format("2006-01-02")
		rows = append(rows, table.Row{set.Title, fmt.Sprintf("%d", len(set.Questions)), created})
	}
	d.table.SetRows(rows)
}

// selected returns the set under the cursor.
func (d dashboardModel) selected() (quiz.QuestionSet, bool) {
	cursor := d.table.Cursor()
	if cursor < 0 || cursor >= len(d.sets) {
		return quiz.QuestionSet{}, false
	}
	return d.sets[cursor], true
}

func (d dashboardModel) update(msg tea.Msg, manager *sets.Manager) (dashboardModel, tea.Cmd) {
	if d.creating {
		return d.updateCreateForm(msg, manager)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		d.table, cmd = d.table.Update(msg)
		return d, cmd
	}

	if d.confirming {
		switch key.String() {
		case "y":
			d.confirming = false
			if set, ok := d.selected(); ok {
				if err := manager.DeleteSet(set.ID); err != nil {
					d.status = err.Error()
					return d, nil
				}
				return d, func() tea.Msg { return setsChangedMsg{} }
			}
		default:
			d.confirming = false
		}
		return d, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "n":
		d.creating = true
		d.status = ""
		d.titleInput.SetValue("")
		d.descInput.SetValue("")
		d.focusDesc = false
		d.titleInput.Focus()
		d.descInput.Blur()
		return d, nil
	case "d":
		if _, ok := d.selected(); ok {
			d.confirming = true
		}
		return d, nil
	case "enter":
		if set, ok := d.selected(); ok {
			return d, func() tea.Msg { return openSetMsg{set: set} }
		}
		return d, nil
	}

	var cmd tea.Cmd
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

func (d dashboardModel) updateCreateForm(msg tea.Msg, manager *sets.Manager) (dashboardModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d.updateInputs(msg)
	}

	switch key.String() {
	case "esc":
		d.creating = false
		return d, nil
	case "tab", "shift+tab":
		d.focusDesc = !d.focusDesc
		if d.focusDesc {
			d.titleInput.Blur()
			d.descInput.Focus()
		} else {
			d.descInput.Blur()
			d.titleInput.Focus()
		}
		return d, nil
	case "enter":
		set, err := manager.CreateSet(d.titleInput.Value(), d.descInput.Value())
		if err != nil {
			d.status = err.Error()
			return d, nil
		}
		d.creating = false
		d.status = fmt.Sprintf("Created %q", set.Title)
		return d, func() tea.Msg { return setsChangedMsg{} }
	}
	return d.updateInputs(msg)
}

func (d dashboardModel) updateInputs(msg tea.Msg) (dashboardModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.titleInput, cmd = d.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	d.descInput, cmd = d.descInput.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

func (d dashboardModel) view() string {
	header := stylize("ExamPrep", d.noColor, titleStyle) +
		"  " + stylize("Manage your exam materials and practice efficiently.", d.noColor, subtleStyle)

	if d.creating {
		form := lipgloss.JoinVertical(lipgloss.Left,
			"Create New Set",
			"",
			"Title:       "+d.titleInput.View(),
			"Description: "+d.descInput.View(),
			"",
			stylize("enter create · tab switch field · esc cancel", d.noColor, subtleStyle),
		)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", boxStyle.Render(form), statusLine(d.status, d.noColor))
	}

	footer := stylize("enter open · n new set · d delete · q quit", d.noColor, subtleStyle)
	if d.confirming {
		footer = stylize("Delete this question set? y confirm · any other key cancels", d.noColor, wrongStyle)
	}
	if len(d.sets) == 0 {
		empty := stylize("No question sets yet. Press n to create one.", d.noColor, subtleStyle)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty, "", footer, statusLine(d.status, d.noColor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", d.table.View(), "", footer, statusLine(d.status, d.noColor))
}

func statusLine(status string, noColor bool) string {
	if status == "" {
		return ""
	}
	return stylize(status, noColor, subtleStyle)
}
