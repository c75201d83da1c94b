// Package ui implements the terminal application shell: a three-view router
// over the dashboard, the set detail screen, and the practice session.
package ui

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/genai"
	"examprep/internal/quiz"
	"examprep/internal/sets"
	"examprep/internal/store"
)

// viewID identifies the active screen.
type viewID int

const (
	viewDashboard viewID = iota
	viewSetDetail
	viewPractice
)

// Options configures the application model.
type Options struct {
	NoColor bool
	// Rand seeds practice shuffles; nil uses a time-seeded source.
	Rand *rand.Rand
}

// Model is the root Bubble Tea model holding the active view and set.
type Model struct {
	store    store.Store
	manager  *sets.Manager
	gateway  genai.Gateway
	view     viewID
	sets     []quiz.QuestionSet
	active   quiz.QuestionSet
	hasSet   bool
	width    int
	height   int
	noColor  bool
	rng      *rand.Rand
	dash     dashboardModel
	detail   detailModel
	practice practiceModel
}

// NewModel constructs the shell over its collaborators.
func NewModel(st store.Store, manager *sets.Manager, gateway genai.Gateway, opts Options) Model {
	model := Model{
		store:   st,
		manager: manager,
		gateway: gateway,
		view:    viewDashboard,
		noColor: opts.NoColor,
		rng:     opts.Rand,
	}
	model.sets = st.ListSets()
	model.dash = newDashboardModel(model.sets, opts.NoColor)
	return model
}

// Init performs no startup work; all state is loaded synchronously.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active view and handles navigation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.dash.setSize(typed.Width, typed.Height)
		return m, nil

	case openSetMsg:
		m.active = typed.set
		m.hasSet = true
		m.view = viewSetDetail
		m.detail = newDetailModel(typed.set, m.noColor)
		return m, nil

	case backMsg:
		m.view = viewDashboard
		m.refreshSets()
		return m, nil

	case setsChangedMsg:
		m.refreshSets()
		return m, nil

	case setUpdatedMsg:
		m.active = typed.set
		m.detail.set = typed.set
		m.refreshSets()
		return m, nil

	case startPracticeMsg:
		if !m.hasSet {
			return m, nil
		}
		m.view = viewPractice
		var cmd tea.Cmd
		m.practice, cmd = newPracticeModel(m.active, m.gateway, m.rng, m.noColor)
		return m, cmd

	case exitPracticeMsg:
		// The attempt is discarded here; any in-flight feedback result
		// arriving later finds no active practice view and is ignored.
		m.view = viewSetDetail
		m.practice = practiceModel{}
		return m, nil
	}

	switch m.view {
	case viewDashboard:
		var cmd tea.Cmd
		m.dash, cmd = m.dash.update(msg, m.manager)
		return m, cmd
	case viewSetDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.update(msg, m.manager)
		return m, cmd
	case viewPractice:
		var cmd tea.Cmd
		m.practice, cmd = m.practice.update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewDashboard:
		body = m.dash.view()
	case viewSetDetail:
		body = m.detail.view()
	case viewPractice:
		body = m.practice.view()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body)
}

// refreshSets re-fetches the set list from the store and rebuilds the
// dashboard rows.
func (m *Model) refreshSets() {
	m.sets = m.store.ListSets()
	m.dash.setRows(m.sets)
}
