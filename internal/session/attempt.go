// Package session implements the practice attempt state machine: one
// shuffled traversal of a question set with per-question submission,
// AI-assisted feedback, and a final score. Attempts are ephemeral and never
// persisted.
package session

import (
	"math"
	"math/rand"
	"time"

	"examprep/internal/quiz"
)

// Phase is the coarse state of an attempt.
type Phase int

const (
	// PhasePreparing is the initial state before Start.
	PhasePreparing Phase = iota
	// PhaseActive means a question is in front of the user.
	PhaseActive
	// PhaseEmpty is the terminal state for a set with no questions.
	PhaseEmpty
	// PhaseFinished means every question has been answered.
	PhaseFinished
)

// submission is the transient per-question state, cleared on Advance.
type submission struct {
	selected  string
	typed     string
	submitted bool
	correct   bool
	feedback  string
	pending   bool
}

// Attempt runs one practice pass over an immutable question snapshot. It
// never mutates the underlying set; external changes to the set cannot
// affect a running attempt.
type Attempt struct {
	source  []quiz.Question
	rng     *rand.Rand
	phase   Phase
	order   []quiz.Question
	index   int
	score   int
	epoch   int
	current submission
}

// New snapshots the given questions for an attempt. A nil rng gets a
// time-seeded one; tests inject a fixed seed.
func New(questions []quiz.Question, rng *rand.Rand) *Attempt {
	source := make([]quiz.Question, len(questions))
	copy(source, questions)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Attempt{source: source, rng: rng, phase: PhasePreparing}
}

// Start fixes a uniform random order for the attempt and enters the first
// question, or PhaseEmpty when the snapshot has no questions. The order
// does not change again until Restart.
func (a *Attempt) Start() {
	a.epoch++
	a.index = 0
	a.score = 0
	a.current = submission{}
	if len(a.source) == 0 {
		a.order = nil
		a.phase = PhaseEmpty
		return
	}
	a.order = a.shuffled()
	a.phase = PhaseActive
}

// Restart re-shuffles and resets the attempt in place. Outstanding feedback
// resolutions from the previous pass carry a stale epoch and are dropped.
func (a *Attempt) Restart() {
	a.Start()
}

// shuffled applies a Fisher-Yates permutation over an index array.
func (a *Attempt) shuffled() []quiz.Question {
	indexes := make([]int, len(a.source))
	for i := range indexes {
		indexes[i] = i
	}
	for i := len(indexes) - 1; i > 0; i-- {
		j := a.rng.Intn(i + 1)
		indexes[i], indexes[j] = indexes[j], indexes[i]
	}
	order := make([]quiz.Question, len(indexes))
	for position, sourceIndex := range indexes {
		order[position] = a.source[sourceIndex]
	}
	return order
}

// Phase returns the attempt's current phase.
func (a *Attempt) Phase() Phase {
	return a.phase
}

// Current returns the question at the active index. ok is false outside
// PhaseActive or if the index cannot be resolved; callers render nothing in
// that case.
func (a *Attempt) Current() (quiz.Question, bool) {
	if a.phase != PhaseActive || a.index < 0 || a.index >= len(a.order) {
		return quiz.Question{}, false
	}
	return a.order[a.index], true
}

// Index returns the zero-based position of the active question.
func (a *Attempt) Index() int {
	return a.index
}

// Total returns the frozen question count of the attempt.
func (a *Attempt) Total() int {
	return len(a.source)
}

// Score returns the number of correctly answered questions so far.
func (a *Attempt) Score() int {
	return a.score
}

// Percentage returns the final score as a rounded integer percentage over
// the frozen total.
func (a *Attempt) Percentage() int {
	if len(a.source) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(a.score) / float64(len(a.source))))
}

// Selected returns the chosen option for the active choice question.
func (a *Attempt) Selected() string {
	return a.current.selected
}

// Typed returns the free-text answer entered for the active question.
func (a *Attempt) Typed() string {
	return a.current.typed
}

// Submitted reports whether the active question has been submitted.
func (a *Attempt) Submitted() bool {
	return a.current.submitted
}

// Correct reports the verdict for the active, submitted question. For
// free-text questions it stays false until grading resolves.
func (a *Attempt) Correct() bool {
	return a.current.correct
}

// Feedback returns the feedback text for the active question and whether a
// feedback request is still pending.
func (a *Attempt) Feedback() (text string, pending bool) {
	return a.current.feedback, a.current.pending
}
