package quiz

// Kind distinguishes multiple choice questions from free-text ones.
type Kind string

const (
	// KindChoice marks a question with a fixed option list and one correct option.
	KindChoice Kind = "choice"
	// KindText marks a question answered with free text and graded semantically.
	KindText Kind = "text"
)

// Question is a single exam question owned by a question set.
type Question struct {
	ID            string   `json:"id"`
	Kind          Kind     `json:"type"`
	Prompt        string   `json:"content"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuestionSet is a named, user-owned collection of questions.
type QuestionSet struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   int64      `json:"createdAt"`
	Questions   []Question `json:"questions"`
}

// Grade is the outcome of subjectively grading a free-text answer.
type Grade struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}
