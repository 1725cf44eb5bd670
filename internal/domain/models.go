package domain

// Question models one multiple-choice question as served by the quiz API.
// CorrectAnswer is only present when the backend embeds correctness in the
// quiz payload; when empty, correctness is unknown until grading.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// HasAnswerKey reports whether the question carries its own correct answer.
func (q Question) HasAnswerKey() bool {
	return q.CorrectAnswer != ""
}

// Quiz is an ordered collection of questions, immutable once loaded.
type Quiz struct {
	ID        int        `json:"id"`
	Questions []Question `json:"questions"`
}

// Submission is the grading request: answers are positional, one entry per
// question, nil for unanswered (serialized as JSON null).
type Submission struct {
	QuizID  int       `json:"quizId"`
	Answers []*string `json:"answers"`
}

// ReviewEntry is the server's per-question verdict in a graded result.
type ReviewEntry struct {
	Text          string `json:"text"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

// GradedResult is the authoritative outcome of a submission. The client never
// second-guesses it; the advisory in-session score is superseded on arrival.
type GradedResult struct {
	Score          float64       `json:"score"`
	CorrectAnswers int           `json:"correctAnswers"`
	TotalQuestions int           `json:"totalQuestions"`
	Questions      []ReviewEntry `json:"questions"`
}

// QuizSpec describes a quiz to be created through the admin endpoint.
type QuizSpec struct {
	Title         string `json:"title"`
	Category      int    `json:"category"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}
