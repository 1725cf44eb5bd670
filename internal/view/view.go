// Package view maps quiz content and session state to plain view models.
// Nothing here touches a terminal or the network; adapters render the
// structs however they like, which keeps the state machine testable.
package view

import (
	"math"

	"quiztaker/internal/domain"
	"quiztaker/internal/session"
)

// OptionView is one selectable answer.
type OptionView struct {
	Label    string
	Selected bool
}

// QuestionView describes everything needed to draw one question screen.
// Exactly one of ShowNext and ShowSubmit is set: Submit on the last question,
// Next everywhere else.
type QuestionView struct {
	Prompt     string
	Options    []OptionView
	Position   int // 1-based
	Total      int
	ShowPrev   bool
	ShowNext   bool
	ShowSubmit bool
	Remaining  int
	Urgent     bool
	Score      int
}

// QuestionScreen renders the question at the snapshot's index. Re-rendering
// the same index restores the recorded selection, so the mapping is
// idempotent for unchanged state.
func QuestionScreen(quiz domain.Quiz, snap session.Snapshot) QuestionView {
	question := quiz.Questions[snap.Index]
	selected := ""
	if snap.Index < len(snap.Answers) && snap.Answers[snap.Index] != nil {
		selected = *snap.Answers[snap.Index]
	}

	options := make([]OptionView, len(question.Options))
	for i, opt := range question.Options {
		options[i] = OptionView{Label: opt, Selected: selected != "" && opt == selected}
	}

	last := len(quiz.Questions) - 1
	return QuestionView{
		Prompt:     question.Text,
		Options:    options,
		Position:   snap.Index + 1,
		Total:      len(quiz.Questions),
		ShowPrev:   snap.Index > 0,
		ShowNext:   snap.Index < last,
		ShowSubmit: snap.Index == last,
		Remaining:  snap.Remaining,
		Urgent:     snap.Urgent,
		Score:      snap.Score,
	}
}

// AnswerReview is one graded question in the results screen.
type AnswerReview struct {
	Text          string
	UserAnswer    string
	CorrectAnswer string
	Correct       bool
	Explanation   string
}

// ResultsView is the graded summary plus per-question review.
type ResultsView struct {
	Percent        int
	CorrectAnswers int
	TotalQuestions int
	Review         []AnswerReview
}

// ResultsScreen maps the server's graded payload verbatim into a view.
func ResultsScreen(result domain.GradedResult) ResultsView {
	review := make([]AnswerReview, len(result.Questions))
	for i, q := range result.Questions {
		review[i] = AnswerReview{
			Text:          q.Text,
			UserAnswer:    q.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       q.IsCorrect,
			Explanation:   q.Explanation,
		}
	}
	return ResultsView{
		Percent:        int(math.Round(result.Score)),
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		Review:         review,
	}
}
