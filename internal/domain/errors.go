package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizEmpty is returned when a loaded quiz has no questions.
	ErrQuizEmpty = errors.New("quiz has no questions")
	// ErrIncomplete rejects a manual submission while answers are missing.
	ErrIncomplete = errors.New("please answer all questions before submitting")
	// ErrSubmitInFlight is returned when a submission is already outstanding.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrSessionOver rejects interaction after the session left InProgress.
	ErrSessionOver = errors.New("quiz session is no longer in progress")
	// ErrNotLastQuestion rejects a manual submit away from the last question.
	ErrNotLastQuestion = errors.New("submit is only available on the last question")
	// ErrInvalidCredentials is returned when login is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
