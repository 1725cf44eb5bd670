package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quiztaker/internal/domain"
	"quiztaker/internal/notify"

	"github.com/google/uuid"
)

// State is the lifecycle phase of a quiz attempt.
type State int

const (
	StateLoading State = iota
	StateInProgress
	StateSubmitting
	StateResults
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in-progress"
	case StateSubmitting:
		return "submitting"
	case StateResults:
		return "results"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// QuizLoader fetches quiz content (backend client, cache, or a static map).
type QuizLoader interface {
	GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error)
}

// Grader submits collected answers for authoritative grading.
type Grader interface {
	SubmitQuiz(ctx context.Context, sub domain.Submission) (domain.GradedResult, error)
}

// Config holds the per-attempt timing knobs.
type Config struct {
	DurationSeconds int // countdown length
	WarnAtSeconds   int // urgent-display threshold
}

// Controller starts quiz attempts and owns their collaborators.
type Controller struct {
	loader  QuizLoader
	grader  Grader
	notices *notify.Board
	clock   func() time.Time
	cfg     Config
}

func NewController(loader QuizLoader, grader Grader, notices *notify.Board, cfg Config) *Controller {
	return NewControllerWithClock(loader, grader, notices, cfg, time.Now)
}

// NewControllerWithClock is test-only for deterministic timestamps.
func NewControllerWithClock(loader QuizLoader, grader Grader, notices *notify.Board, cfg Config, now func() time.Time) *Controller {
	return &Controller{loader: loader, grader: grader, notices: notices, clock: now, cfg: cfg}
}

// Start loads the quiz and, on success, returns an in-progress session with a
// fresh countdown. A load failure is terminal: the notice is posted and the
// caller gets no session to retry with.
func (c *Controller) Start(ctx context.Context, quizID int) (*Session, error) {
	quiz, err := c.loader.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			c.notices.Post("Quiz not found")
		} else {
			c.notices.Post("Failed to load quiz")
		}
		return nil, fmt.Errorf("load quiz %d: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		c.notices.Post("Failed to load quiz")
		return nil, fmt.Errorf("load quiz %d: %w", quizID, domain.ErrQuizEmpty)
	}

	s := &Session{
		id:        uuid.NewString(),
		quiz:      quiz,
		grader:    c.grader,
		notices:   c.notices,
		clock:     c.clock,
		startedAt: c.clock(),
		state:     StateInProgress,
		sheet:     newAnswerSheet(len(quiz.Questions)),
		updates:   make(chan struct{}, 1),
	}
	s.countdown = NewCountdown(c.cfg.DurationSeconds, c.cfg.WarnAtSeconds,
		func(int, bool) { s.signal() },
		s.expire,
	)
	log.Printf("attempt %s: quiz %d loaded with %d questions", s.id, quiz.ID, len(quiz.Questions))
	return s, nil
}

// Session is one user's single attempt at one quiz, from load to results.
// All state is guarded by one mutex; events are applied in arrival order.
type Session struct {
	id        string
	quiz      domain.Quiz
	grader    Grader
	notices   *notify.Board
	clock     func() time.Time
	startedAt time.Time

	mu        sync.Mutex
	state     State
	index     int
	sheet     *answerSheet
	score     int
	countdown *Countdown
	inFlight  bool
	result    domain.GradedResult
	lastErr   error
	updates   chan struct{}
}

// Snapshot is an immutable view of session state for rendering.
type Snapshot struct {
	State     State
	Index     int
	Answers   []*string
	Score     int
	Remaining int
	Urgent    bool
}

// ID returns the attempt identifier.
func (s *Session) ID() string { return s.id }

// Quiz returns the loaded quiz content.
func (s *Session) Quiz() domain.Quiz { return s.quiz }

// Timer exposes the attempt countdown so the front-end can run it.
func (s *Session) Timer() *Countdown { return s.countdown }

// Updates signals (coalesced) whenever session state changes.
func (s *Session) Updates() <-chan struct{} { return s.updates }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot captures the current state for the view layer.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:     s.state,
		Index:     s.index,
		Answers:   s.sheet.answers(),
		Score:     s.score,
		Remaining: s.countdown.Remaining(),
		Urgent:    s.countdown.Urgent(),
	}
}

// Result returns the graded payload once the session has reached Results.
func (s *Session) Result() (domain.GradedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state == StateResults
}

// Err returns the failure recorded by the last load or submit, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Next moves to the following question; at the last question it is a no-op.
func (s *Session) Next() {
	s.mu.Lock()
	if s.state == StateInProgress && s.index < len(s.quiz.Questions)-1 {
		s.index++
	}
	s.mu.Unlock()
	s.signal()
}

// Prev moves to the preceding question; at the first question it is a no-op.
func (s *Session) Prev() {
	s.mu.Lock()
	if s.state == StateInProgress && s.index > 0 {
		s.index--
	}
	s.mu.Unlock()
	s.signal()
}

// Select records an answer for the current question, overwriting any prior
// choice, and returns the advisory score outcome when the quiz embeds
// correctness. The running total is feedback only; the server recomputes.
func (s *Session) Select(option string) (ScoreEvent, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return ScoreEvent{}, domain.ErrSessionOver
	}
	s.sheet.record(s.index, option)

	question := s.quiz.Questions[s.index]
	event := ScoreEvent{}
	if question.HasAnswerKey() {
		event.Scored = true
		event.Correct = option == question.CorrectAnswer
		if event.Correct {
			event.Points = award(s.countdown.Remaining())
			s.score += event.Points
		}
		event.Total = s.score
	}
	s.mu.Unlock()
	s.signal()
	return event, nil
}

// Submit is the manual submission path: only valid from the last question and
// only once every question has an answer. After a failed submission it may be
// called again to retry; answers stay intact.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateInProgress:
		if s.index != len(s.quiz.Questions)-1 {
			s.mu.Unlock()
			return domain.ErrNotLastQuestion
		}
		if !s.sheet.complete() {
			s.mu.Unlock()
			s.notices.Post(domain.ErrIncomplete.Error())
			return domain.ErrIncomplete
		}
	case StateFailed:
		// Retry path: the prior attempt already passed (or bypassed) validation.
	case StateSubmitting:
		s.mu.Unlock()
		return domain.ErrSubmitInFlight
	default:
		s.mu.Unlock()
		return domain.ErrSessionOver
	}
	return s.submitLocked(ctx)
}

// expire is the countdown's zero-time callback. It submits whatever has been
// recorded, unanswered entries included as nulls, from any position.
func (s *Session) expire() {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return
	}
	log.Printf("attempt %s: time expired, submitting %d answers", s.id, len(s.quiz.Questions))
	_ = s.submitLocked(context.Background())
}

// submitLocked runs the grading round trip. Callers must hold the mutex; it
// is released around the network call and re-acquired to record the outcome.
func (s *Session) submitLocked(ctx context.Context) error {
	if s.inFlight {
		s.mu.Unlock()
		return domain.ErrSubmitInFlight
	}
	s.state = StateSubmitting
	s.inFlight = true
	// Stopping here guarantees no stray tick fires a duplicate submission.
	s.countdown.Stop()
	sub := domain.Submission{QuizID: s.quiz.ID, Answers: s.sheet.answers()}
	s.mu.Unlock()
	s.signal()

	result, err := s.grader.SubmitQuiz(ctx, sub)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.mu.Unlock()
		s.notices.Postf("Failed to submit quiz: %v", err)
		s.signal()
		return fmt.Errorf("submit quiz %d: %w", sub.QuizID, err)
	}
	s.state = StateResults
	s.result = result
	s.lastErr = nil
	s.mu.Unlock()
	elapsed := s.clock().Sub(s.startedAt).Round(time.Second)
	log.Printf("attempt %s: graded %d/%d (%.1f%%) after %s", s.id, result.CorrectAnswers, result.TotalQuestions, result.Score, elapsed)
	s.signal()
	return nil
}

// Close stops the countdown; call when abandoning the attempt.
func (s *Session) Close() {
	s.countdown.Stop()
}

func (s *Session) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
