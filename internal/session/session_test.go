package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quiztaker/internal/domain"
	"quiztaker/internal/infra/memory"
	"quiztaker/internal/notify"

	"github.com/stretchr/testify/require"
)

func TestStartInitializesSession(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t, nil, 60)

	sess, err := controller.Start(ctx, 42)
	require.NoError(t, err)
	defer sess.Close()

	snap := sess.Snapshot()
	require.Equal(t, StateInProgress, snap.State)
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 0, snap.Score)
	require.Equal(t, 60, snap.Remaining)
	require.False(t, snap.Urgent)
	require.Len(t, snap.Answers, 3)
	require.NotEmpty(t, sess.ID())
}

func TestStartQuizNotFound(t *testing.T) {
	ctx := context.Background()
	controller, board := newTestController(t, nil, 60)

	_, err := controller.Start(ctx, 999)
	require.ErrorIs(t, err, domain.ErrQuizNotFound)
	notices := board.Active()
	require.Len(t, notices, 1)
	require.Equal(t, "Quiz not found", notices[0].Text)
}

func TestStartRejectsEmptyQuiz(t *testing.T) {
	ctx := context.Background()
	board := notify.NewBoard(3 * time.Second)
	loader := memory.NewStaticQuizSource(map[int]domain.Quiz{7: {ID: 7}})
	controller := NewController(loader, &fakeGrader{}, board, Config{DurationSeconds: 60, WarnAtSeconds: 10})

	_, err := controller.Start(ctx, 7)
	require.ErrorIs(t, err, domain.ErrQuizEmpty)
	notices := board.Active()
	require.Len(t, notices, 1)
	require.Equal(t, "Failed to load quiz", notices[0].Text)
}

func TestNavigationStaysInBounds(t *testing.T) {
	sess := startTestSession(t, nil, 60)

	sess.Prev()
	require.Equal(t, 0, sess.Snapshot().Index, "previous at first question must be a no-op")

	sess.Next()
	sess.Next()
	require.Equal(t, 2, sess.Snapshot().Index)

	sess.Next()
	require.Equal(t, 2, sess.Snapshot().Index, "next at last question must be a no-op")

	sess.Prev()
	require.Equal(t, 1, sess.Snapshot().Index)
}

func TestSelectOverwritesPriorAnswer(t *testing.T) {
	sess := startTestSession(t, nil, 60)

	_, err := sess.Select("Lisbon")
	require.NoError(t, err)
	snap := sess.Snapshot()
	require.NotNil(t, snap.Answers[0])
	require.Equal(t, "Lisbon", *snap.Answers[0])

	_, err = sess.Select("Madrid")
	require.NoError(t, err)
	snap = sess.Snapshot()
	require.Equal(t, "Madrid", *snap.Answers[0], "last write wins")
}

func TestAdvisoryScoring(t *testing.T) {
	t.Run("correct with 35s left awards 103", func(t *testing.T) {
		sess := startTestSession(t, nil, 35)
		event, err := sess.Select("Madrid")
		require.NoError(t, err)
		require.True(t, event.Scored)
		require.True(t, event.Correct)
		require.Equal(t, 103, event.Points)
		require.Equal(t, 103, sess.Snapshot().Score)
	})

	t.Run("correct with 9s left awards 100", func(t *testing.T) {
		sess := startTestSession(t, nil, 9)
		event, err := sess.Select("Madrid")
		require.NoError(t, err)
		require.Equal(t, 100, event.Points)
	})

	t.Run("incorrect awards nothing regardless of time", func(t *testing.T) {
		sess := startTestSession(t, nil, 59)
		event, err := sess.Select("Lisbon")
		require.NoError(t, err)
		require.True(t, event.Scored)
		require.False(t, event.Correct)
		require.Equal(t, 0, event.Points)
		require.Equal(t, 0, sess.Snapshot().Score)
	})

	t.Run("inert when the quiz hides correctness", func(t *testing.T) {
		board := notify.NewBoard(3 * time.Second)
		loader := memory.NewStaticQuizSource(map[int]domain.Quiz{1: {
			ID:        1,
			Questions: []domain.Question{{Text: "Pick one", Options: []string{"a", "b"}}},
		}})
		controller := NewController(loader, &fakeGrader{}, board, Config{DurationSeconds: 60, WarnAtSeconds: 10})
		sess, err := controller.Start(context.Background(), 1)
		require.NoError(t, err)
		defer sess.Close()

		event, err := sess.Select("a")
		require.NoError(t, err)
		require.False(t, event.Scored)
		require.Equal(t, 0, sess.Snapshot().Score)
	})
}

func TestManualSubmitRejectsIncomplete(t *testing.T) {
	grader := &fakeGrader{}
	controller, board := newTestController(t, grader, 60)
	sess, err := controller.Start(context.Background(), 42)
	require.NoError(t, err)
	defer sess.Close()

	_, _ = sess.Select("Madrid")
	sess.Next()
	sess.Next() // last question, middle one unanswered

	err = sess.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrIncomplete)
	require.Equal(t, 0, grader.count(), "no network call on validation failure")
	require.Equal(t, StateInProgress, sess.State())

	notices := board.Active()
	require.Len(t, notices, 1)
	require.Equal(t, domain.ErrIncomplete.Error(), notices[0].Text)
}

func TestManualSubmitOnlyFromLastQuestion(t *testing.T) {
	grader := &fakeGrader{}
	sess := startTestSession(t, grader, 60)
	answerAll(t, sess)
	sess.Prev() // back to the middle

	err := sess.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrNotLastQuestion)
	require.Equal(t, 0, grader.count())
}

func TestManualSubmitGradesAndFinishes(t *testing.T) {
	grader := &fakeGrader{result: sampleResult()}
	sess := startTestSession(t, grader, 60)
	answerAll(t, sess)

	require.NoError(t, sess.Submit(context.Background()))
	require.Equal(t, StateResults, sess.State())

	result, ok := sess.Result()
	require.True(t, ok)
	require.Equal(t, sampleResult(), result)

	sub := grader.last()
	require.Equal(t, 42, sub.QuizID)
	require.Len(t, sub.Answers, 3)
	for i, want := range []string{"Madrid", "Jupiter", "Go"} {
		require.NotNil(t, sub.Answers[i])
		require.Equal(t, want, *sub.Answers[i])
	}

	// Entering Submitting cancels the countdown, so no stray tick can fire.
	require.True(t, sess.Timer().Tick())
}

func TestExpirySubmitsWhateverIsRecorded(t *testing.T) {
	grader := &fakeGrader{result: sampleResult()}
	sess := startTestSession(t, grader, 2)
	_, _ = sess.Select("Madrid") // only the first question answered

	sess.Timer().Tick()
	sess.Timer().Tick() // expiry fires submission from question 0

	require.Equal(t, 1, grader.count())
	sub := grader.last()
	require.Equal(t, "Madrid", *sub.Answers[0])
	require.Nil(t, sub.Answers[1])
	require.Nil(t, sub.Answers[2])
	require.Equal(t, StateResults, sess.State())

	// A stray tick after expiry must not submit again.
	sess.Timer().Tick()
	require.Equal(t, 1, grader.count())
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	grader := &fakeGrader{err: errors.New("backend down")}
	controller, board := newTestController(t, grader, 60)
	sess, err := controller.Start(context.Background(), 42)
	require.NoError(t, err)
	defer sess.Close()
	answerAll(t, sess)

	err = sess.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, sess.State())
	require.Error(t, sess.Err())
	require.NotEmpty(t, board.Active())

	// Answers survive the failure; a retry succeeds.
	grader.setErr(nil)
	require.NoError(t, sess.Submit(context.Background()))
	require.Equal(t, StateResults, sess.State())
	require.Equal(t, 2, grader.count())
	require.Equal(t, "Madrid", *grader.last().Answers[0])
}

func TestSubmitInFlightGuard(t *testing.T) {
	grader := &fakeGrader{result: sampleResult(), block: make(chan struct{})}
	sess := startTestSession(t, grader, 60)
	answerAll(t, sess)

	firstDone := make(chan error, 1)
	go func() { firstDone <- sess.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return sess.State() == StateSubmitting }, time.Second, 5*time.Millisecond)
	require.ErrorIs(t, sess.Submit(context.Background()), domain.ErrSubmitInFlight)

	close(grader.block)
	require.NoError(t, <-firstDone)
	require.Equal(t, 1, grader.count())
}

func newTestController(t *testing.T, grader *fakeGrader, duration int) (*Controller, *notify.Board) {
	t.Helper()
	if grader == nil {
		grader = &fakeGrader{result: sampleResult()}
	}
	board := notify.NewBoard(3 * time.Second)
	loader := memory.NewStaticQuizSource(map[int]domain.Quiz{42: sampleQuiz()})
	controller := NewController(loader, grader, board, Config{DurationSeconds: duration, WarnAtSeconds: 10})
	return controller, board
}

func startTestSession(t *testing.T, grader *fakeGrader, duration int) *Session {
	t.Helper()
	controller, _ := newTestController(t, grader, duration)
	sess, err := controller.Start(context.Background(), 42)
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess
}

func answerAll(t *testing.T, sess *Session) {
	t.Helper()
	for i, answer := range []string{"Madrid", "Jupiter", "Go"} {
		_, err := sess.Select(answer)
		require.NoError(t, err)
		if i < 2 {
			sess.Next()
		}
	}
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID: 42,
		Questions: []domain.Question{
			{
				Text:          "What is the capital of Spain?",
				Options:       []string{"Lisbon", "Madrid", "Rome"},
				CorrectAnswer: "Madrid",
			},
			{
				Text:          "Largest planet in the solar system?",
				Options:       []string{"Mars", "Jupiter", "Saturn"},
				CorrectAnswer: "Jupiter",
				Explanation:   "Jupiter is more massive than every other planet combined.",
			},
			{
				Text:          "Which language is this client written in?",
				Options:       []string{"Go", "Rust", "Zig"},
				CorrectAnswer: "Go",
			},
		},
	}
}

func sampleResult() domain.GradedResult {
	return domain.GradedResult{
		Score:          66.7,
		CorrectAnswers: 2,
		TotalQuestions: 3,
		Questions: []domain.ReviewEntry{
			{Text: "What is the capital of Spain?", UserAnswer: "Madrid", CorrectAnswer: "Madrid", IsCorrect: true},
			{Text: "Largest planet in the solar system?", UserAnswer: "Jupiter", CorrectAnswer: "Jupiter", IsCorrect: true},
			{Text: "Which language is this client written in?", UserAnswer: "Rust", CorrectAnswer: "Go", IsCorrect: false},
		},
	}
}

type fakeGrader struct {
	mu     sync.Mutex
	calls  int
	lastIn domain.Submission
	result domain.GradedResult
	err    error
	block  chan struct{}
}

func (g *fakeGrader) SubmitQuiz(_ context.Context, sub domain.Submission) (domain.GradedResult, error) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastIn = sub
	if g.err != nil {
		return domain.GradedResult{}, g.err
	}
	return g.result, nil
}

func (g *fakeGrader) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGrader) last() domain.Submission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastIn
}

func (g *fakeGrader) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}
