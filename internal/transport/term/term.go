// Package term is the thin terminal adapter over the view models. It owns
// the read-eval-draw loop for an attempt; all quiz rules live in the session
// package.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quiztaker/internal/domain"
	"quiztaker/internal/notify"
	"quiztaker/internal/session"
	"quiztaker/internal/view"
)

// UI drives one quiz attempt on a line-based terminal.
type UI struct {
	in     io.Reader
	out    io.Writer
	board  *notify.Board
	cueTTL time.Duration
}

func NewUI(in io.Reader, out io.Writer, board *notify.Board, cueTTL time.Duration) *UI {
	return &UI{in: in, out: out, board: board, cueTTL: cueTTL}
}

// Run renders questions and applies user commands until the session reaches
// Results, the input closes, or the context is canceled. It starts the
// attempt countdown and stops it on every exit path.
func (u *UI) Run(ctx context.Context, sess *session.Session) error {
	defer sess.Close()
	go sess.Timer().Run()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(u.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	u.draw(sess)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sess.Updates():
			if done, err := u.maybeFinish(sess); done {
				return err
			}
			u.draw(sess)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			u.apply(ctx, sess, line)
			if done, err := u.maybeFinish(sess); done {
				return err
			}
			u.draw(sess)
		}
	}
}

func (u *UI) apply(ctx context.Context, sess *session.Session, line string) {
	switch {
	case line == "":
	case line == "n":
		sess.Next()
	case line == "p":
		sess.Prev()
	case line == "s":
		if err := sess.Submit(ctx); err != nil {
			// Completeness and submit failures already reach the board.
			if !errors.Is(err, domain.ErrIncomplete) && sess.State() == session.StateInProgress {
				u.board.Post(err.Error())
			}
			return
		}
	default:
		choice, err := strconv.Atoi(line)
		if err != nil {
			u.board.Post("Type an option number, n, p, or s")
			return
		}
		options := sess.Quiz().Questions[sess.Snapshot().Index].Options
		if choice < 1 || choice > len(options) {
			u.board.Postf("Pick an option between 1 and %d", len(options))
			return
		}
		event, err := sess.Select(options[choice-1])
		if err != nil {
			u.board.Post(err.Error())
			return
		}
		if event.Scored && event.Correct {
			u.board.PostFor(fmt.Sprintf("+%d", event.Points), u.cueTTL)
		}
	}
}

func (u *UI) maybeFinish(sess *session.Session) (bool, error) {
	if result, ok := sess.Result(); ok {
		u.drawResults(view.ResultsScreen(result))
		return true, nil
	}
	return false, nil
}

func (u *UI) draw(sess *session.Session) {
	snap := sess.Snapshot()
	if snap.State != session.StateInProgress && snap.State != session.StateFailed {
		return
	}
	v := view.QuestionScreen(sess.Quiz(), snap)

	fmt.Fprintf(u.out, "\nQuestion %d of %d", v.Position, v.Total)
	if v.Urgent {
		fmt.Fprintf(u.out, "   [!] %ds left", v.Remaining)
	} else {
		fmt.Fprintf(u.out, "   %ds left", v.Remaining)
	}
	fmt.Fprintf(u.out, "   score %d\n%s\n", v.Score, v.Prompt)
	for i, opt := range v.Options {
		mark := " "
		if opt.Selected {
			mark = "x"
		}
		fmt.Fprintf(u.out, "  [%s] %d. %s\n", mark, i+1, opt.Label)
	}

	nav := make([]string, 0, 2)
	if v.ShowPrev {
		nav = append(nav, "p=previous")
	}
	if v.ShowNext {
		nav = append(nav, "n=next")
	}
	if v.ShowSubmit {
		nav = append(nav, "s=submit")
	}
	fmt.Fprintf(u.out, "(%s)\n", strings.Join(nav, ", "))

	for _, notice := range u.board.Active() {
		fmt.Fprintf(u.out, "! %s\n", notice.Text)
	}
}

func (u *UI) drawResults(v view.ResultsView) {
	fmt.Fprintf(u.out, "\nQuiz Results: %d%%\n", v.Percent)
	fmt.Fprintf(u.out, "Correct Answers: %d\nTotal Questions: %d\n\n", v.CorrectAnswers, v.TotalQuestions)
	for _, r := range v.Review {
		verdict := "✗"
		if r.Correct {
			verdict = "✓"
		}
		fmt.Fprintf(u.out, "%s %s\n    Your Answer: %s\n", verdict, r.Text, r.UserAnswer)
		if !r.Correct {
			fmt.Fprintf(u.out, "    Correct Answer: %s\n", r.CorrectAnswer)
		}
		if r.Explanation != "" {
			fmt.Fprintf(u.out, "    %s\n", r.Explanation)
		}
	}
}
