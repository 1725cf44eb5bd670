package session

// basePoints is awarded for any correct answer; answering with more time left
// earns a bonus of one point per ten remaining seconds.
const basePoints = 100

func award(remainingSeconds int) int {
	bonus := remainingSeconds / 10
	if bonus < 0 {
		bonus = 0
	}
	return basePoints + bonus
}

// ScoreEvent describes the advisory outcome of one answer selection. Scored
// is false when the quiz payload hides correctness; the score display is then
// purely server-driven after grading.
type ScoreEvent struct {
	Scored  bool
	Correct bool
	Points  int
	Total   int
}
