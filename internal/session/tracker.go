package session

// answerSheet records the user's choice per question index. Entries are nil
// until answered; recording again overwrites (last write wins).
type answerSheet struct {
	slots []*string
}

func newAnswerSheet(n int) *answerSheet {
	return &answerSheet{slots: make([]*string, n)}
}

func (a *answerSheet) record(index int, value string) {
	if index < 0 || index >= len(a.slots) {
		return
	}
	v := value
	a.slots[index] = &v
}

func (a *answerSheet) get(index int) (string, bool) {
	if index < 0 || index >= len(a.slots) || a.slots[index] == nil {
		return "", false
	}
	return *a.slots[index], true
}

// complete is true iff every index has a recorded answer.
func (a *answerSheet) complete() bool {
	for _, slot := range a.slots {
		if slot == nil {
			return false
		}
	}
	return true
}

// answers returns a positional copy suitable for submission; unanswered
// entries stay nil and serialize as JSON null.
func (a *answerSheet) answers() []*string {
	out := make([]*string, len(a.slots))
	for i, slot := range a.slots {
		if slot != nil {
			v := *slot
			out[i] = &v
		}
	}
	return out
}
