// Package notify holds transient on-screen notices that dismiss themselves
// after a TTL, mirroring a toast-style error display.
package notify

import (
	"fmt"
	"sync"
	"time"
)

// Notice is a single message with its dismissal deadline.
type Notice struct {
	Text      string
	ExpiresAt time.Time
}

// Board collects notices from all components. Reading Active prunes expired
// entries, so no background sweeper is needed.
type Board struct {
	clock func() time.Time
	ttl   time.Duration

	mu      sync.Mutex
	notices []Notice
}

func NewBoard(ttl time.Duration) *Board {
	return NewBoardWithClock(ttl, time.Now)
}

// NewBoardWithClock is test-only for deterministic expiry.
func NewBoardWithClock(ttl time.Duration, now func() time.Time) *Board {
	return &Board{clock: now, ttl: ttl}
}

// Post adds a notice with the board's default TTL.
func (b *Board) Post(text string) {
	b.PostFor(text, b.ttl)
}

// Postf is Post with formatting.
func (b *Board) Postf(format string, args ...any) {
	b.Post(fmt.Sprintf(format, args...))
}

// PostFor adds a notice with an explicit TTL, used for short-lived score cues.
func (b *Board) PostFor(text string, ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, Notice{Text: text, ExpiresAt: b.clock().Add(ttl)})
}

// Active returns the notices still within their TTL, oldest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
