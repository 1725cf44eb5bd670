package session

import (
	"sync"
	"time"
)

// Countdown is the per-attempt quiz timer. It counts down from a fixed number
// of seconds, flips to urgent once the warning threshold is reached (one-way,
// never cleared), and fires its expiry callback exactly once at zero.
type Countdown struct {
	onTick   func(remaining int, urgent bool)
	onExpire func()

	mu        sync.Mutex
	remaining int
	warnAt    int
	urgent    bool
	done      bool
	running   bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewCountdown builds a countdown of the given duration in seconds. Either
// callback may be nil.
func NewCountdown(seconds, warnAt int, onTick func(remaining int, urgent bool), onExpire func()) *Countdown {
	return &Countdown{
		onTick:    onTick,
		onExpire:  onExpire,
		remaining: seconds,
		warnAt:    warnAt,
		stop:      make(chan struct{}),
	}
}

// Run drives the countdown at one-second granularity until it expires or is
// stopped. Only one loop may run per countdown; extra calls return at once.
func (c *Countdown) Run() {
	c.mu.Lock()
	if c.running || c.done {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if c.Tick() {
				return
			}
		case <-c.stop:
			return
		}
	}
}

// Tick advances the countdown by one second and reports whether it has
// finished. After expiry or Stop, further ticks are no-ops.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return true
	}
	c.remaining--
	if c.remaining <= c.warnAt {
		c.urgent = true
	}
	remaining, urgent := c.remaining, c.urgent
	expired := remaining <= 0
	if expired {
		c.done = true
	}
	c.mu.Unlock()

	// Callbacks run outside the lock so they may call back into the countdown.
	if c.onTick != nil {
		c.onTick(remaining, urgent)
	}
	if expired {
		c.stopOnce.Do(func() { close(c.stop) })
		if c.onExpire != nil {
			c.onExpire()
		}
	}
	return expired
}

// Stop cancels the countdown without firing the expiry callback. Idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.done = true
	c.mu.Unlock()
	c.stopOnce.Do(func() { close(c.stop) })
}

// Remaining returns the seconds left on the clock.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Urgent reports whether the warning threshold has been crossed.
func (c *Countdown) Urgent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.urgent
}
