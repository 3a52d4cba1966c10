package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Ticker is a repeating callback; Stop may be called any number of times
type Ticker interface {
	Stop()
}

// Clock supplies wall time and repeating timers
type Clock interface {
	Now() time.Time
	Every(d time.Duration, fn func()) Ticker
}

// SystemClock is the real local wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Every runs fn on its own goroutine every d until the ticker is stopped
func (SystemClock) Every(d time.Duration, fn func()) Ticker {
	t := &systemTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				fn()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type systemTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *systemTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// ManualClock is a Clock that only moves when told to. Tickers fire
// synchronously from Advance, in due order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock returns a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Every(d time.Duration, fn func()) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTicker{clock: c, every: d, next: c.now.Add(d), fn: fn}
	c.tickers = append(c.tickers, t)
	return t
}

// Set jumps to t without firing any ticker
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
	for _, tk := range c.tickers {
		tk.next = t.Add(tk.every)
	}
}

// Advance moves the clock forward by d, firing every ticker that falls due
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		due := c.dueLocked(target)
		if due == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = due.next
		due.next = due.next.Add(due.every)
		c.mu.Unlock()

		due.fn()
	}
}

func (c *ManualClock) dueLocked(target time.Time) *manualTicker {
	sort.SliceStable(c.tickers, func(i, j int) bool {
		return c.tickers[i].next.Before(c.tickers[j].next)
	})
	for _, t := range c.tickers {
		if !t.next.After(target) {
			return t
		}
	}
	return nil
}

// Active returns the number of tickers not yet stopped
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

type manualTicker struct {
	clock *ManualClock
	every time.Duration
	next  time.Time
	fn    func()
}

func (t *manualTicker) Stop() {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, tk := range c.tickers {
		if tk == t {
			c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
			return
		}
	}
}
