package crawl

import (
	"context"
	"time"
)

// DefaultDelay is the pause between consecutive work items.
const DefaultDelay = 2 * time.Second

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Pacer inserts a fixed delay between consecutive work items.
type Pacer struct {
	// Delay is the pause between items. Zero disables pacing.
	Delay time.Duration

	// Failures controls whether an item that failed still pays the delay
	// before the next item.
	Failures bool

	// Sleep defaults to a context-aware timer.
	Sleep SleepFunc
}

// NewPacer creates a Pacer with DefaultDelay that also paces failures.
func NewPacer() *Pacer {
	return &Pacer{Delay: DefaultDelay, Failures: true}
}

// Between pauses after an item, given whether it failed and whether another
// item follows. No pause follows the last item.
func (p *Pacer) Between(ctx context.Context, failed, more bool) error {
	if p == nil || !more || p.Delay <= 0 {
		return nil
	}
	if failed && !p.Failures {
		return nil
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return sleep(ctx, p.Delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
