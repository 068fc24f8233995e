package typewriter

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is reported by a Completion whose animation was cut off by a
// newer play request or an explicit Stop before all characters were revealed.
var ErrCanceled = errors.New("typewriter: animation canceled")

// Completion is an awaitable handle for one animation (or one sequence).
// It resolves exactly once, either successfully or with ErrCanceled.
type Completion struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func resolvedCompletion() *Completion {
	c := newCompletion()
	c.complete(nil)
	return c
}

func (c *Completion) complete(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done returns a channel closed when the animation has finished or been
// canceled.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err reports how the animation ended. It is only meaningful after Done is
// closed; nil means every character was revealed.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the animation resolves or ctx is done.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
