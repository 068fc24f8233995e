package typewriter

import (
	"time"

	"github.com/odvcencio/typeline/pkg/logging"
	"github.com/odvcencio/typeline/pkg/telemetry"
)

// PlaySequence animates each message in order, pausing between messages for
// the current caret blink rate. The returned Completion resolves after the
// last message finishes; no pause follows it.
func (e *Engine) PlaySequence(messages ...string) *Completion {
	return e.PlaySequenceWithPause(e.BlinkRate(), messages...)
}

// PlaySequenceWithPause is PlaySequence with an explicit inter-message
// pause. Any newer play request or Stop issued mid-sequence aborts the rest
// of the sequence and resolves the Completion with ErrCanceled.
func (e *Engine) PlaySequenceWithPause(pause time.Duration, messages ...string) *Completion {
	comp := newCompletion()
	e.mu.Lock()
	hub, clock, log := e.hub, e.clock, e.log
	e.mu.Unlock()

	if hub != nil {
		hub.Publish(telemetry.Event{Type: telemetry.EventSequenceStarted})
	}
	log.Info(logging.CategorySequence, "sequence_started", "", map[string]any{
		"messages": len(messages),
		"pause":    pause.Seconds(),
	})

	go func() {
		for i, message := range messages {
			c := e.start(message)
			<-c.Done()
			if err := c.Err(); err != nil {
				comp.complete(err)
				return
			}
			if i == len(messages)-1 {
				break
			}

			// A play issued by someone else during the pause bumps the
			// generation; the sequence must not steamroll it.
			gen := e.generation()
			<-clock.After(pause)
			if e.generation() != gen {
				comp.complete(ErrCanceled)
				return
			}
		}
		if hub != nil {
			hub.Publish(telemetry.Event{Type: telemetry.EventSequenceCompleted})
		}
		log.Info(logging.CategorySequence, "sequence_completed", "", nil)
		comp.complete(nil)
	}()
	return comp
}

func (e *Engine) generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}
