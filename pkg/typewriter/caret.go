package typewriter

import (
	"sync"
	"time"

	"github.com/odvcencio/typeline/pkg/markup"
	"github.com/odvcencio/typeline/pkg/telemetry"
)

// caretPhase is the caret state machine: hidden, blinking while characters
// are still revealing, or blinking after the animation completed.
type caretPhase int

const (
	caretHidden caretPhase = iota
	caretTyping
	caretAfterTyping
)

// Invisible blink phases wrap the caret glyph in a fully transparent color
// tag instead of omitting it, so the frame's layout width never changes
// across blink toggles.
const (
	transparentOpen  = "<color=#00000000>"
	transparentClose = "</color>"
)

// caretSuffixLocked returns the glyph portion of the current frame.
func (e *Engine) caretSuffixLocked() string {
	if e.caretPhase == caretHidden || !e.showCaret {
		return ""
	}
	if e.caretVisible {
		return e.caretChar
	}
	return transparentOpen + e.caretChar + transparentClose
}

// startCaretLocked begins blinking in the given phase. Any previous blink
// timer is stopped first; only one may run per engine.
func (e *Engine) startCaretLocked(phase caretPhase) {
	e.stopCaretTimerLocked()
	e.caretPhase = phase
	e.caretVisible = true

	tick, stopTick := e.clock.Ticker(e.blinkRate)
	done := make(chan struct{})
	var once sync.Once
	e.caretStop = func() {
		once.Do(func() {
			stopTick()
			close(done)
		})
	}
	e.publishLocked(telemetry.Event{Type: telemetry.EventCaretShown, AnimationID: e.animID})
	go e.blink(tick, done, e.gen)
}

// blink toggles glyph visibility each interval and re-renders the frame.
// It exits when stopped or when its generation goes stale.
func (e *Engine) blink(tick <-chan time.Time, done <-chan struct{}, gen uint64) {
	for {
		select {
		case <-done:
			return
		case <-tick:
			e.mu.Lock()
			if e.gen != gen || e.caretPhase == caretHidden {
				e.mu.Unlock()
				return
			}
			e.caretVisible = !e.caretVisible
			e.pushFrameLocked(e.composeLocked())
			e.mu.Unlock()
		}
	}
}

// stopCaretTimerLocked cancels the blink timer without touching the phase.
func (e *Engine) stopCaretTimerLocked() {
	if e.caretStop != nil {
		e.caretStop()
		e.caretStop = nil
	}
}

// hideCaretLocked transitions to Hidden and, when no animation is active,
// re-renders the caret-free text immediately.
func (e *Engine) hideCaretLocked() {
	wasBlinking := e.caretStop != nil || e.caretPhase != caretHidden
	e.stopCaretTimerLocked()
	e.caretPhase = caretHidden
	e.caretVisible = false
	if wasBlinking {
		e.publishLocked(telemetry.Event{Type: telemetry.EventCaretHidden, AnimationID: e.animID})
	}
	if !e.typing && e.msg != nil {
		e.pushFrameLocked(markup.Render(e.msg, e.msg.Len()))
	}
}
