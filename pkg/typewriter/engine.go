// Package typewriter animates formatted text one character at a time,
// keeping embedded inline markers balanced at every intermediate frame and
// pacing the reveal inside a fixed total duration with bounded jitter. An
// optional caret blinks at the end of the revealed text without ever
// changing the frame's layout width.
package typewriter

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/typeline/pkg/logging"
	"github.com/odvcencio/typeline/pkg/markup"
	"github.com/odvcencio/typeline/pkg/telemetry"
	"github.com/odvcencio/typeline/pkg/timing"
)

// Sink receives complete display frames. The engine always writes whole
// strings, never partial patches. Implementations are called with the
// engine's lock held and must not call back into the engine.
type Sink interface {
	SetText(text string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(text string)

// SetText implements Sink.
func (f SinkFunc) SetText(text string) { f(text) }

// Defaults applied by New. All are adjustable at runtime via setters.
const (
	DefaultTotalTypingTime = 2 * time.Second
	DefaultNoise           = 0.2
	DefaultCaretChar       = "_"
	DefaultCaretBlinkRate  = 500 * time.Millisecond

	// MinCaretBlinkRate is the floor applied to the caret blink interval.
	MinCaretBlinkRate = 100 * time.Millisecond
)

// Engine drives typewriter animation for a single display sink. All mutable
// state is private to one instance; a single Engine must not be shared by
// multiple displays. Only one animation and one caret timer are ever active
// at a time: starting a new play cancels the previous one first.
type Engine struct {
	mu    sync.Mutex
	sink  Sink
	clock timing.Clock
	rng   timing.Rand
	hub   *telemetry.Hub
	log   *logging.Logger

	totalTime time.Duration
	noise     float64
	blinkRate time.Duration
	caretChar string
	showCaret bool
	keepCaret bool

	msg        *markup.Message
	reveal     int
	typing     bool
	animID     string
	fullText   string
	completion *Completion

	// gen increments on every cancellation; in-flight timer goroutines
	// compare it before touching state so a canceled animation can never
	// resume.
	gen        uint64
	cancelAnim context.CancelFunc

	caretPhase   caretPhase
	caretVisible bool
	caretStop    func()
}

// New creates an engine writing frames to sink.
func New(sink Sink) *Engine {
	return &Engine{
		sink:       sink,
		clock:      timing.SystemClock,
		rng:        timing.NewRand(time.Now().UnixNano()),
		totalTime:  DefaultTotalTypingTime,
		noise:      DefaultNoise,
		blinkRate:  DefaultCaretBlinkRate,
		caretChar:  DefaultCaretChar,
		showCaret:  true,
		completion: resolvedCompletion(),
	}
}

// WithClock replaces the clock capability, for deterministic tests.
func (e *Engine) WithClock(clock timing.Clock) *Engine {
	e.clock = clock
	return e
}

// WithRand replaces the jitter source, for deterministic tests.
func (e *Engine) WithRand(rng timing.Rand) *Engine {
	e.rng = rng
	return e
}

// WithHub attaches a telemetry hub for lifecycle events.
func (e *Engine) WithHub(hub *telemetry.Hub) *Engine {
	e.hub = hub
	return e
}

// WithLogger attaches a structured logger.
func (e *Engine) WithLogger(log *logging.Logger) *Engine {
	e.log = log
	return e
}

// IsTyping reports whether an animation is currently revealing characters.
func (e *Engine) IsTyping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typing
}

// Play starts animating message, canceling any in-flight animation first.
// It returns without waiting for completion.
func (e *Engine) Play(message string) {
	e.start(message)
}

// PlayAsync starts animating message like Play and returns a Completion
// that resolves once every character is revealed (immediately for empty
// text), or with ErrCanceled if a newer play or Stop cuts it off.
func (e *Engine) PlayAsync(message string) *Completion {
	return e.start(message)
}

// Wait returns the Completion for whatever animation is presently active;
// it is already resolved when the engine is idle.
func (e *Engine) Wait() *Completion {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completion
}

// Stop cancels the running animation and caret timer and sets the display
// to the original raw message verbatim, markers untouched.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelActiveLocked()
	if e.msg != nil {
		e.pushFrameLocked(e.msg.Raw)
	}
}

// SetTotalTypingTime sets the duration the whole text takes to reveal,
// floored at timing.MinTotalDuration. Applies to the next play.
func (e *Engine) SetTotalTypingTime(d time.Duration) {
	if d < timing.MinTotalDuration {
		d = timing.MinTotalDuration
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalTime = d
}

// SetNoise sets the fractional jitter on per-character delays, clamped to
// [0, 1]. Applies to the next play.
func (e *Engine) SetNoise(noise float64) {
	if noise < 0 {
		noise = 0
	} else if noise > 1 {
		noise = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noise = noise
}

// SetCaretChar sets the caret glyph. Applies on the next render.
func (e *Engine) SetCaretChar(char string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caretChar = char
}

// SetCaretBlinkRate sets the blink interval, floored at MinCaretBlinkRate.
// Applies the next time a blink timer starts.
func (e *Engine) SetCaretBlinkRate(d time.Duration) {
	if d < MinCaretBlinkRate {
		d = MinCaretBlinkRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blinkRate = d
}

// TotalTypingTime returns the current total reveal duration.
func (e *Engine) TotalTypingTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalTime
}

// Noise returns the current fractional delay jitter.
func (e *Engine) Noise() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.noise
}

// BlinkRate returns the current caret blink interval.
func (e *Engine) BlinkRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blinkRate
}

// SetShowCaret enables or disables the caret. Disabling takes effect
// immediately: the blink timer stops and, when idle, the caret-free text is
// re-rendered.
func (e *Engine) SetShowCaret(show bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showCaret = show
	if !show {
		e.hideCaretLocked()
		return
	}
	if e.typing && e.caretStop == nil {
		e.startCaretLocked(caretTyping)
	}
}

// SetKeepCaretAfterTyping controls whether the caret keeps blinking once an
// animation completes. Turning it off while an idle post-typing blink is
// active stops the blink and re-renders the caret-free text immediately.
func (e *Engine) SetKeepCaretAfterTyping(keep bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keepCaret = keep
	if !keep && !e.typing && e.caretPhase == caretAfterTyping {
		e.hideCaretLocked()
	}
}

// HideCaret cancels the blink timer in any state. When no animation is
// active the caret-free full text is re-rendered immediately.
func (e *Engine) HideCaret() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hideCaretLocked()
}

// start cancels any active animation and begins a new one.
func (e *Engine) start(message string) *Completion {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelActiveLocked()

	msg := markup.Tokenize(message)
	comp := newCompletion()
	e.msg = msg
	e.reveal = 0
	e.fullText = ""
	e.animID = ulid.Make().String()
	e.completion = comp

	total := msg.Len()
	e.publishLocked(telemetry.Event{
		Type:        telemetry.EventAnimationStarted,
		AnimationID: e.animID,
		Total:       total,
	})
	telemetry.MetricAnimationsStarted.Inc()
	e.log.Info(logging.CategoryAnimation, "animation_started", "", map[string]any{
		"animation_id": e.animID,
		"chars":        total,
	})

	if total == 0 {
		e.finishLocked(comp)
		return comp
	}

	e.typing = true
	delays := timing.Schedule(e.totalTime, e.noise, total, e.rng)

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelAnim = cancel

	if e.showCaret {
		e.startCaretLocked(caretTyping)
	}
	e.pushFrameLocked(e.composeLocked())

	go e.animate(ctx, delays, comp, e.gen)
	return comp
}

// animate is the per-character reveal loop. It runs in its own goroutine
// and abandons all work the moment its generation is stale.
func (e *Engine) animate(ctx context.Context, delays []time.Duration, comp *Completion, gen uint64) {
	for i := range delays {
		select {
		case <-ctx.Done():
			return
		case <-e.clock.After(delays[i]):
		}

		e.mu.Lock()
		if e.gen != gen {
			e.mu.Unlock()
			return
		}
		e.reveal = i + 1
		e.pushFrameLocked(e.composeLocked())
		e.publishLocked(telemetry.Event{
			Type:        telemetry.EventAnimationFrame,
			AnimationID: e.animID,
			Reveal:      e.reveal,
			Total:       e.msg.Len(),
		})
		e.mu.Unlock()
	}

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	e.finishLocked(comp)
	e.mu.Unlock()
}

// finishLocked completes the current animation: full render, caret
// transition, completion resolution.
func (e *Engine) finishLocked(comp *Completion) {
	e.typing = false
	e.cancelAnim = nil
	e.reveal = e.msg.Len()
	e.fullText = markup.Render(e.msg, e.reveal)

	if e.keepCaret && e.showCaret {
		if e.caretStop == nil {
			e.startCaretLocked(caretAfterTyping)
		} else {
			e.caretPhase = caretAfterTyping
		}
		e.pushFrameLocked(e.composeLocked())
	} else {
		e.stopCaretTimerLocked()
		e.caretPhase = caretHidden
		e.pushFrameLocked(e.fullText)
	}

	e.publishLocked(telemetry.Event{
		Type:        telemetry.EventAnimationCompleted,
		AnimationID: e.animID,
		Reveal:      e.reveal,
		Total:       e.reveal,
	})
	telemetry.MetricAnimationsCompleted.Inc()
	e.log.Info(logging.CategoryAnimation, "animation_completed", "", map[string]any{
		"animation_id": e.animID,
	})
	comp.complete(nil)
}

// cancelActiveLocked deterministically stops the running scheduler and caret
// timer before any new work starts. Canceled timers see the bumped
// generation and never mutate state again.
func (e *Engine) cancelActiveLocked() {
	e.gen++
	if e.cancelAnim != nil {
		e.cancelAnim()
		e.cancelAnim = nil
	}
	e.stopCaretTimerLocked()
	e.caretPhase = caretHidden
	e.caretVisible = false

	if e.typing {
		e.typing = false
		e.completion.complete(ErrCanceled)
		e.publishLocked(telemetry.Event{
			Type:        telemetry.EventAnimationCanceled,
			AnimationID: e.animID,
			Reveal:      e.reveal,
			Total:       e.msg.Len(),
		})
		telemetry.MetricAnimationsCanceled.Inc()
		e.log.Info(logging.CategoryAnimation, "animation_canceled", "", map[string]any{
			"animation_id": e.animID,
			"reveal":       e.reveal,
		})
	}
}

// composeLocked builds the current frame: revealed prefix plus caret suffix.
func (e *Engine) composeLocked() string {
	var prefix string
	switch {
	case e.msg == nil:
		prefix = ""
	case e.caretPhase == caretAfterTyping && e.fullText != "":
		prefix = e.fullText
	default:
		prefix = markup.Render(e.msg, e.reveal)
	}
	return prefix + e.caretSuffixLocked()
}

// pushFrameLocked writes a frame to the sink. Keeping the write under the
// lock is what guarantees the sink only ever sees monotonically more
// complete frames within one animation.
func (e *Engine) pushFrameLocked(frame string) {
	if e.sink != nil {
		e.sink.SetText(frame)
	}
	telemetry.MetricFramesRendered.Inc()
}

func (e *Engine) publishLocked(ev telemetry.Event) {
	if e.hub != nil {
		e.hub.Publish(ev)
	}
}
