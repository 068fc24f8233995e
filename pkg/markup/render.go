package markup

import "strings"

// Render builds the display string for the first reveal plain runes of msg.
// Marker events are replayed in original order as their positions become
// visible; opening markers that are still unclosed at the cut point get a
// synthesized "</keyword>" closing, innermost first, so every intermediate
// frame is balanced and independently renderable. Render is a pure function
// of its inputs.
//
// Events sitting exactly at the cut point are not emitted until the rune at
// that position is revealed; at full reveal the trailing events are emitted
// so the complete document round-trips its original markers.
func Render(msg *Message, reveal int) string {
	plain := []rune(msg.Plain)
	if reveal < 0 {
		reveal = 0
	}
	if reveal > len(plain) {
		reveal = len(plain)
	}

	var out strings.Builder
	var stack []string
	next := 0

	emitAt := func(pos int) {
		for next < len(msg.Events) && msg.Events[next].Pos == pos {
			ev := msg.Events[next]
			out.WriteString(ev.Text)
			if ev.Closing {
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
			} else {
				stack = append(stack, ev.Text)
			}
			next++
		}
	}

	for i := 0; i < reveal; i++ {
		emitAt(i)
		out.WriteRune(plain[i])
	}
	if reveal == len(plain) {
		emitAt(reveal)
	}

	for i := len(stack) - 1; i >= 0; i-- {
		out.WriteString("</" + Keyword(stack[i]) + ">")
	}
	return out.String()
}
