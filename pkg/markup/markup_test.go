package markup

import (
	"strings"
	"testing"
)

func TestTokenize_PlainOnly(t *testing.T) {
	msg := Tokenize("Hello World")
	if msg.Plain != "Hello World" {
		t.Errorf("Plain = %q, want 'Hello World'", msg.Plain)
	}
	if len(msg.Events) != 0 {
		t.Errorf("Events = %v, want none", msg.Events)
	}
}

func TestTokenize_Empty(t *testing.T) {
	msg := Tokenize("")
	if msg.Plain != "" || len(msg.Events) != 0 || msg.Len() != 0 {
		t.Errorf("empty input should yield an empty message, got %+v", msg)
	}
}

func TestTokenize_MarkerPositions(t *testing.T) {
	msg := Tokenize("Hello <color=red>World</color>!")

	if msg.Plain != "Hello World!" {
		t.Errorf("Plain = %q, want 'Hello World!'", msg.Plain)
	}
	want := []Event{
		{Pos: 6, Text: "<color=red>", Closing: false},
		{Pos: 11, Text: "</color>", Closing: true},
	}
	if len(msg.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(msg.Events), len(want))
	}
	for i, ev := range msg.Events {
		if ev != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestTokenize_UnrecognizedAndMalformed(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		plain  string
		events int
	}{
		{"unknown tag still a marker", "a<whatever junk>b", "ab", 1},
		{"unterminated bracket is plain", "a<b", "a<b", 0},
		{"bare closing", "a</b>c", "ac", 1},
		{"adjacent markers", "<b><i>x</i></b>", "x", 4},
		{"marker at end", "abc<b>", "abc", 1},
		{"only markers", "<b></b>", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Tokenize(tt.raw)
			if msg.Plain != tt.plain {
				t.Errorf("Plain = %q, want %q", msg.Plain, tt.plain)
			}
			if len(msg.Events) != tt.events {
				t.Errorf("got %d events, want %d", len(msg.Events), tt.events)
			}
		})
	}
}

func TestTokenize_UnicodePositionsCountRunes(t *testing.T) {
	msg := Tokenize("héllo<b>wörld</b>")
	if msg.Plain != "héllowörld" {
		t.Errorf("Plain = %q", msg.Plain)
	}
	if msg.Events[0].Pos != 5 {
		t.Errorf("open Pos = %d, want 5", msg.Events[0].Pos)
	}
	if msg.Events[1].Pos != 10 {
		t.Errorf("close Pos = %d, want 10", msg.Events[1].Pos)
	}
	if msg.Len() != 10 {
		t.Errorf("Len = %d, want 10", msg.Len())
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"<color=red>", "color"},
		{"<color=#00000000>", "color"},
		{"<font size=12>", "font"},
		{"<b>", "b"},
		{"</color>", "color"},
		{"<>", ""},
	}
	for _, tt := range tests {
		if got := Keyword(tt.tag); got != tt.want {
			t.Errorf("Keyword(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

// countPlain counts runes outside bracket markers.
func countPlain(s string) int {
	n := 0
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			n++
		}
	}
	return n
}

func TestRender_PartialClosesOpenMarkers(t *testing.T) {
	msg := Tokenize("Hello <color=red>World</color>!")

	got := Render(msg, 8)
	want := "Hello <color=red>Wo</color>"
	if got != want {
		t.Errorf("Render(msg, 8) = %q, want %q", got, want)
	}
}

func TestRender_FullRevealRoundTrips(t *testing.T) {
	raw := "Hello <color=red>World</color>!"
	msg := Tokenize(raw)

	got := Render(msg, msg.Len())
	if got != raw {
		t.Errorf("Render(msg, %d) = %q, want %q", msg.Len(), got, raw)
	}
}

func TestRender_TrailingMarkerEmittedAtFullReveal(t *testing.T) {
	msg := Tokenize("done<color=green>")

	if got := Render(msg, 4); got != "done<color=green></color>" {
		t.Errorf("full reveal = %q", got)
	}
	// Still unrevealed one rune earlier.
	if got := Render(msg, 3); got != "don" {
		t.Errorf("Render(msg, 3) = %q, want 'don'", got)
	}
}

func TestRender_RevealCountMatchesPlainRunes(t *testing.T) {
	inputs := []string{
		"Hello <color=red>World</color>!",
		"<b>nested <i>markers</i> here</b>",
		"unbalanced <b>forever",
		"<i>overlap <b>badly</i> closed</b>",
		"no markers at all",
		"ünïcode <color=blue>tëxt</color>",
	}
	for _, raw := range inputs {
		msg := Tokenize(raw)
		for reveal := 0; reveal <= msg.Len(); reveal++ {
			out := Render(msg, reveal)
			if got := countPlain(out); got != reveal {
				t.Errorf("raw %q reveal %d: %d plain runes in %q", raw, reveal, got, out)
			}
		}
	}
}

func TestRender_BalancedAtEveryCut(t *testing.T) {
	msg := Tokenize("a<b>b<i>c</i>d</b>e")
	for reveal := 0; reveal <= msg.Len(); reveal++ {
		out := Render(msg, reveal)
		depth := 0
		for _, ev := range Tokenize(out).Events {
			if ev.Closing {
				depth--
			} else {
				depth++
			}
			if depth < 0 {
				t.Fatalf("reveal %d: close before open in %q", reveal, out)
			}
		}
		if depth != 0 {
			t.Errorf("reveal %d: %d markers left open in %q", reveal, depth, out)
		}
	}
}

func TestRender_StackOrderNotNameAware(t *testing.T) {
	// Overlapping markers close in reverse-open order regardless of name.
	msg := Tokenize("<b>one<i>two")
	got := Render(msg, msg.Len())
	if !strings.HasSuffix(got, "</i></b>") {
		t.Errorf("synthesized closings should be innermost-first, got %q", got)
	}
}

func TestRender_Pure(t *testing.T) {
	msg := Tokenize("Hello <color=red>World</color>!")
	a := Render(msg, 8)
	b := Render(msg, 8)
	if a != b {
		t.Errorf("Render not deterministic: %q vs %q", a, b)
	}
}

func TestRender_ClampsReveal(t *testing.T) {
	msg := Tokenize("hi")
	if got := Render(msg, -1); got != "" {
		t.Errorf("Render(msg, -1) = %q, want empty", got)
	}
	if got := Render(msg, 99); got != "hi" {
		t.Errorf("Render(msg, 99) = %q, want 'hi'", got)
	}
}
