// Package terminal renders typewriter frames to an ANSI terminal. It is the
// display-sink collaborator: marker tags are translated to styles here, not
// in the engine. No TUI framework - frames repaint in place.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/odvcencio/typeline/pkg/markup"
)

// Writer paints each frame over the previous one. It implements the
// engine's Sink interface.
type Writer struct {
	out       io.Writer
	mu        sync.Mutex
	lastLines int
}

// New creates a Writer painting to stdout.
func New() *Writer {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput creates a Writer with a custom output destination.
func NewWithOutput(out io.Writer) *Writer {
	// Detect color profile for adaptive colors; lipgloss consults this
	// through termenv internally.
	_ = termenv.ColorProfile()
	return &Writer{out: out}
}

// SetText repaints the display with a complete frame.
func (w *Writer) SetText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Rewind over whatever the previous frame painted.
	if w.lastLines > 0 {
		fmt.Fprintf(w.out, "\033[%dA", w.lastLines)
	}
	fmt.Fprint(w.out, "\r\033[J")

	rendered := Render(text)
	fmt.Fprint(w.out, rendered)
	w.lastLines = strings.Count(rendered, "\n")
}

// Finish moves past the painted area so subsequent output starts clean.
func (w *Writer) Finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out)
	w.lastLines = 0
}

// Render translates a frame's marker tags into ANSI styling. Tags it
// understands: b, i, u, s, and color=<value>. A color with a zero alpha
// channel renders its text as blanks of identical display width, which is
// how the engine's invisible caret phase keeps layout stable. Unknown tags
// style nothing but still vanish from the output.
func Render(frame string) string {
	msg := markup.Tokenize(frame)
	plain := []rune(msg.Plain)

	var out strings.Builder
	var stack []string
	next := 0
	segStart := 0

	flush := func(end int) {
		if end <= segStart {
			return
		}
		seg := string(plain[segStart:end])
		out.WriteString(styleSegment(seg, stack))
		segStart = end
	}

	for i := 0; i <= len(plain); i++ {
		for next < len(msg.Events) && msg.Events[next].Pos == i {
			flush(i)
			ev := msg.Events[next]
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
	flush(len(plain))
	return out.String()
}

// styleSegment applies the styles of every open tag to one run of text.
func styleSegment(seg string, stack []string) string {
	style := lipgloss.NewStyle()
	styled := false
	for _, tag := range stack {
		value := tagValue(tag)
		switch markup.Keyword(tag) {
		case "b":
			style = style.Bold(true)
			styled = true
		case "i":
			style = style.Italic(true)
			styled = true
		case "u":
			style = style.Underline(true)
			styled = true
		case "s":
			style = style.Strikethrough(true)
			styled = true
		case "color":
			if isTransparent(value) {
				return strings.Repeat(" ", runewidth.StringWidth(seg))
			}
			style = style.Foreground(lipgloss.Color(value))
			styled = true
		}
	}
	if !styled {
		return seg
	}
	return style.Render(seg)
}

// tagValue returns the text after '=' in a tag, "" when absent.
func tagValue(tag string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	if i := strings.IndexByte(body, '='); i >= 0 {
		return body[i+1:]
	}
	return ""
}

// isTransparent reports whether a hex color carries a zero alpha channel.
func isTransparent(value string) bool {
	return strings.HasPrefix(value, "#") && len(value) == 9 && strings.HasSuffix(value, "00")
}
