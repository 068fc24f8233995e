// Package markup tokenizes inline bracket markers out of raw text and
// rebuilds well-formed partial renders for typewriter animation. Markers are
// tracked by boundary and balance only; their meaning (colors, fonts) is the
// display surface's business.
package markup

import "strings"

// Event records one marker boundary. Pos is the number of plain runes already
// emitted when the marker occurred, so 0 <= Pos <= rune length of Plain.
type Event struct {
	Pos     int
	Text    string
	Closing bool
}

// Message is the tokenized form of one raw input: plain text plus the marker
// events that were interleaved with it, in encounter order.
type Message struct {
	Raw    string
	Plain  string
	Events []Event
}

// Len returns the number of plain runes, i.e. the total reveal count.
func (m *Message) Len() int {
	return len([]rune(m.Plain))
}

// Tokenize splits raw into plain text and positioned marker events. Every
// substring bounded by '<' and the next '>' is treated as a marker whether or
// not it is a recognized keyword; malformed or unbalanced markers are kept
// as-is. A '<' with no closing '>' is plain text.
func Tokenize(raw string) *Message {
	msg := &Message{Raw: raw}
	if raw == "" {
		return msg
	}

	var plain strings.Builder
	runeCount := 0
	rest := raw
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			break
		}
		end += open

		before := rest[:open]
		plain.WriteString(before)
		runeCount += len([]rune(before))

		tag := rest[open : end+1]
		msg.Events = append(msg.Events, Event{
			Pos:     runeCount,
			Text:    tag,
			Closing: strings.HasPrefix(tag, "</"),
		})
		rest = rest[end+1:]
	}
	plain.WriteString(rest)

	msg.Plain = plain.String()
	return msg
}

// Keyword returns the base keyword of a marker: the bracketed content with
// angle brackets and any leading slash stripped, truncated at the first space
// or '=' so attributes are discarded. "<color=red>" yields "color".
func Keyword(tag string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	body = strings.TrimPrefix(body, "/")
	if i := strings.IndexAny(body, " ="); i >= 0 {
		body = body[:i]
	}
	return body
}
