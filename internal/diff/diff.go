// Package diff computes the display-ready edit script between two text
// files: line pairing, intraline change spans, context windowing, and hunk
// partitioning. Rendering is left to the render package.
package diff

import "strings"

// SpanMark classifies an intraline span of a half-line.
type SpanMark int

const (
	MarkNone   SpanMark = iota // span is identical on both sides
	MarkAdd                    // span exists only in the new file
	MarkDelete                 // span exists only in the old file
	MarkChange                 // span was replaced in place
)

// Span is a run of text carrying a single mark. Marks are decoded once from
// the diff primitives and never re-matched against text downstream.
type Span struct {
	Mark SpanMark
	Text string
}

// Half is one side of an aligned row: a 1-based line number plus the line's
// text split into marked spans. A zero Half means the line does not exist on
// that side.
type Half struct {
	Num   int
	Spans []Span
}

// Absent reports whether the line does not exist on this side.
func (h Half) Absent() bool { return h.Num == 0 }

// Empty reports whether the half renders to nothing at all, marks included.
// An existing line whose entire content moved to the other side is empty,
// while an added blank line (one empty marked span) is not.
func (h Half) Empty() bool { return len(h.Spans) == 0 }

// Text returns the half's plain text with marks ignored.
func (h Half) Text() string {
	var sb strings.Builder
	for _, s := range h.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Row is one aligned pair of half-lines in the two-column display.
type Row struct {
	Old     Half
	New     Half
	Changed bool
}

type event struct {
	row Row
	brk bool
}

// Stream is a single-pass producer of aligned rows separated by context
// breaks. It is not restartable.
type Stream struct {
	events []event
	pos    int
}

// Next returns the next stream element. When brk is true the element is a
// context break and row is the zero Row. ok is false once the stream is
// exhausted.
func (s *Stream) Next() (row Row, brk, ok bool) {
	if s.pos >= len(s.events) {
		return Row{}, false, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev.row, ev.brk, true
}
