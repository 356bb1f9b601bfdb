package render

import (
	"strings"
	"unicode"

	"github.com/sst/ydiff/internal/diff"
)

// Chunk is one segment of a half-line: either visible text or a color
// control that consumes no display width.
type Chunk struct {
	Ctrl bool
	Text string
}

// chunkText flattens chunks back into a string.
func chunkText(chunks []Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// expandTabs substitutes tabSize spaces for every tab in the half's spans.
// Tabs are expanded before any other processing so that marked whitespace
// spans stay whitespace and wrapping sees final widths.
func expandTabs(h diff.Half, tabSize int) diff.Half {
	if tabSize < 0 {
		tabSize = 0
	}
	spaces := strings.Repeat(" ", tabSize)
	out := diff.Half{Num: h.Num, Spans: make([]diff.Span, len(h.Spans))}
	for i, s := range h.Spans {
		out.Spans[i] = diff.Span{Mark: s.Mark, Text: strings.ReplaceAll(s.Text, "\t", spaces)}
	}
	return out
}

// highlight converts a half's spans into colored chunks. Marked spans become
// a foreground activation, the text, and a reset. When whitespaceBg is set,
// a marked span consisting entirely of whitespace is colored with the mark's
// background role instead, flagging trailing-space and tab-vs-space
// differences distinctly from content differences.
func highlight(h diff.Half, p Palette, whitespaceBg bool) []Chunk {
	var chunks []Chunk
	for _, s := range h.Spans {
		if s.Mark == diff.MarkNone {
			chunks = append(chunks, Chunk{Text: s.Text})
			continue
		}
		code := p.foreground(s.Mark)
		if whitespaceBg && isWhitespace(s.Text) {
			code = p.background(s.Mark)
		}
		chunks = append(chunks,
			Chunk{Ctrl: true, Text: code},
			Chunk{Text: s.Text},
			Chunk{Ctrl: true, Text: p.Reset},
		)
	}
	return chunks
}

// isWhitespace reports whether s is non-empty and all whitespace.
func isWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
