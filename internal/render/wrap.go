package render

import (
	"strings"
	"unicode/utf8"
)

// wrapHalf lays out one half-line into physical lines of at most width
// visible characters each. Control chunks consume no width and are never
// split. When visible text overflows, the current line is closed with a
// forced reset and the continuation line reopens with the color that was
// active at the wrap point, so coloring continues visually across the wrap.
// The final line is right-padded with spaces to exactly width.
func wrapHalf(chunks []Chunk, width int, p Palette) []string {
	visible := 0
	for _, c := range chunks {
		if !c.Ctrl {
			visible += utf8.RuneCountInString(c.Text)
		}
	}

	var lines []string
	if visible <= width {
		lines = []string{chunkText(chunks)}
	} else {
		lines = []string{""}
		visible = 0
		active := p.Reset

		for _, c := range chunks {
			if c.Ctrl {
				lines[len(lines)-1] += c.Text
				active = c.Text
				continue
			}
			runes := []rune(c.Text)
			if visible+len(runes) <= width {
				lines[len(lines)-1] += c.Text
				visible += len(runes)
				continue
			}
			first := width - visible
			lines[len(lines)-1] += string(runes[:first]) + p.Reset
			for off := first; off < len(runes); off += width {
				end := min(off+width, len(runes))
				lines = append(lines, active+string(runes[off:end])+p.Reset)
				visible = end - off
			}
		}
	}

	lines[len(lines)-1] += strings.Repeat(" ", width-visible)
	return lines
}
