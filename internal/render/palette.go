// Package render lays out an aligned diff as two fixed-width, colored
// columns: intraline highlighting, sign columns, escape-aware line wrapping,
// and hunk/file headers.
package render

import (
	"github.com/sst/ydiff/internal/diff"
)

// Palette is the closed table of escape codes the renderer emits. Injecting
// it keeps escape sequences out of tests and allows a monochrome run to use
// empty codes throughout.
type Palette struct {
	Add    string // foreground for added text
	Delete string // foreground for deleted text
	Change string // foreground for in-place changed text

	AddBg    string // background variants, used for whitespace-only spans
	DeleteBg string
	ChangeBg string

	FileHeader string
	HunkHeader string
	LineNumber string

	Reset string
}

// DefaultPalette mirrors the classic diff coloring: green additions, red
// deletions, magenta changes, blue file headers, cyan hunk headers.
func DefaultPalette() Palette {
	return Palette{
		Add:        "\x1b[32m",
		Delete:     "\x1b[31m",
		Change:     "\x1b[35m",
		AddBg:      "\x1b[42m",
		DeleteBg:   "\x1b[41m",
		ChangeBg:   "\x1b[45m",
		FileHeader: "\x1b[34m",
		HunkHeader: "\x1b[36m",
		LineNumber: "\x1b[90m",
		Reset:      "\x1b[0m",
	}
}

// MonochromePalette renders no escape codes at all.
func MonochromePalette() Palette {
	return Palette{}
}

// foreground returns the activation code for a span mark.
func (p Palette) foreground(m diff.SpanMark) string {
	switch m {
	case diff.MarkAdd:
		return p.Add
	case diff.MarkDelete:
		return p.Delete
	case diff.MarkChange:
		return p.Change
	}
	return ""
}

// background returns the background activation code for a span mark.
func (p Palette) background(m diff.SpanMark) string {
	switch m {
	case diff.MarkAdd:
		return p.AddBg
	case diff.MarkDelete:
		return p.DeleteBg
	case diff.MarkChange:
		return p.ChangeBg
	}
	return ""
}
