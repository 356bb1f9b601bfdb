package render

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sst/ydiff/internal/diff"
)

// Config configures a Renderer. Width is the total terminal width; each
// half-column gets width/2 - 1 visible characters, leaving one column for
// the joining space.
type Config struct {
	Context     int
	Width       int
	TabSize     int
	Signs       bool
	Background  bool
	LineNumbers bool
	Palette     Palette
}

// Renderer lays out a whole diff as finished two-column text. It is a pure
// single-pass transducer over the hunk stream; it never holds more than one
// hunk.
type Renderer struct {
	cfg       Config
	halfWidth int
}

// New validates cfg and returns a Renderer. It fails fast on a width too
// small to yield a positive half-column, or on negative context or tab
// size; no partial output is ever produced from an invalid configuration.
func New(cfg Config) (*Renderer, error) {
	halfWidth := cfg.Width/2 - 1
	if halfWidth < 1 {
		return nil, fmt.Errorf("width %d leaves no room for half columns", cfg.Width)
	}
	if cfg.Context < 0 {
		return nil, fmt.Errorf("context must not be negative, got %d", cfg.Context)
	}
	if cfg.TabSize < 0 {
		return nil, fmt.Errorf("tab size must not be negative, got %d", cfg.TabSize)
	}
	return &Renderer{cfg: cfg, halfWidth: halfWidth}, nil
}

// Render writes the complete two-column diff of oldSrc and newSrc to w.
func (r *Renderer) Render(w io.Writer, oldPath, newPath, oldSrc, newSrc string) error {
	gutter := 0
	if r.cfg.LineNumbers {
		gutter = gutterWidth(oldSrc, newSrc)
		if r.halfWidth-gutter < 1 {
			return fmt.Errorf("width %d leaves no room for line numbers", r.cfg.Width)
		}
	}

	p := r.cfg.Palette
	oldHeader := colored("--- "+oldPath, p.FileHeader, p)
	newHeader := colored("+++ "+newPath, p.FileHeader, p)
	if err := r.writeRow(w, wrapHalf(oldHeader, r.halfWidth, p), wrapHalf(newHeader, r.halfWidth, p)); err != nil {
		return err
	}

	stream, err := diff.Align(oldSrc, newSrc, r.cfg.Context)
	if err != nil {
		return err
	}

	hunks := diff.Partition(stream)
	count := 0
	for {
		h, ok := hunks.Next()
		if !ok {
			break
		}
		if err := r.renderHunk(w, h, gutter); err != nil {
			return err
		}
		count++
	}
	slog.Debug("rendered diff", "old", oldPath, "new", newPath, "hunks", count)
	return nil
}

func (r *Renderer) renderHunk(w io.Writer, h *diff.Hunk, gutter int) error {
	p := r.cfg.Palette
	oldStart, oldCount := h.OldRange()
	newStart, newCount := h.NewRange()
	oldHeader := colored(fmt.Sprintf("@@ -%d,%d @@", oldStart, oldCount), p.HunkHeader, p)
	newHeader := colored(fmt.Sprintf("@@ +%d,%d @@", newStart, newCount), p.HunkHeader, p)
	if err := r.writeRow(w, wrapHalf(oldHeader, r.halfWidth, p), wrapHalf(newHeader, r.halfWidth, p)); err != nil {
		return err
	}

	for _, row := range h.Rows {
		if err := r.renderRow(w, row, gutter); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRow(w io.Writer, row diff.Row, gutter int) error {
	p := r.cfg.Palette
	old := expandTabs(row.Old, r.cfg.TabSize)
	new := expandTabs(row.New, r.cfg.TabSize)

	// Whitespace-only spans flip to background highlighting only when both
	// halves survive substitution; a pure addition or deletion keeps its
	// foreground color even when it is all whitespace.
	whitespaceBg := r.cfg.Background && row.Changed && !old.Empty() && !new.Empty()

	oldChunks := highlight(old, p, whitespaceBg)
	newChunks := highlight(new, p, whitespaceBg)

	if r.cfg.Signs {
		oldSign, newSign := signs(old, new, row.Changed, p)
		oldChunks = append(oldSign, oldChunks...)
		newChunks = append(newSign, newChunks...)
	}

	oldLines := wrapHalf(oldChunks, r.halfWidth-gutter, p)
	newLines := wrapHalf(newChunks, r.halfWidth-gutter, p)
	if gutter > 0 {
		oldLines = prependGutter(oldLines, old.Num, gutter, p)
		newLines = prependGutter(newLines, new.Num, gutter, p)
	}
	return r.writeRow(w, oldLines, newLines)
}

// writeRow interleaves the two half-line layouts line by line, padding the
// shorter side with blank half-width lines and joining halves with a single
// space.
func (r *Renderer) writeRow(w io.Writer, oldLines, newLines []string) error {
	empty := strings.Repeat(" ", r.halfWidth)
	for i := 0; i < max(len(oldLines), len(newLines)); i++ {
		oldHalf, newHalf := empty, empty
		if i < len(oldLines) {
			oldHalf = oldLines[i]
		}
		if i < len(newLines) {
			newHalf = newLines[i]
		}
		if _, err := io.WriteString(w, oldHalf+" "+newHalf+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// prependGutter adds a right-aligned line number column to the first
// physical line and a blank gutter to continuations and absent sides.
func prependGutter(lines []string, num, gutter int, p Palette) []string {
	blank := strings.Repeat(" ", gutter)
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == 0 && num > 0 {
			out[i] = p.LineNumber + fmt.Sprintf("%*d ", gutter-1, num) + p.Reset + l
		} else {
			out[i] = blank + l
		}
	}
	return out
}

// gutterWidth returns the digits needed for the larger file's last line
// number, plus one separating space.
func gutterWidth(oldSrc, newSrc string) int {
	return len(strconv.Itoa(max(countLines(oldSrc), countLines(newSrc), 1))) + 1
}

func countLines(src string) int {
	if src == "" {
		return 0
	}
	n := strings.Count(src, "\n")
	if !strings.HasSuffix(src, "\n") {
		n++
	}
	return n
}
