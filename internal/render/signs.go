package render

import "github.com/sst/ydiff/internal/diff"

// signs returns the one-character sign chunks for a displayed row pair:
// blank for unchanged rows, a colored + for pure additions, a colored - for
// pure deletions, and a colored ! on both sides for in-place changes.
func signs(old, new diff.Half, changed bool, p Palette) (oldSign, newSign []Chunk) {
	blank := []Chunk{{Text: " "}}
	switch {
	case !changed:
		return blank, blank
	case old.Empty():
		return blank, colored("+", p.Add, p)
	case new.Empty():
		return colored("-", p.Delete, p), blank
	default:
		return colored("!", p.Change, p), colored("!", p.Change, p)
	}
}

func colored(text, code string, p Palette) []Chunk {
	return []Chunk{
		{Ctrl: true, Text: code},
		{Text: text},
		{Ctrl: true, Text: p.Reset},
	}
}
