package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sst/ydiff/internal/diff"
)

func TestSigns(t *testing.T) {
	t.Parallel()

	line := diff.Half{Num: 1, Spans: []diff.Span{{Text: "x"}}}
	blankLine := diff.Half{Num: 1, Spans: []diff.Span{{Mark: diff.MarkAdd, Text: ""}}}

	tests := []struct {
		name     string
		old, new diff.Half
		changed  bool
		oldSign  string
		newSign  string
	}{
		{
			name: "unchanged row is blank",
			old:  line, new: line,
			oldSign: " ", newSign: " ",
		},
		{
			name: "pure addition",
			old:  diff.Half{}, new: line, changed: true,
			oldSign: " ", newSign: "<A>+<R>",
		},
		{
			name: "pure deletion",
			old:  line, new: diff.Half{}, changed: true,
			oldSign: "<D>-<R>", newSign: " ",
		},
		{
			name: "in-place change",
			old:  line, new: line, changed: true,
			oldSign: "<C>!<R>", newSign: "<C>!<R>",
		},
		{
			name: "added empty line still counts as addition",
			old:  diff.Half{}, new: blankLine, changed: true,
			oldSign: " ", newSign: "<A>+<R>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			oldSign, newSign := signs(tt.old, tt.new, tt.changed, testPalette)
			assert.Equal(t, tt.oldSign, chunkText(oldSign))
			assert.Equal(t, tt.newSign, chunkText(newSign))
		})
	}
}
