package diff

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Align produces the aligned row stream for oldSrc and newSrc with up to
// context unchanged lines kept around each change. Elided runs of unchanged
// lines surface as context breaks. The line-level alignment comes from
// go-udiff; character-level change spans within paired lines come from
// diffmatchpatch.
func Align(oldSrc, newSrc string, context int) (*Stream, error) {
	if context < 0 {
		return nil, fmt.Errorf("context must not be negative, got %d", context)
	}

	rows, err := alignRows(oldSrc, newSrc)
	if err != nil {
		return nil, err
	}

	return &Stream{events: window(rows, context)}, nil
}

// alignRows computes the full, un-windowed alignment.
func alignRows(oldSrc, newSrc string) ([]Row, error) {
	oldLines := splitLines(oldSrc)

	edits := udiff.Strings(oldSrc, newSrc)
	if len(edits) == 0 {
		rows := make([]Row, len(oldLines))
		for i, l := range oldLines {
			t := strings.TrimSuffix(l, "\n")
			rows[i] = Row{
				Old: Half{Num: i + 1, Spans: []Span{{Text: t}}},
				New: Half{Num: i + 1, Spans: []Span{{Text: t}}},
			}
		}
		return rows, nil
	}

	// A context wider than both files collapses the diff into a single hunk
	// spanning every line, which is exactly the full alignment.
	full := len(oldLines) + len(splitLines(newSrc))
	ud, err := udiff.ToUnifiedDiff("old", "new", oldSrc, edits, full)
	if err != nil {
		return nil, fmt.Errorf("compute diff: %w", err)
	}

	var rows []Row
	for _, h := range ud.Hunks {
		rows = append(rows, hunkRows(h)...)
	}
	return rows, nil
}

// hunkRows converts one udiff hunk into aligned rows, pairing each run of
// deleted lines with the run of inserted lines that follows it.
func hunkRows(h *udiff.Hunk) []Row {
	var rows []Row
	oldNum := h.FromLine
	newNum := h.ToLine

	i := 0
	for i < len(h.Lines) {
		switch h.Lines[i].Kind {
		case udiff.Equal:
			t := strings.TrimSuffix(h.Lines[i].Content, "\n")
			rows = append(rows, Row{
				Old: Half{Num: oldNum, Spans: []Span{{Text: t}}},
				New: Half{Num: newNum, Spans: []Span{{Text: t}}},
			})
			oldNum++
			newNum++
			i++

		case udiff.Delete:
			var deletes, inserts []string
			for i < len(h.Lines) && h.Lines[i].Kind == udiff.Delete {
				deletes = append(deletes, strings.TrimSuffix(h.Lines[i].Content, "\n"))
				i++
			}
			for i < len(h.Lines) && h.Lines[i].Kind == udiff.Insert {
				inserts = append(inserts, strings.TrimSuffix(h.Lines[i].Content, "\n"))
				i++
			}
			for j := 0; j < max(len(deletes), len(inserts)); j++ {
				row := Row{Changed: true}
				switch {
				case j < len(deletes) && j < len(inserts):
					row.Old, row.New = pairSpans(deletes[j], inserts[j])
					row.Old.Num = oldNum
					row.New.Num = newNum
					oldNum++
					newNum++
				case j < len(deletes):
					row.Old = Half{Num: oldNum, Spans: []Span{{Mark: MarkDelete, Text: deletes[j]}}}
					oldNum++
				default:
					row.New = Half{Num: newNum, Spans: []Span{{Mark: MarkAdd, Text: inserts[j]}}}
					newNum++
				}
				rows = append(rows, row)
			}

		case udiff.Insert:
			rows = append(rows, Row{
				New:     Half{Num: newNum, Spans: []Span{{Mark: MarkAdd, Text: strings.TrimSuffix(h.Lines[i].Content, "\n")}}},
				Changed: true,
			})
			newNum++
			i++
		}
	}
	return rows
}

// pairSpans computes the intraline spans for a changed line pair. A deletion
// immediately followed by an insertion is an in-place change and is marked
// as such on both sides; lone deletions and insertions mark one side only.
func pairSpans(oldText, newText string) (old, new Half) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCleanupMerge(diffs)

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			old.Spans = append(old.Spans, Span{Text: d.Text})
			new.Spans = append(new.Spans, Span{Text: d.Text})
		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				old.Spans = append(old.Spans, Span{Mark: MarkChange, Text: d.Text})
				new.Spans = append(new.Spans, Span{Mark: MarkChange, Text: diffs[i+1].Text})
				i++
			} else {
				old.Spans = append(old.Spans, Span{Mark: MarkDelete, Text: d.Text})
			}
		case diffmatchpatch.DiffInsert:
			new.Spans = append(new.Spans, Span{Mark: MarkAdd, Text: d.Text})
		}
	}
	return old, new
}

// window elides unchanged runs beyond context lines around each change,
// inserting one context break per elided run. With no changes at all, the
// head and tail of the file each keep context lines.
func window(rows []Row, context int) []event {
	changed := make([]int, 0, len(rows))
	for i, r := range rows {
		if r.Changed {
			changed = append(changed, i)
		}
	}

	keep := make([]bool, len(rows))
	if len(changed) == 0 {
		if len(rows) <= 2*context {
			for i := range keep {
				keep[i] = true
			}
		} else {
			for i := 0; i < context; i++ {
				keep[i] = true
				keep[len(rows)-1-i] = true
			}
		}
	} else {
		for _, c := range changed {
			for i := max(0, c-context); i <= min(len(rows)-1, c+context); i++ {
				keep[i] = true
			}
		}
	}

	var events []event
	elided := false
	for i, r := range rows {
		if !keep[i] {
			elided = true
			continue
		}
		if elided {
			events = append(events, event{brk: true})
			elided = false
		}
		events = append(events, event{row: r})
	}
	if elided {
		events = append(events, event{brk: true})
	}
	return events
}

// splitLines splits src into lines, each retaining its newline. The final
// line may lack one.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.SplitAfter(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
