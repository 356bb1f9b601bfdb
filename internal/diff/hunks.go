package diff

// Hunk is a maximal contiguous block of aligned rows bounded by context
// breaks. It is never empty.
type Hunk struct {
	Rows []Row
}

// OldRange returns the first old-side line number in the hunk and the count
// of old-side lines it contains. start is 0 when the side has none.
func (h *Hunk) OldRange() (start, count int) {
	for _, r := range h.Rows {
		if r.Old.Num > 0 {
			if start == 0 {
				start = r.Old.Num
			}
			count++
		}
	}
	return start, count
}

// NewRange is OldRange for the new side.
func (h *Hunk) NewRange() (start, count int) {
	for _, r := range h.Rows {
		if r.New.Num > 0 {
			if start == 0 {
				start = r.New.Num
			}
			count++
		}
	}
	return start, count
}

// Hunks partitions a row stream into hunks. Like its source it is a
// single-pass, non-restartable producer.
type Hunks struct {
	src *Stream
}

// Partition wraps a row stream. The stream must not be read elsewhere
// afterwards.
func Partition(s *Stream) *Hunks {
	return &Hunks{src: s}
}

// Next returns the next hunk, splitting at context breaks. Breaks are
// consumed and never included. A trailing hunk is returned even when the
// stream ends without a break. ok is false once no hunks remain; an empty
// stream yields none at all.
func (hs *Hunks) Next() (*Hunk, bool) {
	var rows []Row
	for {
		row, brk, ok := hs.src.Next()
		if !ok {
			break
		}
		if brk {
			if len(rows) > 0 {
				return &Hunk{Rows: rows}, true
			}
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		return &Hunk{Rows: rows}, true
	}
	return nil, false
}
