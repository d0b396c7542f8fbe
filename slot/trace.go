package slot

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// TraceEntry is where one field sat in the slot: bytes [Start, End).
type TraceEntry struct {
	Field string
	Start int
	End   int
}

func (e TraceEntry) Width() int {
	return e.End - e.Start
}

// Trace is the field-by-field layout of one decode, in file order.
type Trace struct {
	Entries []TraceEntry
}

func (t *Trace) add(field string, start, end int) {
	if t == nil {
		return
	}
	t.Entries = append(t.Entries, TraceEntry{Field: field, Start: start, End: end})
}

// Find returns the entry for field.
func (t *Trace) Find(field string) (TraceEntry, bool) {
	for _, e := range t.Entries {
		if e.Field == field {
			return e, true
		}
	}
	return TraceEntry{}, false
}

// At returns the entry containing byte offset off.
func (t *Trace) At(off int) (TraceEntry, bool) {
	for _, e := range t.Entries {
		if off >= e.Start && off < e.End {
			return e, true
		}
	}
	return TraceEntry{}, false
}

// End is the offset just past the last recorded field.
func (t *Trace) End() int {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].End
}

// Render prints one line per field.
func (t *Trace) Render(w io.Writer) error {
	for _, e := range t.Entries {
		_, err := fmt.Fprintf(w, "%-30s 0x%06x-0x%06x %12s bytes %10s\n",
			e.Field, e.Start, e.End, humanize.Comma(int64(e.Width())), humanize.IBytes(uint64(e.Width())))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d fields, %s\n", len(t.Entries), humanize.IBytes(uint64(t.End())))
	return err
}
