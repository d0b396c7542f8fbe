// Package slot decodes and encodes one character slot.
//
// A slot is a flat run of fields with no offset table: each field's position is the
// sum of the widths before it.  Decode reads strictly front to back; the only places
// the layout depends on the version are the ones tables.Variant describes.  The codec
// never logs; pass WithTrace to see where each field landed.
package slot

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"ersave/errs"
	"ersave/readers"
	"ersave/tables"
	"ersave/types"
	"ersave/writers"
)

const SlotSize = tables.SlotSize

type options struct {
	trace *Trace
}

// Option configures Decode.
type Option func(*options)

// WithTrace makes Decode record the byte range of every field into t.  When decoding
// fails t holds the fields that were read before the failure.
func WithTrace(t *Trace) Option {
	return func(o *options) {
		o.trace = t
	}
}

func hex(n int) string {
	return "0x" + strconv.FormatInt(int64(n), 16)
}

type decoder struct {
	r     *readers.Reader
	trace *Trace
}

func (d *decoder) field(name string, fn func(r *readers.Reader) error) error {
	start := d.r.Position()
	err := fn(d.r)
	if err == nil {
		err = d.r.Err()
	}
	if err != nil {
		return errs.WrapWithMetadata(errs.CodeOf(err), "decode "+name, map[string]string{
			"field":  name,
			"offset": hex(start),
		}, err)
	}
	d.trace.add(name, start, d.r.Position())
	return nil
}

// Decode decodes the slot held in the first slotSize bytes of buf.
//
// The result is only returned whole: on any error it is nil.
func Decode(buf []byte, slotSize int, opts ...Option) (*types.CharacterSlot, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.trace != nil {
		o.trace.Entries = o.trace.Entries[:0]
	}

	s := &types.CharacterSlot{}
	d := &decoder{r: readers.NewReader(buf), trace: o.trace}

	if err := d.field("version", func(r *readers.Reader) error { s.Version = r.U32(); return r.Err() }); err != nil {
		return nil, err
	}

	if !s.IsEmpty() {
		v, err := tables.Variant(s.Version)
		if err != nil {
			return nil, err
		}
		for _, st := range steps(s, v) {
			if err := d.field(st.name, st.decode); err != nil {
				return nil, err
			}
		}
	}

	remaining := slotSize - d.r.Position()
	if remaining < 0 {
		return nil, errs.WithMetadata(errs.CodeSlotOverrun, "fields overran the slot", map[string]string{
			"position":  hex(d.r.Position()),
			"slot_size": hex(slotSize),
			"version":   strconv.FormatUint(uint64(s.Version), 10),
		})
	}
	if err := d.field("tail", func(r *readers.Reader) error { s.Tail = r.Bytes(remaining); return r.Err() }); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes s back out as exactly slotSize bytes.
func Encode(s *types.CharacterSlot, slotSize int) ([]byte, error) {
	w := writers.NewWriter(slotSize)
	if err := encodeFields(w, s); err != nil {
		return nil, err
	}
	w.Bytes(s.Tail)
	if err := w.Err(); err != nil {
		return nil, overrun(err)
	}
	if w.Position() != slotSize {
		return nil, errs.WithMetadata(errs.CodeSlotOverrun, "encoded slot has the wrong length", map[string]string{
			"length":    hex(w.Position()),
			"slot_size": hex(slotSize),
		})
	}
	return w.Output(), nil
}

// encodeFields writes everything except the tail.
func encodeFields(w *writers.Writer, s *types.CharacterSlot) error {
	w.U32(s.Version)
	if s.IsEmpty() {
		return overrun(w.Err())
	}
	v, err := tables.Variant(s.Version)
	if err != nil {
		return err
	}
	if err := checkOptional(s, v); err != nil {
		return err
	}
	for _, st := range steps(s, v) {
		start := w.Position()
		if err := st.encode(w); err != nil {
			return errs.WrapWithMetadata(errs.CodeOf(overrun(err)), "encode "+st.name, map[string]string{
				"field":  st.name,
				"offset": hex(start),
			}, err)
		}
	}
	return nil
}

// overrun turns a writer running out of room into the slot-level error: the fields
// didn't add up to the slot size.
func overrun(err error) error {
	if err == nil {
		return nil
	}
	if errs.CodeOf(err) == errs.CodeBufferOverrun {
		return errs.Wrap(errs.CodeSlotOverrun, "fields overran the slot", err)
	}
	return err
}

// New builds a zero-valued slot of the given version with every collection at its
// declared size and a zero tail that brings it to exactly slotSize bytes.
func New(version uint32, slotSize int) (*types.CharacterSlot, error) {
	s := &types.CharacterSlot{Version: version}
	if !s.IsEmpty() {
		v, err := tables.Variant(version)
		if err != nil {
			return nil, err
		}
		s.GaitemTable = make(types.GaitemTable, v.GaitemCount)
		s.InventoryHeld = types.NewInventory(tables.HeldCommonCap, tables.HeldKeyCap)
		s.InventoryStorage = types.NewInventory(tables.StorageCommonCap, tables.StorageKeyCap)
		s.Gestures = make(types.Gestures, v.GestureCount)
		s.EventFlags = make([]byte, tables.EventFlagsSize)
		if v.HasTempSpawnPoint {
			s.TempSpawnPointEntityID = new(uint32)
		}
		if v.HasGameManExtraByte {
			s.GameMan0xcb3 = new(uint8)
		}
	}

	w := writers.NewWriter(slotSize)
	if err := encodeFields(w, s); err != nil {
		return nil, err
	}
	s.Tail = make([]byte, w.Remaining())
	return s, nil
}

// Digest is a content hash of an encoded slot, for telling whether it changed.
func Digest(b []byte) uint64 {
	return xxhash.Sum64(b)
}
