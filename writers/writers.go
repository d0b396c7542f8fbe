package writers

// Functions for writing a slot back out.
// Records know how to write themselves; this is just the cursor they write through.

import (
	"encoding/binary"
	"math"
	"strconv"

	"ersave/errs"
)

// Writer is the write side of the cursor: a fixed-capacity target filled front to back.
// Like readers.Reader its error is sticky.
type Writer struct {
	buf []byte
	pos int
	err error
}

// NewWriter returns a writer that accepts at most capacity bytes.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, capacity)}
}

func (w *Writer) Position() int {
	return w.pos
}

func (w *Writer) Remaining() int {
	return len(w.buf) - w.pos
}

func (w *Writer) Err() error {
	return w.err
}

// Output returns the bytes written so far.
func (w *Writer) Output() []byte {
	return w.buf[:w.pos]
}

func (w *Writer) put(n int) []byte {
	if w.err != nil {
		return nil
	}
	if n > len(w.buf)-w.pos {
		w.err = errs.WithMetadata(errs.CodeBufferOverrun, "buffer overrun", map[string]string{
			"offset":   "0x" + strconv.FormatInt(int64(w.pos), 16),
			"want":     strconv.Itoa(n),
			"capacity": strconv.Itoa(len(w.buf)),
		})
		return nil
	}
	out := w.buf[w.pos : w.pos+n]
	w.pos += n
	return out
}

func (w *Writer) U8(v uint8) {
	if b := w.put(1); b != nil {
		b[0] = v
	}
}

func (w *Writer) U16(v uint16) {
	if b := w.put(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

func (w *Writer) U32(v uint32) {
	if b := w.put(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

func (w *Writer) U64(v uint64) {
	if b := w.put(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) I64(v int64) {
	w.U64(uint64(v))
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

func (w *Writer) Bytes(v []byte) {
	if b := w.put(len(v)); b != nil {
		copy(b, v)
	}
}

func (w *Writer) U32s(v []uint32) {
	for _, x := range v {
		w.U32(x)
	}
}
