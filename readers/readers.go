package readers

// Sequential little-endian reading over an in-memory slot.
//
// There is deliberately no Seek.  The slot format has no internal offset table, so the
// only way to know where field N starts is to have read fields 0..N-1 correctly.  A read
// that fails at field K therefore proves that something before K was mis-sized.

import (
	"encoding/binary"
	"math"
	"strconv"

	"ersave/errs"
)

// Reader is the read side of the cursor.
//
// Errors are sticky: after the first failed read every further read returns a zero
// value and does not advance, and Err reports the original failure.  Record decoders
// read all their fields and return Err once at the end.
type Reader struct {
	buf []byte
	pos int
	err error
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position is the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Err returns the first read failure, if any.
func (r *Reader) Err() error {
	return r.err
}

// Fail records err as the reader's error unless one is already recorded.  Record
// decoders use it for structural problems (e.g. a negative declared size) so they
// surface the same way as a short buffer.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// take returns the next n bytes without copying, or nil after recording a failure.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.pos {
		r.err = errs.WithMetadata(errs.CodeUnexpectedEndOfData, "unexpected end of data", map[string]string{
			"offset": "0x" + strconv.FormatInt(int64(r.pos), 16),
			"want":   strconv.Itoa(n),
			"have":   strconv.Itoa(len(r.buf) - r.pos),
		})
		return nil
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) I64() int64 {
	return int64(r.U64())
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// Bytes returns a copy of the next n bytes.
// The copy matters: decoded slots must not alias the caller's buffer.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Fill copies the next len(dst) bytes into dst (for fixed-size array fields).
func (r *Reader) Fill(dst []byte) {
	b := r.take(len(dst))
	if b == nil {
		return
	}
	copy(dst, b)
}

// U32s reads len(dst) consecutive u32 values.
func (r *Reader) U32s(dst []uint32) {
	for i := range dst {
		dst[i] = r.U32()
	}
}
