package writers

import (
	"bytes"
	"errors"
	"testing"

	"ersave/errs"
)

func Test_LittleEndian(t *testing.T) {
	w := NewWriter(19)
	w.U8(0x01)
	w.U16(0x0102)
	w.U32(0x01020304)
	w.U64(0x0102030405060708)
	w.I32(-1)
	if w.Err() != nil {
		t.Fatal(w.Err())
	}
	want := []byte{
		0x01,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	if !bytes.Equal(w.Output(), want) {
		t.Errorf("got % x", w.Output())
	}
}

func Test_Overrun(t *testing.T) {
	w := NewWriter(6)
	w.U32(1)
	w.U32(2)
	if !errors.Is(w.Err(), errs.ErrBufferOverrun) {
		t.Fatalf("got %v", w.Err())
	}
	if w.Position() != 4 {
		t.Errorf("failed write advanced to %v", w.Position())
	}
	w.U8(3)
	if w.Position() != 4 {
		t.Error("write after failure advanced")
	}
}
