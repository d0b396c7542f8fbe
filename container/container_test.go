package container

import (
	"bytes"
	"crypto/md5"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ersave/errs"
	"ersave/tables"
)

func pcFile() []byte {
	b := make([]byte, pcHeaderSize+tables.SlotCount*(checksumSize+tables.SlotSize)+0x1000)
	copy(b, pcMagic)
	for i := 0; i < tables.SlotCount; i++ {
		start := pcHeaderSize + i*(checksumSize+tables.SlotSize)
		data := b[start+checksumSize : start+checksumSize+tables.SlotSize]
		data[0] = byte(i)
		sum := md5.Sum(data)
		copy(b[start:], sum[:])
	}
	b[len(b)-1] = 0xEE
	return b
}

func Test_PC(t *testing.T) {
	c, err := Parse(pcFile())
	if err != nil {
		t.Fatal(err)
	}
	if c.Format != FormatPC {
		t.Fatalf("format %v", c.Format)
	}
	if err := c.VerifyAll(); err != nil {
		t.Fatal(err)
	}

	s, err := c.SlotBytes(3)
	if err != nil || len(s) != tables.SlotSize || s[0] != 3 {
		t.Fatalf("slot 3: %v bytes, first %v, %v", len(s), s[0], err)
	}
	s[100] = 1
	if err := c.VerifyChecksum(3); err != nil {
		t.Error("SlotBytes returned the container's own memory")
	}
	if err := c.PutSlotBytes(3, s); err != nil {
		t.Fatal(err)
	}
	if err := c.VerifyChecksum(3); err != nil {
		t.Errorf("checksum not updated: %v", err)
	}

	out := c.Bytes()
	if out[len(out)-1] != 0xEE || !bytes.HasPrefix(out, []byte(pcMagic)) {
		t.Error("data outside the slots changed")
	}
}

func Test_ChecksumMismatch(t *testing.T) {
	b := pcFile()
	b[pcHeaderSize+checksumSize+10] ^= 0xFF
	c, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.VerifyChecksum(0); !errors.Is(err, errs.ErrChecksumMismatch) {
		t.Errorf("got %v", err)
	}
	if err := c.VerifyAll(); !errors.Is(err, errs.ErrChecksumMismatch) {
		t.Errorf("VerifyAll: got %v", err)
	}
	if err := c.VerifyChecksum(1); err != nil {
		t.Errorf("slot 1: %v", err)
	}
}

func Test_PS(t *testing.T) {
	b := make([]byte, psHeaderSize+tables.SlotCount*tables.SlotSize)
	b[psHeaderSize+2*tables.SlotSize] = 0x42
	c, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if c.Format != FormatPS {
		t.Fatalf("format %v", c.Format)
	}
	s, _ := c.SlotBytes(2)
	if s[0] != 0x42 {
		t.Error("slot 2 in the wrong place")
	}
	if err := c.VerifyAll(); err != nil {
		t.Errorf("PS saves have no checksums to fail: %v", err)
	}
}

func Test_Bad(t *testing.T) {
	if _, err := Parse(append([]byte(pcMagic), make([]byte, 100)...)); !errors.Is(err, errs.ErrBadContainer) {
		t.Errorf("short file: got %v", err)
	}
	c, err := Parse(pcFile())
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, tables.SlotCount} {
		if _, err := c.SlotBytes(i); !errors.Is(err, errs.ErrBadContainer) {
			t.Errorf("slot %v: got %v", i, err)
		}
	}
	if err := c.PutSlotBytes(0, make([]byte, 10)); !errors.Is(err, errs.ErrSlotOverrun) {
		t.Errorf("short slot: got %v", err)
	}
}

func Test_SaveBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ER0000.sl2")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Parse(pcFile())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Save(path, true); err != nil {
		t.Fatal(err)
	}
	old, err := os.ReadFile(filepath.Join(dir, "ER0000.old"))
	if err != nil || string(old) != "previous" {
		t.Errorf("backup: %q, %v", old, err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(loaded.Bytes(), c.Bytes()) {
		t.Error("saved file differs")
	}
}
