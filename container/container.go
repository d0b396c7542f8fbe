// Package container finds character slots inside a save file and puts them back.
//
// It knows where slots are and how they are checksummed, and nothing about what is in
// them.  Everything outside the slots (the file header, the profile data after the
// last slot) is carried through untouched.
package container

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"ersave/errs"
	"ersave/tables"
)

type Format int

const (
	// FormatPC is a Steam .sl2: a BND4 archive with an MD5 in front of every slot.
	FormatPC Format = iota
	// FormatPS is a decrypted PlayStation save: a short header and bare slots.
	FormatPS
)

func (f Format) String() string {
	if f == FormatPC {
		return "PC"
	}
	return "PlayStation"
}

const (
	pcMagic      = "BND4"
	pcHeaderSize = 0x300
	psHeaderSize = 0x70
	checksumSize = md5.Size
)

// Container is a whole save file held in memory.
type Container struct {
	Format Format
	data   []byte
}

func badIndex(i int) error {
	return errs.WithMetadata(errs.CodeBadContainer, "no such slot", map[string]string{"slot": strconv.Itoa(i)})
}

// Parse takes ownership of b.
func Parse(b []byte) (*Container, error) {
	c := &Container{Format: FormatPS, data: b}
	if bytes.HasPrefix(b, []byte(pcMagic)) {
		c.Format = FormatPC
	}
	if need := c.slotStart(tables.SlotCount); len(b) < need {
		return nil, errs.WithMetadata(errs.CodeBadContainer, "file too short for "+c.Format.String()+" save", map[string]string{
			"size": strconv.Itoa(len(b)),
			"need": strconv.Itoa(need),
		})
	}
	return c, nil
}

func Load(path string) (*Container, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, errs.WrapWithMetadata(errs.CodeOf(err), "load save", map[string]string{"path": path}, err)
	}
	return c, nil
}

func (c *Container) SlotCount() int {
	return tables.SlotCount
}

// slotStart is where slot i's checksum (PC) or data (PS) begins.  For i == SlotCount it
// is the end of the last slot.
func (c *Container) slotStart(i int) int {
	if c.Format == FormatPC {
		return pcHeaderSize + i*(checksumSize+tables.SlotSize)
	}
	return psHeaderSize + i*tables.SlotSize
}

func (c *Container) dataStart(i int) int {
	if c.Format == FormatPC {
		return c.slotStart(i) + checksumSize
	}
	return c.slotStart(i)
}

func (c *Container) slot(i int) ([]byte, error) {
	if i < 0 || i >= tables.SlotCount {
		return nil, badIndex(i)
	}
	start := c.dataStart(i)
	return c.data[start : start+tables.SlotSize], nil
}

// SlotBytes returns a copy of slot i.
func (c *Container) SlotBytes(i int) ([]byte, error) {
	s, err := c.slot(i)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(s), nil
}

// PutSlotBytes replaces slot i and, on PC, its checksum.
func (c *Container) PutSlotBytes(i int, b []byte) error {
	s, err := c.slot(i)
	if err != nil {
		return err
	}
	if len(b) != tables.SlotSize {
		return errs.WithMetadata(errs.CodeSlotOverrun, "slot has the wrong length", map[string]string{
			"slot":   strconv.Itoa(i),
			"length": strconv.Itoa(len(b)),
		})
	}
	copy(s, b)
	if c.Format == FormatPC {
		sum := md5.Sum(s)
		copy(c.data[c.slotStart(i):], sum[:])
	}
	return nil
}

// VerifyChecksum compares slot i against its stored MD5.  PlayStation saves have no
// checksums and always pass.
func (c *Container) VerifyChecksum(i int) error {
	s, err := c.slot(i)
	if err != nil {
		return err
	}
	if c.Format != FormatPC {
		return nil
	}
	sum := md5.Sum(s)
	stored := c.data[c.slotStart(i) : c.slotStart(i)+checksumSize]
	if !bytes.Equal(sum[:], stored) {
		return errs.WithMetadata(errs.CodeChecksumMismatch, "slot checksum mismatch", map[string]string{
			"slot":     strconv.Itoa(i),
			"stored":   hex.EncodeToString(stored),
			"computed": hex.EncodeToString(sum[:]),
		})
	}
	return nil
}

// VerifyAll checks every slot's checksum, hashing them in parallel.  It returns the
// first mismatch found.
func (c *Container) VerifyAll() error {
	var g errgroup.Group
	for i := 0; i < tables.SlotCount; i++ {
		g.Go(func() error {
			return c.VerifyChecksum(i)
		})
	}
	return g.Wait()
}

// Bytes returns a copy of the whole file.
func (c *Container) Bytes() []byte {
	return bytes.Clone(c.data)
}

// BackupName is where Save moves the previous file: same name, extension ".old".
func BackupName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".old"
}

// Save writes the container to path.  With backup set, an existing file at path is
// renamed to BackupName(path) first; an earlier backup is replaced.
func (c *Container) Save(path string, backup bool) error {
	if backup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, BackupName(path)); err != nil {
				return err
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if _, err := w.Write(c.data); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return f.Close()
}
