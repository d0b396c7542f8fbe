// Package stash keeps a half-edited save between command invocations.
//
// "ersave load" parks the file here, each "ersave fix" works on the parked copy, and
// "ersave save" writes it back over the original and removes the stash.  The stash is
// CBOR, zstd-compressed: a save is mostly zeros and shrinks a lot.
package stash

import (
	"bufio"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"ersave/errs"
)

const DefaultFilename = "ersave.tmp"

// Applied records one fix, for showing the user what "save" is about to write.
type Applied struct {
	Slot  int    `cbor:"1,keyasint"`
	Check string `cbor:"2,keyasint"`
	Arg   string `cbor:"3,keyasint,omitempty"`
}

type Stash struct {
	Path    string    `cbor:"1,keyasint"` // the save this came from, and will go back to
	Loaded  time.Time `cbor:"2,keyasint"`
	Data    []byte    `cbor:"3,keyasint"` // the whole file, with fixes applied so far
	Applied []Applied `cbor:"4,keyasint,omitempty"`
}

func Write(filename string, st *Stash) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := cbor.NewEncoder(zw).Encode(st); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
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

func Read(filename string) (*Stash, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.CodeInvalidArgument, "nothing loaded; run \"ersave load\" first", err)
		}
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	st := &Stash{}
	if err := cbor.NewDecoder(zr).Decode(st); err != nil {
		return nil, errs.Wrap(errs.CodeUnknown, "stash unreadable", err)
	}
	return st, nil
}

// Remove deletes the stash.  A missing stash is not an error.
func Remove(filename string) error {
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
