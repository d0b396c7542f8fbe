package types

import (
	"fmt"

	"ersave/readers"
	"ersave/writers"
)

// Record is anything that occupies a fixed, known number of bytes in a slot.
type Record interface {
	Read(r *readers.Reader) error
	Write(w *writers.Writer) error
}

const (
	MapIDSize   = 4
	Vector3Size = 12
	Vector4Size = 16
)

// MapID is stored as four bytes, lowest first: block id is the last.
type MapID [4]byte

func (m *MapID) Read(r *readers.Reader) error {
	r.Fill(m[:])
	return r.Err()
}

func (m *MapID) Write(w *writers.Writer) error {
	w.Bytes(m[:])
	return w.Err()
}

// String renders the map id the way the game's own map names do, e.g. m60_42_36_00.
func (m MapID) String() string {
	return fmt.Sprintf("m%02d_%02d_%02d_%02d", m[3], m[2], m[1], m[0])
}

type Vector3 struct {
	X, Y, Z float32
}

func (v *Vector3) Read(r *readers.Reader) error {
	v.X, v.Y, v.Z = r.F32(), r.F32(), r.F32()
	return r.Err()
}

func (v *Vector3) Write(w *writers.Writer) error {
	w.F32(v.X)
	w.F32(v.Y)
	w.F32(v.Z)
	return w.Err()
}

// Vector4 is a rotation quaternion.
type Vector4 struct {
	X, Y, Z, W float32
}

func (v *Vector4) Read(r *readers.Reader) error {
	v.X, v.Y, v.Z, v.W = r.F32(), r.F32(), r.F32(), r.F32()
	return r.Err()
}

func (v *Vector4) Write(w *writers.Writer) error {
	w.F32(v.X)
	w.F32(v.Y)
	w.F32(v.Z)
	w.F32(v.W)
	return w.Err()
}
