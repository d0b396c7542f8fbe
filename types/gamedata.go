package types

import (
	"ersave/readers"
	"ersave/tables"
	"ersave/writers"
)

// Records between the storage box and the event flags.

const (
	FaceDataSize        = 0x12F
	RideGameDataSize    = 40
	BloodStainSize      = 0x44
	MenuSaveLoadSize    = 8 + 0x1000
	TrophyEquipDataSize = 0x34
	GaitemGameDataSize  = 8 + tables.GaitemGameEntries*16
	TutorialDataSize    = 8 + 0x400

	faceDataBody = FaceDataSize - 12
)

// FaceData is the in-slot copy of the character's appearance.  Only the header is
// understood; the body is kept as-is.
type FaceData struct {
	Magic  [4]byte // "FACE"
	Unk0x4 uint32
	Size   uint32
	Data   [faceDataBody]byte
}

func (f *FaceData) Read(r *readers.Reader) error {
	r.Fill(f.Magic[:])
	f.Unk0x4 = r.U32()
	f.Size = r.U32()
	r.Fill(f.Data[:])
	return r.Err()
}

func (f *FaceData) Write(w *writers.Writer) error {
	w.Bytes(f.Magic[:])
	w.U32(f.Unk0x4)
	w.U32(f.Size)
	w.Bytes(f.Data[:])
	return w.Err()
}

// RideGameData is Torrent.
type RideGameData struct {
	Coordinates Vector3
	MapID       MapID
	Angle       Vector4
	HP          int32
	State       uint32 // tables.RideState*
}

func (h *RideGameData) Read(r *readers.Reader) error {
	h.Coordinates.Read(r)
	h.MapID.Read(r)
	h.Angle.Read(r)
	h.HP = r.I32()
	h.State = r.U32()
	return r.Err()
}

func (h *RideGameData) Write(w *writers.Writer) error {
	h.Coordinates.Write(w)
	h.MapID.Write(w)
	h.Angle.Write(w)
	w.I32(h.HP)
	w.U32(h.State)
	return w.Err()
}

// BloodStain is where the character last died, and the runes dropped there.
type BloodStain struct {
	Coordinates Vector3
	Angle       Vector4
	Unk0x1c     [6]uint32
	Runes       int32
	MapID       MapID
	Unk0x3c     uint32
	Unk0x40     uint32
}

func (b *BloodStain) Read(r *readers.Reader) error {
	b.Coordinates.Read(r)
	b.Angle.Read(r)
	r.U32s(b.Unk0x1c[:])
	b.Runes = r.I32()
	b.MapID.Read(r)
	b.Unk0x3c, b.Unk0x40 = r.U32(), r.U32()
	return r.Err()
}

func (b *BloodStain) Write(w *writers.Writer) error {
	b.Coordinates.Write(w)
	b.Angle.Write(w)
	w.U32s(b.Unk0x1c[:])
	w.I32(b.Runes)
	b.MapID.Write(w)
	w.U32(b.Unk0x3c)
	w.U32(b.Unk0x40)
	return w.Err()
}

type MenuSaveLoad struct {
	Unk0x0 uint16
	Unk0x2 uint16
	Size   uint32
	Data   [0x1000]byte
}

func (m *MenuSaveLoad) Read(r *readers.Reader) error {
	m.Unk0x0, m.Unk0x2 = r.U16(), r.U16()
	m.Size = r.U32()
	r.Fill(m.Data[:])
	return r.Err()
}

func (m *MenuSaveLoad) Write(w *writers.Writer) error {
	w.U16(m.Unk0x0)
	w.U16(m.Unk0x2)
	w.U32(m.Size)
	w.Bytes(m.Data[:])
	return w.Err()
}

type TrophyEquipData struct {
	Unk0x0  uint32
	Unk0x4  [0x10]byte
	Unk0x14 [0x10]byte
	Unk0x24 [0x10]byte
}

func (t *TrophyEquipData) Read(r *readers.Reader) error {
	t.Unk0x0 = r.U32()
	r.Fill(t.Unk0x4[:])
	r.Fill(t.Unk0x14[:])
	r.Fill(t.Unk0x24[:])
	return r.Err()
}

func (t *TrophyEquipData) Write(w *writers.Writer) error {
	w.U32(t.Unk0x0)
	w.Bytes(t.Unk0x4[:])
	w.Bytes(t.Unk0x14[:])
	w.Bytes(t.Unk0x24[:])
	return w.Err()
}

type GaitemGameEntry struct {
	ID            uint32
	Unk0x4        uint32
	ReinforceType uint32
	Unk0xc        uint32
}

// GaitemGameData is a fixed table regardless of Count.
type GaitemGameData struct {
	Count   int64
	Entries [tables.GaitemGameEntries]GaitemGameEntry
}

func (g *GaitemGameData) Read(r *readers.Reader) error {
	g.Count = r.I64()
	for i := range g.Entries {
		e := &g.Entries[i]
		e.ID, e.Unk0x4, e.ReinforceType, e.Unk0xc = r.U32(), r.U32(), r.U32(), r.U32()
	}
	return r.Err()
}

func (g *GaitemGameData) Write(w *writers.Writer) error {
	w.I64(g.Count)
	for _, e := range g.Entries {
		w.U32(e.ID)
		w.U32(e.Unk0x4)
		w.U32(e.ReinforceType)
		w.U32(e.Unk0xc)
	}
	return w.Err()
}

type TutorialData struct {
	Unk0x0 uint16
	Unk0x2 uint16
	Size   uint32
	Data   [0x400]byte
}

func (t *TutorialData) Read(r *readers.Reader) error {
	t.Unk0x0, t.Unk0x2 = r.U16(), r.U16()
	t.Size = r.U32()
	r.Fill(t.Data[:])
	return r.Err()
}

func (t *TutorialData) Write(w *writers.Writer) error {
	w.U16(t.Unk0x0)
	w.U16(t.Unk0x2)
	w.U32(t.Size)
	w.Bytes(t.Data[:])
	return w.Err()
}
