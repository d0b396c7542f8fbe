package types

import (
	"ersave/readers"
	"ersave/writers"
)

// Gaitem handle types live in the top nibble of the handle.
const (
	GaitemTypeMask   = 0xF0000000
	GaitemTypeWeapon = 0x80000000
	GaitemTypeArmor  = 0x90000000
)

// Gaitem is one item instance.  Its width depends on what kind of item it is:
//
//	8 bytes:  handle, item id (empty entries, talismans, goods, ashes of war)
//	16 bytes: + two i32 (armour)
//	21 bytes: + two i32, ash-of-war handle, one byte (weapons)
//
// so the width is a function of the handle alone and never of anything around it.
type Gaitem struct {
	Handle         uint32
	ItemID         uint32
	Unk2           int32
	Unk3           int32
	AshOfWarHandle uint32
	Unk5           uint8
}

func (g *Gaitem) Type() uint32 {
	return g.Handle & GaitemTypeMask
}

// Size is the number of bytes this entry occupies.
func (g *Gaitem) Size() int {
	if g.Handle == 0 {
		return 8
	}
	switch g.Type() {
	case GaitemTypeWeapon:
		return 21
	case GaitemTypeArmor:
		return 16
	}
	return 8
}

func (g *Gaitem) Read(r *readers.Reader) error {
	g.Handle = r.U32()
	g.ItemID = r.U32()
	if g.Handle != 0 {
		switch g.Type() {
		case GaitemTypeWeapon:
			g.Unk2 = r.I32()
			g.Unk3 = r.I32()
			g.AshOfWarHandle = r.U32()
			g.Unk5 = r.U8()
		case GaitemTypeArmor:
			g.Unk2 = r.I32()
			g.Unk3 = r.I32()
		}
	}
	return r.Err()
}

func (g *Gaitem) Write(w *writers.Writer) error {
	w.U32(g.Handle)
	w.U32(g.ItemID)
	if g.Handle != 0 {
		switch g.Type() {
		case GaitemTypeWeapon:
			w.I32(g.Unk2)
			w.I32(g.Unk3)
			w.U32(g.AshOfWarHandle)
			w.U8(g.Unk5)
		case GaitemTypeArmor:
			w.I32(g.Unk2)
			w.I32(g.Unk3)
		}
	}
	return w.Err()
}

// GaitemTable holds every item instance the character has ever referenced.
// Its length comes from the version dispatch table; there is no terminator.
type GaitemTable []Gaitem

// ReadGaitemTable reads exactly count entries.
func ReadGaitemTable(r *readers.Reader, count int) (GaitemTable, error) {
	out := make(GaitemTable, count)
	for i := range out {
		if err := out[i].Read(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t GaitemTable) Write(w *writers.Writer) error {
	for i := range t {
		if err := t[i].Write(w); err != nil {
			return err
		}
	}
	return w.Err()
}

// Size is the total encoded width of the table.
func (t GaitemTable) Size() int {
	n := 0
	for i := range t {
		n += t[i].Size()
	}
	return n
}
