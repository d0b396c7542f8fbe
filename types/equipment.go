package types

import (
	"ersave/readers"
	"ersave/tables"
	"ersave/writers"
)

const (
	EquipSlotsSize                = 88
	ActiveWeaponSlotsSize         = 28
	EquippedSpellsSize            = 116
	EquippedItemsSize             = 136
	EquippedGesturesSize          = 24
	AcquiredProjectilesSize       = 2052
	EquippedArmamentsAndItemsSize = 108
	EquippedPhysicsSize           = 8
)

// EquipSlots is the 22-slot equipment layout.  The same layout is stored three times in
// a row: as inventory indices, as item ids, and as gaitem handles.
type EquipSlots struct {
	LeftHand  [3]uint32
	RightHand [3]uint32
	Arrows    [2]uint32
	Bolts     [2]uint32
	Unk0x28   uint32
	Unk0x2c   uint32
	Head      uint32
	Chest     uint32
	Arms      uint32
	Legs      uint32
	Unk0x40   uint32
	Talismans [4]uint32
	Unk0x54   uint32
}

func (e *EquipSlots) Read(r *readers.Reader) error {
	r.U32s(e.LeftHand[:])
	r.U32s(e.RightHand[:])
	r.U32s(e.Arrows[:])
	r.U32s(e.Bolts[:])
	e.Unk0x28, e.Unk0x2c = r.U32(), r.U32()
	e.Head, e.Chest, e.Arms, e.Legs = r.U32(), r.U32(), r.U32(), r.U32()
	e.Unk0x40 = r.U32()
	r.U32s(e.Talismans[:])
	e.Unk0x54 = r.U32()
	return r.Err()
}

func (e *EquipSlots) Write(w *writers.Writer) error {
	w.U32s(e.LeftHand[:])
	w.U32s(e.RightHand[:])
	w.U32s(e.Arrows[:])
	w.U32s(e.Bolts[:])
	w.U32(e.Unk0x28)
	w.U32(e.Unk0x2c)
	w.U32(e.Head)
	w.U32(e.Chest)
	w.U32(e.Arms)
	w.U32(e.Legs)
	w.U32(e.Unk0x40)
	w.U32s(e.Talismans[:])
	w.U32(e.Unk0x54)
	return w.Err()
}

// ActiveWeaponSlots says which of the three weapons per hand (and which ammo) is out.
type ActiveWeaponSlots struct {
	ArmStyle         uint32
	LeftHandActive   uint32
	RightHandActive  uint32
	LeftArrowActive  uint32
	RightArrowActive uint32
	LeftBoltActive   uint32
	RightBoltActive  uint32
}

func (a *ActiveWeaponSlots) Read(r *readers.Reader) error {
	a.ArmStyle = r.U32()
	a.LeftHandActive, a.RightHandActive = r.U32(), r.U32()
	a.LeftArrowActive, a.RightArrowActive = r.U32(), r.U32()
	a.LeftBoltActive, a.RightBoltActive = r.U32(), r.U32()
	return r.Err()
}

func (a *ActiveWeaponSlots) Write(w *writers.Writer) error {
	w.U32(a.ArmStyle)
	w.U32(a.LeftHandActive)
	w.U32(a.RightHandActive)
	w.U32(a.LeftArrowActive)
	w.U32(a.RightArrowActive)
	w.U32(a.LeftBoltActive)
	w.U32(a.RightBoltActive)
	return w.Err()
}

// EquippedEntry is an (id, index) pair; used for spells, quick items and projectiles.
type EquippedEntry struct {
	ID    uint32
	Index uint32
}

func readEntries(r *readers.Reader, dst []EquippedEntry) {
	for i := range dst {
		dst[i].ID, dst[i].Index = r.U32(), r.U32()
	}
}

func writeEntries(w *writers.Writer, src []EquippedEntry) {
	for _, e := range src {
		w.U32(e.ID)
		w.U32(e.Index)
	}
}

type EquippedSpells struct {
	Slots       [tables.SpellSlots]EquippedEntry
	ActiveIndex uint32
}

func (s *EquippedSpells) Read(r *readers.Reader) error {
	readEntries(r, s.Slots[:])
	s.ActiveIndex = r.U32()
	return r.Err()
}

func (s *EquippedSpells) Write(w *writers.Writer) error {
	writeEntries(w, s.Slots[:])
	w.U32(s.ActiveIndex)
	return w.Err()
}

// EquippedItems is the quick-item bar and the pouch.
type EquippedItems struct {
	QuickSlots      [tables.QuickSlots]EquippedEntry
	ActiveQuickSlot uint32
	Pouch           [tables.PouchSlots]EquippedEntry
	GreatRuneOn     uint32
}

func (e *EquippedItems) Read(r *readers.Reader) error {
	readEntries(r, e.QuickSlots[:])
	e.ActiveQuickSlot = r.U32()
	readEntries(r, e.Pouch[:])
	e.GreatRuneOn = r.U32()
	return r.Err()
}

func (e *EquippedItems) Write(w *writers.Writer) error {
	writeEntries(w, e.QuickSlots[:])
	w.U32(e.ActiveQuickSlot)
	writeEntries(w, e.Pouch[:])
	w.U32(e.GreatRuneOn)
	return w.Err()
}

type EquippedGestures struct {
	IDs [tables.EquippedGestures]uint32
}

func (g *EquippedGestures) Read(r *readers.Reader) error {
	r.U32s(g.IDs[:])
	return r.Err()
}

func (g *EquippedGestures) Write(w *writers.Writer) error {
	w.U32s(g.IDs[:])
	return w.Err()
}

// AcquiredProjectiles always occupies its full capacity; Count says how many are real.
type AcquiredProjectiles struct {
	Count       uint32
	Projectiles [tables.ProjectileSlots]EquippedEntry
}

func (p *AcquiredProjectiles) Read(r *readers.Reader) error {
	p.Count = r.U32()
	readEntries(r, p.Projectiles[:])
	return r.Err()
}

func (p *AcquiredProjectiles) Write(w *writers.Writer) error {
	w.U32(p.Count)
	writeEntries(w, p.Projectiles[:])
	return w.Err()
}

type EquippedArmamentsAndItems struct {
	Slots EquipSlots
	Unk   [5]uint32
}

func (a *EquippedArmamentsAndItems) Read(r *readers.Reader) error {
	a.Slots.Read(r)
	r.U32s(a.Unk[:])
	return r.Err()
}

func (a *EquippedArmamentsAndItems) Write(w *writers.Writer) error {
	a.Slots.Write(w)
	w.U32s(a.Unk[:])
	return w.Err()
}

// EquippedPhysics is the two crystal tears in the Flask of Wondrous Physick.
type EquippedPhysics struct {
	Slot1 uint32
	Slot2 uint32
}

func (p *EquippedPhysics) Read(r *readers.Reader) error {
	p.Slot1, p.Slot2 = r.U32(), r.U32()
	return r.Err()
}

func (p *EquippedPhysics) Write(w *writers.Writer) error {
	w.U32(p.Slot1)
	w.U32(p.Slot2)
	return w.Err()
}
