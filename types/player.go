package types

import (
	"ersave/readers"
	"ersave/utils"
	"ersave/writers"
)

const (
	PlayerGameDataSize = 0x1B0
	SPEffectSize       = 16

	playerNameSize = 0x20
	playerRestSize = PlayerGameDataSize - 0xDA
)

// PlayerGameData is the 432-byte character sheet.
// Offsets in the comments are relative to the start of the record.
type PlayerGameData struct {
	Unk0x0    uint32
	Unk0x4    uint32
	HP        uint32 // 0x08
	MaxHP     uint32
	BaseMaxHP uint32
	FP        uint32 // 0x14
	MaxFP     uint32
	BaseMaxFP uint32
	Unk0x20   uint32
	SP        uint32 // 0x24
	MaxSP     uint32
	BaseMaxSP uint32
	Unk0x30   uint32

	// 0x34
	Vigor        uint32
	Mind         uint32
	Endurance    uint32
	Strength     uint32
	Dexterity    uint32
	Intelligence uint32
	Faith        uint32
	Arcane       uint32

	Unk0x54     uint32
	Unk0x58     uint32
	Unk0x5c     uint32
	Level       uint32 // 0x60
	Runes       uint32
	RunesMemory uint32
	Unk0x6c     uint32

	// 0x70: status buildups
	PoisonBuildup  uint32
	RotBuildup     uint32
	BleedBuildup   uint32
	DeathBuildup   uint32
	FrostBuildup   uint32
	SleepBuildup   uint32
	MadnessBuildup uint32

	Unk0x8c uint32
	Unk0x90 uint32

	// 0x94: UTF-16LE, NUL padded, followed by a u16 that is always zero
	Name           [playerNameSize]byte
	NameTerminator uint16

	Gender                  uint8 // 0xB6
	Archetype               uint8
	Unk0xb8                 uint8
	Unk0xb9                 uint8
	VoiceType               uint8
	Gift                    uint8
	Unk0xbc                 uint8
	Unk0xbd                 uint8
	AdditionalTalismanSlots uint8
	SummonSpiritLevel       uint8
	Unk0xc0                 [0x18]byte
	MaxCrimsonFlasks        uint8 // 0xD8
	MaxCeruleanFlasks       uint8
	Rest                    [playerRestSize]byte
}

func (p *PlayerGameData) Read(r *readers.Reader) error {
	p.Unk0x0, p.Unk0x4 = r.U32(), r.U32()
	p.HP, p.MaxHP, p.BaseMaxHP = r.U32(), r.U32(), r.U32()
	p.FP, p.MaxFP, p.BaseMaxFP = r.U32(), r.U32(), r.U32()
	p.Unk0x20 = r.U32()
	p.SP, p.MaxSP, p.BaseMaxSP = r.U32(), r.U32(), r.U32()
	p.Unk0x30 = r.U32()

	p.Vigor, p.Mind, p.Endurance, p.Strength = r.U32(), r.U32(), r.U32(), r.U32()
	p.Dexterity, p.Intelligence, p.Faith, p.Arcane = r.U32(), r.U32(), r.U32(), r.U32()

	p.Unk0x54, p.Unk0x58, p.Unk0x5c = r.U32(), r.U32(), r.U32()
	p.Level, p.Runes, p.RunesMemory = r.U32(), r.U32(), r.U32()
	p.Unk0x6c = r.U32()

	p.PoisonBuildup, p.RotBuildup, p.BleedBuildup = r.U32(), r.U32(), r.U32()
	p.DeathBuildup, p.FrostBuildup, p.SleepBuildup = r.U32(), r.U32(), r.U32()
	p.MadnessBuildup = r.U32()

	p.Unk0x8c, p.Unk0x90 = r.U32(), r.U32()

	r.Fill(p.Name[:])
	p.NameTerminator = r.U16()

	p.Gender, p.Archetype = r.U8(), r.U8()
	p.Unk0xb8, p.Unk0xb9 = r.U8(), r.U8()
	p.VoiceType, p.Gift = r.U8(), r.U8()
	p.Unk0xbc, p.Unk0xbd = r.U8(), r.U8()
	p.AdditionalTalismanSlots, p.SummonSpiritLevel = r.U8(), r.U8()
	r.Fill(p.Unk0xc0[:])
	p.MaxCrimsonFlasks, p.MaxCeruleanFlasks = r.U8(), r.U8()
	r.Fill(p.Rest[:])
	return r.Err()
}

func (p *PlayerGameData) Write(w *writers.Writer) error {
	for _, v := range []uint32{
		p.Unk0x0, p.Unk0x4,
		p.HP, p.MaxHP, p.BaseMaxHP,
		p.FP, p.MaxFP, p.BaseMaxFP,
		p.Unk0x20,
		p.SP, p.MaxSP, p.BaseMaxSP,
		p.Unk0x30,
		p.Vigor, p.Mind, p.Endurance, p.Strength,
		p.Dexterity, p.Intelligence, p.Faith, p.Arcane,
		p.Unk0x54, p.Unk0x58, p.Unk0x5c,
		p.Level, p.Runes, p.RunesMemory,
		p.Unk0x6c,
		p.PoisonBuildup, p.RotBuildup, p.BleedBuildup,
		p.DeathBuildup, p.FrostBuildup, p.SleepBuildup,
		p.MadnessBuildup,
		p.Unk0x8c, p.Unk0x90,
	} {
		w.U32(v)
	}
	w.Bytes(p.Name[:])
	w.U16(p.NameTerminator)
	for _, v := range []uint8{
		p.Gender, p.Archetype,
		p.Unk0xb8, p.Unk0xb9,
		p.VoiceType, p.Gift,
		p.Unk0xbc, p.Unk0xbd,
		p.AdditionalTalismanSlots, p.SummonSpiritLevel,
	} {
		w.U8(v)
	}
	w.Bytes(p.Unk0xc0[:])
	w.U8(p.MaxCrimsonFlasks)
	w.U8(p.MaxCeruleanFlasks)
	w.Bytes(p.Rest[:])
	return w.Err()
}

// CharacterName decodes the UTF-16LE name.
func (p *PlayerGameData) CharacterName() string {
	return utils.DecodeName(p.Name[:])
}

// SPEffect is one active special effect.
type SPEffect struct {
	ID            uint32
	RemainingTime float32
	Unk0x8        uint32
	Unk0xc        uint32
}

func (e *SPEffect) Read(r *readers.Reader) error {
	e.ID = r.U32()
	e.RemainingTime = r.F32()
	e.Unk0x8 = r.U32()
	e.Unk0xc = r.U32()
	return r.Err()
}

func (e *SPEffect) Write(w *writers.Writer) error {
	w.U32(e.ID)
	w.F32(e.RemainingTime)
	w.U32(e.Unk0x8)
	w.U32(e.Unk0xc)
	return w.Err()
}
