package types

import (
	"fmt"
	"strconv"

	"ersave/errs"
	"ersave/readers"
	"ersave/writers"
)

// Records after the event flags.

const (
	PlayerCoordinatesSize  = 61
	NetManSize             = 4 + 0x20000
	WorldAreaWeatherSize   = 12
	WorldAreaTimeSize      = 12
	BaseVersionSize        = 16
	PS5ActivitySize        = 0x20
	DLCSize                = 0x32
	PlayerGameDataHashSize = 0x80
)

// SizedBlock is an opaque world-manager dump prefixed with its own signed length
// (FieldArea, WorldArea, WorldGeomMan, RendMan).
type SizedBlock struct {
	Data []byte
}

func (b *SizedBlock) Read(r *readers.Reader) error {
	size := r.I32()
	if r.Err() != nil {
		return r.Err()
	}
	if size < 0 || int(size) > r.Remaining() {
		r.Fail(errs.WithMetadata(errs.CodeUnexpectedEndOfData, "declared block size out of range", map[string]string{
			"size":   strconv.FormatInt(int64(size), 10),
			"offset": "0x" + strconv.FormatInt(int64(r.Position()-4), 16),
		}))
		return r.Err()
	}
	b.Data = r.Bytes(int(size))
	return r.Err()
}

// Write derives the prefix from len(Data), so the two can't disagree.
func (b *SizedBlock) Write(w *writers.Writer) error {
	w.I32(int32(len(b.Data)))
	w.Bytes(b.Data)
	return w.Err()
}

func (b *SizedBlock) Size() int {
	return 4 + len(b.Data)
}

type PlayerCoordinates struct {
	Coordinates    Vector3
	MapID          MapID
	Angle          Vector4
	GameMan0xbf0   uint8
	UnkCoordinates Vector3
	UnkAngle       Vector4
}

func (p *PlayerCoordinates) Read(r *readers.Reader) error {
	p.Coordinates.Read(r)
	p.MapID.Read(r)
	p.Angle.Read(r)
	p.GameMan0xbf0 = r.U8()
	p.UnkCoordinates.Read(r)
	p.UnkAngle.Read(r)
	return r.Err()
}

func (p *PlayerCoordinates) Write(w *writers.Writer) error {
	p.Coordinates.Write(w)
	p.MapID.Write(w)
	p.Angle.Write(w)
	w.U8(p.GameMan0xbf0)
	p.UnkCoordinates.Write(w)
	p.UnkAngle.Write(w)
	return w.Err()
}

type NetMan struct {
	Unk0x0 uint32
	Data   [0x20000]byte
}

func (n *NetMan) Read(r *readers.Reader) error {
	n.Unk0x0 = r.U32()
	r.Fill(n.Data[:])
	return r.Err()
}

func (n *NetMan) Write(w *writers.Writer) error {
	w.U32(n.Unk0x0)
	w.Bytes(n.Data[:])
	return w.Err()
}

// WorldAreaWeather.  An AreaID of zero is never written by the game once the tutorial
// is over.
type WorldAreaWeather struct {
	AreaID      uint16
	WeatherType uint16
	Timer       uint32
	Unk0x8      uint32
}

func (wa *WorldAreaWeather) Read(r *readers.Reader) error {
	wa.AreaID, wa.WeatherType = r.U16(), r.U16()
	wa.Timer = r.U32()
	wa.Unk0x8 = r.U32()
	return r.Err()
}

func (wa *WorldAreaWeather) Write(w *writers.Writer) error {
	w.U16(wa.AreaID)
	w.U16(wa.WeatherType)
	w.U32(wa.Timer)
	w.U32(wa.Unk0x8)
	return w.Err()
}

// WorldAreaTime is the in-game clock.
type WorldAreaTime struct {
	Hour   uint32
	Minute uint32
	Second uint32
}

func (t *WorldAreaTime) Read(r *readers.Reader) error {
	t.Hour, t.Minute, t.Second = r.U32(), r.U32(), r.U32()
	return r.Err()
}

func (t *WorldAreaTime) Write(w *writers.Writer) error {
	w.U32(t.Hour)
	w.U32(t.Minute)
	w.U32(t.Second)
	return w.Err()
}

func (t WorldAreaTime) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0 && t.Second == 0
}

func (t WorldAreaTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

type BaseVersion struct {
	BaseVersionCopy uint32
	BaseVersion     uint32
	IsLatestVersion uint32
	Unk0xc          uint32
}

func (b *BaseVersion) Read(r *readers.Reader) error {
	b.BaseVersionCopy, b.BaseVersion = r.U32(), r.U32()
	b.IsLatestVersion, b.Unk0xc = r.U32(), r.U32()
	return r.Err()
}

func (b *BaseVersion) Write(w *writers.Writer) error {
	w.U32(b.BaseVersionCopy)
	w.U32(b.BaseVersion)
	w.U32(b.IsLatestVersion)
	w.U32(b.Unk0xc)
	return w.Err()
}

type PS5Activity struct {
	Data [PS5ActivitySize]byte
}

func (p *PS5Activity) Read(r *readers.Reader) error {
	r.Fill(p.Data[:])
	return r.Err()
}

func (p *PS5Activity) Write(w *writers.Writer) error {
	w.Bytes(p.Data[:])
	return w.Err()
}

// DLC entry flags.  Nonzero bytes mark content the character has entered.
type DLC struct {
	Data [DLCSize]byte
}

func (d *DLC) Read(r *readers.Reader) error {
	r.Fill(d.Data[:])
	return r.Err()
}

func (d *DLC) Write(w *writers.Writer) error {
	w.Bytes(d.Data[:])
	return w.Err()
}

// PlayerGameDataHash is the game's own digest of parts of the character.  It is
// preserved, never recomputed.
type PlayerGameDataHash struct {
	Level             uint32
	Stats             uint32
	Archetype         uint32
	Unk0xc            uint32
	Padding           uint32
	Runes             uint32
	RunesMemory       uint32
	EquippedWeapons   uint32
	EquippedArmors    uint32
	EquippedTalismans uint32
	EquippedItems     uint32
	EquippedSpells    uint32
	Unk0x30           [0x50]byte
}

func (h *PlayerGameDataHash) fields() []*uint32 {
	return []*uint32{
		&h.Level, &h.Stats, &h.Archetype, &h.Unk0xc, &h.Padding, &h.Runes, &h.RunesMemory,
		&h.EquippedWeapons, &h.EquippedArmors, &h.EquippedTalismans, &h.EquippedItems, &h.EquippedSpells,
	}
}

func (h *PlayerGameDataHash) Read(r *readers.Reader) error {
	for _, f := range h.fields() {
		*f = r.U32()
	}
	r.Fill(h.Unk0x30[:])
	return r.Err()
}

func (h *PlayerGameDataHash) Write(w *writers.Writer) error {
	for _, f := range h.fields() {
		w.U32(*f)
	}
	w.Bytes(h.Unk0x30[:])
	return w.Err()
}
