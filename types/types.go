package types

import (
	"ersave/tables"
)

// CharacterSlot is one decoded character, field for field in file order.
//
// Nothing in here is an offset into anything else: every field's position is the sum
// of the widths of everything above it.  Reorder a field and every later one moves.
type CharacterSlot struct {
	Version uint32 // 0: empty slot, only Tail is meaningful
	MapID   MapID
	Unk0x8  [8]byte
	Unk0x10 [16]byte

	GaitemTable GaitemTable // 5118 or 5120 entries, see tables.Variant

	PlayerGameData PlayerGameData
	SPEffects      [tables.SPEffectCount]SPEffect

	EquipIndex         EquipSlots
	ActiveWeaponSlots  ActiveWeaponSlots
	EquipItemIDs       EquipSlots
	EquipGaitemHandles EquipSlots

	InventoryHeld Inventory // HeldCommonCap/HeldKeyCap

	EquippedSpells            EquippedSpells
	EquippedItems             EquippedItems
	EquippedGestures          EquippedGestures
	AcquiredProjectiles       AcquiredProjectiles
	EquippedArmamentsAndItems EquippedArmamentsAndItems
	EquippedPhysics           EquippedPhysics

	FaceData FaceData

	InventoryStorage Inventory // StorageCommonCap/StorageKeyCap

	Gestures Gestures // 64 or 128 entries, see tables.Variant
	Regions  Regions

	Ride        RideGameData
	ControlByte uint8
	BloodStain  BloodStain

	// Two u32 of unknown meaning between the blood stain and the menu data
	UnkGameDataMan0x120 uint32
	UnkGameDataMan0x88  uint32

	MenuSaveLoad    MenuSaveLoad
	TrophyEquipData TrophyEquipData
	GaitemGameData  GaitemGameData
	TutorialData    TutorialData

	GameMan0x8c uint8
	GameMan0x8d uint8
	GameMan0x8e uint8

	TotalDeaths         uint32
	CharacterType       int32
	InOnlineSession     uint8
	CharacterTypeOnline uint32
	LastRestedGrace     uint32
	NotAlone            uint8
	CountdownTimer      uint32
	UnkGameDataMan0x124 uint32

	EventFlags           []byte // tables.EventFlagsSize, never interpreted
	EventFlagsTerminator uint8

	FieldArea     SizedBlock
	WorldArea     SizedBlock
	WorldGeomMan  SizedBlock
	WorldGeomMan2 SizedBlock
	RendMan       SizedBlock

	PlayerCoordinates  PlayerCoordinates
	GameMan0x5be       uint8
	GameMan0x5bf       uint8
	SpawnPointEntityID uint32
	GameMan0xb64       uint32

	// Version-gated.  nil means absent from the file, not zero.
	TempSpawnPointEntityID *uint32 // version >= 65
	GameMan0xcb3           *uint8  // version >= 66

	NetMan             NetMan
	Weather            WorldAreaWeather
	Time               WorldAreaTime
	BaseVersion        BaseVersion
	SteamID            uint64
	PS5Activity        PS5Activity
	DLC                DLC
	PlayerGameDataHash PlayerGameDataHash

	// Everything between the last understood field and the end of the slot.
	Tail []byte
}

func (s *CharacterSlot) IsEmpty() bool {
	return s.Version == 0
}

// Summary is the at-a-glance view of a slot.
type Summary struct {
	Empty        bool
	Version      uint32
	Name         string
	Level        uint32
	Archetype    string
	Attributes   [8]uint32 // vigor, mind, endurance, strength, dexterity, intelligence, faith, arcane
	HP, MaxHP    uint32
	FP, MaxFP    uint32
	SP, MaxSP    uint32
	Runes        uint32
	RunesMemory  uint32
	Flasks       [2]uint8 // crimson, cerulean
	Deaths       uint32
	Map          string
	Time         string
	GameVersion  uint32
	SteamID      uint64
	RideHP       int32
	RideState    string
	HeldCommon   uint32
	HeldKey      uint32
	StoredCommon uint32
	StoredKey    uint32
}

func (s *CharacterSlot) Summary() Summary {
	if s.IsEmpty() {
		return Summary{Empty: true}
	}
	p := &s.PlayerGameData
	return Summary{
		Version:      s.Version,
		Name:         p.CharacterName(),
		Level:        p.Level,
		Archetype:    lookup(tables.Archetypes, p.Archetype),
		Attributes:   [8]uint32{p.Vigor, p.Mind, p.Endurance, p.Strength, p.Dexterity, p.Intelligence, p.Faith, p.Arcane},
		HP:           p.HP,
		MaxHP:        p.MaxHP,
		FP:           p.FP,
		MaxFP:        p.MaxFP,
		SP:           p.SP,
		MaxSP:        p.MaxSP,
		Runes:        p.Runes,
		RunesMemory:  p.RunesMemory,
		Flasks:       [2]uint8{p.MaxCrimsonFlasks, p.MaxCeruleanFlasks},
		Deaths:       s.TotalDeaths,
		Map:          s.MapID.String(),
		Time:         s.Time.String(),
		GameVersion:  s.BaseVersion.BaseVersion,
		SteamID:      s.SteamID,
		RideHP:       s.Ride.HP,
		RideState:    lookup(tables.RideStates, s.Ride.State),
		HeldCommon:   s.InventoryHeld.CommonCount,
		HeldKey:      s.InventoryHeld.KeyCount,
		StoredCommon: s.InventoryStorage.CommonCount,
		StoredKey:    s.InventoryStorage.KeyCount,
	}
}

func lookup[K comparable](from map[K]string, with K) string {
	out, ok := from[with]
	if !ok {
		return "Unknown"
	}
	return out
}
