package tables

// Format constants and lookup tables.  The constants are in one place because a wrong
// one anywhere shifts every byte after it.

// Slot container geometry
const (
	SlotSize  = 0x280000
	SlotCount = 10
)

// Inventory capacities.  These depend on where the inventory lives, never on version.
const (
	HeldCommonCap    = 0xa80
	HeldKeyCap       = 0x180
	StorageCommonCap = 0x780
	StorageKeyCap    = 0x80
)

// Fixed counts that do not vary with version
const (
	SPEffectCount     = 13
	EventFlagsSize    = 0x1BF99F
	GaitemGameEntries = 0x1B58
	ProjectileSlots   = 0x100
	SpellSlots        = 14
	QuickSlots        = 10
	PouchSlots        = 6
	EquippedGestures  = 6
)

// Ride (Torrent) state values as stored in RideGameData
const (
	RideStateInactive = 1
	RideStateDead     = 3
	RideStateActive   = 13
)

var RideStates = map[uint32]string{
	RideStateInactive: "Inactive",
	RideStateDead:     "Dead",
	RideStateActive:   "Active",
}

// Starting classes, in character-creation order
var Archetypes = map[uint8]string{
	0: "Vagabond",
	1: "Warrior",
	2: "Hero",
	3: "Bandit",
	4: "Astrologer",
	5: "Prophet",
	6: "Confessor",
	7: "Samurai",
	8: "Prisoner",
	9: "Wretch",
}

var Genders = map[uint8]string{
	0: "Type B",
	1: "Type A",
}

// Keepsakes, in character-creation order
var Gifts = map[uint8]string{
	0: "None",
	1: "Crimson Amber Medallion",
	2: "Lands Between Rune",
	3: "Golden Seed",
	4: "Fanged Imp Ashes",
	5: "Cracked Pot",
	6: "Stonesword Key",
	7: "Bewitching Branch",
	8: "Boiled Prawn",
	9: "Shabriri's Woe",
}
