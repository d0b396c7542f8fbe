package tables

import (
	"strconv"

	"ersave/errs"
)

// StructuralVariant is the version-dependent shape of a character slot.
// It is the only place the slot layout depends on the version ordinal.
type StructuralVariant struct {
	GaitemCount         int
	GestureCount        int
	HasTempSpawnPoint   bool
	HasGameManExtraByte bool
}

// MaxKnownVersion is the highest slot version the dispatch table will vouch for.
// Anything above is refused rather than guessed at.
const MaxKnownVersion = 0x3FF

type versionRange struct {
	min, max uint32
	variant  StructuralVariant
}

// Ranges must stay contiguous and ascending; a newly observed layout change is a new
// row here and nowhere else.
var versions = []versionRange{
	{1, 64, StructuralVariant{GaitemCount: 0x13FE, GestureCount: 0x40}},
	{65, 65, StructuralVariant{GaitemCount: 0x13FE, GestureCount: 0x40, HasTempSpawnPoint: true}},
	{66, 81, StructuralVariant{GaitemCount: 0x13FE, GestureCount: 0x40, HasTempSpawnPoint: true, HasGameManExtraByte: true}},
	{82, 200, StructuralVariant{GaitemCount: 0x1400, GestureCount: 0x40, HasTempSpawnPoint: true, HasGameManExtraByte: true}},
	{201, MaxKnownVersion, StructuralVariant{GaitemCount: 0x1400, GestureCount: 0x80, HasTempSpawnPoint: true, HasGameManExtraByte: true}},
}

// Variant maps a slot version to its structural variant.
// Version 0 (empty slot) has no variant; callers shortcut it before asking.
func Variant(version uint32) (StructuralVariant, error) {
	for _, v := range versions {
		if version >= v.min && version <= v.max {
			return v.variant, nil
		}
	}
	return StructuralVariant{}, errs.WithMetadata(errs.CodeUnsupportedVersion, "no structural variant for slot version",
		map[string]string{"version": strconv.FormatUint(uint64(version), 10)})
}
