package fixers

import (
	"ersave/types"
)

// Check ids are written into reports and stash files, so they must never change, typos
// and all.  Use caps and underscores, and name the symptom, not the fix.
const (
	CheckRideBug         = "RIDE_BUG"
	CheckWeatherAreaZero = "WEATHER_AREA_ZERO"
	CheckTimeZero        = "TIME_ZERO"
)

type Check struct {
	ID     string
	Name   string
	Expl   string
	Detect func(*types.CharacterSlot) bool
}

var Checks = []Check{
	{CheckRideBug, "Torrent stuck", "Torrent has 0 HP but is marked active; he can't be summoned until he is marked dead", HasRideBug},
	{CheckWeatherAreaZero, "Weather area zero", "The weather record has no area; the game may hang loading the character", HasWeatherCorruption},
	{CheckTimeZero, "Clock zero", "The in-game time is 00:00:00, which the game never writes once play has started", HasTimeCorruption},
}

// Finding is one check that fired on one slot.
type Finding struct {
	Check
	Slot int
}

// Inspect runs every check against s.  An empty slot never has findings.
func Inspect(s *types.CharacterSlot) []Check {
	out := []Check{}
	for _, c := range Checks {
		if c.Detect(s) {
			out = append(out, c)
		}
	}
	return out
}

// InspectAll runs every check against every decoded slot; nil entries are skipped.
func InspectAll(slots []*types.CharacterSlot) []Finding {
	out := []Finding{}
	for i, s := range slots {
		if s == nil {
			continue
		}
		for _, c := range Inspect(s) {
			out = append(out, Finding{c, i})
		}
	}
	return out
}

// Lookup finds a check by id.
func Lookup(id string) (Check, bool) {
	for _, c := range Checks {
		if c.ID == id {
			return c, true
		}
	}
	return Check{}, false
}
