// Package fixers detects and repairs the known kinds of slot corruption.
//
// Detectors only look.  Fixers change the minimum they have to and refuse to run on a
// slot that doesn't show the problem, which is what makes running one twice harmless.
// Neither ever touches bytes: they work on a decoded slot and the caller re-encodes.
package fixers

import (
	"strconv"

	"ersave/errs"
	"ersave/tables"
	"ersave/types"
)

func unmet(check string) error {
	return errs.WithMetadata(errs.CodeFixPreconditionUnmet, "slot does not show this corruption", map[string]string{"check": check})
}

// HasRideBug: Torrent has no HP but the game thinks he is out.  Such a character can
// never summon him again.
func HasRideBug(s *types.CharacterSlot) bool {
	return !s.IsEmpty() && s.Ride.HP == 0 && s.Ride.State == tables.RideStateActive
}

// FixRideBug marks Torrent dead, which is what the game stores for a mount that ran out
// of HP normally.  Nothing else about the ride changes.
func FixRideBug(s *types.CharacterSlot) error {
	if !HasRideBug(s) {
		return unmet(CheckRideBug)
	}
	s.Ride.State = tables.RideStateDead
	return nil
}

func HasWeatherCorruption(s *types.CharacterSlot) bool {
	return !s.IsEmpty() && s.Weather.AreaID == 0
}

// FixWeather writes areaID into the weather record.  The area can't be worked out from
// the rest of the slot, so the caller must supply it (normally the area of the last
// grace the character rested at).
func FixWeather(s *types.CharacterSlot, areaID uint16) error {
	if areaID == 0 {
		return errs.New(errs.CodeInvalidArgument, "weather area id must be nonzero")
	}
	if !HasWeatherCorruption(s) {
		return unmet(CheckWeatherAreaZero)
	}
	s.Weather.AreaID = areaID
	return nil
}

func HasTimeCorruption(s *types.CharacterSlot) bool {
	return !s.IsEmpty() && s.Time.IsZero()
}

// FixTime replaces an all-zero clock with t.
func FixTime(s *types.CharacterSlot, t types.WorldAreaTime) error {
	if t.IsZero() {
		return errs.New(errs.CodeInvalidArgument, "replacement time must not be 00:00:00")
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return errs.WithMetadata(errs.CodeInvalidArgument, "replacement time out of range", map[string]string{
			"time": t.String(),
		})
	}
	if !HasTimeCorruption(s) {
		return unmet(CheckTimeZero)
	}
	s.Time = t
	return nil
}

// ParseArea reads a weather area id as typed by a user: decimal, or hex with 0x.
func ParseArea(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errs.Wrap(errs.CodeInvalidArgument, "bad area id "+strconv.Quote(s), err)
	}
	if n == 0 {
		return 0, errs.New(errs.CodeInvalidArgument, "weather area id must be nonzero")
	}
	return uint16(n), nil
}
