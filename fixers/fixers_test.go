package fixers

import (
	"bytes"
	"errors"
	"testing"

	"ersave/errs"
	"ersave/slot"
	"ersave/tables"
	"ersave/types"
)

func newSlot(t *testing.T) *types.CharacterSlot {
	t.Helper()
	s, err := slot.New(150, slot.SlotSize)
	if err != nil {
		t.Fatal(err)
	}
	s.Weather.AreaID = 6100
	s.Time = types.WorldAreaTime{Hour: 8}
	s.Ride = types.RideGameData{HP: 300, State: tables.RideStateActive}
	return s
}

func encode(t *testing.T, s *types.CharacterSlot) []byte {
	t.Helper()
	b, err := slot.Encode(s, slot.SlotSize)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func Test_RideBug(t *testing.T) {
	s := newSlot(t)
	if HasRideBug(s) {
		t.Error("healthy ride flagged")
	}
	if err := FixRideBug(s); !errors.Is(err, errs.ErrFixPreconditionUnmet) {
		t.Errorf("fixing a healthy ride: got %v", err)
	}

	s.Ride.HP = 0
	s.Ride.MapID = types.MapID{1, 2, 3, 4}
	if !HasRideBug(s) {
		t.Fatal("bug not detected")
	}
	if err := FixRideBug(s); err != nil {
		t.Fatal(err)
	}
	once := encode(t, s)
	if HasRideBug(s) || s.Ride.State != tables.RideStateDead {
		t.Errorf("after fix: %+v", s.Ride)
	}
	if s.Ride.HP != 0 || s.Ride.MapID != (types.MapID{1, 2, 3, 4}) {
		t.Errorf("fix touched more than the state: %+v", s.Ride)
	}

	// A second run is refused and changes nothing.
	if err := FixRideBug(s); !errors.Is(err, errs.ErrFixPreconditionUnmet) {
		t.Errorf("second fix: got %v", err)
	}
	if !bytes.Equal(once, encode(t, s)) {
		t.Error("second fix changed the slot")
	}
}

// Decode a slot with a zeroed weather area, fix it, and check that the re-encoded slot
// differs only in the area id.
func Test_WeatherEndToEnd(t *testing.T) {
	s := newSlot(t)
	s.Weather = types.WorldAreaWeather{AreaID: 0, WeatherType: 3, Timer: 77}
	before := encode(t, s)

	tr := &slot.Trace{}
	decoded, err := slot.Decode(before, slot.SlotSize, slot.WithTrace(tr))
	if err != nil {
		t.Fatal(err)
	}
	if !HasWeatherCorruption(decoded) {
		t.Fatal("not detected")
	}
	if err := FixWeather(decoded, 0); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("area 0: got %v", err)
	}
	if err := FixWeather(decoded, 0x17D4); err != nil {
		t.Fatal(err)
	}
	after := encode(t, decoded)

	weather, _ := tr.Find("weather")
	for i := range before {
		if before[i] == after[i] {
			continue
		}
		// AreaID is the first u16 of the record.
		if i < weather.Start || i >= weather.Start+2 {
			t.Errorf("byte 0x%x changed outside the weather area id (0x%x)", i, weather.Start)
		}
	}
	if after[weather.Start] != 0xD4 || after[weather.Start+1] != 0x17 {
		t.Errorf("area id bytes % x", after[weather.Start:weather.Start+2])
	}
	if err := FixWeather(decoded, 0x17D4); !errors.Is(err, errs.ErrFixPreconditionUnmet) {
		t.Errorf("second fix: got %v", err)
	}
}

func Test_Time(t *testing.T) {
	s := newSlot(t)
	if err := FixTime(s, types.WorldAreaTime{Hour: 9}); !errors.Is(err, errs.ErrFixPreconditionUnmet) {
		t.Errorf("healthy clock: got %v", err)
	}
	s.Time = types.WorldAreaTime{}
	for _, bad := range []types.WorldAreaTime{{}, {Hour: 24}, {Minute: 60}} {
		if err := FixTime(s, bad); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Errorf("%v: got %v", bad, err)
		}
	}
	if err := FixTime(s, types.WorldAreaTime{Hour: 6, Minute: 30}); err != nil {
		t.Fatal(err)
	}
	if s.Time.String() != "06:30:00" || HasTimeCorruption(s) {
		t.Errorf("after fix: %v", s.Time)
	}
}

func Test_EmptySlotNeverCorrupt(t *testing.T) {
	s, err := slot.New(0, slot.SlotSize)
	if err != nil {
		t.Fatal(err)
	}
	if got := Inspect(s); len(got) != 0 {
		t.Errorf("empty slot has findings %v", got)
	}
	if err := FixWeather(s, 1); !errors.Is(err, errs.ErrFixPreconditionUnmet) {
		t.Errorf("got %v", err)
	}
}

func Test_Inspect(t *testing.T) {
	healthy := newSlot(t)
	broken := newSlot(t)
	broken.Ride.HP = 0
	broken.Time = types.WorldAreaTime{}

	findings := InspectAll([]*types.CharacterSlot{healthy, nil, broken})
	if len(findings) != 2 {
		t.Fatalf("got %v findings", len(findings))
	}
	for _, f := range findings {
		if f.Slot != 2 {
			t.Errorf("finding %v on slot %v", f.ID, f.Slot)
		}
	}
	if findings[0].ID != CheckRideBug || findings[1].ID != CheckTimeZero {
		t.Errorf("findings out of order: %v, %v", findings[0].ID, findings[1].ID)
	}
	if _, ok := Lookup(CheckWeatherAreaZero); !ok {
		t.Error("lookup failed")
	}
}

func Test_ParseArea(t *testing.T) {
	for in, want := range map[string]uint16{"6100": 6100, "0x17D4": 0x17D4} {
		if got, err := ParseArea(in); err != nil || got != want {
			t.Errorf("%v: got %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"0", "", "limgrave", "70000"} {
		if _, err := ParseArea(in); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}
