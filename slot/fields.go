package slot

import (
	"strconv"

	"ersave/errs"
	"ersave/readers"
	"ersave/tables"
	"ersave/types"
	"ersave/writers"
)

// step is one field of the slot, in both directions.  Decode and Encode walk the same
// list, so the two can't drift apart.
type step struct {
	name   string
	decode func(r *readers.Reader) error
	encode func(w *writers.Writer) error
}

func record(name string, rec types.Record) step {
	return step{name, rec.Read, rec.Write}
}

func u8(name string, p *uint8) step {
	return step{
		name,
		func(r *readers.Reader) error { *p = r.U8(); return r.Err() },
		func(w *writers.Writer) error { w.U8(*p); return w.Err() },
	}
}

func u32(name string, p *uint32) step {
	return step{
		name,
		func(r *readers.Reader) error { *p = r.U32(); return r.Err() },
		func(w *writers.Writer) error { w.U32(*p); return w.Err() },
	}
}

func i32(name string, p *int32) step {
	return step{
		name,
		func(r *readers.Reader) error { *p = r.I32(); return r.Err() },
		func(w *writers.Writer) error { w.I32(*p); return w.Err() },
	}
}

func u64(name string, p *uint64) step {
	return step{
		name,
		func(r *readers.Reader) error { *p = r.U64(); return r.Err() },
		func(w *writers.Writer) error { w.U64(*p); return w.Err() },
	}
}

func raw(name string, p []byte) step {
	return step{
		name,
		func(r *readers.Reader) error { r.Fill(p); return r.Err() },
		func(w *writers.Writer) error { w.Bytes(p); return w.Err() },
	}
}

// wrongShape is the encode-side complaint about a collection or optional field that
// doesn't match the slot's variant.  Writing it anyway would shift every later field.
func wrongShape(what string, want, have int) error {
	return errs.WithMetadata(errs.CodeSlotOverrun, what+" does not match the slot version", map[string]string{
		"want": strconv.Itoa(want),
		"have": strconv.Itoa(have),
	})
}

// steps lists every field after the version, in file order, for a non-empty slot of
// variant v.  The tail is not a step: its width is whatever the steps leave over.
func steps(s *types.CharacterSlot, v tables.StructuralVariant) []step {
	out := []step{
		record("map_id", &s.MapID),
		raw("unk0x8", s.Unk0x8[:]),
		raw("unk0x10", s.Unk0x10[:]),
		{
			"gaitem_table",
			func(r *readers.Reader) (err error) {
				s.GaitemTable, err = types.ReadGaitemTable(r, v.GaitemCount)
				return err
			},
			func(w *writers.Writer) error {
				if len(s.GaitemTable) != v.GaitemCount {
					return wrongShape("gaitem table length", v.GaitemCount, len(s.GaitemTable))
				}
				return s.GaitemTable.Write(w)
			},
		},
		record("player_game_data", &s.PlayerGameData),
		{
			"sp_effects",
			func(r *readers.Reader) error {
				for i := range s.SPEffects {
					s.SPEffects[i].Read(r)
				}
				return r.Err()
			},
			func(w *writers.Writer) error {
				for i := range s.SPEffects {
					s.SPEffects[i].Write(w)
				}
				return w.Err()
			},
		},
		record("equip_index", &s.EquipIndex),
		record("active_weapon_slots", &s.ActiveWeaponSlots),
		record("equip_item_ids", &s.EquipItemIDs),
		record("equip_gaitem_handles", &s.EquipGaitemHandles),
		inventory("inventory_held", &s.InventoryHeld, tables.HeldCommonCap, tables.HeldKeyCap),
		record("equipped_spells", &s.EquippedSpells),
		record("equipped_items", &s.EquippedItems),
		record("equipped_gestures", &s.EquippedGestures),
		record("acquired_projectiles", &s.AcquiredProjectiles),
		record("equipped_armaments_and_items", &s.EquippedArmamentsAndItems),
		record("equipped_physics", &s.EquippedPhysics),
		record("face_data", &s.FaceData),
		inventory("inventory_storage", &s.InventoryStorage, tables.StorageCommonCap, tables.StorageKeyCap),
		{
			"gestures",
			func(r *readers.Reader) (err error) {
				s.Gestures, err = types.ReadGestures(r, v.GestureCount)
				return err
			},
			func(w *writers.Writer) error {
				if len(s.Gestures) != v.GestureCount {
					return wrongShape("gesture list length", v.GestureCount, len(s.Gestures))
				}
				return s.Gestures.Write(w)
			},
		},
		{
			"regions",
			func(r *readers.Reader) (err error) {
				s.Regions, err = types.ReadRegions(r)
				return err
			},
			func(w *writers.Writer) error { return s.Regions.Write(w) },
		},
		record("ride", &s.Ride),
		u8("control_byte", &s.ControlByte),
		record("blood_stain", &s.BloodStain),
		u32("unk_gamedataman_0x120", &s.UnkGameDataMan0x120),
		u32("unk_gamedataman_0x88", &s.UnkGameDataMan0x88),
		record("menu_save_load", &s.MenuSaveLoad),
		record("trophy_equip_data", &s.TrophyEquipData),
		record("gaitem_game_data", &s.GaitemGameData),
		record("tutorial_data", &s.TutorialData),
		u8("gameman_0x8c", &s.GameMan0x8c),
		u8("gameman_0x8d", &s.GameMan0x8d),
		u8("gameman_0x8e", &s.GameMan0x8e),
		u32("total_deaths", &s.TotalDeaths),
		i32("character_type", &s.CharacterType),
		u8("in_online_session", &s.InOnlineSession),
		u32("character_type_online", &s.CharacterTypeOnline),
		u32("last_rested_grace", &s.LastRestedGrace),
		u8("not_alone", &s.NotAlone),
		u32("countdown_timer", &s.CountdownTimer),
		u32("unk_gamedataman_0x124", &s.UnkGameDataMan0x124),
		{
			"event_flags",
			func(r *readers.Reader) error {
				s.EventFlags = r.Bytes(tables.EventFlagsSize)
				return r.Err()
			},
			func(w *writers.Writer) error {
				if len(s.EventFlags) != tables.EventFlagsSize {
					return wrongShape("event flag block length", tables.EventFlagsSize, len(s.EventFlags))
				}
				w.Bytes(s.EventFlags)
				return w.Err()
			},
		},
		u8("event_flags_terminator", &s.EventFlagsTerminator),
		record("field_area", &s.FieldArea),
		record("world_area", &s.WorldArea),
		record("world_geom_man", &s.WorldGeomMan),
		record("world_geom_man2", &s.WorldGeomMan2),
		record("rend_man", &s.RendMan),
		record("player_coordinates", &s.PlayerCoordinates),
		u8("game_man_0x5be", &s.GameMan0x5be),
		u8("game_man_0x5bf", &s.GameMan0x5bf),
		u32("spawn_point_entity_id", &s.SpawnPointEntityID),
		u32("game_man_0xb64", &s.GameMan0xb64),
	}

	if v.HasTempSpawnPoint {
		out = append(out, step{
			"temp_spawn_point_entity_id",
			func(r *readers.Reader) error {
				id := r.U32()
				s.TempSpawnPointEntityID = &id
				return r.Err()
			},
			func(w *writers.Writer) error {
				w.U32(*s.TempSpawnPointEntityID)
				return w.Err()
			},
		})
	}
	if v.HasGameManExtraByte {
		out = append(out, step{
			"game_man_0xcb3",
			func(r *readers.Reader) error {
				b := r.U8()
				s.GameMan0xcb3 = &b
				return r.Err()
			},
			func(w *writers.Writer) error {
				w.U8(*s.GameMan0xcb3)
				return w.Err()
			},
		})
	}

	return append(out,
		record("net_man", &s.NetMan),
		record("weather", &s.Weather),
		record("time", &s.Time),
		record("base_version", &s.BaseVersion),
		u64("steam_id", &s.SteamID),
		record("ps5_activity", &s.PS5Activity),
		record("dlc", &s.DLC),
		record("player_game_data_hash", &s.PlayerGameDataHash),
	)
}

func inventory(name string, inv *types.Inventory, commonCap, keyCap int) step {
	return step{
		name,
		func(r *readers.Reader) (err error) {
			*inv, err = types.ReadInventory(r, commonCap, keyCap)
			return err
		},
		func(w *writers.Writer) error { return inv.Write(w, commonCap, keyCap) },
	}
}

// checkOptional refuses a slot whose optional fields disagree with its variant.  A nil
// pointer where the version needs the field (or the reverse) would change the width.
func checkOptional(s *types.CharacterSlot, v tables.StructuralVariant) error {
	if (s.TempSpawnPointEntityID != nil) != v.HasTempSpawnPoint {
		return wrongShape("temp_spawn_point_entity_id presence", btoi(v.HasTempSpawnPoint), btoi(s.TempSpawnPointEntityID != nil))
	}
	if (s.GameMan0xcb3 != nil) != v.HasGameManExtraByte {
		return wrongShape("game_man_0xcb3 presence", btoi(v.HasGameManExtraByte), btoi(s.GameMan0xcb3 != nil))
	}
	return nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
