package main

import (
	"bytes"
	"context"
	"crypto/md5"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ersave/container"
	"ersave/slot"
	"ersave/tables"
	"ersave/types"
	"ersave/utils"
)

// writePC writes a PC save whose slot 1 has a zeroed weather area.
func writePC(t *testing.T, path string) {
	t.Helper()
	s, err := slot.New(160, tables.SlotSize)
	if err != nil {
		t.Fatal(err)
	}
	utils.EncodeName("Melina", s.PlayerGameData.Name[:])
	s.PlayerGameData.Level = 9
	s.Time = types.WorldAreaTime{Hour: 3}
	b, err := slot.Encode(s, tables.SlotSize)
	if err != nil {
		t.Fatal(err)
	}

	file := make([]byte, 0x300+tables.SlotCount*(16+tables.SlotSize)+0x60000)
	copy(file, "BND4")
	for i := 0; i < tables.SlotCount; i++ {
		start := 0x300 + i*(16+tables.SlotSize)
		data := file[start+16 : start+16+tables.SlotSize]
		if i == 1 {
			copy(data, b)
		}
		sum := md5.Sum(data)
		copy(file[start:], sum[:])
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatal(err)
	}
}

func ersave(t *testing.T, dir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), append([]string{"--dir", dir}, args...), &out); err != nil {
		t.Fatalf("ersave %v: %v\n%v", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func Test_LoadFixSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ERSAVE_STASH", filepath.Join(dir, "ersave.tmp"))
	t.Setenv("ERSAVE_LOG_LEVEL", "error")
	path := filepath.Join(dir, "ER0000.sl2")
	writePC(t, path)

	out := ersave(t, dir, "check", "ER0000.sl2")
	if !strings.Contains(out, "WEATHER_AREA_ZERO") || !strings.Contains(out, "Melina") {
		t.Errorf("check output:\n%v", out)
	}

	out = ersave(t, dir, "load", "ER0000.sl2")
	if !strings.Contains(out, "Melina") {
		t.Errorf("load output:\n%v", out)
	}
	ersave(t, dir, "fix", "1", "weather", "6100")

	var errOut bytes.Buffer
	if err := run(context.Background(), []string{"--dir", dir, "fix", "1", "weather", "6100"}, &errOut); err == nil {
		t.Error("fixing twice should be refused")
	}
	if err := run(context.Background(), []string{"--dir", dir, "fix", "12", "ride"}, &errOut); err == nil {
		t.Error("slot 12 accepted")
	}

	out = ersave(t, dir, "save")
	if !strings.Contains(out, "New file written") {
		t.Errorf("save output:\n%v", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "ER0000.old")); err != nil {
		t.Errorf("no backup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ersave.tmp")); !os.IsNotExist(err) {
		t.Errorf("stash left behind: %v", err)
	}

	c, err := container.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.VerifyAll(); err != nil {
		t.Error(err)
	}
	b, _ := c.SlotBytes(1)
	s, err := slot.Decode(b, tables.SlotSize)
	if err != nil {
		t.Fatal(err)
	}
	if s.Weather.AreaID != 6100 {
		t.Errorf("weather area %v", s.Weather.AreaID)
	}

	out = ersave(t, dir, "check", "ER0000.sl2")
	if !strings.Contains(out, "No problems found") {
		t.Errorf("check after save:\n%v", out)
	}
}

func Test_ReadOnlyCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ERSAVE_LOG_LEVEL", "error")
	writePC(t, filepath.Join(dir, "ER0000.sl2"))

	if out := ersave(t, dir, "list", "ER0000.sl2"); !strings.Contains(out, "(empty)") || !strings.Contains(out, "Melina") {
		t.Errorf("list:\n%v", out)
	}
	if out := ersave(t, dir, "dump", "1", "ER0000.sl2"); !strings.Contains(out, "Melina") || !strings.Contains(out, "03:00:00") {
		t.Errorf("dump:\n%v", out)
	}
	if out := ersave(t, dir, "trace", "1", "ER0000.sl2"); !strings.Contains(out, "weather") || !strings.Contains(out, "tail") {
		t.Errorf("trace:\n%v", out)
	}
	if out := ersave(t, dir); !strings.Contains(out, "Commands:") {
		t.Errorf("help:\n%v", out)
	}
	if err := run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown command accepted")
	}
}
