package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/ini.v1"

	"ersave/container"
	"ersave/fixers"
	"ersave/slot"
	"ersave/tables"
)

// Real saves aren't checked in.  To run this, list some in testdata/files.ini:
//
//	dir = /path/to/saves
//
//	[clean]
//	files = ER0000.sl2, memory.dat
//
//	[WEATHER_AREA_ZERO]
//	files = broken_weather.sl2
//
// Section names other than "clean" are check ids that must fire on at least one slot of
// every file listed.
var corpusIndex = filepath.Join("testdata", "files.ini")

func Test_Corpus(t *testing.T) {
	cfg, err := ini.Load(corpusIndex)
	if err != nil {
		t.Skipf("no corpus: %v", err)
	}
	dir := cfg.Section("").Key("dir").String()

	files := map[string][]string{} // file -> check ids expected
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		for _, f := range strings.Split(sec.Key("files").String(), ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			name := filepath.Join(dir, f)
			if _, seen := files[name]; !seen {
				files[name] = nil
			}
			if sec.Name() != "clean" {
				files[name] = append(files[name], sec.Name())
			}
		}
	}
	if len(files) == 0 {
		// Something has clearly gone wrong here, and we want to avoid vacuous success
		t.Fatal("No filenames read!")
	}

	errorCount, successCount := 0, 0
	for name, expected := range files {
		raw, err := os.ReadFile(name)
		if err != nil {
			t.Logf("failed to load file %v, %v", name, err)
			errorCount++
			continue
		}
		c, err := container.Parse(raw)
		if err != nil {
			t.Logf("failed to parse file %v, %v", name, err)
			errorCount++
			continue
		}
		s := New(c, nil)
		if err := s.DecodeAll(context.Background()); err != nil {
			t.Logf("failed to read file %v, %v", name, err)
			errorCount++
			continue
		}

		ok := true
		for i := 0; i < c.SlotCount(); i++ {
			decoded, err := s.Slot(i)
			if err != nil {
				t.Logf("%v slot %v: %v", name, i, err)
				ok = false
				continue
			}
			b, _ := c.SlotBytes(i)
			out, err := slot.Encode(decoded, tables.SlotSize)
			if err != nil || !bytes.Equal(out, b) {
				t.Logf("%v slot %v mangled by decode->encode (%v)", name, i, err)
				ok = false
			}
		}

		found := map[string]bool{}
		for _, f := range s.Findings() {
			found[f.ID] = true
		}
		for _, id := range expected {
			if _, known := fixers.Lookup(id); !known {
				t.Logf("%v: %v is not a check id (bug in files.ini)", name, id)
				ok = false
			} else if !found[id] {
				t.Logf("%v: expected %v", name, id)
				ok = false
			}
		}

		// Nothing touched, so nothing should be written back.
		if written, err := s.Commit(); err != nil || len(written) != 0 {
			t.Logf("%v: untouched commit wrote %v (%v)", name, written, err)
			ok = false
		}
		if !bytes.Equal(c.Bytes(), raw) {
			t.Logf("%v: file changed by load->commit", name)
			ok = false
		}

		if ok {
			successCount++
		} else {
			errorCount++
		}
	}

	if errorCount > 0 {
		t.Errorf("Errors! (%v errors, %v successes)", errorCount, successCount)
	}
}
