package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"ersave/container"
	"ersave/errs"
	"ersave/fixers"
	"ersave/session"
	"ersave/slot"
	"ersave/stash"
	"ersave/tables"
	"ersave/types"
)

// source finds the save a read-only command works on: the file named in args if there
// is one, the loaded save otherwise.
func (a *app) source(args []string) (*container.Container, string, error) {
	if len(args) > 0 {
		path := a.resolve(args[0])
		c, err := container.Load(path)
		return c, path, err
	}
	st, err := stash.Read(a.cfg.Stash)
	if err != nil {
		return nil, "", err
	}
	c, err := container.Parse(st.Data)
	return c, st.Path + " (loaded)", err
}

func (a *app) open(ctx context.Context, c *container.Container) (*session.Session, error) {
	s := session.New(c, a.logger)
	return s, s.DecodeAll(ctx)
}

func parseSlot(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= tables.SlotCount {
		return 0, errs.Newf(errs.CodeInvalidArgument, "%q is not a slot; slots are 0 to %v", arg, tables.SlotCount-1)
	}
	return i, nil
}

func parseClock(arg string) (types.WorldAreaTime, error) {
	var t types.WorldAreaTime
	if _, err := fmt.Sscanf(arg, "%d:%d:%d", &t.Hour, &t.Minute, &t.Second); err != nil {
		return t, errs.Wrap(errs.CodeInvalidArgument, "time should look like 12:00:00", err)
	}
	return t, nil
}

func (a *app) list(ctx context.Context, args []string) error {
	c, path, err := a.source(args)
	if err != nil {
		return err
	}
	s, err := a.open(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, path, "-", c.Format)
	fmt.Fprintln(a.out, slotTable(s))
	return nil
}

func (a *app) check(ctx context.Context, args []string) error {
	c, path, err := a.source(args)
	if err != nil {
		return err
	}
	s, err := a.open(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, path, "-", c.Format)

	problems := 0
	for i := 0; i < c.SlotCount(); i++ {
		if err := c.VerifyChecksum(i); err != nil {
			fmt.Fprintf(a.out, "slot %v: %v\n", i, err)
			problems++
		}
		if _, err := s.Slot(i); err != nil {
			fmt.Fprintf(a.out, "slot %v: could not be read: %v\n", i, err)
			problems++
		}
	}
	findings := s.Findings()
	if len(findings) > 0 {
		fmt.Fprintln(a.out, findingTable(s, findings))
	}
	problems += len(findings)

	if problems == 0 {
		fmt.Fprintln(a.out, "No problems found")
	} else {
		fmt.Fprintln(a.out, humanize.Comma(int64(problems)), "problem(s) found")
	}
	return nil
}

func (a *app) dump(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("Dump what?  Slot number expected.")
	}
	i, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	c, _, err := a.source(args[1:])
	if err != nil {
		return err
	}
	b, err := c.SlotBytes(i)
	if err != nil {
		return err
	}
	cs, err := slot.Decode(b, tables.SlotSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, summaryTable(cs.Summary()))
	fmt.Fprintf(a.out, "digest %016x\n", slot.Digest(b))
	return nil
}

func (a *app) trace(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("Trace what?  Slot number expected.")
	}
	i, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	c, _, err := a.source(args[1:])
	if err != nil {
		return err
	}
	b, err := c.SlotBytes(i)
	if err != nil {
		return err
	}
	tr := &slot.Trace{}
	_, decodeErr := slot.Decode(b, tables.SlotSize, slot.WithTrace(tr))
	// A partial trace is the useful part when decoding fails.
	if err := tr.Render(a.out); err != nil {
		return err
	}
	return decodeErr
}

func (a *app) load(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("Load what?  Filename expected.")
	}
	path := a.resolve(args[0])
	c, err := container.Load(path)
	if err != nil {
		return err
	}
	s, err := a.open(ctx, c)
	if err != nil {
		return err
	}
	if err := stash.Write(a.cfg.Stash, &stash.Stash{Path: path, Loaded: time.Now(), Data: c.Bytes()}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Loaded", path)
	fmt.Fprintln(a.out, slotTable(s))
	if f := s.Findings(); len(f) > 0 {
		fmt.Fprintln(a.out, findingTable(s, f))
	}
	return nil
}

func (a *app) fix(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("Fix what?  Usage: fix (slot) ride | weather (area) | time (hh:mm:ss)")
	}
	i, err := parseSlot(args[0])
	if err != nil {
		return err
	}

	applied := stash.Applied{Slot: i}
	var fix func(*types.CharacterSlot) error
	switch args[1] {
	case "ride":
		applied.Check = fixers.CheckRideBug
		fix = fixers.FixRideBug
	case "weather":
		if len(args) < 3 {
			return errors.New("Set the weather to which area?  Area id expected.")
		}
		area, err := fixers.ParseArea(args[2])
		if err != nil {
			return err
		}
		applied.Check, applied.Arg = fixers.CheckWeatherAreaZero, args[2]
		fix = func(s *types.CharacterSlot) error { return fixers.FixWeather(s, area) }
	case "time":
		if len(args) < 3 {
			return errors.New("Set the clock to what?  hh:mm:ss expected.")
		}
		t, err := parseClock(args[2])
		if err != nil {
			return err
		}
		applied.Check, applied.Arg = fixers.CheckTimeZero, t.String()
		fix = func(s *types.CharacterSlot) error { return fixers.FixTime(s, t) }
	default:
		return errors.New(args[1] + " is not fixable.  Fixable are: ride, weather, time")
	}

	st, err := stash.Read(a.cfg.Stash)
	if err != nil {
		return err
	}
	c, err := container.Parse(st.Data)
	if err != nil {
		return err
	}
	s, err := a.open(ctx, c)
	if err != nil {
		return err
	}
	if err := s.Apply(i, fix); err != nil {
		if errors.Is(err, errs.ErrFixPreconditionUnmet) {
			return fmt.Errorf("slot %v does not need that fix", i)
		}
		return err
	}
	if _, err := s.Commit(); err != nil {
		return err
	}

	st.Data = c.Bytes()
	st.Applied = append(st.Applied, applied)
	if err := stash.Write(a.cfg.Stash, st); err != nil {
		return err
	}
	check, _ := fixers.Lookup(applied.Check)
	fmt.Fprintln(a.out, "Slot", i, "fixed:", check.Name)
	fmt.Fprintln(a.out, "Run \"ersave save\" to write it to", st.Path)
	return nil
}

func (a *app) save(ctx context.Context, args []string) error {
	st, err := stash.Read(a.cfg.Stash)
	if err != nil {
		return err
	}
	c, err := container.Parse(st.Data)
	if err != nil {
		return err
	}
	if err := c.VerifyAll(); err != nil {
		return err
	}

	for _, ap := range st.Applied {
		fmt.Fprintln(a.out, "slot", ap.Slot, ap.Check, ap.Arg)
	}
	if err := c.Save(st.Path, a.cfg.Backup); err != nil {
		return err
	}
	if a.cfg.Backup {
		fmt.Fprintln(a.out, st.Path, "renamed to", container.BackupName(st.Path))
	}
	fmt.Fprintln(a.out, "New file written to", st.Path)
	a.logger.Info("save written", "path", st.Path, "fixes", len(st.Applied), "loaded", humanize.Time(st.Loaded))

	if err := stash.Remove(a.cfg.Stash); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Temporary data cleaned up")
	return nil
}
