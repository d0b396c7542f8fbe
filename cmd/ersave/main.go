package main

// Save file inspector and repair tool for Elden Ring
//
// example usage:
//
// ersave list ER0000.sl2
// ersave check ER0000.sl2
// ersave load ER0000.sl2
// ersave fix 2 weather 6100
// ersave fix 2 time 12:00:00
// ersave fix 0 ride
// ersave save
// ersave watch
//
// --dir (dir) as the first argument overrides where save files are looked for.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"ersave/config"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

var commands = []struct {
	name string
	args string
	desc string
	run  func(a *app, ctx context.Context, args []string) error
}{
	{"help", "", "Display this possibly helpful info", nil},
	{"list", "[file]", "List the characters in a save (or the loaded one)", (*app).list},
	{"check", "[file]", "Check every slot for known corruption, and every checksum", (*app).check},
	{"dump", "(slot) [file]", "Show everything known about one character", (*app).dump},
	{"trace", "(slot) [file]", "Show where every field of a slot sits", (*app).trace},
	{"load", "(file)", "Load a save for fixing", (*app).load},
	{"fix", "(slot) ride | weather (area) | time (hh:mm:ss)", "Fix the loaded save", (*app).fix},
	{"save", "", "Write the fixed save back (the old one is kept as .old)", (*app).save},
	{"watch", "", "Watch the save directory and report corruption as it happens", (*app).watch},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// splitDir pulls a leading "--dir (dir)" off args.
func splitDir(args []string) (string, []string) {
	if len(args) > 1 && args[0] == "--dir" {
		return args[1], args[2:]
	}
	return "", args
}

func run(ctx context.Context, args []string, out io.Writer) error {
	dir, args := splitDir(args)
	cfg, err := config.Load(config.DefaultFilename)
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.Dir = dir
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, logger: logger, out: out}

	cmd := "help"
	if len(args) == 0 {
		fmt.Fprintln(out, "No args detected - falling back to \"help\", since you clearly need it...")
	} else {
		cmd, args = args[0], args[1:]
	}

	for _, c := range commands {
		if c.name != cmd {
			continue
		}
		if c.run == nil {
			a.help()
			return nil
		}
		return c.run(a, ctx, args)
	}
	return errors.New(cmd + " is not a command.  Try \"ersave help\".")
}

func (a *app) help() {
	fmt.Fprintln(a.out, "Elden Ring Save File Fixer")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(a.out, "   %v %v\n", c.name, c.args)
		fmt.Fprintf(a.out, "      %v\n", c.desc)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Save files are looked for in", a.cfg.Dir)
	fmt.Fprintln(a.out, "Slots are numbered from 0.")
}

// resolve turns a file name from the command line into a path.
func (a *app) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(a.cfg.Dir, file)
}
