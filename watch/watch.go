// Package watch reports slot corruption as the game writes saves.
//
// It watches one directory.  When a save file stops changing for the settle time it is
// read, every slot is checked, and anything not already reported for that file and
// slot is sent out.  A finding that goes away is reported once as cleared.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ersave/container"
	"ersave/fixers"
	"ersave/session"
	"ersave/types"
)

type Report struct {
	File    string
	Slot    int
	Name    string // character name
	Check   fixers.Check
	Cleared bool
}

func (r Report) String() string {
	if r.Cleared {
		return fmt.Sprintf("%v slot %v (%v): %v cleared", filepath.Base(r.File), r.Slot, r.Name, r.Check.Name)
	}
	return fmt.Sprintf("%v slot %v (%v): %v - %v", filepath.Base(r.File), r.Slot, r.Name, r.Check.Name, r.Check.Expl)
}

// IsSave says whether a file name looks like a save: a PC .sl2, or a PlayStation
// memory dump.
func IsSave(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".sl2" || ext == ".dat"
}

type Watcher struct {
	dir    string
	settle time.Duration
	logger *slog.Logger

	watcher *fsnotify.Watcher

	mu       sync.Mutex
	stopped  bool
	timers   map[string]*time.Timer
	reported map[string]map[int]map[string]bool // file -> slot -> check id
}

func New(dir string, settle time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		dir:      dir,
		settle:   settle,
		logger:   logger,
		timers:   map[string]*time.Timer{},
		reported: map[string]map[int]map[string]bool{},
	}
}

// Start begins watching.  Reports go to out until Stop; out is never closed.
func (w *Watcher) Start(out chan<- Report) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) && IsSave(event.Name) {
					w.schedule(event.Name, out)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("watch error", "dir", w.dir, "err", err)
			}
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}
	w.logger.Info("watching", "dir", w.dir, "settle", w.settle)
	return nil
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// schedule (re)starts filename's settle timer.  The game writes a save in several
// goes, so only the last write counts.
func (w *Watcher) schedule(filename string, out chan<- Report) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.timers[filename]; ok {
		t.Stop()
	}
	w.timers[filename] = time.AfterFunc(w.settle, func() {
		reports, err := w.Scan(context.Background(), filename)
		if err != nil {
			w.logger.Warn("could not check save", "file", filename, "err", err)
			return
		}
		for _, r := range reports {
			w.mu.Lock()
			stopped := w.stopped
			w.mu.Unlock()
			if stopped {
				return
			}
			out <- r
		}
	})
}

// Scan checks filename now and returns what has changed since the last scan of it.
func (w *Watcher) Scan(ctx context.Context, filename string) ([]Report, error) {
	c, err := container.Load(filename)
	if err != nil {
		return nil, err
	}
	s := session.New(c, w.logger)
	if err := s.DecodeAll(ctx); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	previous := w.reported[filename]
	current := map[int]map[string]bool{}
	reports := []Report{}

	for i, sl := range s.Slots() {
		if sl == nil {
			continue
		}
		current[i] = map[string]bool{}
		for _, check := range fixers.Checks {
			if !safeDetect(w.logger, check, sl) {
				continue
			}
			current[i][check.ID] = true
			if !previous[i][check.ID] {
				reports = append(reports, Report{filename, i, sl.PlayerGameData.CharacterName(), check, false})
			}
		}
		for id := range previous[i] {
			if !current[i][id] {
				check, _ := fixers.Lookup(id)
				reports = append(reports, Report{filename, i, sl.PlayerGameData.CharacterName(), check, true})
			}
		}
	}
	w.reported[filename] = current
	return reports, nil
}

// safeDetect keeps one broken detector from taking the watcher down with it.
func safeDetect(logger *slog.Logger, check fixers.Check, s *types.CharacterSlot) (found bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("check panicked", "check", check.ID, "panic", r, "stack", string(debug.Stack()))
			found = false
		}
	}()
	return check.Detect(s)
}
