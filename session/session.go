// Package session holds every slot of one save file while it is being inspected and
// repaired, and writes back only what changed.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"ersave/errs"
	"ersave/fixers"
	"ersave/slot"
	"ersave/tables"
	"ersave/types"
)

// Store is where slot bytes come from and go back to.  container.Container is one.
type Store interface {
	SlotCount() int
	SlotBytes(i int) ([]byte, error)
	PutSlotBytes(i int, b []byte) error
}

type entry struct {
	slot   *types.CharacterSlot
	digest uint64 // of the bytes as loaded
	err    error
}

type Session struct {
	store  Store
	logger *slog.Logger
	slots  []entry
}

func New(store Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{store: store, logger: logger}
}

// DecodeAll decodes every slot, one goroutine each.  A slot that fails to decode is
// remembered with its error and the rest carry on; only a failure to read the store
// (or ctx ending) is returned.
func (s *Session) DecodeAll(ctx context.Context) error {
	entries := make([]entry, s.store.SlotCount())
	g, ctx := errgroup.WithContext(ctx)
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := s.store.SlotBytes(i)
			if err != nil {
				return err
			}
			// Each goroutine owns entries[i] and nothing else.
			entries[i].digest = slot.Digest(b)
			entries[i].slot, entries[i].err = slot.Decode(b, tables.SlotSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.slots = entries

	for i, e := range entries {
		switch {
		case e.err != nil:
			s.logger.Warn("slot did not decode", "slot", i, "code", errs.CodeOf(e.err), "err", e.err)
		case e.slot.IsEmpty():
			s.logger.Debug("slot empty", "slot", i)
		default:
			s.logger.Debug("slot decoded", "slot", i, "version", e.slot.Version,
				"name", e.slot.PlayerGameData.CharacterName(), "digest", strconv.FormatUint(e.digest, 16))
		}
	}
	return nil
}

func (s *Session) SlotCount() int {
	return len(s.slots)
}

func (s *Session) get(i int) (*entry, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, errs.WithMetadata(errs.CodeInvalidArgument, "no such slot", map[string]string{"slot": strconv.Itoa(i)})
	}
	return &s.slots[i], nil
}

// Slot returns the decoded slot i, or the error it failed to decode with.
func (s *Session) Slot(i int) (*types.CharacterSlot, error) {
	e, err := s.get(i)
	if err != nil {
		return nil, err
	}
	return e.slot, e.err
}

// Slots returns every decoded slot; entries that failed to decode are nil.
func (s *Session) Slots() []*types.CharacterSlot {
	out := make([]*types.CharacterSlot, len(s.slots))
	for i, e := range s.slots {
		out[i] = e.slot
	}
	return out
}

// Findings runs every check on every slot that decoded.
func (s *Session) Findings() []fixers.Finding {
	return fixers.InspectAll(s.Slots())
}

// Apply runs fix on slot i.  The fix works on a decoded slot, so a slot that failed to
// decode can't be fixed.
func (s *Session) Apply(i int, fix func(*types.CharacterSlot) error) error {
	c, err := s.Slot(i)
	if err != nil {
		return err
	}
	if err := fix(c); err != nil {
		return fmt.Errorf("slot %v: %w", i, err)
	}
	s.logger.Info("fix applied", "slot", i)
	return nil
}

// Commit re-encodes every decoded slot and puts back the ones whose bytes changed.
// It returns the indices written.
func (s *Session) Commit() ([]int, error) {
	var g errgroup.Group
	encoded := make([][]byte, len(s.slots))
	for i, e := range s.slots {
		if e.slot == nil {
			continue
		}
		g.Go(func() error {
			b, err := slot.Encode(e.slot, tables.SlotSize)
			if err != nil {
				return fmt.Errorf("slot %v: %w", i, err)
			}
			if slot.Digest(b) == e.digest {
				return nil
			}
			encoded[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := []int{}
	for i, b := range encoded {
		if b == nil {
			continue
		}
		if err := s.store.PutSlotBytes(i, b); err != nil {
			return written, fmt.Errorf("slot %v: %w", i, err)
		}
		s.slots[i].digest = slot.Digest(b)
		written = append(written, i)
		s.logger.Info("slot written", "slot", i, "digest", strconv.FormatUint(s.slots[i].digest, 16))
	}
	return written, nil
}
