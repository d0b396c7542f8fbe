package types

import (
	"strconv"

	"ersave/errs"
	"ersave/readers"
	"ersave/writers"
)

const InventoryItemSize = 12

type InventoryItem struct {
	GaitemHandle uint32
	Quantity     uint32
	Index        uint32 // acquisition order
}

func (i *InventoryItem) Read(r *readers.Reader) error {
	i.GaitemHandle, i.Quantity, i.Index = r.U32(), r.U32(), r.U32()
	return r.Err()
}

func (i *InventoryItem) Write(w *writers.Writer) error {
	w.U32(i.GaitemHandle)
	w.U32(i.Quantity)
	w.U32(i.Index)
	return w.Err()
}

// Inventory is two parallel fixed-capacity arrays.  Capacity depends on whether this is
// the held inventory or the storage box, so the caller supplies it.  The distinct counts
// are stored, not derived: they are preserved as read.
type Inventory struct {
	CommonCount           uint32
	Common                []InventoryItem
	KeyCount              uint32
	Key                   []InventoryItem
	NextEquipIndex        uint32
	NextAcquisitionSortID uint32
}

// InventorySize is the encoded width of an inventory with the given capacities.
func InventorySize(commonCap, keyCap int) int {
	return 4 + commonCap*InventoryItemSize + 4 + keyCap*InventoryItemSize + 8
}

// NewInventory is an empty inventory at full capacity.
func NewInventory(commonCap, keyCap int) Inventory {
	return Inventory{
		Common: make([]InventoryItem, commonCap),
		Key:    make([]InventoryItem, keyCap),
	}
}

// ReadInventory always reads the full capacity.
func ReadInventory(r *readers.Reader, commonCap, keyCap int) (Inventory, error) {
	inv := Inventory{
		Common: make([]InventoryItem, commonCap),
		Key:    make([]InventoryItem, keyCap),
	}
	inv.CommonCount = r.U32()
	for i := range inv.Common {
		inv.Common[i].Read(r)
	}
	inv.KeyCount = r.U32()
	for i := range inv.Key {
		inv.Key[i].Read(r)
	}
	inv.NextEquipIndex = r.U32()
	inv.NextAcquisitionSortID = r.U32()
	if err := r.Err(); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

// Write refuses an inventory whose arrays were resized; writing it would shift
// everything after it.
func (inv *Inventory) Write(w *writers.Writer, commonCap, keyCap int) error {
	if len(inv.Common) != commonCap || len(inv.Key) != keyCap {
		return errs.WithMetadata(errs.CodeSlotOverrun, "inventory does not match its capacity", map[string]string{
			"common":     strconv.Itoa(len(inv.Common)),
			"common_cap": strconv.Itoa(commonCap),
			"key":        strconv.Itoa(len(inv.Key)),
			"key_cap":    strconv.Itoa(keyCap),
		})
	}
	w.U32(inv.CommonCount)
	for i := range inv.Common {
		inv.Common[i].Write(w)
	}
	w.U32(inv.KeyCount)
	for i := range inv.Key {
		inv.Key[i].Write(w)
	}
	w.U32(inv.NextEquipIndex)
	w.U32(inv.NextAcquisitionSortID)
	return w.Err()
}

// Gestures is the unlocked-gesture list.  Its length comes from the dispatch table.
type Gestures []uint32

func ReadGestures(r *readers.Reader, count int) (Gestures, error) {
	g := make(Gestures, count)
	r.U32s(g)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g Gestures) Write(w *writers.Writer) error {
	w.U32s(g)
	return w.Err()
}

// Regions is the unlocked-region list.  Unlike everything else here its length is
// declared in the data: a u32 count followed by that many ids.
type Regions []uint32

func ReadRegions(r *readers.Reader) (Regions, error) {
	count := r.U32()
	if err := r.Err(); err != nil {
		return nil, err
	}
	// Every id is 4 bytes, so a count the buffer can't hold is already an overrun.
	if uint64(count)*4 > uint64(r.Remaining()) {
		r.Fail(errs.WithMetadata(errs.CodeUnexpectedEndOfData, "region count exceeds remaining data", map[string]string{
			"count":  strconv.FormatUint(uint64(count), 10),
			"offset": "0x" + strconv.FormatInt(int64(r.Position()-4), 16),
		}))
		return nil, r.Err()
	}
	out := make(Regions, count)
	r.U32s(out)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (rs Regions) Write(w *writers.Writer) error {
	w.U32(uint32(len(rs)))
	w.U32s(rs)
	return w.Err()
}
