package equipset

import (
	"encoding/hex"
	"fmt"

	"github.com/vanatools/vanainv/internal/datfile"
)

// SlotKind identifies one of the 16 equipment positions of a set, in the
// order they are stored.
type SlotKind int

const (
	SlotMain SlotKind = iota
	SlotSub
	SlotRange
	SlotAmmo
	SlotHead
	SlotBody
	SlotHands
	SlotLegs
	SlotFeet
	SlotNeck
	SlotWaist
	SlotEar1
	SlotEar2
	SlotRing1
	SlotRing2
	SlotBack
	SlotCount
)

var slotKeys = [SlotCount]string{
	"main", "sub", "range", "ammo", "head", "body", "hands", "legs",
	"feet", "neck", "waist", "ear1", "ear2", "ring1", "ring2", "back",
}

// Key returns the lower-case slot name used in exports.
func (k SlotKind) Key() string {
	if k < 0 || k >= SlotCount {
		return fmt.Sprintf("slot%d", int(k))
	}
	return slotKeys[k]
}

func (k SlotKind) String() string {
	return k.Key()
}

// Slot is one 4-byte equipment entry of a set.
type Slot struct {
	Kind      SlotKind
	StorageID uint8
	BagIndex  uint8 // 1-based position in the referenced container
	ItemID    uint16
	Raw       [SlotSize]byte
	Storage   Resolution
}

// Empty reports whether the slot holds nothing. Storage id 0 alone is the
// inventory, so the item id must be zero too.
func (s Slot) Empty() bool {
	return s.StorageID == 0 && s.ItemID == 0
}

// RawHex returns the slot bytes as lower-case hex.
func (s Slot) RawHex() string {
	return hex.EncodeToString(s.Raw[:])
}

// DecodeSlot reads one slot entry. Input shorter than SlotSize yields an
// empty slot.
func DecodeSlot(kind SlotKind, b []byte) Slot {
	s := Slot{Kind: kind}
	if len(b) < SlotSize {
		s.Storage = ResolveStorage(0)
		return s
	}
	copy(s.Raw[:], b[:SlotSize])
	r := datfile.NewReader(b[:SlotSize])
	s.StorageID = r.ReadC()
	s.BagIndex = r.ReadC()
	s.ItemID = r.ReadH()
	s.Storage = ResolveStorage(s.StorageID)
	return s
}
