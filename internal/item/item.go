// Package item is the single item shape handed to reports. Records from
// container files, equipment-set slots and live exports are converted here,
// enriched from the item dictionary.
package item

import (
	"fmt"

	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/equipset"
	"github.com/vanatools/vanainv/internal/seiton"
	"github.com/vanatools/vanainv/internal/storage"
)

// Source tells which upstream shape an Item was built from.
type Source int

const (
	SourceStorage Source = iota
	SourceEquipSet
	SourceLive
)

func (s Source) String() string {
	switch s {
	case SourceStorage:
		return "storage"
	case SourceEquipSet:
		return "equipset"
	case SourceLive:
		return "live"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Item is one item reference with its dictionary data.
type Item struct {
	Source    Source
	ID        uint16
	Name      string
	Category  string
	Type      int
	Skill     *int
	Slots     *int
	Container string
	Slot      int // storage.SlotUnknown when not known
	Index     int // record index within the source file, -1 when not applicable
	Aux1      uint16
	Aux2      uint32
	Count     int
}

// HexID returns the id formatted as 0xNNNN.
func (it Item) HexID() string {
	return fmt.Sprintf("0x%04X", it.ID)
}

// Key returns the organize sort key of the item.
func (it Item) Key() seiton.Key {
	return seiton.KeyFor(int(it.ID), it.Category, it.Type, it.Skill, it.Slots)
}

func enrich(it *Item, l data.Lookup, lang data.Language) {
	info := data.Resolve(l, it.ID)
	if it.Name == "" {
		it.Name = info.Name(lang)
	}
	if it.Category == "" {
		it.Category = info.Category
	}
	if it.Type == 0 {
		it.Type = info.Type
	}
	if it.Skill == nil {
		it.Skill = info.Skill
	}
	if it.Slots == nil {
		it.Slots = info.Slots
	}
}

// FromRecord converts a container record.
func FromRecord(container string, r storage.Record, l data.Lookup, lang data.Language) Item {
	it := Item{
		Source:    SourceStorage,
		ID:        r.ItemID,
		Container: container,
		Slot:      r.Slot(),
		Index:     r.Index,
		Aux1:      r.Aux1,
		Aux2:      r.Aux2,
		Count:     1,
	}
	enrich(&it, l, lang)
	return it
}

// FromContainer converts every record of c, keeping the container's order.
func FromContainer(c *storage.Container, l data.Lookup, lang data.Language) []Item {
	items := make([]Item, 0, len(c.Records))
	for _, r := range c.Records {
		items = append(items, FromRecord(c.Label, r, l, lang))
	}
	return items
}

// FromEquipSlot converts an occupied equipment-set slot. ok is false for an
// empty slot.
func FromEquipSlot(s equipset.Slot, l data.Lookup, lang data.Language) (Item, bool) {
	if s.Empty() || s.ItemID == 0 {
		return Item{}, false
	}
	slot := int(s.BagIndex)
	if slot == 0 {
		slot = storage.SlotUnknown
	}
	it := Item{
		Source:    SourceEquipSet,
		ID:        s.ItemID,
		Container: s.Storage.String(),
		Slot:      slot,
		Index:     -1,
		Count:     1,
	}
	enrich(&it, l, lang)
	return it, true
}

// Organize sorts items into the in-game organize order.
func Organize(items []Item) {
	seiton.Sort(items, Item.Key)
}
