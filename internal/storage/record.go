// Package storage decodes the per-character container files (inventory, safe,
// locker, wardrobes...) into item records.
package storage

import "github.com/vanatools/vanainv/internal/datfile"

const (
	HeaderSize = 16
	RecordSize = 8

	// MaxSlot is the largest Aux1 value read as a 1-based container position.
	MaxSlot = 80
	// SlotUnknown marks a record whose Aux1 is not a container position.
	SlotUnknown = -1
	// unknownSlotKey places slot-unknown records after every positioned one.
	unknownSlotKey = 9999

	emptyItemID    = 0x0000
	sentinelItemID = 0xFFFF
)

// Record is one occupied entry of a container file.
type Record struct {
	ItemID uint16
	Aux1   uint16 // container position when <= MaxSlot
	Aux2   uint32 // not decoded further
	Index  int    // zero-based record position within the file
}

// Slot returns the 1-based container position, or SlotUnknown.
func (r Record) Slot() int {
	if r.Aux1 <= MaxSlot {
		return int(r.Aux1)
	}
	return SlotUnknown
}

// SortKey orders positioned records by slot and pushes the rest to the end.
func (r Record) SortKey() int {
	if s := r.Slot(); s > 0 {
		return s
	}
	return unknownSlotKey
}

// RecordCount returns how many whole records a file of length n holds.
func RecordCount(n int) int {
	if n < HeaderSize {
		return 0
	}
	return (n - HeaderSize) / RecordSize
}

// Decode reads every whole record after the header and returns the occupied
// ones in file order. A trailing partial record is ignored.
func Decode(data []byte) []Record {
	count := RecordCount(len(data))
	records := make([]Record, 0, count)
	r := datfile.NewReader(data)
	r.Skip(HeaderSize)
	for i := 0; i < count; i++ {
		rec := Record{
			ItemID: r.ReadH(),
			Aux1:   r.ReadH(),
			Aux2:   r.ReadD(),
			Index:  i,
		}
		if rec.ItemID == emptyItemID || rec.ItemID == sentinelItemID {
			continue
		}
		records = append(records, rec)
	}
	return records
}
