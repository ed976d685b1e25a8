// Package equipset decodes the equipment-set files es0.dat..es9.dat. Each
// file holds a 24-byte header followed by 20 named sets of 16 slots.
package equipset

import (
	"errors"
	"fmt"

	"github.com/vanatools/vanainv/internal/datfile"
)

const (
	HeaderSize     = 24
	SetSize        = 80
	SetCount       = 20
	SlotSize       = 4
	SetNameSize    = 16
	FileCount      = 10
	equipmentStart = SetNameSize
)

// ErrTruncated marks a set whose block extends past the end of the file.
var ErrTruncated = errors.New("set data truncated")

// Set is one named equipment loadout.
type Set struct {
	Index       int // 1-based within its file
	GlobalIndex int // 1-based across the file family
	Name        string
	Slots       [SlotCount]Slot
	Err         error
}

// HasItems reports whether any slot of the set is occupied.
func (s Set) HasItems() bool {
	for _, sl := range s.Slots {
		if !sl.Empty() {
			return true
		}
	}
	return false
}

// GlobalIndex returns the 1-based set number across all files.
func GlobalIndex(fileIndex, localIndex int) int {
	return fileIndex*SetCount + localIndex + 1
}

// DecodeSet decodes one SetSize block. localIndex is zero-based.
func DecodeSet(block []byte, fileIndex, localIndex int) Set {
	s := Set{
		Index:       localIndex + 1,
		GlobalIndex: GlobalIndex(fileIndex, localIndex),
	}
	for k := SlotKind(0); k < SlotCount; k++ {
		s.Slots[k] = Slot{Kind: k, Storage: ResolveStorage(0)}
	}
	if len(block) < SetSize {
		s.Err = fmt.Errorf("set %d: %w: %d of %d bytes", s.GlobalIndex, ErrTruncated, len(block), SetSize)
		return s
	}

	r := datfile.NewReader(block[:SetSize])
	s.Name = r.ReadFixedS(SetNameSize)
	for k := SlotKind(0); k < SlotCount; k++ {
		s.Slots[k] = DecodeSlot(k, r.ReadBytes(SlotSize))
	}
	return s
}

// Decode returns all SetCount sets of one file. Sets that do not fit in data
// carry ErrTruncated; the rest still decode. Empty data has no sets.
func Decode(data []byte, fileIndex int) []Set {
	if len(data) == 0 {
		return nil
	}
	sets := make([]Set, SetCount)
	for i := 0; i < SetCount; i++ {
		start := HeaderSize + i*SetSize
		end := start + SetSize
		var block []byte
		switch {
		case end <= len(data):
			block = data[start:end]
		case start < len(data):
			block = data[start:]
		}
		sets[i] = DecodeSet(block, fileIndex, i)
	}
	return sets
}
