package equipset

import "fmt"

// ResolveKind tells how a raw storage id was matched to a container.
type ResolveKind int

const (
	ResolveExact  ResolveKind = iota
	ResolveOffset             // matched after subtracting 0x20
	ResolveMasked             // matched on the low 5 bits
	ResolveUnknown
)

func (k ResolveKind) String() string {
	switch k {
	case ResolveExact:
		return "Exact"
	case ResolveOffset:
		return "OffsetAdjusted"
	case ResolveMasked:
		return "Masked"
	case ResolveUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("ResolveKind(%d)", int(k))
	}
}

const (
	storageIDOffset = 0x20
	storageIDMask   = 0x1F
)

// storageNames is the container numbering used by equipment sets. 0x15 and
// 0x19 were observed in real files and are kept as seen; their meaning is
// unconfirmed.
var storageNames = map[int]string{
	0:  "Inventory",
	1:  "Safe",
	2:  "Storage",
	3:  "Temp",
	4:  "Locker",
	5:  "Satchel",
	6:  "Sack",
	7:  "Case",
	8:  "Wardrobe 1",
	9:  "Safe 2",
	10: "Wardrobe 2",
	11: "Wardrobe 3",
	12: "Wardrobe 4",
	13: "Wardrobe 5",
	14: "Wardrobe 6",
	15: "Wardrobe 7",
	16: "Wardrobe 8",
	17: "Recycle Bin",
	21: "Wardrobe 5",
	25: "Wardrobe ?",
}

// Resolution is the outcome of mapping a raw storage id byte to a container.
type Resolution struct {
	ID    uint8 // raw byte from the file
	Kind  ResolveKind
	Base  int    // table id that matched; -1 when Kind is ResolveUnknown
	Label string // container name without any marker
}

// String renders the resolution with its ambiguity marker.
func (r Resolution) String() string {
	switch r.Kind {
	case ResolveExact:
		return r.Label
	case ResolveOffset:
		return r.Label + " (+0x20)"
	case ResolveMasked:
		return r.Label + " (masked)"
	default:
		return fmt.Sprintf("Unknown(%d)", r.ID)
	}
}

// Confident reports whether the id matched the table directly.
func (r Resolution) Confident() bool {
	return r.Kind == ResolveExact
}

// ResolveStorage maps a raw storage id byte to a container. Files from
// different client versions mix two numbering schemes, so the lookup tries
// the id as is, then id-0x20, then id&0x1F, and reports which step matched.
func ResolveStorage(id uint8) Resolution {
	v := int(id)
	if name, ok := storageNames[v]; ok {
		return Resolution{ID: id, Kind: ResolveExact, Base: v, Label: name}
	}
	if adj := v - storageIDOffset; adj >= 0 {
		if name, ok := storageNames[adj]; ok {
			return Resolution{ID: id, Kind: ResolveOffset, Base: adj, Label: name}
		}
	}
	masked := v & storageIDMask
	if name, ok := storageNames[masked]; ok {
		return Resolution{ID: id, Kind: ResolveMasked, Base: masked, Label: name}
	}
	return Resolution{ID: id, Kind: ResolveUnknown, Base: -1}
}
