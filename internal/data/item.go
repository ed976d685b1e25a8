package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Language selects which dictionary name column is displayed.
type Language string

const (
	LangJA Language = "ja"
	LangEN Language = "en"
)

// ParseLanguage maps a config value to a Language, defaulting to Japanese.
func ParseLanguage(s string) Language {
	if Language(s) == LangEN {
		return LangEN
	}
	return LangJA
}

const categoryUnknown = "Unknown"

// ItemInfo holds the dictionary entry of one item id.
// Skill and Slots are nil when the source has no value.
type ItemInfo struct {
	ItemID   uint16
	NameJA   string
	NameEN   string
	Category string
	Type     int
	Skill    *int
	Slots    *int
}

// Name returns the display name in lang, falling back to the other language.
func (i ItemInfo) Name(lang Language) string {
	if lang == LangEN {
		if i.NameEN != "" {
			return i.NameEN
		}
		return i.NameJA
	}
	if i.NameJA != "" {
		return i.NameJA
	}
	return i.NameEN
}

// Lookup is the name/category dictionary consumed by the decoders' callers.
// A nil Lookup is valid and knows no items.
type Lookup interface {
	Get(itemID uint16) (ItemInfo, bool)
}

// UnknownName is the placeholder display name for an id with no entry.
func UnknownName(itemID uint16) string {
	return fmt.Sprintf("Unknown Item (%d)", itemID)
}

// Resolve returns the entry for itemID with defaults filled in. It never
// fails: a missing entry or a nil Lookup produces the placeholder entry.
func Resolve(l Lookup, itemID uint16) ItemInfo {
	var info ItemInfo
	ok := false
	if l != nil {
		info, ok = l.Get(itemID)
	}
	if !ok {
		name := UnknownName(itemID)
		return ItemInfo{ItemID: itemID, NameJA: name, NameEN: name, Category: categoryUnknown}
	}
	info.ItemID = itemID
	if info.Category == "" {
		info.Category = categoryUnknown
	}
	if info.NameJA == "" && info.NameEN == "" {
		info.NameJA = UnknownName(itemID)
		info.NameEN = info.NameJA
	}
	return info
}

// ItemTable holds all dictionary entries indexed by item id.
// It is read-only after load and safe for concurrent readers.
type ItemTable struct {
	items map[uint16]ItemInfo
}

// NewItemTable builds a table from entries; later duplicates win.
func NewItemTable(entries []ItemInfo) *ItemTable {
	t := &ItemTable{items: make(map[uint16]ItemInfo, len(entries))}
	for _, e := range entries {
		t.items[e.ItemID] = e
	}
	return t
}

// Get returns an item by id.
func (t *ItemTable) Get(itemID uint16) (ItemInfo, bool) {
	if t == nil {
		return ItemInfo{}, false
	}
	info, ok := t.items[itemID]
	return info, ok
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// --- yaml loading ---

type itemEntry struct {
	ItemID   uint16 `yaml:"id"`
	NameJA   string `yaml:"ja"`
	NameEN   string `yaml:"en"`
	Category string `yaml:"category"`
	Type     int    `yaml:"type"`
	Skill    *int   `yaml:"skill,omitempty"`
	Slots    *int   `yaml:"slots,omitempty"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTableYAML loads a dictionary written by itemdbgen -format yaml.
func LoadItemTableYAML(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	entries := make([]ItemInfo, 0, len(f.Items))
	for i := range f.Items {
		e := &f.Items[i]
		entries = append(entries, ItemInfo{
			ItemID:   e.ItemID,
			NameJA:   e.NameJA,
			NameEN:   e.NameEN,
			Category: e.Category,
			Type:     e.Type,
			Skill:    e.Skill,
			Slots:    e.Slots,
		})
	}
	return NewItemTable(entries), nil
}

// WriteItemTableYAML writes entries in the format LoadItemTableYAML reads.
func WriteItemTableYAML(path string, entries []ItemInfo) error {
	f := itemListFile{Items: make([]itemEntry, 0, len(entries))}
	for _, e := range entries {
		f.Items = append(f.Items, itemEntry{
			ItemID:   e.ItemID,
			NameJA:   e.NameJA,
			NameEN:   e.NameEN,
			Category: e.Category,
			Type:     e.Type,
			Skill:    e.Skill,
			Slots:    e.Slots,
		})
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	return nil
}
