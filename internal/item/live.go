package item

import (
	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/storage"
)

// LiveItem is one entry of the addon's live JSON export. Only the fields the
// normalised Item needs are kept; optional dictionary fields may be absent.
type LiveItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	NameEN   string `json:"name_en"`
	Count    int    `json:"count"`
	Slot     int    `json:"slot"`
	Storage  string `json:"storage"`
	Category string `json:"category,omitempty"`
	ItemType int    `json:"item_type,omitempty"`
	Skill    *int   `json:"skill,omitempty"`
	Slots    *int   `json:"slots,omitempty"`
}

// FromLive converts a live export entry. Names and category from the export
// take precedence; missing fields come from the dictionary. ok is false for
// ids outside the item id range or the empty sentinels.
func FromLive(li LiveItem, l data.Lookup, lang data.Language) (Item, bool) {
	if li.ID <= 0 || li.ID >= 0xFFFF {
		return Item{}, false
	}
	name := li.Name
	if lang == data.LangEN && li.NameEN != "" {
		name = li.NameEN
	}
	slot := li.Slot
	if slot <= 0 {
		slot = storage.SlotUnknown
	}
	count := li.Count
	if count <= 0 {
		count = 1
	}
	it := Item{
		Source:    SourceLive,
		ID:        uint16(li.ID),
		Name:      name,
		Category:  li.Category,
		Type:      li.ItemType,
		Skill:     li.Skill,
		Slots:     li.Slots,
		Container: li.Storage,
		Slot:      slot,
		Index:     -1,
		Count:     count,
	}
	if it.Category == "Unknown" {
		it.Category = ""
	}
	enrich(&it, l, lang)
	return it, true
}
