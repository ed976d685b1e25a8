// Package seiton computes the in-game "organize" (seiton) order for items:
// crystals, clusters, usable items, weapons by skill, armor by slot, then
// general materials.
package seiton

// Category labels as stored in the item dictionary.
const (
	CategoryUsable  = "Usable"
	CategoryWeapon  = "Weapon"
	CategoryArmor   = "Armor"
	CategoryGeneral = "General"
	CategoryUnknown = "Unknown"
)

// TypeCrystal is the item type of the base elemental crystals.
const TypeCrystal = 8

type idRange struct {
	lo, hi int
}

func (r idRange) contains(id int) bool {
	return id >= r.lo && id <= r.hi
}

var (
	crystalRanges = []idRange{
		{4096, 4103}, // fire .. dark
		{4238, 4245}, // HQ
		{6506, 6513}, // special
	}
	clusterRange = idRange{4104, 4111}
	petFoodRange = idRange{17016, 17900}
)

// weaponSkillOrder maps a weapon skill id to its organize position.
var weaponSkillOrder = map[int]int{
	1:  0,  // hand-to-hand
	2:  1,  // dagger
	3:  2,  // sword
	4:  3,  // great sword
	5:  4,  // axe
	6:  5,  // great axe
	8:  6,  // polearm
	7:  7,  // scythe
	9:  8,  // katana
	10: 9,  // great katana
	11: 10, // club
	12: 11, // staff
	27: 12, // throwing
	25: 13, // archery
	26: 14, // marksmanship
	41: 15, // string instrument
	42: 16, // wind instrument
	45: 17, // handbell
	48: 18, // fishing rod
}

// armorSlotOrder maps an armor slot bitmask to its organize position. Ears
// and rings use the combined mask of both slots.
var armorSlotOrder = map[int]int{
	0x0002: 0,  // shield
	0x0010: 1,  // head
	0x0020: 2,  // body
	0x0040: 3,  // hands
	0x0080: 4,  // legs
	0x0100: 5,  // feet
	0x0200: 6,  // neck
	0x0400: 7,  // waist
	0x8000: 8,  // back
	0x1800: 9,  // ear
	0x6000: 10, // ring
}

// IsCrystal reports whether id is one of the crystal ids.
func IsCrystal(id int) bool {
	for _, r := range crystalRanges {
		if r.contains(id) {
			return true
		}
	}
	return false
}

// IsCluster reports whether id is one of the cluster ids.
func IsCluster(id int) bool {
	return clusterRange.contains(id)
}

// IsPetFood reports whether id falls in the pet food range.
func IsPetFood(id int) bool {
	return petFoodRange.contains(id)
}

// SkillRank returns the organize position of a weapon skill.
func SkillRank(skill int) (int, bool) {
	r, ok := weaponSkillOrder[skill]
	return r, ok
}

// SlotRank returns the organize position of an armor slot mask.
func SlotRank(mask int) (int, bool) {
	r, ok := armorSlotOrder[mask]
	return r, ok
}
