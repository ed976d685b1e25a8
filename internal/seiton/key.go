package seiton

import "sort"

// Tier is the major organize group.
const (
	TierCrystal = iota
	TierCluster
	TierUsable
	TierWeapon
	TierArmor
	TierGeneral
	TierOther
)

const (
	rankUnknown   = 99
	rankPetFood   = 19
	rankSkillZero = 20
	skillZero     = 0
)

// Key is the organize sort key of one item.
type Key struct {
	Major  int
	Minor  int
	ItemID int
}

// Compare returns -1, 0 or +1.
func (k Key) Compare(o Key) int {
	switch {
	case k.Major != o.Major:
		return cmpInt(k.Major, o.Major)
	case k.Minor != o.Minor:
		return cmpInt(k.Minor, o.Minor)
	default:
		return cmpInt(k.ItemID, o.ItemID)
	}
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// KeyFor computes the organize key. skill and slots are nil when the item
// dictionary has no value for them.
func KeyFor(itemID int, category string, itemType int, skill, slots *int) Key {
	if itemType == TypeCrystal || IsCrystal(itemID) {
		return Key{TierCrystal, itemID, itemID}
	}
	if IsCluster(itemID) {
		return Key{TierCluster, itemID, itemID}
	}

	switch category {
	case CategoryUsable:
		return Key{TierUsable, itemType, itemID}
	case CategoryWeapon:
		return Key{TierWeapon, weaponRank(itemID, skill), itemID}
	case CategoryArmor:
		rank := rankUnknown
		if slots != nil {
			if r, ok := SlotRank(*slots); ok {
				rank = r
			}
		}
		return Key{TierArmor, rank, itemID}
	case CategoryGeneral:
		return Key{TierGeneral, itemType, itemID}
	default:
		return Key{TierOther, itemType, itemID}
	}
}

func weaponRank(itemID int, skill *int) int {
	if skill == nil {
		return rankUnknown
	}
	if *skill == skillZero {
		if IsPetFood(itemID) {
			return rankPetFood
		}
		return rankSkillZero
	}
	if r, ok := SkillRank(*skill); ok {
		return r
	}
	return rankUnknown
}

// Sort orders s in place by the key returned from key.
func Sort[T any](s []T, key func(T) Key) {
	sort.SliceStable(s, func(i, j int) bool {
		return key(s[i]).Less(key(s[j]))
	})
}
