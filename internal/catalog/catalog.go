// Package catalog holds the closed id spaces shared with the calculation
// service. Ids are positional: an id is the index of its entry in the
// generated tables, so both sides must agree on the counts below.
package catalog

import "fmt"

// Table sizes of the service's generated enumerations.
const (
	ItemCount = 318
	RuneCount = 61
)

type ChampionID uint8

type ItemID uint16

type RuneID uint8

// ItemFromIndex converts a raw index, rejecting values outside the item table.
func ItemFromIndex(v uint32) (ItemID, bool) {
	if v >= ItemCount {
		return 0, false
	}
	return ItemID(v), true
}

// RuneFromIndex converts a raw index, rejecting values outside the rune table.
func RuneFromIndex(v uint32) (RuneID, bool) {
	if v >= RuneCount {
		return 0, false
	}
	return RuneID(v), true
}

// ChampionFromIndex converts a raw index, rejecting values outside the champion table.
func ChampionFromIndex(v uint32) (ChampionID, bool) {
	if v >= ChampionCount {
		return 0, false
	}
	return ChampionID(v), true
}

func (i ItemID) Valid() bool     { return i < ItemCount }
func (r RuneID) Valid() bool     { return r < RuneCount }
func (c ChampionID) Valid() bool { return c < ChampionCount }

func (i ItemID) String() string { return fmt.Sprintf("Item(%d)", uint16(i)) }
func (r RuneID) String() string { return fmt.Sprintf("Rune(%d)", uint8(r)) }

func (c ChampionID) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Champion(%d)", uint8(c))
	}
	return championNames[c]
}

// AbilitySlot is the key an ability is bound to.
type AbilitySlot uint8

const (
	SlotP AbilitySlot = iota
	SlotQ
	SlotW
	SlotE
	SlotR
	slotCount
)

const AbilitySlotCount = uint32(slotCount)

func (s AbilitySlot) Char() byte {
	return "PQWER"[s]
}

// AbilityID names one damage entry of a champion: the slot it is cast from
// and which of that slot's variants it is (mini/mega forms, recasts, ...).
type AbilityID struct {
	Slot    AbilitySlot `json:"slot"`
	Variant uint8       `json:"variant"`
}

func (a AbilityID) String() string {
	if a.Variant == 0 {
		return string(a.Slot.Char())
	}
	return fmt.Sprintf("%c%d", a.Slot.Char(), a.Variant)
}

// AdaptativeType decides which damage type adaptive bonuses convert to.
type AdaptativeType uint8

const (
	AdaptativePhysical AdaptativeType = iota
	AdaptativeMagic
	adaptativeCount
)

const AdaptativeTypeCount = uint32(adaptativeCount)

type DamageType uint8

const (
	DamagePhysical DamageType = iota
	DamageMagic
	DamageTrue
	DamageMixed
	DamageUnknown
	damageTypeCount
)

const DamageTypeCount = uint32(damageTypeCount)

func (d DamageType) String() string {
	switch d {
	case DamagePhysical:
		return "physical"
	case DamageMagic:
		return "magic"
	case DamageTrue:
		return "true"
	case DamageMixed:
		return "mixed"
	default:
		return "unknown"
	}
}
