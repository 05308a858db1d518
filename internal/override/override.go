// Package override packs "this item or rune has N stacks" facts into a single
// uint32 that crosses the wire unchanged.
//
// The high DiscBits bits hold the id, the remaining ValBits bits hold the
// stack count. The id field is wide enough for the larger of the item and
// rune tables. Which table an id belongs to is implied by the list that holds
// the value (item overrides or rune overrides), so decoding re-validates the
// id against the requested table and reports absence when it does not fit.
// There is no kind bit: cross-decoding only rejects ids outside the other
// table, so an item id below RuneCount also decodes as that rune.
package override

import (
	"math/bits"

	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
)

// Kind selects the id space of an encoded value.
type Kind uint8

const (
	KindItem Kind = iota
	KindRune
)

var (
	DiscBits = uint32(bits.Len32(uint32(max(catalog.ItemCount, catalog.RuneCount)) - 1))
	ValBits  = 32 - DiscBits
	ValMask  = uint32(1)<<ValBits - 1
	discLow  = uint32(1)<<DiscBits - 1
)

// Value is a packed override record.
type Value uint32

// Encode packs id and stacks. Stacks above ValMask lose their high bits.
// The kind only documents intent: both id spaces share one layout.
func Encode(kind Kind, id uint32, stacks uint32) Value {
	return Value((id&discLow)<<ValBits | stacks&ValMask)
}

func PackItem(id catalog.ItemID, stacks uint32) Value {
	return Encode(KindItem, uint32(id), stacks)
}

func PackRune(id catalog.RuneID, stacks uint32) Value {
	return Encode(KindRune, uint32(id), stacks)
}

// Stacks returns the stored stack count, at most ValMask.
func (v Value) Stacks() uint32 {
	return uint32(v) & ValMask
}

func (v Value) discriminant() uint32 {
	return uint32(v) >> ValBits & discLow
}

// Item decodes the id as an item, failing when it is outside the item table.
func (v Value) Item() (catalog.ItemID, bool) {
	return catalog.ItemFromIndex(v.discriminant())
}

// Rune decodes the id as a rune, failing when it is outside the rune table.
func (v Value) Rune() (catalog.RuneID, bool) {
	return catalog.RuneFromIndex(v.discriminant())
}
