// Package engine holds the pure reducers for the editable entities.
//
// Every reducer takes the current snapshot and an action and returns a new
// snapshot. The input is never written to: fields are copied and slices are
// cloned or clipped before any write, so earlier snapshots stay valid for
// whoever still holds them. Actions are sealed interfaces, one type per
// variant, and each variant carries its own effect.
package engine

import (
	"fmt"
	"slices"

	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/override"
)

// DataAction edits a PlayerData.
type DataAction[S model.StatBlock] interface {
	applyData(d *model.PlayerData[S])
}

type (
	PlayerDataAction = DataAction[model.Stats]
	EnemyDataAction  = DataAction[model.SimpleStats]
)

// SetStats replaces the stat block wholesale.
type SetStats[S model.StatBlock] struct{ Stats S }

type SetStacks[S model.StatBlock] struct{ Stacks uint32 }

type SetLevel[S model.StatBlock] struct{ Level uint8 }

type SetInferStats[S model.StatBlock] struct{ Infer bool }

type SetMegaGnar[S model.StatBlock] struct{ Mega bool }

type SetChampion[S model.StatBlock] struct{ Champion catalog.ChampionID }

type InsertItem[S model.StatBlock] struct{ Item catalog.ItemID }

// RemoveItem swap-removes: the last item moves into Index.
type RemoveItem[S model.StatBlock] struct{ Index int }

type InsertItemException[S model.StatBlock] struct {
	Item   catalog.ItemID
	Stacks uint32
}

// RemoveItemException swap-removes: the last record moves into Index.
type RemoveItemException[S model.StatBlock] struct{ Index int }

func (a SetStats[S]) applyData(d *model.PlayerData[S])      { d.Stats = a.Stats }
func (a SetStacks[S]) applyData(d *model.PlayerData[S])     { d.Stacks = a.Stacks }
func (a SetLevel[S]) applyData(d *model.PlayerData[S])      { d.Level = a.Level }
func (a SetInferStats[S]) applyData(d *model.PlayerData[S]) { d.InferStats = a.Infer }
func (a SetMegaGnar[S]) applyData(d *model.PlayerData[S])   { d.IsMegaGnar = a.Mega }
func (a SetChampion[S]) applyData(d *model.PlayerData[S])   { d.ChampionID = a.Champion }

func (a InsertItem[S]) applyData(d *model.PlayerData[S]) {
	d.Items = append(slices.Clip(d.Items), a.Item)
}

func (a RemoveItem[S]) applyData(d *model.PlayerData[S]) {
	d.Items = swapRemove(d.Items, a.Index)
}

func (a InsertItemException[S]) applyData(d *model.PlayerData[S]) {
	d.ItemExceptions = append(slices.Clip(d.ItemExceptions), override.PackItem(a.Item, a.Stacks))
}

func (a RemoveItemException[S]) applyData(d *model.PlayerData[S]) {
	d.ItemExceptions = swapRemove(d.ItemExceptions, a.Index)
}

// ReduceData returns old with a applied.
func ReduceData[S model.StatBlock](old *model.PlayerData[S], a DataAction[S]) *model.PlayerData[S] {
	next := *old
	a.applyData(&next)
	return &next
}

// PlayerAction edits the local player.
type PlayerAction interface {
	applyPlayer(p *model.Player)
}

type InsertRune struct{ Rune catalog.RuneID }

// RemoveRune swap-removes: the last rune moves into Index.
type RemoveRune struct{ Index int }

type InsertRuneException struct {
	Rune   catalog.RuneID
	Stacks uint32
}

type RemoveRuneException struct{ Index int }

type SetAbilityLevels struct{ Levels model.AbilityLevels }

// EditData forwards a data action to the player's nested PlayerData.
type EditData struct{ Action PlayerDataAction }

func (a InsertRune) applyPlayer(p *model.Player) {
	p.Runes = append(slices.Clip(p.Runes), a.Rune)
}

func (a RemoveRune) applyPlayer(p *model.Player) {
	p.Runes = swapRemove(p.Runes, a.Index)
}

func (a InsertRuneException) applyPlayer(p *model.Player) {
	p.RuneExceptions = append(slices.Clip(p.RuneExceptions), override.PackRune(a.Rune, a.Stacks))
}

func (a RemoveRuneException) applyPlayer(p *model.Player) {
	p.RuneExceptions = swapRemove(p.RuneExceptions, a.Index)
}

func (a SetAbilityLevels) applyPlayer(p *model.Player) { p.Abilities = a.Levels }

func (a EditData) applyPlayer(p *model.Player) { a.Action.applyData(&p.Data) }

// ReducePlayer returns old with a applied.
func ReducePlayer(old *model.Player, a PlayerAction) *model.Player {
	next := *old
	a.applyPlayer(&next)
	return &next
}

// EnemyAction edits the roster.
type EnemyAction interface {
	applyEnemies(e model.Enemies) model.Enemies
}

// PushEnemy appends a default enemy.
type PushEnemy struct{}

// RemoveEnemy swap-removes: the last enemy takes over Index.
type RemoveEnemy struct{ Index int }

// EditEnemy reduces the enemy at Index and replaces only that slot.
type EditEnemy struct {
	Index  int
	Action EnemyDataAction
}

func (PushEnemy) applyEnemies(e model.Enemies) model.Enemies {
	return append(slices.Clip(e), &model.EnemyData{})
}

func (a RemoveEnemy) applyEnemies(e model.Enemies) model.Enemies {
	return swapRemove(e, a.Index)
}

func (a EditEnemy) applyEnemies(e model.Enemies) model.Enemies {
	checkIndex(a.Index, len(e))
	out := slices.Clone(e)
	out[a.Index] = ReduceData(e[a.Index], a.Action)
	return out
}

// ReduceEnemies returns old with a applied. Out-of-range indices panic: the
// caller owns the index for the duration of one dispatch.
func ReduceEnemies(old *model.Enemies, a EnemyAction) *model.Enemies {
	var cur model.Enemies
	if old != nil {
		cur = *old
	}
	next := a.applyEnemies(cur)
	return &next
}

// DragonAction sets one dragon counter.
type DragonAction interface {
	applyDragons(d *model.Dragons)
}

type (
	AllyFire     struct{ Count uint16 }
	AllyEarth    struct{ Count uint16 }
	AllyChemtech struct{ Count uint16 }
	EnemyEarth   struct{ Count uint16 }
)

func (a AllyFire) applyDragons(d *model.Dragons)     { d.AllyFire = a.Count }
func (a AllyEarth) applyDragons(d *model.Dragons)    { d.AllyEarth = a.Count }
func (a AllyChemtech) applyDragons(d *model.Dragons) { d.AllyChemtech = a.Count }
func (a EnemyEarth) applyDragons(d *model.Dragons)   { d.EnemyEarth = a.Count }

func ReduceDragons(old *model.Dragons, a DragonAction) *model.Dragons {
	next := *old
	a.applyDragons(&next)
	return &next
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("engine: index %d out of range [0,%d)", i, n))
	}
}
