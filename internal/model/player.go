// Package model defines the editable entities and the payloads exchanged
// with the calculation service.
//
// Values reachable from a snapshot pointer are never modified after they are
// published. Code that needs a different value builds a new one (see the
// engine package), so comparing pointers tells whether anything changed.
package model

import (
	"slices"

	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/override"
)

// StatBlock lists the stat representations a PlayerData can carry.
type StatBlock interface {
	Stats | SimpleStats
}

// PlayerData is the part of a build shared by the local player and enemies.
// When InferStats is set, Stats is a placeholder and the service's next
// response is authoritative for it.
type PlayerData[S StatBlock] struct {
	Stats          S                  `json:"stats"`
	Items          []catalog.ItemID   `json:"items"`
	ItemExceptions []override.Value   `json:"item_exceptions"`
	Stacks         uint32             `json:"stacks"`
	Level          uint8              `json:"level"`
	InferStats     bool               `json:"infer_stats"`
	IsMegaGnar     bool               `json:"is_mega_gnar"`
	ChampionID     catalog.ChampionID `json:"champion_id"`
}

// Clone returns a copy that shares nothing mutable with d.
func (d *PlayerData[S]) Clone() *PlayerData[S] {
	c := *d
	c.Items = slices.Clone(d.Items)
	c.ItemExceptions = slices.Clone(d.ItemExceptions)
	return &c
}

// Player is the local build.
type Player struct {
	Runes          []catalog.RuneID  `json:"runes"`
	RuneExceptions []override.Value  `json:"rune_exceptions"`
	Abilities      AbilityLevels     `json:"abilities"`
	Data           PlayerData[Stats] `json:"data"`
}

// Clone returns a copy that shares nothing mutable with p.
func (p *Player) Clone() *Player {
	c := *p
	c.Runes = slices.Clone(p.Runes)
	c.RuneExceptions = slices.Clone(p.RuneExceptions)
	c.Data = *p.Data.Clone()
	return &c
}

type EnemyData = PlayerData[SimpleStats]

// Enemies is the roster. Elements are shared between successive snapshots.
type Enemies []*EnemyData
