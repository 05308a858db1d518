package types

import (
	"encoding/json"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

// ClientMessage is one edit sent over the websocket. Data edits ("SetStats",
// "InsertItem", ...) name a Target of "player" or "enemy"; for "enemy" the
// Enemy field picks the roster slot.
type ClientMessage struct {
	Type      string               `json:"type"`
	Target    string               `json:"target,omitempty"`
	Enemy     int                  `json:"enemy,omitempty"`
	Index     int                  `json:"index,omitempty"`
	Item      uint16               `json:"item,omitempty"`
	Rune      uint8                `json:"rune,omitempty"`
	Stacks    uint32               `json:"stacks,omitempty"`
	Level     uint8                `json:"level,omitempty"`
	Flag      bool                 `json:"flag,omitempty"`
	Champion  string               `json:"champion,omitempty"`
	Stats     json.RawMessage      `json:"stats,omitempty"`
	Abilities *model.AbilityLevels `json:"abilities,omitempty"`
	Dragon    string               `json:"dragon,omitempty"` // "ally_fire" | "ally_earth" | "ally_chemtech" | "enemy_earth"
	Count     uint16               `json:"count,omitempty"`
}

type ServerMessage struct {
	Type    string          `json:"type"` // "Snapshot" | "Error"
	Version int             `json:"version,omitempty"`
	Player  *model.Player   `json:"player,omitempty"`
	Enemies model.Enemies   `json:"enemies,omitempty"`
	Dragons *model.Dragons  `json:"dragons,omitempty"`
	Game    *model.Game     `json:"game,omitempty"`
	Merges  []MergedAbility `json:"merges,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// MergedAbility is one alias row of the game with both ends resolved, so a
// client can show the pair as a min/max range without indexing AbilitiesMeta.
type MergedAbility struct {
	Row       int                                   `json:"row"`
	Primary   model.TypeMetadata[catalog.AbilityID] `json:"primary"`
	Secondary model.TypeMetadata[catalog.AbilityID] `json:"secondary"`
}

func Snapshot(s calculator.Snapshot) ServerMessage {
	return ServerMessage{
		Type:    "Snapshot",
		Version: s.Version,
		Player:  s.Player,
		Enemies: s.Enemies,
		Dragons: &s.Dragons,
		Game:    s.Game,
		Merges:  merges(s.Game),
	}
}

// merges skips rows that point outside AbilitiesMeta.
func merges(g *model.Game) []MergedAbility {
	if g == nil {
		return nil
	}
	var out []MergedAbility
	for i := range g.AbilitiesToMerge {
		p, s, ok := g.Merge(i)
		if !ok {
			continue
		}
		out = append(out, MergedAbility{Row: i, Primary: p, Secondary: s})
	}
	return out
}

func Error(err error) ServerMessage {
	return ServerMessage{Type: "Error", Error: err.Error()}
}
