package model

import "github.com/DoyleJ11/lol-damage-calculator/internal/catalog"

// MonsterCount is the number of jungle monster resistance profiles.
const MonsterCount = 7

// TowerPlates is the number of plate states a tower can be in (0..=5).
const TowerPlates = 6

// InputGame is the request body sent to the calculation service.
type InputGame struct {
	ActivePlayer Player  `json:"active_player"`
	EnemyPlayers Enemies `json:"enemy_players"`
	Dragons      Dragons `json:"dragons"`
}

type RangeDamage struct {
	Minimum int32 `json:"minimum_damage"`
	Maximum int32 `json:"maximum_damage"`
}

type Attacks struct {
	BasicAttack    int32       `json:"basic_attack"`
	CriticalStrike int32       `json:"critical_strike"`
	OnhitDamage    RangeDamage `json:"onhit_damage"`
}

// Damages holds one value per entry of the matching metadata table in Game.
type Damages struct {
	Attacks   Attacks `json:"attacks"`
	Abilities []int32 `json:"abilities"`
	Items     []int32 `json:"items"`
	Runes     []int32 `json:"runes"`
}

type FinalEnemy struct {
	Damages         Damages            `json:"damages"`
	BaseStats       SimpleStats        `json:"base_stats"`
	BonusStats      SimpleStats        `json:"bonus_stats"`
	CurrentStats    SimpleStats        `json:"current_stats"`
	RealArmor       int32              `json:"real_armor"`
	RealMagicResist int32              `json:"real_magic_resist"`
	Level           uint8              `json:"level"`
	ChampionID      catalog.ChampionID `json:"champion_id"`
}

type FinalPlayer struct {
	CurrentStats   Stats                  `json:"current_stats"`
	BaseStats      BasicStats             `json:"base_stats"`
	BonusStats     BasicStats             `json:"bonus_stats"`
	Level          uint8                  `json:"level"`
	AdaptativeType catalog.AdaptativeType `json:"adaptative_type"`
	ChampionID     catalog.ChampionID     `json:"champion_id"`
}

type MonsterDamage struct {
	Attacks   Attacks `json:"attacks"`
	Abilities []int32 `json:"abilities"`
	Items     []int32 `json:"items"`
}

// TypeMetadata describes one damage-producing entry of the player.
type TypeMetadata[T any] struct {
	Kind       T                  `json:"kind"`
	DamageType catalog.DamageType `json:"damage_type"`
	Attributes uint8              `json:"attributes"`
}

// AbilityMerge points an alias row at two entries of AbilitiesMeta whose
// damages are shown together as a minimum and a maximum.
type AbilityMerge struct {
	Primary   uint64 `json:"primary"`
	Secondary uint64 `json:"secondary"`
}

// Game is the computed response.
type Game struct {
	MonsterDamages   [MonsterCount]MonsterDamage       `json:"monster_damages"`
	CurrentPlayer    FinalPlayer                       `json:"current_player"`
	Enemies          []FinalEnemy                      `json:"enemies"`
	TowerDamages     [TowerPlates]int32                `json:"tower_damages"`
	AbilitiesMeta    []TypeMetadata[catalog.AbilityID] `json:"abilities_meta"`
	AbilitiesToMerge []AbilityMerge                    `json:"abilities_to_merge"`
	ItemsMeta        []TypeMetadata[catalog.ItemID]    `json:"items_meta"`
	RunesMeta        []TypeMetadata[catalog.RuneID]    `json:"runes_meta"`
}

// Merge resolves alias row i to its primary and secondary ability metadata.
func (g *Game) Merge(i int) (primary, secondary TypeMetadata[catalog.AbilityID], ok bool) {
	if i < 0 || i >= len(g.AbilitiesToMerge) {
		return primary, secondary, false
	}
	m := g.AbilitiesToMerge[i]
	n := uint64(len(g.AbilitiesMeta))
	if m.Primary >= n || m.Secondary >= n {
		return primary, secondary, false
	}
	return g.AbilitiesMeta[m.Primary], g.AbilitiesMeta[m.Secondary], true
}
