package model

// Stats is the full stat block of the local player.
type Stats struct {
	AbilityPower            int32 `json:"ability_power"`
	Armor                   int32 `json:"armor"`
	ArmorPenetrationFlat    int32 `json:"armor_penetration_flat"`
	ArmorPenetrationPercent int32 `json:"armor_penetration_percent"`
	AttackDamage            int32 `json:"attack_damage"`
	AttackRange             int32 `json:"attack_range"`
	AttackSpeed             int32 `json:"attack_speed"`
	CritChance              int32 `json:"crit_chance"`
	CritDamage              int32 `json:"crit_damage"`
	CurrentHealth           int32 `json:"current_health"`
	MagicPenetrationFlat    int32 `json:"magic_penetration_flat"`
	MagicPenetrationPercent int32 `json:"magic_penetration_percent"`
	MagicResist             int32 `json:"magic_resist"`
	Health                  int32 `json:"health"`
	Mana                    int32 `json:"mana"`
	CurrentMana             int32 `json:"current_mana"`
}

// SimpleStats holds only the stats that reduce damage taken, which is all
// the service needs to know about an enemy.
type SimpleStats struct {
	Armor       int32 `json:"armor"`
	Health      int32 `json:"health"`
	MagicResist int32 `json:"magic_resist"`
}

type BasicStats struct {
	Armor        int32 `json:"armor"`
	Health       int32 `json:"health"`
	AttackDamage int32 `json:"attack_damage"`
	MagicResist  int32 `json:"magic_resist"`
	Mana         int32 `json:"mana"`
}

// Dragons counts the elemental drakes taken by each side.
type Dragons struct {
	AllyFire     uint16 `json:"ally_fire"`
	AllyEarth    uint16 `json:"ally_earth"`
	AllyChemtech uint16 `json:"ally_chemtech"`
	EnemyEarth   uint16 `json:"enemy_earth"`
}

type AbilityLevels struct {
	Q uint8 `json:"q"`
	W uint8 `json:"w"`
	E uint8 `json:"e"`
	R uint8 `json:"r"`
}
