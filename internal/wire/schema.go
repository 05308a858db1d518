package wire

import (
	"fmt"

	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/override"
)

func EncodeInputGame(in *model.InputGame) []byte {
	var e Encoder
	encodePlayer(&e, &in.ActivePlayer)
	encodeSeq(&e, in.EnemyPlayers, func(e *Encoder, d *model.EnemyData) {
		encodeData(e, d, encodeSimpleStats)
	})
	encodeDragons(&e, in.Dragons)
	return e.Bytes()
}

func DecodeInputGame(b []byte) (*model.InputGame, error) {
	d := NewDecoder(b)
	in := &model.InputGame{}
	in.ActivePlayer = decodePlayer(d)
	in.EnemyPlayers = decodeSeq(d, func(d *Decoder) *model.EnemyData {
		v := decodeData(d, decodeSimpleStats)
		return &v
	})
	in.Dragons = decodeDragons(d)
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("decode input game: %w", err)
	}
	return in, nil
}

func EncodeGame(g *model.Game) []byte {
	var e Encoder
	for _, m := range g.MonsterDamages {
		encodeAttacks(&e, m.Attacks)
		encodeSeq(&e, m.Abilities, encodeI32)
		encodeSeq(&e, m.Items, encodeI32)
	}
	encodeFinalPlayer(&e, g.CurrentPlayer)
	encodeSeq(&e, g.Enemies, encodeFinalEnemy)
	for _, v := range g.TowerDamages {
		encodeI32(&e, v)
	}
	encodeSeq(&e, g.AbilitiesMeta, func(e *Encoder, m model.TypeMetadata[catalog.AbilityID]) {
		encodeMeta(e, m, encodeAbility)
	})
	encodeSeq(&e, g.AbilitiesToMerge, func(e *Encoder, m model.AbilityMerge) {
		e.Uvarint(m.Primary)
		e.Uvarint(m.Secondary)
	})
	encodeSeq(&e, g.ItemsMeta, func(e *Encoder, m model.TypeMetadata[catalog.ItemID]) {
		encodeMeta(e, m, encodeItem)
	})
	encodeSeq(&e, g.RunesMeta, func(e *Encoder, m model.TypeMetadata[catalog.RuneID]) {
		encodeMeta(e, m, encodeRune)
	})
	return e.Bytes()
}

func DecodeGame(b []byte) (*model.Game, error) {
	d := NewDecoder(b)
	g := &model.Game{}
	for i := range g.MonsterDamages {
		g.MonsterDamages[i] = model.MonsterDamage{
			Attacks:   decodeAttacks(d),
			Abilities: decodeSeq(d, decodeI32),
			Items:     decodeSeq(d, decodeI32),
		}
	}
	g.CurrentPlayer = decodeFinalPlayer(d)
	g.Enemies = decodeSeq(d, decodeFinalEnemy)
	for i := range g.TowerDamages {
		g.TowerDamages[i] = d.I32()
	}
	g.AbilitiesMeta = decodeSeq(d, func(d *Decoder) model.TypeMetadata[catalog.AbilityID] {
		return decodeMeta(d, decodeAbility)
	})
	g.AbilitiesToMerge = decodeSeq(d, func(d *Decoder) model.AbilityMerge {
		return model.AbilityMerge{Primary: d.U64(), Secondary: d.U64()}
	})
	g.ItemsMeta = decodeSeq(d, func(d *Decoder) model.TypeMetadata[catalog.ItemID] {
		return decodeMeta(d, decodeItem)
	})
	g.RunesMeta = decodeSeq(d, func(d *Decoder) model.TypeMetadata[catalog.RuneID] {
		return decodeMeta(d, decodeRune)
	})
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return g, nil
}

func encodeI32(e *Encoder, v int32) { e.Varint(int64(v)) }

func decodeI32(d *Decoder) int32 { return d.I32() }

func encodeItem(e *Encoder, id catalog.ItemID) { e.Uvarint(uint64(id)) }

func decodeItem(d *Decoder) catalog.ItemID {
	return catalog.ItemID(d.Enum("item", catalog.ItemCount))
}

func encodeRune(e *Encoder, id catalog.RuneID) { e.Uvarint(uint64(id)) }

func decodeRune(d *Decoder) catalog.RuneID {
	return catalog.RuneID(d.Enum("rune", catalog.RuneCount))
}

func encodeChampion(e *Encoder, id catalog.ChampionID) { e.Uvarint(uint64(id)) }

func decodeChampion(d *Decoder) catalog.ChampionID {
	return catalog.ChampionID(d.Enum("champion", catalog.ChampionCount))
}

func encodeAbility(e *Encoder, a catalog.AbilityID) {
	e.Uvarint(uint64(a.Slot))
	e.U8(a.Variant)
}

func decodeAbility(d *Decoder) catalog.AbilityID {
	return catalog.AbilityID{
		Slot:    catalog.AbilitySlot(d.Enum("ability slot", catalog.AbilitySlotCount)),
		Variant: d.U8(),
	}
}

func encodeOverride(e *Encoder, v override.Value) { e.Uvarint(uint64(v)) }

func decodeOverride(d *Decoder) override.Value { return override.Value(d.U32()) }

func encodeStats(e *Encoder, s model.Stats) {
	for _, v := range [...]int32{
		s.AbilityPower, s.Armor, s.ArmorPenetrationFlat, s.ArmorPenetrationPercent,
		s.AttackDamage, s.AttackRange, s.AttackSpeed, s.CritChance,
		s.CritDamage, s.CurrentHealth, s.MagicPenetrationFlat, s.MagicPenetrationPercent,
		s.MagicResist, s.Health, s.Mana, s.CurrentMana,
	} {
		encodeI32(e, v)
	}
}

func decodeStats(d *Decoder) model.Stats {
	var s model.Stats
	for _, p := range [...]*int32{
		&s.AbilityPower, &s.Armor, &s.ArmorPenetrationFlat, &s.ArmorPenetrationPercent,
		&s.AttackDamage, &s.AttackRange, &s.AttackSpeed, &s.CritChance,
		&s.CritDamage, &s.CurrentHealth, &s.MagicPenetrationFlat, &s.MagicPenetrationPercent,
		&s.MagicResist, &s.Health, &s.Mana, &s.CurrentMana,
	} {
		*p = d.I32()
	}
	return s
}

func encodeSimpleStats(e *Encoder, s model.SimpleStats) {
	encodeI32(e, s.Armor)
	encodeI32(e, s.Health)
	encodeI32(e, s.MagicResist)
}

func decodeSimpleStats(d *Decoder) model.SimpleStats {
	return model.SimpleStats{Armor: d.I32(), Health: d.I32(), MagicResist: d.I32()}
}

func encodeBasicStats(e *Encoder, s model.BasicStats) {
	encodeI32(e, s.Armor)
	encodeI32(e, s.Health)
	encodeI32(e, s.AttackDamage)
	encodeI32(e, s.MagicResist)
	encodeI32(e, s.Mana)
}

func decodeBasicStats(d *Decoder) model.BasicStats {
	return model.BasicStats{
		Armor:        d.I32(),
		Health:       d.I32(),
		AttackDamage: d.I32(),
		MagicResist:  d.I32(),
		Mana:         d.I32(),
	}
}

func encodeData[S model.StatBlock](e *Encoder, d *model.PlayerData[S], stats func(*Encoder, S)) {
	stats(e, d.Stats)
	encodeSeq(e, d.Items, encodeItem)
	encodeSeq(e, d.ItemExceptions, encodeOverride)
	e.Uvarint(uint64(d.Stacks))
	e.U8(d.Level)
	e.Bool(d.InferStats)
	e.Bool(d.IsMegaGnar)
	encodeChampion(e, d.ChampionID)
}

func decodeData[S model.StatBlock](d *Decoder, stats func(*Decoder) S) model.PlayerData[S] {
	return model.PlayerData[S]{
		Stats:          stats(d),
		Items:          decodeSeq(d, decodeItem),
		ItemExceptions: decodeSeq(d, decodeOverride),
		Stacks:         d.U32(),
		Level:          d.U8(),
		InferStats:     d.Bool(),
		IsMegaGnar:     d.Bool(),
		ChampionID:     decodeChampion(d),
	}
}

func encodePlayer(e *Encoder, p *model.Player) {
	encodeSeq(e, p.Runes, encodeRune)
	encodeSeq(e, p.RuneExceptions, encodeOverride)
	e.U8(p.Abilities.Q)
	e.U8(p.Abilities.W)
	e.U8(p.Abilities.E)
	e.U8(p.Abilities.R)
	encodeData(e, &p.Data, encodeStats)
}

func decodePlayer(d *Decoder) model.Player {
	return model.Player{
		Runes:          decodeSeq(d, decodeRune),
		RuneExceptions: decodeSeq(d, decodeOverride),
		Abilities:      model.AbilityLevels{Q: d.U8(), W: d.U8(), E: d.U8(), R: d.U8()},
		Data:           decodeData(d, decodeStats),
	}
}

func encodeDragons(e *Encoder, g model.Dragons) {
	e.Uvarint(uint64(g.AllyFire))
	e.Uvarint(uint64(g.AllyEarth))
	e.Uvarint(uint64(g.AllyChemtech))
	e.Uvarint(uint64(g.EnemyEarth))
}

func decodeDragons(d *Decoder) model.Dragons {
	return model.Dragons{
		AllyFire:     d.U16(),
		AllyEarth:    d.U16(),
		AllyChemtech: d.U16(),
		EnemyEarth:   d.U16(),
	}
}

func encodeAttacks(e *Encoder, a model.Attacks) {
	encodeI32(e, a.BasicAttack)
	encodeI32(e, a.CriticalStrike)
	encodeI32(e, a.OnhitDamage.Minimum)
	encodeI32(e, a.OnhitDamage.Maximum)
}

func decodeAttacks(d *Decoder) model.Attacks {
	return model.Attacks{
		BasicAttack:    d.I32(),
		CriticalStrike: d.I32(),
		OnhitDamage:    model.RangeDamage{Minimum: d.I32(), Maximum: d.I32()},
	}
}

func encodeDamages(e *Encoder, g model.Damages) {
	encodeAttacks(e, g.Attacks)
	encodeSeq(e, g.Abilities, encodeI32)
	encodeSeq(e, g.Items, encodeI32)
	encodeSeq(e, g.Runes, encodeI32)
}

func decodeDamages(d *Decoder) model.Damages {
	return model.Damages{
		Attacks:   decodeAttacks(d),
		Abilities: decodeSeq(d, decodeI32),
		Items:     decodeSeq(d, decodeI32),
		Runes:     decodeSeq(d, decodeI32),
	}
}

func encodeFinalPlayer(e *Encoder, p model.FinalPlayer) {
	encodeStats(e, p.CurrentStats)
	encodeBasicStats(e, p.BaseStats)
	encodeBasicStats(e, p.BonusStats)
	e.U8(p.Level)
	e.Uvarint(uint64(p.AdaptativeType))
	encodeChampion(e, p.ChampionID)
}

func decodeFinalPlayer(d *Decoder) model.FinalPlayer {
	return model.FinalPlayer{
		CurrentStats:   decodeStats(d),
		BaseStats:      decodeBasicStats(d),
		BonusStats:     decodeBasicStats(d),
		Level:          d.U8(),
		AdaptativeType: catalog.AdaptativeType(d.Enum("adaptative type", catalog.AdaptativeTypeCount)),
		ChampionID:     decodeChampion(d),
	}
}

func encodeFinalEnemy(e *Encoder, f model.FinalEnemy) {
	encodeDamages(e, f.Damages)
	encodeSimpleStats(e, f.BaseStats)
	encodeSimpleStats(e, f.BonusStats)
	encodeSimpleStats(e, f.CurrentStats)
	encodeI32(e, f.RealArmor)
	encodeI32(e, f.RealMagicResist)
	e.U8(f.Level)
	encodeChampion(e, f.ChampionID)
}

func decodeFinalEnemy(d *Decoder) model.FinalEnemy {
	return model.FinalEnemy{
		Damages:         decodeDamages(d),
		BaseStats:       decodeSimpleStats(d),
		BonusStats:      decodeSimpleStats(d),
		CurrentStats:    decodeSimpleStats(d),
		RealArmor:       d.I32(),
		RealMagicResist: d.I32(),
		Level:           d.U8(),
		ChampionID:      decodeChampion(d),
	}
}

func encodeMeta[T any](e *Encoder, m model.TypeMetadata[T], kind func(*Encoder, T)) {
	kind(e, m.Kind)
	e.Uvarint(uint64(m.DamageType))
	e.U8(m.Attributes)
}

func decodeMeta[T any](d *Decoder, kind func(*Decoder) T) model.TypeMetadata[T] {
	return model.TypeMetadata[T]{
		Kind:       kind(d),
		DamageType: catalog.DamageType(d.Enum("damage type", catalog.DamageTypeCount)),
		Attributes: d.U8(),
	}
}
