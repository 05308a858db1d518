package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/engine"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/types"
)

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrUnknownTarget = errors.New("unknown target")
	ErrUnknownDragon = errors.New("unknown dragon")
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownRune   = errors.New("unknown rune")
)

// toSessionMsg turns a client edit into the session dispatch carrying it.
func toSessionMsg(m types.ClientMessage) (calculator.Msg, error) {
	switch m.Target {
	case "":
	case "player":
		a, err := dataAction[model.Stats](m)
		if err != nil {
			return nil, err
		}
		return calculator.DispatchPlayer{Action: engine.EditData{Action: a}}, nil
	case "enemy":
		a, err := dataAction[model.SimpleStats](m)
		if err != nil {
			return nil, err
		}
		return calculator.DispatchEnemies{Action: engine.EditEnemy{Index: m.Enemy, Action: a}}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTarget, m.Target)
	}

	switch m.Type {
	case "InsertRune":
		r, ok := catalog.RuneFromIndex(uint32(m.Rune))
		if !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownRune, m.Rune)
		}
		return calculator.DispatchPlayer{Action: engine.InsertRune{Rune: r}}, nil
	case "RemoveRune":
		return calculator.DispatchPlayer{Action: engine.RemoveRune{Index: m.Index}}, nil
	case "InsertRuneException":
		r, ok := catalog.RuneFromIndex(uint32(m.Rune))
		if !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownRune, m.Rune)
		}
		return calculator.DispatchPlayer{Action: engine.InsertRuneException{Rune: r, Stacks: m.Stacks}}, nil
	case "RemoveRuneException":
		return calculator.DispatchPlayer{Action: engine.RemoveRuneException{Index: m.Index}}, nil
	case "SetAbilityLevels":
		if m.Abilities == nil {
			return nil, errors.New("abilities are required")
		}
		return calculator.DispatchPlayer{Action: engine.SetAbilityLevels{Levels: *m.Abilities}}, nil
	case "PushEnemy":
		return calculator.DispatchEnemies{Action: engine.PushEnemy{}}, nil
	case "RemoveEnemy":
		return calculator.DispatchEnemies{Action: engine.RemoveEnemy{Index: m.Enemy}}, nil
	case "SetDragons":
		a, err := dragonAction(m.Dragon, m.Count)
		if err != nil {
			return nil, err
		}
		return calculator.DispatchDragons{Action: a}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, m.Type)
	}
}

func dataAction[S model.StatBlock](m types.ClientMessage) (engine.DataAction[S], error) {
	switch m.Type {
	case "SetStats":
		var s S
		if err := json.Unmarshal(m.Stats, &s); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		return engine.SetStats[S]{Stats: s}, nil
	case "SetStacks":
		return engine.SetStacks[S]{Stacks: m.Stacks}, nil
	case "SetLevel":
		return engine.SetLevel[S]{Level: m.Level}, nil
	case "SetInferStats":
		return engine.SetInferStats[S]{Infer: m.Flag}, nil
	case "SetMegaGnar":
		return engine.SetMegaGnar[S]{Mega: m.Flag}, nil
	case "SetChampion":
		c, err := catalog.ParseChampion(m.Champion)
		if err != nil {
			return nil, err
		}
		return engine.SetChampion[S]{Champion: c}, nil
	case "InsertItem":
		it, ok := catalog.ItemFromIndex(uint32(m.Item))
		if !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownItem, m.Item)
		}
		return engine.InsertItem[S]{Item: it}, nil
	case "RemoveItem":
		return engine.RemoveItem[S]{Index: m.Index}, nil
	case "InsertItemException":
		it, ok := catalog.ItemFromIndex(uint32(m.Item))
		if !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownItem, m.Item)
		}
		return engine.InsertItemException[S]{Item: it, Stacks: m.Stacks}, nil
	case "RemoveItemException":
		return engine.RemoveItemException[S]{Index: m.Index}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, m.Type)
	}
}

func dragonAction(name string, count uint16) (engine.DragonAction, error) {
	switch name {
	case "ally_fire":
		return engine.AllyFire{Count: count}, nil
	case "ally_earth":
		return engine.AllyEarth{Count: count}, nil
	case "ally_chemtech":
		return engine.AllyChemtech{Count: count}, nil
	case "enemy_earth":
		return engine.EnemyEarth{Count: count}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDragon, name)
	}
}
