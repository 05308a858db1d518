package calculator

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/lol-damage-calculator/internal/engine"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNilAction       = errors.New("nil action")
)

// Reducers panic on bad indices. Anything arriving from outside the session
// goes through these checks first.

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s %d of %d: %w", what, i, n, ErrIndexOutOfRange)
	}
	return nil
}

func checkData[S model.StatBlock](d *model.PlayerData[S], a engine.DataAction[S]) error {
	switch a := a.(type) {
	case nil:
		return ErrNilAction
	case engine.RemoveItem[S]:
		return checkIndex("item", a.Index, len(d.Items))
	case engine.RemoveItemException[S]:
		return checkIndex("item exception", a.Index, len(d.ItemExceptions))
	}
	return nil
}

func checkPlayer(p *model.Player, a engine.PlayerAction) error {
	switch a := a.(type) {
	case nil:
		return ErrNilAction
	case engine.RemoveRune:
		return checkIndex("rune", a.Index, len(p.Runes))
	case engine.RemoveRuneException:
		return checkIndex("rune exception", a.Index, len(p.RuneExceptions))
	case engine.EditData:
		return checkData(&p.Data, a.Action)
	}
	return nil
}

func checkEnemies(e model.Enemies, a engine.EnemyAction) error {
	switch a := a.(type) {
	case nil:
		return ErrNilAction
	case engine.RemoveEnemy:
		return checkIndex("enemy", a.Index, len(e))
	case engine.EditEnemy:
		if err := checkIndex("enemy", a.Index, len(e)); err != nil {
			return err
		}
		return checkData(e[a.Index], a.Action)
	}
	return nil
}
