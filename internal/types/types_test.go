package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/catalog"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

func TestSnapshot_ResolvesMerges(t *testing.T) {
	q := model.TypeMetadata[catalog.AbilityID]{Kind: catalog.AbilityID{Slot: catalog.SlotQ}, DamageType: catalog.DamagePhysical}
	q1 := model.TypeMetadata[catalog.AbilityID]{Kind: catalog.AbilityID{Slot: catalog.SlotQ, Variant: 1}, DamageType: catalog.DamagePhysical}
	g := &model.Game{
		AbilitiesMeta: []model.TypeMetadata[catalog.AbilityID]{q, q1},
		// The second row points past AbilitiesMeta and is left out.
		AbilitiesToMerge: []model.AbilityMerge{{Primary: 0, Secondary: 1}, {Primary: 1, Secondary: 9}},
	}

	msg := Snapshot(calculator.Snapshot{Version: 3, Game: g})
	require.Equal(t, []MergedAbility{{Row: 0, Primary: q, Secondary: q1}}, msg.Merges)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"merges":[{"row":0,`)
}

func TestSnapshot_NoGame(t *testing.T) {
	msg := Snapshot(calculator.Snapshot{})
	require.Equal(t, "Snapshot", msg.Type)
	require.Nil(t, msg.Game)
	require.Nil(t, msg.Merges)
}

func TestError(t *testing.T) {
	msg := Error(errors.New("boom"))
	require.Equal(t, ServerMessage{Type: "Error", Error: "boom"}, msg)
}
