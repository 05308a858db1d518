package engine

import (
	"slices"

	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

func NewPlayer() *model.Player { return &model.Player{} }

func NewEnemies() *model.Enemies {
	e := model.Enemies{}
	return &e
}

func NewDragons() *model.Dragons { return &model.Dragons{} }

// swapRemove returns a copy of s without element i; the last element takes
// its place. s itself is left untouched.
func swapRemove[T any](s []T, i int) []T {
	checkIndex(i, len(s))
	out := slices.Clone(s)
	last := len(out) - 1
	out[i] = out[last]
	var zero T
	out[last] = zero
	return out[:last]
}
