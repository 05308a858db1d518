package calculator

import "fmt"

type ActionKind uint8

const (
	// Init is the state before any response has been seen.
	Init ActionKind = iota
	Any
	CurrentPlayerChanged
	EnemyChanged
	// Replace marks the next watched change as a write-back echo.
	Replace
)

// LastAction records why the watched state last changed. Enemy is only
// meaningful for EnemyChanged.
type LastAction struct {
	Kind  ActionKind
	Enemy int
}

func EnemyChangedAt(i int) LastAction { return LastAction{Kind: EnemyChanged, Enemy: i} }

func (a LastAction) String() string {
	switch a.Kind {
	case Init:
		return "Init"
	case Any:
		return "Any"
	case CurrentPlayerChanged:
		return "CurrentPlayerChanged"
	case EnemyChanged:
		return fmt.Sprintf("EnemyChanged(%d)", a.Enemy)
	case Replace:
		return "Replace"
	default:
		return fmt.Sprintf("LastAction(%d)", a.Kind)
	}
}

// Tracker holds the single pending provenance tag. It is a guard, not a
// queue: a Set overwrites whatever was there.
type Tracker struct {
	last LastAction
}

func NewTracker() *Tracker { return &Tracker{last: LastAction{Kind: Init}} }

func (t *Tracker) Set(a LastAction) { t.last = a }

func (t *Tracker) Peek() LastAction { return t.last }

// Take returns the tag and resets it to Any.
func (t *Tracker) Take() LastAction {
	a := t.last
	t.last = LastAction{Kind: Any}
	return a
}
