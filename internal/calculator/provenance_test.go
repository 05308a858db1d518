package calculator

import "testing"

func TestTrackerTakeResets(t *testing.T) {
	tr := NewTracker()
	if got := tr.Peek(); got.Kind != Init {
		t.Fatalf("new tracker = %v, want Init", got)
	}

	cases := []LastAction{
		{Kind: Init},
		{Kind: CurrentPlayerChanged},
		EnemyChangedAt(3),
		{Kind: Replace},
		{Kind: Any},
	}
	for _, want := range cases {
		tr.Set(want)
		if got := tr.Take(); got != want {
			t.Fatalf("Take() = %v, want %v", got, want)
		}
		if got := tr.Peek(); got.Kind != Any {
			t.Fatalf("after Take tag = %v, want Any", got)
		}
	}
}

func TestTrackerSetOverwrites(t *testing.T) {
	tr := NewTracker()
	tr.Set(LastAction{Kind: Replace})
	tr.Set(LastAction{Kind: Replace})
	tr.Take()
	if got := tr.Peek(); got.Kind != Any {
		t.Fatalf("two Sets must leave one pending tag, got %v after Take", got)
	}
}

func TestLastActionString(t *testing.T) {
	cases := []struct {
		in   LastAction
		want string
	}{
		{LastAction{Kind: Init}, "Init"},
		{LastAction{Kind: Any}, "Any"},
		{LastAction{Kind: CurrentPlayerChanged}, "CurrentPlayerChanged"},
		{EnemyChangedAt(2), "EnemyChanged(2)"},
		{LastAction{Kind: Replace}, "Replace"},
		{LastAction{Kind: 42}, "LastAction(42)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}
