package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/lol-damage-calculator/internal/engine"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

type result struct {
	game *model.Game
	err  error
}

type pending struct {
	ctx   context.Context
	in    *model.InputGame
	reply chan result
}

// fakeCalc hands every request to the test and waits for the test to answer.
type fakeCalc struct {
	calls chan *pending
	// ignoreCancel keeps waiting for the answer after ctx is cancelled, like
	// a response already on the wire.
	ignoreCancel bool
}

func newFakeCalc() *fakeCalc { return &fakeCalc{calls: make(chan *pending, 16)} }

func (f *fakeCalc) Calculate(ctx context.Context, in *model.InputGame) (*model.Game, error) {
	p := &pending{ctx: ctx, in: in, reply: make(chan result, 1)}
	f.calls <- p
	if f.ignoreCancel {
		r := <-p.reply
		return r.game, r.err
	}
	select {
	case r := <-p.reply:
		return r.game, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func startSession(t *testing.T, calc Calculator, initial *model.InputGame) *Session {
	t.Helper()
	s := NewSession(context.Background(), calc, initial, zaptest.NewLogger(t))
	t.Cleanup(func() {
		s.Inbox() <- Shutdown{}
		<-s.Done()
	})
	return s
}

func nextCall(t *testing.T, f *fakeCalc) *pending {
	t.Helper()
	select {
	case p := <-f.calls:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a calculation")
		return nil
	}
}

func noCall(t *testing.T, f *fakeCalc) {
	t.Helper()
	select {
	case p := <-f.calls:
		t.Fatalf("unexpected calculation for %+v", p.in)
	case <-time.After(50 * time.Millisecond):
	}
}

func getState(t *testing.T, s *Session) View {
	t.Helper()
	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state")
		return View{}
	}
}

func dispatch(t *testing.T, s *Session, m Msg) error {
	t.Helper()
	reply := make(chan error, 1)
	switch m := m.(type) {
	case DispatchPlayer:
		m.Reply = reply
		s.Inbox() <- m
	case DispatchEnemies:
		m.Reply = reply
		s.Inbox() <- m
	case DispatchDragons:
		m.Reply = reply
		s.Inbox() <- m
	default:
		t.Fatalf("not a dispatch: %T", m)
	}
	select {
	case err := <-reply:
		return err
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatch")
		return nil
	}
}

func inferring(n int) *model.InputGame {
	in := &model.InputGame{}
	in.ActivePlayer.Data.InferStats = true
	for range n {
		in.EnemyPlayers = append(in.EnemyPlayers, &model.EnemyData{InferStats: true})
	}
	return in
}

func TestInitialInferenceWritesBackOnce(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, inferring(0))

	p := nextCall(t, calc)
	require.True(t, p.in.ActivePlayer.Data.InferStats)

	want := model.Stats{AttackDamage: 180, Health: 2100, Armor: 77}
	game := &model.Game{CurrentPlayer: model.FinalPlayer{CurrentStats: want}}
	p.reply <- result{game: game}

	require.Eventually(t, func() bool {
		return getState(t, s).Game == game
	}, time.Second, 5*time.Millisecond)

	v := getState(t, s)
	require.Equal(t, want, v.Player.Data.Stats)
	require.Equal(t, Any, v.LastAction.Kind, "the echo firing must consume Replace")
	require.False(t, v.InFlight)
	noCall(t, calc)
}

func TestWriteBackSetsReplace(t *testing.T) {
	s := newSession(context.Background(), newFakeCalc(), inferring(1), zaptest.NewLogger(t))
	defer s.cancel()

	g := &model.Game{
		CurrentPlayer: model.FinalPlayer{CurrentStats: model.Stats{Mana: 400}},
		Enemies:       []model.FinalEnemy{{CurrentStats: model.SimpleStats{Armor: 55}}},
	}
	before := s.player

	n := s.writeBack(LastAction{Kind: Init}, g)
	require.Equal(t, 2, n)
	require.Equal(t, Replace, s.tracker.Peek().Kind)
	require.NotSame(t, before, s.player)
	require.Equal(t, int32(400), s.player.Data.Stats.Mana)
	require.Equal(t, int32(55), (*s.enemies)[0].Stats.Armor)
}

func TestWriteBackOnlyWhenInferring(t *testing.T) {
	cases := []struct {
		name   string
		origin LastAction
		infer  bool
		want   int
	}{
		{"init without flag", LastAction{Kind: Init}, false, 0},
		{"player changed", LastAction{Kind: CurrentPlayerChanged}, true, 1},
		{"player changed without flag", LastAction{Kind: CurrentPlayerChanged}, false, 0},
		{"enemy changed", EnemyChangedAt(0), true, 1},
		{"any", LastAction{Kind: Any}, true, 0},
		{"replace", LastAction{Kind: Replace}, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := inferring(1)
			in.ActivePlayer.Data.InferStats = tc.infer
			in.EnemyPlayers[0].InferStats = tc.infer

			s := newSession(context.Background(), newFakeCalc(), in, zaptest.NewLogger(t))
			defer s.cancel()
			player, enemies := s.player, s.enemies

			g := &model.Game{Enemies: make([]model.FinalEnemy, 1)}
			require.Equal(t, tc.want, s.writeBack(tc.origin, g))
			if tc.want == 0 {
				require.Same(t, player, s.player)
				require.Same(t, enemies, s.enemies)
				require.Equal(t, Init, s.tracker.Peek().Kind)
			}
		})
	}
}

func TestWriteBackDropsVanishedEnemy(t *testing.T) {
	s := newSession(context.Background(), newFakeCalc(), inferring(3), zaptest.NewLogger(t))
	defer s.cancel()

	// Roster shrinks to two while a response for enemy 2 is in flight.
	require.NoError(t, s.dispatchEnemies(engine.RemoveEnemy{Index: 0}))
	require.Len(t, *s.enemies, 2)
	enemies := s.enemies

	g := &model.Game{Enemies: make([]model.FinalEnemy, 3)}
	g.Enemies[2].CurrentStats = model.SimpleStats{Health: 9999}

	require.Equal(t, 0, s.writeBack(EnemyChangedAt(2), g))
	require.Same(t, enemies, s.enemies)
	require.NotEqual(t, Replace, s.tracker.Peek().Kind)

	// The response is shorter than the roster.
	require.Equal(t, 0, s.writeBack(EnemyChangedAt(1), &model.Game{Enemies: make([]model.FinalEnemy, 1)}))
	require.Same(t, enemies, s.enemies)
}

func TestReplaceSuppressesOneFiring(t *testing.T) {
	calc := newFakeCalc()
	s := newSession(context.Background(), calc, nil, zaptest.NewLogger(t))
	defer s.cancel()

	s.tracker.Set(LastAction{Kind: Replace})
	s.fire()
	noCall(t, calc)
	require.Nil(t, s.active)
	require.Equal(t, Any, s.tracker.Peek().Kind)

	s.fire()
	nextCall(t, calc)
	require.NotNil(t, s.active)
	require.Equal(t, Any, s.active.origin.Kind)
}

func TestDispatchSetsProvenance(t *testing.T) {
	s := newSession(context.Background(), newFakeCalc(), inferring(2), zaptest.NewLogger(t))
	defer s.cancel()

	cases := []struct {
		name  string
		apply func() error
		want  LastAction
	}{
		{
			name:  "player edit",
			apply: func() error { return s.dispatchPlayer(engine.SetAbilityLevels{Levels: model.AbilityLevels{Q: 1}}) },
			want:  LastAction{Kind: CurrentPlayerChanged},
		},
		{
			name: "enemy edit",
			apply: func() error {
				return s.dispatchEnemies(engine.EditEnemy{Index: 1, Action: engine.SetLevel[model.SimpleStats]{Level: 6}})
			},
			want: EnemyChangedAt(1),
		},
		{
			name:  "push",
			apply: func() error { return s.dispatchEnemies(engine.PushEnemy{}) },
			want:  EnemyChangedAt(2),
		},
		{
			name:  "remove",
			apply: func() error { return s.dispatchEnemies(engine.RemoveEnemy{Index: 0}) },
			want:  LastAction{Kind: Any},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s.tracker.Set(LastAction{Kind: Init})
			require.NoError(t, tc.apply())
			require.Equal(t, tc.want, s.tracker.Peek())
		})
	}

	t.Run("dragons leave the tag alone", func(t *testing.T) {
		s.tracker.Set(EnemyChangedAt(1))
		player, enemies := s.player, s.enemies
		require.NoError(t, s.dispatchDragons(engine.AllyFire{Count: 2}))
		require.Equal(t, EnemyChangedAt(1), s.tracker.Peek())
		require.Same(t, player, s.player)
		require.Same(t, enemies, s.enemies)
	})
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	calc := newFakeCalc()
	calc.ignoreCancel = true
	s := startSession(t, calc, nil)

	first := nextCall(t, calc)

	require.NoError(t, dispatch(t, s, DispatchPlayer{
		Action: engine.EditData{Action: engine.SetLevel[model.Stats]{Level: 11}},
	}))
	second := nextCall(t, calc)
	require.Error(t, first.ctx.Err(), "superseded call must be cancelled")
	require.Equal(t, uint8(11), second.in.ActivePlayer.Data.Level)

	stale := &model.Game{TowerDamages: [model.TowerPlates]int32{1}}
	first.reply <- result{game: stale}
	assert.Never(t, func() bool {
		return getState(t, s).Game == stale
	}, 100*time.Millisecond, 10*time.Millisecond)

	fresh := &model.Game{TowerDamages: [model.TowerPlates]int32{2}}
	second.reply <- result{game: fresh}
	require.Eventually(t, func() bool {
		return getState(t, s).Game == fresh
	}, time.Second, 5*time.Millisecond)
	require.False(t, getState(t, s).InFlight)
}

func TestDragonsDoNotRecalculate(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, nil)
	nextCall(t, calc).reply <- result{game: &model.Game{}}
	require.Eventually(t, func() bool { return !getState(t, s).InFlight }, time.Second, 5*time.Millisecond)

	require.NoError(t, dispatch(t, s, DispatchDragons{Action: engine.EnemyEarth{Count: 3}}))
	noCall(t, calc)
	require.Equal(t, uint16(3), getState(t, s).Dragons.EnemyEarth)

	// The next real edit carries the dragons along.
	require.NoError(t, dispatch(t, s, DispatchEnemies{Action: engine.PushEnemy{}}))
	p := nextCall(t, calc)
	require.Equal(t, uint16(3), p.in.Dragons.EnemyEarth)
	require.Len(t, p.in.EnemyPlayers, 1)
}

func TestBothWriteBacksShareOneSuppressedFiring(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, inferring(2))

	p := nextCall(t, calc)
	game := &model.Game{
		CurrentPlayer: model.FinalPlayer{CurrentStats: model.Stats{AbilityPower: 90}},
		Enemies: []model.FinalEnemy{
			{CurrentStats: model.SimpleStats{Health: 1000}},
			{CurrentStats: model.SimpleStats{Health: 2000}},
		},
	}
	p.reply <- result{game: game}

	require.Eventually(t, func() bool { return getState(t, s).Game == game }, time.Second, 5*time.Millisecond)
	v := getState(t, s)
	require.Equal(t, int32(90), v.Player.Data.Stats.AbilityPower)
	require.Equal(t, int32(1000), v.Enemies[0].Stats.Health)
	require.Equal(t, int32(2000), v.Enemies[1].Stats.Health)
	require.Equal(t, Any, v.LastAction.Kind)
	noCall(t, calc)
}

func TestFailedCalculationLeavesStateAlone(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, inferring(0))
	before := getState(t, s)

	nextCall(t, calc).reply <- result{err: errors.New("connection refused")}
	require.Eventually(t, func() bool { return !getState(t, s).InFlight }, time.Second, 5*time.Millisecond)

	after := getState(t, s)
	require.Nil(t, after.Game)
	require.Same(t, before.Player, after.Player)
	require.Equal(t, before.Version, after.Version)
	noCall(t, calc)
}

func TestDispatchRejectsBadIndex(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, inferring(1))
	nextCall(t, calc)

	cases := []struct {
		name string
		msg  Msg
		want error
	}{
		{"edit past roster", DispatchEnemies{Action: engine.EditEnemy{Index: 1, Action: engine.SetLevel[model.SimpleStats]{Level: 2}}}, ErrIndexOutOfRange},
		{"remove negative", DispatchEnemies{Action: engine.RemoveEnemy{Index: -1}}, ErrIndexOutOfRange},
		{"remove missing rune", DispatchPlayer{Action: engine.RemoveRune{Index: 0}}, ErrIndexOutOfRange},
		{"remove missing item", DispatchPlayer{Action: engine.EditData{Action: engine.RemoveItem[model.Stats]{Index: 4}}}, ErrIndexOutOfRange},
		{"enemy item", DispatchEnemies{Action: engine.EditEnemy{Index: 0, Action: engine.RemoveItemException[model.SimpleStats]{Index: 0}}}, ErrIndexOutOfRange},
		{"nil player action", DispatchPlayer{}, ErrNilAction},
		{"nil dragon action", DispatchDragons{}, ErrNilAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := getState(t, s)
			err := dispatch(t, s, tc.msg)
			require.ErrorIs(t, err, tc.want)
			after := getState(t, s)
			require.Equal(t, before.Version, after.Version)
			require.Same(t, before.Player, after.Player)
		})
	}
	noCall(t, calc)
}

func TestJoinBroadcastAndShutdown(t *testing.T) {
	calc := newFakeCalc()
	s := NewSession(context.Background(), calc, nil, zaptest.NewLogger(t))

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	first := <-out
	require.Equal(t, 0, first.Version)

	require.NoError(t, dispatch(t, s, DispatchDragons{Action: engine.AllyChemtech{Count: 1}}))
	next := <-out
	require.Equal(t, 1, next.Version)
	require.Equal(t, uint16(1), next.Dragons.AllyChemtech)
	require.Equal(t, 1, getState(t, s).NumClients)

	p := nextCall(t, calc)
	s.Inbox() <- Shutdown{}
	<-s.Done()

	_, open := <-out
	require.False(t, open, "outbox must be closed on shutdown")
	require.Error(t, p.ctx.Err(), "in-flight call must be cancelled on shutdown")
}

func TestSlowClientIsDropped(t *testing.T) {
	calc := newFakeCalc()
	s := startSession(t, calc, nil)

	out := make(chan Snapshot, 1)
	s.Inbox() <- Join{ClientID: "slow", Outbox: out}
	// Outbox now holds the join snapshot; the next broadcast overflows it.
	require.NoError(t, dispatch(t, s, DispatchDragons{Action: engine.AllyEarth{Count: 1}}))

	require.Equal(t, 0, getState(t, s).NumClients)
	<-out
	_, open := <-out
	require.False(t, open)
}

func TestSnapshotInput(t *testing.T) {
	in := inferring(2)
	in.Dragons.AllyFire = 1
	s := newSession(context.Background(), newFakeCalc(), in, zaptest.NewLogger(t))
	defer s.cancel()

	require.Equal(t, in, s.snapshot().Input())
}
