// Package calculator runs one editing session: it owns the build being
// edited, keeps the remote calculation in step with it and fans snapshots out
// to connected clients.
package calculator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-damage-calculator/internal/engine"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
)

// Calculator computes a Game for a build. Implementations must return once
// ctx is cancelled; the result of a cancelled call is ignored either way.
type Calculator interface {
	Calculate(ctx context.Context, in *model.InputGame) (*model.Game, error)
}

type Msg interface{ isSessionMsg() }

// DispatchPlayer applies a user edit to the player. Reply, if set, must be
// buffered; it receives nil or the rejection.
type DispatchPlayer struct {
	Action engine.PlayerAction
	Reply  chan error
}

type DispatchEnemies struct {
	Action engine.EnemyAction
	Reply  chan error
}

// DispatchDragons never triggers a calculation on its own.
type DispatchDragons struct {
	Action engine.DragonAction
	Reply  chan error
}

type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

type Leave struct{ ClientID string }

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

type callDone struct {
	call *call
	game *model.Game
	err  error
}

func (DispatchPlayer) isSessionMsg()  {}
func (DispatchEnemies) isSessionMsg() {}
func (DispatchDragons) isSessionMsg() {}
func (Join) isSessionMsg()            {}
func (Leave) isSessionMsg()           {}
func (GetState) isSessionMsg()        {}
func (Shutdown) isSessionMsg()        {}
func (callDone) isSessionMsg()        {}

// Snapshot is what clients see. Everything it points to is immutable.
type Snapshot struct {
	Version int
	Player  *model.Player
	Enemies model.Enemies
	Dragons model.Dragons
	Game    *model.Game
}

// Input is the build in the shape the service and the store expect.
func (s Snapshot) Input() *model.InputGame {
	return &model.InputGame{
		ActivePlayer: *s.Player,
		EnemyPlayers: s.Enemies,
		Dragons:      s.Dragons,
	}
}

type View struct {
	Snapshot
	NumClients int
	LastAction LastAction
	InFlight   bool
}

// call is one remote calculation. Its pointer is its identity.
type call struct {
	id     uuid.UUID
	cancel context.CancelFunc
	origin LastAction
}

type Session struct {
	inbox   chan Msg
	calc    Calculator
	log     *zap.Logger
	tracker *Tracker

	player  *model.Player
	enemies *model.Enemies
	dragons *model.Dragons
	game    *model.Game
	version int

	// last (player, enemies) pair the watcher saw
	seenPlayer  *model.Player
	seenEnemies *model.Enemies

	active  *call
	clients map[string]chan Snapshot

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession starts a session on initial, or on a default build when
// initial is nil. The first calculation is requested right away.
func NewSession(parent context.Context, calc Calculator, initial *model.InputGame, log *zap.Logger) *Session {
	s := newSession(parent, calc, initial, log)
	go s.loop()
	return s
}

func newSession(parent context.Context, calc Calculator, initial *model.InputGame, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:   make(chan Msg, 64),
		calc:    calc,
		log:     log,
		tracker: NewTracker(),
		player:  engine.NewPlayer(),
		enemies: engine.NewEnemies(),
		dragons: engine.NewDragons(),
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if initial != nil {
		p := initial.ActivePlayer
		e := initial.EnemyPlayers
		d := initial.Dragons
		s.player, s.enemies, s.dragons = &p, &e, &d
	}
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) loop() {
	defer close(s.done)
	s.observe()
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case DispatchPlayer:
				reply(msg.Reply, s.dispatchPlayer(msg.Action))

			case DispatchEnemies:
				reply(msg.Reply, s.dispatchEnemies(msg.Action))

			case DispatchDragons:
				reply(msg.Reply, s.dispatchDragons(msg.Action))

			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.snapshot()

			case Leave:
				delete(s.clients, msg.ClientID)

			case GetState:
				msg.Reply <- View{
					Snapshot:   s.snapshot(),
					NumClients: len(s.clients),
					LastAction: s.tracker.Peek(),
					InFlight:   s.active != nil,
				}

			case callDone:
				s.finish(msg)

			case Shutdown:
				s.shutdown()
				return
			}
			s.observe()
		}
	}
}

func reply(ch chan error, err error) {
	if ch != nil {
		ch <- err
	}
}

func (s *Session) dispatchPlayer(a engine.PlayerAction) error {
	if err := checkPlayer(s.player, a); err != nil {
		return err
	}
	s.tracker.Set(LastAction{Kind: CurrentPlayerChanged})
	s.player = engine.ReducePlayer(s.player, a)
	s.commit()
	return nil
}

func (s *Session) dispatchEnemies(a engine.EnemyAction) error {
	if err := checkEnemies(*s.enemies, a); err != nil {
		return err
	}
	switch a := a.(type) {
	case engine.PushEnemy:
		s.tracker.Set(EnemyChangedAt(len(*s.enemies)))
	case engine.EditEnemy:
		s.tracker.Set(EnemyChangedAt(a.Index))
	default:
		// Indices moved; nothing to infer.
		s.tracker.Set(LastAction{Kind: Any})
	}
	s.enemies = engine.ReduceEnemies(s.enemies, a)
	s.commit()
	return nil
}

func (s *Session) dispatchDragons(a engine.DragonAction) error {
	if a == nil {
		return ErrNilAction
	}
	s.dragons = engine.ReduceDragons(s.dragons, a)
	s.commit()
	return nil
}

// observe is the watcher. It runs at the end of every turn, so any number of
// changes made within one turn count as a single change.
func (s *Session) observe() {
	if s.player == s.seenPlayer && s.enemies == s.seenEnemies {
		return
	}
	s.seenPlayer, s.seenEnemies = s.player, s.enemies
	s.fire()
}

func (s *Session) fire() {
	origin := s.tracker.Take()
	if origin.Kind == Replace {
		s.log.Debug("write-back echo suppressed")
		return
	}

	s.cancelActive()

	in := &model.InputGame{
		ActivePlayer: *s.player,
		EnemyPlayers: *s.enemies,
		Dragons:      *s.dragons,
	}
	ctx, cancel := context.WithCancel(s.ctx)
	c := &call{id: uuid.New(), cancel: cancel, origin: origin}
	s.active = c
	s.log.Debug("calculation requested",
		zap.String("call", c.id.String()),
		zap.Stringer("origin", origin))

	go func() {
		game, err := s.calc.Calculate(ctx, in)
		select {
		case s.inbox <- callDone{call: c, game: game, err: err}:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Session) cancelActive() {
	if s.active == nil {
		return
	}
	s.active.cancel()
	s.active = nil
}

func (s *Session) finish(d callDone) {
	if s.active != d.call {
		// Superseded or cancelled while in flight.
		s.log.Debug("stale response dropped", zap.String("call", d.call.id.String()))
		return
	}
	s.active = nil
	d.call.cancel()

	if d.err != nil {
		if !errors.Is(d.err, context.Canceled) {
			s.log.Warn("calculation failed",
				zap.String("call", d.call.id.String()),
				zap.Error(d.err))
		}
		return
	}

	n := s.writeBack(d.call.origin, d.game)
	s.game = d.game
	s.log.Debug("response committed",
		zap.String("call", d.call.id.String()),
		zap.Stringer("origin", d.call.origin),
		zap.Int("write_backs", n))
	s.commit()
}

// writeBack copies inferred stats from g into every entity the origin
// allows and returns how many were written.
func (s *Session) writeBack(origin LastAction, g *model.Game) int {
	n := 0
	switch origin.Kind {
	case Init:
		if s.inferPlayer(g) {
			n++
		}
		for i := range g.Enemies {
			if s.inferEnemy(i, g) {
				n++
			}
		}
	case CurrentPlayerChanged:
		if s.inferPlayer(g) {
			n++
		}
	case EnemyChanged:
		if s.inferEnemy(origin.Enemy, g) {
			n++
		}
	}
	return n
}

func (s *Session) inferPlayer(g *model.Game) bool {
	if !s.player.Data.InferStats {
		return false
	}
	s.tracker.Set(LastAction{Kind: Replace})
	s.player = engine.ReducePlayer(s.player, engine.EditData{
		Action: engine.SetStats[model.Stats]{Stats: g.CurrentPlayer.CurrentStats},
	})
	return true
}

// inferEnemy drops the write-back when i no longer names an enemy on either
// side: the roster may have shrunk while the call was in flight.
func (s *Session) inferEnemy(i int, g *model.Game) bool {
	if i < 0 || i >= len(*s.enemies) || i >= len(g.Enemies) {
		return false
	}
	if !(*s.enemies)[i].InferStats {
		return false
	}
	s.tracker.Set(LastAction{Kind: Replace})
	s.enemies = engine.ReduceEnemies(s.enemies, engine.EditEnemy{
		Index:  i,
		Action: engine.SetStats[model.SimpleStats]{Stats: g.Enemies[i].CurrentStats},
	})
	return true
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Version: s.version,
		Player:  s.player,
		Enemies: *s.enemies,
		Dragons: *s.dragons,
		Game:    s.game,
	}
}

func (s *Session) commit() {
	s.version++
	s.broadcast(s.snapshot())
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) shutdown() {
	s.cancelActive()
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}
