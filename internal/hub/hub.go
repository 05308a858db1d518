package hub

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/store"
)

// Builds persists session builds between runs. It may be nil.
type Builds interface {
	SaveBuild(ctx context.Context, code string, in *model.InputGame) error
	LoadBuild(ctx context.Context, code string) (*model.InputGame, error)
}

type HubMsg interface{ isHubMsg() }

// CreateSession starts a session under Code from Initial (nil for a default
// build). An existing session is returned as is.
type CreateSession struct {
	Code    string
	Initial *model.InputGame
	Reply   chan *calculator.Session
}

// GetSession returns the running session, resuming a saved build if there
// is one. Reply gets nil when neither exists.
type GetSession struct {
	Code  string
	Reply chan *calculator.Session
}

// RemoveSession saves the build and stops the session.
type RemoveSession struct {
	Code  string
	Reply chan bool // optional; true if a session was running
}

type ShutdownHub struct {
	Done chan struct{} // optional; closed once every session is saved and stopped
}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*calculator.Session
	calc     calculator.Calculator
	builds   Builds
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, calc calculator.Calculator, builds Builds, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*calculator.Session),
		calc:     calc,
		builds:   builds,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			// Sessions hang off h.ctx and stop on their own.
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.start(msg.Code, msg.Initial)

			case GetSession:
				msg.Reply <- h.lookup(msg.Code) // May be nil

			case RemoveSession:
				s := h.sessions[msg.Code]
				if s != nil {
					h.stop(msg.Code, s)
					delete(h.sessions, msg.Code)
				}
				if msg.Reply != nil {
					msg.Reply <- s != nil
				}

			case ShutdownHub:
				for code, s := range h.sessions {
					h.stop(code, s)
				}
				clear(h.sessions)
				h.cancel()
				if msg.Done != nil {
					close(msg.Done)
				}
				return
			}
		}
	}
}

func (h *Hub) start(code string, initial *model.InputGame) *calculator.Session {
	s := calculator.NewSession(h.ctx, h.calc, initial, h.log.With(zap.String("session", code)))
	h.sessions[code] = s
	h.log.Info("session started", zap.String("session", code), zap.Bool("resumed", initial != nil))
	return s
}

func (h *Hub) lookup(code string) *calculator.Session {
	if s := h.sessions[code]; s != nil {
		return s
	}
	if h.builds == nil {
		return nil
	}
	in, err := h.builds.LoadBuild(h.ctx, code)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Warn("load build failed", zap.String("session", code), zap.Error(err))
		}
		return nil
	}
	return h.start(code, in)
}

// stop saves the session's build, then shuts it down and waits for it.
func (h *Hub) stop(code string, s *calculator.Session) {
	if h.builds != nil {
		if v, ok := state(s); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := h.builds.SaveBuild(ctx, code, v.Input()); err != nil {
				h.log.Warn("save build failed", zap.String("session", code), zap.Error(err))
			}
			cancel()
		}
	}
	s.Inbox() <- calculator.Shutdown{}
	<-s.Done()
	h.log.Info("session stopped", zap.String("session", code))
}

func state(s *calculator.Session) (calculator.View, bool) {
	reply := make(chan calculator.View, 1)
	s.Inbox() <- calculator.GetState{Reply: reply}
	select {
	case v := <-reply:
		return v, true
	case <-s.Done():
		return calculator.View{}, false
	}
}
