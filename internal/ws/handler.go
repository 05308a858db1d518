package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/hub"
	"github.com/DoyleJ11/lol-damage-calculator/internal/types"
)

const writeTimeout = 3 * time.Second

var errSessionClosed = errors.New("session closed")

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *calculator.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.CloseNow()

		clientID := uuid.NewString()
		log := log.With(zap.String("session", code), zap.String("client", clientID))

		out := make(chan calculator.Snapshot, 8)
		if !join(s, clientID, out) {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}
		defer leave(s, clientID)

		// Errors meant for this client only.
		errs := make(chan types.ServerMessage, 8)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error { return writeLoop(ctx, conn, out, errs) })
		g.Go(func() error { return readLoop(ctx, conn, s, errs) })
		err = g.Wait()

		switch {
		case errors.Is(err, errSessionClosed):
			// writeLoop already sent the close frame.
		case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
			websocket.CloseStatus(err) == websocket.StatusGoingAway:
			conn.Close(websocket.StatusNormalClosure, "bye")
		default:
			log.Debug("websocket closed", zap.Error(err))
			conn.Close(websocket.StatusInternalError, "")
		}
	}
}

// join registers out with the session. It reports false if the session has
// already stopped.
func join(s *calculator.Session, clientID string, out chan calculator.Snapshot) bool {
	// The inbox may still have room after the loop exits.
	select {
	case <-s.Done():
		return false
	default:
	}
	select {
	case s.Inbox() <- calculator.Join{ClientID: clientID, Outbox: out}:
		return true
	case <-s.Done():
		return false
	}
}

func leave(s *calculator.Session, clientID string) {
	select {
	case s.Inbox() <- calculator.Leave{ClientID: clientID}:
	case <-s.Done():
	}
}

// writeLoop closes the socket itself when the session goes away. Returning
// first would cancel ctx, and the pending Read would tear the connection
// down before a close frame could be sent.
func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan calculator.Snapshot, errs <-chan types.ServerMessage) error {
	for {
		var msg types.ServerMessage
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-out:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "session closed")
				return errSessionClosed
			}
			msg = types.Snapshot(snap)
		case msg = <-errs:
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := wsjson.Write(wctx, conn, msg)
		cancel()
		if err != nil {
			return err
		}
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, s *calculator.Session, errs chan<- types.ServerMessage) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			report(errs, errors.New("bad json"))
			continue
		}

		msg, err := toSessionMsg(cm)
		if err != nil {
			report(errs, err)
			continue
		}

		if err := dispatch(ctx, s, msg); err != nil {
			if errors.Is(err, errSessionClosed) || ctx.Err() != nil {
				return err
			}
			report(errs, err)
		}
	}
}

// dispatch sends msg and waits for the session to accept or reject it.
func dispatch(ctx context.Context, s *calculator.Session, msg calculator.Msg) error {
	reply := make(chan error, 1)
	switch m := msg.(type) {
	case calculator.DispatchPlayer:
		m.Reply = reply
		msg = m
	case calculator.DispatchEnemies:
		m.Reply = reply
		msg = m
	case calculator.DispatchDragons:
		m.Reply = reply
		msg = m
	}

	select {
	case s.Inbox() <- msg:
	case <-s.Done():
		return errSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-s.Done():
		return errSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// report drops the error when the client is not keeping up.
func report(errs chan<- types.ServerMessage, err error) {
	select {
	case errs <- types.Error(err):
	default:
	}
}
