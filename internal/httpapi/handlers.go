package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-damage-calculator/internal/calculator"
	"github.com/DoyleJ11/lol-damage-calculator/internal/hub"
	"github.com/DoyleJ11/lol-damage-calculator/internal/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if lookup(h, c) == nil {
				code = c
				break
			}
			log.Info("collision on code, regenerating", zap.String("session", c))
		}

		reply := make(chan *calculator.Session, 1)
		h.Inbox() <- hub.CreateSession{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(h, chi.URLParam(r, "code"))
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		reply := make(chan calculator.View, 1)
		s.Inbox() <- calculator.GetState{Reply: reply}
		select {
		case v := <-reply:
			writeJSON(w, http.StatusOK, types.Snapshot(v.Snapshot))
		case <-s.Done():
			http.Error(w, "session not found", http.StatusNotFound)
		case <-r.Context().Done():
		}
	}
}

func DeleteSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan bool, 1)
		h.Inbox() <- hub.RemoveSession{Code: chi.URLParam(r, "code"), Reply: reply}
		if !<-reply {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func lookup(h *hub.Hub, code string) *calculator.Session {
	reply := make(chan *calculator.Session, 1)
	h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
	return <-reply
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
