package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/store"
	jwtutil "github.com/lifeos/lifeos-sync/pkg/jwt"
)

// FeedHandler streams store change notifications to dashboard clients over a
// websocket, so open views refresh without polling.
type FeedHandler struct {
	Store     *store.Store
	JWTSecret string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewFeedHandler creates a new instance of FeedHandler.
func NewFeedHandler(s *store.Store, jwtSecret string) *FeedHandler {
	return &FeedHandler{Store: s, JWTSecret: jwtSecret}
}

// ChangesWebSocketHandler upgrades the connection and forwards every change
// broadcast until the client disconnects. A token is only required when one
// is presented; the guest dashboard listens unauthenticated.
func (h *FeedHandler) ChangesWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	if token := r.URL.Query().Get("token"); token != "" {
		if _, err := jwtutil.ValidateToken(token, h.JWTSecret); err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	changes, unsubscribe := h.Store.SubscribeChanges()
	defer unsubscribe()

	// Drain client frames so pings and the eventual close are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
