package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/session"
	jwtutil "github.com/lifeos/lifeos-sync/pkg/jwt"
)

// SessionHandler exposes the session gate over HTTP. The authentication flow
// itself lives outside this service; signing in here just installs the
// already-verified identity and hands back a bearer token for the protected
// routes.
type SessionHandler struct {
	Gate      *session.Gate
	JWTSecret string
	TokenTTL  time.Duration
}

// NewSessionHandler creates a new instance of SessionHandler.
func NewSessionHandler(gate *session.Gate, jwtSecret string) *SessionHandler {
	return &SessionHandler{Gate: gate, JWTSecret: jwtSecret, TokenTTL: 24 * time.Hour}
}

// LoginHandler installs an identity on the gate. The store reacts by
// switching every collection to the remote path for that user.
func (h *SessionHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	token, err := jwtutil.GenerateToken(req.UserID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session token")
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	h.Gate.Set(&session.Identity{UserID: req.UserID})
	logrus.WithField("user_id", req.UserID).Info("Session started")

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// LogoutHandler clears the gate; the store falls back to the local path.
func (h *SessionHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.Gate.Set(nil)
	logrus.Info("Session ended")
	w.WriteHeader(http.StatusNoContent)
}

// StatusHandler reports the current identity, if any.
func (h *SessionHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if id := h.Gate.Current(); id != nil {
		writeJSON(w, http.StatusOK, map[string]string{"user_id": id.UserID})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": ""})
}
