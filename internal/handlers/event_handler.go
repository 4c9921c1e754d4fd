package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// EventHandler handles HTTP requests for calendar events.
type EventHandler struct {
	Store *store.Store
}

// NewEventHandler creates a new instance of EventHandler.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{Store: s}
}

// ListEventsHandler returns the current event snapshot.
func (h *EventHandler) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Events.State().String(),
		Items: h.Store.Events.Items(),
	})
}

// CreateEventHandler adds a new calendar event. Id and timestamps are
// assigned by the store; anything the client sends for them is ignored.
func (h *EventHandler) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var event models.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		logrus.WithError(err).Warn("Invalid event payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddEvent(r.Context(), event))
}

// UpdateEventHandler merges partial fields into an event.
func (h *EventHandler) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid event update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateEvent(r.Context(), mux.Vars(r)["id"], updates))
}

// DeleteEventHandler removes an event; a missing id is a silent no-op.
func (h *EventHandler) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteEvent(r.Context(), mux.Vars(r)["id"]))
}
