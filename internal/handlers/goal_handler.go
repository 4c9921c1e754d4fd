package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	Store *store.Store
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(s *store.Store) *GoalHandler {
	return &GoalHandler{Store: s}
}

func (h *GoalHandler) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Goals.State().String(),
		Items: h.Store.Goals.Items(),
	})
}

func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		logrus.WithError(err).Warn("Invalid goal payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddGoal(r.Context(), goal))
}

func (h *GoalHandler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid goal update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateGoal(r.Context(), mux.Vars(r)["id"], updates))
}

func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteGoal(r.Context(), mux.Vars(r)["id"]))
}
