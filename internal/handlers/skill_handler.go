package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// SkillHandler handles HTTP requests for skills.
type SkillHandler struct {
	Store *store.Store
}

// NewSkillHandler creates a new instance of SkillHandler.
func NewSkillHandler(s *store.Store) *SkillHandler {
	return &SkillHandler{Store: s}
}

func (h *SkillHandler) ListSkillsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Skills.State().String(),
		Items: h.Store.Skills.Items(),
	})
}

func (h *SkillHandler) CreateSkillHandler(w http.ResponseWriter, r *http.Request) {
	var skill models.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		logrus.WithError(err).Warn("Invalid skill payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddSkill(r.Context(), skill))
}

func (h *SkillHandler) UpdateSkillHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid skill update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateSkill(r.Context(), mux.Vars(r)["id"], updates))
}

func (h *SkillHandler) DeleteSkillHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteSkill(r.Context(), mux.Vars(r)["id"]))
}
