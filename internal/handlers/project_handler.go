package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// ProjectHandler handles HTTP requests for projects and their task lists.
type ProjectHandler struct {
	Store *store.Store
}

// NewProjectHandler creates a new instance of ProjectHandler.
func NewProjectHandler(s *store.Store) *ProjectHandler {
	return &ProjectHandler{Store: s}
}

func (h *ProjectHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Projects.State().String(),
		Items: h.Store.Projects.Items(),
	})
}

func (h *ProjectHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		logrus.WithError(err).Warn("Invalid project payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddProject(r.Context(), project))
}

func (h *ProjectHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid project update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateProject(r.Context(), mux.Vars(r)["id"], updates))
}

func (h *ProjectHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteProject(r.Context(), mux.Vars(r)["id"]))
}

// AddTaskHandler appends a new task to a project's checklist.
func (h *ProjectHandler) AddTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid task payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddProjectTask(r.Context(), mux.Vars(r)["id"], req.Text))
}

// ToggleTaskHandler flips a task's completed flag.
func (h *ProjectHandler) ToggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeResult(w, h.Store.ToggleProjectTask(r.Context(), vars["id"], vars["taskId"]))
}

// DeleteTaskHandler removes a task from a project's checklist.
func (h *ProjectHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeResult(w, h.Store.DeleteProjectTask(r.Context(), vars["id"], vars["taskId"]))
}
