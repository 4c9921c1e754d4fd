package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	Store *store.Store
}

// NewExpenseHandler creates a new instance of ExpenseHandler.
func NewExpenseHandler(s *store.Store) *ExpenseHandler {
	return &ExpenseHandler{Store: s}
}

func (h *ExpenseHandler) ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Expenses.State().String(),
		Items: h.Store.Expenses.Items(),
	})
}

// ListCategoriesHandler returns the closed expense category catalogue.
func (h *ExpenseHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ExpenseCategories)
}

func (h *ExpenseHandler) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		logrus.WithError(err).Warn("Invalid expense payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddExpense(r.Context(), expense))
}

func (h *ExpenseHandler) UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid expense update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateExpense(r.Context(), mux.Vars(r)["id"], updates))
}

func (h *ExpenseHandler) DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteExpense(r.Context(), mux.Vars(r)["id"]))
}
