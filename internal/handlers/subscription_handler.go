package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// SubscriptionHandler handles HTTP requests for subscriptions.
type SubscriptionHandler struct {
	Store *store.Store
}

// NewSubscriptionHandler creates a new instance of SubscriptionHandler.
func NewSubscriptionHandler(s *store.Store) *SubscriptionHandler {
	return &SubscriptionHandler{Store: s}
}

func (h *SubscriptionHandler) ListSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		State: h.Store.Subscriptions.State().String(),
		Items: h.Store.Subscriptions.Items(),
	})
}

// MonthlySpendHandler sums the monthly-normalized cost of every active
// subscription. The figure is derived on read, never stored.
func (h *SubscriptionHandler) MonthlySpendHandler(w http.ResponseWriter, r *http.Request) {
	var total float64
	for _, sub := range h.Store.Subscriptions.Items() {
		if sub.Active {
			total += sub.MonthlyCost()
		}
	}
	writeJSON(w, http.StatusOK, map[string]float64{"monthlyTotal": total})
}

func (h *SubscriptionHandler) CreateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	var sub models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		logrus.WithError(err).Warn("Invalid subscription payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.AddSubscription(r.Context(), sub))
}

func (h *SubscriptionHandler) UpdateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid subscription update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	writeResult(w, h.Store.UpdateSubscription(r.Context(), mux.Vars(r)["id"], updates))
}

func (h *SubscriptionHandler) DeleteSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.Store.DeleteSubscription(r.Context(), mux.Vars(r)["id"]))
}
