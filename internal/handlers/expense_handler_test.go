package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/sampledata"
	"github.com/lifeos/lifeos-sync/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	s := store.New(store.Config{
		Logger: logger,
		Sample: func() sampledata.Dataset {
			return sampledata.Dataset{
				Expenses: []models.Expense{
					{ID: "exp_1", Amount: 12.5, Category: models.CategoryFoodAndDining, Date: time.Now(), CreatedAt: time.Now()},
				},
				Subscriptions: []models.Subscription{
					{ID: "sub_1", ServiceName: "A", Cost: 12, BillingCycle: models.BillingYearly, Active: true},
					{ID: "sub_2", ServiceName: "B", Cost: 10, BillingCycle: models.BillingMonthly, Active: true},
					{ID: "sub_3", ServiceName: "C", Cost: 99, BillingCycle: models.BillingMonthly, Active: false},
				},
			}
		},
	})
	s.Start(context.Background())
	t.Cleanup(s.Close)
	return s
}

func TestListExpensesHandler(t *testing.T) {
	h := NewExpenseHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rr := httptest.NewRecorder()
	h.ListExpensesHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		State string           `json:"state"`
		Items []models.Expense `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.State)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "exp_1", resp.Items[0].ID)
}

func TestCreateExpenseHandler(t *testing.T) {
	s := newTestStore(t)
	h := NewExpenseHandler(s)

	body := `{"amount": 30, "category": "Travel", "date": "2025-08-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateExpenseHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "applied-locally", resp["result"])
	assert.Equal(t, 2, s.Expenses.Len())
}

func TestCreateExpenseHandlerRejectsBadPayload(t *testing.T) {
	h := NewExpenseHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader("{nope"))
	rr := httptest.NewRecorder()
	h.CreateExpenseHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateExpenseHandlerRouted(t *testing.T) {
	s := newTestStore(t)
	h := NewExpenseHandler(s)

	router := mux.NewRouter()
	router.HandleFunc("/api/expenses/{id}", h.UpdateExpenseHandler).Methods("PATCH")

	req := httptest.NewRequest(http.MethodPatch, "/api/expenses/exp_1", strings.NewReader(`{"amount": 77}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	exp, ok := s.Expenses.Get("exp_1")
	require.True(t, ok)
	assert.Equal(t, float64(77), exp.Amount)
}

func TestDeleteExpenseHandlerRouted(t *testing.T) {
	s := newTestStore(t)
	h := NewExpenseHandler(s)

	router := mux.NewRouter()
	router.HandleFunc("/api/expenses/{id}", h.DeleteExpenseHandler).Methods("DELETE")

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/exp_1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, s.Expenses.Len())
}

func TestListCategoriesHandler(t *testing.T) {
	h := NewExpenseHandler(newTestStore(t))

	rr := httptest.NewRecorder()
	h.ListCategoriesHandler(rr, httptest.NewRequest(http.MethodGet, "/api/expenses/categories", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var cats []models.CategoryInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cats))
	assert.Len(t, cats, 10)
}

func TestMonthlySpendHandler(t *testing.T) {
	h := NewSubscriptionHandler(newTestStore(t))

	rr := httptest.NewRecorder()
	h.MonthlySpendHandler(rr, httptest.NewRequest(http.MethodGet, "/api/subscriptions/monthly-spend", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	// 12/12 yearly + 10 monthly; the inactive one does not count.
	assert.InDelta(t, 11.0, resp["monthlyTotal"], 0.001)
}
