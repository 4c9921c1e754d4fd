package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/store"
)

// RenewalNotifier places upcoming subscription renewals on the calendar so
// they surface next to everything else the dashboard shows for the day.
type RenewalNotifier struct {
	Store *store.Store
	// Horizon is how far ahead a renewal must be to get an event.
	Horizon time.Duration
}

// NewRenewalNotifier creates a new instance of RenewalNotifier.
func NewRenewalNotifier(s *store.Store) *RenewalNotifier {
	return &RenewalNotifier{Store: s, Horizon: 72 * time.Hour}
}

// RunDailyScan walks active auto-renewing subscriptions and creates a Bills
// calendar event for each renewal inside the horizon, unless one is already
// linked to that subscription on that day.
func (n *RenewalNotifier) RunDailyScan(ctx context.Context) error {
	now := time.Now()
	horizon := now.Add(n.Horizon)
	events := n.Store.Events.Items()

	created := 0
	for _, sub := range n.Store.Subscriptions.Items() {
		if !sub.Active || !sub.AutoRenew {
			continue
		}
		if sub.NextRenewal.Before(now) || sub.NextRenewal.After(horizon) {
			continue
		}
		if hasRenewalEvent(events, sub.ID, sub.NextRenewal) {
			continue
		}

		n.Store.AddEvent(ctx, models.CalendarEvent{
			Title:                fmt.Sprintf("%s renews (%s)", sub.ServiceName, formatCost(sub.Cost)),
			StartTime:            sub.NextRenewal,
			EndTime:              sub.NextRenewal.Add(30 * time.Minute),
			Type:                 models.EventBills,
			Checklist:            []models.ChecklistItem{},
			IsSubscriptionEvent:  true,
			LinkedSubscriptionID: sub.ID,
		})
		created++
	}

	logrus.WithField("created", created).Info("Subscription renewal scan finished")
	return nil
}

func hasRenewalEvent(events []models.CalendarEvent, subscriptionID string, renewal time.Time) bool {
	for _, e := range events {
		if e.LinkedSubscriptionID == subscriptionID && sameDay(e.StartTime, renewal) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func formatCost(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
