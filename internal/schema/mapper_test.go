package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lifeos/lifeos-sync/internal/models"
)

func TestToSnake(t *testing.T) {
	assert.Equal(t, "id", ToSnake("id"))
	assert.Equal(t, "created_at", ToSnake("createdAt"))
	assert.Equal(t, "linked_subscription_id", ToSnake("linkedSubscriptionId"))
	assert.Equal(t, "is_subscription_event", ToSnake("isSubscriptionEvent"))
}

func TestToCamel(t *testing.T) {
	assert.Equal(t, "id", ToCamel("id"))
	assert.Equal(t, "createdAt", ToCamel("created_at"))
	assert.Equal(t, "linkedSubscriptionId", ToCamel("linked_subscription_id"))
	assert.Equal(t, "billingCycle", ToCamel("billing_cycle"))
}

func TestToRemoteAttachesOwnerAndRenames(t *testing.T) {
	e := models.Expense{
		ID:       "exp_1",
		Amount:   250,
		Category: models.CategoryFoodAndDining,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	row, err := ToRemote(&e, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", row[OwnerField])
	assert.Equal(t, "exp_1", row["id"])
	assert.Contains(t, row, "created_at")
	assert.NotContains(t, row, "createdAt")
}

func TestFromRemoteDropsOwnerAndDriverKey(t *testing.T) {
	row := bson.M{
		"_id":        "exp_1",
		"user_id":    "user-1",
		"id":         "exp_1",
		"amount":     float64(99),
		"category":   "Travel",
		"date":       "2025-06-01T00:00:00Z",
		"created_at": "2025-05-30T12:00:00Z",
	}

	e, err := FromRemote[models.Expense](row)
	require.NoError(t, err)
	assert.Equal(t, "exp_1", e.ID)
	assert.Equal(t, float64(99), e.Amount)
	assert.Equal(t, models.ExpenseCategory("Travel"), e.Category)
	assert.Equal(t, 2025, e.CreatedAt.Year())
}

func TestRoundTripAllEntityKinds(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC)

	t.Run("event", func(t *testing.T) {
		in := models.CalendarEvent{
			ID: "evt_1", Title: "Focus", StartTime: now, EndTime: now.Add(time.Hour),
			Type: models.EventDeepWork, Checklist: []models.ChecklistItem{{ID: "c1", Text: "x"}},
			IsSubscriptionEvent: true, LinkedSubscriptionID: "sub_1",
			CreatedAt: now, UpdatedAt: now,
		}
		row, err := ToRemote(&in, "user-1")
		require.NoError(t, err)
		out, err := FromRemote[models.CalendarEvent](row)
		require.NoError(t, err)
		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, in.LinkedSubscriptionID, out.LinkedSubscriptionID)
		assert.True(t, out.IsSubscriptionEvent)
		assert.True(t, in.StartTime.Equal(out.StartTime))
		require.Len(t, out.Checklist, 1)
	})

	t.Run("project", func(t *testing.T) {
		in := models.Project{
			ID: "proj_1", Name: "P", Status: models.ProjectActive, Completion: 50,
			Tasks:     []models.ProjectTask{{ID: "t1", Text: "a", Completed: true, CompletedAt: &now}},
			CreatedAt: now, UpdatedAt: now,
		}
		row, err := ToRemote(&in, "user-1")
		require.NoError(t, err)
		out, err := FromRemote[models.Project](row)
		require.NoError(t, err)
		assert.Equal(t, in.Completion, out.Completion)
		require.Len(t, out.Tasks, 1)
		require.NotNil(t, out.Tasks[0].CompletedAt)
		assert.True(t, now.Equal(*out.Tasks[0].CompletedAt))
	})

	t.Run("subscription", func(t *testing.T) {
		in := models.Subscription{
			ID: "sub_1", ServiceName: "S", Cost: 199, BillingCycle: models.BillingYearly,
			NextRenewal: now, Active: true, AutoRenew: true, CreatedAt: now, UpdatedAt: now,
		}
		row, err := ToRemote(&in, "user-1")
		require.NoError(t, err)
		assert.Contains(t, row, "billing_cycle")
		out, err := FromRemote[models.Subscription](row)
		require.NoError(t, err)
		assert.Equal(t, in.BillingCycle, out.BillingCycle)
		assert.True(t, out.Active)
	})
}

func TestOwnerFieldNeverSurvivesTheRoundTrip(t *testing.T) {
	g := models.Goal{ID: "goal_1", Name: "G", Status: models.GoalActive}
	row, err := ToRemote(&g, "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", row[OwnerField])

	out, err := FromRemote[models.Goal](row)
	require.NoError(t, err)
	assert.Equal(t, g.ID, out.ID)
	// The entity shape has nowhere to put the owner; it is dropped, not
	// smuggled through an extra field.
}
