package sampledata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeos/lifeos-sync/internal/models"
)

func TestGenerateShape(t *testing.T) {
	d := Generate()

	assert.Len(t, d.Events, 5)
	assert.Len(t, d.Goals, 3)
	assert.Len(t, d.Projects, 3)
	assert.Len(t, d.Skills, 4)
	assert.Len(t, d.Expenses, 9)
	assert.Len(t, d.Subscriptions, 5)
}

func TestGenerateIdsAreStableAcrossCalls(t *testing.T) {
	a, b := Generate(), Generate()
	for i := range a.Events {
		assert.Equal(t, a.Events[i].ID, b.Events[i].ID)
	}
	for i := range a.Subscriptions {
		assert.Equal(t, a.Subscriptions[i].ID, b.Subscriptions[i].ID)
	}
}

func TestGenerateCrossReferencesResolve(t *testing.T) {
	d := Generate()

	projects := map[string]bool{}
	for _, p := range d.Projects {
		projects[p.ID] = true
	}
	skills := map[string]bool{}
	for _, s := range d.Skills {
		skills[s.ID] = true
	}

	for _, g := range d.Goals {
		for _, pid := range g.LinkedProjects {
			assert.True(t, projects[pid], "goal %s links unknown project %s", g.ID, pid)
		}
	}
	for _, p := range d.Projects {
		for _, sid := range p.LinkedSkills {
			assert.True(t, skills[sid], "project %s links unknown skill %s", p.ID, sid)
		}
	}
	for _, e := range d.Events {
		if e.LinkedProject != "" {
			assert.True(t, projects[e.LinkedProject])
		}
		if e.LinkedSkill != "" {
			assert.True(t, skills[e.LinkedSkill])
		}
	}
}

func TestGenerateCompletionMatchesTasks(t *testing.T) {
	d := Generate()
	for _, p := range d.Projects {
		assert.Equal(t, models.TaskCompletion(p.Tasks), p.Completion, "project %s", p.ID)
	}
}

func TestGenerateTimestampsTrackNow(t *testing.T) {
	d := Generate()

	var sub models.Subscription
	for _, s := range d.Subscriptions {
		if s.ID == "sub_5" {
			sub = s
		}
	}
	require.NotEmpty(t, sub.ID)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), sub.NextRenewal, time.Minute)
}

func TestGenerateEventColorsMatchTypeDefaults(t *testing.T) {
	d := Generate()
	for _, e := range d.Events {
		assert.Equal(t, models.EventTypeColor(e.Type), e.Color, "event %s", e.ID)
	}
}
