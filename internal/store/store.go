// Package store is the data-synchronization core of the dashboard: one
// entity store per collection, wrapped in the optimistic-mutate →
// remote-persist → rollback-on-failure protocol, with a guest path backed by
// device-local snapshots and generated sample data.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/sampledata"
	"github.com/lifeos/lifeos-sync/internal/session"
	"github.com/lifeos/lifeos-sync/pkg/idgen"
)

// syncable is the type-erased view of a collection the engine drives during
// startup and session changes.
type syncable interface {
	Name() string
	setState(State)
	loadFromRemote([]bson.M)
	loadLocalOrSample()
	applyRemote(ChangeEvent)
}

// Config wires the store's collaborators. Remote may be nil for a local-only
// deployment; Local may be nil when snapshots are not wanted (tests).
type Config struct {
	Remote Remote
	Local  KV
	Gate   *session.Gate
	Logger *logrus.Logger
	// Sample overrides the guest seed dataset; defaults to sampledata.Generate.
	Sample func() sampledata.Dataset
}

// Store owns the six entity collections for one session's lifetime. It is
// constructed once and passed by reference to every consumer; there is no
// ambient instance.
type Store struct {
	Events        *Collection[models.CalendarEvent, *models.CalendarEvent]
	Goals         *Collection[models.Goal, *models.Goal]
	Projects      *Collection[models.Project, *models.Project]
	Skills        *Collection[models.Skill, *models.Skill]
	Expenses      *Collection[models.Expense, *models.Expense]
	Subscriptions *Collection[models.Subscription, *models.Subscription]

	// mu guards every collection's items and state; one lock keeps a
	// mutation's snapshot/apply pair atomic across the store.
	mu sync.Mutex

	gate   *session.Gate
	remote Remote
	local  KV
	log    *logrus.Logger
	sample func() sampledata.Dataset

	cols []syncable

	ctlMu       sync.Mutex
	watchCancel context.CancelFunc
	unsubGate   func()

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan Change
}

// New constructs a store from its collaborators. Call Start to load state
// and begin following the session gate.
func New(cfg Config) *Store {
	s := &Store{
		gate:   cfg.Gate,
		remote: cfg.Remote,
		local:  cfg.Local,
		log:    cfg.Logger,
		sample: cfg.Sample,
		subs:   map[int]chan Change{},
	}
	if s.gate == nil {
		s.gate = session.NewGate()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.sample == nil {
		s.sample = sampledata.Generate
	}

	s.Events = &Collection[models.CalendarEvent, *models.CalendarEvent]{
		name:  models.CollectionEvents,
		store: s,
		onAdd: func(e *models.CalendarEvent) {
			if e.Color == "" {
				e.Color = models.EventTypeColor(e.Type)
			}
		},
		sample: func() []models.CalendarEvent { return s.sample().Events },
	}
	s.Goals = &Collection[models.Goal, *models.Goal]{
		name:   models.CollectionGoals,
		store:  s,
		sample: func() []models.Goal { return s.sample().Goals },
	}
	s.Projects = &Collection[models.Project, *models.Project]{
		name:  models.CollectionProjects,
		store: s,
		onAdd: func(p *models.Project) {
			p.Completion = models.TaskCompletion(p.Tasks)
		},
		onUpdate: func(p *models.Project, updates map[string]any) {
			if _, touched := updates["tasks"]; touched {
				p.Completion = models.TaskCompletion(p.Tasks)
			}
		},
		sample: func() []models.Project { return s.sample().Projects },
	}
	s.Skills = &Collection[models.Skill, *models.Skill]{
		name:   models.CollectionSkills,
		store:  s,
		sample: func() []models.Skill { return s.sample().Skills },
	}
	s.Expenses = &Collection[models.Expense, *models.Expense]{
		name:   models.CollectionExpenses,
		store:  s,
		sample: func() []models.Expense { return s.sample().Expenses },
	}
	s.Subscriptions = &Collection[models.Subscription, *models.Subscription]{
		name:   models.CollectionSubscriptions,
		store:  s,
		sample: func() []models.Subscription { return s.sample().Subscriptions },
	}

	s.cols = []syncable{s.Events, s.Goals, s.Projects, s.Skills, s.Expenses, s.Subscriptions}
	return s
}

// Calendar events.

func (s *Store) AddEvent(ctx context.Context, e models.CalendarEvent) Result {
	return s.Events.Add(ctx, e)
}

func (s *Store) UpdateEvent(ctx context.Context, id string, updates map[string]any) Result {
	return s.Events.Update(ctx, id, updates)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) Result {
	return s.Events.Delete(ctx, id)
}

// Goals.

func (s *Store) AddGoal(ctx context.Context, g models.Goal) Result {
	return s.Goals.Add(ctx, g)
}

func (s *Store) UpdateGoal(ctx context.Context, id string, updates map[string]any) Result {
	return s.Goals.Update(ctx, id, updates)
}

func (s *Store) DeleteGoal(ctx context.Context, id string) Result {
	return s.Goals.Delete(ctx, id)
}

// Projects and their tasks.

func (s *Store) AddProject(ctx context.Context, p models.Project) Result {
	return s.Projects.Add(ctx, p)
}

func (s *Store) UpdateProject(ctx context.Context, id string, updates map[string]any) Result {
	return s.Projects.Update(ctx, id, updates)
}

func (s *Store) DeleteProject(ctx context.Context, id string) Result {
	return s.Projects.Delete(ctx, id)
}

// ToggleProjectTask flips a task's completed flag, stamping or clearing its
// completion time, and recomputes the project's completion percentage. An
// unknown project or task id is silently a no-op.
func (s *Store) ToggleProjectTask(ctx context.Context, projectID, taskID string) Result {
	return s.Projects.Mutate(ctx, projectID, func(p *models.Project) bool {
		for i := range p.Tasks {
			if p.Tasks[i].ID != taskID {
				continue
			}
			p.Tasks[i].Completed = !p.Tasks[i].Completed
			if p.Tasks[i].Completed {
				now := time.Now()
				p.Tasks[i].CompletedAt = &now
			} else {
				p.Tasks[i].CompletedAt = nil
			}
			p.Completion = models.TaskCompletion(p.Tasks)
			return true
		}
		return false
	})
}

// AddProjectTask appends a new incomplete task and recomputes completion.
func (s *Store) AddProjectTask(ctx context.Context, projectID, text string) Result {
	return s.Projects.Mutate(ctx, projectID, func(p *models.Project) bool {
		p.Tasks = append(p.Tasks, models.ProjectTask{
			ID:   idgen.New(),
			Text: text,
		})
		p.Completion = models.TaskCompletion(p.Tasks)
		return true
	})
}

// DeleteProjectTask removes a task and recomputes completion. An unknown
// task id is silently a no-op.
func (s *Store) DeleteProjectTask(ctx context.Context, projectID, taskID string) Result {
	return s.Projects.Mutate(ctx, projectID, func(p *models.Project) bool {
		for i := range p.Tasks {
			if p.Tasks[i].ID == taskID {
				p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
				p.Completion = models.TaskCompletion(p.Tasks)
				return true
			}
		}
		return false
	})
}

// Skills.

func (s *Store) AddSkill(ctx context.Context, sk models.Skill) Result {
	return s.Skills.Add(ctx, sk)
}

func (s *Store) UpdateSkill(ctx context.Context, id string, updates map[string]any) Result {
	return s.Skills.Update(ctx, id, updates)
}

func (s *Store) DeleteSkill(ctx context.Context, id string) Result {
	return s.Skills.Delete(ctx, id)
}

// Expenses.

func (s *Store) AddExpense(ctx context.Context, e models.Expense) Result {
	return s.Expenses.Add(ctx, e)
}

func (s *Store) UpdateExpense(ctx context.Context, id string, updates map[string]any) Result {
	return s.Expenses.Update(ctx, id, updates)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) Result {
	return s.Expenses.Delete(ctx, id)
}

// Subscriptions.

func (s *Store) AddSubscription(ctx context.Context, sub models.Subscription) Result {
	return s.Subscriptions.Add(ctx, sub)
}

func (s *Store) UpdateSubscription(ctx context.Context, id string, updates map[string]any) Result {
	return s.Subscriptions.Update(ctx, id, updates)
}

func (s *Store) DeleteSubscription(ctx context.Context, id string) Result {
	return s.Subscriptions.Delete(ctx, id)
}
