package models

import (
	"time"
)

// Collection names used by the store, the local snapshot keys and the remote
// backing tables. The remote side sees the same six collections.
const (
	CollectionEvents        = "events"
	CollectionGoals         = "goals"
	CollectionProjects      = "projects"
	CollectionSkills        = "skills"
	CollectionExpenses      = "expenses"
	CollectionSubscriptions = "subscriptions"
)

// Mutable is implemented by every entity kind so the store can assign ids and
// timestamps without knowing the concrete type. Entities that carry no
// updatedAt field (Expense) implement StampUpdated as a no-op.
type Mutable interface {
	EntityID() string
	SetEntityID(id string)
	CreatedStamp() time.Time
	StampCreated(t time.Time)
	StampUpdated(t time.Time)
}

// EventType classifies a calendar event and decides its default color.
type EventType string

const (
	EventDeepWork EventType = "Deep Work"
	EventLearning EventType = "Learning"
	EventPersonal EventType = "Personal"
	EventHealth   EventType = "Health"
	EventMeeting  EventType = "Meeting"
	EventBills    EventType = "Bills"
	EventOther    EventType = "Other"
)

// ChecklistItem is a single entry of a calendar event's checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CalendarEvent is one scheduled block on the dashboard calendar.
type CalendarEvent struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	StartTime           time.Time       `json:"startTime"`
	EndTime             time.Time       `json:"endTime"`
	Type                EventType       `json:"type"`
	LinkedSkill         string          `json:"linkedSkill,omitempty"`
	LinkedProject       string          `json:"linkedProject,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Checklist           []ChecklistItem `json:"checklist"`
	Completed           bool            `json:"completed"`
	Color               string          `json:"color,omitempty"`
	IsSubscriptionEvent bool            `json:"isSubscriptionEvent,omitempty"`
	LinkedSubscriptionID string         `json:"linkedSubscriptionId,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (e *CalendarEvent) EntityID() string         { return e.ID }
func (e *CalendarEvent) SetEntityID(id string)    { e.ID = id }
func (e *CalendarEvent) CreatedStamp() time.Time  { return e.CreatedAt }
func (e *CalendarEvent) StampCreated(t time.Time) { e.CreatedAt = t }
func (e *CalendarEvent) StampUpdated(t time.Time) { e.UpdatedAt = t }

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalOverdue   GoalStatus = "overdue"
)

// Goal is a long-horizon objective, optionally backed by projects.
type Goal struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Deadline       time.Time  `json:"deadline"`
	LinkedProjects []string   `json:"linkedProjects"`
	Progress       int        `json:"progress"`
	Status         GoalStatus `json:"status"`
	ColorTag       string     `json:"colorTag"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (g *Goal) EntityID() string         { return g.ID }
func (g *Goal) SetEntityID(id string)    { g.ID = id }
func (g *Goal) CreatedStamp() time.Time  { return g.CreatedAt }
func (g *Goal) StampCreated(t time.Time) { g.CreatedAt = t }
func (g *Goal) StampUpdated(t time.Time) { g.UpdatedAt = t }

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "Planning"
	ProjectActive    ProjectStatus = "Active"
	ProjectPaused    ProjectStatus = "Paused"
	ProjectCompleted ProjectStatus = "Completed"
)

// ProjectTask is one checklist entry of a project. CompletedAt is set when the
// task is toggled done and cleared when it is toggled back.
type ProjectTask struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Project tracks a concrete piece of work. Completion is derived from the task
// list on every task mutation and never set by callers directly.
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Status       ProjectStatus `json:"status"`
	Completion   int           `json:"completion"`
	LinkedSkills []string      `json:"linkedSkills"`
	LinkedGoals  []string      `json:"linkedGoals"`
	Tasks        []ProjectTask `json:"tasks"`
	Notes        string        `json:"notes,omitempty"`
	Color        string        `json:"color"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (p *Project) EntityID() string         { return p.ID }
func (p *Project) SetEntityID(id string)    { p.ID = id }
func (p *Project) CreatedStamp() time.Time  { return p.CreatedAt }
func (p *Project) StampCreated(t time.Time) { p.CreatedAt = t }
func (p *Project) StampUpdated(t time.Time) { p.UpdatedAt = t }

// TaskCompletion computes the derived completion percentage from a task list:
// round(100 * completed / total), and 0 for an empty list.
func TaskCompletion(tasks []ProjectTask) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(float64(done)/float64(len(tasks))*100 + 0.5)
}

// Skill is a tracked capability with accumulated focus time.
type Skill struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	FocusHours      float64   `json:"focusHours"`
	ProjectsApplied []string  `json:"projectsApplied"`
	LastUsed        time.Time `json:"lastUsed"`
	WorkTypes       []string  `json:"workTypes"`
	Color           string    `json:"color"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (s *Skill) EntityID() string         { return s.ID }
func (s *Skill) SetEntityID(id string)    { s.ID = id }
func (s *Skill) CreatedStamp() time.Time  { return s.CreatedAt }
func (s *Skill) StampCreated(t time.Time) { s.CreatedAt = t }
func (s *Skill) StampUpdated(t time.Time) { s.UpdatedAt = t }

// ExpenseCategory is the closed set of spending categories.
type ExpenseCategory string

const (
	CategoryFoodAndDining   ExpenseCategory = "Food & Dining"
	CategoryTransportation  ExpenseCategory = "Transportation"
	CategoryShopping        ExpenseCategory = "Shopping"
	CategoryBillsUtilities  ExpenseCategory = "Bills & Utilities"
	CategoryHealthFitness   ExpenseCategory = "Health & Fitness"
	CategoryEntertainment   ExpenseCategory = "Entertainment"
	CategoryEducation       ExpenseCategory = "Education"
	CategoryTravel          ExpenseCategory = "Travel"
	CategoryHome            ExpenseCategory = "Home"
	CategoryOther           ExpenseCategory = "Other"
)

// Expense is a single spending record. Expenses carry no updatedAt field.
type Expense struct {
	ID        string          `json:"id"`
	Amount    float64         `json:"amount"`
	Category  ExpenseCategory `json:"category"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (e *Expense) EntityID() string         { return e.ID }
func (e *Expense) SetEntityID(id string)    { e.ID = id }
func (e *Expense) CreatedStamp() time.Time  { return e.CreatedAt }
func (e *Expense) StampCreated(t time.Time) { e.CreatedAt = t }
func (e *Expense) StampUpdated(time.Time)   {}

// BillingCycle is how often a subscription renews.
type BillingCycle string

const (
	BillingMonthly   BillingCycle = "Monthly"
	BillingYearly    BillingCycle = "Yearly"
	BillingQuarterly BillingCycle = "Quarterly"
)

// Subscription is a recurring paid service.
type Subscription struct {
	ID            string       `json:"id"`
	ServiceName   string       `json:"serviceName"`
	Cost          float64      `json:"cost"`
	BillingCycle  BillingCycle `json:"billingCycle"`
	NextRenewal   time.Time    `json:"nextRenewal"`
	PaymentMethod string       `json:"paymentMethod"`
	Category      string       `json:"category"`
	Notes         string       `json:"notes,omitempty"`
	Active        bool         `json:"active"`
	AutoRenew     bool         `json:"autoRenew"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (s *Subscription) EntityID() string         { return s.ID }
func (s *Subscription) SetEntityID(id string)    { s.ID = id }
func (s *Subscription) CreatedStamp() time.Time  { return s.CreatedAt }
func (s *Subscription) StampCreated(t time.Time) { s.CreatedAt = t }
func (s *Subscription) StampUpdated(t time.Time) { s.UpdatedAt = t }

// MonthlyCost normalizes the subscription cost to a per-month figure. The value
// is computed by consumers and never stored on the entity.
func (s Subscription) MonthlyCost() float64 {
	switch s.BillingCycle {
	case BillingYearly:
		return s.Cost / 12
	case BillingQuarterly:
		return s.Cost / 3
	default:
		return s.Cost
	}
}
