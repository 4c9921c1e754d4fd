// Package sampledata seeds the guest (anonymous) path with a populated
// dataset. The shape is deterministic: same ids, same counts, same relative
// offsets on every call; only the absolute timestamps shift with the moment
// of generation, so the seed data always appears current.
package sampledata

import (
	"time"

	"github.com/lifeos/lifeos-sync/internal/models"
)

// Dataset holds one populated collection per entity kind.
type Dataset struct {
	Events        []models.CalendarEvent
	Goals         []models.Goal
	Projects      []models.Project
	Skills        []models.Skill
	Expenses      []models.Expense
	Subscriptions []models.Subscription
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

func daysFromNow(n int) time.Time {
	return time.Now().AddDate(0, 0, n)
}

func todayAt(hour, min int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
}

func timePtr(t time.Time) *time.Time { return &t }

// Generate returns the guest seed dataset. Pure computation, no error path.
func Generate() Dataset {
	events := []models.CalendarEvent{
		{
			ID: "evt_1", Title: "Deep Work: Code Review", StartTime: todayAt(9, 0), EndTime: todayAt(11, 0),
			Type: models.EventDeepWork, LinkedSkill: "skill_react", LinkedProject: "proj_portfolio",
			Notes: "Review authentication module",
			Checklist: []models.ChecklistItem{
				{ID: "t1", Text: "Review PR #42", Completed: true},
				{ID: "t2", Text: "Test locally", Completed: false},
			},
			Completed: false, Color: "hsl(220, 70%, 60%)", CreatedAt: daysAgo(1), UpdatedAt: daysAgo(0),
		},
		{
			ID: "evt_2", Title: "Morning Run", StartTime: todayAt(7, 0), EndTime: todayAt(7, 45),
			Type: models.EventHealth, Notes: "5K route", Checklist: []models.ChecklistItem{}, Completed: true,
			Color: "hsl(0, 70%, 60%)", CreatedAt: daysAgo(1), UpdatedAt: daysAgo(0),
		},
		{
			ID: "evt_3", Title: "Team Standup", StartTime: todayAt(13, 0), EndTime: todayAt(13, 30),
			Type: models.EventMeeting, Checklist: []models.ChecklistItem{}, Completed: false,
			Color: "hsl(30, 80%, 55%)", CreatedAt: daysAgo(2), UpdatedAt: daysAgo(0),
		},
		{
			ID: "evt_4", Title: "Learn TypeScript Generics", StartTime: todayAt(15, 0), EndTime: todayAt(16, 30),
			Type: models.EventLearning, LinkedSkill: "skill_ts",
			Checklist: []models.ChecklistItem{
				{ID: "t3", Text: "Read docs on conditional types", Completed: true},
				{ID: "t4", Text: "Practice exercises", Completed: true},
			},
			Completed: true, Color: "hsl(140, 60%, 50%)", CreatedAt: daysAgo(1), UpdatedAt: daysAgo(0),
		},
		{
			ID: "evt_5", Title: "Evening Reading", StartTime: todayAt(20, 0), EndTime: todayAt(21, 0),
			Type: models.EventPersonal, Checklist: []models.ChecklistItem{}, Completed: false,
			Color: "hsl(280, 60%, 60%)", CreatedAt: daysAgo(0), UpdatedAt: daysAgo(0),
		},
	}

	goals := []models.Goal{
		{
			ID: "goal_1", Name: "Launch Personal Portfolio", Description: "Build and deploy a professional portfolio website",
			Deadline: daysFromNow(35), LinkedProjects: []string{"proj_portfolio"}, Progress: 65, Status: models.GoalActive,
			ColorTag: "hsl(280, 60%, 60%)", Completed: false, CreatedAt: daysAgo(30), UpdatedAt: daysAgo(1),
		},
		{
			ID: "goal_2", Name: "Master TypeScript", Description: "Complete advanced TypeScript course and build 3 projects",
			Deadline: daysFromNow(60), LinkedProjects: []string{"proj_ts_course"}, Progress: 40, Status: models.GoalActive,
			ColorTag: "hsl(210, 75%, 55%)", Completed: false, CreatedAt: daysAgo(45), UpdatedAt: daysAgo(3),
		},
		{
			ID: "goal_3", Name: "Read 12 Books This Year", Description: "One book per month across technical and non-technical topics",
			Deadline: daysFromNow(300), LinkedProjects: []string{}, Progress: 25, Status: models.GoalActive,
			ColorTag: "hsl(140, 55%, 50%)", Completed: false, CreatedAt: daysAgo(40), UpdatedAt: daysAgo(7),
		},
	}

	projects := []models.Project{
		{
			ID: "proj_portfolio", Name: "Portfolio Website", Description: "Modern, responsive portfolio with React and Tailwind",
			Status: models.ProjectActive, Completion: 67, LinkedSkills: []string{"skill_react", "skill_tailwind"},
			LinkedGoals: []string{"goal_1"},
			Tasks: []models.ProjectTask{
				{ID: "pt1", Text: "Design mockups in Figma", Completed: true, CompletedAt: timePtr(daysAgo(20))},
				{ID: "pt2", Text: "Set up React project", Completed: true, CompletedAt: timePtr(daysAgo(18))},
				{ID: "pt3", Text: "Build homepage", Completed: true, CompletedAt: timePtr(daysAgo(5))},
				{ID: "pt4", Text: "Create project showcase", Completed: true, CompletedAt: timePtr(daysAgo(2))},
				{ID: "pt5", Text: "Add contact form", Completed: false},
				{ID: "pt6", Text: "Deploy to Vercel", Completed: false},
			},
			Color: "hsl(160, 50%, 48%)", CreatedAt: daysAgo(25), UpdatedAt: daysAgo(1),
		},
		{
			ID: "proj_ts_course", Name: "TypeScript Mastery Course", Description: "Complete advanced TS course with projects",
			Status: models.ProjectActive, Completion: 40, LinkedSkills: []string{"skill_ts"},
			LinkedGoals: []string{"goal_2"},
			Tasks: []models.ProjectTask{
				{ID: "pt7", Text: "Basic types & interfaces", Completed: true, CompletedAt: timePtr(daysAgo(15))},
				{ID: "pt8", Text: "Generics deep dive", Completed: true, CompletedAt: timePtr(daysAgo(3))},
				{ID: "pt9", Text: "Utility types", Completed: false},
				{ID: "pt10", Text: "Build CLI tool project", Completed: false},
				{ID: "pt11", Text: "Build full-stack project", Completed: false},
			},
			Color: "hsl(210, 75%, 55%)", CreatedAt: daysAgo(20), UpdatedAt: daysAgo(3),
		},
		{
			ID: "proj_blog", Name: "Technical Blog", Description: "Blog platform for writing technical articles",
			Status: models.ProjectPlanning, Completion: 0, LinkedSkills: []string{"skill_react"},
			LinkedGoals: []string{"goal_1"},
			Tasks: []models.ProjectTask{
				{ID: "pt12", Text: "Choose CMS platform", Completed: false},
				{ID: "pt13", Text: "Design blog layout", Completed: false},
				{ID: "pt14", Text: "Write first 3 articles", Completed: false},
			},
			Color: "hsl(30, 80%, 55%)", CreatedAt: daysAgo(10), UpdatedAt: daysAgo(10),
		},
	}

	skills := []models.Skill{
		{
			ID: "skill_react", Name: "React Development", Category: "Technical",
			FocusHours: 47.5, ProjectsApplied: []string{"proj_portfolio", "proj_blog"},
			LastUsed: daysAgo(0), WorkTypes: []string{"Deep Work", "Learning"},
			Color: "hsl(195, 85%, 55%)", CreatedAt: daysAgo(90), UpdatedAt: daysAgo(0),
		},
		{
			ID: "skill_ts", Name: "TypeScript", Category: "Technical",
			FocusHours: 23.0, ProjectsApplied: []string{"proj_ts_course"},
			LastUsed: daysAgo(1), WorkTypes: []string{"Deep Work", "Learning"},
			Color: "hsl(210, 75%, 50%)", CreatedAt: daysAgo(60), UpdatedAt: daysAgo(1),
		},
		{
			ID: "skill_tailwind", Name: "Tailwind CSS", Category: "Technical",
			FocusHours: 18.5, ProjectsApplied: []string{"proj_portfolio"},
			LastUsed: daysAgo(2), WorkTypes: []string{"Deep Work"},
			Color: "hsl(190, 80%, 50%)", CreatedAt: daysAgo(50), UpdatedAt: daysAgo(2),
		},
		{
			ID: "skill_design", Name: "UI/UX Design", Category: "Creative",
			FocusHours: 12.0, ProjectsApplied: []string{"proj_portfolio"},
			LastUsed: daysAgo(5), WorkTypes: []string{"Deep Work"},
			Color: "hsl(330, 65%, 55%)", CreatedAt: daysAgo(40), UpdatedAt: daysAgo(5),
		},
	}

	expenses := []models.Expense{
		{ID: "exp_1", Amount: 12.50, Category: models.CategoryFoodAndDining, Date: daysAgo(0), Notes: "Lunch - veggie wrap & coffee", CreatedAt: daysAgo(0)},
		{ID: "exp_2", Amount: 45.00, Category: models.CategoryTransportation, Date: daysAgo(0), Notes: "Gas fill-up", CreatedAt: daysAgo(0)},
		{ID: "exp_3", Amount: 89.99, Category: models.CategoryShopping, Date: daysAgo(1), Notes: "New running shoes", CreatedAt: daysAgo(1)},
		{ID: "exp_4", Amount: 15.00, Category: models.CategoryEntertainment, Date: daysAgo(1), Notes: "Movie ticket", CreatedAt: daysAgo(1)},
		{ID: "exp_5", Amount: 8.50, Category: models.CategoryFoodAndDining, Date: daysAgo(2), Notes: "Morning coffee & pastry", CreatedAt: daysAgo(2)},
		{ID: "exp_6", Amount: 35.00, Category: models.CategoryHealthFitness, Date: daysAgo(3), Notes: "Yoga class", CreatedAt: daysAgo(3)},
		{ID: "exp_7", Amount: 120.00, Category: models.CategoryBillsUtilities, Date: daysAgo(4), Notes: "Electric bill", CreatedAt: daysAgo(4)},
		{ID: "exp_8", Amount: 22.00, Category: models.CategoryFoodAndDining, Date: daysAgo(5), Notes: "Dinner out", CreatedAt: daysAgo(5)},
		{ID: "exp_9", Amount: 49.99, Category: models.CategoryEducation, Date: daysAgo(6), Notes: "Online course", CreatedAt: daysAgo(6)},
	}

	subscriptions := []models.Subscription{
		{
			ID: "sub_1", ServiceName: "Spotify Premium", Cost: 10.99, BillingCycle: models.BillingMonthly,
			NextRenewal: daysFromNow(6), PaymentMethod: "Credit Card", Category: "Streaming",
			Notes: "Student discount", Active: true, AutoRenew: true, CreatedAt: daysAgo(180), UpdatedAt: daysAgo(30),
		},
		{
			ID: "sub_2", ServiceName: "Notion Pro", Cost: 96.00, BillingCycle: models.BillingYearly,
			NextRenewal: daysFromNow(280), PaymentMethod: "PayPal", Category: "Productivity",
			Active: true, AutoRenew: true, CreatedAt: daysAgo(90), UpdatedAt: daysAgo(90),
		},
		{
			ID: "sub_3", ServiceName: "Netflix", Cost: 15.49, BillingCycle: models.BillingMonthly,
			NextRenewal: daysFromNow(18), PaymentMethod: "Credit Card", Category: "Streaming",
			Active: true, AutoRenew: true, CreatedAt: daysAgo(365), UpdatedAt: daysAgo(15),
		},
		{
			ID: "sub_4", ServiceName: "GitHub Pro", Cost: 4.00, BillingCycle: models.BillingMonthly,
			NextRenewal: daysFromNow(12), PaymentMethod: "Credit Card", Category: "Productivity",
			Active: true, AutoRenew: true, CreatedAt: daysAgo(200), UpdatedAt: daysAgo(20),
		},
		{
			ID: "sub_5", ServiceName: "Adobe Creative Cloud", Cost: 54.99, BillingCycle: models.BillingMonthly,
			NextRenewal: daysFromNow(3), PaymentMethod: "Credit Card", Category: "Productivity",
			Notes: "All Apps plan", Active: true, AutoRenew: true, CreatedAt: daysAgo(120), UpdatedAt: daysAgo(28),
		},
	}

	return Dataset{
		Events:        events,
		Goals:         goals,
		Projects:      projects,
		Skills:        skills,
		Expenses:      expenses,
		Subscriptions: subscriptions,
	}
}
