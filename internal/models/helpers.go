package models

// EventTypes lists every calendar event type in display order.
var EventTypes = []EventType{
	EventDeepWork, EventLearning, EventPersonal, EventHealth,
	EventMeeting, EventBills, EventOther,
}

var eventTypeColors = map[EventType]string{
	EventDeepWork: "hsl(220, 70%, 60%)",
	EventLearning: "hsl(140, 60%, 50%)",
	EventPersonal: "hsl(280, 60%, 60%)",
	EventHealth:   "hsl(0, 70%, 60%)",
	EventMeeting:  "hsl(30, 80%, 55%)",
	EventBills:    "hsl(40, 80%, 55%)",
	EventOther:    "hsl(0, 0%, 55%)",
}

// EventTypeColor returns the default color for an event type. Unknown types
// fall back to the "Other" color.
func EventTypeColor(t EventType) string {
	if c, ok := eventTypeColors[t]; ok {
		return c
	}
	return eventTypeColors[EventOther]
}

// CategoryInfo is the display metadata of an expense category.
type CategoryInfo struct {
	Name  ExpenseCategory `json:"name"`
	Emoji string          `json:"emoji"`
	Color string          `json:"color"`
}

// ExpenseCategories is the closed catalogue of spending categories.
var ExpenseCategories = []CategoryInfo{
	{Name: CategoryFoodAndDining, Emoji: "🍔", Color: "hsl(30, 80%, 55%)"},
	{Name: CategoryTransportation, Emoji: "🚗", Color: "hsl(200, 70%, 50%)"},
	{Name: CategoryShopping, Emoji: "🛍️", Color: "hsl(330, 70%, 55%)"},
	{Name: CategoryBillsUtilities, Emoji: "💳", Color: "hsl(45, 80%, 50%)"},
	{Name: CategoryHealthFitness, Emoji: "🏥", Color: "hsl(0, 70%, 55%)"},
	{Name: CategoryEntertainment, Emoji: "🎉", Color: "hsl(280, 65%, 55%)"},
	{Name: CategoryEducation, Emoji: "📚", Color: "hsl(160, 60%, 45%)"},
	{Name: CategoryTravel, Emoji: "✈️", Color: "hsl(210, 75%, 55%)"},
	{Name: CategoryHome, Emoji: "🏠", Color: "hsl(25, 70%, 50%)"},
	{Name: CategoryOther, Emoji: "💼", Color: "hsl(0, 0%, 50%)"},
}

// LookupCategory returns the catalogue entry for a category name, falling back
// to "Other" for anything outside the closed set.
func LookupCategory(category string) CategoryInfo {
	for _, c := range ExpenseCategories {
		if string(c.Name) == category {
			return c
		}
	}
	return ExpenseCategories[len(ExpenseCategories)-1]
}
