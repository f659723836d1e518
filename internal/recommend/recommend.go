// Package recommend turns recent completion rates into prioritized
// suggestions using a fixed rule table.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	dom "HabitTracker/internal/domain"
)

// Category groups habits that share suggestion text.
type Category string

const (
	CategoryMindfulness Category = "mindfulness"
	CategoryFitness     Category = "fitness"
	CategoryLearning    Category = "learning"
	CategoryGeneral     Category = "general"
)

// StrugglingBelow is the completion rate (percent) under which a habit
// counts as struggling.
const StrugglingBelow = 50.0

// MinHabits is the habit count below which "Start Small" is suggested.
const MinHabits = 3

type bracket int

const (
	struggling bracket = iota
	consistent
)

// rule is one cell of the table. Description may contain a single %s that is
// replaced with the habit name.
type rule struct {
	title       string
	description string
	priority    dom.Priority
}

var categories = map[string]Category{
	"meditation":  CategoryMindfulness,
	"mindfulness": CategoryMindfulness,
	"exercise":    CategoryFitness,
	"workout":     CategoryFitness,
	"reading":     CategoryLearning,
}

var rules = map[Category][2]rule{
	CategoryMindfulness: {
		struggling: {"Start with 2-minute sessions", "Begin with short meditation sessions to build the habit gradually.", dom.PriorityHigh},
		consistent: {"Try guided meditation", "Use meditation apps for guided sessions to maintain engagement.", dom.PriorityMedium},
	},
	CategoryFitness: {
		struggling: {"Take a 5-minute walk", "Start with a short walk to get moving and build momentum.", dom.PriorityHigh},
		consistent: {"Add variety to workouts", "Mix different types of exercise to prevent boredom and maintain motivation.", dom.PriorityMedium},
	},
	CategoryLearning: {
		struggling: {"Read for 10 minutes before bed", "Establish a consistent reading routine with a fixed time slot.", dom.PriorityHigh},
		consistent: {"Join a book club", "Connect with others who share your reading interests for accountability.", dom.PriorityMedium},
	},
	CategoryGeneral: {
		struggling: {"Set a specific time", "Schedule %s at the same time each day to build consistency.", dom.PriorityHigh},
		consistent: {"Track your progress", "Keep a journal of your experiences to stay motivated and see improvement.", dom.PriorityMedium},
	},
}

var startSmall = dom.Recommendation{
	Type:        string(CategoryGeneral),
	Title:       "Start Small",
	Description: "Begin with 2-3 habits to build consistency before adding more.",
	Priority:    dom.PriorityHigh,
}

// HabitRate is a habit name with its completion rate over the recent window.
type HabitRate struct {
	Name           string
	CompletionRate float64
}

// Classify maps a habit name to its category by exact, case-insensitive match.
func Classify(name string) Category {
	if c, ok := categories[strings.ToLower(name)]; ok {
		return c
	}
	return CategoryGeneral
}

// ForHabit returns the single suggestion for one habit.
func ForHabit(h HabitRate) dom.Recommendation {
	cat := Classify(h.Name)
	b := consistent
	if h.CompletionRate < StrugglingBelow {
		b = struggling
	}
	r := rules[cat][b]
	desc := r.description
	if strings.Contains(desc, "%s") {
		desc = fmt.Sprintf(desc, h.Name)
	}
	return dom.Recommendation{
		Type:        string(cat),
		Title:       r.title,
		Description: desc,
		Priority:    r.priority,
	}
}

// Build produces one suggestion per habit in input order, adds "Start Small"
// when there are fewer than MinHabits habits, and sorts by priority.
func Build(habits []HabitRate) []dom.Recommendation {
	out := make([]dom.Recommendation, 0, len(habits)+1)
	for _, h := range habits {
		out = append(out, ForHabit(h))
	}
	if len(habits) < MinHabits {
		out = append(out, startSmall)
	}
	SortByPriority(out)
	return out
}

// SortByPriority orders recs by descending priority weight; equal priorities
// keep their relative order.
func SortByPriority(recs []dom.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Weight() > recs[j].Priority.Weight()
	})
}
