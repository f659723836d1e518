package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "HabitTracker/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := map[string]Category{
		"Meditation":    CategoryMindfulness,
		"MINDFULNESS":   CategoryMindfulness,
		"exercise":      CategoryFitness,
		"Workout":       CategoryFitness,
		"reading":       CategoryLearning,
		"Reading books": CategoryGeneral,
		"Drink water":   CategoryGeneral,
		"":              CategoryGeneral,
	}
	for name, want := range tests {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestForHabit_RuleTable(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		wantType  string
		wantTitle string
		wantPrio  dom.Priority
	}{
		{"Meditation", 10, "mindfulness", "Start with 2-minute sessions", dom.PriorityHigh},
		{"meditation", 50, "mindfulness", "Try guided meditation", dom.PriorityMedium},
		{"Exercise", 2.0 / 7 * 100, "fitness", "Take a 5-minute walk", dom.PriorityHigh},
		{"workout", 80, "fitness", "Add variety to workouts", dom.PriorityMedium},
		{"Reading", 0, "learning", "Read for 10 minutes before bed", dom.PriorityHigh},
		{"reading", 100, "learning", "Join a book club", dom.PriorityMedium},
		{"Journal", 49.9, "general", "Set a specific time", dom.PriorityHigh},
		{"Journal", 75, "general", "Track your progress", dom.PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForHabit(HabitRate{Name: tt.name, CompletionRate: tt.rate})
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantPrio, got.Priority)
			assert.NotEmpty(t, got.Description)
		})
	}
}

func TestForHabit_GeneralStrugglingMentionsName(t *testing.T) {
	got := ForHabit(HabitRate{Name: "Stretching", CompletionRate: 20})
	assert.Equal(t, "Schedule Stretching at the same time each day to build consistency.", got.Description)
}

func TestSortByPriority_Stable(t *testing.T) {
	recs := []dom.Recommendation{
		{Title: "a", Priority: dom.PriorityMedium},
		{Title: "b", Priority: dom.PriorityHigh},
		{Title: "c", Priority: dom.PriorityHigh},
		{Title: "d", Priority: dom.PriorityLow},
	}
	SortByPriority(recs)

	var titles []string
	var prios []dom.Priority
	for _, r := range recs {
		titles = append(titles, r.Title)
		prios = append(prios, r.Priority)
	}
	assert.Equal(t, []dom.Priority{dom.PriorityHigh, dom.PriorityHigh, dom.PriorityMedium, dom.PriorityLow}, prios)
	assert.Equal(t, []string{"b", "c", "a", "d"}, titles)
}

func TestBuild_StartSmallForFewHabits(t *testing.T) {
	got := Build([]HabitRate{
		{Name: "Reading", CompletionRate: 90},
		{Name: "Exercise", CompletionRate: 90},
	})
	require.Len(t, got, 3)
	// Both habits are consistent (medium), so Start Small sorts ahead of them.
	assert.Equal(t, "Start Small", got[0].Title)
	assert.Equal(t, "general", got[0].Type)
	assert.Equal(t, dom.PriorityHigh, got[0].Priority)
	assert.Equal(t, "Join a book club", got[1].Title)
	assert.Equal(t, "Add variety to workouts", got[2].Title)
}

func TestBuild_StartSmallAfterHighPriorityHabits(t *testing.T) {
	got := Build([]HabitRate{
		{Name: "Exercise", CompletionRate: 10},
		{Name: "Meditation", CompletionRate: 10},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Take a 5-minute walk", got[0].Title)
	assert.Equal(t, "Start with 2-minute sessions", got[1].Title)
	assert.Equal(t, "Start Small", got[2].Title)
}

func TestBuild_NoStartSmallWithThreeHabits(t *testing.T) {
	got := Build([]HabitRate{
		{Name: "a", CompletionRate: 60},
		{Name: "b", CompletionRate: 10},
		{Name: "c", CompletionRate: 60},
	})
	require.Len(t, got, 3)
	for _, r := range got {
		assert.NotEqual(t, "Start Small", r.Title)
	}
	assert.Equal(t, dom.PriorityHigh, got[0].Priority)
}

func TestBuild_NoHabits(t *testing.T) {
	got := Build(nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Start Small", got[0].Title)
}
