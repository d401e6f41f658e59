package generation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBundlePrompt_ContainsCatalogAndConstraints(t *testing.T) {
	req := serviceRequest()
	req.YesterdayExerciseIDs = []string{"chest-3"}

	prompt := buildBundlePrompt(req, req.AvailableExercises)

	assert.Contains(t, prompt, "Create 2 workout(s) of 45 minutes each")
	assert.Contains(t, prompt, "exactly 8 strength exercises")
	assert.Contains(t, prompt, "cardio warm-up")
	assert.Contains(t, prompt, "chest-1")
	assert.Contains(t, prompt, "DO NOT use these exercises")
	assert.Contains(t, prompt, "chest-3")
	assert.Contains(t, prompt, `"workouts"`)
}

func TestBuildBundlePrompt_NoWarmupWhenNotRequested(t *testing.T) {
	req := serviceRequest()
	req.WarmupMinutes = 0

	prompt := buildBundlePrompt(req, req.AvailableExercises)
	assert.NotContains(t, prompt, "warm-up")
}

func TestBuildMusclePrompt_ListsMusclesAndCount(t *testing.T) {
	req := serviceRequest()
	req.NumWorkouts = 3

	prompt := buildMusclePrompt(req)

	assert.Contains(t, prompt, "Plan the muscle focus for 3 workout(s)")
	assert.Contains(t, prompt, "- chest (Chest)")
	assert.Contains(t, prompt, "- back (Back)")
	assert.Contains(t, prompt, `exactly 3 entries`)
}

func TestRecentWindow_BoundsHistory(t *testing.T) {
	var recent []RecentWorkout
	for i := 0; i < 12; i++ {
		recent = append(recent, RecentWorkout{Name: fmt.Sprintf("Workout %d", i+1)})
	}

	windowed := recentWindow(recent)
	assert.Len(t, windowed, historyContextLimit)
	assert.Equal(t, "Workout 1", windowed[0].Name)
}

func TestBuildMusclePrompt_IncludesRecentHistory(t *testing.T) {
	req := serviceRequest()
	req.RecentWorkouts = []RecentWorkout{
		{Name: "Push Day", MuscleGroups: []string{"chest", "triceps"}},
	}

	prompt := buildMusclePrompt(req)
	assert.True(t, strings.Contains(prompt, "Push Day: chest, triceps"))
}
