package generation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

func strengthExercises(muscle string, n int) []catalog.ExerciseSummary {
	out := make([]catalog.ExerciseSummary, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.ExerciseSummary{
			ID:            fmt.Sprintf("%s-%d", muscle, i),
			Name:          fmt.Sprintf("%s exercise %d", muscle, i),
			PrimaryMuscle: muscle,
			Category:      "strength",
		})
	}
	return out
}

func cardioExercises(n int) []catalog.ExerciseSummary {
	out := make([]catalog.ExerciseSummary, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.ExerciseSummary{
			ID:            fmt.Sprintf("cardio-%d", i),
			Name:          fmt.Sprintf("Cardio %d", i),
			PrimaryMuscle: "cardio",
			Category:      catalog.CategoryCardio,
		})
	}
	return out
}

func seededGenerator() *FallbackGenerator {
	return NewFallbackGenerator(rand.New(rand.NewSource(1)))
}

func TestFallback_ChestBackSplitWithWarmup(t *testing.T) {
	var pool []catalog.ExerciseSummary
	pool = append(pool, strengthExercises("chest", 10)...)
	pool = append(pool, strengthExercises("back", 10)...)
	pool = append(pool, cardioExercises(2)...)

	req := &Request{
		UserID:             uuid.New(),
		NumWorkouts:        2,
		DurationMinutes:    45,
		WarmupMinutes:      5,
		MuscleMode:         MuscleModeSame,
		MuscleTargets:      []string{"chest", "back"},
		AvailableExercises: pool,
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 2)

	for i, p := range payloads {
		// 8 strength slots for 45 minutes, plus exactly one warm-up first.
		require.Len(t, p.Exercises, 9, "workout %d", i+1)
		assert.True(t, p.Exercises[0].IsWarmup)
		assert.Equal(t, warmupSets, p.Exercises[0].TargetSets)
		assert.Equal(t, warmupReps, p.Exercises[0].TargetReps)

		seen := make(map[string]struct{})
		for _, ex := range p.Exercises[1:] {
			assert.False(t, ex.IsWarmup)
			assert.Equal(t, fallbackSets, ex.TargetSets)
			assert.Equal(t, fallbackReps, ex.TargetReps)

			_, dup := seen[ex.ExerciseID]
			assert.False(t, dup, "duplicate exercise %s in workout %d", ex.ExerciseID, i+1)
			seen[ex.ExerciseID] = struct{}{}
		}

		for _, m := range p.MuscleGroups {
			assert.Contains(t, []string{"chest", "back"}, m)
		}
	}
}

func TestFallback_NoCardioMeansNoWarmup(t *testing.T) {
	req := &Request{
		UserID:             uuid.New(),
		NumWorkouts:        1,
		DurationMinutes:    30,
		WarmupMinutes:      10,
		MuscleMode:         MuscleModeRotate,
		AvailableExercises: strengthExercises("chest", 12),
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 1)

	// 6 slots for 30 minutes; the warm-up request is skipped, not an error.
	require.Len(t, payloads[0].Exercises, 6)
	for _, ex := range payloads[0].Exercises {
		assert.False(t, ex.IsWarmup)
	}
}

func TestFallback_ExerciseCountPerDuration(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{30, 6},
		{45, 8},
		{60, 9},
		{90, 11},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dmin", tt.duration), func(t *testing.T) {
			req := &Request{
				UserID:             uuid.New(),
				NumWorkouts:        1,
				DurationMinutes:    tt.duration,
				MuscleMode:         MuscleModeRotate,
				AvailableExercises: strengthExercises("chest", 20),
			}

			payloads := seededGenerator().GenerateBundle(req)
			require.Len(t, payloads, 1)
			assert.Len(t, payloads[0].Exercises, tt.want)
		})
	}
}

func TestFallback_RotationVariesMusclesAcrossBundle(t *testing.T) {
	var pool []catalog.ExerciseSummary
	for _, m := range []string{"chest", "back", "legs", "shoulders", "biceps", "triceps"} {
		pool = append(pool, strengthExercises(m, 6)...)
	}
	muscles := []catalog.MuscleGroup{
		{ID: "chest", Name: "Chest"}, {ID: "back", Name: "Back"},
		{ID: "legs", Name: "Legs"}, {ID: "shoulders", Name: "Shoulders"},
		{ID: "biceps", Name: "Biceps"}, {ID: "triceps", Name: "Triceps"},
	}

	req := &Request{
		UserID:             uuid.New(),
		NumWorkouts:        2,
		DurationMinutes:    30,
		MuscleMode:         MuscleModeRotate,
		AvailableExercises: pool,
		Muscles:            muscles,
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 2)

	first := make(map[string]struct{})
	for _, m := range payloads[0].MuscleGroups {
		first[m] = struct{}{}
	}
	// With enough unused muscles left, the second workout rotates to a
	// disjoint set.
	for _, m := range payloads[1].MuscleGroups {
		_, overlap := first[m]
		assert.False(t, overlap, "muscle %s repeated in consecutive workouts", m)
	}
}

func TestFallback_ManualModeUsesPerWorkoutMuscles(t *testing.T) {
	var pool []catalog.ExerciseSummary
	pool = append(pool, strengthExercises("chest", 10)...)
	pool = append(pool, strengthExercises("legs", 10)...)

	req := &Request{
		UserID:             uuid.New(),
		NumWorkouts:        2,
		DurationMinutes:    30,
		MuscleMode:         MuscleModeManual,
		PerWorkoutMuscles:  [][]string{{"chest"}, {"legs"}},
		AvailableExercises: pool,
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 2)
	assert.Equal(t, []string{"chest"}, payloads[0].MuscleGroups)
	assert.Equal(t, []string{"legs"}, payloads[1].MuscleGroups)
}

func TestFallback_ExcludesYesterdaysExercises(t *testing.T) {
	pool := strengthExercises("chest", 12)

	req := &Request{
		UserID:               uuid.New(),
		NumWorkouts:          1,
		DurationMinutes:      30,
		MuscleMode:           MuscleModeRotate,
		AvailableExercises:   pool,
		YesterdayExerciseIDs: []string{"chest-1", "chest-2", "chest-3"},
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 1)
	require.Len(t, payloads[0].Exercises, 6)
	for _, ex := range payloads[0].Exercises {
		assert.NotContains(t, req.YesterdayExerciseIDs, ex.ExerciseID)
	}
}

func TestFallback_YesterdayEmptiedPoolReusesFullCatalog(t *testing.T) {
	pool := strengthExercises("chest", 4)

	req := &Request{
		UserID:               uuid.New(),
		NumWorkouts:          1,
		DurationMinutes:      30,
		MuscleMode:           MuscleModeRotate,
		AvailableExercises:   pool,
		YesterdayExerciseIDs: []string{"chest-1", "chest-2", "chest-3", "chest-4"},
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 1)
	assert.NotEmpty(t, payloads[0].Exercises, "exclusion must not produce an empty workout")
}

func TestFallback_SmallCatalogNeverDuplicates(t *testing.T) {
	pool := strengthExercises("chest", 4)

	req := &Request{
		UserID:             uuid.New(),
		NumWorkouts:        1,
		DurationMinutes:    90,
		MuscleMode:         MuscleModeRotate,
		AvailableExercises: pool,
	}

	payloads := seededGenerator().GenerateBundle(req)
	require.Len(t, payloads, 1)

	// Only 4 distinct exercises exist; the workout is short, never padded.
	assert.Len(t, payloads[0].Exercises, 4)
}
