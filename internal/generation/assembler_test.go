package generation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

func TestAssembleWorkouts_ResolvesCatalogMetadata(t *testing.T) {
	req := &Request{
		UserID:          uuid.New(),
		NumWorkouts:     1,
		DurationMinutes: 45,
		AvailableExercises: []catalog.ExerciseSummary{
			{ID: "ex1", Name: "Bench Press", SecondaryName: "Barbell", PrimaryMuscle: "chest", Category: "strength", ImageURL: "https://img/ex1.png"},
		},
	}
	payloads := []CandidatePayload{{
		Exercises: []PayloadExercise{
			{ExerciseID: "ex1", TargetSets: 4, TargetReps: "6-8", AINotes: "pause at the bottom"},
		},
		MuscleGroups: []string{"chest"},
		Explanation:  "chest emphasis",
	}}

	out := AssembleWorkouts(payloads, req)
	require.Len(t, out, 1)

	w := out[0]
	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Equal(t, "Workout 1", w.Name)
	assert.Equal(t, 1, w.Sequence)
	assert.Equal(t, 45, w.DurationMinutes)
	assert.Equal(t, SourceAITrainer, w.Source)
	assert.Equal(t, "chest emphasis", w.Explanation)

	require.Len(t, w.Exercises, 1)
	ex := w.Exercises[0]
	assert.Equal(t, "Bench Press", ex.Name)
	assert.Equal(t, "Barbell", ex.SecondaryName)
	assert.Equal(t, "chest", ex.PrimaryMuscle)
	assert.Equal(t, "https://img/ex1.png", ex.ImageURL)
	assert.Equal(t, 4, ex.TargetSets)
	assert.Equal(t, "6-8", ex.TargetReps)
	assert.Equal(t, "pause at the bottom", ex.Notes)
}

func TestAssembleWorkouts_DefaultsMissingTargets(t *testing.T) {
	req := &Request{
		DurationMinutes: 30,
		AvailableExercises: []catalog.ExerciseSummary{
			{ID: "ex1", Name: "Row", PrimaryMuscle: "back"},
		},
	}
	payloads := []CandidatePayload{{
		Exercises: []PayloadExercise{{ExerciseID: "ex1"}},
	}}

	out := AssembleWorkouts(payloads, req)
	require.Len(t, out, 1)
	require.Len(t, out[0].Exercises, 1)
	assert.Equal(t, fallbackSets, out[0].Exercises[0].TargetSets)
	assert.Equal(t, fallbackReps, out[0].Exercises[0].TargetReps)
}

func TestAssembleWorkouts_SkipsUnknownExercise(t *testing.T) {
	req := &Request{
		DurationMinutes: 30,
		AvailableExercises: []catalog.ExerciseSummary{
			{ID: "ex1", Name: "Row", PrimaryMuscle: "back"},
		},
	}
	payloads := []CandidatePayload{{
		Exercises: []PayloadExercise{
			{ExerciseID: "ghost"},
			{ExerciseID: "ex1"},
		},
	}}

	out := AssembleWorkouts(payloads, req)
	require.Len(t, out, 1)
	require.Len(t, out[0].Exercises, 1)
	assert.Equal(t, "ex1", out[0].Exercises[0].ExerciseID)
}

func TestAssembleWorkouts_SequentialNaming(t *testing.T) {
	req := &Request{
		DurationMinutes: 30,
		AvailableExercises: []catalog.ExerciseSummary{
			{ID: "ex1", Name: "Row", PrimaryMuscle: "back"},
		},
	}
	payloads := []CandidatePayload{
		{Exercises: []PayloadExercise{{ExerciseID: "ex1"}}},
		{Exercises: []PayloadExercise{{ExerciseID: "ex1"}}},
		{Exercises: []PayloadExercise{{ExerciseID: "ex1"}}},
	}

	out := AssembleWorkouts(payloads, req)
	require.Len(t, out, 3)
	for i, w := range out {
		assert.Equal(t, i+1, w.Sequence)
	}
	assert.Equal(t, "Workout 2", out[1].Name)
	assert.NotEqual(t, out[0].ID, out[1].ID)
}

func TestPromoteRecommendation_FillsMissingFields(t *testing.T) {
	ex := PayloadExercise{
		Recommendation: &Recommendation{Weight: 60, Reasoning: "progressing well"},
	}

	rec := promoteRecommendation(ex, 3, "8-12")
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.Sets)
	assert.Equal(t, "8-12", rec.RepRange)
	assert.Equal(t, 60.0, rec.Weight)
}

func TestPromoteRecommendation_NilStaysNil(t *testing.T) {
	assert.Nil(t, promoteRecommendation(PayloadExercise{}, 3, "8-12"))
}
