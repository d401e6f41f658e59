package generation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

func testIndex(ids ...string) map[string]catalog.ExerciseSummary {
	idx := make(map[string]catalog.ExerciseSummary, len(ids))
	for _, id := range ids {
		idx[id] = catalog.ExerciseSummary{ID: id, Name: "Exercise " + id, PrimaryMuscle: "chest"}
	}
	return idx
}

const validPayloadJSON = `{
	"exercises": [
		{"exerciseId": "ex1", "targetSets": 3, "targetReps": "8-12"},
		{"exerciseId": "ex2", "targetSets": 4, "targetReps": "6-10"}
	],
	"muscleGroups": ["chest"],
	"explanation": "push day"
}`

func TestParsePayload_PlainAndProseWrappedAgree(t *testing.T) {
	idx := testIndex("ex1", "ex2")

	plain := ParsePayload(validPayloadJSON, idx)
	wrapped := ParsePayload("Sure! Here is your workout:\n```json\n"+validPayloadJSON+"\n```\nEnjoy!", idx)

	require.NotNil(t, plain)
	require.NotNil(t, wrapped)
	assert.Equal(t, plain, wrapped)
	assert.Len(t, plain.Exercises, 2)
	assert.Equal(t, []string{"chest"}, plain.MuscleGroups)
}

func TestParsePayload_BareFenceWithoutLanguageTag(t *testing.T) {
	idx := testIndex("ex1", "ex2")

	got := ParsePayload("```\n"+validPayloadJSON+"\n```", idx)
	require.NotNil(t, got)
	assert.Len(t, got.Exercises, 2)
}

func TestParsePayload_NoJSONBlock(t *testing.T) {
	assert.Nil(t, ParsePayload("I could not produce a workout, sorry.", testIndex("ex1")))
	assert.Nil(t, ParsePayload("", testIndex("ex1")))
}

func TestParsePayload_MissingExercisesField(t *testing.T) {
	assert.Nil(t, ParsePayload(`{"muscleGroups": ["chest"]}`, testIndex("ex1")))
}

func TestParsePayload_ExercisesWrongType(t *testing.T) {
	assert.Nil(t, ParsePayload(`{"exercises": "not a list"}`, testIndex("ex1")))
}

func TestParsePayload_DropsUnknownExercises(t *testing.T) {
	idx := testIndex("ex1")

	got := ParsePayload(validPayloadJSON, idx)
	require.NotNil(t, got)
	require.Len(t, got.Exercises, 1)
	assert.Equal(t, "ex1", got.Exercises[0].ExerciseID)
}

func TestParsePayload_EmptyExercisesListIsValid(t *testing.T) {
	got := ParsePayload(`{"exercises": []}`, testIndex("ex1"))
	require.NotNil(t, got)
	assert.Empty(t, got.Exercises)
}

func bundleJSON(n int) string {
	out := `{"workouts": [`
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"exercises": [{"exerciseId": "ex1", "targetSets": 3, "targetReps": "8-12"}], "muscleGroups": ["chest"], "explanation": "workout %d"}`, i+1)
	}
	return out + `]}`
}

func TestParseBundle_ExactCardinality(t *testing.T) {
	idx := testIndex("ex1")

	got := ParseBundle(bundleJSON(3), 3, idx)
	require.NotNil(t, got)
	assert.Len(t, got.Workouts, 3)
}

func TestParseBundle_RejectsUnderCount(t *testing.T) {
	assert.Nil(t, ParseBundle(bundleJSON(2), 3, testIndex("ex1")))
}

func TestParseBundle_RejectsOverCount(t *testing.T) {
	assert.Nil(t, ParseBundle(bundleJSON(4), 3, testIndex("ex1")))
}

func TestParseBundle_MissingWorkoutsField(t *testing.T) {
	assert.Nil(t, ParseBundle(`{"exercises": []}`, 1, testIndex("ex1")))
}

func TestParseBundle_WorkoutMissingExercises(t *testing.T) {
	raw := `{"workouts": [{"muscleGroups": ["chest"]}]}`
	assert.Nil(t, ParseBundle(raw, 1, testIndex("ex1")))
}

func TestParseBundle_DropsUnknownIdsPerWorkout(t *testing.T) {
	raw := `{"workouts": [{"exercises": [
		{"exerciseId": "ex1"}, {"exerciseId": "ghost"}
	], "muscleGroups": ["chest"]}]}`

	got := ParseBundle(raw, 1, testIndex("ex1"))
	require.NotNil(t, got)
	require.Len(t, got.Workouts[0].Exercises, 1)
	assert.Equal(t, "ex1", got.Workouts[0].Exercises[0].ExerciseID)
}

func TestParseMusclePlan_DropsUnknownMuscles(t *testing.T) {
	muscles := []catalog.MuscleGroup{{ID: "chest", Name: "Chest"}, {ID: "back", Name: "Back"}}
	raw := `{"workouts": [{"muscles": ["chest", "quads"]}, {"muscles": ["back"]}]}`

	got := ParseMusclePlan(raw, 2, muscles)
	require.NotNil(t, got)
	assert.Equal(t, [][]string{{"chest"}, {"back"}}, got)
}

func TestParseMusclePlan_AllUnknownIsRejected(t *testing.T) {
	muscles := []catalog.MuscleGroup{{ID: "chest", Name: "Chest"}}
	raw := `{"workouts": [{"muscles": ["quads"]}, {"muscles": ["calves"]}]}`

	assert.Nil(t, ParseMusclePlan(raw, 2, muscles))
}

func TestParseMusclePlan_CardinalityMismatch(t *testing.T) {
	muscles := []catalog.MuscleGroup{{ID: "chest", Name: "Chest"}}
	raw := `{"workouts": [{"muscles": ["chest"]}]}`

	assert.Nil(t, ParseMusclePlan(raw, 2, muscles))
}

func TestExtractBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"prose around", `The plan: {"a": 1} done.`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no object", "no json here", ""},
		{"empty", "", ""},
		{"reversed braces", "} {", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBlock(tt.in))
		})
	}
}
