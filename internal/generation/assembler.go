package generation

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

// AssembleWorkouts converts validated payloads — from either path — into
// the final GeneratedWorkout list. Pure data transformation: resolves
// display metadata from the catalog, promotes per-exercise recommendations,
// assigns sequence names. No network, no storage.
func AssembleWorkouts(payloads []CandidatePayload, req *Request) []GeneratedWorkout {
	index := catalog.Index(req.AvailableExercises)
	out := make([]GeneratedWorkout, 0, len(payloads))

	for i, payload := range payloads {
		seq := i + 1
		workout := GeneratedWorkout{
			ID:              uuid.New(),
			Name:            fmt.Sprintf("Workout %d", seq),
			Sequence:        seq,
			DurationMinutes: req.DurationMinutes,
			MuscleGroups:    payload.MuscleGroups,
			Source:          SourceAITrainer,
			Explanation:     payload.Explanation,
		}

		for _, ex := range payload.Exercises {
			entry, ok := index[ex.ExerciseID]
			if !ok {
				// Normally filtered by the parser; fallback output can only
				// reference catalog ids, so this is belt and braces.
				slog.Warn("assembler dropping unknown exercise", "exercise_id", ex.ExerciseID)
				continue
			}

			sets := ex.TargetSets
			if sets <= 0 {
				sets = fallbackSets
			}
			reps := ex.TargetReps
			if reps == "" {
				reps = fallbackReps
			}

			workout.Exercises = append(workout.Exercises, WorkoutExercise{
				ExerciseID:     entry.ID,
				Name:           entry.Name,
				SecondaryName:  entry.SecondaryName,
				PrimaryMuscle:  entry.PrimaryMuscle,
				Category:       entry.Category,
				ImageURL:       entry.ImageURL,
				IsWarmup:       ex.IsWarmup,
				TargetSets:     sets,
				TargetReps:     reps,
				Notes:          ex.AINotes,
				Recommendation: promoteRecommendation(ex, sets, reps),
			})
		}

		out = append(out, workout)
	}
	return out
}

// promoteRecommendation keeps the LM's numeric guidance when present,
// falling back to the requested set/rep targets for the missing fields.
func promoteRecommendation(ex PayloadExercise, sets int, reps string) *Recommendation {
	if ex.Recommendation == nil {
		return nil
	}
	rec := *ex.Recommendation
	if rec.Sets <= 0 {
		rec.Sets = sets
	}
	if rec.RepRange == "" {
		rec.RepRange = reps
	}
	return &rec
}
