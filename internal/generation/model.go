package generation

import (
	"time"

	"github.com/google/uuid"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

// MuscleMode selects how target muscles are chosen for each workout in a
// bundle. Exactly one strategy is active per request.
type MuscleMode string

const (
	// MuscleModeSame applies one shared muscle set to every workout.
	MuscleModeSame MuscleMode = "same"
	// MuscleModeManual uses a caller-specified set per workout index.
	MuscleModeManual MuscleMode = "manual"
	// MuscleModeRotate lets the pipeline vary muscles across the bundle.
	// This is the default when no mode is given.
	MuscleModeRotate MuscleMode = "ai_rotate"
)

// SourceAITrainer is the provenance tag stamped on every generated workout,
// whichever path (LM or fallback) produced it.
const SourceAITrainer = "ai_trainer"

// Request is the immutable input of one pipeline run. The catalog and
// muscle reference list are snapshots supplied by the caller; this core
// never fetches them itself.
type Request struct {
	UserID            uuid.UUID  `json:"userId" validate:"required"`
	NumWorkouts       int        `json:"numWorkouts" validate:"required,min=1,max=6"`
	DurationMinutes   int        `json:"durationMinutes" validate:"required,oneof=30 45 60 90"`
	WarmupMinutes     int        `json:"warmupMinutes" validate:"min=0"`
	MuscleMode        MuscleMode `json:"muscleSelectionMode" validate:"omitempty,oneof=same manual ai_rotate"`
	MuscleTargets     []string   `json:"muscleTargets,omitempty"`
	PerWorkoutMuscles [][]string `json:"perWorkoutMuscles,omitempty"`

	AvailableExercises []catalog.ExerciseSummary `json:"availableExercises" validate:"required,min=1,dive"`
	Muscles            []catalog.MuscleGroup     `json:"muscles" validate:"dive"`

	RecentWorkouts       []RecentWorkout `json:"recentWorkouts,omitempty"`
	YesterdayExerciseIDs []string        `json:"yesterdayExerciseIds,omitempty"`
}

// RecentWorkout is one entry of the bounded history window handed to the LM
// for context.
type RecentWorkout struct {
	Name         string    `json:"name"`
	MuscleGroups []string  `json:"muscleGroups"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Recommendation carries optional per-exercise numeric guidance from the LM.
type Recommendation struct {
	Weight    float64 `json:"weight,omitempty"`
	RepRange  string  `json:"repRange,omitempty"`
	Sets      int     `json:"sets,omitempty"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// PayloadExercise is one exercise slot inside a CandidatePayload.
type PayloadExercise struct {
	ExerciseID     string          `json:"exerciseId"`
	IsWarmup       bool            `json:"isWarmup"`
	TargetSets     int             `json:"targetSets"`
	TargetReps     string          `json:"targetReps"`
	AINotes        string          `json:"aiNotes,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// CandidatePayload is the structural contract both generation paths must
// satisfy per workout. It is the seam that makes the LM path and the
// fallback generator interchangeable to the assembler.
type CandidatePayload struct {
	Exercises    []PayloadExercise `json:"exercises"`
	MuscleGroups []string          `json:"muscleGroups"`
	Explanation  string            `json:"explanation,omitempty"`
}

// Bundle is the multi-workout form of an LM response.
type Bundle struct {
	Workouts []CandidatePayload `json:"workouts"`
}

// WorkoutExercise is an exercise with its catalog display metadata resolved.
type WorkoutExercise struct {
	ExerciseID     string          `json:"exerciseId"`
	Name           string          `json:"name"`
	SecondaryName  string          `json:"secondaryName,omitempty"`
	PrimaryMuscle  string          `json:"primaryMuscle"`
	Category       string          `json:"category,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	IsWarmup       bool            `json:"isWarmup"`
	TargetSets     int             `json:"targetSets"`
	TargetReps     string          `json:"targetReps"`
	Notes          string          `json:"notes,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// GeneratedWorkout is the final output unit. Created once by the assembler,
// never mutated afterwards.
type GeneratedWorkout struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Sequence        int               `json:"sequence"`
	Exercises       []WorkoutExercise `json:"exercises"`
	DurationMinutes int               `json:"durationMinutes"`
	MuscleGroups    []string          `json:"muscleGroups"`
	Source          string            `json:"source"`
	Explanation     string            `json:"explanation,omitempty"`
}

// RateLimitInfo reports quota state alongside a response.
type RateLimitInfo struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Response is the outbound contract of the generation operation.
// UsedFallback always faithfully reports which path produced the result;
// downstream consumers treat fallback output as lower-confidence.
type Response struct {
	Success      bool               `json:"success"`
	Workouts     []GeneratedWorkout `json:"workouts"`
	UsedFallback bool               `json:"usedFallback"`
	Error        string             `json:"error,omitempty"`
	RateLimit    *RateLimitInfo     `json:"rateLimitInfo,omitempty"`
}

// exerciseCountForDuration maps session length to the number of primary
// (non-warm-up) exercises a workout should contain.
func exerciseCountForDuration(durationMinutes int) int {
	switch durationMinutes {
	case 30:
		return 6
	case 45:
		return 8
	case 60:
		return 9
	default:
		return 11
	}
}
