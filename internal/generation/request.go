package generation

import (
	"fmt"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

// Normalize applies the default muscle-selection mode.
func (r *Request) Normalize() {
	if r.MuscleMode == "" {
		r.MuscleMode = MuscleModeRotate
	}
}

// Validate enforces the invariants no struct tag can express. It runs
// before any external call; a validation failure is the caller's mistake,
// never the pipeline's.
func (r *Request) Validate() error {
	if r.NumWorkouts < 1 || r.NumWorkouts > 6 {
		return fmt.Errorf("numWorkouts must be between 1 and 6, got %d", r.NumWorkouts)
	}
	switch r.DurationMinutes {
	case 30, 45, 60, 90:
	default:
		return fmt.Errorf("durationMinutes must be one of 30/45/60/90, got %d", r.DurationMinutes)
	}
	if r.WarmupMinutes < 0 {
		return fmt.Errorf("warmupMinutes must not be negative")
	}

	switch r.MuscleMode {
	case MuscleModeSame, MuscleModeRotate:
	case MuscleModeManual:
		if len(r.PerWorkoutMuscles) != r.NumWorkouts {
			return fmt.Errorf("perWorkoutMuscles must have one entry per workout: got %d, want %d",
				len(r.PerWorkoutMuscles), r.NumWorkouts)
		}
	default:
		return fmt.Errorf("unknown muscle selection mode %q", r.MuscleMode)
	}

	if len(r.AvailableExercises) == 0 {
		return fmt.Errorf("exercise catalog is empty")
	}
	// An empty strength pool is the one input the fallback generator cannot
	// recover from, so it is rejected here, not discovered mid-generation.
	_, strength := catalog.Partition(r.AvailableExercises)
	if len(strength) == 0 {
		return fmt.Errorf("exercise catalog contains no strength exercises")
	}

	return nil
}

// needsMuscleSelection reports whether the LM should choose target muscles:
// rotation mode, or "same" mode with no explicit targets given.
func (r *Request) needsMuscleSelection() bool {
	if r.MuscleMode == MuscleModeRotate {
		return true
	}
	return r.MuscleMode == MuscleModeSame && len(r.MuscleTargets) == 0
}

// explicitMuscleTargets returns the caller-specified muscle set for
// filtering, when one exists.
func (r *Request) explicitMuscleTargets() []string {
	switch r.MuscleMode {
	case MuscleModeSame:
		return r.MuscleTargets
	case MuscleModeManual:
		seen := make(map[string]struct{})
		var union []string
		for _, set := range r.PerWorkoutMuscles {
			for _, id := range set {
				if _, ok := seen[id]; !ok {
					seen[id] = struct{}{}
					union = append(union, id)
				}
			}
		}
		return union
	}
	return nil
}
