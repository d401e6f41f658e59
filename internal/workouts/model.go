package workouts

import (
	"time"

	"github.com/google/uuid"
)

// Record matches the generated_workouts table. Exercises are stored as the
// JSONB document produced by the assembler; this service only ever reads
// back exercise ids from it.
type Record struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Sequence        int       `json:"sequence"`
	DurationMinutes int       `json:"duration_minutes"`
	MuscleGroups    []string  `json:"muscle_groups"`
	Source          string    `json:"source"`
	UsedFallback    bool      `json:"used_fallback"`
	Explanation     string    `json:"explanation,omitempty"`
	Exercises       []byte    `json:"exercises"`
	CreatedAt       time.Time `json:"created_at"`
}

// Summary is the compact history view fed back into generation prompts.
type Summary struct {
	Name         string    `json:"name"`
	MuscleGroups []string  `json:"muscleGroups"`
	CreatedAt    time.Time `json:"createdAt"`
}
