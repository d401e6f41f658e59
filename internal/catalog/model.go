package catalog

// ExerciseSummary is a read-only catalog entry supplied by the caller.
// The catalog is owned by the main platform; this service never writes it.
type ExerciseSummary struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	SecondaryName string `json:"secondaryName,omitempty"`
	PrimaryMuscle string `json:"primaryMuscle" validate:"required"`
	Category      string `json:"category,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// MuscleGroup is a reference-list entry (id + display name).
type MuscleGroup struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// CategoryCardio marks warm-up candidates in the catalog.
const CategoryCardio = "cardio"

// IsCardio reports whether the exercise belongs to the warm-up pool.
// Some catalogs tag cardio via category, older entries via primary muscle.
func (e ExerciseSummary) IsCardio() bool {
	return e.Category == CategoryCardio || e.PrimaryMuscle == CategoryCardio
}

// Index builds an id -> exercise lookup map over the snapshot.
func Index(exercises []ExerciseSummary) map[string]ExerciseSummary {
	idx := make(map[string]ExerciseSummary, len(exercises))
	for _, e := range exercises {
		idx[e.ID] = e
	}
	return idx
}

// Partition splits a snapshot into cardio (warm-up) and strength pools.
func Partition(exercises []ExerciseSummary) (cardio, strength []ExerciseSummary) {
	for _, e := range exercises {
		if e.IsCardio() {
			cardio = append(cardio, e)
		} else {
			strength = append(strength, e)
		}
	}
	return cardio, strength
}
