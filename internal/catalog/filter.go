package catalog

// FilterByMuscles narrows a catalog snapshot to exercises whose primary
// muscle is in muscleIDs. Pure function, no I/O. Callers must treat an empty
// result as "use the unfiltered catalog" — the pipeline never generates from
// an empty candidate set.
func FilterByMuscles(exercises []ExerciseSummary, muscleIDs []string) []ExerciseSummary {
	if len(muscleIDs) == 0 {
		return exercises
	}

	want := make(map[string]struct{}, len(muscleIDs))
	for _, id := range muscleIDs {
		want[id] = struct{}{}
	}

	var out []ExerciseSummary
	for _, e := range exercises {
		if _, ok := want[e.PrimaryMuscle]; ok {
			out = append(out, e)
		}
	}
	return out
}
