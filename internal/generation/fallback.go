package generation

import (
	"math/rand"
	"time"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

// Fixed targets the fallback assigns; it has no load history to reason
// from, so it stays conservative.
const (
	fallbackSets    = 3
	fallbackReps    = "8-12"
	warmupSets      = 1
	warmupReps      = "5-8"
	rotateMuscleMin = 2
	rotateMuscleMax = 3
)

// FallbackGenerator produces CandidatePayloads locally, with no network,
// whenever the LM path fails or returns the wrong workout count. It
// satisfies the same payload contract as the LM path, so the assembler
// cannot tell the two apart.
//
// The random source is injected: tests supply a seeded source and assert
// exact selection outcomes.
type FallbackGenerator struct {
	rnd *rand.Rand
}

func NewFallbackGenerator(rnd *rand.Rand) *FallbackGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FallbackGenerator{rnd: rnd}
}

// GenerateBundle runs the per-workout algorithm NumWorkouts times in order.
// Each iteration feeds the muscles it actually used into the next one, so
// the iterations must stay sequential.
func (g *FallbackGenerator) GenerateBundle(req *Request) []CandidatePayload {
	usedMuscles := make(map[string]struct{})
	out := make([]CandidatePayload, 0, req.NumWorkouts)

	for i := 0; i < req.NumWorkouts; i++ {
		payload := g.generateWorkout(req, i, usedMuscles)
		// Track the muscles actually chosen, not the requested targets.
		for _, m := range payload.MuscleGroups {
			usedMuscles[m] = struct{}{}
		}
		out = append(out, payload)
	}
	return out
}

func (g *FallbackGenerator) generateWorkout(req *Request, idx int, usedMuscles map[string]struct{}) CandidatePayload {
	count := exerciseCountForDuration(req.DurationMinutes)

	candidates := withoutIDs(req.AvailableExercises, req.YesterdayExerciseIDs)
	cardio, strength := catalog.Partition(candidates)
	if len(strength) == 0 {
		// Yesterday's exclusions emptied the pool; reuse the full catalog
		// rather than produce an empty workout.
		_, strength = catalog.Partition(req.AvailableExercises)
	}

	targets := g.resolveTargets(req, idx, usedMuscles, strength)

	chosen := make([]catalog.ExerciseSummary, 0, count)
	chosenIDs := make(map[string]struct{}, count)

	if len(targets) > 0 {
		// Roughly even share per target muscle, rounded up.
		share := (count + len(targets) - 1) / len(targets)
		for _, muscle := range targets {
			pool := byPrimaryMuscle(strength, muscle)
			g.shuffle(pool)
			taken := 0
			for _, e := range pool {
				if taken >= share || len(chosen) >= count {
					break
				}
				if _, dup := chosenIDs[e.ID]; dup {
					continue
				}
				chosen = append(chosen, e)
				chosenIDs[e.ID] = struct{}{}
				taken++
			}
		}
	}

	// Backfill from any remaining strength exercises if still short.
	if len(chosen) < count {
		rest := make([]catalog.ExerciseSummary, len(strength))
		copy(rest, strength)
		g.shuffle(rest)
		for _, e := range rest {
			if len(chosen) >= count {
				break
			}
			if _, dup := chosenIDs[e.ID]; dup {
				continue
			}
			chosen = append(chosen, e)
			chosenIDs[e.ID] = struct{}{}
		}
	}

	// Never exceed the target count.
	if len(chosen) > count {
		chosen = chosen[:count]
	}

	exercises := make([]PayloadExercise, 0, len(chosen)+1)

	// A warm-up needs a cardio candidate; none available means no warm-up,
	// not a failure.
	if req.WarmupMinutes > 0 && len(cardio) > 0 {
		w := cardio[g.rnd.Intn(len(cardio))]
		exercises = append(exercises, PayloadExercise{
			ExerciseID: w.ID,
			IsWarmup:   true,
			TargetSets: warmupSets,
			TargetReps: warmupReps,
		})
	}

	for _, e := range chosen {
		exercises = append(exercises, PayloadExercise{
			ExerciseID: e.ID,
			TargetSets: fallbackSets,
			TargetReps: fallbackReps,
		})
	}

	return CandidatePayload{
		Exercises:    exercises,
		MuscleGroups: actualMuscleGroups(chosen),
	}
}

// resolveTargets picks the effective target-muscle set for workout idx.
// Rotation draws 2-3 muscles from those not yet used earlier in the same
// bundle, relaxing to the full muscle list once fewer than 2 remain unused.
// The relaxation can reintroduce a muscle from the immediately preceding
// workout; that matches the shipped behavior.
func (g *FallbackGenerator) resolveTargets(req *Request, idx int, usedMuscles map[string]struct{}, strength []catalog.ExerciseSummary) []string {
	switch req.MuscleMode {
	case MuscleModeManual:
		return req.PerWorkoutMuscles[idx]
	case MuscleModeSame:
		if len(req.MuscleTargets) > 0 {
			return req.MuscleTargets
		}
		// "same" with no explicit targets behaves like rotation.
	}

	all := muscleIDs(req.Muscles)
	if len(all) == 0 {
		all = distinctPrimaryMuscles(strength)
	}

	var unused []string
	for _, id := range all {
		if _, ok := usedMuscles[id]; !ok {
			unused = append(unused, id)
		}
	}

	pool := unused
	if len(pool) < rotateMuscleMin {
		pool = all
	}

	n := rotateMuscleMin + g.rnd.Intn(rotateMuscleMax-rotateMuscleMin+1)
	if n > len(pool) {
		n = len(pool)
	}

	picked := make([]string, len(pool))
	copy(picked, pool)
	g.rnd.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}

func (g *FallbackGenerator) shuffle(pool []catalog.ExerciseSummary) {
	g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
}

func withoutIDs(exercises []catalog.ExerciseSummary, excluded []string) []catalog.ExerciseSummary {
	if len(excluded) == 0 {
		return exercises
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}
	var out []catalog.ExerciseSummary
	for _, e := range exercises {
		if _, ok := skip[e.ID]; !ok {
			out = append(out, e)
		}
	}
	return out
}

func byPrimaryMuscle(exercises []catalog.ExerciseSummary, muscle string) []catalog.ExerciseSummary {
	var out []catalog.ExerciseSummary
	for _, e := range exercises {
		if e.PrimaryMuscle == muscle {
			out = append(out, e)
		}
	}
	return out
}

// actualMuscleGroups derives the workout's muscle groups from the strength
// exercises actually chosen, deduplicated in selection order.
func actualMuscleGroups(chosen []catalog.ExerciseSummary) []string {
	seen := make(map[string]struct{}, len(chosen))
	var out []string
	for _, e := range chosen {
		if _, ok := seen[e.PrimaryMuscle]; !ok {
			seen[e.PrimaryMuscle] = struct{}{}
			out = append(out, e.PrimaryMuscle)
		}
	}
	return out
}

func muscleIDs(muscles []catalog.MuscleGroup) []string {
	out := make([]string, 0, len(muscles))
	for _, m := range muscles {
		out = append(out, m.ID)
	}
	return out
}

func distinctPrimaryMuscles(exercises []catalog.ExerciseSummary) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range exercises {
		if _, ok := seen[e.PrimaryMuscle]; !ok {
			seen[e.PrimaryMuscle] = struct{}{}
			out = append(out, e.PrimaryMuscle)
		}
	}
	return out
}
