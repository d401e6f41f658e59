package generation

import (
	"fmt"
	"strings"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

const systemPromptTrainer = "You are a professional strength and conditioning coach. " +
	"You design gym workouts from a fixed exercise catalog. " +
	"Answer ONLY with JSON in the exact format requested, no explanations outside it."

// historyContextLimit bounds the slice of recent workouts included in
// prompts; older history adds tokens without adding signal.
const historyContextLimit = 7

func buildMusclePrompt(req *Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Plan the muscle focus for %d workout(s).\n\n", req.NumWorkouts))

	sb.WriteString("AVAILABLE MUSCLE GROUPS (use only these ids):\n")
	for _, m := range req.Muscles {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", m.ID, m.Name))
	}

	if len(req.RecentWorkouts) > 0 {
		sb.WriteString("\nRECENT WORKOUTS (avoid repeating the same focus back to back):\n")
		for _, w := range recentWindow(req.RecentWorkouts) {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", w.Name, strings.Join(w.MuscleGroups, ", ")))
		}
	}

	sb.WriteString("\nRESPONSE FORMAT (strict JSON):\n")
	sb.WriteString(`{
  "workouts": [
    {"muscles": ["chest", "triceps"]}
  ]
}`)
	sb.WriteString(fmt.Sprintf("\n\nREQUIREMENTS:\n"+
		"1. Return exactly %d entries in \"workouts\", one per workout in order\n"+
		"2. Pick 2-3 muscle groups per workout\n"+
		"3. Vary muscle groups across the workouts\n"+
		"4. Answer ONLY with the JSON\n", req.NumWorkouts))

	return sb.String()
}

func buildBundlePrompt(req *Request, exercises []catalog.ExerciseSummary) string {
	count := exerciseCountForDuration(req.DurationMinutes)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create %d workout(s) of %d minutes each.\n\n",
		req.NumWorkouts, req.DurationMinutes))

	sb.WriteString(fmt.Sprintf("Each workout must contain exactly %d strength exercises", count))
	if req.WarmupMinutes > 0 {
		sb.WriteString(fmt.Sprintf(", plus exactly one cardio warm-up exercise (%d minutes) "+
			"listed first with \"isWarmup\": true", req.WarmupMinutes))
	}
	sb.WriteString(".\n\n")

	sb.WriteString("EXERCISE CATALOG (reference exercises ONLY by these ids):\n")
	for _, e := range exercises {
		line := fmt.Sprintf("- %s: %s (muscle: %s", e.ID, e.Name, e.PrimaryMuscle)
		if e.Category != "" {
			line += ", category: " + e.Category
		}
		sb.WriteString(line + ")\n")
	}

	if len(req.Muscles) > 0 {
		sb.WriteString("\nMUSCLE GROUPS:\n")
		for _, m := range req.Muscles {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", m.ID, m.Name))
		}
	}

	if len(req.YesterdayExerciseIDs) > 0 {
		sb.WriteString("\nDO NOT use these exercises (trained yesterday):\n")
		for _, id := range req.YesterdayExerciseIDs {
			sb.WriteString("- " + id + "\n")
		}
	}

	if len(req.RecentWorkouts) > 0 {
		sb.WriteString("\nRECENT WORKOUTS (for context):\n")
		for _, w := range recentWindow(req.RecentWorkouts) {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", w.Name, strings.Join(w.MuscleGroups, ", ")))
		}
	}

	sb.WriteString("\nRESPONSE FORMAT (strict JSON):\n")
	sb.WriteString(`{
  "workouts": [
    {
      "exercises": [
        {
          "exerciseId": "bench-press",
          "isWarmup": false,
          "targetSets": 3,
          "targetReps": "8-12",
          "aiNotes": "control the negative",
          "recommendation": {"weight": 60, "repRange": "8-12", "sets": 3, "reasoning": "moderate load"}
        }
      ],
      "muscleGroups": ["chest", "triceps"],
      "explanation": "push-focused session"
    }
  ]
}`)
	sb.WriteString(fmt.Sprintf("\n\nREQUIREMENTS:\n"+
		"1. Return exactly %d entries in \"workouts\"\n"+
		"2. Use only exercise ids from the catalog above\n"+
		"3. Do not repeat an exercise within one workout\n"+
		"4. \"recommendation\" is optional; include it when you can justify a load\n"+
		"5. Answer ONLY with the JSON, no markdown, no commentary\n", req.NumWorkouts))

	return sb.String()
}

func recentWindow(recent []RecentWorkout) []RecentWorkout {
	if len(recent) <= historyContextLimit {
		return recent
	}
	return recent[:historyContextLimit]
}
