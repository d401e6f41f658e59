package generation

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
)

// LM output is free text that usually, but not always, contains the JSON we
// asked for, possibly wrapped in prose or markdown fences. The parsers below
// locate the largest outermost {...} block, decode it defensively and
// enforce the structural contract. They return nil on any malformation,
// never an error: the pipeline's answer to a bad response is fallback, and
// the reason does not matter.

// extractBlock strips markdown fences and cuts the text down to the
// first '{' through the last '}'. Returns "" when no block exists.
func extractBlock(raw string) string {
	s := raw
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// ParsePayload extracts and validates a single-workout payload. The
// exercises field must exist and be a list; its absence or wrong type is
// treated identically to a decode failure. Unknown exercise ids are
// dropped, not rejected: the workout survives as long as its structure is
// valid.
func ParsePayload(raw string, index map[string]catalog.ExerciseSummary) *CandidatePayload {
	block := extractBlock(raw)
	if block == "" {
		return nil
	}

	var payload CandidatePayload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil
	}
	if payload.Exercises == nil {
		return nil
	}

	dropUnknownExercises(&payload, index)
	return &payload
}

// ParseBundle extracts and validates the multi-workout form. The workouts
// list must exist and contain exactly expectedCount entries — partial
// success is not accepted, because downstream assembly assumes exact
// cardinality. A mismatch sends the whole pipeline to fallback even when
// every individual workout is well-formed.
func ParseBundle(raw string, expectedCount int, index map[string]catalog.ExerciseSummary) *Bundle {
	block := extractBlock(raw)
	if block == "" {
		return nil
	}

	var bundle Bundle
	if err := json.Unmarshal([]byte(block), &bundle); err != nil {
		return nil
	}
	if bundle.Workouts == nil {
		return nil
	}
	if len(bundle.Workouts) != expectedCount {
		slog.Warn("bundle cardinality mismatch",
			"expected", expectedCount,
			"got", len(bundle.Workouts),
		)
		return nil
	}

	for i := range bundle.Workouts {
		if bundle.Workouts[i].Exercises == nil {
			return nil
		}
		dropUnknownExercises(&bundle.Workouts[i], index)
	}
	return &bundle
}

// musclePlan is the expected shape of the muscle-selection stage response.
type musclePlan struct {
	Workouts []struct {
		Muscles []string `json:"muscles"`
	} `json:"workouts"`
}

// ParseMusclePlan extracts one muscle-id set per workout index. Unknown
// muscle ids are dropped. Returns nil on any structural problem — the
// muscle stage is non-fatal and the caller proceeds unfiltered.
func ParseMusclePlan(raw string, expectedCount int, muscles []catalog.MuscleGroup) [][]string {
	block := extractBlock(raw)
	if block == "" {
		return nil
	}

	var plan musclePlan
	if err := json.Unmarshal([]byte(block), &plan); err != nil {
		return nil
	}
	if plan.Workouts == nil || len(plan.Workouts) != expectedCount {
		return nil
	}

	known := make(map[string]struct{}, len(muscles))
	for _, m := range muscles {
		known[m.ID] = struct{}{}
	}

	out := make([][]string, 0, expectedCount)
	any := false
	for _, w := range plan.Workouts {
		var kept []string
		for _, id := range w.Muscles {
			if _, ok := known[id]; ok {
				kept = append(kept, id)
			} else {
				slog.Debug("muscle plan referenced unknown muscle", "muscle_id", id)
			}
		}
		if len(kept) > 0 {
			any = true
		}
		out = append(out, kept)
	}
	if !any {
		return nil
	}
	return out
}

func dropUnknownExercises(p *CandidatePayload, index map[string]catalog.ExerciseSummary) {
	kept := p.Exercises[:0]
	for _, ex := range p.Exercises {
		if _, ok := index[ex.ExerciseID]; ok {
			kept = append(kept, ex)
		} else {
			slog.Warn("dropping unknown exercise from LM payload", "exercise_id", ex.ExerciseID)
		}
	}
	p.Exercises = kept
}
