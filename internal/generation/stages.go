package generation

import (
	"context"
	"log/slog"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
	"github.com/erezadam/GymIq-sub000/internal/metrics"
)

// selectMuscles runs the optional first LM call deciding which muscle
// groups each workout targets. Failure here is non-fatal: the pipeline
// proceeds unfiltered, trading prompt specificity, not correctness.
func (s *Service) selectMuscles(ctx context.Context, req *Request) [][]string {
	res := s.client.Generate(ctx, systemPromptTrainer, buildMusclePrompt(req), s.maxTokens)
	if !res.OK() {
		metrics.LLMRequestsTotal.WithLabelValues("muscle_selection", "failure").Inc()
		slog.Info("muscle selection stage failed, proceeding unfiltered",
			"user_id", req.UserID, "kind", res.Kind)
		return nil
	}

	plan := ParseMusclePlan(res.Text, req.NumWorkouts, req.Muscles)
	if plan == nil {
		metrics.LLMRequestsTotal.WithLabelValues("muscle_selection", "invalid").Inc()
		slog.Info("muscle selection returned invalid structure, proceeding unfiltered",
			"user_id", req.UserID)
		return nil
	}

	metrics.LLMRequestsTotal.WithLabelValues("muscle_selection", "success").Inc()
	return plan
}

// generateBundle runs the second LM call: one combined request describing
// all workouts at once, bounding the round-trips to at most two per
// generation regardless of bundle size. Returns nil on any failure,
// including a wrong workout count.
func (s *Service) generateBundle(ctx context.Context, req *Request, exercises []catalog.ExerciseSummary) *Bundle {
	res := s.client.Generate(ctx, systemPromptTrainer, buildBundlePrompt(req, exercises), s.maxTokens)
	if !res.OK() {
		metrics.LLMRequestsTotal.WithLabelValues("bundle", "failure").Inc()
		slog.Warn("bundle generation stage failed", "user_id", req.UserID, "kind", res.Kind)
		return nil
	}

	bundle := ParseBundle(res.Text, req.NumWorkouts, catalog.Index(req.AvailableExercises))
	if bundle == nil {
		metrics.LLMRequestsTotal.WithLabelValues("bundle", "invalid").Inc()
		slog.Warn("bundle response rejected by validator", "user_id", req.UserID)
		return nil
	}

	metrics.LLMRequestsTotal.WithLabelValues("bundle", "success").Inc()
	return bundle
}

// muscleUnion flattens a per-workout muscle plan into a deduplicated set
// for catalog filtering.
func muscleUnion(plan [][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, set := range plan {
		for _, id := range set {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}
