package generation

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/erezadam/GymIq-sub000/internal/catalog"
	"github.com/erezadam/GymIq-sub000/internal/llm"
	"github.com/erezadam/GymIq-sub000/internal/metrics"
	"github.com/erezadam/GymIq-sub000/internal/quota"
)

// Service orchestrates one generation: quota gate, the two LM stages, the
// deterministic fallback, and final assembly. One sequential flow per
// request; the only state shared between concurrent requests is the quota
// counter, and that is an atomic add in the store.
type Service struct {
	gate      *quota.Gate
	client    llm.Client
	maxTokens int
	newRand   func() *rand.Rand
}

func NewService(gate *quota.Gate, client llm.Client, maxTokens int) *Service {
	return &Service{
		gate:      gate,
		client:    client,
		maxTokens: maxTokens,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Generate runs the full pipeline. It returns an error only for invalid
// input; after quota admission every external failure is absorbed by the
// fallback path and the caller still receives a complete bundle.
func (s *Service) Generate(ctx context.Context, req *Request) (*Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := s.gate.Check(ctx, req.UserID)
	if !status.Allowed {
		metrics.QuotaDeniedTotal.Inc()
		return &Response{
			Success:   false,
			Error:     "daily generation limit reached",
			RateLimit: &RateLimitInfo{Remaining: 0, ResetAt: status.ResetAt},
		}, nil
	}

	start := time.Now()

	// Narrow the catalog once the effective muscle set is known: either
	// caller-specified or chosen by the muscle selection stage.
	working := req.AvailableExercises
	if req.needsMuscleSelection() {
		if plan := s.selectMuscles(ctx, req); plan != nil {
			working = applyFilter(req.AvailableExercises, muscleUnion(plan))
		}
	} else if targets := req.explicitMuscleTargets(); len(targets) > 0 {
		working = applyFilter(req.AvailableExercises, targets)
	}

	var payloads []CandidatePayload
	usedFallback := false

	if bundle := s.generateBundle(ctx, req, working); bundle != nil {
		payloads = bundle.Workouts
	} else {
		usedFallback = true
		payloads = NewFallbackGenerator(s.newRand()).GenerateBundle(req)
	}

	workouts := AssembleWorkouts(payloads, req)

	// Exactly one increment per successfully returned generation,
	// regardless of which path produced it.
	s.gate.Increment(ctx, req.UserID)

	path := "llm"
	if usedFallback {
		path = "fallback"
	}
	metrics.GenerationsTotal.WithLabelValues(path).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	remaining := status.Remaining - 1
	if remaining < 0 {
		remaining = 0
	}

	slog.Info("generation completed",
		"user_id", req.UserID,
		"workouts", len(workouts),
		"used_fallback", usedFallback,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Response{
		Success:      true,
		Workouts:     workouts,
		UsedFallback: usedFallback,
		RateLimit:    &RateLimitInfo{Remaining: remaining, ResetAt: status.ResetAt},
	}, nil
}

// QuotaStatus exposes the gate's current status for the quota endpoint.
func (s *Service) QuotaStatus(ctx context.Context, userID uuid.UUID) quota.Status {
	return s.gate.Check(ctx, userID)
}

// applyFilter narrows the catalog, keeping the full set when the subset
// would be empty — the pipeline never generates from an empty candidate
// pool.
func applyFilter(exercises []catalog.ExerciseSummary, muscleIDs []string) []catalog.ExerciseSummary {
	filtered := catalog.FilterByMuscles(exercises, muscleIDs)
	if len(filtered) == 0 {
		return exercises
	}
	return filtered
}
