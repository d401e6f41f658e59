package generation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/erezadam/GymIq-sub000/internal/api"
	"github.com/erezadam/GymIq-sub000/internal/auth"
	"github.com/erezadam/GymIq-sub000/internal/workouts"
)

type Handler struct {
	svc           *Service
	history       workouts.Repository
	historyWindow int
	validate      *validator.Validate
}

// NewHandler wires the pipeline service and the optional history
// repository. A nil repository disables history enrichment and
// persistence; the pipeline itself never needs either.
func NewHandler(svc *Service, history workouts.Repository, historyWindow int) *Handler {
	return &Handler{
		svc:           svc,
		history:       history,
		historyWindow: historyWindow,
		validate:      validator.New(),
	}
}

// Generate handles POST /api/v1/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	// The authenticated identity must match the request's user. A mismatch
	// is a rejection, never a silent correction.
	if claims.UserID != req.UserID.String() {
		slog.Warn("generation user mismatch",
			"token_user", claims.UserID,
			"request_user", req.UserID,
			"path", r.URL.Path,
		)
		api.HandleError(w, api.ErrUserMismatch)
		return
	}

	h.enrichFromHistory(r, &req)

	resp, err := h.svc.Generate(r.Context(), &req)
	if err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	if !resp.Success {
		api.JSONRaw(w, http.StatusTooManyRequests, resp)
		return
	}

	h.persist(r, resp)
	api.JSONRaw(w, http.StatusOK, resp)
}

// GetQuota handles GET /api/v1/generate/quota.
func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.QuotaStatus(r.Context(), userID))
}

// ListRecent handles GET /api/v1/workouts/recent.
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}
	if h.history == nil {
		api.JSON(w, http.StatusOK, []workouts.Summary{})
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	recent, err := h.history.ListRecent(r.Context(), userID, h.historyWindow)
	if err != nil {
		slog.Error("listing recent workouts", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusOK, recent)
}

// enrichFromHistory fills the request's history context from storage when
// the caller left it out. Read failures degrade to an empty context; they
// never block generation.
func (h *Handler) enrichFromHistory(r *http.Request, req *Request) {
	if h.history == nil {
		return
	}
	ctx := r.Context()

	if req.RecentWorkouts == nil {
		recent, err := h.history.ListRecent(ctx, req.UserID, h.historyWindow)
		if err != nil {
			slog.Warn("loading recent workout history", "error", err, "user_id", req.UserID)
		} else {
			for _, s := range recent {
				req.RecentWorkouts = append(req.RecentWorkouts, RecentWorkout{
					Name:         s.Name,
					MuscleGroups: s.MuscleGroups,
					CompletedAt:  s.CreatedAt,
				})
			}
		}
	}

	if req.YesterdayExerciseIDs == nil {
		y, m, d := time.Now().AddDate(0, 0, -1).Date()
		startOfYesterday := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		ids, err := h.history.ExerciseIDsSince(ctx, req.UserID, startOfYesterday)
		if err != nil {
			slog.Warn("loading yesterday's exercises", "error", err, "user_id", req.UserID)
		} else {
			req.YesterdayExerciseIDs = ids
		}
	}
}

// persist stores the produced bundle. The generation already succeeded, so
// storage failures are logged and swallowed — same posture as the quota
// increment.
func (h *Handler) persist(r *http.Request, resp *Response) {
	if h.history == nil {
		return
	}

	now := time.Now()
	records := make([]workouts.Record, 0, len(resp.Workouts))
	for _, wk := range resp.Workouts {
		exercises, err := json.Marshal(wk.Exercises)
		if err != nil {
			slog.Warn("encoding workout exercises for storage", "error", err)
			continue
		}
		records = append(records, workouts.Record{
			ID:              wk.ID,
			UserID:          mustUserID(r),
			Name:            wk.Name,
			Sequence:        wk.Sequence,
			DurationMinutes: wk.DurationMinutes,
			MuscleGroups:    wk.MuscleGroups,
			Source:          wk.Source,
			UsedFallback:    resp.UsedFallback,
			Explanation:     wk.Explanation,
			Exercises:       exercises,
			CreatedAt:       now,
		})
	}

	if err := h.history.SaveBundle(r.Context(), records); err != nil {
		slog.Warn("persisting generated workouts", "error", err)
	}
}

func mustUserID(r *http.Request) uuid.UUID {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		return uuid.Nil
	}
	id, _ := uuid.Parse(claims.UserID)
	return id
}
