package quota

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Status is the result of a quota check.
type Status struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Gate enforces the per-user daily generation limit. It fails open: if the
// store is unreachable, generation proceeds — reliability of the product
// feature outranks strict quota enforcement.
type Gate struct {
	store Store
	limit int
	now   func() time.Time
}

func NewGate(store Store, dailyLimit int) *Gate {
	return &Gate{store: store, limit: dailyLimit, now: time.Now}
}

// Limit returns the configured daily limit.
func (g *Gate) Limit() int { return g.limit }

// Check reports whether the user may generate today. A missing record means
// the full quota remains; Check never writes.
func (g *Gate) Check(ctx context.Context, userID uuid.UUID) Status {
	now := g.now()
	resetAt := nextMidnight(now)

	count, err := g.store.Count(ctx, NewDayKey(userID, now))
	if err != nil {
		slog.Warn("quota: store unreachable, failing open", "error", err, "user_id", userID)
		return Status{Allowed: true, Remaining: g.limit, ResetAt: resetAt}
	}

	remaining := g.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Status{Allowed: count < g.limit, Remaining: remaining, ResetAt: resetAt}
}

// Increment records one completed generation. Callers invoke it exactly once
// per successful generation; failures are logged and swallowed because the
// generation has already succeeded and must still be returned.
func (g *Gate) Increment(ctx context.Context, userID uuid.UUID) {
	now := g.now()
	// Keep the record a bit past the boundary for debugging before expiry.
	expireAt := nextMidnight(now).Add(time.Hour)

	if err := g.store.Increment(ctx, NewDayKey(userID, now), expireAt); err != nil {
		slog.Warn("quota: increment failed", "error", err, "user_id", userID)
	}
}

func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
