package quota

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

// DayKey identifies one user's generation counter for one local calendar
// day. The composite is structured rather than assembled ad hoc so every
// storage backend derives its key the same way.
type DayKey struct {
	UserID uuid.UUID
	Day    string
}

// NewDayKey builds the key for the calendar day containing t (local time,
// not a rolling 24h window).
func NewDayKey(userID uuid.UUID, t time.Time) DayKey {
	return DayKey{UserID: userID, Day: t.Format(dayFormat)}
}

// Redis renders the key for the Redis backend.
func (k DayKey) Redis() string {
	return fmt.Sprintf("quota:daily:%s:%s", k.UserID, k.Day)
}
