package model

import (
	"time"

	"github.com/google/uuid"
)

// WeightRecord is one body-weight measurement. There is at most one record
// per (UserID, Date): a second submission for the same day overwrites the
// existing row instead of appending.
type WeightRecord struct {
	ID          string    `json:"id,omitempty"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Date        string    `json:"date"` // civil date, YYYY-MM-DD in the bot timezone
	WeightKg    float64   `json:"weight_kg"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// GenerateID assigns a new UUID to the record if it does not have one yet.
func (r *WeightRecord) GenerateID() {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
}
