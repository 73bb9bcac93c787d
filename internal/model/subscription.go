package model

// Subscription is the daily-reminder opt-in state of a user. At most one row
// per UserID; toggling is an idempotent upsert.
type Subscription struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Active      bool   `json:"active"`
}
