package model

import "time"

// WeightFilter narrows a weight query. Date bounds are inclusive civil dates;
// a zero Limit means no limit.
type WeightFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}
