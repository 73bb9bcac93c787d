package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/model"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/period"
)

// historyLimit is the size of the bounded history view.
const historyLimit = 7

// Repository defines the store operations the tracker needs.
type Repository interface {
	GetWeights(ctx context.Context, userID int64, filter model.WeightFilter) ([]model.WeightRecord, error)
	GetWeightByDate(ctx context.Context, userID int64, date string) (*model.WeightRecord, error)
	CreateWeight(ctx context.Context, record *model.WeightRecord) error
	UpdateWeight(ctx context.Context, record *model.WeightRecord) error

	GetSubscription(ctx context.Context, userID int64) (*model.Subscription, error)
	GetActiveSubscriptions(ctx context.Context) ([]model.Subscription, error)
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	UpdateSubscription(ctx context.Context, sub *model.Subscription) error
}

// WeightTracker is the ledger engine: the upsert, windowing and aggregation
// logic over the shared weight store. It holds no state between calls; every
// operation re-reads the store, which other processes may write concurrently.
type WeightTracker struct {
	repo Repository
	loc  *time.Location

	// Serializes the read-then-write of RecordWeight per user, so two
	// same-day submissions cannot both take the insert path.
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewWeightTracker creates a tracker computing all dates in loc.
func NewWeightTracker(repo Repository, loc *time.Location) *WeightTracker {
	return &WeightTracker{
		repo:      repo,
		loc:       loc,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

func (t *WeightTracker) lockUser(userID int64) func() {
	t.mu.Lock()
	lock, ok := t.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		t.userLocks[userID] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// RecordResult reports a stored measurement and whether an existing record
// for the same day was overwritten.
type RecordResult struct {
	WeightKg float64
	Date     string
	Updated  bool
}

// RecordWeight parses and validates rawWeight and upserts it as the
// measurement for the civil date of now, keyed by (userID, date).
func (t *WeightTracker) RecordWeight(ctx context.Context, userID int64, displayName, rawWeight string, now time.Time) (*RecordResult, error) {
	weight, err := ParseWeight(rawWeight)
	if err != nil {
		return nil, err
	}

	date := period.CivilDate(now, t.loc)

	unlock := t.lockUser(userID)
	defer unlock()

	existing, err := t.repo.GetWeightByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up record for %s: %w", date, err)
	}

	if existing != nil {
		existing.DisplayName = displayName
		existing.WeightKg = weight
		existing.RecordedAt = now
		if err := t.repo.UpdateWeight(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update record for %s: %w", date, err)
		}
		return &RecordResult{WeightKg: weight, Date: date, Updated: true}, nil
	}

	record := &model.WeightRecord{
		UserID:      userID,
		DisplayName: displayName,
		Date:        date,
		WeightKg:    weight,
		RecordedAt:  now,
	}
	record.GenerateID()
	if err := t.repo.CreateWeight(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record for %s: %w", date, err)
	}
	return &RecordResult{WeightKg: weight, Date: date, Updated: false}, nil
}

// Entry is one dated measurement inside a report.
type Entry struct {
	Date     time.Time
	WeightKg float64
}

// WeeklyReport is the previous-week average. With no qualifying records the
// report still carries the computed window so the reply can name the period.
type WeeklyReport struct {
	Week    period.Week
	Entries []Entry // ascending by date
	Average float64
}

// WeeklyAverage computes the arithmetic mean of the user's measurements in
// the Monday–Sunday week before the week containing now.
func (t *WeightTracker) WeeklyAverage(ctx context.Context, userID int64, now time.Time) (*WeeklyReport, error) {
	week := period.PreviousWeek(now, t.loc)
	start, end := week.Start, week.End

	records, err := t.repo.GetWeights(ctx, userID, model.WeightFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get weights for week of %s: %w", start.Format(period.DateLayout), err)
	}

	report := &WeeklyReport{Week: week}
	sum := 0.0
	for _, record := range records {
		day, err := time.ParseInLocation(period.DateLayout, record.Date, t.loc)
		if err != nil || !week.Contains(day) {
			continue
		}
		report.Entries = append(report.Entries, Entry{Date: day, WeightKg: record.WeightKg})
		sum += record.WeightKg
	}

	if len(report.Entries) == 0 {
		return report, nil
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Date.Before(report.Entries[j].Date)
	})
	report.Average = sum / float64(len(report.Entries))
	return report, nil
}

// Direction classifies a day-over-day change.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionUp
	DirectionDown
)

func classify(delta float64) Direction {
	switch {
	case delta > 0:
		return DirectionUp
	case delta < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// HistoryEntry is one measurement in the bounded history view. Delta is the
// change against the next older entry in the view; the oldest entry carries
// none.
type HistoryEntry struct {
	Date      time.Time
	WeightKg  float64
	HasDelta  bool
	Delta     float64
	Direction Direction
}

// Trend compares the newest and oldest entries of the history view. Amount
// is always non-negative; DirectionFlat means no trend.
type Trend struct {
	Direction Direction
	Amount    float64
}

// HistoryReport is the recent-history view: at most historyLimit entries,
// newest first. Average and Trend are only meaningful when HasSummary is set
// (two or more entries).
type HistoryReport struct {
	Entries    []HistoryEntry
	HasSummary bool
	Average    float64
	Trend      Trend
}

// RecentHistory returns the user's last measurements with per-entry deltas
// and a windowed trend over the displayed subset only.
func (t *WeightTracker) RecentHistory(ctx context.Context, userID int64) (*HistoryReport, error) {
	records, err := t.repo.GetWeights(ctx, userID, model.WeightFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get weights: %w", err)
	}

	var entries []Entry
	for _, record := range records {
		day, err := time.ParseInLocation(period.DateLayout, record.Date, t.loc)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Date: day, WeightKg: record.WeightKg})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	report := &HistoryReport{}
	for i, entry := range entries {
		h := HistoryEntry{Date: entry.Date, WeightKg: entry.WeightKg}
		if i < len(entries)-1 {
			h.Delta = entry.WeightKg - entries[i+1].WeightKg
			h.Direction = classify(h.Delta)
			h.HasDelta = true
		}
		report.Entries = append(report.Entries, h)
	}

	if len(entries) >= 2 {
		report.HasSummary = true
		sum := 0.0
		for _, entry := range entries {
			sum += entry.WeightKg
		}
		report.Average = sum / float64(len(entries))

		newest := entries[0].WeightKg
		oldest := entries[len(entries)-1].WeightKg
		switch {
		case newest < oldest:
			report.Trend = Trend{Direction: DirectionDown, Amount: oldest - newest}
		case newest > oldest:
			report.Trend = Trend{Direction: DirectionUp, Amount: newest - oldest}
		}
	}
	return report, nil
}

// SubscriptionResult reports the reminder opt-in state after the toggle.
type SubscriptionResult struct {
	Active bool
}

// SetSubscription upserts the user's reminder opt-in, keyed by userID alone.
// Deactivating a user who never subscribed is a no-op success: no row is
// created.
func (t *WeightTracker) SetSubscription(ctx context.Context, userID int64, displayName string, active bool) (*SubscriptionResult, error) {
	unlock := t.lockUser(userID)
	defer unlock()

	existing, err := t.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	if existing == nil {
		if !active {
			return &SubscriptionResult{Active: false}, nil
		}
		sub := &model.Subscription{UserID: userID, DisplayName: displayName, Active: true}
		if err := t.repo.CreateSubscription(ctx, sub); err != nil {
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}
		return &SubscriptionResult{Active: true}, nil
	}

	existing.DisplayName = displayName
	existing.Active = active
	if err := t.repo.UpdateSubscription(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return &SubscriptionResult{Active: active}, nil
}
