package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/model"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/period"
)

// RowAPI is the minimal surface of a positional row store: a worksheet-like
// remote table of named columns. Positions are 1-based over the data rows,
// the header row excluded.
type RowAPI interface {
	ListAll(ctx context.Context) ([]map[string]string, error)
	Append(ctx context.Context, row map[string]string) error
	Overwrite(ctx context.Context, pos int, row map[string]string) error
}

// RowStore adapts two positional row tables to the keyed Repository
// interface. Lookups are linear scans over the full table; rows with missing
// or malformed fields are skipped rather than treated as fatal, because the
// tables are shared and may be edited by hand.
type RowStore struct {
	weights       RowAPI
	subscriptions RowAPI
}

func NewRowStore(weights, subscriptions RowAPI) *RowStore {
	return &RowStore{
		weights:       weights,
		subscriptions: subscriptions,
	}
}

func weightRow(record *model.WeightRecord) map[string]string {
	return map[string]string{
		"id":           record.ID,
		"user_id":      strconv.FormatInt(record.UserID, 10),
		"display_name": record.DisplayName,
		"date":         record.Date,
		"weight_kg":    strconv.FormatFloat(record.WeightKg, 'f', -1, 64),
		"recorded_at":  record.RecordedAt.Format(time.RFC3339),
	}
}

func parseWeightRow(row map[string]string) (model.WeightRecord, bool) {
	userID, err := strconv.ParseInt(row["user_id"], 10, 64)
	if err != nil {
		return model.WeightRecord{}, false
	}
	weight, err := strconv.ParseFloat(row["weight_kg"], 64)
	if err != nil {
		return model.WeightRecord{}, false
	}
	if _, err := time.Parse(period.DateLayout, row["date"]); err != nil {
		return model.WeightRecord{}, false
	}

	record := model.WeightRecord{
		ID:          row["id"],
		UserID:      userID,
		DisplayName: row["display_name"],
		Date:        row["date"],
		WeightKg:    weight,
	}
	// The write timestamp is informational; a bad one does not disqualify
	// the row.
	record.RecordedAt, _ = time.Parse(time.RFC3339, row["recorded_at"])
	return record, true
}

func subscriptionRow(sub *model.Subscription) map[string]string {
	return map[string]string{
		"user_id":      strconv.FormatInt(sub.UserID, 10),
		"display_name": sub.DisplayName,
		"active":       strconv.FormatBool(sub.Active),
	}
}

func parseSubscriptionRow(row map[string]string) (model.Subscription, bool) {
	userID, err := strconv.ParseInt(row["user_id"], 10, 64)
	if err != nil {
		return model.Subscription{}, false
	}
	active, err := strconv.ParseBool(row["active"])
	if err != nil {
		return model.Subscription{}, false
	}
	return model.Subscription{
		UserID:      userID,
		DisplayName: row["display_name"],
		Active:      active,
	}, true
}

func (s *RowStore) GetWeights(ctx context.Context, userID int64, filter model.WeightFilter) ([]model.WeightRecord, error) {
	rows, err := s.weights.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}

	var records []model.WeightRecord
	for _, row := range rows {
		record, ok := parseWeightRow(row)
		if !ok || record.UserID != userID {
			continue
		}
		// ISO dates order lexicographically, so string bounds suffice.
		if filter.StartDate != nil && record.Date < filter.StartDate.Format(period.DateLayout) {
			continue
		}
		if filter.EndDate != nil && record.Date > filter.EndDate.Format(period.DateLayout) {
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

func (s *RowStore) GetWeightByDate(ctx context.Context, userID int64, date string) (*model.WeightRecord, error) {
	rows, err := s.weights.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}

	for _, row := range rows {
		record, ok := parseWeightRow(row)
		if ok && record.UserID == userID && record.Date == date {
			return &record, nil
		}
	}
	return nil, nil
}

func (s *RowStore) CreateWeight(ctx context.Context, record *model.WeightRecord) error {
	record.GenerateID()
	if err := s.weights.Append(ctx, weightRow(record)); err != nil {
		return fmt.Errorf("failed to append weight: %w", err)
	}
	return nil
}

func (s *RowStore) UpdateWeight(ctx context.Context, record *model.WeightRecord) error {
	rows, err := s.weights.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list weights: %w", err)
	}

	for i, row := range rows {
		if row["id"] == record.ID {
			if err := s.weights.Overwrite(ctx, i+1, weightRow(record)); err != nil {
				return fmt.Errorf("failed to overwrite weight row %d: %w", i+1, err)
			}
			return nil
		}
	}
	return fmt.Errorf("weight record %s not found", record.ID)
}

func (s *RowStore) GetSubscription(ctx context.Context, userID int64) (*model.Subscription, error) {
	rows, err := s.subscriptions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	for _, row := range rows {
		sub, ok := parseSubscriptionRow(row)
		if ok && sub.UserID == userID {
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *RowStore) GetActiveSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	rows, err := s.subscriptions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	var subs []model.Subscription
	for _, row := range rows {
		sub, ok := parseSubscriptionRow(row)
		if ok && sub.Active {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (s *RowStore) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := s.subscriptions.Append(ctx, subscriptionRow(sub)); err != nil {
		return fmt.Errorf("failed to append subscription: %w", err)
	}
	return nil
}

func (s *RowStore) UpdateSubscription(ctx context.Context, sub *model.Subscription) error {
	rows, err := s.subscriptions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	key := strconv.FormatInt(sub.UserID, 10)
	for i, row := range rows {
		if row["user_id"] == key {
			if err := s.subscriptions.Overwrite(ctx, i+1, subscriptionRow(sub)); err != nil {
				return fmt.Errorf("failed to overwrite subscription row %d: %w", i+1, err)
			}
			return nil
		}
	}
	return fmt.Errorf("subscription for user %d not found", sub.UserID)
}

// MemoryRows is an in-memory RowAPI. It backs local development when no
// remote store is configured, and the adapter tests.
type MemoryRows struct {
	mu   sync.Mutex
	rows []map[string]string
}

func NewMemoryRows() *MemoryRows {
	return &MemoryRows{}
}

func (m *MemoryRows) ListAll(ctx context.Context) ([]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]map[string]string, len(m.rows))
	for i, row := range m.rows {
		copied := make(map[string]string, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out[i] = copied
	}
	return out, nil
}

func (m *MemoryRows) Append(ctx context.Context, row map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, row)
	return nil
}

func (m *MemoryRows) Overwrite(ctx context.Context, pos int, row map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pos < 1 || pos > len(m.rows) {
		return fmt.Errorf("row position %d out of range", pos)
	}
	m.rows[pos-1] = row
	return nil
}
