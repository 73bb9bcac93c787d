package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/model"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/period"
)

const (
	weightsTable       = "weights"
	subscriptionsTable = "subscriptions"
)

// SupabaseRepository stores the ledger in two postgrest tables.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) GetWeights(ctx context.Context, userID int64, filter model.WeightFilter) ([]model.WeightRecord, error) {
	query := r.client.From(weightsTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10))

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(period.DateLayout))
	}
	if filter.EndDate != nil {
		query = query.Lte("date", filter.EndDate.Format(period.DateLayout))
	}

	query = query.Order("date.desc", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get weights: %w", err)
	}

	var records []model.WeightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse weights: %w", err)
	}
	return records, nil
}

func (r *SupabaseRepository) GetWeightByDate(ctx context.Context, userID int64, date string) (*model.WeightRecord, error) {
	data, _, err := r.client.From(weightsTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Eq("date", date).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get weight for %s: %w", date, err)
	}

	var records []model.WeightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse weight for %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *SupabaseRepository) CreateWeight(ctx context.Context, record *model.WeightRecord) error {
	data, _, err := r.client.From(weightsTable).Insert(record, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create weight: %w", err)
	}

	// The response carries the stored row; keep the server-side ID.
	var created []model.WeightRecord
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created weight: %w", err)
	}
	if len(created) > 0 {
		record.ID = created[0].ID
	}
	return nil
}

func (r *SupabaseRepository) UpdateWeight(ctx context.Context, record *model.WeightRecord) error {
	_, _, err := r.client.From(weightsTable).
		Update(record, "", "").
		Eq("id", record.ID).
		Eq("user_id", strconv.FormatInt(record.UserID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update weight: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetSubscription(ctx context.Context, userID int64) (*model.Subscription, error) {
	data, _, err := r.client.From(subscriptionsTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	var subs []model.Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("failed to parse subscription: %w", err)
	}
	if len(subs) == 0 {
		return nil, nil
	}
	return &subs[0], nil
}

func (r *SupabaseRepository) GetActiveSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	data, _, err := r.client.From(subscriptionsTable).
		Select("*", "", false).
		Eq("active", "true").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscriptions: %w", err)
	}

	var subs []model.Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("failed to parse subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SupabaseRepository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	_, _, err := r.client.From(subscriptionsTable).Insert(sub, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) UpdateSubscription(ctx context.Context, sub *model.Subscription) error {
	_, _, err := r.client.From(subscriptionsTable).
		Update(sub, "", "").
		Eq("user_id", strconv.FormatInt(sub.UserID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}
