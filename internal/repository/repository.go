package repository

import (
	"context"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/model"
)

// Repository is the keyed surface of the shared weight ledger. The store is
// owned by an external collaborator: implementations never cache between
// calls, and every error is propagated without retry.
type Repository interface {
	// Weights
	GetWeights(ctx context.Context, userID int64, filter model.WeightFilter) ([]model.WeightRecord, error)
	GetWeightByDate(ctx context.Context, userID int64, date string) (*model.WeightRecord, error)
	CreateWeight(ctx context.Context, record *model.WeightRecord) error
	UpdateWeight(ctx context.Context, record *model.WeightRecord) error

	// Subscriptions
	GetSubscription(ctx context.Context, userID int64) (*model.Subscription, error)
	GetActiveSubscriptions(ctx context.Context) ([]model.Subscription, error)
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	UpdateSubscription(ctx context.Context, sub *model.Subscription) error
}

var (
	_ Repository = (*SupabaseRepository)(nil)
	_ Repository = (*RowStore)(nil)
)
