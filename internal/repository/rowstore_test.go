package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/model"
)

func newTestStore() (*RowStore, *MemoryRows, *MemoryRows) {
	weights := NewMemoryRows()
	subs := NewMemoryRows()
	return NewRowStore(weights, subs), weights, subs
}

func TestRowStoreCreateAndGetByDate(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	rec := &model.WeightRecord{
		UserID:      42,
		DisplayName: "anna",
		Date:        "2024-05-13",
		WeightKg:    75.5,
		RecordedAt:  time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC),
	}
	if err := store.CreateWeight(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Fatal("CreateWeight did not assign an ID")
	}

	got, err := store.GetWeightByDate(ctx, 42, "2024-05-13")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.WeightKg != 75.5 || got.ID != rec.ID {
		t.Errorf("got %+v", got)
	}

	if got, _ := store.GetWeightByDate(ctx, 42, "2024-05-14"); got != nil {
		t.Errorf("lookup for another day returned %+v", got)
	}
	if got, _ := store.GetWeightByDate(ctx, 7, "2024-05-13"); got != nil {
		t.Errorf("lookup for another user returned %+v", got)
	}
}

func TestRowStoreUpdateOverwritesInPlace(t *testing.T) {
	store, weights, _ := newTestStore()
	ctx := context.Background()

	first := &model.WeightRecord{UserID: 42, Date: "2024-05-13", WeightKg: 75.5}
	second := &model.WeightRecord{UserID: 42, Date: "2024-05-14", WeightKg: 75.0}
	if err := store.CreateWeight(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateWeight(ctx, second); err != nil {
		t.Fatal(err)
	}

	first.WeightKg = 76
	if err := store.UpdateWeight(ctx, first); err != nil {
		t.Fatal(err)
	}

	rows, err := weights.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("table has %d rows, want 2", len(rows))
	}
	// The overwrite must hit the original position, not reorder or append.
	if rows[0]["weight_kg"] != "76" || rows[0]["date"] != "2024-05-13" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[1]["date"] != "2024-05-14" {
		t.Errorf("second row = %v", rows[1])
	}
}

func TestRowStoreSkipsMalformedRows(t *testing.T) {
	store, weights, _ := newTestStore()
	ctx := context.Background()

	if err := store.CreateWeight(ctx, &model.WeightRecord{UserID: 42, Date: "2024-05-13", WeightKg: 75.5}); err != nil {
		t.Fatal(err)
	}
	// Rows edited out-of-band with unusable fields.
	weights.Append(ctx, map[string]string{"user_id": "42", "date": "2024-05-14", "weight_kg": "heavy"})
	weights.Append(ctx, map[string]string{"user_id": "not-a-user", "date": "2024-05-15", "weight_kg": "80"})
	weights.Append(ctx, map[string]string{"user_id": "42", "date": "yesterday", "weight_kg": "80"})

	records, err := store.GetWeights(ctx, 42, model.WeightFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (malformed rows skipped)", len(records))
	}
}

func TestRowStoreWeightFilter(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	for _, date := range []string{"2024-05-05", "2024-05-06", "2024-05-12", "2024-05-13"} {
		if err := store.CreateWeight(ctx, &model.WeightRecord{UserID: 42, Date: date, WeightKg: 75}); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	records, err := store.GetWeights(ctx, 42, model.WeightFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first, matching the remote adapter's ordering.
	if records[0].Date != "2024-05-12" || records[1].Date != "2024-05-06" {
		t.Errorf("got dates %s, %s", records[0].Date, records[1].Date)
	}

	limited, err := store.GetWeights(ctx, 42, model.WeightFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].Date != "2024-05-13" {
		t.Errorf("limited query returned %+v", limited)
	}
}

func TestRowStoreSubscriptionUpsert(t *testing.T) {
	store, _, subs := newTestStore()
	ctx := context.Background()

	if got, _ := store.GetSubscription(ctx, 42); got != nil {
		t.Fatalf("unexpected subscription %+v", got)
	}

	if err := store.CreateSubscription(ctx, &model.Subscription{UserID: 42, DisplayName: "anna", Active: true}); err != nil {
		t.Fatal(err)
	}
	active, err := store.GetActiveSubscriptions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].UserID != 42 {
		t.Fatalf("active subscriptions: %+v", active)
	}

	if err := store.UpdateSubscription(ctx, &model.Subscription{UserID: 42, DisplayName: "anna", Active: false}); err != nil {
		t.Fatal(err)
	}
	active, err = store.GetActiveSubscriptions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("active subscriptions after deactivate: %+v", active)
	}

	rows, _ := subs.ListAll(ctx)
	if len(rows) != 1 {
		t.Fatalf("subscription table has %d rows, want 1", len(rows))
	}
}
