// Package streak derives a consecutive-day shopping streak from two
// persisted key-value entries.
package streak

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	keyLastOrderDate = "lastOrderDate"
	keyOrderStreak   = "orderStreak"
)

const dateLayout = "2006-01-02"

// Store is the persisted key-value collaborator. Get returns an empty string
// for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// State is the streak after an update.
type State struct {
	Count         int
	LastOrderDate string
}

// Tracker updates the streak once per session. The clock is injectable for
// tests; a nil clock means wall time.
type Tracker struct {
	store Store
	now   func() time.Time
}

func NewTracker(store Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now}
}

// Update compares the persisted last-order date against today and yesterday
// and persists the new streak. With no orders it is a no-op. Store failures
// are non-fatal: the streak is cosmetic, so the computed state falls back to
// a fresh streak of 1 and the error is returned for the caller to log.
func (t *Tracker) Update(ctx context.Context, orderCount int) (State, error) {
	if orderCount == 0 {
		return State{}, nil
	}

	today := t.now().Format(dateLayout)
	yesterday := t.now().AddDate(0, 0, -1).Format(dateLayout)

	lastDate, err := t.store.Get(ctx, keyLastOrderDate)
	if err != nil {
		// No readable history: start over at 1.
		state := State{Count: 1, LastOrderDate: today}
		return state, fmt.Errorf("failed to read streak state: %w", err)
	}

	switch lastDate {
	case yesterday:
		count := t.persistedCount(ctx) + 1
		state := State{Count: count, LastOrderDate: today}
		if err := t.persist(ctx, count, today); err != nil {
			return state, err
		}
		return state, nil

	case today:
		// Already recorded today; just reflect the persisted value.
		return State{Count: t.persistedCount(ctx), LastOrderDate: today}, nil

	default:
		state := State{Count: 1, LastOrderDate: today}
		if err := t.persist(ctx, 1, today); err != nil {
			return state, err
		}
		return state, nil
	}
}

func (t *Tracker) persistedCount(ctx context.Context) int {
	raw, err := t.store.Get(ctx, keyOrderStreak)
	if err != nil {
		return 1
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 {
		return 1
	}
	return count
}

func (t *Tracker) persist(ctx context.Context, count int, today string) error {
	if err := t.store.Set(ctx, keyOrderStreak, strconv.Itoa(count)); err != nil {
		return fmt.Errorf("failed to persist streak count: %w", err)
	}
	if err := t.store.Set(ctx, keyLastOrderDate, today); err != nil {
		return fmt.Errorf("failed to persist last order date: %w", err)
	}
	return nil
}
