package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
)

// MutateFunc receives the locked current snapshot and returns the next one.
// next is written when persist is true, even if err is set.
type MutateFunc func(current model.Offer) (next model.Offer, persist bool, err error)

// Page bounds a listing.
type Page struct {
	Limit  int
	Offset int
}

// OfferRepository describes persistence operations with offers.
type OfferRepository interface {
	Create(ctx context.Context, offer model.Offer) error
	Get(ctx context.Context, id uuid.UUID) (model.Offer, error)
	// Mutate runs fn under a lock scoped to one offer id. The change commits when
	// fn succeeds or asks to persist. It returns the stored snapshot and fn's error.
	Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (model.Offer, error)
	// Delete removes the offer when guard, run under the same lock, allows it.
	Delete(ctx context.Context, id uuid.UUID, guard func(model.Offer) error) error
	// ListActive returns active offers whose deadline is after now, soonest pickup_end first.
	ListActive(ctx context.Context, now time.Time, page Page) ([]model.Offer, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID, page Page) ([]model.Offer, error)
}
