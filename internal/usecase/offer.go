package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/clock"
	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/lifecycle"
	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/domain/repository"
	"github.com/tidex114/est-backend/internal/logger"
)

// Operation names used in logs and metrics.
const (
	OpCreate      = "create"
	OpGet         = "get"
	OpListActive  = "list_active"
	OpListByPlace = "list_by_place"
	OpUpdate      = "update"
	OpActivate    = "activate"
	OpPause       = "pause"
	OpCancel      = "cancel"
	OpReserve     = "reserve"
	OpRelease     = "release"
	OpDelete      = "delete"
)

// MetricsRecorder receives the outcome of every offer operation.
type MetricsRecorder interface {
	ObserveOperation(operation string, err error)
	ObserveReserved(units int)
	ObserveReleased(units int)
}

// IDGenerator assigns ids to new offers.
type IDGenerator func() uuid.UUID

// OfferUseCase runs lifecycle operations against stored offers.
type OfferUseCase struct {
	offers  repository.OfferRepository
	clock   clock.Clock
	newID   IDGenerator
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewOfferUseCase constructs OfferUseCase.
func NewOfferUseCase(offers repository.OfferRepository, clk clock.Clock, metrics MetricsRecorder, logger *slog.Logger) *OfferUseCase {
	return newOfferUseCase(offers, clk, uuid.New, metrics, logger)
}

func newOfferUseCase(offers repository.OfferRepository, clk clock.Clock, newID IDGenerator, metrics MetricsRecorder, logger *slog.Logger) *OfferUseCase {
	return &OfferUseCase{offers: offers, clock: clk, newID: newID, metrics: metrics, logger: logger}
}

// Create stores a new draft offer for the caller's place.
func (u *OfferUseCase) Create(ctx context.Context, caller model.Caller, fields model.OfferFields) (model.Offer, error) {
	offer, err := lifecycle.Create(fields, caller, u.newID(), u.clock.Now())
	if err == nil {
		err = u.offers.Create(ctx, offer)
	}
	u.observe(OpCreate, offer.ID, err)
	if err != nil {
		return model.Offer{}, err
	}
	return offer, nil
}

// Get returns the offer, persisting a lazily detected expiry. Drafts are only
// visible to the owning place.
func (u *OfferUseCase) Get(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	offer, err := u.get(ctx, id)
	if err == nil && offer.Status == model.OfferStatusDraft && !caller.Owns(offer) {
		err = domainErrors.ErrNotFound
	}
	u.observe(OpGet, id, err)
	if err != nil {
		return model.Offer{}, err
	}
	return offer, nil
}

// ListActive returns reservable offers, soonest pickup first.
func (u *OfferUseCase) ListActive(ctx context.Context, limit, offset int) ([]model.Offer, error) {
	offers, err := u.offers.ListActive(ctx, u.clock.Now(), NormalizePage(limit, offset))
	u.observe(OpListActive, uuid.Nil, err)
	return offers, err
}

// ListByPlace returns every offer of the caller's place, newest first.
func (u *OfferUseCase) ListByPlace(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Offer, error) {
	offers, err := u.listByPlace(ctx, caller, NormalizePage(limit, offset))
	u.observe(OpListByPlace, uuid.Nil, err)
	return offers, err
}

func (u *OfferUseCase) listByPlace(ctx context.Context, caller model.Caller, page repository.Page) ([]model.Offer, error) {
	if !caller.HasPlace() {
		return nil, &domainErrors.AuthorizationError{Detail: "caller is not bound to a place"}
	}
	offers, err := u.offers.ListByPlace(ctx, caller.PlaceID, page)
	if err != nil {
		return nil, err
	}
	now := u.clock.Now()
	for i, o := range offers {
		if _, changed := lifecycle.Refresh(o, now); !changed {
			continue
		}
		if offers[i], err = u.refresh(ctx, o, now); err != nil {
			return nil, err
		}
	}
	return offers, nil
}

// Update applies a partial patch, optionally requesting a status change.
func (u *OfferUseCase) Update(ctx context.Context, caller model.Caller, id uuid.UUID, patch model.OfferPatch) (model.Offer, error) {
	return u.mutate(ctx, OpUpdate, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		return lifecycle.Update(cur, patch, caller, now)
	})
}

// Activate publishes a draft or resumes a paused offer.
func (u *OfferUseCase) Activate(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return u.mutate(ctx, OpActivate, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		return lifecycle.Activate(cur, caller, now)
	})
}

// Pause hides an active offer.
func (u *OfferUseCase) Pause(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return u.mutate(ctx, OpPause, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		return lifecycle.Pause(cur, caller, now)
	})
}

// Cancel withdraws an offer for good.
func (u *OfferUseCase) Cancel(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return u.mutate(ctx, OpCancel, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		return lifecycle.Cancel(cur, caller, now)
	})
}

// Reserve takes qty units of the offer for the caller.
func (u *OfferUseCase) Reserve(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	offer, err := u.mutate(ctx, OpReserve, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		return lifecycle.Reserve(cur, qty, now)
	})
	if err == nil {
		u.metrics.ObserveReserved(qty)
		u.logger.Info("units reserved",
			slog.String("offer_id", id.String()),
			slog.String("caller_id", caller.ID.String()),
			slog.Int("quantity", qty),
			slog.Int("available", offer.QuantityAvailable),
		)
	}
	return offer, err
}

// Release lets the owning place return up to qty reserved units, for example
// after a pickup was called off. Only the units actually returned are counted.
func (u *OfferUseCase) Release(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	var returned int
	offer, err := u.mutate(ctx, OpRelease, id, func(cur model.Offer, now time.Time) (model.Offer, error) {
		next, err := lifecycle.Release(cur, qty, caller, now)
		returned = next.QuantityAvailable - cur.QuantityAvailable
		return next, err
	})
	if err == nil && returned > 0 {
		u.metrics.ObserveReleased(returned)
		u.logger.Info("units released",
			slog.String("offer_id", id.String()),
			slog.String("caller_id", caller.ID.String()),
			slog.Int("requested", qty),
			slog.Int("returned", returned),
			slog.Int("available", offer.QuantityAvailable),
		)
	}
	return offer, err
}

// Delete removes an offer without outstanding reservations.
func (u *OfferUseCase) Delete(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	err := u.offers.Delete(ctx, id, func(cur model.Offer) error {
		return lifecycle.CheckDelete(cur, caller)
	})
	u.observe(OpDelete, id, err)
	return err
}

func (u *OfferUseCase) get(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	offer, err := u.offers.Get(ctx, id)
	if err != nil {
		return model.Offer{}, err
	}
	now := u.clock.Now()
	if _, changed := lifecycle.Refresh(offer, now); !changed {
		return offer, nil
	}
	return u.refresh(ctx, offer, now)
}

// refresh persists an expiry that a read noticed.
func (u *OfferUseCase) refresh(ctx context.Context, offer model.Offer, now time.Time) (model.Offer, error) {
	return u.offers.Mutate(ctx, offer.ID, func(cur model.Offer) (model.Offer, bool, error) {
		next, changed := lifecycle.Refresh(cur, now)
		return next, changed, nil
	})
}

func (u *OfferUseCase) mutate(ctx context.Context, op string, id uuid.UUID, step func(model.Offer, time.Time) (model.Offer, error)) (model.Offer, error) {
	now := u.clock.Now()
	offer, err := u.offers.Mutate(ctx, id, func(cur model.Offer) (model.Offer, bool, error) {
		next, err := step(cur, now)
		return next, !next.Equal(cur), err
	})
	u.observe(op, id, err)
	return offer, err
}

func (u *OfferUseCase) observe(op string, id uuid.UUID, err error) {
	u.metrics.ObserveOperation(op, err)

	attrs := []any{slog.String("operation", op)}
	if id != uuid.Nil {
		attrs = append(attrs, slog.String("offer_id", id.String()))
	}
	switch {
	case err == nil:
		u.logger.Debug("offer operation succeeded", attrs...)
	case domainErrors.IsBusiness(err):
		u.logger.Debug("offer operation rejected", append(attrs, slog.String("kind", domainErrors.Kind(err)), logger.Err(err))...)
	default:
		u.logger.Warn("offer operation failed", append(attrs, logger.Err(err))...)
	}
}
