package test

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
)

// OfferFacadeStub provides controllable behaviour for offer endpoints.
// Unset functions answer with a zero offer or ErrNotFound.
type OfferFacadeStub struct {
	CreateFn      func(context.Context, model.Caller, model.OfferFields) (model.Offer, error)
	GetFn         func(context.Context, model.Caller, uuid.UUID) (model.Offer, error)
	ListActiveFn  func(context.Context, int, int) ([]model.Offer, error)
	ListByPlaceFn func(context.Context, model.Caller, int, int) ([]model.Offer, error)
	UpdateFn      func(context.Context, model.Caller, uuid.UUID, model.OfferPatch) (model.Offer, error)
	TransitionFn  func(context.Context, string, model.Caller, uuid.UUID) (model.Offer, error)
	ReserveFn     func(context.Context, model.Caller, uuid.UUID, int) (model.Offer, error)
	ReleaseFn     func(context.Context, model.Caller, uuid.UUID, int) (model.Offer, error)
	DeleteFn      func(context.Context, model.Caller, uuid.UUID) error
}

func (s OfferFacadeStub) CreateOffer(ctx context.Context, caller model.Caller, fields model.OfferFields) (model.Offer, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller, fields)
	}
	return model.Offer{ID: uuid.New(), PlaceID: caller.PlaceID, Title: fields.Title, Status: model.OfferStatusDraft}, nil
}

func (s OfferFacadeStub) Offer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, caller, id)
	}
	return model.Offer{}, domainErrors.ErrNotFound
}

func (s OfferFacadeStub) ActiveOffers(ctx context.Context, limit, offset int) ([]model.Offer, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx, limit, offset)
	}
	return []model.Offer{}, nil
}

func (s OfferFacadeStub) PlaceOffers(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Offer, error) {
	if s.ListByPlaceFn != nil {
		return s.ListByPlaceFn(ctx, caller, limit, offset)
	}
	return []model.Offer{}, nil
}

func (s OfferFacadeStub) UpdateOffer(ctx context.Context, caller model.Caller, id uuid.UUID, patch model.OfferPatch) (model.Offer, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, id, patch)
	}
	return model.Offer{}, domainErrors.ErrNotFound
}

func (s OfferFacadeStub) ActivateOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return s.transition(ctx, "activate", caller, id)
}

func (s OfferFacadeStub) PauseOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return s.transition(ctx, "pause", caller, id)
}

func (s OfferFacadeStub) CancelOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return s.transition(ctx, "cancel", caller, id)
}

func (s OfferFacadeStub) transition(ctx context.Context, name string, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, name, caller, id)
	}
	return model.Offer{}, domainErrors.ErrNotFound
}

func (s OfferFacadeStub) ReserveOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, caller, id, qty)
	}
	return model.Offer{}, domainErrors.ErrNotFound
}

func (s OfferFacadeStub) ReleaseOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, caller, id, qty)
	}
	return model.Offer{}, domainErrors.ErrNotFound
}

func (s OfferFacadeStub) DeleteOffer(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, caller, id)
	}
	return domainErrors.ErrNotFound
}

// HealthFacadeStub reports a fixed health result.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// CatalogFacadeStub aggregates facade dependencies for HTTP layer tests.
type CatalogFacadeStub struct {
	TokenParserStub
	OfferFacadeStub
	HealthFacadeStub
}
