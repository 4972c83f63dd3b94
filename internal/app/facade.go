package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/domain/repository"
	"github.com/tidex114/est-backend/internal/pkg/auth"
	"github.com/tidex114/est-backend/internal/usecase"
)

// CatalogFacade joins the use cases behind the HTTP handlers.
type CatalogFacade struct {
	offers  *usecase.OfferUseCase
	tokens  auth.Strategy
	storage repository.Factory
}

func NewCatalogFacade(offers *usecase.OfferUseCase, tokens auth.Strategy, storage repository.Factory) *CatalogFacade {
	return &CatalogFacade{offers: offers, tokens: tokens, storage: storage}
}

func (f *CatalogFacade) ParseToken(token string) (model.Caller, error) {
	return f.tokens.ParseToken(token)
}

func (f *CatalogFacade) CreateOffer(ctx context.Context, caller model.Caller, fields model.OfferFields) (model.Offer, error) {
	return f.offers.Create(ctx, caller, fields)
}

func (f *CatalogFacade) Offer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return f.offers.Get(ctx, caller, id)
}

func (f *CatalogFacade) ActiveOffers(ctx context.Context, limit, offset int) ([]model.Offer, error) {
	return f.offers.ListActive(ctx, limit, offset)
}

func (f *CatalogFacade) PlaceOffers(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Offer, error) {
	return f.offers.ListByPlace(ctx, caller, limit, offset)
}

func (f *CatalogFacade) UpdateOffer(ctx context.Context, caller model.Caller, id uuid.UUID, patch model.OfferPatch) (model.Offer, error) {
	return f.offers.Update(ctx, caller, id, patch)
}

func (f *CatalogFacade) ActivateOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return f.offers.Activate(ctx, caller, id)
}

func (f *CatalogFacade) PauseOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return f.offers.Pause(ctx, caller, id)
}

func (f *CatalogFacade) CancelOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error) {
	return f.offers.Cancel(ctx, caller, id)
}

func (f *CatalogFacade) ReserveOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	return f.offers.Reserve(ctx, caller, id, qty)
}

func (f *CatalogFacade) ReleaseOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error) {
	return f.offers.Release(ctx, caller, id, qty)
}

func (f *CatalogFacade) DeleteOffer(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	return f.offers.Delete(ctx, caller, id)
}

// HealthCheck reports whether the storage backend answers.
func (f *CatalogFacade) HealthCheck(ctx context.Context) error {
	return f.storage.HealthCheck(ctx)
}
