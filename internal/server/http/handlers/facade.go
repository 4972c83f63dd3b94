package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
)

// AuthFacade resolves bearer tokens into callers.
type AuthFacade interface {
	ParseToken(token string) (model.Caller, error)
}

// OfferFacade encapsulates offer operations exposed via HTTP.
type OfferFacade interface {
	CreateOffer(ctx context.Context, caller model.Caller, fields model.OfferFields) (model.Offer, error)
	Offer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error)
	ActiveOffers(ctx context.Context, limit, offset int) ([]model.Offer, error)
	PlaceOffers(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Offer, error)
	UpdateOffer(ctx context.Context, caller model.Caller, id uuid.UUID, patch model.OfferPatch) (model.Offer, error)
	ActivateOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error)
	PauseOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error)
	CancelOffer(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error)
	ReserveOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error)
	ReleaseOffer(ctx context.Context, caller model.Caller, id uuid.UUID, qty int) (model.Offer, error)
	DeleteOffer(ctx context.Context, caller model.Caller, id uuid.UUID) error
}

// HealthFacade reports whether the backing storage answers.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// CatalogFacade aggregates the full set of operations used across handlers.
type CatalogFacade interface {
	AuthFacade
	OfferFacade
	HealthFacade
}
