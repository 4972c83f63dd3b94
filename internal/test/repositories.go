package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/domain/repository"
)

// OfferRepositoryStub fails every call with Err unless a function override is set.
type OfferRepositoryStub struct {
	Err      error
	GetFn    func(context.Context, uuid.UUID) (model.Offer, error)
	MutateFn func(context.Context, uuid.UUID, repository.MutateFunc) (model.Offer, error)
}

func (s *OfferRepositoryStub) Create(context.Context, model.Offer) error {
	return s.Err
}

func (s *OfferRepositoryStub) Get(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return model.Offer{}, s.Err
}

func (s *OfferRepositoryStub) Mutate(ctx context.Context, id uuid.UUID, fn repository.MutateFunc) (model.Offer, error) {
	if s.MutateFn != nil {
		return s.MutateFn(ctx, id, fn)
	}
	return model.Offer{}, s.Err
}

func (s *OfferRepositoryStub) Delete(context.Context, uuid.UUID, func(model.Offer) error) error {
	return s.Err
}

func (s *OfferRepositoryStub) ListActive(context.Context, time.Time, repository.Page) ([]model.Offer, error) {
	return nil, s.Err
}

func (s *OfferRepositoryStub) ListByPlace(context.Context, uuid.UUID, repository.Page) ([]model.Offer, error) {
	return nil, s.Err
}

var _ repository.OfferRepository = (*OfferRepositoryStub)(nil)
