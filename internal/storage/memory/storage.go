// Package memory keeps offers in process memory. It serves local runs and tests
// and honours the same per-offer atomicity contract as the PostgreSQL driver.
package memory

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/domain/repository"
)

// Storage is an in-memory repository facade.
type Storage struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	logger  *slog.Logger
}

// entry serialises writers of a single offer.
type entry struct {
	mu      sync.Mutex
	offer   model.Offer
	deleted bool
}

type offerRepository struct {
	storage *Storage
}

// New creates an empty storage.
func New(logger *slog.Logger) *Storage {
	return &Storage{entries: make(map[uuid.UUID]*entry), logger: logger}
}

// Offers returns the offer repository.
func (s *Storage) Offers() repository.OfferRepository {
	return &offerRepository{storage: s}
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Storage) Close() {}

func (s *Storage) lookup(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Storage) snapshot() []*entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

func (r *offerRepository) Create(ctx context.Context, offer model.Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[offer.ID]; ok {
		return &domainErrors.ConflictError{Detail: "offer " + offer.ID.String() + " already exists"}
	}
	s.entries[offer.ID] = &entry{offer: offer.Clone()}
	return nil
}

func (r *offerRepository) Get(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	if err := ctx.Err(); err != nil {
		return model.Offer{}, err
	}
	e, ok := r.storage.lookup(id)
	if !ok {
		return model.Offer{}, domainErrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return model.Offer{}, domainErrors.ErrNotFound
	}
	return e.offer.Clone(), nil
}

func (r *offerRepository) Mutate(ctx context.Context, id uuid.UUID, fn repository.MutateFunc) (model.Offer, error) {
	e, ok := r.storage.lookup(id)
	if !ok {
		return model.Offer{}, domainErrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return model.Offer{}, domainErrors.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return model.Offer{}, err
	}

	current := e.offer.Clone()
	next, persist, err := fn(current)
	if !persist {
		return current, err
	}
	e.offer = next.Clone()
	return next, err
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID, guard func(model.Offer) error) error {
	s := r.storage
	e, ok := s.lookup(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return domainErrors.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := guard(e.offer.Clone()); err != nil {
		return err
	}

	e.deleted = true
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	s.logger.Debug("offer removed from memory", slog.String("offer_id", id.String()))
	return nil
}

func (r *offerRepository) ListActive(ctx context.Context, now time.Time, page repository.Page) ([]model.Offer, error) {
	offers, err := r.collect(ctx, func(o model.Offer) bool {
		return o.Status == model.OfferStatusActive && now.Before(o.Deadline())
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(offers, func(a, b model.Offer) int {
		if c := a.PickupEnd.Compare(b.PickupEnd); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return paginate(offers, page), nil
}

func (r *offerRepository) ListByPlace(ctx context.Context, placeID uuid.UUID, page repository.Page) ([]model.Offer, error) {
	offers, err := r.collect(ctx, func(o model.Offer) bool { return o.PlaceID == placeID })
	if err != nil {
		return nil, err
	}
	slices.SortFunc(offers, func(a, b model.Offer) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return paginate(offers, page), nil
}

func (r *offerRepository) collect(ctx context.Context, keep func(model.Offer) bool) ([]model.Offer, error) {
	var out []model.Offer
	for _, e := range r.storage.snapshot() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.mu.Lock()
		if !e.deleted && keep(e.offer) {
			out = append(out, e.offer.Clone())
		}
		e.mu.Unlock()
	}
	return out, nil
}

func paginate(offers []model.Offer, page repository.Page) []model.Offer {
	if page.Offset >= len(offers) {
		return []model.Offer{}
	}
	offers = offers[max(page.Offset, 0):]
	if page.Limit > 0 && page.Limit < len(offers) {
		offers = offers[:page.Limit]
	}
	return offers
}
