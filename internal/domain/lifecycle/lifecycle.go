// Package lifecycle holds the offer state machine. Every function is pure: it
// receives a snapshot and returns the next one, leaving persistence to the caller.
//
// On failure the returned offer is the snapshot that must be kept. It is the
// input unchanged, or its expired form when an expiry was detected along the way.
package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
)

// IsExpired reports whether the offer deadline has been reached at now.
func IsExpired(o model.Offer, now time.Time) bool {
	return !now.Before(o.Deadline())
}

// Refresh expires a live offer whose deadline has passed. The flag reports a change.
func Refresh(o model.Offer, now time.Time) (model.Offer, bool) {
	if !isLive(o.Status) || !IsExpired(o, now) {
		return o, false
	}
	return expire(o, now), true
}

// Create builds a draft offer owned by the caller's place.
func Create(fields model.OfferFields, caller model.Caller, id uuid.UUID, now time.Time) (model.Offer, error) {
	if !caller.HasPlace() {
		return model.Offer{}, &domainErrors.AuthorizationError{Detail: "only partners bound to a place can create offers"}
	}

	now = now.UTC()
	if fields.PickupStart.Before(now) {
		return model.Offer{}, domainErrors.Validation(domainErrors.ReasonInvalidPickupWindow, "pickup_start %s is already in the past", fields.PickupStart.UTC().Format(time.RFC3339))
	}
	o := model.Offer{
		ID:                id,
		PlaceID:           caller.PlaceID,
		Title:             strings.TrimSpace(fields.Title),
		Description:       strings.TrimSpace(fields.Description),
		Tags:              model.NormalizeSet(fields.Tags),
		Allergens:         model.NormalizeSet(fields.Allergens),
		ImageURLs:         model.NormalizeList(fields.ImageURLs),
		Price:             fields.Price,
		OriginalPrice:     fields.OriginalPrice,
		QuantityTotal:     fields.QuantityTotal,
		QuantityAvailable: fields.QuantityTotal,
		PickupStart:       fields.PickupStart.UTC(),
		PickupEnd:         fields.PickupEnd.UTC(),
		ExpiresAt:         utcPtr(fields.ExpiresAt),
		Status:            model.OfferStatusDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := o.Validate(); err != nil {
		return model.Offer{}, err
	}
	return o, nil
}

// Update applies a partial patch, including an optional status request.
func Update(o model.Offer, patch model.OfferPatch, caller model.Caller, now time.Time) (model.Offer, error) {
	if !caller.Owns(o) {
		return o, notOwner()
	}
	current, _ := Refresh(o, now)
	if current.Status.Terminal() {
		return current, notAvailable(current)
	}

	next := current.Clone()
	if err := merge(&next, patch); err != nil {
		return current, err
	}
	settle(&next)

	if patch.Status != nil && *patch.Status != next.Status {
		to := *patch.Status
		if !to.Valid() {
			return current, domainErrors.Validation(domainErrors.ReasonInvalidStatus, "unknown status %q", to)
		}
		if !CanRequest(next.Status, to) {
			return current, &domainErrors.InvalidTransitionError{From: string(next.Status), To: string(to)}
		}
		next.Status = to
		settle(&next)
	}

	if isLive(next.Status) && IsExpired(next, now) {
		if !next.Deadline().Equal(current.Deadline()) {
			return current, domainErrors.Validation(domainErrors.ReasonInvalidPickupWindow, "deadline %s is already in the past", next.Deadline().Format(time.RFC3339))
		}
		expired := expire(current, now)
		return expired, notAvailable(expired)
	}

	if err := next.Validate(); err != nil {
		return current, err
	}
	if next.SameBusinessState(current) {
		return current, nil
	}
	touch(&next, now)
	return next, nil
}

// Activate publishes a draft or resumes a paused offer.
func Activate(o model.Offer, caller model.Caller, now time.Time) (model.Offer, error) {
	return transition(o, caller, model.OfferStatusActive, now)
}

// Pause hides an active offer from customers.
func Pause(o model.Offer, caller model.Caller, now time.Time) (model.Offer, error) {
	return transition(o, caller, model.OfferStatusPaused, now)
}

// Cancel withdraws an active or paused offer for good.
func Cancel(o model.Offer, caller model.Caller, now time.Time) (model.Offer, error) {
	return transition(o, caller, model.OfferStatusCancelled, now)
}

// Reserve takes qty units all-or-nothing.
func Reserve(o model.Offer, qty int, now time.Time) (model.Offer, error) {
	if qty < 1 {
		return o, invalidQuantity(qty)
	}
	current, _ := Refresh(o, now)
	switch current.Status {
	case model.OfferStatusActive:
	case model.OfferStatusSoldOut:
		return current, &domainErrors.InsufficientQuantityError{Requested: qty, Available: 0}
	default:
		return current, notAvailable(current)
	}
	if qty > current.QuantityAvailable {
		return current, &domainErrors.InsufficientQuantityError{Requested: qty, Available: current.QuantityAvailable}
	}

	next := current.Clone()
	next.QuantityAvailable -= qty
	settle(&next)
	touch(&next, now)
	return next, nil
}

// Release returns qty reserved units to the offer's stock. Only the owning
// place may do it: no reservation record ties units to a customer, so a
// customer-driven release could hand out units someone else holds.
func Release(o model.Offer, qty int, caller model.Caller, now time.Time) (model.Offer, error) {
	if !caller.Owns(o) {
		return o, notOwner()
	}
	if qty < 1 {
		return o, invalidQuantity(qty)
	}
	current, _ := Refresh(o, now)
	if current.Status.Terminal() {
		return current, notAvailable(current)
	}

	next := current.Clone()
	next.QuantityAvailable = min(next.QuantityTotal, next.QuantityAvailable+qty)
	settle(&next)
	if next.SameBusinessState(current) {
		return current, nil
	}
	touch(&next, now)
	return next, nil
}

// CheckDelete reports whether the caller may remove the offer.
func CheckDelete(o model.Offer, caller model.Caller) error {
	if !caller.Owns(o) {
		return notOwner()
	}
	if o.Status == model.OfferStatusDraft || o.QuantityAvailable == o.QuantityTotal {
		return nil
	}
	return &domainErrors.ConflictError{Detail: "offer has outstanding reservations"}
}

func transition(o model.Offer, caller model.Caller, to model.OfferStatus, now time.Time) (model.Offer, error) {
	if !caller.Owns(o) {
		return o, notOwner()
	}
	current, _ := Refresh(o, now)
	if current.Status.Terminal() {
		return current, notAvailable(current)
	}
	if current.Status == to {
		return current, nil
	}
	if !CanRequest(current.Status, to) {
		return current, &domainErrors.InvalidTransitionError{From: string(current.Status), To: string(to)}
	}
	if to == model.OfferStatusActive && IsExpired(current, now) {
		expired := expire(current, now)
		return expired, notAvailable(expired)
	}

	next := current.Clone()
	next.Status = to
	settle(&next)
	touch(&next, now)
	return next, nil
}

func merge(next *model.Offer, p model.OfferPatch) error {
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Tags != nil {
		next.Tags = model.NormalizeSet(*p.Tags)
	}
	if p.Allergens != nil {
		next.Allergens = model.NormalizeSet(*p.Allergens)
	}
	if p.ImageURLs != nil {
		next.ImageURLs = model.NormalizeList(*p.ImageURLs)
	}
	if p.Price != nil {
		next.Price = inheritCurrency(*p.Price, next.Price)
	}
	if p.OriginalPrice != nil {
		next.OriginalPrice = inheritCurrency(*p.OriginalPrice, next.OriginalPrice)
	}
	if p.PickupStart != nil {
		next.PickupStart = p.PickupStart.UTC()
	}
	if p.PickupEnd != nil {
		next.PickupEnd = p.PickupEnd.UTC()
	}
	switch {
	case p.ClearExpiresAt && p.ExpiresAt != nil:
		return domainErrors.Validation(domainErrors.ReasonInvalidPickupWindow, "expires_at cannot be set and cleared at once")
	case p.ClearExpiresAt:
		next.ExpiresAt = nil
	case p.ExpiresAt != nil:
		next.ExpiresAt = utcPtr(p.ExpiresAt)
	}

	if p.QuantityTotal != nil {
		total := *p.QuantityTotal
		reserved := next.Reserved()
		if reserved > total {
			return domainErrors.Validation(domainErrors.ReasonInvalidQuantity, "quantity_total %d is below %d reserved units", total, reserved)
		}
		next.QuantityTotal = total
		next.QuantityAvailable = total - reserved
	}
	if p.QuantityAvailable != nil {
		next.QuantityAvailable = *p.QuantityAvailable
	}
	return nil
}

// inheritCurrency keeps the stored currency when a patch only carries an amount.
func inheritCurrency(patched, stored model.Money) model.Money {
	if patched.Currency == "" {
		patched.Currency = stored.Currency
	}
	return patched
}

// settle applies the quantity-driven edges.
func settle(o *model.Offer) {
	switch {
	case o.Status == model.OfferStatusActive && o.QuantityAvailable == 0:
		advance(o, model.OfferStatusSoldOut)
	case o.Status == model.OfferStatusSoldOut && o.QuantityAvailable > 0:
		advance(o, model.OfferStatusActive)
	}
}

func expire(o model.Offer, now time.Time) model.Offer {
	next := o.Clone()
	advance(&next, model.OfferStatusExpired)
	touch(&next, now)
	return next
}

func advance(o *model.Offer, to model.OfferStatus) {
	if CanAdvance(o.Status, to) {
		o.Status = to
	}
}

// touch moves UpdatedAt forward, never back.
func touch(o *model.Offer, now time.Time) {
	now = now.UTC()
	if now.After(o.UpdatedAt) {
		o.UpdatedAt = now
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func notOwner() error {
	return &domainErrors.AuthorizationError{Detail: "caller does not manage the offer's place"}
}

func notAvailable(o model.Offer) error {
	return &domainErrors.NotAvailableError{Status: string(o.Status)}
}

func invalidQuantity(qty int) error {
	return domainErrors.Validation(domainErrors.ReasonInvalidQuantity, "quantity must be at least 1, got %d", qty)
}
