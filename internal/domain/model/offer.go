package model

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
)

// OfferStatus describes the offer lifecycle.
type OfferStatus string

const (
	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusActive    OfferStatus = "active"
	OfferStatusPaused    OfferStatus = "paused"
	OfferStatusSoldOut   OfferStatus = "sold_out"
	OfferStatusExpired   OfferStatus = "expired"
	OfferStatusCancelled OfferStatus = "cancelled"
)

// ParseOfferStatus converts a wire value into a known status.
func ParseOfferStatus(s string) (OfferStatus, error) {
	status := OfferStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", domainErrors.Validation(domainErrors.ReasonInvalidStatus, "unknown status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the known statuses.
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusDraft, OfferStatusActive, OfferStatusPaused,
		OfferStatusSoldOut, OfferStatusExpired, OfferStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no operation may leave s.
func (s OfferStatus) Terminal() bool {
	return s == OfferStatusExpired || s == OfferStatusCancelled
}

const (
	TitleMinLength       = 3
	TitleMaxLength       = 120
	DescriptionMaxLength = 2000
)

// Offer is a partner-published listing with a pickup window and limited quantity.
type Offer struct {
	ID                uuid.UUID
	PlaceID           uuid.UUID
	Title             string
	Description       string
	Tags              []string
	Allergens         []string
	ImageURLs         []string
	Price             Money
	OriginalPrice     Money
	QuantityTotal     int
	QuantityAvailable int
	PickupStart       time.Time
	PickupEnd         time.Time
	ExpiresAt         *time.Time
	Status            OfferStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Deadline is the instant after which the offer auto-expires.
func (o Offer) Deadline() time.Time {
	if o.ExpiresAt != nil {
		return *o.ExpiresAt
	}
	return o.PickupEnd
}

// Reserved returns the number of units committed to customers.
func (o Offer) Reserved() int {
	return o.QuantityTotal - o.QuantityAvailable
}

// DiscountPercent returns the integer discount against the original price (0..100).
func (o Offer) DiscountPercent() int {
	if o.OriginalPrice.Amount.IsZero() || o.Price.Amount.GreaterThanOrEqual(o.OriginalPrice.Amount) {
		return 0
	}
	hundred := decimal.NewFromInt(100)
	ratio := decimal.NewFromInt(1).Sub(o.Price.Amount.Div(o.OriginalPrice.Amount)).Mul(hundred)
	return int(ratio.Round(0).IntPart())
}

// Validate checks every offer invariant against the whole snapshot.
func (o Offer) Validate() error {
	if n := utf8.RuneCountInString(o.Title); n < TitleMinLength || n > TitleMaxLength {
		return domainErrors.Validation(domainErrors.ReasonInvalidTitleLength, "title must be %d-%d characters, got %d", TitleMinLength, TitleMaxLength, n)
	}
	if n := utf8.RuneCountInString(o.Description); n > DescriptionMaxLength {
		return domainErrors.Validation(domainErrors.ReasonDescriptionTooLong, "description must be at most %d characters, got %d", DescriptionMaxLength, n)
	}

	if err := o.Price.validate(); err != nil {
		return err
	}
	if err := o.OriginalPrice.validate(); err != nil {
		return err
	}
	cmp, err := o.Price.Compare(o.OriginalPrice)
	if err != nil {
		return err
	}
	if cmp > 0 {
		return domainErrors.Validation(domainErrors.ReasonPriceExceedsOriginal, "price %s exceeds original price %s", o.Price, o.OriginalPrice)
	}

	if o.QuantityTotal < 1 {
		return domainErrors.Validation(domainErrors.ReasonInvalidQuantity, "quantity_total must be at least 1, got %d", o.QuantityTotal)
	}
	if o.QuantityAvailable < 0 || o.QuantityAvailable > o.QuantityTotal {
		return domainErrors.Validation(domainErrors.ReasonInvalidQuantity, "quantity_available %d outside [0, %d]", o.QuantityAvailable, o.QuantityTotal)
	}

	if !o.PickupEnd.After(o.PickupStart) {
		return domainErrors.Validation(domainErrors.ReasonInvalidPickupWindow, "pickup_end must be after pickup_start")
	}
	if o.ExpiresAt != nil && o.ExpiresAt.Before(o.PickupStart) {
		return domainErrors.Validation(domainErrors.ReasonInvalidPickupWindow, "expires_at cannot precede pickup_start")
	}

	if !o.Status.Valid() {
		return domainErrors.Validation(domainErrors.ReasonInvalidStatus, "unknown status %q", o.Status)
	}
	return nil
}

// Clone returns a deep copy so callers never share slices or pointers with stored snapshots.
func (o Offer) Clone() Offer {
	c := o
	c.Tags = slices.Clone(o.Tags)
	c.Allergens = slices.Clone(o.Allergens)
	c.ImageURLs = slices.Clone(o.ImageURLs)
	if o.ExpiresAt != nil {
		at := *o.ExpiresAt
		c.ExpiresAt = &at
	}
	return c
}

// SameBusinessState compares every field except UpdatedAt.
func (o Offer) SameBusinessState(other Offer) bool {
	return o.ID == other.ID &&
		o.PlaceID == other.PlaceID &&
		o.Title == other.Title &&
		o.Description == other.Description &&
		slices.Equal(o.Tags, other.Tags) &&
		slices.Equal(o.Allergens, other.Allergens) &&
		slices.Equal(o.ImageURLs, other.ImageURLs) &&
		o.Price.Equal(other.Price) &&
		o.OriginalPrice.Equal(other.OriginalPrice) &&
		o.QuantityTotal == other.QuantityTotal &&
		o.QuantityAvailable == other.QuantityAvailable &&
		o.PickupStart.Equal(other.PickupStart) &&
		o.PickupEnd.Equal(other.PickupEnd) &&
		equalTimePtr(o.ExpiresAt, other.ExpiresAt) &&
		o.Status == other.Status &&
		o.CreatedAt.Equal(other.CreatedAt)
}

// Equal compares every field including UpdatedAt.
func (o Offer) Equal(other Offer) bool {
	return o.SameBusinessState(other) && o.UpdatedAt.Equal(other.UpdatedAt)
}

// NormalizeSet trims, lower-cases and de-duplicates tag-like values, keeping first occurrences.
func NormalizeSet(values []string) []string {
	cleaned := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.ToLower(strings.TrimSpace(v))
		return v, v != ""
	})
	return lo.Uniq(cleaned)
}

// NormalizeList trims values and drops empty entries, preserving order.
func NormalizeList(values []string) []string {
	return lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	})
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
