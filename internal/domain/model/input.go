package model

import "time"

// OfferFields is the partner-supplied content of a new offer.
type OfferFields struct {
	Title         string
	Description   string
	Tags          []string
	Allergens     []string
	ImageURLs     []string
	Price         Money
	OriginalPrice Money
	QuantityTotal int
	PickupStart   time.Time
	PickupEnd     time.Time
	ExpiresAt     *time.Time
}

// OfferPatch is a partial update; nil fields are left untouched. A price with
// an empty currency keeps the stored one. ClearExpiresAt drops the early deadline.
type OfferPatch struct {
	Title             *string
	Description       *string
	Tags              *[]string
	Allergens         *[]string
	ImageURLs         *[]string
	Price             *Money
	OriginalPrice     *Money
	QuantityTotal     *int
	QuantityAvailable *int
	PickupStart       *time.Time
	PickupEnd         *time.Time
	ExpiresAt         *time.Time
	ClearExpiresAt    bool
	Status            *OfferStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p OfferPatch) IsEmpty() bool {
	return p == OfferPatch{}
}

// PatchFromOffer builds a patch that restates every mutable field of o.
func PatchFromOffer(o Offer) OfferPatch {
	o = o.Clone()
	return OfferPatch{
		Title:             &o.Title,
		Description:       &o.Description,
		Tags:              &o.Tags,
		Allergens:         &o.Allergens,
		ImageURLs:         &o.ImageURLs,
		Price:             &o.Price,
		OriginalPrice:     &o.OriginalPrice,
		QuantityTotal:     &o.QuantityTotal,
		QuantityAvailable: &o.QuantityAvailable,
		PickupStart:       &o.PickupStart,
		PickupEnd:         &o.PickupEnd,
		ExpiresAt:         o.ExpiresAt,
		Status:            &o.Status,
	}
}
