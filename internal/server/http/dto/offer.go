package dto

import "time"

// Money is an amount rendered as a decimal string to keep cents exact.
type Money struct {
	Amount   string `json:"amount" binding:"required,numeric"`
	Currency string `json:"currency,omitempty" binding:"omitempty,currency"`
}

// CreateOfferRequest describes a new draft offer.
type CreateOfferRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	Allergens     []string   `json:"allergens"`
	ImageURLs     []string   `json:"image_urls" binding:"omitempty,dive,omitempty,url"`
	Price         Money      `json:"price"`
	OriginalPrice Money      `json:"original_price"`
	QuantityTotal int        `json:"quantity_total"`
	PickupStart   *time.Time `json:"pickup_start" binding:"required"`
	PickupEnd     *time.Time `json:"pickup_end" binding:"required"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// UpdateOfferRequest is a partial update; absent fields stay untouched.
type UpdateOfferRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Tags              *[]string  `json:"tags"`
	Allergens         *[]string  `json:"allergens"`
	ImageURLs         *[]string  `json:"image_urls" binding:"omitempty,dive,omitempty,url"`
	Price             *Money     `json:"price"`
	OriginalPrice     *Money     `json:"original_price"`
	QuantityTotal     *int       `json:"quantity_total"`
	QuantityAvailable *int       `json:"quantity_available"`
	PickupStart       *time.Time `json:"pickup_start"`
	PickupEnd         *time.Time `json:"pickup_end"`
	ExpiresAt         *time.Time `json:"expires_at"`
	ClearExpiresAt    bool       `json:"clear_expires_at"`
	Status            *string    `json:"status"`
}

// QuantityRequest carries the unit count of a reserve or release call.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PageQuery holds listing bounds from the query string.
type PageQuery struct {
	Limit  int `form:"limit" binding:"min=0"`
	Offset int `form:"offset" binding:"min=0"`
}

// OfferResponse is the public representation of an offer.
type OfferResponse struct {
	ID                string     `json:"id"`
	PlaceID           string     `json:"place_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Tags              []string   `json:"tags"`
	Allergens         []string   `json:"allergens"`
	ImageURLs         []string   `json:"image_urls"`
	Price             Money      `json:"price"`
	OriginalPrice     Money      `json:"original_price"`
	DiscountPercent   int        `json:"discount_percent"`
	QuantityTotal     int        `json:"quantity_total"`
	QuantityAvailable int        `json:"quantity_available"`
	PickupStart       time.Time  `json:"pickup_start"`
	PickupEnd         time.Time  `json:"pickup_end"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports the service status.
type HealthResponse struct {
	Status string `json:"status"`
}
