package lifecycle

import (
	"slices"

	"github.com/tidex114/est-backend/internal/domain/model"
)

// requestable lists the edges a partner may ask for explicitly.
var requestable = map[model.OfferStatus][]model.OfferStatus{
	model.OfferStatusDraft:  {model.OfferStatusActive},
	model.OfferStatusActive: {model.OfferStatusPaused, model.OfferStatusCancelled},
	model.OfferStatusPaused: {model.OfferStatusActive, model.OfferStatusCancelled},
}

// automatic lists the edges the engine takes on its own: stock changes and expiry.
// A draft only expires when someone tries to activate it past its deadline.
var automatic = map[model.OfferStatus][]model.OfferStatus{
	model.OfferStatusDraft:   {model.OfferStatusExpired},
	model.OfferStatusActive:  {model.OfferStatusSoldOut, model.OfferStatusExpired},
	model.OfferStatusPaused:  {model.OfferStatusExpired},
	model.OfferStatusSoldOut: {model.OfferStatusActive, model.OfferStatusExpired},
}

// CanRequest reports whether from -> to is an edge a caller may request.
func CanRequest(from, to model.OfferStatus) bool {
	return slices.Contains(requestable[from], to)
}

// CanAdvance reports whether the engine may move from -> to without a request.
func CanAdvance(from, to model.OfferStatus) bool {
	return slices.Contains(automatic[from], to)
}

func isLive(s model.OfferStatus) bool {
	return s == model.OfferStatusActive || s == model.OfferStatusPaused || s == model.OfferStatusSoldOut
}
