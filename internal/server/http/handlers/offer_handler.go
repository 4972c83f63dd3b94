package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/server/http/dto"
)

// OfferHandler manages offer endpoints for customers and partners.
type OfferHandler struct {
	facade          OfferFacade
	defaultCurrency string
}

// NewOfferHandler constructs OfferHandler. Money payloads without a currency
// use defaultCurrency.
func NewOfferHandler(facade OfferFacade, defaultCurrency string) *OfferHandler {
	return &OfferHandler{facade: facade, defaultCurrency: defaultCurrency}
}

// ListActive handles GET /api/v1/offers.
func (h *OfferHandler) ListActive(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, "invalid pagination")
		return
	}
	offers, err := h.facade.ActiveOffers(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(offers, func(o model.Offer, _ int) dto.OfferResponse { return toOfferResponse(o) }))
}

// Get handles GET /api/v1/offers/:id.
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	offer, err := h.facade.Offer(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Reserve handles POST /api/v1/offers/:id/reserve.
func (h *OfferHandler) Reserve(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed body")
		return
	}
	offer, err := h.facade.ReserveOffer(c.Request.Context(), CurrentCaller(c), id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Release handles POST /api/v1/partner/offers/:id/release.
func (h *OfferHandler) Release(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed body")
		return
	}
	offer, err := h.facade.ReleaseOffer(c.Request.Context(), CurrentCaller(c), id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Create handles POST /api/v1/partner/offers.
func (h *OfferHandler) Create(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed body")
		return
	}
	fields, err := h.toFields(req)
	if err != nil {
		writeError(c, err)
		return
	}
	offer, err := h.facade.CreateOffer(c.Request.Context(), CurrentCaller(c), fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", "/api/v1/offers/"+offer.ID.String())
	c.JSON(http.StatusCreated, toOfferResponse(offer))
}

// ListMine handles GET /api/v1/partner/offers.
func (h *OfferHandler) ListMine(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, "invalid pagination")
		return
	}
	offers, err := h.facade.PlaceOffers(c.Request.Context(), CurrentCaller(c), page.Limit, page.Offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(offers, func(o model.Offer, _ int) dto.OfferResponse { return toOfferResponse(o) }))
}

// Update handles PATCH /api/v1/partner/offers/:id.
func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed body")
		return
	}
	patch, err := h.toPatch(req)
	if err != nil {
		writeError(c, err)
		return
	}
	offer, err := h.facade.UpdateOffer(c.Request.Context(), CurrentCaller(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Activate handles POST /api/v1/partner/offers/:id/activate.
func (h *OfferHandler) Activate(c *gin.Context) {
	h.transition(c, h.facade.ActivateOffer)
}

// Pause handles POST /api/v1/partner/offers/:id/pause.
func (h *OfferHandler) Pause(c *gin.Context) {
	h.transition(c, h.facade.PauseOffer)
}

// Cancel handles POST /api/v1/partner/offers/:id/cancel.
func (h *OfferHandler) Cancel(c *gin.Context) {
	h.transition(c, h.facade.CancelOffer)
}

// Delete handles DELETE /api/v1/partner/offers/:id.
func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteOffer(c.Request.Context(), CurrentCaller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transitionFunc func(ctx context.Context, caller model.Caller, id uuid.UUID) (model.Offer, error)

func (h *OfferHandler) transition(c *gin.Context, fn transitionFunc) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	offer, err := fn(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOfferResponse(offer))
}

func (h *OfferHandler) money(m dto.Money) (model.Money, error) {
	currency := strings.TrimSpace(m.Currency)
	if currency == "" {
		currency = h.defaultCurrency
	}
	return model.ParseMoney(m.Amount, currency)
}

// patchMoney leaves the currency empty when the payload omits it so the
// offer keeps its own.
func patchMoney(m dto.Money) (model.Money, error) {
	currency := strings.TrimSpace(m.Currency)
	if currency == "" {
		return model.ParseAmount(m.Amount)
	}
	return model.ParseMoney(m.Amount, currency)
}

func (h *OfferHandler) toFields(req dto.CreateOfferRequest) (model.OfferFields, error) {
	price, err := h.money(req.Price)
	if err != nil {
		return model.OfferFields{}, err
	}
	original, err := h.money(req.OriginalPrice)
	if err != nil {
		return model.OfferFields{}, err
	}
	return model.OfferFields{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		Allergens:     req.Allergens,
		ImageURLs:     req.ImageURLs,
		Price:         price,
		OriginalPrice: original,
		QuantityTotal: req.QuantityTotal,
		PickupStart:   *req.PickupStart,
		PickupEnd:     *req.PickupEnd,
		ExpiresAt:     req.ExpiresAt,
	}, nil
}

func (h *OfferHandler) toPatch(req dto.UpdateOfferRequest) (model.OfferPatch, error) {
	patch := model.OfferPatch{
		Title:             req.Title,
		Description:       req.Description,
		Tags:              req.Tags,
		Allergens:         req.Allergens,
		ImageURLs:         req.ImageURLs,
		QuantityTotal:     req.QuantityTotal,
		QuantityAvailable: req.QuantityAvailable,
		PickupStart:       req.PickupStart,
		PickupEnd:         req.PickupEnd,
		ExpiresAt:         req.ExpiresAt,
		ClearExpiresAt:    req.ClearExpiresAt,
	}
	if req.Price != nil {
		price, err := patchMoney(*req.Price)
		if err != nil {
			return model.OfferPatch{}, err
		}
		patch.Price = &price
	}
	if req.OriginalPrice != nil {
		original, err := patchMoney(*req.OriginalPrice)
		if err != nil {
			return model.OfferPatch{}, err
		}
		patch.OriginalPrice = &original
	}
	if req.Status != nil {
		status := model.OfferStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		patch.Status = &status
	}
	return patch, nil
}

func toOfferResponse(o model.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:                o.ID.String(),
		PlaceID:           o.PlaceID.String(),
		Title:             o.Title,
		Description:       o.Description,
		Tags:              nonNil(o.Tags),
		Allergens:         nonNil(o.Allergens),
		ImageURLs:         nonNil(o.ImageURLs),
		Price:             toMoney(o.Price),
		OriginalPrice:     toMoney(o.OriginalPrice),
		DiscountPercent:   o.DiscountPercent(),
		QuantityTotal:     o.QuantityTotal,
		QuantityAvailable: o.QuantityAvailable,
		PickupStart:       o.PickupStart,
		PickupEnd:         o.PickupEnd,
		ExpiresAt:         o.ExpiresAt,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toMoney(m model.Money) dto.Money {
	return dto.Money{Amount: m.Amount.StringFixed(2), Currency: m.Currency}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
