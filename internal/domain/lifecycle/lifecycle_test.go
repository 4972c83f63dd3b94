package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
)

var (
	pickupStart = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	pickupEnd   = pickupStart.Add(4 * time.Hour)
	beforeStart = pickupStart.Add(-2 * time.Hour)
)

func partner() model.Caller {
	return model.Caller{ID: uuid.New(), Role: model.RolePartner, PlaceID: uuid.New()}
}

func scenarioFields() model.OfferFields {
	return model.OfferFields{
		Title:         "  Evening pastry box ",
		Description:   "Croissants and buns",
		Tags:          []string{"Bakery", "bakery ", "sweet"},
		Allergens:     []string{"GLUTEN"},
		ImageURLs:     []string{" https://cdn.example/1.jpg ", ""},
		Price:         model.MustMoney("299.99", "RUB"),
		OriginalPrice: model.MustMoney("499.99", "RUB"),
		QuantityTotal: 10,
		PickupStart:   pickupStart,
		PickupEnd:     pickupEnd,
	}
}

// scenarioA creates the reference draft.
func scenarioA(t *testing.T, owner model.Caller) model.Offer {
	t.Helper()
	o, err := Create(scenarioFields(), owner, uuid.New(), beforeStart)
	require.NoError(t, err)
	return o
}

// scenarioB activates the reference draft.
func scenarioB(t *testing.T, owner model.Caller) model.Offer {
	t.Helper()
	o, err := Activate(scenarioA(t, owner), owner, beforeStart.Add(time.Minute))
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T { return &v }

func TestScenarioACreate(t *testing.T) {
	owner := partner()
	o := scenarioA(t, owner)

	assert.Equal(t, model.OfferStatusDraft, o.Status)
	assert.Equal(t, 10, o.QuantityAvailable)
	assert.Equal(t, owner.PlaceID, o.PlaceID)
	assert.Equal(t, "Evening pastry box", o.Title)
	assert.Equal(t, []string{"bakery", "sweet"}, o.Tags)
	assert.Equal(t, []string{"gluten"}, o.Allergens)
	assert.Equal(t, []string{"https://cdn.example/1.jpg"}, o.ImageURLs)
	assert.Equal(t, beforeStart, o.CreatedAt)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
	assert.Equal(t, 40, o.DiscountPercent())
	require.NoError(t, o.Validate())
}

func TestCreateRejects(t *testing.T) {
	t.Run("customer caller", func(t *testing.T) {
		_, err := Create(scenarioFields(), model.Caller{ID: uuid.New(), Role: model.RoleUser}, uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrAuthorization)
	})
	t.Run("partner without place", func(t *testing.T) {
		_, err := Create(scenarioFields(), model.Caller{ID: uuid.New(), Role: model.RolePartner}, uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrAuthorization)
	})
	t.Run("price above original", func(t *testing.T) {
		f := scenarioFields()
		f.Price = model.MustMoney("600.00", "RUB")
		_, err := Create(f, partner(), uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrPriceExceedsOriginal)
	})
	t.Run("zero quantity", func(t *testing.T) {
		f := scenarioFields()
		f.QuantityTotal = 0
		_, err := Create(f, partner(), uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
	})
	t.Run("inverted window", func(t *testing.T) {
		f := scenarioFields()
		f.PickupEnd = f.PickupStart.Add(-time.Minute)
		_, err := Create(f, partner(), uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidPickupWindow)
	})
	t.Run("pickup already started", func(t *testing.T) {
		_, err := Create(scenarioFields(), partner(), uuid.New(), pickupStart.Add(time.Minute))
		assert.ErrorIs(t, err, domainErrors.ErrInvalidPickupWindow)
	})
	t.Run("blank title", func(t *testing.T) {
		f := scenarioFields()
		f.Title = "   ab  "
		_, err := Create(f, partner(), uuid.New(), beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTitleLength)
	})
}

func TestScenarioBActivate(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)
	assert.Equal(t, model.OfferStatusActive, o.Status)
	assert.True(t, o.UpdatedAt.After(o.CreatedAt))
}

func TestScenarioCReserveAll(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)
	now := beforeStart.Add(time.Hour)

	sold, err := Reserve(o, 10, now)
	require.NoError(t, err)
	assert.Equal(t, 0, sold.QuantityAvailable)
	assert.Equal(t, model.OfferStatusSoldOut, sold.Status)

	after, err := Reserve(sold, 1, now)
	var insufficient *domainErrors.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Requested)
	assert.Equal(t, 0, insufficient.Available)
	assert.True(t, after.Equal(sold))
}

func TestScenarioDPriceAboveOriginal(t *testing.T) {
	owner := partner()
	o := scenarioA(t, owner)

	got, err := Update(o, model.OfferPatch{Price: ptr(model.MustMoney("600.00", "RUB"))}, owner, beforeStart.Add(time.Minute))
	assert.ErrorIs(t, err, domainErrors.ErrPriceExceedsOriginal)
	assert.True(t, got.Equal(o))
}

func TestScenarioENonOwner(t *testing.T) {
	owner := partner()
	stranger := partner()
	o := scenarioA(t, owner)

	got, err := Update(o, model.OfferPatch{Title: ptr("Hijacked box")}, stranger, beforeStart.Add(time.Minute))
	assert.ErrorIs(t, err, domainErrors.ErrAuthorization)
	assert.True(t, got.Equal(o))

	assert.ErrorIs(t, CheckDelete(o, stranger), domainErrors.ErrAuthorization)

	for name, op := range map[string]func(model.Offer, model.Caller, time.Time) (model.Offer, error){
		"activate": Activate, "pause": Pause, "cancel": Cancel,
	} {
		got, err := op(o, stranger, beforeStart)
		assert.ErrorIs(t, err, domainErrors.ErrAuthorization, name)
		assert.True(t, got.Equal(o), name)
	}
}

func TestReserveGuards(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	t.Run("draft is not available", func(t *testing.T) {
		o := scenarioA(t, owner)
		_, err := Reserve(o, 1, now)
		var na *domainErrors.NotAvailableError
		require.ErrorAs(t, err, &na)
		assert.Equal(t, "draft", na.Status)
	})
	t.Run("paused is not available", func(t *testing.T) {
		o, err := Pause(scenarioB(t, owner), owner, now)
		require.NoError(t, err)
		_, err = Reserve(o, 1, now)
		assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
	})
	t.Run("quantity must be positive", func(t *testing.T) {
		o := scenarioB(t, owner)
		got, err := Reserve(o, 0, now)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
		assert.True(t, got.Equal(o))
	})
	t.Run("all or nothing", func(t *testing.T) {
		o := scenarioB(t, owner)
		o, err := Reserve(o, 7, now)
		require.NoError(t, err)
		got, err := Reserve(o, 4, now)
		var insufficient *domainErrors.InsufficientQuantityError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 3, insufficient.Available)
		assert.Equal(t, 3, got.QuantityAvailable)
		assert.Equal(t, model.OfferStatusActive, got.Status)
	})
	t.Run("expired while active", func(t *testing.T) {
		o := scenarioB(t, owner)
		got, err := Reserve(o, 1, pickupEnd)
		assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
		assert.Equal(t, model.OfferStatusExpired, got.Status)
		assert.Equal(t, 10, got.QuantityAvailable)
		assert.Equal(t, pickupEnd, got.UpdatedAt)
	})
}

func TestActivatePastDeadlineExpires(t *testing.T) {
	owner := partner()
	o := scenarioA(t, owner)

	got, err := Activate(o, owner, pickupEnd.Add(time.Minute))
	var na *domainErrors.NotAvailableError
	require.ErrorAs(t, err, &na)
	assert.Equal(t, "expired", na.Status)
	assert.Equal(t, model.OfferStatusExpired, got.Status)

	_, err = Activate(got, owner, pickupEnd.Add(2*time.Minute))
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
}

func TestExpiresAtDeadline(t *testing.T) {
	owner := partner()
	f := scenarioFields()
	f.ExpiresAt = ptr(pickupStart.Add(time.Hour))
	o, err := Create(f, owner, uuid.New(), beforeStart)
	require.NoError(t, err)
	o, err = Activate(o, owner, beforeStart)
	require.NoError(t, err)

	assert.False(t, IsExpired(o, pickupStart))
	assert.True(t, IsExpired(o, pickupStart.Add(time.Hour)))

	got, changed := Refresh(o, pickupStart.Add(time.Hour))
	assert.True(t, changed)
	assert.Equal(t, model.OfferStatusExpired, got.Status)

	same, changed := Refresh(o, pickupStart)
	assert.False(t, changed)
	assert.True(t, same.Equal(o))
}

func TestRefreshLeavesDraftAndTerminal(t *testing.T) {
	owner := partner()
	draft := scenarioA(t, owner)
	_, changed := Refresh(draft, pickupEnd.Add(time.Hour))
	assert.False(t, changed)

	cancelled, err := Cancel(scenarioB(t, owner), owner, beforeStart)
	require.NoError(t, err)
	_, changed = Refresh(cancelled, pickupEnd.Add(time.Hour))
	assert.False(t, changed)
}

func TestTransitions(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	active := scenarioB(t, owner)
	paused, err := Pause(active, owner, now)
	require.NoError(t, err)
	assert.Equal(t, model.OfferStatusPaused, paused.Status)

	resumed, err := Activate(paused, owner, now)
	require.NoError(t, err)
	assert.Equal(t, model.OfferStatusActive, resumed.Status)

	cancelled, err := Cancel(paused, owner, now)
	require.NoError(t, err)
	assert.Equal(t, model.OfferStatusCancelled, cancelled.Status)

	_, err = Activate(cancelled, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)

	_, err = Pause(scenarioA(t, owner), owner, now)
	var invalid *domainErrors.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "draft", invalid.From)
	assert.Equal(t, "paused", invalid.To)

	_, err = Cancel(scenarioA(t, owner), owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	sold, err := Reserve(active, 10, now)
	require.NoError(t, err)
	_, err = Pause(sold, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	again, err := Activate(active, owner, now)
	require.NoError(t, err)
	assert.True(t, again.Equal(active))
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanRequest(model.OfferStatusDraft, model.OfferStatusActive))
	assert.True(t, CanRequest(model.OfferStatusPaused, model.OfferStatusCancelled))
	assert.False(t, CanRequest(model.OfferStatusSoldOut, model.OfferStatusActive))
	assert.False(t, CanRequest(model.OfferStatusActive, model.OfferStatusExpired))
	assert.False(t, CanRequest(model.OfferStatusExpired, model.OfferStatusActive))
	assert.True(t, CanAdvance(model.OfferStatusSoldOut, model.OfferStatusActive))
	assert.False(t, CanAdvance(model.OfferStatusCancelled, model.OfferStatusExpired))
}

func TestUpdateIdempotent(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)
	now := beforeStart.Add(time.Hour)

	got, err := Update(o, model.PatchFromOffer(o), owner, now)
	require.NoError(t, err)
	assert.True(t, got.Equal(o))

	empty, err := Update(o, model.OfferPatch{}, owner, now)
	require.NoError(t, err)
	assert.True(t, empty.Equal(o))

	patch := model.OfferPatch{Title: ptr("Morning bread box"), Status: ptr(model.OfferStatusActive)}
	first, err := Update(o, patch, owner, now)
	require.NoError(t, err)
	assert.Equal(t, now, first.UpdatedAt)
	second, err := Update(first, patch, owner, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, second.Equal(first))
}

func TestUpdateStatusRequests(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	paused, err := Update(scenarioB(t, owner), model.OfferPatch{Status: ptr(model.OfferStatusPaused)}, owner, now)
	require.NoError(t, err)
	assert.Equal(t, model.OfferStatusPaused, paused.Status)

	_, err = Update(paused, model.OfferPatch{Status: ptr(model.OfferStatusSoldOut)}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	_, err = Update(paused, model.OfferPatch{Status: ptr(model.OfferStatus("archived"))}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStatus)

	cancelled, err := Update(paused, model.OfferPatch{Status: ptr(model.OfferStatusCancelled)}, owner, now)
	require.NoError(t, err)
	got, err := Update(cancelled, model.OfferPatch{Title: ptr("Too late box")}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
	assert.True(t, got.Equal(cancelled))
}

func TestUpdateExpiryIsCommitted(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)

	got, err := Update(o, model.OfferPatch{Title: ptr("Late box")}, owner, pickupEnd)
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
	assert.Equal(t, model.OfferStatusExpired, got.Status)
	assert.Equal(t, o.Title, got.Title)
}

func TestUpdateDeadlineIntoPast(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)
	now := pickupStart.Add(2 * time.Hour)

	got, err := Update(o, model.OfferPatch{PickupEnd: ptr(pickupStart.Add(time.Hour))}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPickupWindow)
	assert.True(t, got.Equal(o))

	got, err = Update(o, model.OfferPatch{ExpiresAt: ptr(pickupStart.Add(time.Hour))}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPickupWindow)
	assert.True(t, got.Equal(o))
}

func TestUpdateDraftActivationPastDeadline(t *testing.T) {
	owner := partner()
	o := scenarioA(t, owner)

	got, err := Update(o, model.OfferPatch{Status: ptr(model.OfferStatusActive)}, owner, pickupEnd.Add(time.Minute))
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
	assert.Equal(t, model.OfferStatusExpired, got.Status)
}

func TestUpdateQuantities(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	t.Run("restock sold out", func(t *testing.T) {
		sold, err := Reserve(scenarioB(t, owner), 10, now)
		require.NoError(t, err)
		got, err := Update(sold, model.OfferPatch{QuantityAvailable: ptr(3)}, owner, now)
		require.NoError(t, err)
		assert.Equal(t, model.OfferStatusActive, got.Status)
		assert.Equal(t, 3, got.QuantityAvailable)
	})
	t.Run("zeroing active sells out", func(t *testing.T) {
		got, err := Update(scenarioB(t, owner), model.OfferPatch{QuantityAvailable: ptr(0)}, owner, now)
		require.NoError(t, err)
		assert.Equal(t, model.OfferStatusSoldOut, got.Status)
	})
	t.Run("total keeps reservations", func(t *testing.T) {
		o, err := Reserve(scenarioB(t, owner), 4, now)
		require.NoError(t, err)
		got, err := Update(o, model.OfferPatch{QuantityTotal: ptr(12)}, owner, now)
		require.NoError(t, err)
		assert.Equal(t, 12, got.QuantityTotal)
		assert.Equal(t, 8, got.QuantityAvailable)
		assert.Equal(t, 4, got.Reserved())
	})
	t.Run("total below reservations", func(t *testing.T) {
		o, err := Reserve(scenarioB(t, owner), 4, now)
		require.NoError(t, err)
		got, err := Update(o, model.OfferPatch{QuantityTotal: ptr(3)}, owner, now)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
		assert.True(t, got.Equal(o))
	})
	t.Run("total equal to reservations sells out", func(t *testing.T) {
		o, err := Reserve(scenarioB(t, owner), 4, now)
		require.NoError(t, err)
		got, err := Update(o, model.OfferPatch{QuantityTotal: ptr(4)}, owner, now)
		require.NoError(t, err)
		assert.Equal(t, model.OfferStatusSoldOut, got.Status)
	})
	t.Run("available above total", func(t *testing.T) {
		o := scenarioB(t, owner)
		_, err := Update(o, model.OfferPatch{QuantityAvailable: ptr(11)}, owner, now)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)
	})
}

func TestRelease(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	sold, err := Reserve(scenarioB(t, owner), 10, now)
	require.NoError(t, err)

	got, err := Release(sold, 2, owner, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, got.QuantityAvailable)
	assert.Equal(t, model.OfferStatusActive, got.Status)

	capped, err := Release(got, 50, owner, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 10, capped.QuantityAvailable)

	full, err := Release(capped, 1, owner, now.Add(3*time.Minute))
	require.NoError(t, err)
	assert.True(t, full.Equal(capped))

	_, err = Release(sold, 0, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)

	expired, err := Release(sold, 1, owner, pickupEnd)
	assert.ErrorIs(t, err, domainErrors.ErrNotAvailable)
	assert.Equal(t, model.OfferStatusExpired, expired.Status)
}

func TestReleaseIsOwnerOnly(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)
	sold, err := Reserve(scenarioB(t, owner), 10, now)
	require.NoError(t, err)

	for name, caller := range map[string]model.Caller{
		"customer":      {ID: uuid.New(), Role: model.RoleUser},
		"other partner": partner(),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Release(sold, 10, caller, now)
			assert.ErrorIs(t, err, domainErrors.ErrAuthorization)
			assert.Equal(t, 0, got.QuantityAvailable)
			assert.Equal(t, model.OfferStatusSoldOut, got.Status)
		})
	}
}

func TestCheckDelete(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)

	assert.NoError(t, CheckDelete(scenarioA(t, owner), owner))
	assert.NoError(t, CheckDelete(scenarioB(t, owner), owner))

	reserved, err := Reserve(scenarioB(t, owner), 1, now)
	require.NoError(t, err)
	assert.ErrorIs(t, CheckDelete(reserved, owner), domainErrors.ErrConflict)

	cancelled, err := Cancel(reserved, owner, now)
	require.NoError(t, err)
	assert.ErrorIs(t, CheckDelete(cancelled, owner), domainErrors.ErrConflict)
}

func TestUpdatedAtNeverDecreases(t *testing.T) {
	owner := partner()
	o := scenarioB(t, owner)

	got, err := Update(o, model.OfferPatch{Title: ptr("Earlier clock box")}, owner, o.UpdatedAt.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, o.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, "Earlier clock box", got.Title)
}

func TestInvariantsHoldAcrossOperations(t *testing.T) {
	owner := partner()
	now := beforeStart
	o := scenarioA(t, owner)

	steps := []func(model.Offer) (model.Offer, error){
		func(o model.Offer) (model.Offer, error) { return Activate(o, owner, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 3, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 8, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 7, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 1, now) },
		func(o model.Offer) (model.Offer, error) { return Release(o, 2, owner, now) },
		func(o model.Offer) (model.Offer, error) {
			return Update(o, model.OfferPatch{QuantityTotal: ptr(5)}, owner, now)
		},
		func(o model.Offer) (model.Offer, error) {
			return Update(o, model.OfferPatch{QuantityTotal: ptr(20)}, owner, now)
		},
		func(o model.Offer) (model.Offer, error) { return Pause(o, owner, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 1, now) },
		func(o model.Offer) (model.Offer, error) { return Activate(o, owner, now) },
		func(o model.Offer) (model.Offer, error) { return Reserve(o, 1, pickupEnd) },
		func(o model.Offer) (model.Offer, error) { return Cancel(o, owner, pickupEnd) },
	}

	for i, step := range steps {
		prev := o
		next, err := step(o)
		require.NoError(t, next.Validate(), "step %d", i)
		assert.False(t, next.UpdatedAt.Before(prev.UpdatedAt), "step %d", i)
		if err != nil && next.Status != model.OfferStatusExpired {
			assert.True(t, next.Equal(prev), "step %d left a partial change", i)
		}
		o = next
	}
	assert.Equal(t, model.OfferStatusExpired, o.Status)
}

func TestUpdatePriceKeepsStoredCurrency(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)
	f := scenarioFields()
	f.Price = model.MustMoney("5.00", "EUR")
	f.OriginalPrice = model.MustMoney("9.00", "EUR")
	o, err := Create(f, owner, uuid.New(), beforeStart)
	require.NoError(t, err)

	price, err := model.ParseAmount("6")
	require.NoError(t, err)
	got, err := Update(o, model.OfferPatch{Price: &price}, owner, now)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(model.MustMoney("6.00", "EUR")), "got %s", got.Price)

	original, err := model.ParseAmount("12.5")
	require.NoError(t, err)
	got, err = Update(got, model.OfferPatch{Price: &price, OriginalPrice: &original}, owner, now)
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.OriginalPrice.Currency)

	rub := model.MustMoney("6.00", "RUB")
	_, err = Update(got, model.OfferPatch{Price: &rub}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrCurrencyMismatch)
}

func TestUpdateClearsExpiresAt(t *testing.T) {
	owner := partner()
	now := beforeStart.Add(time.Hour)
	f := scenarioFields()
	f.ExpiresAt = ptr(pickupStart.Add(time.Hour))
	o, err := Create(f, owner, uuid.New(), beforeStart)
	require.NoError(t, err)
	require.NotNil(t, o.ExpiresAt)

	_, err = Update(o, model.OfferPatch{ExpiresAt: ptr(pickupEnd), ClearExpiresAt: true}, owner, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPickupWindow)

	got, err := Update(o, model.OfferPatch{ClearExpiresAt: true}, owner, now)
	require.NoError(t, err)
	assert.Nil(t, got.ExpiresAt)
	assert.Equal(t, pickupEnd, got.Deadline())
	assert.True(t, got.UpdatedAt.After(o.UpdatedAt))

	again, err := Update(got, model.OfferPatch{ClearExpiresAt: true}, owner, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, got.UpdatedAt, again.UpdatedAt)
}
