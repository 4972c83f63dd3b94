package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
)

// moneyPlaces is the number of fractional digits kept for every amount.
const moneyPlaces = 2

// Money is a non-negative fixed-point amount tagged with a currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney validates the amount and currency and rounds the amount half-up to cents.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !validCurrency(currency) {
		return Money{}, domainErrors.Validation(domainErrors.ReasonInvalidMoney, "currency %q must be a 3-letter code", currency)
	}
	if amount.IsNegative() {
		return Money{}, domainErrors.Validation(domainErrors.ReasonInvalidMoney, "amount %s cannot be negative", amount)
	}
	return Money{Amount: amount.Round(moneyPlaces), Currency: currency}, nil
}

// ParseMoney builds Money from a decimal string such as "299.99".
func ParseMoney(amount, currency string) (Money, error) {
	d, err := parseAmount(amount)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d, currency)
}

// ParseAmount builds Money with no currency. Patches use it to keep the
// currency already stored on the offer.
func ParseAmount(amount string) (Money, error) {
	d, err := parseAmount(amount)
	if err != nil {
		return Money{}, err
	}
	if d.IsNegative() {
		return Money{}, domainErrors.Validation(domainErrors.ReasonInvalidMoney, "amount %s cannot be negative", d)
	}
	return Money{Amount: d.Round(moneyPlaces)}, nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Decimal{}, domainErrors.Validation(domainErrors.ReasonInvalidMoney, "amount %q is not a decimal", amount)
	}
	return d, nil
}

// MustMoney is ParseMoney for literals known to be valid.
func MustMoney(amount, currency string) Money {
	m, err := ParseMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Compare returns -1, 0 or 1. Values in different currencies are not comparable.
func (m Money) Compare(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, domainErrors.Validation(domainErrors.ReasonCurrencyMismatch, "%s vs %s", m.Currency, other.Currency)
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(moneyPlaces), m.Currency)
}

func (m Money) validate() error {
	if !validCurrency(m.Currency) {
		return domainErrors.Validation(domainErrors.ReasonInvalidMoney, "currency %q must be a 3-letter code", m.Currency)
	}
	if m.Amount.IsNegative() {
		return domainErrors.Validation(domainErrors.ReasonInvalidMoney, "amount %s cannot be negative", m.Amount)
	}
	return nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
