package model

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the caller role resolved upstream by the identity provider.
type Role string

const (
	RoleUser    Role = "user"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a token claim into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleUser, RolePartner, RoleAdmin:
		return r, true
	}
	return "", false
}

// Caller is the already-authenticated identity attached to every operation.
// PlaceID is only set for partners.
type Caller struct {
	ID      uuid.UUID
	Role    Role
	PlaceID uuid.UUID
}

// HasPlace reports whether the caller is a partner bound to a place.
func (c Caller) HasPlace() bool {
	return c.Role == RolePartner && c.PlaceID != uuid.Nil
}

// Owns reports whether the caller manages the place that owns the offer.
func (c Caller) Owns(o Offer) bool {
	return c.PlaceID != uuid.Nil && c.PlaceID == o.PlaceID
}
