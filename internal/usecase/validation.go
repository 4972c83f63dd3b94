package usecase

import (
	"github.com/tidex114/est-backend/internal/domain/repository"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage clamps listing bounds to sane values.
func NormalizePage(limit, offset int) repository.Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}
