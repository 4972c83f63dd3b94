package auth

import (
	"time"

	"github.com/tidex114/est-backend/internal/domain/model"
)

// Strategy turns bearer tokens into callers and back.
type Strategy interface {
	IssueToken(caller model.Caller) (string, error)
	ParseToken(token string) (model.Caller, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}
