package test

import (
	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
	pkgAuth "github.com/tidex114/est-backend/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(model.Caller) (string, error)
	ParseFn func(string) (model.Caller, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(caller model.Caller) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(caller)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Caller, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return UserCaller(), nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	Caller  model.Caller
	Err     error
	ParseFn func(string) (model.Caller, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Caller, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Caller{}, s.Err
	}
	return s.Caller, nil
}

// UserCaller returns a customer identity.
func UserCaller() model.Caller {
	return model.Caller{ID: uuid.New(), Role: model.RoleUser}
}

// PartnerCaller returns a partner bound to a fresh place.
func PartnerCaller() model.Caller {
	return model.Caller{ID: uuid.New(), Role: model.RolePartner, PlaceID: uuid.New()}
}

var _ pkgAuth.Strategy = StrategyStub{}
