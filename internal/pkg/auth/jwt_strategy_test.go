package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTStrategy_Defaults(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.issuer != defaultIssuer {
		t.Fatalf("unexpected issuer: %s", strategy.issuer)
	}
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})

	partner := model.Caller{ID: uuid.New(), Role: model.RolePartner, PlaceID: uuid.New()}
	token, err := strategy.IssueToken(partner)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	got, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got != partner {
		t.Fatalf("unexpected caller: %+v", got)
	}

	customer := model.Caller{ID: uuid.New(), Role: model.RoleUser}
	token, err = strategy.IssueToken(customer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	got, err = strategy.ParseToken(" " + token + " ")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got != customer || got.PlaceID != uuid.Nil {
		t.Fatalf("unexpected caller: %+v", got)
	}
}

func TestJWTStrategy_IssueRejectsIncompleteCaller(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.IssueToken(model.Caller{Role: model.RoleUser}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if _, err := strategy.IssueToken(model.Caller{ID: uuid.New(), Role: "root"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestJWTStrategy_ParseRejects(t *testing.T) {
	issuedAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	issuer := NewJWTStrategy("secret", Options{TTL: time.Hour, Now: fixedNow(issuedAt)})
	caller := model.Caller{ID: uuid.New(), Role: model.RoleUser}
	valid, err := issuer.IssueToken(caller)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}
	registered := jwt.RegisteredClaims{
		Issuer:    defaultIssuer,
		Subject:   caller.ID.String(),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}

	cases := []struct {
		name     string
		token    string
		verifier *JWTStrategy
	}{
		{"empty", "", issuer},
		{"garbage", "not-a-jwt", issuer},
		{"wrong secret", valid, NewJWTStrategy("other", Options{Now: fixedNow(issuedAt)})},
		{"expired", valid, NewJWTStrategy("secret", Options{Now: fixedNow(issuedAt.Add(2 * time.Hour))})},
		{"wrong issuer", valid, NewJWTStrategy("secret", Options{Issuer: "someone-else", Now: fixedNow(issuedAt)})},
		{"none algorithm", sign(callerClaims{RegisteredClaims: registered, Role: "user"}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), issuer},
		{"bad subject", sign(callerClaims{RegisteredClaims: jwt.RegisteredClaims{Issuer: defaultIssuer, Subject: "42", ExpiresAt: registered.ExpiresAt}, Role: "user"}, jwt.SigningMethodHS256, []byte("secret")), issuer},
		{"unknown role", sign(callerClaims{RegisteredClaims: registered, Role: "root"}, jwt.SigningMethodHS256, []byte("secret")), issuer},
		{"bad place", sign(callerClaims{RegisteredClaims: registered, Role: "partner", PlaceID: "nope"}, jwt.SigningMethodHS256, []byte("secret")), issuer},
		{"missing expiry", sign(callerClaims{RegisteredClaims: jwt.RegisteredClaims{Issuer: defaultIssuer, Subject: caller.ID.String()}, Role: "user"}, jwt.SigningMethodHS256, []byte("secret")), issuer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.verifier.ParseToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTStrategy_TokenShape(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	token, err := strategy.IssueToken(model.Caller{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
}
