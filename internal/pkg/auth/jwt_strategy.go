package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tidex114/est-backend/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultIssuer = "est-identity"

// callerClaims is the token payload minted by the identity provider.
type callerClaims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"`
	PlaceID string `json:"place_id,omitempty"`
}

// JWTStrategy verifies HS256 tokens carrying the caller identity.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, issuer: issuer, now: now}
}

// IssueToken signs a token for the caller.
func (s *JWTStrategy) IssueToken(caller model.Caller) (string, error) {
	if caller.ID == uuid.Nil {
		return "", fmt.Errorf("issue token: caller id is required")
	}
	if _, ok := model.ParseRole(string(caller.Role)); !ok {
		return "", fmt.Errorf("issue token: unknown role %q", caller.Role)
	}

	now := s.now()
	claims := callerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   caller.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: string(caller.Role),
	}
	if caller.PlaceID != uuid.Nil {
		claims.PlaceID = caller.PlaceID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ParseToken validates token and returns the caller it describes.
func (s *JWTStrategy) ParseToken(token string) (model.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Caller{}, ErrInvalidToken
	}

	var claims callerClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Caller{}, ErrInvalidToken
	}
	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return model.Caller{}, ErrInvalidToken
	}

	caller := model.Caller{ID: id, Role: role}
	if claims.PlaceID != "" {
		if caller.PlaceID, err = uuid.Parse(claims.PlaceID); err != nil {
			return model.Caller{}, ErrInvalidToken
		}
	}
	return caller, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
