package impl

import (
	"errors"
	"time"

	"eshop/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer        string
	SigningKey    []byte // HS256 secret
	ActivationTTL time.Duration
	AccessTTL     time.Duration
}

const (
	useActivation = "activation"
	useAccess     = "access"
)

type tokenClaims struct {
	UserID   string `json:"user_id"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenServiceImpl signs and verifies both token kinds with the process-wide
// symmetric key. Activation tokens are self-contained: no row is persisted and
// a token stays verifiable for its whole lifetime.
type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) IssueActivation(userID uuid.UUID) (string, error) {
	return t.sign(userID, useActivation, t.cfg.ActivationTTL)
}

func (t *TokenServiceImpl) VerifyActivation(token string) (uuid.UUID, error) {
	return t.verify(token, useActivation)
}

func (t *TokenServiceImpl) IssueAccess(userID uuid.UUID) (string, error) {
	return t.sign(userID, useAccess, t.cfg.AccessTTL)
}

func (t *TokenServiceImpl) VerifyAccess(token string) (uuid.UUID, error) {
	return t.verify(token, useAccess)
}

func (t *TokenServiceImpl) sign(userID uuid.UUID, use string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		UserID:   userID.String(),
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) verify(token, use string) (uuid.UUID, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		return uuid.Nil, classifyTokenError(err)
	}
	if !parsed.Valid || claims.TokenUse != use {
		return uuid.Nil, service.ErrTokenMalformed
	}
	if claims.Issuer != t.cfg.Issuer {
		return uuid.Nil, service.ErrTokenSignatureInvalid
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, service.ErrTokenMalformed
	}
	return id, nil
}

// classifyTokenError collapses the jwt library's error surface into the three
// verification failure kinds. Expiry wins over the generic invalid-claims wrap.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return service.ErrTokenSignatureInvalid
	default:
		return service.ErrTokenMalformed
	}
}
