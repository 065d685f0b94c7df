// Package token signs and verifies the access and refresh JWTs.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalid is returned for any token that fails verification.
var ErrInvalid = errors.New("token invalid")

// Config provides the signing secrets and lifetimes.
type Config interface {
	GetJWTAccessSecret() string
	GetJWTRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

// Pair is an access token with its refresh token.
type Pair struct {
	Access  string
	Refresh string
}

// Issuer signs tokens with HS256.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer creates an issuer.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg, now: time.Now}
}

// Issue signs a token pair for a user. The access token carries the role
// under "roles", as read by the auth middleware.
func (i *Issuer) Issue(userID uuid.UUID, role string) (Pair, error) {
	access, err := i.sign(jwt.MapClaims{
		"sub":   userID.String(),
		"type":  TypeAccess,
		"roles": []string{role},
	}, i.cfg.GetAccessTokenTTL(), i.cfg.GetJWTAccessSecret())
	if err != nil {
		return Pair{}, err
	}

	refresh, err := i.sign(jwt.MapClaims{
		"sub":  userID.String(),
		"type": TypeRefresh,
		"jti":  uuid.NewString(),
	}, i.cfg.GetRefreshTokenTTL(), i.cfg.GetJWTRefreshSecret())
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(claims jwt.MapClaims, ttl time.Duration, secret string) (string, error) {
	now := i.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseRefresh verifies a refresh token and returns its subject.
func (i *Issuer) ParseRefresh(raw string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(i.cfg.GetJWTRefreshSecret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalid
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalid
	}
	if kind, _ := claims["type"].(string); kind != TypeRefresh {
		return uuid.Nil, ErrInvalid
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}
