package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

const Issuer = "tillit-parceiros"

var ErrInvalidToken = errors.New("invalid token")

// Identity é o que a borda de sessão entrega ao núcleo. Não é reverificada.
type Identity struct {
	UserID string               `json:"user_id"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Role   entity.Role          `json:"role"`
	Status entity.PartnerStatus `json:"status"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == entity.RoleAdmin
}

func (i Identity) IsApproved() bool {
	return i.Status == entity.PartnerApproved
}

type Claims struct {
	UserID string               `json:"uid"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Role   entity.Role          `json:"role"`
	Status entity.PartnerStatus `json:"status"`
	jwt.RegisteredClaims
}

// TokenManager emite e valida tokens HS256.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) Issue(identity Identity) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID: identity.UserID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role,
		Status: identity.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) Verify(tokenStr string) (Identity, error) {
	claims := new(Claims)
	parser := jwt.NewParser(
		jwt.WithIssuer(Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
		Status: claims.Status,
	}, nil
}
