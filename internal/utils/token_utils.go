package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims carries the workflow identity inside a JWT. The user ID is
// the standard subject claim.
type IdentityClaims struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the identity encoded in the claims.
func (c *IdentityClaims) Identity() domain.Identity {
	return domain.Identity{ID: c.Subject, Name: c.Name, Role: c.Role}
}

// GenerateJWT signs an HS256 token for the identity.
func GenerateJWT(identity domain.Identity, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, error) {
	claims := IdentityClaims{
		Name: identity.Name,
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// An empty issuer skips the issuer check.
func ParseAndValidateJWT(tokenString string, secretKey string, issuer string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if !claims.Role.IsValid() {
		return nil, errors.New("token carries an unknown role")
	}
	return claims, nil
}
