package utils

import (
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims carried by an access token. Subject holds
// the user ID; the extra fields let the middleware build a Principal without
// a database round trip.
type AccessClaims struct {
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CompanyID *string `json:"companyID,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a signed access token for the user.
func GenerateJWT(user *domain.User, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and returns the AccessClaims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}

// Principal converts the claims into the domain principal.
func (c *AccessClaims) Principal() domain.Principal {
	return domain.Principal{
		UserID:    c.Subject,
		Email:     c.Email,
		Role:      domain.Role(c.Role),
		CompanyID: c.CompanyID,
	}
}
