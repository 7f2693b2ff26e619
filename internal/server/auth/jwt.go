// Package auth holds the two credential primitives of the service: password
// hashing and signed bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. The JSON names are part of the wire contract.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	UserRole string `json:"userRole"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a secret fixed at construction.
// Tokens carry an issued-at time but no expiry.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secretKey string) (*Issuer, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Issuer{secret: []byte(secretKey), now: time.Now}, nil
}

func (i *Issuer) Sign(userID int64, username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature of tokenString and returns its claims. Every
// failure is reported as common.ErrInvalidToken wrapping the cause.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
