package jwthelper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "ecell-portal-api"

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	UserAgent string `json:"user_agent"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens. Validity depends only on the
// signature and the expiry.
type Issuer struct {
	signingKey []byte
	expiry     time.Duration
	now        func() time.Time
}

func NewIssuer(signingKey string, expiry time.Duration) *Issuer {
	return &Issuer{
		signingKey: []byte(signingKey),
		expiry:     expiry,
		now:        time.Now,
	}
}

func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}

func (i *Issuer) Issue(userID uint, role, userAgent string) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		UserAgent: userAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return i.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
