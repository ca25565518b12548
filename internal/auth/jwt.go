package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"watchlist/internal/errors"
)

// Claims carries the authenticated user id next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies the token and returns its user id.
// Every failure is reported as an unauthenticated error.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.Wrap(err, errors.CodeUnauthenticated, "token expired")
		}
		return "", errors.Wrap(err, errors.CodeUnauthenticated, "invalid token")
	}

	if !token.Valid || claims.UserID == "" {
		return "", errors.Unauthenticated("invalid token")
	}

	return claims.UserID, nil
}
