package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/p-bittencourt/studious-waffle/httperr"
)

// GenerateAccessToken signs an {email} claim set with HMAC-SHA256. The
// token carries no expiry claim; callers treat it as an opaque bearer
// string.
func GenerateAccessToken(email, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
	})
	return token.SignedString([]byte(secret))
}

// DecodeToken validates the signature and returns the email claim. Any
// signature or payload problem surfaces as Unauthorized.
func DecodeToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", httperr.Unauthorized("Invalid token error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", httperr.Unauthorized("Invalid token error")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", httperr.Unauthorized("Payload didn't contain expected data")
	}
	return email, nil
}
