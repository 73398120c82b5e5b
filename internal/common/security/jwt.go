package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	TokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
)

func InitJWT(key []byte, ttl time.Duration) {
	TokenAuth = jwtauth.New("HS256", key, nil)
	tokenTTL = ttl
}

// GenerateToken signs a bearer token for username that expires after the
// configured TTL.
func GenerateToken(username string) (string, error) {
	if TokenAuth == nil {
		return "", errors.New("jwt is not initialized")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return username, nil
}
