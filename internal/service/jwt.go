package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func InitJWT(secret string) {
	if secret == "" {
		panic("session JWT secret is empty")
	}
	jwtSecret = []byte(secret)
}

// GenerateSessionToken issues the session JWT handed back after /auth.
func GenerateSessionToken(id Identity) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"uid":   id.UID,
		"email": id.Email,
		"name":  id.Name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   now,
		"nbf":   now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseSessionToken validates a session JWT and returns the identity it
// carries.
func ParseSessionToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return Identity{}, errors.New("token expired")
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return Identity{}, errors.New("token not valid yet")
	}

	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if email == "" {
		return Identity{}, errors.New("email not found")
	}

	return Identity{UID: uid, Email: email, Name: name}, nil
}
