package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the external identity provider asserts about a user.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName returns the asserted name, falling back to the local part of
// the email and then the full email.
func (id Identity) DisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	if at := strings.Index(id.Email, "@"); at > 0 {
		return id.Email[:at]
	}
	return id.Email
}

// VerifyIdentityToken checks an identity-provider token (HS256, shared
// secret) and extracts the asserted identity. Token issuance itself is the
// provider's concern.
func VerifyIdentityToken(tokenString, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid identity token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < time.Now().Unix() {
			return Identity{}, errors.New("identity token expired")
		}
	}

	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if uid == "" || email == "" {
		return Identity{}, errors.New("identity token missing uid or email")
	}

	return Identity{UID: uid, Email: email, Name: name}, nil
}
