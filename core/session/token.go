package session

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Role is what the console renders as.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", errors.Errorf("unknown role %q (want admin or user)", s)
}

// Claims are the claims the backend puts in its access tokens.
type Claims struct {
	jwt.StandardClaims
	IsAdmin bool `json:"is_admin"`
}

// Identity is who the access token was issued to.
type Identity struct {
	Username  string
	IsAdmin   bool
	ExpiresAt time.Time // zero when the token never expires
}

func (id Identity) Role() Role {
	if id.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// DecodeToken reads the identity out of token without checking its signature; the backend does that.
// Expired tokens are rejected.
func DecodeToken(token string, now time.Time) (Identity, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if claims.Subject == "" {
		return Identity{}, errors.Wrap(ErrInvalidToken, "no subject")
	}

	id := Identity{Username: claims.Subject, IsAdmin: claims.IsAdmin}
	if claims.ExpiresAt != 0 {
		id.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
		if !now.Before(id.ExpiresAt) {
			return Identity{}, ErrTokenExpired
		}
	}
	return id, nil
}
