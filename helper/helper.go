package helper

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

func GetEnv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// Session is the authenticated user as carried in the bearer token. The
// backends verify signatures; the client only reads the claims it needs to
// address its own requests.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// SessionFromToken extracts user_id and email claims without verifying the
// signature.
func SessionFromToken(tokenStr string) (Session, error) {
	if tokenStr == "" {
		return Session{}, errors.New("missing auth token")
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, jwt.ErrTokenInvalidClaims
	}

	s := Session{Token: tokenStr}
	if v, ok := claims["user_id"].(string); ok {
		s.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		s.Email = v
	}
	if s.UserID == "" {
		return Session{}, errors.New("token has no user_id claim")
	}

	return s, nil
}

// Authenticated reports whether the session carries a usable identity.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}
