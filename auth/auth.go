package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

var ErrNoSession = errors.New("no valid session")

// Session identifies an authenticated caller. Owner is the account the
// identity provider authenticated, ID scopes the progress slot.
type Session struct {
	Owner uuid.UUID
	ID    string
}

// Sessions verifies the session cookie minted by the identity provider. The
// signing key is shared with it, this service never authenticates users
// itself.
type Sessions struct {
	key []byte
}

func NewSessions(signingKey string) *Sessions {
	return &Sessions{key: []byte(signingKey)}
}

func (s *Sessions) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	owner, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("%w: bad subject", ErrNoSession)
	}
	sessionID := claims.ID
	if sessionID == "" {
		sessionID = claims.Subject
	}

	return Session{Owner: owner, ID: sessionID}, nil
}

// Issue mints a cookie value. The identity provider does this in production,
// this is for tests and local setups.
func (s *Sessions) Issue(owner uuid.UUID, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   owner.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(s.key)
}
