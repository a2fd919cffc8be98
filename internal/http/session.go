package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookie = "watchlist_session"

// SessionManager binds requests to the owner identity via a signed,
// client-held token. Nothing is stored server side: the HS256 JWT in
// the session cookie is the whole session.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given user and sets it on the response.
func (m *SessionManager) Issue(c *gin.Context, userID int64) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.SetCookie(sessionCookie, signed, int(m.ttl/time.Second), "/", "", false, true)
	return nil
}

// Clear drops the session cookie, returning the client to anonymous.
func (m *SessionManager) Clear(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// Identify resolves the user id bound to the request's session cookie.
// Missing, tampered or expired tokens all resolve to anonymous.
func (m *SessionManager) Identify(c *gin.Context) (int64, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		return 0, false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
