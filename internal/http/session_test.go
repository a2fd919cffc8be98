package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, m *SessionManager, userID int64) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Issue(c, userID))

	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func identifyWith(m *SessionManager, ck *http.Cookie) (int64, bool) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if ck != nil {
		c.Request.AddCookie(ck)
	}
	return m.Identify(c)
}

func TestSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", time.Hour)

	ck := issueCookie(t, m, 7)
	id, ok := identifyWith(m, ck)
	require.True(t, ok)
	require.Equal(t, int64(7), id)
}

func TestSessionAnonymousWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", time.Hour)

	_, ok := identifyWith(m, nil)
	require.False(t, ok)
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", time.Hour)
	other := NewSessionManager("other-secret", time.Hour)

	ck := issueCookie(t, other, 7)
	_, ok := identifyWith(m, ck)
	require.False(t, ok)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", time.Hour)

	ck := issueCookie(t, m, 7)
	ck.Value += "x"
	_, ok := identifyWith(m, ck)
	require.False(t, ok)
}

func TestSessionExpires(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", -time.Minute)

	ck := issueCookie(t, m, 7)
	_, ok := identifyWith(m, ck)
	require.False(t, ok)
}

func TestSessionClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewSessionManager("secret", time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.Clear(c)

	var cleared bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			require.Empty(t, ck.Value)
			require.Negative(t, ck.MaxAge)
			cleared = true
		}
	}
	require.True(t, cleared)
}
