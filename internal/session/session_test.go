package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func runMiddleware(t *testing.T, m *Manager, cookie *http.Cookie) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	var captured string
	handler := m.Middleware()(func(c echo.Context) error {
		captured = IDFromContext(c.Request().Context())
		return c.NoContent(200)
	})
	require.NoError(t, handler(e.NewContext(req, rec)))
	return captured, rec
}

func TestMiddlewareMintsCookieOnFirstContact(t *testing.T) {
	m := NewManager("secret")
	id, rec := runMiddleware(t, m, nil)

	require.NotEmpty(t, id)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
}

func TestMiddlewareKeepsExistingSession(t *testing.T) {
	m := NewManager("secret")
	_, rec := runMiddleware(t, m, nil)
	minted := rec.Result().Cookies()[0]

	id, rec2 := runMiddleware(t, m, minted)
	require.NotEmpty(t, id)
	require.Empty(t, rec2.Result().Cookies(), "no new cookie for a valid session")

	again, _ := runMiddleware(t, m, minted)
	require.Equal(t, id, again)
}

func TestMiddlewareReplacesInvalidToken(t *testing.T) {
	m := NewManager("secret")
	id, rec := runMiddleware(t, m, &http.Cookie{Name: CookieName, Value: "garbage"})

	require.NotEmpty(t, id)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestMiddlewareReplacesExpiredToken(t *testing.T) {
	stale := NewManager("secret")
	stale.ttl = -time.Hour
	token, err := stale.issue("old-session")
	require.NoError(t, err)

	id, rec := runMiddleware(t, NewManager("secret"), &http.Cookie{Name: CookieName, Value: token})
	require.NotEmpty(t, id)
	require.NotEqual(t, "old-session", id)
	require.Len(t, rec.Result().Cookies(), 1, "expired token is replaced with a fresh session")
}

func TestMiddlewareRejectsForeignSignature(t *testing.T) {
	_, rec := runMiddleware(t, NewManager("one"), nil)
	foreign := rec.Result().Cookies()[0]

	id, rec2 := runMiddleware(t, NewManager("two"), foreign)
	require.NotEmpty(t, id)
	require.Len(t, rec2.Result().Cookies(), 1, "token signed with another secret is replaced")
}

func TestIDFromContextDefaultsToEmpty(t *testing.T) {
	require.Equal(t, "", IDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
