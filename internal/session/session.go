package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// CookieName holds the signed session token.
const CookieName = "dashboard_session"

type ctxKey struct{}

// Claims carries only the random session ID; there is no authenticated
// identity behind it. The login form is a stub by design.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager mints and verifies the session cookie.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a manager signing with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: 24 * time.Hour}
}

// Middleware attaches a session ID to every request. Token verification
// runs through echo-jwt against the session cookie; a missing, expired or
// otherwise invalid token falls through to a freshly minted cookie instead
// of a 401, since the session only keys per-browser state.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:  m.secret,
		TokenLookup: "cookie:" + CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &Claims{}
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			id := verifiedID(c)
			if id == "" {
				var err error
				if id, err = m.mint(c); err != nil {
					return err
				}
			}
			ctx := WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		})
	}
}

// verifiedID reads the claims echo-jwt stored on the request, if any.
func verifiedID(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return ""
	}
	return claims.SessionID
}

func (m *Manager) mint(c echo.Context) (string, error) {
	id := newSessionID()
	token, err := m.issue(id)
	if err != nil {
		return "", err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(m.ttl),
	})
	return id, nil
}

func (m *Manager) issue(id string) (string, error) {
	claims := &Claims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// WithID stores a session ID in a context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFromContext returns the session ID set by the middleware, or "".
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
