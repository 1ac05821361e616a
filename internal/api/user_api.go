package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"dashboard-service/internal/notify"
	"dashboard-service/internal/session"
)

// AuthHandler is the login stub. The session cookie itself is minted by the
// session middleware on first contact; login only reports success or failure
// without any real credential check.
type AuthHandler struct {
	center *notify.Center
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(center *notify.Center) *AuthHandler {
	return &AuthHandler{center: center}
}

// Login accepts any non-empty email and password --> /login
func (h *AuthHandler) Login(c echo.Context) error {
	sid := session.IDFromContext(c.Request().Context())
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		h.center.Push(sid, notify.Error, "Credenciales inválidas")
		return redirectBack(c, "/")
	}

	h.center.Push(sid, notify.Success, "Sesión iniciada correctamente")
	return c.Redirect(303, "/")
}
