package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"dashboard-service/internal/render"
	"dashboard-service/internal/service"
)

// ChatHandler serves the assistant widget.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new instance of ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Partial re-renders the session's thread --> /partials/chat
func (h *ChatHandler) Partial(c echo.Context) error {
	messages, typing := h.chat.Thread(c.Request().Context())
	return c.HTML(200, string(render.ChatThread(messages, typing, time.Now())))
}

// Send relays a message to the chatbot --> /chat/messages
func (h *ChatHandler) Send(c echo.Context) error {
	h.chat.Send(c.Request().Context(), c.FormValue("message"))
	return redirectBack(c, "/")
}
