package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"dashboard-service/internal/client"
	"dashboard-service/internal/entity"
	"dashboard-service/internal/session"
)

const (
	chatFallback  = "Lo siento, no pude procesar tu mensaje."
	chatSendError = "Lo siento, hubo un error al procesar tu mensaje."
)

// ChatService proxies the assistant widget to the remote /chatbot endpoint
// and keeps each session's append-only thread.
type ChatService struct {
	client *client.Client

	mu      sync.Mutex
	threads map[string][]entity.ChatMessage
	typing  map[string]bool
}

// NewChatService creates a new instance of ChatService.
func NewChatService(cli *client.Client) *ChatService {
	return &ChatService{
		client:  cli,
		threads: map[string][]entity.ChatMessage{},
		typing:  map[string]bool{},
	}
}

// Thread returns the session's messages and whether a reply is in flight.
func (s *ChatService) Thread(ctx context.Context) ([]entity.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid := session.IDFromContext(ctx)
	return append([]entity.ChatMessage(nil), s.threads[sid]...), s.typing[sid]
}

// Send appends the user message, calls the chatbot, and appends whatever
// reply comes back. The user bubble always lands, even when the round trip
// fails; a failure turns into an apology bubble instead of an error.
func (s *ChatService) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	sid := session.IDFromContext(ctx)
	s.append(sid, entity.ChatMessage{Sender: "user", Body: text})
	s.setTyping(sid, true)
	defer s.setTyping(sid, false)

	raw, err := s.client.Post(ctx, "/chatbot", map[string]string{"message": text})
	if err != nil {
		s.append(sid, entity.ChatMessage{Sender: "bot", Body: chatSendError})
		return
	}

	s.append(sid, entity.ChatMessage{Sender: "bot", Body: formatReply(raw)})
}

func (s *ChatService) append(sid string, msg entity.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[sid] = append(s.threads[sid], msg)
}

func (s *ChatService) setTyping(sid string, typing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing[sid] = typing
}

// formatReply renders the chatbot response body: a direct reply wins, a
// structured query result is dumped with a count, anything else falls back
// to the generic apology.
func formatReply(raw json.RawMessage) string {
	var reply struct {
		Response string          `json:"response"`
		Result   json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return chatFallback
	}

	if reply.Response != "" {
		return reply.Response
	}

	result := bytes.TrimSpace(reply.Result)
	if len(result) == 0 || string(result) == "null" {
		return chatFallback
	}

	if result[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(result, &rows); err == nil {
			return fmt.Sprintf("Encontré %d resultados:\n%s", len(rows), indentJSON(result))
		}
	}
	return indentJSON(result)
}

func indentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
