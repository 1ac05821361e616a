package notify

import (
	"context"
	"sync"
	"time"

	"dashboard-service/internal/session"
)

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// TTL is how long an undismissed notification stays visible.
const TTL = 5 * time.Second

// Notification is one transient status message.
type Notification struct {
	ID      int64
	Kind    Kind
	Message string
	expires time.Time
}

// Center holds per-session notification stacks. Entries auto-expire after
// TTL; multiple notifications stack in insertion order, never queueing or
// blocking each other.
type Center struct {
	mu        sync.Mutex
	now       func() time.Time
	seq       int64
	bySession map[string][]Notification
}

// NewCenter creates an empty center.
func NewCenter() *Center {
	return &Center{now: time.Now, bySession: map[string][]Notification{}}
}

// Push adds a notification for the session.
func (c *Center) Push(sessionID string, kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.bySession[sessionID] = append(c.bySession[sessionID], Notification{
		ID:      c.seq,
		Kind:    kind,
		Message: message,
		expires: c.now().Add(TTL),
	})
}

// Active returns the session's unexpired notifications, pruning the rest.
func (c *Center) Active(sessionID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var alive []Notification
	for _, n := range c.bySession[sessionID] {
		if n.expires.After(now) {
			alive = append(alive, n)
		}
	}
	if alive == nil {
		delete(c.bySession, sessionID)
	} else {
		c.bySession[sessionID] = alive
	}
	return alive
}

// Dismiss drops one notification before it expires.
func (c *Center) Dismiss(sessionID string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stack := c.bySession[sessionID]
	for i, n := range stack {
		if n.ID == id {
			c.bySession[sessionID] = append(stack[:i], stack[i+1:]...)
			return
		}
	}
}

// SetClock overrides the clock, for tests.
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// CtxNotifier adapts the center to the remote access layer's failure hook,
// routing each failure to the session recorded in the request context.
type CtxNotifier struct {
	Center *Center
}

func (n CtxNotifier) RequestFailed(ctx context.Context, message string) {
	n.Center.Push(session.IDFromContext(ctx), Error, message)
}
