package domain

import (
	"time"
)

// Message roles within a chat session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is one persisted conversation. The ID is an opaque UUID string.
type ChatSession struct {
	ID        string
	Owner     int64
	CreatedAt time.Time
}

// ChatMessage is one entry of a session's append-only message log,
// ordered by CreatedAt within the session.
type ChatMessage struct {
	ID        int64
	ChatID    string
	Role      string
	Content   string
	CreatedAt time.Time
}
