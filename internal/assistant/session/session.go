// Package session keeps per-session conversation history.
package session

import (
	"context"
	"time"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is immutable once appended.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a snapshot; mutating it does not affect the store.
type Session struct {
	ID      string                 `json:"id"`
	History []Turn                 `json:"history"`
	Context map[string]interface{} `json:"context"`
}

// Store persists sessions. History is append-only; Clear is the only way to drop turns.
// Load of an unknown id returns an empty session, not an error.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	AppendTurn(ctx context.Context, id string, role Role, content string) error
	SetContext(ctx context.Context, id, key string, value interface{}) error
	Clear(ctx context.Context, id string) error
}

// Clock returns the current time. Stores default to time.Now.
type Clock func() time.Time
