// Package events publishes account audit events to the message broker.
package events

import (
	"context"
	"time"
)

// AuditQueue is the durable queue audit events are routed to.
const AuditQueue = "account.audit"

const (
	ActionAccountCreated = "account.created"
	ActionLogout         = "account.logout"
	ActionAdminUpdate    = "admin.account_updated"
	ActionAdminDelete    = "admin.account_deleted"
	ActionAdminRevoke    = "admin.tokens_revoked"
)

// AuditEvent describes one security relevant change to an account.
type AuditEvent struct {
	Action    string         `json:"action"`
	ActorID   *uint          `json:"actor_id,omitempty"`
	TargetID  uint           `json:"target_id"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event AuditEvent) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, AuditEvent) error { return nil }

func (Noop) Close() error { return nil }
