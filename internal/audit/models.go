// Package audit records the actions that matter for this marketplace:
// registrations, gateway auto-provisioning, listing creation, and seller
// promotion outcomes. Events are buffered in-process and drained by a worker
// into a sink (Kafka when configured, the Postgres outbox otherwise), so the
// request path never blocks on audit delivery.
package audit

import (
	"context"
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionUserRegistered        Action = "user.registered"
	ActionUserAutoProvisioned   Action = "user.auto_provisioned"
	ActionListingCreated        Action = "listing.created"
	ActionSellerPromoted        Action = "seller.promoted"
	ActionSellerPromotionFailed Action = "seller.promotion_failed"
)

// Event is one audit record. SubjectID is the credential subject the action
// concerns; client fields come from request metadata middleware.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	SubjectID string    `json:"subject_id"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink persists or publishes events. Implementations: the Postgres outbox
// store and the Kafka publisher.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
