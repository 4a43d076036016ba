// internal/dispatch/models.go
package dispatch

import (
	"time"

	"educonnect/internal/channel"
	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/template"
)

// Priority drives channel selection; see Dispatcher.plan.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ContactRef is the resolved addressable identity of a recipient. Owned by the
// user record elsewhere in the platform; read-only here.
type ContactRef struct {
	UserID            int64
	Phone             string
	Email             string
	WhatsAppNumber    string
	PushToken         string
	PreferredLanguage template.Language
}

// Event is one logical notification to a single recipient. Consumed once,
// never persisted. Args is the ordered positional payload for the template's
// fixed parameter list.
type Event struct {
	TemplateKey  template.Key
	LanguageHint template.Language
	Args         []string
	Priority     Priority
	Recipient    ContactRef
}

// Statuses
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// ChannelResult reports the outcome of one channel send attempt.
type ChannelResult struct {
	Channel  channel.Name
	Status   string
	Err      *apperrors.StandardError
	Duration time.Duration
}

// DeliveryRecord is the audit-log projection of one channel result.
type DeliveryRecord struct {
	DispatchID  string    `json:"dispatchId"`
	UserID      int64     `json:"userId"`
	TemplateKey string    `json:"templateKey"`
	Language    string    `json:"language"`
	Priority    string    `json:"priority"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	ErrorCode   string    `json:"errorCode,omitempty"`
	DurationMS  int64     `json:"durationMs"`
	SentAt      time.Time `json:"sentAt"`
}
