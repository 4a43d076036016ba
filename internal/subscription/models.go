package subscription

import (
	"time"

	"educonnect/internal/template"
)

// Status of a user's subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

// Subscriber is one user's contact details plus subscription state, as read
// from the users table.
type Subscriber struct {
	UserID            int64
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	WhatsAppNumber    string
	PushToken         string
	PreferredLanguage template.Language
	Status            Status
	PlanID            string
	PlanName          string
	SubscriptionStart time.Time
	SubscriptionEnd   time.Time
}

// HasActiveSubscription reports whether the subscriber's current period is
// still running at the given instant.
func (s *Subscriber) HasActiveSubscription(now time.Time) bool {
	return s.Status == StatusActive && !s.SubscriptionEnd.IsZero() && s.SubscriptionEnd.After(now)
}

// Renewal is the outcome of processing one subscription renewal.
type Renewal struct {
	UserID            int64     `json:"userId"`
	PlanID            string    `json:"planId"`
	SubscriptionStart time.Time `json:"subscriptionStart"`
	SubscriptionEnd   time.Time `json:"subscriptionEnd"`
	Immediate         bool      `json:"immediate"`
	Message           string    `json:"message"`
}

// ScanReport summarizes one reminder scan pass.
type ScanReport struct {
	Checked  int `json:"checked"`
	Sent     int `json:"sent"`
	Skipped  int `json:"skipped"`
	Failures int `json:"failures"`
}

func languageOrDefault(code string) template.Language {
	if template.Language(code) == template.LangFR {
		return template.LangFR
	}
	return template.LangEN
}

// DaysUntil returns the number of whole days from now until t, rounded up.
// A subscription ending in 6 days and 1 hour counts as 7 days away.
func DaysUntil(now, t time.Time) int {
	d := t.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
