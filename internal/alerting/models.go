package alerting

import (
	"time"
)

// EventType classifies a platform-level incident.
type EventType string

const (
	EventServerError          EventType = "server_error"
	EventDatabaseFailure      EventType = "database_failure"
	EventSecurityBreach       EventType = "security_breach"
	EventCommercialConnection EventType = "commercial_connection"
	EventPaymentFailure       EventType = "payment_failure"
	EventSystemOverload       EventType = "system_overload"
)

// Severity of a critical event.
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// CriticalEvent describes one incident to be routed to the platform operators.
type CriticalEvent struct {
	Type      EventType              `json:"type"`
	Severity  Severity               `json:"severity"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
}

// OwnerContacts holds the fixed destinations for operator alerts. Commercial
// connection events go to the dedicated commercial phone only, never to the
// primary or secondary owner phones.
type OwnerContacts struct {
	Emails          []string
	PrimaryPhone    string
	SecondaryPhone  string
	CommercialPhone string
	PushToken       string
	Name            string
}

// CommercialLogin carries the identity of a commercial user session.
type CommercialLogin struct {
	UserID int64
	Name   string
	Email  string
	Role   string
	IP     string
}

// HealthSnapshot reports the alerting system's configuration and last test run.
type HealthSnapshot struct {
	Status          string     `json:"status"`
	Timestamp       time.Time  `json:"timestamp"`
	OwnerEmails     int        `json:"owner_emails"`
	OwnerPhones     int        `json:"owner_phones"`
	CommercialPhone string     `json:"commercial_phone"`
	LastTest        *time.Time `json:"last_test"`
}

// DatabaseAlert builds a critical event for a database connection failure.
func DatabaseAlert(err error) CriticalEvent {
	return CriticalEvent{
		Type:     EventDatabaseFailure,
		Severity: SeverityCritical,
		Message:  "Database connection failure detected",
		Details: map[string]interface{}{
			"error":    err.Error(),
			"database": "PostgreSQL",
		},
		Timestamp: time.Now(),
		Source:    "database_monitor",
	}
}

// ServerErrorAlert builds a critical event for an unhandled server error.
func ServerErrorAlert(err error, endpoint, method, ip string) CriticalEvent {
	return CriticalEvent{
		Type:     EventServerError,
		Severity: SeverityCritical,
		Message:  "Server error: " + err.Error(),
		Details: map[string]interface{}{
			"error":    err.Error(),
			"endpoint": endpoint,
			"method":   method,
			"ip":       ip,
		},
		Timestamp: time.Now(),
		Source:    "http_server",
	}
}

// SecurityAlert builds a critical event for a detected security threat.
func SecurityAlert(threatType, ip, endpoint string, score int) CriticalEvent {
	return CriticalEvent{
		Type:     EventSecurityBreach,
		Severity: SeverityCritical,
		Message:  "Security threat detected: " + threatType,
		Details: map[string]interface{}{
			"threatType":  threatType,
			"ip":          ip,
			"endpoint":    endpoint,
			"threatScore": score,
		},
		Timestamp: time.Now(),
		Source:    "security_monitor",
	}
}

// PaymentAlert builds a high-severity event for a payment system failure.
func PaymentAlert(err error, amount, currency string) CriticalEvent {
	return CriticalEvent{
		Type:     EventPaymentFailure,
		Severity: SeverityHigh,
		Message:  "Payment system error detected",
		Details: map[string]interface{}{
			"error":    err.Error(),
			"amount":   amount,
			"currency": currency,
		},
		Timestamp: time.Now(),
		Source:    "payment_integration",
	}
}

// TestAlert builds a synthetic event used to verify the alerting pipeline
// end to end.
func TestAlert() CriticalEvent {
	return CriticalEvent{
		Type:     EventServerError,
		Severity: SeverityHigh,
		Message:  "Test alert from EduConnect monitoring system",
		Details: map[string]interface{}{
			"test":   true,
			"system": "critical_alerting",
		},
		Timestamp: time.Now(),
		Source:    "test_system",
	}
}
