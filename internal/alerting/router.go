package alerting

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"educonnect/internal/channel"
	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/common/logger"
	"educonnect/internal/common/metrics"
	"educonnect/internal/template"
)

const (
	policySystemHealth = "system_health"
	policyCommercial   = "commercial"
)

var errAllDestinationsFailed = errors.New("all alert destinations failed")

// Router delivers critical events to the platform operators. Two policies
// exist: system-health events fan out to every owner email plus both owner
// phones, while commercial connection events reach the push channel and the
// dedicated commercial phone only.
//
// Destinations are sent concurrently and best effort: a slow or failed send
// is logged and counted but never delays or stops delivery to the remaining
// destinations.
type Router struct {
	contacts OwnerContacts
	registry *template.Registry
	sms      channel.SmsSender
	email    channel.EmailSender
	push     channel.PushSender
	log      logger.Logger

	mu       sync.Mutex
	lastTest *time.Time
}

func NewRouter(contacts OwnerContacts, registry *template.Registry, sms channel.SmsSender, email channel.EmailSender, push channel.PushSender, log logger.Logger) *Router {
	log.Info("Critical alert router initialized", map[string]interface{}{
		"owner_emails":     len(contacts.Emails),
		"primary_phone":    contacts.PrimaryPhone,
		"commercial_phone": contacts.CommercialPhone,
	})
	return &Router{
		contacts: contacts,
		registry: registry,
		sms:      sms,
		email:    email,
		push:     push,
		log:      log,
	}
}

// RouteSystemAlert sends a system-health event to all owner emails and both
// owner phones. It returns an error only when every destination failed.
func (r *Router) RouteSystemAlert(ctx context.Context, event CriticalEvent) error {
	r.log.Warn("Routing critical system alert", map[string]interface{}{
		"event_type": string(event.Type),
		"severity":   string(event.Severity),
		"message":    event.Message,
		"source":     event.Source,
	})
	metrics.AlertsRouted.WithLabelValues(string(event.Type), policySystemHealth).Inc()

	emailTmpl, err := r.registry.ResolveEmail(template.KeyCriticalAlert, template.LangEN)
	if err != nil {
		return err
	}
	emailArgs := []string{
		string(event.Type),
		string(event.Severity),
		event.Timestamp.UTC().Format(time.RFC3339),
		event.Message,
		formatDetails(event.Details),
		event.Source,
	}
	smsFn, err := r.registry.ResolveSMS(template.KeyCriticalAlert, template.LangEN)
	if err != nil {
		return err
	}
	smsText := smsFn(string(event.Type), event.Message, event.Timestamp.Format("15:04:05"))

	var dests []destination
	if r.email != nil {
		for _, addr := range r.contacts.Emails {
			addr := addr
			dests = append(dests, destination{channel: channel.Email, address: addr, send: func(ctx context.Context) error {
				return r.email.Send(ctx, addr, emailTmpl.Subject(emailArgs...), emailTmpl.Body(emailArgs...))
			}})
		}
	}
	if r.sms != nil {
		for _, phone := range []string{r.contacts.PrimaryPhone, r.contacts.SecondaryPhone} {
			if phone == "" {
				continue
			}
			phone := phone
			dests = append(dests, destination{channel: channel.SMS, address: phone, send: func(ctx context.Context) error {
				return r.sms.Send(ctx, phone, smsText)
			}})
		}
	}

	attempted, failed := r.fanOut(ctx, event.Type, dests)
	if attempted > 0 && failed == attempted {
		return apperrors.NewDeliveryFailedError("alerting", errAllDestinationsFailed)
	}
	return nil
}

// RouteCommercialConnection notifies the owner of a commercial user login.
// Delivery is a push notification plus an SMS to the dedicated commercial
// phone; the owner phones are never contacted for this event type.
func (r *Router) RouteCommercialConnection(ctx context.Context, login CommercialLogin) error {
	event := CriticalEvent{
		Type:     EventCommercialConnection,
		Severity: SeverityHigh,
		Message:  "Commercial user connected: " + displayName(login),
		Details: map[string]interface{}{
			"userId": login.UserID,
			"email":  login.Email,
			"name":   login.Name,
			"role":   login.Role,
			"ip":     login.IP,
		},
		Timestamp: time.Now(),
		Source:    "authentication_system",
	}

	r.log.Info("Routing commercial connection alert", map[string]interface{}{
		"user_id": login.UserID,
		"email":   login.Email,
	})
	metrics.AlertsRouted.WithLabelValues(string(event.Type), policyCommercial).Inc()

	var dests []destination

	if r.push != nil && r.contacts.PushToken != "" {
		title, _, err := r.registry.ResolvePush(template.KeyCommercialConnection, template.LangEN)
		if err == nil {
			dests = append(dests, destination{channel: channel.Push, address: r.contacts.PushToken, send: func(ctx context.Context) error {
				data := map[string]string{"type": string(EventCommercialConnection)}
				return r.push.Send(ctx, r.contacts.PushToken, title, event.Message, data)
			}})
		}
	}

	smsFn, err := r.registry.ResolveSMS(template.KeyCommercialConnection, template.LangEN)
	if err != nil {
		return err
	}
	if r.sms != nil && r.contacts.CommercialPhone != "" {
		smsText := smsFn(displayName(login), event.Timestamp.Format("15:04:05"))
		dests = append(dests, destination{channel: channel.SMS, address: r.contacts.CommercialPhone, send: func(ctx context.Context) error {
			return r.sms.Send(ctx, r.contacts.CommercialPhone, smsText)
		}})
	}

	attempted, failed := r.fanOut(ctx, event.Type, dests)
	if attempted > 0 && failed == attempted {
		return apperrors.NewDeliveryFailedError("alerting", errAllDestinationsFailed)
	}
	return nil
}

// RouteTestAlert pushes a synthetic system alert through the full pipeline
// and records the test time for the health report.
func (r *Router) RouteTestAlert(ctx context.Context) error {
	err := r.RouteSystemAlert(ctx, TestAlert())
	now := time.Now()
	r.mu.Lock()
	r.lastTest = &now
	r.mu.Unlock()
	return err
}

// Health reports the router's destination configuration.
func (r *Router) Health() HealthSnapshot {
	phones := 0
	if r.contacts.PrimaryPhone != "" {
		phones++
	}
	if r.contacts.SecondaryPhone != "" {
		phones++
	}
	r.mu.Lock()
	lastTest := r.lastTest
	r.mu.Unlock()
	return HealthSnapshot{
		Status:          "operational",
		Timestamp:       time.Now(),
		OwnerEmails:     len(r.contacts.Emails),
		OwnerPhones:     phones,
		CommercialPhone: r.contacts.CommercialPhone,
		LastTest:        lastTest,
	}
}

// destination is one pending alert send.
type destination struct {
	channel channel.Name
	address string
	send    func(ctx context.Context) error
}

// fanOut runs every destination send concurrently. One destination's latency
// or failure never delays the others; the caller gets back the attempted and
// failed counts once all sends have finished.
func (r *Router) fanOut(ctx context.Context, eventType EventType, dests []destination) (attempted, failed int) {
	var wg sync.WaitGroup
	var failures int64
	for _, d := range dests {
		wg.Add(1)
		go func(d destination) {
			defer wg.Done()
			if err := d.send(ctx); err != nil {
				atomic.AddInt64(&failures, 1)
				r.recordFailure(eventType, d.channel, d.address, err)
			}
		}(d)
	}
	wg.Wait()
	return len(dests), int(failures)
}

func (r *Router) recordFailure(eventType EventType, ch channel.Name, address string, err error) {
	metrics.AlertSendsFailed.WithLabelValues(string(eventType), string(ch)).Inc()
	r.log.WithError(err).Error("Alert destination send failed", map[string]interface{}{
		"event_type":  string(eventType),
		"channel":     string(ch),
		"destination": address,
	})
}

func formatDetails(details map[string]interface{}) string {
	if len(details) == 0 {
		return "{}"
	}
	b, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func displayName(login CommercialLogin) string {
	if login.Name != "" {
		return login.Name
	}
	if login.Email != "" {
		return login.Email
	}
	return "Unknown"
}
