// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"educonnect/internal/channel"
	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/common/logger"
	"educonnect/internal/common/observability"
	"educonnect/internal/template"
)

// AuditRecorder receives one record per channel send for the delivery log.
// Implementations must be best-effort; the dispatcher ignores their outcome.
type AuditRecorder interface {
	RecordDelivery(ctx context.Context, rec DeliveryRecord)
}

// Dispatcher resolves a logical notification event into concrete channel
// sends. Channel senders left nil are treated as disabled by configuration.
type Dispatcher struct {
	registry *template.Registry
	sms      channel.SmsSender
	email    channel.EmailSender
	push     channel.PushSender
	whatsapp channel.WhatsAppSender
	logger   logger.Logger
	obs      *observability.Observability
	audit    AuditRecorder
}

type Option func(*Dispatcher)

func WithAuditRecorder(audit AuditRecorder) Option {
	return func(d *Dispatcher) { d.audit = audit }
}

func WithObservability(obs *observability.Observability) Option {
	return func(d *Dispatcher) { d.obs = obs }
}

func NewDispatcher(
	registry *template.Registry,
	sms channel.SmsSender,
	email channel.EmailSender,
	push channel.PushSender,
	whatsapp channel.WhatsAppSender,
	log logger.Logger,
	opts ...Option,
) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		sms:      sms,
		email:    email,
		push:     push,
		whatsapp: whatsapp,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch fans the event out to every channel its priority and the
// recipient's addresses select. All sends run concurrently; one channel's
// failure never cancels another, and Dispatch itself never fails as a whole.
// No retries happen at this layer.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) []ChannelResult {
	dispatchID := uuid.New().String()
	lang := d.language(event)
	plan := d.plan(event)

	log := d.logger.WithFields(map[string]interface{}{
		"dispatchId":  dispatchID,
		"templateKey": event.TemplateKey,
		"priority":    event.Priority,
		"userId":      event.Recipient.UserID,
		"language":    lang,
	})
	log.Info("dispatching notification", map[string]interface{}{"channels": len(plan)})

	results := make([]ChannelResult, len(plan))
	var wg sync.WaitGroup
	for i, ch := range plan {
		wg.Add(1)
		go func(i int, ch channel.Name) {
			defer wg.Done()
			started := time.Now()
			err := d.sendOn(ctx, ch, event, lang)
			results[i] = newResult(ch, err, time.Since(started))
		}(i, ch)
	}
	wg.Wait()

	for _, res := range results {
		if res.Status == StatusFailed {
			log.Warn("channel send failed", map[string]interface{}{
				"channel":   res.Channel,
				"errorCode": res.Err.Code,
				"details":   res.Err.Details,
			})
		}
		if d.obs != nil {
			d.obs.RecordSend(ctx, string(res.Channel), res.Status)
			d.obs.RecordSendDuration(ctx, res.Duration, string(res.Channel))
		}
		if d.audit != nil {
			d.audit.RecordDelivery(ctx, DeliveryRecord{
				DispatchID:  dispatchID,
				UserID:      event.Recipient.UserID,
				TemplateKey: string(event.TemplateKey),
				Language:    string(lang),
				Priority:    string(event.Priority),
				Channel:     string(res.Channel),
				Status:      res.Status,
				ErrorCode:   errorCode(res.Err),
				DurationMS:  res.Duration.Milliseconds(),
				SentAt:      time.Now().UTC(),
			})
		}
	}

	return results
}

// plan selects the channels for one event:
// push always, SMS for high/urgent with a phone, WhatsApp for urgent with a
// number, email for anything above low with an address.
func (d *Dispatcher) plan(event Event) []channel.Name {
	channels := []channel.Name{channel.Push}

	if (event.Priority == PriorityHigh || event.Priority == PriorityUrgent) && event.Recipient.Phone != "" {
		channels = append(channels, channel.SMS)
	}
	if event.Priority == PriorityUrgent && event.Recipient.WhatsAppNumber != "" {
		channels = append(channels, channel.WhatsApp)
	}
	if event.Priority != PriorityLow && event.Recipient.Email != "" {
		channels = append(channels, channel.Email)
	}

	return channels
}

func (d *Dispatcher) language(event Event) template.Language {
	if event.Recipient.PreferredLanguage != "" {
		return event.Recipient.PreferredLanguage
	}
	if event.LanguageHint != "" {
		return event.LanguageHint
	}
	return template.LangEN
}

func (d *Dispatcher) sendOn(ctx context.Context, ch channel.Name, event Event, lang template.Language) error {
	switch ch {
	case channel.SMS:
		return d.sendSMS(ctx, event, lang)
	case channel.Email:
		return d.sendEmail(ctx, event, lang)
	case channel.Push:
		return d.sendPush(ctx, event, lang)
	case channel.WhatsApp:
		return d.sendWhatsApp(ctx, event, lang)
	}
	return apperrors.NewChannelDisabledError(string(ch))
}

// sendSMS fails closed on a missing template or language variant.
func (d *Dispatcher) sendSMS(ctx context.Context, event Event, lang template.Language) error {
	if d.sms == nil {
		return apperrors.NewChannelDisabledError(string(channel.SMS))
	}
	fn, err := d.registry.ResolveSMS(event.TemplateKey, lang)
	if err != nil {
		return err
	}
	return d.sms.Send(ctx, event.Recipient.Phone, fn(event.Args...))
}

func (d *Dispatcher) sendEmail(ctx context.Context, event Event, lang template.Language) error {
	if d.email == nil {
		return apperrors.NewChannelDisabledError(string(channel.Email))
	}
	tmpl, err := d.registry.ResolveEmail(event.TemplateKey, lang)
	if err != nil {
		return err
	}
	return d.email.Send(ctx, event.Recipient.Email, tmpl.Subject(event.Args...), tmpl.Body(event.Args...))
}

// sendPush degrades to a generic per-language notice when the template cannot
// be resolved.
func (d *Dispatcher) sendPush(ctx context.Context, event Event, lang template.Language) error {
	if d.push == nil {
		return apperrors.NewChannelDisabledError(string(channel.Push))
	}
	if event.Recipient.PushToken == "" {
		return apperrors.NewNoAddressError(string(channel.Push))
	}

	title, fn, err := d.registry.ResolvePush(event.TemplateKey, lang)
	var body string
	if err != nil {
		title, body = genericPushNotice(lang)
	} else {
		body = fn(event.Args...)
	}

	data := map[string]string{
		"templateKey": string(event.TemplateKey),
		"priority":    string(event.Priority),
	}
	return d.push.Send(ctx, event.Recipient.PushToken, title, body, data)
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, event Event, lang template.Language) error {
	if d.whatsapp == nil {
		return apperrors.NewChannelDisabledError(string(channel.WhatsApp))
	}
	fn, err := d.registry.ResolveWhatsApp(event.TemplateKey, lang)
	if err != nil {
		return err
	}
	return d.whatsapp.Send(ctx, event.Recipient.WhatsAppNumber, fn(event.Args...))
}

func genericPushNotice(lang template.Language) (string, string) {
	if lang == template.LangFR {
		return "Notification EduConnect", "Vous avez une nouvelle notification. Ouvrez l'application pour les détails."
	}
	return "EduConnect Notification", "You have a new notification. Open the app for details."
}

func newResult(ch channel.Name, err error, duration time.Duration) ChannelResult {
	if err == nil {
		return ChannelResult{Channel: ch, Status: StatusSent, Duration: duration}
	}
	stdErr, ok := err.(*apperrors.StandardError)
	if !ok {
		stdErr = apperrors.NewDeliveryFailedError(string(ch), err)
	}
	return ChannelResult{Channel: ch, Status: StatusFailed, Err: stdErr, Duration: duration}
}

func errorCode(err *apperrors.StandardError) string {
	if err == nil {
		return ""
	}
	return string(err.Code)
}
