// Package channel defines the capability interfaces for the notification
// transports and their provider-backed implementations. Senders are
// side-effecting and may be slow; every implementation bounds a single send
// with the configured timeout and reports delivery failures as typed errors.
package channel

import "context"

// Name identifies a notification transport.
type Name string

const (
	SMS      Name = "sms"
	Email    Name = "email"
	Push     Name = "push"
	WhatsApp Name = "whatsapp"
)

type SmsSender interface {
	Send(ctx context.Context, phone, text string) error
}

type EmailSender interface {
	Send(ctx context.Context, address, subject, body string) error
}

type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type WhatsAppSender interface {
	Send(ctx context.Context, number, text string) error
}
