package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educonnect/internal/channel"
	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/common/logger"
	"educonnect/internal/template"
)

// ==========================
// Fake senders
// ==========================

type fakeSms struct {
	mu    sync.Mutex
	calls []string // phone numbers
	texts []string
	err   error
}

func (f *fakeSms) Send(ctx context.Context, phone, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, phone)
	f.texts = append(f.texts, text)
	return f.err
}

type fakeEmail struct {
	mu       sync.Mutex
	calls    []string
	subjects []string
	err      error
}

func (f *fakeEmail) Send(ctx context.Context, address, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, address)
	f.subjects = append(f.subjects, subject)
	return f.err
}

type fakePush struct {
	mu     sync.Mutex
	calls  []string
	titles []string
	bodies []string
	err    error
}

func (f *fakePush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, token)
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return f.err
}

type fakeWhatsApp struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeWhatsApp) Send(ctx context.Context, number, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, number)
	return f.err
}

func fullContact() ContactRef {
	return ContactRef{
		UserID:            42,
		Phone:             "+237670000001",
		Email:             "parent@example.com",
		WhatsAppNumber:    "+237670000002",
		PushToken:         "arn:aws:sns:eu-west-1:1:endpoint/GCM/app/tok",
		PreferredLanguage: template.LangFR,
	}
}

func newTestDispatcher(sms *fakeSms, email *fakeEmail, push *fakePush, wa *fakeWhatsApp) *Dispatcher {
	return NewDispatcher(template.NewRegistry(), sms, email, push, wa, logger.NewNoOpLogger())
}

// ==========================
// Channel selection
// ==========================

func TestDispatch_UrgentWithAllAddressesAttemptsFourChannels(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyEmergencyAlert,
		Args:        []string{"Junior", "fire drill"},
		Priority:    PriorityUrgent,
		Recipient:   fullContact(),
	})

	require.Len(t, results, 4)
	for _, res := range results {
		assert.Equal(t, StatusSent, res.Status, "channel %s", res.Channel)
	}
	assert.Len(t, push.calls, 1)
	assert.Len(t, sms.calls, 1)
	assert.Len(t, wa.calls, 1)
	assert.Len(t, email.calls, 1)
}

func TestDispatch_LowPriorityPhoneOnlyAttemptsPushOnly(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	contact := ContactRef{UserID: 7, Phone: "+237670000001", PushToken: "tok", PreferredLanguage: template.LangEN}
	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyNewGrade,
		Args:        []string{"Aïcha", "Maths", "16/20"},
		Priority:    PriorityLow,
		Recipient:   contact,
	})

	require.Len(t, results, 1)
	assert.Equal(t, channel.Push, results[0].Channel)
	assert.Empty(t, sms.calls)
	assert.Empty(t, email.calls)
	assert.Empty(t, wa.calls)
}

func TestDispatch_HighPriorityAddsSMSAndEmailButNotWhatsApp(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyAbsenceAlert,
		Args:        []string{"Junior", "2025-03-14", ""},
		Priority:    PriorityHigh,
		Recipient:   fullContact(),
	})

	require.Len(t, results, 3)
	assert.Len(t, sms.calls, 1)
	assert.Len(t, email.calls, 1)
	assert.Empty(t, wa.calls)
}

// ==========================
// Failure independence
// ==========================

func TestDispatch_OneChannelFailureDoesNotBlockOthers(t *testing.T) {
	sms := &fakeSms{err: apperrors.NewDeliveryFailedError("sms", errors.New("quota exceeded"))}
	email, push, wa := &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyEmergencyAlert,
		Args:        []string{"Junior", "incident"},
		Priority:    PriorityUrgent,
		Recipient:   fullContact(),
	})

	require.Len(t, results, 4)
	byChannel := map[channel.Name]ChannelResult{}
	for _, res := range results {
		byChannel[res.Channel] = res
	}

	assert.Equal(t, StatusFailed, byChannel[channel.SMS].Status)
	assert.Equal(t, apperrors.ErrCodeDeliveryFailed, byChannel[channel.SMS].Err.Code)
	assert.Equal(t, StatusSent, byChannel[channel.Push].Status)
	assert.Equal(t, StatusSent, byChannel[channel.Email].Status)
	assert.Equal(t, StatusSent, byChannel[channel.WhatsApp].Status)
}

// ==========================
// Template handling
// ==========================

func TestDispatch_UnknownTemplateFailsSMSButPushFallsBackToGenericNotice(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	results := d.Dispatch(context.Background(), Event{
		TemplateKey: "ghost_template",
		Priority:    PriorityUrgent,
		Recipient:   fullContact(),
	})

	byChannel := map[channel.Name]ChannelResult{}
	for _, res := range results {
		byChannel[res.Channel] = res
	}

	// SMS must fail closed, never send an untranslated body.
	assert.Equal(t, StatusFailed, byChannel[channel.SMS].Status)
	assert.Equal(t, apperrors.ErrCodeTemplateNotFound, byChannel[channel.SMS].Err.Code)
	assert.Empty(t, sms.calls)

	// Push degrades to the generic notice in the recipient's language.
	assert.Equal(t, StatusSent, byChannel[channel.Push].Status)
	require.Len(t, push.bodies, 1)
	assert.Contains(t, push.bodies[0], "nouvelle notification")
}

func TestDispatch_LanguagePreferenceOverridesHint(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	contact := fullContact()
	contact.PreferredLanguage = template.LangFR
	d.Dispatch(context.Background(), Event{
		TemplateKey:  template.KeyNewGrade,
		LanguageHint: template.LangEN,
		Args:         []string{"Aïcha", "Maths", "16/20"},
		Priority:     PriorityHigh,
		Recipient:    contact,
	})

	require.Len(t, sms.texts, 1)
	assert.Contains(t, sms.texts[0], "Bravo!")
}

func TestDispatch_LanguageHintUsedWhenNoPreference(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	contact := fullContact()
	contact.PreferredLanguage = ""
	d.Dispatch(context.Background(), Event{
		TemplateKey:  template.KeyNewGrade,
		LanguageHint: template.LangEN,
		Args:         []string{"Aïcha", "Maths", "16/20"},
		Priority:     PriorityHigh,
		Recipient:    contact,
	})

	require.Len(t, sms.texts, 1)
	assert.Contains(t, sms.texts[0], "Well done!")
}

// ==========================
// Disabled channels and missing addresses
// ==========================

func TestDispatch_DisabledSMSReportsChannelDisabled(t *testing.T) {
	email, push, wa := &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := NewDispatcher(template.NewRegistry(), nil, email, push, wa, logger.NewNoOpLogger())

	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyEmergencyAlert,
		Args:        []string{"Junior", "incident"},
		Priority:    PriorityHigh,
		Recipient:   fullContact(),
	})

	byChannel := map[channel.Name]ChannelResult{}
	for _, res := range results {
		byChannel[res.Channel] = res
	}
	assert.Equal(t, StatusFailed, byChannel[channel.SMS].Status)
	assert.Equal(t, apperrors.ErrCodeChannelDisabled, byChannel[channel.SMS].Err.Code)
}

func TestDispatch_MissingPushTokenReportsNoAddress(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	d := newTestDispatcher(sms, email, push, wa)

	contact := fullContact()
	contact.PushToken = ""
	results := d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyNewGrade,
		Args:        []string{"Aïcha", "Maths", "16/20"},
		Priority:    PriorityLow,
		Recipient:   contact,
	})

	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, apperrors.ErrCodeNoAddress, results[0].Err.Code)
	assert.Empty(t, push.calls)
}

// ==========================
// Audit hook
// ==========================

type captureAudit struct {
	mu   sync.Mutex
	recs []DeliveryRecord
}

func (c *captureAudit) RecordDelivery(ctx context.Context, rec DeliveryRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, rec)
}

func TestDispatch_AuditRecorderReceivesOneRecordPerChannel(t *testing.T) {
	sms, email, push, wa := &fakeSms{}, &fakeEmail{}, &fakePush{}, &fakeWhatsApp{}
	audit := &captureAudit{}
	d := NewDispatcher(template.NewRegistry(), sms, email, push, wa, logger.NewNoOpLogger(),
		WithAuditRecorder(audit))

	d.Dispatch(context.Background(), Event{
		TemplateKey: template.KeyEmergencyAlert,
		Args:        []string{"Junior", "incident"},
		Priority:    PriorityUrgent,
		Recipient:   fullContact(),
	})

	require.Len(t, audit.recs, 4)
	assert.Equal(t, audit.recs[0].DispatchID, audit.recs[1].DispatchID)
	assert.Equal(t, int64(42), audit.recs[0].UserID)
}
