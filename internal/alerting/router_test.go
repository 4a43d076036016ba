package alerting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educonnect/internal/common/logger"
	"educonnect/internal/template"
)

type recordingSms struct {
	mu     sync.Mutex
	phones []string
	texts  []string
	err    error
}

func (r *recordingSms) Send(ctx context.Context, phone, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phones = append(r.phones, phone)
	r.texts = append(r.texts, text)
	return r.err
}

type recordingEmail struct {
	mu        sync.Mutex
	addresses []string
	subjects  []string
	bodies    []string
	err       error
}

func (r *recordingEmail) Send(ctx context.Context, address, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses = append(r.addresses, address)
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, body)
	return r.err
}

type recordingPush struct {
	mu     sync.Mutex
	tokens []string
	err    error
}

func (r *recordingPush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
	return r.err
}

func testContacts() OwnerContacts {
	return OwnerContacts{
		Emails:          []string{"admin@educonnect.example", "support@educonnect.example"},
		PrimaryPhone:    "+237600000000",
		SecondaryPhone:  "+41760000000",
		CommercialPhone: "+41760000001",
		PushToken:       "owner-push-token",
		Name:            "Platform Administrator",
	}
}

func newTestRouter(sms *recordingSms, email *recordingEmail, push *recordingPush) *Router {
	return NewRouter(testContacts(), template.NewRegistry(), sms, email, push, logger.NewNoOpLogger())
}

func TestRouteSystemAlert_FansOutToAllOwnerDestinations(t *testing.T) {
	sms, email, push := &recordingSms{}, &recordingEmail{}, &recordingPush{}
	r := newTestRouter(sms, email, push)

	err := r.RouteSystemAlert(context.Background(), DatabaseAlert(errors.New("connection refused")))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"admin@educonnect.example", "support@educonnect.example"}, email.addresses)
	assert.ElementsMatch(t, []string{"+237600000000", "+41760000000"}, sms.phones)
	assert.Empty(t, push.tokens)

	require.Len(t, email.subjects, 2)
	assert.Contains(t, email.subjects[0], "database_failure")
	assert.Contains(t, email.bodies[0], "connection refused")
	require.Len(t, sms.texts, 2)
	assert.Contains(t, sms.texts[0], "database_failure")
}

func TestRouteCommercialConnection_NeverContactsOwnerPhones(t *testing.T) {
	sms, email, push := &recordingSms{}, &recordingEmail{}, &recordingPush{}
	r := newTestRouter(sms, email, push)

	err := r.RouteCommercialConnection(context.Background(), CommercialLogin{
		UserID: 9, Name: "Didier", Email: "didier@corp.example", Role: "Commercial", IP: "10.0.0.1",
	})
	require.NoError(t, err)

	require.Len(t, sms.phones, 1)
	assert.Equal(t, "+41760000001", sms.phones[0])
	assert.Contains(t, sms.texts[0], "Didier")

	assert.Equal(t, []string{"owner-push-token"}, push.tokens)
	assert.Empty(t, email.addresses, "commercial connections must not email the owners")
}

func TestRouteCommercialConnection_FallsBackToEmailForDisplayName(t *testing.T) {
	sms, email, push := &recordingSms{}, &recordingEmail{}, &recordingPush{}
	r := newTestRouter(sms, email, push)

	err := r.RouteCommercialConnection(context.Background(), CommercialLogin{
		UserID: 9, Email: "didier@corp.example",
	})
	require.NoError(t, err)
	require.Len(t, sms.texts, 1)
	assert.Contains(t, sms.texts[0], "didier@corp.example")
}

func TestRouteSystemAlert_PartialFailureStillDeliversRest(t *testing.T) {
	sms := &recordingSms{}
	email := &recordingEmail{err: errors.New("smtp down")}
	r := newTestRouter(sms, email, &recordingPush{})

	err := r.RouteSystemAlert(context.Background(), ServerErrorAlert(errors.New("boom"), "/api/x", "GET", "10.0.0.2"))
	require.NoError(t, err, "partial failure must not fail the route")
	assert.Len(t, sms.phones, 2)
}

func TestRouteSystemAlert_AllDestinationsFailedReturnsError(t *testing.T) {
	sms := &recordingSms{err: errors.New("sns down")}
	email := &recordingEmail{err: errors.New("smtp down")}
	r := newTestRouter(sms, email, &recordingPush{})

	err := r.RouteSystemAlert(context.Background(), DatabaseAlert(errors.New("boom")))
	require.Error(t, err)
}

type slowSms struct {
	recordingSms
	delay time.Duration
}

func (s *slowSms) Send(ctx context.Context, phone, text string) error {
	time.Sleep(s.delay)
	return s.recordingSms.Send(ctx, phone, text)
}

type slowEmail struct {
	recordingEmail
	delay time.Duration
}

func (s *slowEmail) Send(ctx context.Context, address, subject, body string) error {
	time.Sleep(s.delay)
	return s.recordingEmail.Send(ctx, address, subject, body)
}

type slowPush struct {
	recordingPush
	delay time.Duration
}

func (s *slowPush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	time.Sleep(s.delay)
	return s.recordingPush.Send(ctx, token, title, body, data)
}

func TestRouteSystemAlert_DestinationsSendConcurrently(t *testing.T) {
	delay := 100 * time.Millisecond
	sms := &slowSms{delay: delay}
	email := &slowEmail{delay: delay}
	r := NewRouter(testContacts(), template.NewRegistry(), sms, email, &recordingPush{}, logger.NewNoOpLogger())

	started := time.Now()
	err := r.RouteSystemAlert(context.Background(), DatabaseAlert(errors.New("boom")))
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Len(t, email.addresses, 2)
	assert.Len(t, sms.phones, 2)
	// 2 emails + 2 SMS at 100ms each would take 400ms serialized.
	assert.Less(t, elapsed, 250*time.Millisecond, "destination sends must overlap, not serialize")
}

func TestRouteCommercialConnection_DestinationsSendConcurrently(t *testing.T) {
	delay := 100 * time.Millisecond
	sms := &slowSms{delay: delay}
	push := &slowPush{delay: delay}
	r := NewRouter(testContacts(), template.NewRegistry(), sms, &recordingEmail{}, push, logger.NewNoOpLogger())

	started := time.Now()
	err := r.RouteCommercialConnection(context.Background(), CommercialLogin{
		UserID: 9, Name: "Didier", Email: "didier@corp.example",
	})
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Len(t, sms.phones, 1)
	assert.Len(t, push.tokens, 1)
	assert.Less(t, elapsed, 180*time.Millisecond, "push and SMS must overlap, not serialize")
}

func TestRouteTestAlert_RecordsLastTestInHealth(t *testing.T) {
	sms, email, push := &recordingSms{}, &recordingEmail{}, &recordingPush{}
	r := newTestRouter(sms, email, push)

	assert.Nil(t, r.Health().LastTest)

	require.NoError(t, r.RouteTestAlert(context.Background()))

	health := r.Health()
	require.NotNil(t, health.LastTest)
	assert.Equal(t, "operational", health.Status)
	assert.Equal(t, 2, health.OwnerEmails)
	assert.Equal(t, 2, health.OwnerPhones)
	assert.Equal(t, "+41760000001", health.CommercialPhone)
}
