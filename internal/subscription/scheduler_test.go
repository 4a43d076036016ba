package subscription

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/common/logger"
	"educonnect/internal/dispatch"
	"educonnect/internal/template"
)

// memoryStore is an in-memory ReminderStore mirroring the SETNX semantics.
type memoryStore struct {
	mu      sync.Mutex
	claimed map[string]bool
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{claimed: map[string]bool{}}
}

func (m *memoryStore) Claim(ctx context.Context, userID int64, subscriptionEnd time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	full := fmt.Sprintf("%d:%s", userID, subscriptionEnd.UTC().Format("2006-01-02"))
	if m.claimed[full] {
		return false, nil
	}
	m.claimed[full] = true
	return true, nil
}

type captureNotifier struct {
	mu     sync.Mutex
	events []dispatch.Event
}

func (c *captureNotifier) Dispatch(ctx context.Context, event dispatch.Event) []dispatch.ChannelResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return []dispatch.ChannelResult{{Channel: "push", Status: dispatch.StatusSent}}
}

func newTestScheduler(repo Repository, store ReminderStore, notifier Notifier, now time.Time) *Scheduler {
	s := NewScheduler(repo, store, notifier, logger.NewNoOpLogger(), "@every 1h", 7)
	s.now = func() time.Time { return now }
	return s
}

func TestRunOnce_SendsReminderAtExactlySevenDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	sub := testSubscriber(now.AddDate(0, 0, 7))
	repo := &fakeRepo{expiring: []Subscriber{sub}}
	notifier := &captureNotifier{}

	s := newTestScheduler(repo, newMemoryStore(), notifier, now)
	report, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	assert.Equal(t, 1, report.Sent)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, template.KeySubscriptionReminder, event.TemplateKey)
	assert.Equal(t, dispatch.PriorityHigh, event.Priority)
	assert.Equal(t, int64(42), event.Recipient.UserID)
	assert.Equal(t, template.LangFR, event.Recipient.PreferredLanguage)
	require.Len(t, event.Args, 5)
	assert.Equal(t, "7", event.Args[2])
}

func TestRunOnce_SkipsOutsideExactLeadTime(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
	}{
		{"six days away", now.AddDate(0, 0, 6)},
		{"eight days away", now.AddDate(0, 0, 8)},
		{"one day away", now.AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{expiring: []Subscriber{testSubscriber(tt.end)}}
			notifier := &captureNotifier{}

			s := newTestScheduler(repo, newMemoryStore(), notifier, now)
			report, err := s.RunOnce(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 0, report.Sent)
			assert.Equal(t, 1, report.Skipped)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestRunOnce_PartialDaysRoundUp(t *testing.T) {
	// 6 days and 1 hour away rounds up to 7 days and triggers.
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	sub := testSubscriber(now.Add(6*24*time.Hour + time.Hour))
	repo := &fakeRepo{expiring: []Subscriber{sub}}
	notifier := &captureNotifier{}

	s := newTestScheduler(repo, newMemoryStore(), notifier, now)
	report, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
}

func TestRunOnce_SecondScanDoesNotResend(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	sub := testSubscriber(now.AddDate(0, 0, 7))
	repo := &fakeRepo{expiring: []Subscriber{sub}}
	notifier := &captureNotifier{}
	store := newMemoryStore()

	s := newTestScheduler(repo, store, notifier, now)

	first, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)

	assert.Len(t, notifier.events, 1, "exactly one reminder per (user, subscription end)")
}

func TestRunOnce_NewEndDateGetsNewReminder(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	notifier := &captureNotifier{}

	first := testSubscriber(now.AddDate(0, 0, 7))
	repo := &fakeRepo{expiring: []Subscriber{first}}
	s := newTestScheduler(repo, store, notifier, now)
	_, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	// After a renewal the subscription end moves; the next cycle is a fresh key.
	later := now.AddDate(0, 1, 0)
	renewed := testSubscriber(later.AddDate(0, 0, 7))
	repo.expiring = []Subscriber{renewed}
	s.now = func() time.Time { return later }

	report, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Len(t, notifier.events, 2)
}

func TestRunOnce_ClaimFailureCountsAsFailureNotSend(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{expiring: []Subscriber{testSubscriber(now.AddDate(0, 0, 7))}}
	notifier := &captureNotifier{}
	store := newMemoryStore()
	store.err = apperrors.NewReminderStoreFailedError(assert.AnError)

	s := newTestScheduler(repo, store, notifier, now)
	report, err := s.RunOnce(context.Background())

	require.NoError(t, err, "one bad subscriber must not fail the scan")
	assert.Equal(t, 1, report.Failures)
	assert.Empty(t, notifier.events, "no send without a successful claim")
}

func TestRunOnce_RepositoryErrorAbortsScan(t *testing.T) {
	repo := &fakeRepo{expiringErr: apperrors.NewSubscriptionQueryFailedError(assert.AnError)}
	s := newTestScheduler(repo, newMemoryStore(), &captureNotifier{}, time.Now())

	report, err := s.RunOnce(context.Background())

	require.Error(t, err)
	assert.Nil(t, report)
}

func TestSendTestReminder_BypassesIdempotencyStore(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	sub := testSubscriber(now.AddDate(0, 0, 7))
	repo := &fakeRepo{subscribers: map[int64]*Subscriber{42: &sub}}
	notifier := &captureNotifier{}
	store := newMemoryStore()

	s := newTestScheduler(repo, store, notifier, now)

	require.NoError(t, s.SendTestReminder(context.Background(), 42))
	require.NoError(t, s.SendTestReminder(context.Background(), 42))

	assert.Len(t, notifier.events, 2, "test reminders are repeatable")
	assert.Empty(t, store.claimed)
}

func TestSendTestReminder_UnknownUser(t *testing.T) {
	repo := &fakeRepo{subscribers: map[int64]*Subscriber{}}
	s := newTestScheduler(repo, newMemoryStore(), &captureNotifier{}, time.Now())

	err := s.SendTestReminder(context.Background(), 99)

	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, stdErr.Code)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"exactly seven days", now.AddDate(0, 0, 7), 7},
		{"six days and one hour", now.Add(6*24*time.Hour + time.Hour), 7},
		{"six days sharp", now.Add(6 * 24 * time.Hour), 6},
		{"in the past", now.Add(-36 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(now, tt.t))
		})
	}
}
