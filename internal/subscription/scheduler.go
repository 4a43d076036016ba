package subscription

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"educonnect/internal/common/logger"
	"educonnect/internal/common/metrics"
	"educonnect/internal/dispatch"
	"educonnect/internal/template"
)

// Notifier is the slice of the dispatcher the scheduler needs.
type Notifier interface {
	Dispatch(ctx context.Context, event dispatch.Event) []dispatch.ChannelResult
}

// Scheduler runs the hourly subscription reminder scan. A subscriber is
// reminded when their subscription ends in exactly leadDays whole days
// (rounded up), and the durable ReminderStore guarantees at most one reminder
// per (user, subscription end) regardless of restarts.
type Scheduler struct {
	repo     Repository
	store    ReminderStore
	notifier Notifier
	log      logger.Logger
	leadDays int
	schedule string

	cron *cron.Cron
	now  func() time.Time
}

func NewScheduler(repo Repository, store ReminderStore, notifier Notifier, log logger.Logger, schedule string, leadDays int) *Scheduler {
	return &Scheduler{
		repo:     repo,
		store:    store,
		notifier: notifier,
		log:      log,
		leadDays: leadDays,
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the scan with the cron runner and performs one immediate
// scan so a restart never waits a full period to catch up.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.log.WithError(err).Error("Reminder scan failed", nil)
		}
	})
	if err != nil {
		return fmt.Errorf("register reminder scan: %w", err)
	}
	s.cron.Start()
	s.log.Info("Subscription reminder scheduler started", map[string]interface{}{
		"schedule":  s.schedule,
		"lead_days": s.leadDays,
	})

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.WithError(err).Error("Initial reminder scan failed", nil)
	}
	return nil
}

// Stop halts the cron runner and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.log.Info("Subscription reminder scheduler stopped", nil)
	}
}

// RunOnce performs a single scan over soon-expiring subscribers. A failure on
// one subscriber is logged and counted but never aborts the scan.
func (s *Scheduler) RunOnce(ctx context.Context) (*ScanReport, error) {
	started := s.now()
	defer func() {
		metrics.ReminderScanDuration.Observe(time.Since(started).Seconds())
	}()

	subs, err := s.repo.ExpiringWithin(ctx, s.leadDays)
	if err != nil {
		return nil, err
	}

	report := &ScanReport{Checked: len(subs)}
	for i := range subs {
		sub := &subs[i]
		if DaysUntil(s.now(), sub.SubscriptionEnd) != s.leadDays {
			report.Skipped++
			continue
		}

		claimed, err := s.store.Claim(ctx, sub.UserID, sub.SubscriptionEnd)
		if err != nil {
			report.Failures++
			s.log.WithError(err).Error("Reminder claim failed", map[string]interface{}{
				"user_id": sub.UserID,
			})
			continue
		}
		if !claimed {
			report.Skipped++
			continue
		}

		s.sendReminder(ctx, sub, s.leadDays)
		report.Sent++
		metrics.RemindersSent.Inc()
	}

	s.log.Info("Reminder scan complete", map[string]interface{}{
		"checked":  report.Checked,
		"sent":     report.Sent,
		"skipped":  report.Skipped,
		"failures": report.Failures,
	})
	return report, nil
}

// SendTestReminder pushes a reminder to one user without touching the
// idempotency store, for operator verification.
func (s *Scheduler) SendTestReminder(ctx context.Context, userID int64) error {
	sub, err := s.repo.GetSubscriber(ctx, userID)
	if err != nil {
		return err
	}
	s.sendReminder(ctx, sub, s.leadDays)
	return nil
}

func (s *Scheduler) sendReminder(ctx context.Context, sub *Subscriber, daysLeft int) {
	expiry := sub.SubscriptionEnd
	if expiry.IsZero() {
		expiry = s.now().AddDate(0, 0, daysLeft)
	}
	results := s.notifier.Dispatch(ctx, dispatch.Event{
		TemplateKey: template.KeySubscriptionReminder,
		Args: []string{
			sub.FirstName,
			sub.LastName,
			strconv.Itoa(daysLeft),
			expiry.Format("02/01/2006"),
			sub.PlanName,
		},
		Priority: dispatch.PriorityHigh,
		Recipient: dispatch.ContactRef{
			UserID:            sub.UserID,
			Phone:             sub.Phone,
			Email:             sub.Email,
			WhatsAppNumber:    sub.WhatsAppNumber,
			PushToken:         sub.PushToken,
			PreferredLanguage: sub.PreferredLanguage,
		},
	})

	for _, res := range results {
		if res.Status == dispatch.StatusFailed {
			s.log.Error("Reminder channel send failed", map[string]interface{}{
				"user_id": sub.UserID,
				"channel": string(res.Channel),
				"error":   res.Err.Error(),
			})
		}
	}
}
