package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"educonnect/internal/common/logger"
	"educonnect/internal/common/metrics"
)

// RenewalProcessor applies subscription renewals with date stacking: when the
// user still has an active period, the new one starts where the current one
// ends, so renewing early never costs days.
type RenewalProcessor struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewRenewalProcessor(repo Repository, log logger.Logger) *RenewalProcessor {
	return &RenewalProcessor{repo: repo, log: log, now: time.Now}
}

// Renew processes one paid renewal for the user. The period write is a single
// statement; there is no state where the plan changed but the dates did not.
func (p *RenewalProcessor) Renew(ctx context.Context, userID int64, planID, paymentIntentID string) (*Renewal, error) {
	sub, err := p.repo.GetSubscriber(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := p.now()
	var start time.Time
	if sub.HasActiveSubscription(now) {
		start = sub.SubscriptionEnd
		p.log.Info("Active subscription found, stacking renewal", map[string]interface{}{
			"user_id":     userID,
			"current_end": sub.SubscriptionEnd,
		})
	} else {
		start = now
		p.log.Info("No active subscription, renewal starts immediately", map[string]interface{}{
			"user_id": userID,
		})
	}

	end := periodEnd(start, planID)

	if err := p.repo.ApplyRenewal(ctx, userID, planID, paymentIntentID, start, end); err != nil {
		return nil, err
	}

	immediate := !start.After(now.Add(time.Minute))
	mode := "stacked"
	message := fmt.Sprintf("Subscription will start on %s (when current subscription ends)", start.Format("2006-01-02"))
	if immediate {
		mode = "immediate"
		message = "Subscription activated immediately"
	}
	metrics.RenewalsProcessed.WithLabelValues(mode).Inc()

	p.log.Info("Subscription renewed", map[string]interface{}{
		"user_id": userID,
		"plan_id": planID,
		"start":   start,
		"end":     end,
		"mode":    mode,
	})

	return &Renewal{
		UserID:            userID,
		PlanID:            planID,
		SubscriptionStart: start,
		SubscriptionEnd:   end,
		Immediate:         immediate,
		Message:           message,
	}, nil
}

// periodEnd derives the period length from the plan identifier: annual and
// school plans run a year, everything else a month.
func periodEnd(start time.Time, planID string) time.Time {
	if strings.Contains(planID, "annual") || strings.Contains(planID, "school") {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
