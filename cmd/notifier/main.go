// cmd/notifier/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"educonnect/internal/alerting"
	"educonnect/internal/audit"
	"educonnect/internal/channel"
	"educonnect/internal/common/config"
	"educonnect/internal/common/database"
	"educonnect/internal/common/logger"
	"educonnect/internal/common/observability"
	"educonnect/internal/dispatch"
	"educonnect/internal/server"
	"educonnect/internal/subscription"
	"educonnect/internal/template"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting notification service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Switch to the configured log level/format now that config is loaded.
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry (only needed for the redis reminder store) ---
	var rdb *database.RedisClient
	if cfg.Scheduler.ReminderStore == "redis" {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init channel senders ---
	// Each channel is independent: a missing or failing sender leaves that
	// channel disabled without taking down the rest of the service.
	sendTimeout := config.GetDuration(cfg.Notifications.SendTimeout)
	region := cfg.Notifications.AWS.Region

	var sms channel.SmsSender
	if cfg.Notifications.SMS.Enabled {
		sender, err := channel.NewSNSSms(ctx, region, cfg.Notifications.SMS.SenderID, sendTimeout)
		if err != nil {
			zapLog.Warn("SMS sender unavailable, channel disabled", zap.Error(err))
		} else {
			sms = sender
		}
	}

	var email channel.EmailSender
	if cfg.Notifications.Email.Enabled {
		sender, err := channel.NewSESEmail(ctx, region, cfg.Notifications.Email.FromEmail, sendTimeout)
		if err != nil {
			zapLog.Warn("Email sender unavailable, channel disabled", zap.Error(err))
		} else {
			email = sender
		}
	}

	var push channel.PushSender
	if cfg.Notifications.Push.Enabled {
		sender, err := channel.NewSNSPush(ctx, region, sendTimeout)
		if err != nil {
			zapLog.Warn("Push sender unavailable, channel disabled", zap.Error(err))
		} else {
			push = sender
		}
	}

	var whatsapp channel.WhatsAppSender
	if cfg.Notifications.WhatsApp.Enabled && cfg.Notifications.WhatsApp.AccessToken != "" {
		whatsapp = channel.NewWhatsAppClient(
			cfg.Notifications.WhatsApp.APIBaseURL,
			cfg.Notifications.WhatsApp.AccessToken,
			cfg.Notifications.WhatsApp.PhoneNumberID,
			sendTimeout,
		)
	}

	registry := template.NewRegistry()

	// --- Init delivery audit trail (optional, Elasticsearch-backed) ---
	dispatchOpts := []dispatch.Option{dispatch.WithObservability(obs)}
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("elasticsearch unavailable, delivery audit disabled", zap.Error(err))
		} else {
			deliveryLog := audit.NewDeliveryLog(esClient.Client, cfg.Database.Elasticsearch.AuditIndex, log)
			dispatchOpts = append(dispatchOpts, dispatch.WithAuditRecorder(deliveryLog))
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	dispatcher := dispatch.NewDispatcher(registry, sms, email, push, whatsapp, log, dispatchOpts...)

	// --- Init critical alert router ---
	contacts := alerting.OwnerContacts{
		Emails:          cfg.Alerting.OwnerEmails,
		PrimaryPhone:    cfg.Alerting.PrimaryPhone,
		SecondaryPhone:  cfg.Alerting.SecondaryPhone,
		CommercialPhone: cfg.Alerting.CommercialPhone,
		PushToken:       cfg.Alerting.OwnerPushToken,
		Name:            cfg.Alerting.OwnerName,
	}
	alerts := alerting.NewRouter(contacts, registry, sms, email, push, log)

	// --- Init subscription services ---
	repo := subscription.NewPostgresRepository(pg.DB)

	var store subscription.ReminderStore
	switch cfg.Scheduler.ReminderStore {
	case "redis":
		store = subscription.NewRedisReminderStore(rdb.Client)
	default:
		store = subscription.NewPostgresReminderStore(pg.DB)
	}

	renewals := subscription.NewRenewalProcessor(repo, log)

	scheduler := subscription.NewScheduler(repo, store, dispatcher, log,
		cfg.Scheduler.ScanSchedule, cfg.Scheduler.ReminderLeadDays)
	if cfg.Scheduler.Enabled {
		if err := scheduler.Start(ctx); err != nil {
			zapLog.Fatal("reminder scheduler failed to start", zap.Error(err))
		}
		zapLog.Info("Reminder scheduler started",
			zap.String("schedule", cfg.Scheduler.ScanSchedule),
			zap.Int("leadDays", cfg.Scheduler.ReminderLeadDays),
		)
	}

	// --- Admin HTTP server ---
	srv := server.New(cfg.HTTP, alerts, scheduler, renewals, log)
	go func() {
		zapLog.Info("Admin server listening", zap.String("address", cfg.HTTP.ListenAddress))
		if err := srv.Start(); err != nil {
			zapLog.Error("Admin server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Scheduler.Enabled {
		scheduler.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down admin server", zap.Error(err))
	}

	zapLog.Info("Notification service stopped gracefully")
}
