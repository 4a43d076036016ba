// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	HTTP          HTTPConfig         `mapstructure:"http"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Alerting      AlertingConfig     `mapstructure:"alerting"`
	Scheduler     SchedulerConfig    `mapstructure:"scheduler"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
	JWTSecret     string `mapstructure:"jwt_secret"`
	ReadTimeout   int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout  int    `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	// Delivery audit indexing is optional; leave addresses empty to disable.
	AuditIndex string `mapstructure:"audit_index"`
}

// NotificationConfig holds per-channel sender settings.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`

	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`

	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`

	Push struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"push"`

	WhatsApp struct {
		Enabled       bool   `mapstructure:"enabled"`
		APIBaseURL    string `mapstructure:"api_base_url"`
		AccessToken   string `mapstructure:"access_token"`
		PhoneNumberID string `mapstructure:"phone_number_id"`
	} `mapstructure:"whatsapp"`

	SendTimeout int `mapstructure:"send_timeout"` // milliseconds, per channel send
}

// AlertingConfig holds the operator contact set. Loaded once at startup and
// treated as immutable afterwards.
type AlertingConfig struct {
	OwnerEmails     []string `mapstructure:"owner_emails"`
	PrimaryPhone    string   `mapstructure:"primary_phone"`
	SecondaryPhone  string   `mapstructure:"secondary_phone"`
	CommercialPhone string   `mapstructure:"commercial_phone"`
	OwnerName       string   `mapstructure:"owner_name"`
	OwnerPushToken  string   `mapstructure:"owner_push_token"`
}

// SchedulerConfig holds the subscription reminder scan settings.
type SchedulerConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	ScanSchedule     string `mapstructure:"scan_schedule"`     // cron spec, default "@every 1h"
	ReminderLeadDays int    `mapstructure:"reminder_lead_days"` // default 7
	ReminderStore    string `mapstructure:"reminder_store"`     // "postgres" or "redis"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
