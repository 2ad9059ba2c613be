package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// NotifyConfig controls the settled-round webhook announcer. Announcements
// are disabled when no webhook URL is configured.
type NotifyConfig struct {
	WebhookURL   string        `env:"NOTIFY_WEBHOOK_URL"`
	QueueSize    int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`
	Timeout      time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	MaxRetries   int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	RetryBackoff time.Duration `env:"NOTIFY_RETRY_BACKOFF" envDefault:"500ms"`
}

func (c NotifyConfig) Enabled() bool { return c.WebhookURL != "" }

func LoadNotify() (NotifyConfig, error) {
	var cfg NotifyConfig
	err := env.Parse(&cfg)
	return cfg, err
}
