// Package config holds the runtime configuration of the complaint service.
// Values come from QUEJAS_* environment variables; the binaries load a .env
// file first so local development does not need an exported environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EntityLookupMode controls how a textual entity reference is resolved
// when listing complaints by entity.
type EntityLookupMode string

const (
	// LookupSubstring matches case-insensitively anywhere in the name,
	// first match in name order wins. Lenient on purpose: the public
	// consultation page sends user-typed entity names.
	LookupSubstring EntityLookupMode = "substring"
	// LookupExact requires a case-insensitive full-name match.
	LookupExact EntityLookupMode = "exact"
)

// Config is the full service configuration.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// DatabaseURL is a Postgres DSN. When empty the service falls back to
	// a local sqlite file at SQLitePath, like the original deployment did.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/quejas.db"`

	// Write rate limiting (per client IP, fixed window).
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"10"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`

	// Global token-bucket limit applied to every endpoint.
	GlobalRatePerSecond int `envconfig:"GLOBAL_RATE_PER_SECOND" default:"50"`
	GlobalRateBurst     int `envconfig:"GLOBAL_RATE_BURST" default:"100"`

	// Validation bounds for the complaint description.
	MinDescriptionLen int `envconfig:"MIN_DESCRIPTION_LEN" default:"20"`
	MaxDescriptionLen int `envconfig:"MAX_DESCRIPTION_LEN" default:"5000"`

	EntityLookup EntityLookupMode `envconfig:"ENTITY_LOOKUP" default:"substring"`

	// Anti-bot math challenge. Off by default; when enabled every
	// submission must carry a valid challenge token and answer.
	ChallengeEnabled bool          `envconfig:"CHALLENGE_ENABLED" default:"false"`
	ChallengeSecret  string        `envconfig:"CHALLENGE_SECRET" default:"cambie-este-secreto"`
	ChallengeTTL     time.Duration `envconfig:"CHALLENGE_TTL" default:"10m"`

	// Audit sinks, all optional.
	AuditFile        string `envconfig:"AUDIT_FILE" default:"logs/audit.log"`
	AuditEnabled     bool   `envconfig:"AUDIT_ENABLED" default:"true"`
	RedisAddr        string `envconfig:"REDIS_ADDR"`
	RedisChannel     string `envconfig:"REDIS_CHANNEL" default:"quejas:audit"`
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`

	// Storage timeouts.
	DBConnTimeout time.Duration `envconfig:"DB_CONN_TIMEOUT" default:"30s"`
}

// Load populates a Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("quejas", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
