package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes a ShardExecutor. Zero values fall back to the defaults
// applied in NewShardExecutor.
type Config struct {
	// Shards is the number of worker goroutines; keys hash onto them.
	Shards int `envconfig:"SQ_SHARDS"`
	// QueueSize is the per-shard buffered channel capacity.
	QueueSize int `envconfig:"SQ_QUEUE_SIZE"`
	// EnqueueTimeout bounds how long Submit waits for queue space.
	EnqueueTimeout time.Duration `envconfig:"SQ_ENQUEUE_TIMEOUT"`
	// MaxAttempts caps retries for recoverable job errors.
	MaxAttempts int `envconfig:"SQ_MAX_ATTEMPTS"`
	// BaseBackoff is the initial retry interval.
	BaseBackoff time.Duration `envconfig:"SQ_BASE_BACKOFF"`
	// MaxInterval caps the exponential retry interval.
	MaxInterval time.Duration `envconfig:"SQ_MAX_INTERVAL"`

	// ErrorHandler, when set, receives every job error that exhausted
	// its retries (or was irrecoverable). Not read from the environment.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads SQ_* environment overrides into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
