package shardqueue

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	// The environment contributes nothing here; NewShardExecutor fills
	// the zero values in.
	if cfg.ErrorHandler != nil {
		t.Fatal("ErrorHandler must never come from the environment")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SQ_SHARDS", "7")
	t.Setenv("SQ_QUEUE_SIZE", "256")
	t.Setenv("SQ_ENQUEUE_TIMEOUT", "250ms")
	t.Setenv("SQ_MAX_ATTEMPTS", "3")
	t.Setenv("SQ_BASE_BACKOFF", "50ms")
	t.Setenv("SQ_MAX_INTERVAL", "10s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Shards != 7 {
		t.Errorf("Shards = %d, want 7", cfg.Shards)
	}
	if cfg.QueueSize != 256 {
		t.Errorf("QueueSize = %d, want 256", cfg.QueueSize)
	}
	if cfg.EnqueueTimeout != 250*time.Millisecond {
		t.Errorf("EnqueueTimeout = %v, want 250ms", cfg.EnqueueTimeout)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.BaseBackoff != 50*time.Millisecond {
		t.Errorf("BaseBackoff = %v, want 50ms", cfg.BaseBackoff)
	}
	if cfg.MaxInterval != 10*time.Second {
		t.Errorf("MaxInterval = %v, want 10s", cfg.MaxInterval)
	}
}

func TestLoadConfig_RejectsGarbage(t *testing.T) {
	t.Setenv("SQ_SHARDS", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted a non-numeric shard count")
	}
}

func TestNewShardExecutor_AppliesDefaults(t *testing.T) {
	exec := NewShardExecutor(Config{})
	defer exec.Stop()

	if exec.cfg.Shards != 4 {
		t.Errorf("Shards = %d, want 4", exec.cfg.Shards)
	}
	if exec.cfg.QueueSize != 128 {
		t.Errorf("QueueSize = %d, want 128", exec.cfg.QueueSize)
	}
	if exec.cfg.EnqueueTimeout != 100*time.Millisecond {
		t.Errorf("EnqueueTimeout = %v, want 100ms", exec.cfg.EnqueueTimeout)
	}
	if exec.cfg.MaxAttempts != 8 {
		t.Errorf("MaxAttempts = %d, want 8", exec.cfg.MaxAttempts)
	}
}
