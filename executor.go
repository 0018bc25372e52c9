package fintrack

import (
	"context"

	"github.com/fintrackapp/fintrack-go/internal/shardqueue"
)

// executor abstracts the internal async job runner used for cache
// refetches and barriers.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}

// Note: all clients include an executor by default; the cache requires it.
