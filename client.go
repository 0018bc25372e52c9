// Package fintrack is the client SDK for the fintrack record service.
// It bundles the remote client, the per-collection query cache with
// invalidate-and-refetch, durable auth token persistence and the route
// guard used by app shells.
package fintrack

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackapp/fintrack-go/internal/cache"
	"github.com/fintrackapp/fintrack-go/internal/job"
	"github.com/fintrackapp/fintrack-go/internal/shardqueue"
)

// Collection names of the remote record store. The four record
// collections are disjoint; a record never moves between them.
const (
	CollectionExpenses    = "expenses"
	CollectionIncomes     = "incomes"
	CollectionBudgets     = "budgets"
	CollectionSavingGoals = "savingGoals"
)

// Client is the single shared handle to the remote record service,
// bound at construction to a base endpoint and, optionally, a token
// store mirroring the in-memory auth token.
type Client struct {
	baseURL string
	http    *http.Client
	exec    executor
	cache   *cache.Cache
	auth    *authState
	log     zerolog.Logger

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given base endpoint. Additional
// behaviour is configured through functional options. When a token
// store is configured, the persisted token is loaded once here and the
// client starts authenticated if that token is still valid.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		auth:    newAuthState(),
		log:     zerolog.Nop(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	// Wrap the transport so every request carries the current token.
	c.wrapTransportWithAuth()

	c.cache = cache.New(c.exec, c.log)
	c.registerFetchers()

	c.rehydrate()

	return c, nil
}

// Close stops the background executor (if any). Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// AwaitRefetch blocks until every refetch already scheduled for the
// given collection has run. It submits a no-op job and waits for it,
// relying on the executor's FIFO ordering per key. Useful after a
// mutation when the caller wants guaranteed read-your-writes from the
// cache rather than eventual freshness.
func (c *Client) AwaitRefetch(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	barrier := job.New(func(context.Context) error {
		close(done)
		return nil
	})
	if err := c.exec.Submit(ctx, collection, barrier); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// newDefaultExecutor constructs the shardqueue executor, honouring SQ_*
// environment overrides when present.
func newDefaultExecutor() *shardqueue.ShardExecutor {
	cfg, err := shardqueue.LoadConfig()
	if err != nil {
		cfg = shardqueue.Config{}
	}
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	return shardqueue.NewShardExecutor(cfg)
}
