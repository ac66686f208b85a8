package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cabbooking/internal/config"
)

// idempotencyCollection names the redis keyspace in New Relic datastore metrics.
const idempotencyCollection = "idempotency"

// NewRedisClient connects to the redis instance backing idempotent ride
// requests. It returns nil, nil when redis is disabled; callers treat a nil
// client as "idempotency off".
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, nrApp *newrelic.Application) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if nrApp != nil {
		client.AddHook(datastoreHook{collection: idempotencyCollection})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// datastoreHook records every redis round trip as a New Relic datastore
// segment of the request's transaction. Calls outside a transaction are not
// recorded.
type datastoreHook struct {
	collection string
}

func (h datastoreHook) segment(ctx context.Context, operation string) func() {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return func() {}
	}
	s := newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    newrelic.DatastoreRedis,
		Collection: h.collection,
		Operation:  operation,
	}
	return s.End
}

func (h datastoreHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h datastoreHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		defer h.segment(ctx, cmd.Name())()
		return next(ctx, cmd)
	}
}

func (h datastoreHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		defer h.segment(ctx, "pipeline")()
		return next(ctx, cmds)
	}
}
