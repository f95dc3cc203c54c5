package notification

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const dispatchLockKey = "notifications:dispatch:lock"

// Dispatcher periodically executes scheduled notifications that have
// come due. A redis lock keeps one instance at a time doing the work;
// without redis it assumes a single instance.
type Dispatcher struct {
	svc      Service
	redis    *redis.Client
	interval time.Duration
}

func NewDispatcher(svc Service, redisClient *redis.Client, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Dispatcher{
		svc:      svc,
		redis:    redisClient,
		interval: interval,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Dispatcher) runOnce(ctx context.Context) {
	if d.redis != nil {
		ok, err := d.redis.SetNX(ctx, dispatchLockKey, "1", d.interval).Result()
		if err != nil {
			log.Printf("Scheduled dispatch: failed to acquire lock: %v", err)
			return
		}
		if !ok {
			return
		}
	}

	if err := d.svc.DispatchDue(ctx); err != nil {
		log.Printf("Scheduled dispatch failed: %v", err)
	}
}
