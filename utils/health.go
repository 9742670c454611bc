package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the last observed reachability of the module's backing
// stores. The session store, audit trail and ledger share one Mongo
// deployment, so a single probe covers all three.
type HealthStatus struct {
	Database  bool      `json:"database"`
	Caches    []bool    `json:"caches"`
	CheckedAt time.Time `json:"checked_at"`
}

var (
	healthMu   sync.RWMutex
	lastHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot. It never probes; the
// monitor goroutine keeps the snapshot fresh.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return lastHealth
}

// StartHealthMonitor probes the backing stores once immediately and then
// every minute, publishing each result for GetHealthStatus.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		caches := make([]bool, 0, len(redisClients))
		for _, client := range redisClients {
			caches = append(caches, client.Ping(ctx).Err() == nil)
		}
		snapshot := HealthStatus{
			Database:  mongoClient.Ping(ctx, nil) == nil,
			Caches:    caches,
			CheckedAt: time.Now(),
		}

		healthMu.Lock()
		lastHealth = snapshot
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
