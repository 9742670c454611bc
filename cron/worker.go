package cron

import (
	"context"
	"log"
	"time"

	"opsledger/config"
	"opsledger/services/ledger"

	"github.com/hibiken/asynq"
)

const TypeLedgerSweep = "ledger:sweep"

// InitSweepWorker runs the reconciliation sweep in the background: a
// periodic task scans completed sessions missing a ledger posting and
// backfills them. Reconcile is idempotent, so overlapping or replayed
// sweeps are harmless.
func InitSweepWorker(ledgerSvc ledger.LedgerService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLedgerSweep, handleSweepTask(ledgerSvc))

	// Enqueue the first sweep at startup, then on a fixed cadence.
	go enqueueSweeps(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[LedgerSweep] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LedgerSweep] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LedgerSweep] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSweepTask(ledgerSvc ledger.LedgerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		created, err := ledgerSvc.SweepOnce()
		if err != nil {
			log.Printf("[LedgerSweep] sweep failed: %v", err)
			return err
		}
		if created > 0 {
			log.Printf("[LedgerSweep] backfilled %d missing ledger entries", created)
		}
		return nil
	}
}

func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := time.Duration(config.AppConfig.SweepIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	enqueue := func() {
		task := asynq.NewTask(TypeLedgerSweep, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
			log.Printf("[LedgerSweep] failed to enqueue sweep: %v", err)
		}
	}

	enqueue()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		enqueue()
	}
}
