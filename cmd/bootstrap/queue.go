package bootstrap

import (
	"context"
	"log/slog"

	"creditline-service/internal/handler/api"
	"creditline-service/internal/jobqueue"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/pkg/config"
	"creditline-service/internal/usecase/commands"

	"go.uber.org/fx"
)

var QueueModule = fx.Module("jobqueue",
	fx.Provide(
		NewJobQueue,
	),
	fx.Invoke(
		registerJobHandlers,
		runQueue,
	),
)

func NewJobQueue(cfg config.Config, clk clock.Clock, logger *slog.Logger) *jobqueue.Queue {
	return jobqueue.New(jobqueue.Config{
		TickInterval:       cfg.Queue.TickInterval,
		RetryBackoff:       cfg.Queue.RetryBackoff,
		DefaultMaxAttempts: cfg.Queue.DefaultMaxAttempts,
	}, clk, clock.NewRealTicker, logger)
}

// registerJobHandlers binds background job types to their processors. The
// expiry sweep runs here so producers can schedule it without holding a
// reference to the risk engine.
func registerJobHandlers(queue *jobqueue.Queue, riskCmds commands.RiskCommands, logger *slog.Logger) {
	queue.RegisterHandler(api.SweepJobType, func(ctx context.Context, job jobqueue.Job) error {
		removed, err := riskCmds.DeleteExpired(ctx)
		if err != nil {
			return err
		}
		logger.Info("expired risk evaluations swept", "job_id", job.ID, "removed", removed)
		return nil
	})
}

func runQueue(lc fx.Lifecycle, queue *jobqueue.Queue) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			queue.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			queue.Stop()
			return nil
		},
	})
}
