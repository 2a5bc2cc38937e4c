package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/dag"
	"github.com/vk/tunegridgo/internal/dump"
	"github.com/vk/tunegridgo/internal/model"
	"github.com/vk/tunegridgo/internal/notify"
)

// Run executes every selected run, dependency-ordered, and returns an error
// if any of them failed.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := dag.Build(ctx, a.manifest)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort, graph)
	}

	if len(graph.Nodes) == 0 {
		a.logger.Warn("No runs found in manifest, nothing to launch.")
		return nil
	}

	a.logger.Info("🚀 Starting runs.", "count", len(graph.Nodes), "workers", appConfig.WorkerCount, "dry_run", a.dryRun)
	exec := dag.NewExecutor(graph, appConfig.WorkerCount, a.executeRun)
	if err := exec.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("🏁 All runs finished.")
	return nil
}

// executeRun is the dag.RunFunc for a single run: snapshot the resolved
// record, launch the trainer workers, then deliver the completion webhook.
func (a *App) executeRun(ctx context.Context, run *model.Run) error {
	logger := ctxlog.FromContext(ctx).With("run", run.Name)
	logger.Info("▶️ Starting run.")

	if !a.dryRun {
		path, err := dump.WriteResolved(run)
		if err != nil {
			return err
		}
		logger.Debug("Resolved record written.", "path", path)
	}

	start := time.Now()
	launchErr := a.launcher.Launch(ctx, run)

	if run.NotifyURL != "" && !a.dryRun {
		summary := notify.NewSummary(run.Name, time.Since(start), launchErr)
		if err := notify.Send(ctx, run.NotifyURL, summary); err != nil {
			logger.Warn("Completion webhook delivery failed.", "error", err)
		}
	}

	if launchErr != nil {
		return launchErr
	}
	logger.Info("✅ Run finished.", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
