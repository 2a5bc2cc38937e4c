package launch

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/tunegridgo/internal/argv"
	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/model"
)

// pipeCloseGrace bounds how long Wait may block on output pipes still held
// open by a worker's surviving descendants after the worker itself exited.
const pipeCloseGrace = 5 * time.Second

// Launcher starts the worker processes for a run and waits for them.
type Launcher struct {
	dryRun bool
}

// New creates a Launcher. With dryRun set, Launch logs the fully-rendered
// worker commands and environment instead of spawning anything.
func New(dryRun bool) *Launcher {
	return &Launcher{dryRun: dryRun}
}

// Launch runs the external trainer as Topology.NprocPerNode worker
// processes and blocks until all of them exit. The first worker failure
// cancels the remaining workers and becomes the returned error; a canceled
// context kills every worker.
func (l *Launcher) Launch(ctx context.Context, run *model.Run) error {
	logger := ctxlog.FromContext(ctx)

	args := workerCommand(run)
	port := run.Topology.MasterPort
	if port == 0 {
		port = findAvailablePort()
		logger.Debug("Picked rendezvous port.", "run", run.Name, "port", port)
	}

	nproc := run.Topology.NprocPerNode
	if l.dryRun {
		for rank := 0; rank < nproc; rank++ {
			logger.Info("Dry run: worker not started.",
				"run", run.Name,
				"rank", rank,
				"command", strings.Join(args, " "),
				"env", launchEnv(run, rank, port),
			)
		}
		return nil
	}

	logger.Info("Launching trainer workers.", "run", run.Name, "workers", nproc, "trainer", run.Trainer)

	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < nproc; rank++ {
		g.Go(func() error {
			return l.runWorker(gctx, run, args, rank, port)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run %q: %w", run.Name, err)
	}

	logger.Info("All trainer workers exited cleanly.", "run", run.Name)
	return nil
}

// runWorker starts a single trainer process and blocks until it exits.
func (l *Launcher) runWorker(ctx context.Context, run *model.Run, args []string, rank, port int) error {
	logger := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = workerEnv(run, rank, port)

	stdout := &lineWriter{logger: logger, runName: run.Name, rank: rank, stream: "stdout"}
	stderr := &lineWriter{logger: logger, runName: run.Name, rank: rank, stream: "stderr"}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Trainers fork helper processes that inherit the output pipes.
	// Cancellation must reach the whole process group, and Wait must not
	// block forever on a pipe a surviving descendant still holds open.
	setProcessGroup(cmd)
	cmd.WaitDelay = pipeCloseGrace

	logger.Debug("Starting trainer worker.", "run", run.Name, "rank", rank, "command", strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("worker rank %d: failed to start: %w", rank, err)
	}

	waitErr := cmd.Wait()
	stdout.flush()
	stderr.flush()
	if waitErr != nil {
		return fmt.Errorf("worker rank %d: %w", rank, waitErr)
	}
	logger.Debug("Trainer worker exited.", "run", run.Name, "rank", rank)
	return nil
}

// workerCommand renders the full command line shared by every worker of a
// run. Element zero is the interpreter.
func workerCommand(run *model.Run) []string {
	args := []string{run.Python, "-u", run.Trainer}
	return append(args, argv.Render(run)...)
}
