package dag

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/model"
)

// RunFunc executes one run to completion. The executor calls it from worker
// goroutines, never more than once per node.
type RunFunc func(ctx context.Context, run *model.Run) error

// Executor walks the graph with a bounded worker pool.
type Executor struct {
	graph      *Graph
	numWorkers int
	fn         RunFunc
	wg         sync.WaitGroup
}

// NewExecutor creates an Executor over the given graph. workers is clamped
// to at least one.
func NewExecutor(graph *Graph, workers int, fn RunFunc) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{graph: graph, numWorkers: workers, fn: fn}
}

// Run executes the entire graph and returns an error if any node failed.
// It respects the cancellation signal from the provided context.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	readyChan := make(chan *Node, len(e.graph.Nodes))

	logger.Debug("Initializing executor, finding root nodes...")
	rootNodeCount := 0
	for _, node := range e.graph.Nodes {
		if node.depCount.Load() == 0 {
			readyChan <- node
			rootNodeCount++
		}
	}
	logger.Debug("Found all root nodes.", "count", rootNodeCount)

	e.wg.Add(len(e.graph.Nodes))

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(ctx, readyChan, i)
	}

	e.wg.Wait()
	close(readyChan)

	var failed []string
	var rootCause error
	for _, node := range e.graph.Nodes {
		if node.State() != Failed {
			continue
		}
		failed = append(failed, node.ID)
		if rootCause == nil {
			rootCause = node.Error
		}
	}
	if rootCause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	return nil
}

// worker consumes ready nodes until the channel closes.
func (e *Executor) worker(ctx context.Context, readyChan chan *Node, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for node := range readyChan {
		workerLogger := logger.With("workerID", workerID, "run", node.ID)

		if ctx.Err() != nil {
			node.skipOnce.Do(func() {
				workerLogger.Warn("Context canceled, run not started.")
				node.setState(Failed)
				node.Error = ctx.Err()
				e.wg.Done()
				e.skipDependents(ctx, node)
			})
			continue
		}

		workerLogger.Debug("Worker picked up run.")
		node.setState(Running)

		if err := e.fn(ctx, node.Run); err != nil {
			workerLogger.Error("Run failed.", "error", err)
			node.setState(Failed)
			node.Error = err
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Run succeeded.")
		node.setState(Done)

		for _, dependent := range node.Dependents {
			if dependent.depCount.Add(-1) == 0 {
				workerLogger.Debug("Unlocking dependent run.", "dependent", dependent.ID)
				readyChan <- dependent
			}
		}
		e.wg.Done()
	}
	logger.Debug("Worker exiting.", "workerID", workerID)
}

// skipDependents recursively marks all downstream nodes as skipped and
// releases their WaitGroup slots.
func (e *Executor) skipDependents(ctx context.Context, node *Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		dependent.skipOnce.Do(func() {
			logger.Warn("Skipping run due to upstream failure.", "run", dependent.ID, "dependency", node.ID)
			dependent.setState(Skipped)
			dependent.Error = fmt.Errorf("skipped due to upstream failure of %q", node.ID)
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}
