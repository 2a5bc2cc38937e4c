package dag

import (
	"context"
	"fmt"

	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/model"
)

// Build creates the execution graph for a manifest: one node per run, one
// edge per depends_on entry. It rejects references to unknown runs,
// self-references, and cycles.
func Build(ctx context.Context, manifest *model.Manifest) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	graph := &Graph{Nodes: make(map[string]*Node, len(manifest.Runs))}

	for _, run := range manifest.Runs {
		graph.Nodes[run.Name] = &Node{
			ID:         run.Name,
			Run:        run,
			Deps:       make(map[string]*Node),
			Dependents: make(map[string]*Node),
		}
	}

	for _, run := range manifest.Runs {
		node := graph.Nodes[run.Name]
		for _, depName := range run.DependsOn {
			if depName == run.Name {
				return nil, fmt.Errorf("run %q depends on itself", run.Name)
			}
			dep, ok := graph.Nodes[depName]
			if !ok {
				return nil, fmt.Errorf("run %q depends on unknown run %q", run.Name, depName)
			}
			node.Deps[depName] = dep
			dep.Dependents[run.Name] = node
		}
		node.depCount.Store(int32(len(node.Deps)))
	}

	if err := detectCycles(graph); err != nil {
		return nil, err
	}

	logger.Debug("Execution graph built.", "nodes", len(graph.Nodes))
	return graph, nil
}

// detectCycles runs a classic depth-first search with permanent and
// temporary marks over the dependent edges.
func detectCycles(graph *Graph) error {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n.ID] {
			return nil
		}
		if temporary[n.ID] {
			return fmt.Errorf("dependency cycle detected involving run %q", n.ID)
		}
		temporary[n.ID] = true
		for _, dependent := range n.Dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.ID)
		permanent[n.ID] = true
		return nil
	}

	for _, n := range graph.Nodes {
		if !permanent[n.ID] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
