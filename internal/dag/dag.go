package dag

import (
	"sync"
	"sync/atomic"

	"github.com/vk/tunegridgo/internal/model"
)

// NodeState describes the lifecycle of a node during execution.
type NodeState int32

const (
	Pending NodeState = iota
	Running
	Done
	Failed
	Skipped
)

// String returns the lowercase name of the state, used by the status endpoint.
func (s NodeState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Node is a single run in the execution graph.
type Node struct {
	ID  string
	Run *model.Run

	Deps       map[string]*Node
	Dependents map[string]*Node

	// depCount is decremented as dependencies complete; the node becomes
	// ready at zero.
	depCount atomic.Int32
	state    atomic.Int32

	// Error is set at most once, by the worker that finished or skipped the
	// node, before the node's WaitGroup slot is released.
	Error error

	skipOnce sync.Once
}

// State returns the node's current lifecycle state.
func (n *Node) State() NodeState {
	return NodeState(n.state.Load())
}

func (n *Node) setState(s NodeState) {
	n.state.Store(int32(s))
}

// Graph is the immutable result of Build: nodes keyed by run name.
type Graph struct {
	Nodes map[string]*Node
}

// States reports the current state of every node, keyed by run name.
func (g *Graph) States() map[string]string {
	states := make(map[string]string, len(g.Nodes))
	for id, node := range g.Nodes {
		states[id] = node.State().String()
	}
	return states
}
