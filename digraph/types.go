// Package digraph declares the Graph type, its construction options,
// and the sentinel errors shared by all graph operations.
package digraph

import (
	"errors"
	"sync"
)

// Sentinel errors for graph operations.
var (
	// ErrEmptyNodeID indicates an operation received an empty node ID.
	ErrEmptyNodeID = errors.New("digraph: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("digraph: node not found")

	// ErrBadSign indicates an edge sign outside {0,1}, or a non-zero
	// sign supplied to an unsigned graph.
	ErrBadSign = errors.New("digraph: bad edge sign")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("digraph: self-loops not allowed")

	// ErrMalformedEdgeList indicates an unparseable edge-list line.
	ErrMalformedEdgeList = errors.New("digraph: malformed edge list")
)

// Halfedge is one endpoint's view of an edge: the node on the far end
// plus the edge's sign and identifier.
type Halfedge struct {
	// ID uniquely identifies the underlying edge within its Graph.
	ID string

	// Neighbor is the node on the other end of the edge: the head for
	// Successors, the tail for Predecessors.
	Neighbor string

	// Sign is the edge polarity: 0 positive, 1 negative. Always 0 on
	// unsigned graphs.
	Sign int
}

// Option configures a Graph before creation.
type Option func(*Graph)

// WithSigned allows edges to carry a sign in {0,1}.
// Unsigned graphs (the default) accept only sign 0.
func WithSigned() Option {
	return func(g *Graph) { g.signed = true }
}

// Graph is a directed multigraph with optional per-edge signs.
//
// Adjacency is kept in both directions so that forward and backward
// traversals are equally cheap. mu guards all storage.
type Graph struct {
	mu sync.RWMutex

	signed     bool
	nextEdgeID uint64

	nodes map[string]struct{}

	// succ[from][to][sign] = edge ID; pred is the mirrored index.
	succ map[string]map[string]map[int]string
	pred map[string]map[string]map[int]string
}

// New creates an empty Graph with the given options.
// Complexity: O(1).
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes: make(map[string]struct{}),
		succ:  make(map[string]map[string]map[int]string),
		pred:  make(map[string]map[string]map[int]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
