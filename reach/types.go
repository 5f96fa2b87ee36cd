// Package reach - options, result types and error definitions for
// exact-depth reachability computation.
package reach

import (
	"context"
	"errors"
)

// Sentinel errors for reachability computation. All of them are
// configuration errors: an unreachable target is reported through
// empty level sets, never through an error.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("reach: graph is nil")

	// ErrNodeNotFound is returned when source or target is absent.
	ErrNodeNotFound = errors.New("reach: endpoint not found")

	// ErrSameEndpoints is returned when source equals target; the
	// engine has no representation for paths of length zero.
	ErrSameEndpoints = errors.New("reach: source and target must differ")

	// ErrBadDepth is returned for a maximum depth below one.
	ErrBadDepth = errors.New("reach: max depth must be at least 1")

	// ErrUnsignedGraph is returned when WithSigned is requested for a
	// graph that was not built with digraph.WithSigned.
	ErrUnsignedGraph = errors.New("reach: signed mode requires a signed graph")
)

// Node is one reachable occurrence: a node name plus the cumulative
// sign parity of the walk that reaches it. Parity is always 0 in
// unsigned mode.
type Node struct {
	Name string
	Sign int
}

// NodeSet is a set of reachable occurrences at one depth.
type NodeSet map[Node]struct{}

// Option configures Compute via functional arguments.
type Option func(*Options)

// Options holds parameters for reachability computation.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Signed switches the computation to (name, parity) pairs.
	Signed bool
}

// DefaultOptions returns Options with a background context and
// unsigned mode.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSigned tracks sign parity per reachable node. The graph must
// have been built with digraph.WithSigned.
func WithSigned() Option {
	return func(o *Options) { o.Signed = true }
}

// Levels is the outcome of a reachability computation.
//
// Forward[k] holds every occurrence reachable from Source in exactly k
// hops; Backward[k] holds every occurrence that reaches Target in
// exactly k hops walking edges in reverse. Both slices have length
// Depth()+1, with Forward[0] = {Source/0} and Backward[0] = {Target/0}.
type Levels struct {
	Source string
	Target string

	Forward  []NodeSet
	Backward []NodeSet

	signed bool
}

// Depth returns the maximum hop count covered by the level sets.
func (l *Levels) Depth() int { return len(l.Forward) - 1 }

// Signed reports whether parity was tracked.
func (l *Levels) Signed() bool { return l.signed }

// Exhausted reports whether both frontiers died out before the
// maximum depth, i.e. no walk of Depth() hops survives in either
// direction. Callers treat this as "no paths", not as an error.
func (l *Levels) Exhausted() bool {
	last := l.Depth()

	return len(l.Forward[last]) == 0 && len(l.Backward[last]) == 0
}
