// Package digraph provides the directed, optionally edge-signed
// multigraph consumed by the cycle-free paths engine.
//
// Nodes are identified by non-empty strings. Edges carry an integer
// Sign: on a graph built with WithSigned() the sign must be 0
// (positive / activating) or 1 (negative / inhibiting); on an unsigned
// graph it must be 0. Two edges between the same endpoints with
// different signs coexist; a duplicate (from, to, sign) triple
// collapses onto the existing edge.
//
// Self-loops are rejected outright: a self-loop can never lie on a
// cycle-free path, so admitting one only wastes downstream work.
//
// All accessors return sorted, independent slices, which makes every
// algorithm built on top of the graph deterministic. Mutation and
// reads are guarded by an RWMutex; the paths engine itself only ever
// reads, so independent engine invocations may share one graph.
package digraph
