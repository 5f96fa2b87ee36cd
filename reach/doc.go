// Package reach computes exact-depth reachability level sets over a
// digraph.Graph: for every k up to a maximum depth, the set of nodes
// reachable from a source in exactly k hops (forward) and the set of
// nodes that can reach a target in exactly k hops (backward).
//
// "Exactly k" is the operative phrase: a node may legitimately appear
// at several depths, and over a cyclic graph the same name recurs
// across levels. That recurrence is expected — it is precisely the raw
// material the cycle-free paths engine prunes away later.
//
// In signed mode the sets track (name, parity) pairs, where parity is
// the XOR of edge signs accumulated along the walk; both parities of a
// name can be present at the same depth.
//
// Unreachability is not an error: once a frontier empties, every
// deeper level is an empty set, and Exhausted() reports when both
// directions have run dry.
package reach
