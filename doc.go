// Package cfpath builds compact graph structures from which only
// cycle-free source→target paths of an exact length can be produced,
// and supports sampling, enumeration and counting of those paths.
//
// 🚀 What is cfpath?
//
//	A pure-Go library for exact-length, cycle-free path analysis over
//	directed (optionally edge-signed) graphs:
//		• digraph: the input graph — directed multigraph with optional
//		  per-edge sign (0 = activating, 1 = inhibiting)
//		• reach:   exact-k forward/backward reachability level sets
//		• cfpg:    layered paths graphs, tag-and-prune refinement,
//		  history-based node splitting, samplers and combinators
//
// The pipeline runs in four stages. Reachability level sets restrict
// the search to nodes that can actually sit at a given position on a
// path of the requested length. The raw paths graph layers those nodes
// and carries every exact-length walk, cycles included. The pre-CFPG
// prunes nodes that cannot lie on any cycle-free path and tags every
// survivor with its admissible upstream history. The CFPG splits each
// tagged node into one copy per distinct compatible history, after
// which any plain walk from source to target is cycle-free with no
// bookkeeping at all.
//
// Quick ASCII example:
//
//	    A───▶B
//	    │    │
//	    ▼    ▼
//	    C───▶D
//
//	source A, target D, length 2 ⇒ exactly two paths: A→B→D and A→C→D.
//
// Everything is in-memory, synchronous and deterministic: sorted
// iteration everywhere, and all randomized sampling flows through an
// explicitly seedable generator.
//
//	go get github.com/katalvlaran/cfpath
package cfpath
