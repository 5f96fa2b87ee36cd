// Package cfpg builds cycle-free paths graphs: compact layered
// structures from which only cycle-free source→target paths of an
// exact length can be produced, with uniform or weighted sampling,
// exhaustive enumeration and exact counting.
//
// The pipeline has three graph stages, each derived from the last:
//
//	BuildPathsGraph  — the raw paths graph. Layer k holds every node in
//	                   forward[k] ∩ backward[length-k] of the
//	                   reachability level sets; it carries every walk
//	                   of the exact length, cycles included.
//	BuildPreCFPG     — tag-and-prune refinement. Nodes that cannot lie
//	                   on any cycle-free path are removed, and every
//	                   survivor is tagged with the set of upstream
//	                   nodes that are admissible, cycle-safe histories
//	                   for it. The refinement is a fixed point: full
//	                   rounds repeat until neither the graph nor the
//	                   tags change.
//	BuildCFPG        — history splitting. Each tagged node becomes one
//	                   copy per distinct compatible history, giving a
//	                   graph where hist(u) ⊆ hist(v) along every edge.
//	                   A memoryless walk over it can therefore never
//	                   revisit a name.
//
// All three stages, plus Combine (a merge of per-length CFPGs),
// implement PathSource: SamplePaths, EnumeratePaths and CountPaths.
// The raw paths graph is the odd one out — its walks may repeat names,
// and it is exposed mainly as a cross-check and building block. The
// pre-CFPG samples with memory (filtering successors against the path
// so far using tags); the CFPG samples memorylessly.
//
// Empty structures are ordinary values, not errors: "zero paths of
// this exact length" is a common outcome, and every consumer returns
// an empty collection or a zero count for it.
//
// Sampling is deterministic under a fixed seed: every randomized call
// accepts WithSeed or WithRand, and a zero seed selects a fixed
// default stream.
package cfpg
