// Package cfpg_test — shared graph fixtures for the engine tests.
//
// Every fixture is small enough to verify by hand; the expected path
// sets quoted in the tests were enumerated manually.
package cfpg_test

import (
	"testing"

	"github.com/katalvlaran/cfpath/cfpg"
	"github.com/katalvlaran/cfpath/digraph"
	"github.com/katalvlaran/cfpath/reach"
)

// mustGraph builds an unsigned graph from (from, to) pairs.
func mustGraph(t *testing.T, edges [][2]string) *digraph.Graph {
	t.Helper()
	g := digraph.New()
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1], 0); err != nil {
			t.Fatalf("AddEdge(%s,%s): %v", e[0], e[1], err)
		}
	}

	return g
}

// mustRaw runs reachability and raw paths graph construction.
func mustRaw(t *testing.T, g *digraph.Graph, src, tgt string, length int) *cfpg.PathsGraph {
	t.Helper()
	lv, err := reach.Compute(g, src, tgt, length)
	if err != nil {
		t.Fatalf("reach.Compute: %v", err)
	}
	pg, err := cfpg.BuildPathsGraph(g, lv, length)
	if err != nil {
		t.Fatalf("BuildPathsGraph: %v", err)
	}

	return pg
}

// mustPre additionally runs the tag-and-prune fixed point.
func mustPre(t *testing.T, g *digraph.Graph, src, tgt string, length int, opts ...cfpg.FixpointOption) *cfpg.PreCFPG {
	t.Helper()
	pre, err := cfpg.BuildPreCFPG(mustRaw(t, g, src, tgt, length), opts...)
	if err != nil {
		t.Fatalf("BuildPreCFPG: %v", err)
	}

	return pre
}

// mustCFPG runs the full per-length pipeline.
func mustCFPG(t *testing.T, g *digraph.Graph, src, tgt string, length int) *cfpg.CFPG {
	t.Helper()
	cf, err := cfpg.BuildCFPG(mustPre(t, g, src, tgt, length))
	if err != nil {
		t.Fatalf("BuildCFPG: %v", err)
	}

	return cf
}

// diamond has exactly two length-2 paths A→B→D and A→C→D.
func diamond(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}})
}

// skewFive has five length-3 paths from S to T: one through A1 and
// four through A2. Locally-uniform memoryless sampling picks the A1
// path with probability 1/2 instead of 1/5.
func skewFive(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{
		{"S", "A1"}, {"S", "A2"},
		{"A1", "B1"},
		{"A2", "B2"}, {"A2", "B3"}, {"A2", "B4"}, {"A2", "B5"},
		{"B1", "T"}, {"B2", "T"}, {"B3", "T"}, {"B4", "T"}, {"B5", "T"},
	})
}

// cyclicOnly has exactly one length-4 walk S→A→B→A→T, which revisits
// A; no cycle-free path of that length exists.
func cyclicOnly(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{{"S", "A"}, {"A", "B"}, {"B", "A"}, {"A", "T"}})
}

// twoRoute has a two-cycle between A and B and exactly two cycle-free
// length-3 paths: S→A→B→T and S→B→A→T.
func twoRoute(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{
		{"S", "A"}, {"S", "B"},
		{"A", "B"}, {"B", "A"},
		{"A", "T"}, {"B", "T"},
	})
}

// detourChain has two length-5 walks: S→X→P→Y→X→T, which revisits X,
// and the cycle-free S→X→G→H→D→T. Refinement must keep exactly the
// latter.
func detourChain(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{
		{"S", "X"}, {"X", "P"}, {"P", "Y"}, {"Y", "X"}, {"X", "T"},
		{"X", "G"}, {"G", "H"}, {"H", "D"}, {"D", "T"},
	})
}

// rippleGraph makes pruning ripple across rounds at length 6. The
// side entry S→M→X only continues through walks that revisit X or
// lean on the doomed occurrences of K, Y and V, but those supports
// are themselves pruned one pass at a time, so M's branch outlives
// the first full round and falls in the second. Four cycle-free
// paths remain, all through F:
//
//	S→F→G→B→C→D→T
//	S→F→G→V→X→D→T
//	S→F→G→V→X→K→T
//	S→F→G→V→Z→X→T
func rippleGraph(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{
		{"S", "F"}, {"S", "M"},
		{"F", "G"},
		{"G", "B"}, {"G", "V"},
		{"B", "C"}, {"C", "D"}, {"D", "T"},
		{"M", "X"},
		{"X", "V"}, {"X", "K"}, {"X", "D"}, {"X", "T"},
		{"V", "X"}, {"V", "Z"}, {"V", "T"},
		{"Z", "V"}, {"Z", "X"},
		{"K", "X"}, {"K", "Y"}, {"K", "T"},
		{"Y", "K"},
	})
}

// crossSplit has a two-cycle threaded through C and exactly two
// cycle-free length-4 paths: S→A→C→B→T and S→B→C→A→T. C's admissible
// history depends on the entry side, so the CFPG must carry two
// copies of C.
func crossSplit(t *testing.T) *digraph.Graph {
	return mustGraph(t, [][2]string{
		{"S", "A"}, {"S", "B"},
		{"A", "C"}, {"B", "C"},
		{"C", "A"}, {"C", "B"},
		{"A", "T"}, {"B", "T"},
	})
}

// pathStrings flattens paths for compact comparison.
func pathStrings(ps []cfpg.Path) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		s := ""
		for j, n := range p {
			if j > 0 {
				s += ","
			}
			s += n
		}
		out[i] = s
	}

	return out
}
