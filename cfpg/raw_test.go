package cfpg_test

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/katalvlaran/cfpath/cfpg"
	"github.com/katalvlaran/cfpath/digraph"
	"github.com/katalvlaran/cfpath/reach"
)

// TestBuildPathsGraph_Errors verifies the configuration sentinels.
func TestBuildPathsGraph_Errors(t *testing.T) {
	g := diamond(t)
	lv, err := reach.Compute(g, "A", "D", 2)
	if err != nil {
		t.Fatalf("reach.Compute: %v", err)
	}

	if _, err = cfpg.BuildPathsGraph(nil, lv, 2); !errors.Is(err, cfpg.ErrNilInput) {
		t.Errorf("nil graph: want ErrNilInput, got %v", err)
	}
	if _, err = cfpg.BuildPathsGraph(g, nil, 2); !errors.Is(err, cfpg.ErrNilInput) {
		t.Errorf("nil levels: want ErrNilInput, got %v", err)
	}
	if _, err = cfpg.BuildPathsGraph(g, lv, 0); !errors.Is(err, cfpg.ErrBadLength) {
		t.Errorf("zero length: want ErrBadLength, got %v", err)
	}
	if _, err = cfpg.BuildPathsGraph(g, lv, 3); !errors.Is(err, cfpg.ErrDepthShort) {
		t.Errorf("length beyond depth: want ErrDepthShort, got %v", err)
	}
	if _, err = cfpg.BuildPathsGraph(g, lv, 2, cfpg.WithTargetSign(1)); !errors.Is(err, cfpg.ErrSignFilterUnsigned) {
		t.Errorf("sign filter on unsigned levels: want ErrSignFilterUnsigned, got %v", err)
	}
	if _, err = cfpg.BuildPathsGraph(g, lv, 2, cfpg.WithTargetSign(2)); !errors.Is(err, cfpg.ErrOptionViolation) {
		t.Errorf("sign 2: want ErrOptionViolation, got %v", err)
	}
}

// TestBuildPathsGraph_Diamond checks layer membership and the walk
// surface on the smallest branching graph.
func TestBuildPathsGraph_Diamond(t *testing.T) {
	pg := mustRaw(t, diamond(t), "A", "D", 2)

	if pg.Empty() {
		t.Fatal("Empty() = true")
	}
	want := []cfpg.VNode{
		{Layer: 0, Name: "A"},
		{Layer: 1, Name: "B"},
		{Layer: 1, Name: "C"},
		{Layer: 2, Name: "D"},
	}
	if got := pg.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes = %v; want %v", got, want)
	}

	if got := pathStrings(pg.EnumeratePaths()); !reflect.DeepEqual(got, []string{"A,B,D", "A,C,D"}) {
		t.Errorf("EnumeratePaths = %v", got)
	}
	if got := pg.CountPaths(); got.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("CountPaths = %s; want 2", got)
	}
}

// TestBuildPathsGraph_CyclicWalk checks that the raw stage keeps
// name-repeating walks: completeness before cycle-freeness.
func TestBuildPathsGraph_CyclicWalk(t *testing.T) {
	pg := mustRaw(t, cyclicOnly(t), "S", "T", 4)

	if got := pathStrings(pg.EnumeratePaths()); !reflect.DeepEqual(got, []string{"S,A,B,A,T"}) {
		t.Errorf("EnumeratePaths = %v; want the single repeating walk", got)
	}
	if got := pg.CountPaths(); got.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("CountPaths = %s; want 1", got)
	}
}

// TestBuildPathsGraph_NoWalks checks the empty (yet valid) result for
// a length no walk realizes.
func TestBuildPathsGraph_NoWalks(t *testing.T) {
	g := mustGraph(t, [][2]string{{"S", "A"}, {"A", "T"}})
	pg := mustRaw(t, g, "S", "T", 3)

	if !pg.Empty() {
		t.Fatal("Empty() = false; want true")
	}
	if got := pg.CountPaths(); got.Sign() != 0 {
		t.Errorf("CountPaths = %s; want 0", got)
	}
	if got := pg.EnumeratePaths(); len(got) != 0 {
		t.Errorf("EnumeratePaths = %v; want none", got)
	}
	paths, err := pg.SamplePaths(5)
	if err != nil {
		t.Fatalf("SamplePaths: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("SamplePaths = %v; want none", paths)
	}
}

// TestPathsGraph_SampleDeterminism checks the fixed-seed contract.
func TestPathsGraph_SampleDeterminism(t *testing.T) {
	pg := mustRaw(t, skewFive(t), "S", "T", 3)

	a, err := pg.SamplePaths(50, cfpg.WithSeed(42))
	if err != nil {
		t.Fatalf("SamplePaths: %v", err)
	}
	b, err := pg.SamplePaths(50, cfpg.WithSeed(42))
	if err != nil {
		t.Fatalf("SamplePaths: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must reproduce the same sample sequence")
	}

	c, err := pg.SamplePaths(50, cfpg.WithSeed(43))
	if err != nil {
		t.Fatalf("SamplePaths: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should diverge on this graph")
	}

	// every sampled walk is one of the enumerated ones
	valid := make(map[string]bool)
	for _, s := range pathStrings(pg.EnumeratePaths()) {
		valid[s] = true
	}
	for _, s := range pathStrings(a) {
		if !valid[s] {
			t.Errorf("sampled walk %s not among enumerated walks", s)
		}
	}
}

// TestBuildPathsGraph_TargetSign checks parity filtering on a signed
// graph with one activating and one inhibiting route.
func TestBuildPathsGraph_TargetSign(t *testing.T) {
	g := digraph.New(digraph.WithSigned())
	for _, e := range []struct {
		from, to string
		sign     int
	}{
		{"S", "A", 0}, {"A", "T", 0},
		{"S", "B", 0}, {"B", "T", 1},
	} {
		if _, err := g.AddEdge(e.from, e.to, e.sign); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	lv, err := reach.Compute(g, "S", "T", 2, reach.WithSigned())
	if err != nil {
		t.Fatalf("reach.Compute: %v", err)
	}

	pos, err := cfpg.BuildPathsGraph(g, lv, 2, cfpg.WithTargetSign(0))
	if err != nil {
		t.Fatalf("BuildPathsGraph(+): %v", err)
	}
	if got := pathStrings(pos.EnumeratePaths()); !reflect.DeepEqual(got, []string{"S,A,T"}) {
		t.Errorf("activating paths = %v; want S,A,T", got)
	}

	neg, err := cfpg.BuildPathsGraph(g, lv, 2, cfpg.WithTargetSign(1))
	if err != nil {
		t.Fatalf("BuildPathsGraph(-): %v", err)
	}
	if got := pathStrings(neg.EnumeratePaths()); !reflect.DeepEqual(got, []string{"S,B,T"}) {
		t.Errorf("inhibiting paths = %v; want S,B,T", got)
	}
}

// TestBuildPathsGraph_ParityCollapseCount checks that CountPaths
// agrees with enumeration when both parities of one occurrence
// survive the sign filter: the sign-0 and sign-1 copies of A carry
// two distinct walks that share the name sequence S,A,T.
func TestBuildPathsGraph_ParityCollapseCount(t *testing.T) {
	g := digraph.New(digraph.WithSigned())
	for _, e := range []struct {
		from, to string
		sign     int
	}{
		{"S", "A", 0}, {"S", "A", 1},
		{"A", "T", 0}, {"A", "T", 1},
	} {
		if _, err := g.AddEdge(e.from, e.to, e.sign); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	lv, err := reach.Compute(g, "S", "T", 2, reach.WithSigned())
	if err != nil {
		t.Fatalf("reach.Compute: %v", err)
	}
	pg, err := cfpg.BuildPathsGraph(g, lv, 2, cfpg.WithTargetSign(0))
	if err != nil {
		t.Fatalf("BuildPathsGraph: %v", err)
	}

	got := pathStrings(pg.EnumeratePaths())
	if !reflect.DeepEqual(got, []string{"S,A,T"}) {
		t.Fatalf("walks = %v; want S,A,T only", got)
	}
	if pg.CountPaths().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("CountPaths = %v; want the enumeration size 1", pg.CountPaths())
	}
}
