// Package cfpg_test — benchmarks for the pipeline stages.
//
// The fixture is a deterministic banded DAG with a sprinkling of back
// edges, so every stage has real pruning and splitting to do. Sizes
// are kept moderate; the aim is relative cost per stage, not stress.
package cfpg_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/cfpath/cfpg"
	"github.com/katalvlaran/cfpath/digraph"
	"github.com/katalvlaran/cfpath/reach"
)

// benchGraph builds columns of width nodes between S and T, each
// column fully wired to the next, plus one back edge per column.
func benchGraph(b *testing.B, columns, width int) *digraph.Graph {
	b.Helper()
	g := digraph.New()
	name := func(col, row int) string {
		return "n" + strconv.Itoa(col) + "_" + strconv.Itoa(row)
	}
	for row := 0; row < width; row++ {
		if _, err := g.AddEdge("S", name(0, row), 0); err != nil {
			b.Fatalf("AddEdge: %v", err)
		}
		if _, err := g.AddEdge(name(columns-1, row), "T", 0); err != nil {
			b.Fatalf("AddEdge: %v", err)
		}
	}
	for col := 0; col < columns-1; col++ {
		for i := 0; i < width; i++ {
			for j := 0; j < width; j++ {
				if _, err := g.AddEdge(name(col, i), name(col+1, j), 0); err != nil {
					b.Fatalf("AddEdge: %v", err)
				}
			}
		}
		// one back edge per column pair keeps the cyclic pruning busy
		if _, err := g.AddEdge(name(col+1, 0), name(col, 0), 0); err != nil {
			b.Fatalf("AddEdge: %v", err)
		}
	}

	return g
}

func BenchmarkReachCompute(b *testing.B) {
	g := benchGraph(b, 6, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reach.Compute(g, "S", "T", 7); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildPathsGraph(b *testing.B) {
	g := benchGraph(b, 6, 4)
	lv, err := reach.Compute(g, "S", "T", 7)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = cfpg.BuildPathsGraph(g, lv, 7); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildPreCFPG(b *testing.B) {
	g := benchGraph(b, 6, 4)
	lv, err := reach.Compute(g, "S", "T", 7)
	if err != nil {
		b.Fatal(err)
	}
	pg, err := cfpg.BuildPathsGraph(g, lv, 7)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = cfpg.BuildPreCFPG(pg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildCFPG(b *testing.B) {
	g := benchGraph(b, 5, 3)
	lv, err := reach.Compute(g, "S", "T", 6)
	if err != nil {
		b.Fatal(err)
	}
	pg, err := cfpg.BuildPathsGraph(g, lv, 6)
	if err != nil {
		b.Fatal(err)
	}
	pre, err := cfpg.BuildPreCFPG(pg)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = cfpg.BuildCFPG(pre); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSamplePaths(b *testing.B) {
	g := benchGraph(b, 5, 3)
	byLength, err := cfpg.BuildAll(g, "S", "T", 6)
	if err != nil {
		b.Fatal(err)
	}
	cf, ok := byLength[6]
	if !ok {
		b.Fatal("no length-6 paths in bench fixture")
	}
	cf.SetUniformPathDistribution()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = cf.SamplePaths(100, cfpg.WithSeed(int64(i+1))); err != nil {
			b.Fatal(err)
		}
	}
}
