package cfpg_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cfpath/cfpg"
	"github.com/katalvlaran/cfpath/digraph"
)

// ExampleBuildAll runs the whole pipeline over a small signaling-style
// graph and prints every cycle-free path in lexicographic order.
func ExampleBuildAll() {
	g := digraph.New()
	for _, e := range [][2]string{
		{"A", "B"}, {"A", "C"},
		{"B", "D"}, {"C", "D"},
		{"B", "C"},
	} {
		if _, err := g.AddEdge(e[0], e[1], 0); err != nil {
			fmt.Println("add edge:", err)

			return
		}
	}

	byLength, err := cfpg.BuildAll(g, "A", "D", 3)
	if err != nil {
		fmt.Println("build:", err)

		return
	}
	combined, err := cfpg.Combine(byLength)
	if err != nil {
		fmt.Println("combine:", err)

		return
	}

	fmt.Println("lengths:", combined.Lengths())
	fmt.Println("total:", combined.CountPaths())
	for _, p := range combined.EnumeratePaths() {
		fmt.Println(strings.Join(p, "->"))
	}
	// Output:
	// lengths: [2 3]
	// total: 3
	// A->B->C->D
	// A->B->D
	// A->C->D
}

// ExampleCFPG_SamplePaths draws reproducible uniform samples from a
// single-length structure.
func ExampleCFPG_SamplePaths() {
	g := digraph.New()
	for _, e := range [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
	} {
		if _, err := g.AddEdge(e[0], e[1], 0); err != nil {
			fmt.Println("add edge:", err)

			return
		}
	}

	byLength, err := cfpg.BuildAll(g, "A", "D", 2)
	if err != nil {
		fmt.Println("build:", err)

		return
	}
	cf := byLength[2]
	cf.SetUniformPathDistribution()

	paths, err := cf.SamplePaths(3, cfpg.WithSeed(1))
	if err != nil {
		fmt.Println("sample:", err)

		return
	}
	fmt.Println("drew", len(paths), "paths of length", cf.Length)
	// Output:
	// drew 3 paths of length 2
}
