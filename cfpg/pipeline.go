package cfpg

import (
	"github.com/katalvlaran/cfpath/digraph"
	"github.com/katalvlaran/cfpath/reach"
)

// BuildAll runs the whole pipeline for every path length up to
// maxDepth: one reachability pass, then per length a raw paths graph,
// a pre-CFPG fixed point and a CFPG. Lengths with no surviving paths
// are left out of the result, so the returned map feeds Combine
// directly. Sign filtering is enabled automatically when the input
// graph is signed; WithTargetSign then selects the overall parity.
func BuildAll(g *digraph.Graph, source, target string, maxDepth int, opts ...BuildOption) (map[int]*CFPG, error) {
	if g == nil {
		return nil, ErrNilInput
	}
	var ropts []reach.Option
	if g.Signed() {
		ropts = append(ropts, reach.WithSigned())
	}
	lv, err := reach.Compute(g, source, target, maxDepth, ropts...)
	if err != nil {
		return nil, err
	}

	out := make(map[int]*CFPG, maxDepth)
	for length := 1; length <= maxDepth; length++ {
		pg, err := BuildPathsGraph(g, lv, length, opts...)
		if err != nil {
			return nil, err
		}
		if pg.Empty() {
			continue
		}
		pre, err := BuildPreCFPG(pg)
		if err != nil {
			return nil, err
		}
		if pre.Empty() {
			continue
		}
		cf, err := BuildCFPG(pre)
		if err != nil {
			return nil, err
		}
		if cf.Empty() {
			continue
		}
		out[length] = cf
	}

	return out, nil
}
