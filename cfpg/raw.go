package cfpg

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/katalvlaran/cfpath/digraph"
	"github.com/katalvlaran/cfpath/reach"
)

// BuildOption configures BuildPathsGraph via functional arguments.
type BuildOption func(*BuildOptions)

// BuildOptions holds parameters for raw paths graph construction.
type BuildOptions struct {
	// TargetSign is the requested net parity of complete paths; only
	// meaningful on signed level sets.
	TargetSign int

	haveTargetSign bool
	err            error
}

// DefaultBuildOptions returns BuildOptions with no sign filter.
func DefaultBuildOptions() BuildOptions { return BuildOptions{} }

// WithTargetSign keeps only paths whose cumulative sign parity at the
// target equals s (0 activating, 1 inhibiting). Requires signed level
// sets; values outside {0,1} are an option violation.
func WithTargetSign(s int) BuildOption {
	return func(o *BuildOptions) {
		if s != 0 && s != 1 {
			o.err = fmt.Errorf("%w: target sign must be 0 or 1 (%d)", ErrOptionViolation, s)

			return
		}
		o.TargetSign = s
		o.haveTargetSign = true
	}
}

// PathsGraph is the raw layered structure: layer k holds every
// occurrence in forward[k] ∩ backward[length-k], and an edge joins
// consecutive layers wherever the original graph has a matching edge.
//
// It is complete — every walk of exactly Length edges from source to
// target appears as a layer walk — but not cycle-free: the same name
// may recur along a single walk. Its PathSource methods therefore
// operate on walks; use BuildPreCFPG/BuildCFPG for cycle-free paths.
type PathsGraph struct {
	// Source and Target are the unique layer-0 and layer-Length nodes.
	Source VNode
	Target VNode

	// Length is the exact number of edges on every walk.
	Length int

	signed bool
	g      *layered
}

// BuildPathsGraph constructs the raw paths graph of the given exact
// length from precomputed reachability level sets. Source and target
// are the ones the levels were computed for.
//
// Returns ErrNilInput, ErrBadLength, ErrDepthShort,
// ErrSignFilterUnsigned or ErrOptionViolation on bad configuration.
// An empty result (Empty() == true) means "no walks of this exact
// length" and is not an error.
func BuildPathsGraph(g *digraph.Graph, lv *reach.Levels, length int, opts ...BuildOption) (*PathsGraph, error) {
	if g == nil || lv == nil {
		return nil, ErrNilInput
	}
	o := DefaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if length < 1 {
		return nil, ErrBadLength
	}
	if lv.Depth() < length {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrDepthShort, lv.Depth(), length)
	}
	if o.haveTargetSign && !lv.Signed() {
		return nil, ErrSignFilterUnsigned
	}

	signed := lv.Signed()
	tgtSign := 0
	if signed {
		tgtSign = o.TargetSign
	}

	pg := &PathsGraph{
		Source: VNode{Layer: 0, Name: lv.Source},
		Target: VNode{Layer: length, Name: lv.Target, Sign: tgtSign},
		Length: length,
		signed: signed,
		g:      newLayered(),
	}

	// Layer-k membership: forward occurrence (n, p) survives iff the
	// complementary backward occurrence (n, p^tgtSign) exists at depth
	// length-k, so that the full walk's parity equals tgtSign.
	for k := 0; k <= length; k++ {
		for f := range lv.Forward[k] {
			q := 0
			if signed {
				q = f.Sign ^ tgtSign
			}
			if _, ok := lv.Backward[length-k][reach.Node{Name: f.Name, Sign: q}]; !ok {
				continue
			}
			sign := 0
			if signed {
				sign = f.Sign
			}
			pg.g.addNode(VNode{Layer: k, Name: f.Name, Sign: sign})
		}
	}

	if !pg.g.hasNode(pg.Source) || !pg.g.hasNode(pg.Target) {
		pg.g = newLayered()

		return pg, nil
	}

	// Edges: original-graph edges whose endpoints both survived, with
	// the sign that continues the parity.
	for _, u := range pg.g.nodesSorted() {
		if u.Layer == length {
			continue
		}
		halfedges, err := g.Successors(u.Name)
		if err != nil {
			return nil, fmt.Errorf("cfpg: successors of %q: %w", u.Name, err)
		}
		for _, he := range halfedges {
			sign := 0
			if signed {
				sign = u.Sign ^ he.Sign
			}
			v := VNode{Layer: u.Layer + 1, Name: he.Neighbor, Sign: sign}
			if pg.g.hasNode(v) {
				pg.g.addEdge(u, v)
			}
		}
	}

	return pg, nil
}

// Empty reports whether the graph carries no walks at all.
func (pg *PathsGraph) Empty() bool {
	return !pg.g.hasNode(pg.Source) || !pg.g.hasNode(pg.Target)
}

// Signed reports whether the structure tracks sign parity.
func (pg *PathsGraph) Signed() bool { return pg.signed }

// Nodes returns all layered occurrences, sorted.
func (pg *PathsGraph) Nodes() []VNode { return pg.g.nodesSorted() }

// Successors returns the next-layer neighbors of v, sorted.
func (pg *PathsGraph) Successors(v VNode) []VNode { return pg.g.succsSorted(v) }

// SamplePaths draws n memoryless walks from source to target; the
// returned name sequences may repeat names. An empty graph yields an
// empty slice.
func (pg *PathsGraph) SamplePaths(n int, opts ...SampleOption) ([]Path, error) {
	o, rng, err := buildSampleOptions(opts)
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, n)
	if pg.Empty() || n <= 0 {
		return paths, nil
	}
	for len(paths) < n {
		select {
		case <-o.Ctx.Done():
			return paths, o.Ctx.Err()
		default:
		}

		p := pg.walkOnce(rng)
		paths = append(paths, p)
		o.OnSample(len(paths), p)
	}

	return paths, nil
}

func (pg *PathsGraph) walkOnce(rng *rand.Rand) Path {
	p := Path{pg.Source.Name}
	cur := pg.Source
	for cur != pg.Target {
		succs := pg.g.succsSorted(cur)
		// every non-target node has a successor by construction
		cur = succs[rng.Intn(len(succs))]
		p = append(p, cur.Name)
	}

	return p
}

// EnumeratePaths lists every distinct source→target walk as a name
// sequence, deduplicated and sorted.
func (pg *PathsGraph) EnumeratePaths() []Path {
	if pg.Empty() {
		return []Path{}
	}

	return enumerateWalks(pg.g, pg.Source, func(v VNode) bool { return v == pg.Target }, nil)
}

// CountPaths returns the number of distinct source→target walk name
// sequences. The layer-by-layer dynamic program counts walks through
// occurrences, which equals the name-sequence count unless sign
// splitting has produced parity-distinct copies of one occurrence; in
// that case the count falls back to enumeration.
func (pg *PathsGraph) CountPaths() *big.Int {
	if pg.Empty() {
		return big.NewInt(0)
	}
	if pg.signed && pg.mixedParity() {
		return big.NewInt(int64(len(pg.EnumeratePaths())))
	}

	return countWalks(pg.g, pg.Source, pg.Target, pg.Length)
}

// mixedParity reports whether some (layer, name) occurrence appears
// with both sign parities.
func (pg *PathsGraph) mixedParity() bool {
	type occ struct {
		layer int
		name  string
	}
	signs := make(map[occ]int)
	for v := range pg.g.succ {
		k := occ{v.Layer, v.Name}
		s, ok := signs[k]
		if ok && s != v.Sign {
			return true
		}
		signs[k] = v.Sign
	}

	return false
}

// enumerateWalks collects every walk from src to a node satisfying
// done, optionally rejecting name repetitions (distinct != nil means
// "skip successors whose name is already on the walk"). Results are
// deduplicated by name sequence and sorted.
func enumerateWalks(g *layered, src VNode, done func(VNode) bool, distinct map[string]struct{}) []Path {
	var (
		out  []Path
		seen = make(map[string]struct{})
		walk func(v VNode, p Path)
	)
	walk = func(v VNode, p Path) {
		if done(v) {
			key := pathKey(p)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				cp := make(Path, len(p))
				copy(cp, p)
				out = append(out, cp)
			}

			return
		}
		for _, w := range g.succsSorted(v) {
			if distinct != nil {
				if _, used := distinct[w.Name]; used {
					continue
				}
				distinct[w.Name] = struct{}{}
			}
			walk(w, append(p, w.Name))
			if distinct != nil {
				delete(distinct, w.Name)
			}
		}
	}
	if distinct != nil {
		distinct[src.Name] = struct{}{}
	}
	walk(src, Path{src.Name})
	sortPaths(out)

	return out
}

// countWalks runs the forward dynamic program: ways into the target is
// the sum over predecessors of ways into each predecessor, seeded with
// one at the source.
func countWalks(g *layered, src, dst VNode, length int) *big.Int {
	ways := map[VNode]*big.Int{src: big.NewInt(1)}
	for k := 1; k <= length; k++ {
		for _, v := range g.nodesAt(k) {
			sum := new(big.Int)
			for u := range g.pred[v] {
				if w, ok := ways[u]; ok {
					sum.Add(sum, w)
				}
			}
			ways[v] = sum
		}
	}
	if w, ok := ways[dst]; ok {
		return w
	}

	return big.NewInt(0)
}
