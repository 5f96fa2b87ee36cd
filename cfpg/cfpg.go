package cfpg

import (
	"math/big"
	"math/rand"
)

// CFPG is the cycle-free paths graph proper: each pre-CFPG node is
// split into one copy per distinct compatible history, so that for
// every edge u→v the invariant hist(u) ⊆ hist(v) holds. Any walk that
// starts at the unique source and follows outgoing edges is therefore
// guaranteed cycle-free — revisiting a name would require a later
// history to exclude an earlier walk node, which the invariant
// forbids. Sampling over a CFPG is memoryless.
type CFPG struct {
	// Source and Target are the unique endpoint copies.
	Source CNode
	Target CNode

	// Length is the exact number of edges on every path.
	Length int

	nodes map[CNode]struct{}
	hist  map[CNode]vset
	succ  map[CNode]map[CNode]float64
	pred  map[CNode]map[CNode]struct{}

	// uniform, when non-nil, holds the deduplicated path list and
	// SamplePaths draws from it directly; see
	// SetUniformPathDistribution.
	uniform []Path
}

func newCFPG(length int) *CFPG {
	return &CFPG{
		Length: length,
		nodes:  make(map[CNode]struct{}),
		hist:   make(map[CNode]vset),
		succ:   make(map[CNode]map[CNode]float64),
		pred:   make(map[CNode]map[CNode]struct{}),
	}
}

func (c *CFPG) addNode(n CNode, h vset) {
	if _, ok := c.nodes[n]; ok {
		return
	}
	c.nodes[n] = struct{}{}
	c.hist[n] = h
	c.succ[n] = make(map[CNode]float64)
	c.pred[n] = make(map[CNode]struct{})
}

func (c *CFPG) addEdge(u, v CNode, w float64) {
	c.succ[u][v] = w
	c.pred[v][u] = struct{}{}
}

func (c *CFPG) removeNode(n CNode) {
	for u := range c.pred[n] {
		delete(c.succ[u], n)
	}
	for v := range c.succ[n] {
		delete(c.pred[v], n)
	}
	delete(c.nodes, n)
	delete(c.hist, n)
	delete(c.succ, n)
	delete(c.pred, n)
}

// BuildCFPG derives the cycle-free paths graph from a pre-CFPG by
// history splitting, processed from the target layer backward.
//
// Construction is deterministic and idempotent: two builds from the
// same pre-CFPG yield identical node and edge sets. Returns
// ErrNilInput for a nil argument; an empty pre-CFPG yields an empty
// (valid) CFPG.
func BuildCFPG(pre *PreCFPG) (*CFPG, error) {
	if pre == nil {
		return nil, ErrNilInput
	}
	c := newCFPG(pre.Length)
	if pre.Empty() {
		return c, nil
	}

	// Target layer: a single unsplit copy whose history is its full
	// tag set — every admissible upstream node is compatible with
	// terminating the walk.
	tgtHist := pre.tags[pre.Target].clone()
	tgtHist[pre.Target] = struct{}{}
	c.Target = CNode{Layer: pre.Length, Name: pre.Target.Name, Sign: pre.Target.Sign, Hist: histKey(tgtHist)}
	c.addNode(c.Target, tgtHist)

	copies := []CNode{c.Target}
	for layer := pre.Length - 1; layer >= 0; layer-- {
		copies = splitLayer(c, pre, layer, copies)
		if len(copies) == 0 {
			return newCFPG(pre.Length), nil
		}
	}

	// The layer-0 pass produces exactly one copy of the source: its
	// only admissible history is itself.
	c.Source = copies[0]

	c.pruneDangling()
	if _, ok := c.nodes[c.Source]; !ok {
		return newCFPG(pre.Length), nil
	}

	return c, nil
}

// splitLayer splits every candidate at the given layer against the
// already-split copies one layer down and returns the new copies,
// sorted. A candidate x is considered once per successor copy w with
// x ∈ hist(w): the intersection of x's tags with w's history, pruned
// to the sub-DAG still connecting source to x, becomes one candidate
// history; distinct surviving histories become distinct copies, and
// successor copies that produced the same history share that copy.
func splitLayer(c *CFPG, pre *PreCFPG, layer int, prevCopies []CNode) []CNode {
	type group struct {
		hist  vset
		succs []CNode
	}

	var out []CNode
	for _, x := range pre.g.nodesAt(layer) {
		groups := make(map[HistKey]*group)
		var keys []HistKey

		for _, w := range prevCopies {
			if !pre.g.succ[x].has(w.vnode()) || !c.hist[w].has(x) {
				continue
			}

			cand := intersect(pre.tags[x], c.hist[w])
			cand[x] = struct{}{}
			sub := pre.g.induced(cand)
			sub.pruneBetween(pre.Source, x)
			if !sub.hasNode(pre.Source) || !sub.hasNode(x) {
				continue
			}

			h := sub.nodeSet()
			key := histKey(h)
			g, ok := groups[key]
			if !ok {
				g = &group{hist: h}
				groups[key] = g
				keys = append(keys, key)
			}
			g.succs = append(g.succs, w)
		}

		for _, key := range keys {
			g := groups[key]
			copyNode := CNode{Layer: layer, Name: x.Name, Sign: x.Sign, Hist: key}
			c.addNode(copyNode, g.hist)
			for _, w := range g.succs {
				c.addEdge(copyNode, w, 1.0)
			}
			out = append(out, copyNode)
		}
	}
	sortCNodes(out)

	return out
}

// pruneDangling removes split artifacts: non-target nodes with no
// outgoing edges and non-source nodes with no incoming edges,
// cascading until stable.
func (c *CFPG) pruneDangling() {
	for {
		var drop []CNode
		for n := range c.nodes {
			if n != c.Target && len(c.succ[n]) == 0 {
				drop = append(drop, n)

				continue
			}
			if n != c.Source && len(c.pred[n]) == 0 {
				drop = append(drop, n)
			}
		}
		if len(drop) == 0 {
			return
		}
		for _, n := range drop {
			c.removeNode(n)
		}
	}
}

// Empty reports whether the graph carries no paths.
func (c *CFPG) Empty() bool {
	_, s := c.nodes[c.Source]
	_, t := c.nodes[c.Target]

	return len(c.nodes) == 0 || !s || !t
}

// Nodes returns all split-copies, sorted.
func (c *CFPG) Nodes() []CNode {
	out := make([]CNode, 0, len(c.nodes))
	for n := range c.nodes {
		out = append(out, n)
	}
	sortCNodes(out)

	return out
}

// History returns the history set of a copy, sorted, or nil for an
// unknown node.
func (c *CFPG) History(n CNode) []VNode {
	h, ok := c.hist[n]
	if !ok {
		return nil
	}

	return h.sorted()
}

// Successors returns the successor copies of n, sorted.
func (c *CFPG) Successors(n CNode) []CNode {
	out := make([]CNode, 0, len(c.succ[n]))
	for v := range c.succ[n] {
		out = append(out, v)
	}
	sortCNodes(out)

	return out
}

// CorrectEdgeMultiplicity divides each edge's weight by the number of
// same-named successor copies, so that locally-uniform sampling
// approximates uniformity over distinct downstream names rather than
// over split-copies. For exact uniformity over whole paths use
// SetUniformPathDistribution.
func (c *CFPG) CorrectEdgeMultiplicity() {
	c.uniform = nil
	for u, ss := range c.succ {
		byName := make(map[string]int)
		for v := range ss {
			byName[v.Name]++
		}
		for v := range ss {
			c.succ[u][v] = 1.0 / float64(byName[v.Name])
		}
	}
}

// SetUniformPathDistribution reweights every edge by the share of
// target-bound paths that continue through it, making edge-weighted
// sampling exactly uniform over the set of distinct paths.
//
// When sign splitting has produced parity-distinct copies of one
// (layer, name) occurrence, several copy-walks project onto a single
// name sequence and no memoryless edge weighting is uniform over name
// sequences. In that case the enumerated path list is stored and
// SamplePaths draws from it directly.
func (c *CFPG) SetUniformPathDistribution() {
	if c.Empty() {
		return
	}
	if c.signMixed() {
		c.uniform = c.EnumeratePaths()

		return
	}
	c.uniform = nil
	counts := c.pathCounts()
	for u, ss := range c.succ {
		total := new(big.Float)
		for v := range ss {
			total.Add(total, new(big.Float).SetInt(counts[v]))
		}
		if total.Sign() == 0 {
			continue
		}
		for v := range ss {
			share, _ := new(big.Float).Quo(new(big.Float).SetInt(counts[v]), total).Float64()
			c.succ[u][v] = share
		}
	}
}

// signMixed reports whether some (layer, name) occurrence appears
// with both sign parities. Walks through parity-distinct copies can
// collapse to one name sequence, so the walk-level dynamic program
// overstates the distinct-path count.
func (c *CFPG) signMixed() bool {
	type occ struct {
		layer int
		name  string
	}
	signs := make(map[occ]int, len(c.nodes))
	for n := range c.nodes {
		k := occ{n.Layer, n.Name}
		s, ok := signs[k]
		if ok && s != n.Sign {
			return true
		}
		signs[k] = n.Sign
	}

	return false
}

// pathCounts runs the backward dynamic program: the number of paths
// from each copy to the target.
func (c *CFPG) pathCounts() map[CNode]*big.Int {
	counts := make(map[CNode]*big.Int, len(c.nodes))
	for n := range c.nodes {
		counts[n] = new(big.Int)
	}
	counts[c.Target] = big.NewInt(1)
	for layer := c.Length - 1; layer >= 0; layer-- {
		for n := range c.nodes {
			if n.Layer != layer {
				continue
			}
			sum := new(big.Int)
			for v := range c.succ[n] {
				sum.Add(sum, counts[v])
			}
			counts[n] = sum
		}
	}

	return counts
}

// SamplePaths draws n paths by memoryless weighted walks from the
// source. Walks on a CFPG never dead-end. An empty graph yields an
// empty slice.
func (c *CFPG) SamplePaths(n int, opts ...SampleOption) ([]Path, error) {
	o, rng, err := buildSampleOptions(opts)
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, n)
	if c.Empty() || n <= 0 {
		return paths, nil
	}
	for len(paths) < n {
		select {
		case <-o.Ctx.Done():
			return paths, o.Ctx.Err()
		default:
		}

		p := c.walkOnce(rng)
		paths = append(paths, p)
		o.OnSample(len(paths), p)
	}

	return paths, nil
}

func (c *CFPG) walkOnce(rng *rand.Rand) Path {
	if len(c.uniform) > 0 {
		src := c.uniform[rng.Intn(len(c.uniform))]

		return append(Path(nil), src...)
	}
	path := Path{c.Source.Name}
	cur := c.Source
	for cur != c.Target {
		succs := c.Successors(cur)
		weights := make([]float64, len(succs))
		for i, v := range succs {
			weights[i] = c.succ[cur][v]
		}
		cur = succs[weightedChoice(rng, weights)]
		path = append(path, cur.Name)
	}

	return path
}

// EnumeratePaths lists every distinct cycle-free path, deduplicated
// and sorted. Distinct split-copies that collapse to the same name
// sequence are reported once.
func (c *CFPG) EnumeratePaths() []Path {
	out := []Path{}
	if c.Empty() {
		return out
	}

	seen := make(map[string]struct{})
	var walk func(n CNode, p Path)
	walk = func(n CNode, p Path) {
		if n == c.Target {
			key := pathKey(p)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				cp := make(Path, len(p))
				copy(cp, p)
				out = append(out, cp)
			}

			return
		}
		for _, v := range c.Successors(n) {
			walk(v, append(p, v.Name))
		}
	}
	walk(c.Source, Path{c.Source.Name})
	sortPaths(out)

	return out
}

// CountPaths returns the exact number of distinct paths. The
// layer-by-layer dynamic program counts copy-walks, which matches the
// distinct-path count only while walks and name sequences correspond
// one-to-one; parity-distinct copies break that correspondence, and
// the count then falls back to enumeration.
func (c *CFPG) CountPaths() *big.Int {
	if c.Empty() {
		return big.NewInt(0)
	}
	if c.signMixed() {
		return big.NewInt(int64(len(c.EnumeratePaths())))
	}

	return c.pathCounts()[c.Source]
}
