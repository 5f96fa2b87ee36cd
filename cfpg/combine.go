package cfpg

import (
	"math/big"
	"math/rand"
	"sort"
)

// Combined is a union of per-length CFPGs over the same endpoint
// pair, with bridge edges added between redundant copies so that a
// single memoryless walk can realize any path of any contributing
// length. All member graphs share one source copy; a walk ends when
// it reaches a copy with no outgoing edges, which is always a target.
type Combined struct {
	source  CNode
	lengths map[int]struct{}

	nodes map[CNode]struct{}
	hist  map[CNode]vset
	succ  map[CNode]map[CNode]float64
	pred  map[CNode]map[CNode]struct{}
}

// Combine merges the given per-length CFPGs. Empty members are
// skipped; if every member is empty the result is a valid empty
// graph. Returns ErrNilInput when the map or any member is nil, and
// ErrMismatchedSource when members disagree on the source copy.
func Combine(byLength map[int]*CFPG) (*Combined, error) {
	if byLength == nil {
		return nil, ErrNilInput
	}
	cmb := &Combined{
		lengths: make(map[int]struct{}),
		nodes:   make(map[CNode]struct{}),
		hist:    make(map[CNode]vset),
		succ:    make(map[CNode]map[CNode]float64),
		pred:    make(map[CNode]map[CNode]struct{}),
	}
	lengths := make([]int, 0, len(byLength))
	for l := range byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		if err := cmb.Add(l, byLength[l]); err != nil {
			return nil, err
		}
	}

	return cmb, nil
}

// Add merges one more per-length CFPG into the union and re-runs the
// bridging pass.
func (c *Combined) Add(length int, g *CFPG) error {
	if g == nil {
		return ErrNilInput
	}
	if g.Empty() {
		return nil
	}
	if len(c.lengths) == 0 {
		c.source = g.Source
	} else if g.Source != c.source {
		return ErrMismatchedSource
	}
	c.lengths[length] = struct{}{}

	for n, h := range g.hist {
		if _, ok := c.nodes[n]; !ok {
			c.nodes[n] = struct{}{}
			c.hist[n] = h.clone()
			c.succ[n] = make(map[CNode]float64)
			c.pred[n] = make(map[CNode]struct{})
		}
	}
	for u, ss := range g.succ {
		for v, w := range ss {
			c.succ[u][v] = w
			c.pred[v][u] = struct{}{}
		}
	}
	c.bridge()

	return nil
}

// bridge links redundant copies across member graphs: when two copies
// carry the same (layer, name, sign) and one history strictly
// contains the other, a walk sitting on the smaller-history copy may
// also continue as the larger one, since every constraint the larger
// copy records is already satisfied. Iterated to a fixed point
// because each new edge can expose further redundancy.
func (c *Combined) bridge() {
	byVNode := make(map[VNode][]CNode)
	for n := range c.nodes {
		v := n.vnode()
		byVNode[v] = append(byVNode[v], n)
	}
	for {
		added := false
		for _, group := range byVNode {
			for _, a := range group {
				for _, b := range group {
					if a == b || !strictSubset(c.hist[a], c.hist[b]) {
						continue
					}
					for v, w := range c.succ[b] {
						if _, ok := c.succ[a][v]; ok {
							continue
						}
						c.succ[a][v] = w
						c.pred[v][a] = struct{}{}
						added = true
					}
				}
			}
		}
		if !added {
			return
		}
	}
}

func strictSubset(a, b vset) bool {
	if len(a) >= len(b) {
		return false
	}
	for v := range a {
		if !b.has(v) {
			return false
		}
	}

	return true
}

// Empty reports whether the union carries no paths.
func (c *Combined) Empty() bool {
	return len(c.lengths) == 0
}

// Lengths returns the contributing path lengths, sorted.
func (c *Combined) Lengths() []int {
	out := make([]int, 0, len(c.lengths))
	for l := range c.lengths {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

// Nodes returns all copies in the union, sorted.
func (c *Combined) Nodes() []CNode {
	out := make([]CNode, 0, len(c.nodes))
	for n := range c.nodes {
		out = append(out, n)
	}
	sortCNodes(out)

	return out
}

// Successors returns the successor copies of n in the union, sorted.
// Bridge edges are included.
func (c *Combined) Successors(n CNode) []CNode {
	out := make([]CNode, 0, len(c.succ[n]))
	for v := range c.succ[n] {
		out = append(out, v)
	}
	sortCNodes(out)

	return out
}

// SamplePaths draws n paths by memoryless weighted walks from the
// shared source; each walk ends at whichever target copy it reaches,
// so path lengths are mixed according to the edge weights.
func (c *Combined) SamplePaths(n int, opts ...SampleOption) ([]Path, error) {
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

func (c *Combined) walkOnce(rng *rand.Rand) Path {
	path := Path{c.source.Name}
	cur := c.source
	for len(c.succ[cur]) > 0 {
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

// EnumeratePaths lists every distinct path of every contributing
// length, deduplicated and sorted.
func (c *Combined) EnumeratePaths() []Path {
	out := []Path{}
	if c.Empty() {
		return out
	}

	seen := make(map[string]struct{})
	var walk func(n CNode, p Path)
	walk = func(n CNode, p Path) {
		if len(c.succ[n]) == 0 {
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
	walk(c.source, Path{c.source.Name})
	sortPaths(out)

	return out
}

// CountPaths returns the number of distinct paths across all
// contributing lengths. Bridge edges make several copy-walks realize
// the same name sequence, so the count enumerates rather than running
// the per-length dynamic program.
func (c *Combined) CountPaths() *big.Int {
	return big.NewInt(int64(len(c.EnumeratePaths())))
}

// CombinedRaw is a union of per-length raw paths graphs over the same
// endpoint pair. Raw layers keep interior occurrences of the target
// name, so merging the member graphs into one structure would let a
// walk of one length slip past another length's target; the union
// therefore keeps the members separate and dispatches to them.
type CombinedRaw struct {
	source  string
	target  string
	members map[int]*PathsGraph
}

// CombineRaw merges the given per-length raw paths graphs. Empty
// members are skipped; if every member is empty the result is a valid
// empty union. Returns ErrNilInput when the map or any member is nil,
// and ErrMismatchedSource when members disagree on the endpoints.
func CombineRaw(byLength map[int]*PathsGraph) (*CombinedRaw, error) {
	if byLength == nil {
		return nil, ErrNilInput
	}
	cmb := &CombinedRaw{members: make(map[int]*PathsGraph)}
	lengths := make([]int, 0, len(byLength))
	for l := range byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		if err := cmb.Add(l, byLength[l]); err != nil {
			return nil, err
		}
	}

	return cmb, nil
}

// Add merges one more per-length raw paths graph into the union.
func (c *CombinedRaw) Add(length int, pg *PathsGraph) error {
	if pg == nil {
		return ErrNilInput
	}
	if pg.Empty() {
		return nil
	}
	if len(c.members) == 0 {
		c.source = pg.Source.Name
		c.target = pg.Target.Name
	} else if pg.Source.Name != c.source || pg.Target.Name != c.target {
		return ErrMismatchedSource
	}
	c.members[length] = pg

	return nil
}

// Empty reports whether the union carries no walks.
func (c *CombinedRaw) Empty() bool {
	return len(c.members) == 0
}

// Lengths returns the contributing walk lengths, sorted.
func (c *CombinedRaw) Lengths() []int {
	out := make([]int, 0, len(c.members))
	for l := range c.members {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

// SamplePaths draws n walks, picking for every draw a member length
// with probability proportional to that member's walk count and then
// walking that member memorylessly.
func (c *CombinedRaw) SamplePaths(n int, opts ...SampleOption) ([]Path, error) {
	o, rng, err := buildSampleOptions(opts)
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, n)
	if c.Empty() || n <= 0 {
		return paths, nil
	}

	lengths := c.Lengths()
	weights := make([]float64, len(lengths))
	for i, l := range lengths {
		w, _ := new(big.Float).SetInt(c.members[l].CountPaths()).Float64()
		weights[i] = w
	}
	for len(paths) < n {
		select {
		case <-o.Ctx.Done():
			return paths, o.Ctx.Err()
		default:
		}

		member := c.members[lengths[weightedChoice(rng, weights)]]
		p := member.walkOnce(rng)
		paths = append(paths, p)
		o.OnSample(len(paths), p)
	}

	return paths, nil
}

// EnumeratePaths lists every distinct walk of every contributing
// length, sorted. Walks of different lengths cannot share a name
// sequence, so the member lists concatenate without duplicates.
func (c *CombinedRaw) EnumeratePaths() []Path {
	out := []Path{}
	for _, l := range c.Lengths() {
		out = append(out, c.members[l].EnumeratePaths()...)
	}
	sortPaths(out)

	return out
}

// CountPaths returns the number of distinct walk name sequences
// across all contributing lengths.
func (c *CombinedRaw) CountPaths() *big.Int {
	total := new(big.Int)
	for _, pg := range c.members {
		total.Add(total, pg.CountPaths())
	}

	return total
}
