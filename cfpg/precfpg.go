package cfpg

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
)

// FixpointOption configures BuildPreCFPG via functional arguments.
type FixpointOption func(*FixpointOptions)

// FixpointOptions holds parameters for the tag-and-prune refinement.
type FixpointOptions struct {
	// Ctx allows cancellation between rounds.
	Ctx context.Context

	// MaxRounds caps the outer fixed-point loop; 0 means a generous
	// default derived from the node count. The refinement shrinks the
	// graph monotonically, so hitting the cap surfaces
	// ErrNoConvergence and signals an internal invariant violation.
	MaxRounds int

	// OnRound is called after every completed round with the round
	// number and the surviving node and edge counts.
	OnRound func(round, nodes, edges int)

	// internal error recorded during option parsing
	err error
}

// DefaultFixpointOptions returns FixpointOptions with a background
// context, the default round cap and a no-op hook.
func DefaultFixpointOptions() FixpointOptions {
	return FixpointOptions{
		Ctx:     context.Background(),
		OnRound: func(int, int, int) {},
	}
}

// WithFixpointContext sets a custom context for cancellation.
func WithFixpointContext(ctx context.Context) FixpointOption {
	return func(o *FixpointOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxRounds overrides the round cap. Negative values are an option
// violation; 0 restores the default.
func WithMaxRounds(n int) FixpointOption {
	return func(o *FixpointOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxRounds cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxRounds = n
	}
}

// WithOnRound registers a per-round diagnostic callback.
func WithOnRound(fn func(round, nodes, edges int)) FixpointOption {
	return func(o *FixpointOptions) {
		if fn != nil {
			o.OnRound = fn
		}
	}
}

// PreCFPG is the tag-and-prune refinement of a raw paths graph: every
// node that cannot lie on a cycle-free source→target path has been
// removed, and each survivor v carries tags — the set of upstream
// nodes that are admissible, cycle-safe histories for reaching v.
//
// Membership x ∈ tags[v] guarantees a walk x→…→v that never revisits
// x's name; v itself is an implicit member of its own tag set.
//
// Its PathSource methods sample with memory: each successor is checked
// against the path walked so far, which can dead-end and retry.
type PreCFPG struct {
	// Source and Target are inherited from the raw paths graph.
	Source VNode
	Target VNode

	// Length is the exact number of edges on every path.
	Length int

	g      *layered
	tags   map[VNode]vset
	rounds int
}

// BuildPreCFPG derives the pre-CFPG from a raw paths graph by
// iterated per-level refinement, repeated until both the edge set and
// the tag map stop changing between rounds.
//
// Returns ErrNilInput or ErrOptionViolation on bad configuration, the
// context error on cancellation, or ErrNoConvergence if the round cap
// is exceeded. An empty result means "no cycle-free paths of this
// length" and is not an error.
func BuildPreCFPG(pg *PathsGraph, opts ...FixpointOption) (*PreCFPG, error) {
	if pg == nil {
		return nil, ErrNilInput
	}
	o := DefaultFixpointOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	pre := &PreCFPG{
		Source: pg.Source,
		Target: pg.Target,
		Length: pg.Length,
		g:      newLayered(),
		tags:   make(map[VNode]vset),
	}
	if pg.Empty() {
		return pre, nil
	}

	// Initial pruning: an interior node named after the source or the
	// target always represents a revisit, so it can never survive.
	work := pg.g.clone()
	for _, v := range work.nodesSorted() {
		if v.Layer > 0 && v.Layer < pg.Length && (v.Name == pg.Source.Name || v.Name == pg.Target.Name) {
			work.removeNode(v)
		}
	}
	work.pruneBetween(pg.Source, pg.Target)
	if !work.hasNode(pg.Source) || !work.hasNode(pg.Target) {
		return pre, nil
	}

	// Initial tagging: the source legitimately precedes every node.
	tags := make(map[VNode]vset, work.nodeCount())
	for v := range work.succ {
		tags[v] = vset{pg.Source: {}}
	}

	maxRounds := o.MaxRounds
	if maxRounds == 0 {
		maxRounds = work.nodeCount() + 2
	}

	for round := 1; ; round++ {
		if round > maxRounds {
			return nil, fmt.Errorf("%w: after %d rounds", ErrNoConvergence, maxRounds)
		}
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}

		prevG := work.clone()
		prevT := cloneTags(tags)

		var ok bool
		work, tags, ok = refineRound(work, tags, pg.Source, pg.Target, pg.Length)
		if !ok {
			o.OnRound(round, 0, 0)

			return pre, nil
		}
		o.OnRound(round, work.nodeCount(), work.edgeCount())

		if work.equal(prevG) && tagsEqual(tags, prevT) {
			pre.g = work
			pre.tags = tags
			pre.rounds = round

			return pre, nil
		}
	}
}

// refineRound performs one full pass over the interior levels. For
// each node x at the current level it assembles the local candidate
// graph g_x — x's admissible upstream history plus everything
// downstream of x that never re-uses x's name — prunes g_x to the
// source→target connected core, and, if x survives its own pruning,
// contributes g_x to the level's merged graph and adds x as a tag on
// every node downstream of x. Nodes no contribution sponsors are gone.
// Reports ok=false when the graph collapses to empty.
func refineRound(g *layered, tags map[VNode]vset, src, tgt VNode, length int) (*layered, map[VNode]vset, bool) {
	cur := g
	t := tags

	for layer := 1; layer < length; layer++ {
		merged := newLayered()
		tagAdd := make(map[VNode]vset)

		for _, x := range cur.nodesAt(layer) {
			// Local candidate graph: tag-consistent upstream, plus the
			// cycle-free forward cone of x.
			keep := cur.descend(x, x.Name)
			for u := range t[x] {
				if cur.hasNode(u) {
					keep[u] = struct{}{}
				}
			}
			gx := cur.induced(keep)
			gx.pruneBetween(src, tgt)
			if !gx.hasNode(x) || !gx.hasNode(src) || !gx.hasNode(tgt) {
				continue
			}

			merged.union(gx)
			for v := range gx.descend(x, x.Name) {
				if v == x {
					continue
				}
				if tagAdd[v] == nil {
					tagAdd[v] = make(vset)
				}
				tagAdd[v][x] = struct{}{}
			}
		}

		if !merged.hasNode(src) || !merged.hasNode(tgt) {
			return nil, nil, false
		}
		cur = merged

		// Rebuild tags for the survivors: retained old tags restricted
		// to live nodes, plus this level's additions.
		nt := make(map[VNode]vset, cur.nodeCount())
		for v := range cur.succ {
			s := vset{src: {}}
			for u := range t[v] {
				if cur.hasNode(u) {
					s[u] = struct{}{}
				}
			}
			for u := range tagAdd[v] {
				s[u] = struct{}{}
			}
			nt[v] = s
		}
		t = nt
	}

	return cur, t, true
}

func cloneTags(tags map[VNode]vset) map[VNode]vset {
	out := make(map[VNode]vset, len(tags))
	for v, s := range tags {
		out[v] = s.clone()
	}

	return out
}

func tagsEqual(a, b map[VNode]vset) bool {
	if len(a) != len(b) {
		return false
	}
	for v, s := range a {
		o, ok := b[v]
		if !ok || !s.equal(o) {
			return false
		}
	}

	return true
}

// Empty reports whether no cycle-free paths survived refinement.
func (p *PreCFPG) Empty() bool {
	return !p.g.hasNode(p.Source) || !p.g.hasNode(p.Target)
}

// Rounds returns how many refinement rounds ran, including the final
// confirming round.
func (p *PreCFPG) Rounds() int { return p.rounds }

// Nodes returns all surviving occurrences, sorted.
func (p *PreCFPG) Nodes() []VNode { return p.g.nodesSorted() }

// Tags returns v's admissible upstream history, sorted, or nil for an
// unknown node. v itself is an implicit member and is not listed.
func (p *PreCFPG) Tags(v VNode) []VNode {
	s, ok := p.tags[v]
	if !ok {
		return nil
	}

	return s.sorted()
}

// SamplePaths draws up to n cycle-free paths by tag-guarded random
// walks: at every step, only successors whose tag set covers the whole
// path walked so far are eligible. A walk with no eligible successor
// dead-ends and is retried; the failure budget is WithMaxAttempts.
// Exhausting the budget returns the paths collected so far.
func (p *PreCFPG) SamplePaths(n int, opts ...SampleOption) ([]Path, error) {
	o, rng, err := buildSampleOptions(opts)
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, n)
	if p.Empty() || n <= 0 {
		return paths, nil
	}

	budget := o.MaxAttempts
	if budget == 0 {
		budget = 10 * n
	}
	failures := 0
	for len(paths) < n && failures < budget {
		select {
		case <-o.Ctx.Done():
			return paths, o.Ctx.Err()
		default:
		}

		path, ok := p.walkOnce(rng)
		if !ok {
			failures++

			continue
		}
		paths = append(paths, path)
		o.OnSample(len(paths), path)
	}

	return paths, nil
}

// walkOnce performs one tag-guarded walk, reporting ok=false on a
// dead end.
func (p *PreCFPG) walkOnce(rng *rand.Rand) (Path, bool) {
	visited := []VNode{p.Source}
	cur := p.Source
	for cur != p.Target {
		var cands []VNode
		for _, w := range p.g.succsSorted(cur) {
			ok := true
			for _, v := range visited {
				if !p.tags[w].has(v) {
					ok = false

					break
				}
			}
			if ok {
				cands = append(cands, w)
			}
		}
		if len(cands) == 0 {
			return nil, false
		}
		cur = cands[rng.Intn(len(cands))]
		visited = append(visited, cur)
	}

	path := make(Path, 0, len(visited))
	for _, v := range visited {
		path = append(path, v.Name)
	}

	return path, true
}

// EnumeratePaths lists every distinct cycle-free source→target path,
// deduplicated and sorted.
func (p *PreCFPG) EnumeratePaths() []Path {
	if p.Empty() {
		return []Path{}
	}

	return enumerateWalks(p.g, p.Source, func(v VNode) bool { return v == p.Target }, make(map[string]struct{}))
}

// CountPaths returns the exact number of distinct cycle-free paths.
// On this stage the count is obtained by enumeration — the dynamic
// program only becomes valid after history splitting (see CFPG).
func (p *PreCFPG) CountPaths() *big.Int {
	return big.NewInt(int64(len(p.EnumeratePaths())))
}
