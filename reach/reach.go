package reach

import (
	"github.com/katalvlaran/cfpath/digraph"
)

// Compute builds forward and backward exact-depth level sets for the
// given endpoints, up to maxDepth hops.
//
// Returns ErrGraphNil, ErrNodeNotFound, ErrSameEndpoints, ErrBadDepth
// or ErrUnsignedGraph for invalid configuration, or the context error
// on cancellation. Empty level sets are an ordinary result.
//
// Complexity: O(maxDepth · V · avgDegree) in both directions.
func Compute(g *digraph.Graph, source, target string, maxDepth int, opts ...Option) (*Levels, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if maxDepth < 1 {
		return nil, ErrBadDepth
	}
	if !g.HasNode(source) || !g.HasNode(target) {
		return nil, ErrNodeNotFound
	}
	if source == target {
		return nil, ErrSameEndpoints
	}
	if o.Signed && !g.Signed() {
		return nil, ErrUnsignedGraph
	}

	lv := &Levels{
		Source:   source,
		Target:   target,
		Forward:  make([]NodeSet, maxDepth+1),
		Backward: make([]NodeSet, maxDepth+1),
		signed:   o.Signed,
	}
	lv.Forward[0] = NodeSet{Node{Name: source}: {}}
	lv.Backward[0] = NodeSet{Node{Name: target}: {}}

	if err := expand(g, lv.Forward, o, g.Successors); err != nil {
		return nil, err
	}
	if err := expand(g, lv.Backward, o, g.Predecessors); err != nil {
		return nil, err
	}

	return lv, nil
}

// expand fills levels[1:] by exact-depth frontier expansion: level k is
// the image of level k-1 under the adjacency function. No visited set
// is kept, so an occurrence may recur across levels.
func expand(g *digraph.Graph, levels []NodeSet, o Options, adjacent func(string) ([]digraph.Halfedge, error)) error {
	for k := 1; k < len(levels); k++ {
		// cancellation check (once per level)
		select {
		case <-o.Ctx.Done():
			return o.Ctx.Err()
		default:
		}

		next := make(NodeSet)
		for n := range levels[k-1] {
			halfedges, err := adjacent(n.Name)
			if err != nil {
				// frontier nodes come from the graph itself
				return err
			}
			for _, he := range halfedges {
				sign := 0
				if o.Signed {
					sign = n.Sign ^ he.Sign
				}
				next[Node{Name: he.Neighbor, Sign: sign}] = struct{}{}
			}
		}
		levels[k] = next
		if len(next) == 0 {
			// frontier died: every deeper level is empty too
			for j := k + 1; j < len(levels); j++ {
				levels[j] = make(NodeSet)
			}

			return nil
		}
	}

	return nil
}
