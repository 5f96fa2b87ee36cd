package digraph

import (
	"sort"
	"strconv"
)

// Signed reports whether edges may carry a non-zero sign.
func (g *Graph) Signed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.signed
}

// AddNode inserts a node with the given ID. Adding an existing node is
// a no-op. Returns ErrEmptyNodeID for an empty ID.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(id)

	return nil
}

func (g *Graph) addNodeLocked(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = struct{}{}
	g.succ[id] = make(map[string]map[int]string)
	g.pred[id] = make(map[string]map[int]string)
}

// AddEdge inserts a directed edge from → to with the given sign,
// creating missing endpoints on the fly. A duplicate (from, to, sign)
// triple returns the existing edge's ID.
//
// Errors: ErrEmptyNodeID, ErrLoopNotAllowed, ErrBadSign.
func (g *Graph) AddEdge(from, to string, sign int) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyNodeID
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if sign != 0 && (!g.signed || sign != 1) {
		return "", ErrBadSign
	}

	g.addNodeLocked(from)
	g.addNodeLocked(to)

	bucket := g.succ[from][to]
	if bucket == nil {
		bucket = make(map[int]string)
		g.succ[from][to] = bucket
	}
	if id, ok := bucket[sign]; ok {
		return id, nil
	}

	g.nextEdgeID++
	id := "e" + strconv.FormatUint(g.nextEdgeID, 10)
	bucket[sign] = id

	rev := g.pred[to][from]
	if rev == nil {
		rev = make(map[int]string)
		g.pred[to][from] = rev
	}
	rev[sign] = id

	return id, nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[id]

	return ok
}

// HasEdge reports whether at least one edge from → to exists,
// regardless of sign.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.succ[from][to]) > 0
}

// Nodes returns all node IDs, sorted ascending.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the number of distinct (from, to, sign) edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, heads := range g.succ {
		for _, bucket := range heads {
			n += len(bucket)
		}
	}

	return n
}

// Successors returns the outgoing halfedges of id, sorted by neighbor
// then sign. Returns ErrEmptyNodeID or ErrNodeNotFound on bad input.
func (g *Graph) Successors(id string) ([]Halfedge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.halfedgesLocked(id, g.succ)
}

// Predecessors returns the incoming halfedges of id (Neighbor is the
// edge tail), sorted by neighbor then sign.
func (g *Graph) Predecessors(id string) ([]Halfedge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.halfedgesLocked(id, g.pred)
}

func (g *Graph) halfedgesLocked(id string, adj map[string]map[string]map[int]string) ([]Halfedge, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if _, ok := g.nodes[id]; !ok {
		return nil, ErrNodeNotFound
	}

	var out []Halfedge
	for nbr, bucket := range adj[id] {
		for sign, eid := range bucket {
			out = append(out, Halfedge{ID: eid, Neighbor: nbr, Sign: sign})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Neighbor != out[j].Neighbor {
			return out[i].Neighbor < out[j].Neighbor
		}

		return out[i].Sign < out[j].Sign
	})

	return out, nil
}

// Clone returns an independent deep copy of the graph.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := New()
	out.signed = g.signed
	out.nextEdgeID = g.nextEdgeID
	for id := range g.nodes {
		out.addNodeLocked(id)
	}
	for from, heads := range g.succ {
		for to, bucket := range heads {
			for sign, eid := range bucket {
				if out.succ[from][to] == nil {
					out.succ[from][to] = make(map[int]string)
				}
				if out.pred[to][from] == nil {
					out.pred[to][from] = make(map[int]string)
				}
				out.succ[from][to][sign] = eid
				out.pred[to][from][sign] = eid
			}
		}
	}

	return out
}
