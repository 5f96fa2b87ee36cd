package cfpg

// vset is a set of layered node occurrences.
type vset map[VNode]struct{}

func (s vset) has(v VNode) bool {
	_, ok := s[v]

	return ok
}

func (s vset) clone() vset {
	out := make(vset, len(s))
	for v := range s {
		out[v] = struct{}{}
	}

	return out
}

func (s vset) equal(o vset) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.has(v) {
			return false
		}
	}

	return true
}

func (s vset) sorted() []VNode {
	out := make([]VNode, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sortVNodes(out)

	return out
}

func intersect(a, b vset) vset {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(vset)
	for v := range a {
		if b.has(v) {
			out[v] = struct{}{}
		}
	}

	return out
}

// layered is the adjacency arena shared by all engine stages: a
// layer-respecting digraph over VNodes with forward and backward
// indices kept in lockstep. Every edge goes from layer k to layer k+1,
// so the structure is acyclic by construction even when the same name
// recurs across layers.
type layered struct {
	succ map[VNode]vset
	pred map[VNode]vset
}

func newLayered() *layered {
	return &layered{succ: make(map[VNode]vset), pred: make(map[VNode]vset)}
}

func (l *layered) hasNode(v VNode) bool {
	_, ok := l.succ[v]

	return ok
}

func (l *layered) addNode(v VNode) {
	if l.hasNode(v) {
		return
	}
	l.succ[v] = make(vset)
	l.pred[v] = make(vset)
}

func (l *layered) addEdge(u, v VNode) {
	l.addNode(u)
	l.addNode(v)
	l.succ[u][v] = struct{}{}
	l.pred[v][u] = struct{}{}
}

func (l *layered) removeNode(v VNode) {
	for u := range l.pred[v] {
		delete(l.succ[u], v)
	}
	for w := range l.succ[v] {
		delete(l.pred[w], v)
	}
	delete(l.succ, v)
	delete(l.pred, v)
}

func (l *layered) nodeCount() int { return len(l.succ) }

func (l *layered) edgeCount() int {
	n := 0
	for _, s := range l.succ {
		n += len(s)
	}

	return n
}

func (l *layered) nodeSet() vset {
	out := make(vset, len(l.succ))
	for v := range l.succ {
		out[v] = struct{}{}
	}

	return out
}

func (l *layered) nodesSorted() []VNode { return l.nodeSet().sorted() }

func (l *layered) nodesAt(layer int) []VNode {
	var out []VNode
	for v := range l.succ {
		if v.Layer == layer {
			out = append(out, v)
		}
	}
	sortVNodes(out)

	return out
}

func (l *layered) succsSorted(v VNode) []VNode { return l.succ[v].sorted() }

func (l *layered) clone() *layered {
	out := newLayered()
	for v := range l.succ {
		out.addNode(v)
	}
	for u, ss := range l.succ {
		for v := range ss {
			out.addEdge(u, v)
		}
	}

	return out
}

// union merges o's nodes and edges into l.
func (l *layered) union(o *layered) {
	for v := range o.succ {
		l.addNode(v)
	}
	for u, ss := range o.succ {
		for v := range ss {
			l.addEdge(u, v)
		}
	}
}

func (l *layered) equal(o *layered) bool {
	if len(l.succ) != len(o.succ) {
		return false
	}
	for u, ss := range l.succ {
		os, ok := o.succ[u]
		if !ok || !ss.equal(os) {
			return false
		}
	}

	return true
}

// induced returns the subgraph on keep: keep's nodes that exist in l,
// plus every edge of l between them.
func (l *layered) induced(keep vset) *layered {
	out := newLayered()
	for v := range keep {
		if l.hasNode(v) {
			out.addNode(v)
		}
	}
	for u := range out.succ {
		for v := range l.succ[u] {
			if out.hasNode(v) {
				out.addEdge(u, v)
			}
		}
	}

	return out
}

// descend returns from plus every node reachable from it along succ
// edges, skipping (and never passing through) any other node whose
// name equals skipName.
func (l *layered) descend(from VNode, skipName string) vset {
	out := vset{from: {}}
	queue := []VNode{from}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range l.succ[u] {
			if v.Name == skipName && v != from {
				continue
			}
			if !out.has(v) {
				out[v] = struct{}{}
				queue = append(queue, v)
			}
		}
	}

	return out
}

// ascend returns to plus every node that reaches it along succ edges.
func (l *layered) ascend(to VNode) vset {
	out := vset{to: {}}
	queue := []VNode{to}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range l.pred[u] {
			if !out.has(v) {
				out[v] = struct{}{}
				queue = append(queue, v)
			}
		}
	}

	return out
}

// pruneBetween restricts l to nodes lying on some src→dst path:
// the intersection of forward reachability from src and backward
// reachability from dst. Either endpoint missing empties the graph.
func (l *layered) pruneBetween(src, dst VNode) {
	if !l.hasNode(src) || !l.hasNode(dst) {
		for _, v := range l.nodesSorted() {
			l.removeNode(v)
		}

		return
	}
	down := l.descend(src, "")
	up := l.ascend(dst)
	for _, v := range l.nodesSorted() {
		if !down.has(v) || !up.has(v) {
			l.removeNode(v)
		}
	}
}
