// Package cfpg - node identities, path values and the PathSource
// interface shared by all engine stages.
package cfpg

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// VNode is one occurrence of a graph node on a path of fixed length:
// its position (layer), its original name, and the cumulative sign
// parity of the walk reaching it (always 0 in unsigned mode).
// Layer 0 is reserved for the source, layer Length for the target.
type VNode struct {
	Layer int
	Name  string
	Sign  int
}

func (v VNode) key() string {
	return strconv.Itoa(v.Layer) + "#" + v.Name + "#" + strconv.Itoa(v.Sign)
}

// vnodeLess orders VNodes by layer, then name, then sign; the
// canonical order for all deterministic iteration in this package.
func vnodeLess(a, b VNode) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}

	return a.Sign < b.Sign
}

func sortVNodes(vs []VNode) {
	sort.Slice(vs, func(i, j int) bool { return vnodeLess(vs[i], vs[j]) })
}

// HistKey is the canonical string form of a history set, used to
// identify split-copies. Equal sets produce equal keys.
type HistKey string

func histKey(s vset) HistKey {
	parts := make([]string, 0, len(s))
	for v := range s {
		parts = append(parts, v.key())
	}
	sort.Strings(parts)

	return HistKey(strings.Join(parts, "|"))
}

// CNode is a split-copy: a VNode plus the canonical key of the history
// set this copy is compatible with.
type CNode struct {
	Layer int
	Name  string
	Sign  int
	Hist  HistKey
}

func (c CNode) vnode() VNode { return VNode{Layer: c.Layer, Name: c.Name, Sign: c.Sign} }

func cnodeLess(a, b CNode) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Sign != b.Sign {
		return a.Sign < b.Sign
	}

	return a.Hist < b.Hist
}

func sortCNodes(cs []CNode) {
	sort.Slice(cs, func(i, j int) bool { return cnodeLess(cs[i], cs[j]) })
}

// Path is an ordered sequence of original node names, from source to
// target, with no name repeated (for cycle-free stages).
type Path []string

func pathKey(p Path) string { return strings.Join(p, "\x1f") }

func sortPaths(ps []Path) {
	sort.Slice(ps, func(i, j int) bool { return pathKey(ps[i]) < pathKey(ps[j]) })
}

// PathSource is the common surface of every stage that can produce
// paths: the raw paths graph (walks, names may repeat), the pre-CFPG
// (tag-guarded walks) and the CFPG and Combined (memoryless walks).
// The caller picks the variant explicitly.
type PathSource interface {
	// SamplePaths draws n random paths. An empty structure yields an
	// empty slice, never an error.
	SamplePaths(n int, opts ...SampleOption) ([]Path, error)

	// EnumeratePaths lists every distinct path, deduplicated and in
	// deterministic (lexicographic) order.
	EnumeratePaths() []Path

	// CountPaths returns the exact number of distinct paths.
	CountPaths() *big.Int
}

var (
	_ PathSource = (*PathsGraph)(nil)
	_ PathSource = (*PreCFPG)(nil)
	_ PathSource = (*CFPG)(nil)
	_ PathSource = (*Combined)(nil)
)
