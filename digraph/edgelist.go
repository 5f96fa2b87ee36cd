package digraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromEdgeList builds a Graph from a flat edge-list of lines
//
//	<source> <sign> <target>
//
// where <sign> is an integer edge polarity. Blank lines and lines
// starting with '#' are skipped. Pass WithSigned() to accept signs in
// {0,1}; without it any non-zero sign is rejected.
//
// Errors wrap ErrMalformedEdgeList (with the offending line number) or
// the sentinel returned by AddEdge.
func FromEdgeList(r io.Reader, opts ...Option) (*Graph, error) {
	g := New(opts...)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrMalformedEdgeList, line, len(fields))
		}
		sign, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad sign %q", ErrMalformedEdgeList, line, fields[1])
		}
		if _, err = g.AddEdge(fields[0], fields[2], sign); err != nil {
			return nil, fmt.Errorf("digraph: line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("digraph: reading edge list: %w", err)
	}

	return g, nil
}
