package cfpg

import "errors"

var (
	// ErrNilInput indicates a nil graph, level set or stage result.
	ErrNilInput = errors.New("cfpg: nil input")

	// ErrBadLength indicates a requested path length below one.
	ErrBadLength = errors.New("cfpg: length must be at least 1")

	// ErrDepthShort indicates level sets shallower than the requested
	// length; recompute reachability with a larger max depth.
	ErrDepthShort = errors.New("cfpg: reachability levels shallower than requested length")

	// ErrSignFilterUnsigned indicates a target-sign filter applied to
	// unsigned level sets.
	ErrSignFilterUnsigned = errors.New("cfpg: target sign filter requires signed levels")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("cfpg: invalid option supplied")

	// ErrNoConvergence indicates the tag-and-prune refinement exceeded
	// its round cap. The refinement shrinks a finite graph monotonically
	// and must converge, so this signals an internal invariant
	// violation, not a property of the input.
	ErrNoConvergence = errors.New("cfpg: refinement failed to converge within round limit")

	// ErrMismatchedSource indicates Combine was given structures built
	// for different sources or signs.
	ErrMismatchedSource = errors.New("cfpg: combined graphs must share one source")
)
