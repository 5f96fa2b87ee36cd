package cfpg

import (
	"context"
	"fmt"
	"math/rand"
)

// SampleOption configures SamplePaths via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when
// sampling is invoked.
type SampleOption func(*SampleOptions)

// SampleOptions holds parameters for randomized path sampling.
type SampleOptions struct {
	// Ctx allows cancellation of bulk sampling.
	Ctx context.Context

	// Seed selects the deterministic random stream; 0 means the fixed
	// default seed. Ignored when Rng is set.
	Seed int64

	// Rng, if non-nil, is used directly. The caller owns its state.
	Rng *rand.Rand

	// OnSample is called after each successfully drawn path.
	OnSample func(i int, p Path)

	// MaxAttempts bounds the number of failed walks tolerated before
	// sampling returns the paths collected so far. Only tag-guarded
	// (pre-CFPG) walks can fail; 0 means 10 attempts per requested
	// path.
	MaxAttempts int

	// internal error recorded during option parsing
	err error
}

// DefaultSampleOptions returns SampleOptions with a background
// context, the default seed policy, no hook and the default failure
// budget.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Ctx:      context.Background(),
		OnSample: func(int, Path) {},
	}
}

// WithSampleContext sets a custom context for cancellation.
func WithSampleContext(ctx context.Context) SampleOption {
	return func(o *SampleOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSeed selects the random stream deterministically; 0 keeps the
// fixed default stream.
func WithSeed(seed int64) SampleOption {
	return func(o *SampleOptions) { o.Seed = seed }
}

// WithRand injects an explicit generator, overriding WithSeed.
func WithRand(r *rand.Rand) SampleOption {
	return func(o *SampleOptions) {
		if r != nil {
			o.Rng = r
		}
	}
}

// WithOnSample registers a callback to run after each drawn path.
func WithOnSample(fn func(i int, p Path)) SampleOption {
	return func(o *SampleOptions) {
		if fn != nil {
			o.OnSample = fn
		}
	}
}

// WithMaxAttempts bounds the failed-walk budget for tag-guarded
// sampling. Negative values are an option violation; 0 restores the
// default.
func WithMaxAttempts(n int) SampleOption {
	return func(o *SampleOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxAttempts cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxAttempts = n
	}
}

// buildSampleOptions folds opts and resolves the generator.
func buildSampleOptions(opts []SampleOption) (SampleOptions, *rand.Rand, error) {
	o := DefaultSampleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, nil, o.err
	}
	rng := o.Rng
	if rng == nil {
		rng = rngFromSeed(o.Seed)
	}

	return o, rng, nil
}
