package retry

import "context"

// Profile pre-binds retry options for repeated use, so callers that issue
// many operations with the same policy don't rebuild Options at each site.
type Profile struct {
	opts Options
}

// NewProfile creates a profile from the given options.
func NewProfile(opts Options) *Profile {
	return &Profile{opts: opts}
}

// Options returns a copy of the profile's bound options. Callers may
// adjust the copy (e.g., OperationName) without affecting the profile.
func (p *Profile) Options() Options {
	return p.opts
}

// Named returns a copy of the profile's options labeled with the given
// operation name.
func (p *Profile) Named(operation string) Options {
	opts := p.opts
	opts.OperationName = operation
	return opts
}

// Do executes fn under the profile's options. For operations with a
// result value, use the package-level DoWith (methods cannot be generic).
func (p *Profile) Do(ctx context.Context, operation string, fn func() error) error {
	_, err := Do(ctx, p.Named(operation), func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWith executes fn under the profile's options and returns its result.
func DoWith[T any](ctx context.Context, p *Profile, operation string, fn func() (T, error)) (T, error) {
	return Do(ctx, p.Named(operation), fn)
}
