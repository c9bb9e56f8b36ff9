package features

// Option applies a configuration option to the Reconstructor.
type Option func(*Reconstructor)

// WithStrictCategories toggles rejection of unrecognized gender and
// employment values. When disabled they produce all-zero flag pairs.
func WithStrictCategories(strict bool) Option {
	return func(r *Reconstructor) {
		r.strict = strict
	}
}
