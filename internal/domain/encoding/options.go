package encoding

// Option applies a configuration option to a LabelEncoder.
type Option func(*LabelEncoder)

// WithName sets the field name reported in errors, e.g. "education_level".
func WithName(name string) Option {
	return func(e *LabelEncoder) {
		if name != "" {
			e.name = name
		}
	}
}
